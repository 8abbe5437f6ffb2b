package v1

import "log/slog"

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	configPath   string
	knowledgeDir string
	completer    Completer
	logger       *slog.Logger
}

// WithConfigPath points the client at a config file.
func WithConfigPath(path string) Option {
	return func(c *clientConfig) {
		c.configPath = path
	}
}

// WithKnowledgeDir overrides the knowledge directory from config.
func WithKnowledgeDir(dir string) Option {
	return func(c *clientConfig) {
		c.knowledgeDir = dir
	}
}

// WithCompleter replaces the configured completion backend.
func WithCompleter(completer Completer) Option {
	return func(c *clientConfig) {
		c.completer = completer
	}
}

// WithLogger sets the operator-facing logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}

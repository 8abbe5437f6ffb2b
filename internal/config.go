package internal

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultConfigFile = "kotae.yaml"

// APIKeyEnv is consulted when the config file carries no key.
const APIKeyEnv = "GROQ_API_KEY"

type KnowledgeConfig struct {
	Dir   string `yaml:"dir"`
	Watch bool   `yaml:"watch,omitempty"`
}

type ProviderConfig struct {
	Backend string `yaml:"backend"`
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

type ChatConfig struct {
	SystemPrompt   string `yaml:"system_prompt,omitempty"`
	FallbackReply  string `yaml:"fallback_reply,omitempty"`
	ContextTurns   int    `yaml:"context_turns,omitempty"`
	MaxStoredTurns int    `yaml:"max_stored_turns,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

type Config struct {
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Provider  ProviderConfig  `yaml:"provider"`
	Chat      ChatConfig      `yaml:"chat,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Knowledge: KnowledgeConfig{
			Dir: "knowledge",
		},
		Provider: ProviderConfig{
			Backend: "groq",
			Model:   DefaultGroqModel,
		},
		Chat: ChatConfig{
			ContextTurns:   DefaultContextTurns,
			MaxStoredTurns: DefaultMaxStoredTurns,
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// ResolveAPIKey prefers the configured key and falls back to the
// environment.
func (c *Config) ResolveAPIKey() string {
	if c.Provider.APIKey != "" {
		return c.Provider.APIKey
	}
	return os.Getenv(APIKeyEnv)
}

// Timeout returns the configured remote-call timeout.
func (c *Config) Timeout() time.Duration {
	if c.Chat.TimeoutSeconds <= 0 {
		return DefaultTimeout
	}
	return time.Duration(c.Chat.TimeoutSeconds) * time.Second
}

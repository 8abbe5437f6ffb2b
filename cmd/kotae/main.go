package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/kotae-bot/kotae/internal"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx := context.Background()

	rootCmd := NewRootCmd(version)
	if err := fang.Execute(ctx, rootCmd); err != nil {
		os.Exit(1)
	}
}

// app bundles everything a responding command needs. It is built per
// invocation because the config path comes from a persistent flag.
type app struct {
	cfg       *internal.Config
	log       *slog.Logger
	source    internal.KnowledgeSource
	store     *internal.ConversationStore
	responder *internal.Responder

	cached *internal.CachedLoader
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	loader := internal.NewLoader(osfs.New(cfg.Knowledge.Dir), ".", logger)

	var source internal.KnowledgeSource = loader
	var cached *internal.CachedLoader
	if cfg.Knowledge.Watch {
		cached, err = internal.NewCachedLoader(loader, cfg.Knowledge.Dir, logger)
		if err != nil {
			logger.Warn("knowledge cache disabled", "error", err)
		} else {
			source = cached
		}
	}

	provider, err := buildProvider(cmd.Context(), cfg)
	if err != nil {
		if cached != nil {
			cached.Close()
		}
		return nil, err
	}

	store := internal.NewConversationStore(cfg.Chat.ContextTurns, cfg.Chat.MaxStoredTurns)
	responder := internal.NewResponder(source, store, provider, internal.ResponderConfig{
		SystemPrompt:  cfg.Chat.SystemPrompt,
		FallbackReply: cfg.Chat.FallbackReply,
		Timeout:       cfg.Timeout(),
	}, logger)

	return &app{
		cfg:       cfg,
		log:       logger,
		source:    source,
		store:     store,
		responder: responder,
		cached:    cached,
	}, nil
}

func (a *app) Close() {
	if a.cached != nil {
		a.cached.Close()
	}
}

func loadConfig(cmd *cobra.Command) (*internal.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := internal.LoadConfig(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if dir, _ := cmd.Flags().GetString("knowledge"); dir != "" {
		cfg.Knowledge.Dir = dir
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	return cfg, logger, nil
}

func buildProvider(ctx context.Context, cfg *internal.Config) (internal.Provider, error) {
	switch cfg.Provider.Backend {
	case "", "groq":
		return internal.NewGroqProvider(cfg.ResolveAPIKey(), cfg.Provider.BaseURL, cfg.Provider.Model), nil
	case "openai", "anthropic", "openrouter":
		provider, err := internal.NewFantasyProvider(ctx, internal.FantasyConfig{
			Backend: cfg.Provider.Backend,
			APIKey:  cfg.ResolveAPIKey(),
			BaseURL: cfg.Provider.BaseURL,
			Model:   cfg.Provider.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("create provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported provider backend: %s", cfg.Provider.Backend)
	}
}

// Package v1 exposes the responder to embedding callers, typically the
// webhook transport that receives user messages and delivers replies.
package v1

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/kotae-bot/kotae/internal"
)

// Client answers utterances through the knowledge base with completion
// fallback. Construct one per process; it owns the conversation memory.
type Client struct {
	responder *internal.Responder
	loader    *internal.Loader
	cached    *internal.CachedLoader
}

// New creates a Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	conf, err := internal.LoadConfig(cfg.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.knowledgeDir != "" {
		conf.Knowledge.Dir = cfg.knowledgeDir
	}

	loader := internal.NewLoader(osfs.New(conf.Knowledge.Dir), ".", cfg.logger)

	var source internal.KnowledgeSource = loader
	var cached *internal.CachedLoader
	if conf.Knowledge.Watch {
		cached, err = internal.NewCachedLoader(loader, conf.Knowledge.Dir, cfg.logger)
		if err != nil {
			cfg.logger.Warn("knowledge cache disabled", "error", err)
		} else {
			source = cached
		}
	}

	var provider internal.Provider
	if cfg.completer != nil {
		provider = completerAdapter{cfg.completer}
	} else {
		provider = internal.NewGroqProvider(conf.ResolveAPIKey(), conf.Provider.BaseURL, conf.Provider.Model)
	}

	store := internal.NewConversationStore(conf.Chat.ContextTurns, conf.Chat.MaxStoredTurns)
	responder := internal.NewResponder(source, store, provider, internal.ResponderConfig{
		SystemPrompt:  conf.Chat.SystemPrompt,
		FallbackReply: conf.Chat.FallbackReply,
		Timeout:       conf.Timeout(),
	}, cfg.logger)

	return &Client{
		responder: responder,
		loader:    loader,
		cached:    cached,
	}, nil
}

// Respond answers one utterance for the user. It never fails; remote
// problems come back as the configured fallback reply.
func (c *Client) Respond(ctx context.Context, userID, text string) string {
	return c.responder.Respond(ctx, userID, text)
}

// Topics lists the currently loaded topics and any skipped documents.
func (c *Client) Topics(ctx context.Context) ([]TopicInfo, []LoadFailure, error) {
	kb, report := c.loader.Load()

	topics := make([]TopicInfo, 0, kb.Len())
	for _, t := range kb.Topics() {
		topics = append(topics, TopicInfo{
			Name:     t.Name,
			Keywords: len(t.Entry.Keywords.Flatten()),
			Fields:   len(t.Entry.Fields),
		})
	}
	failures := make([]LoadFailure, 0, len(report.Failures))
	for _, f := range report.Failures {
		failures = append(failures, LoadFailure{File: f.File, Error: f.Err.Error()})
	}

	return topics, failures, nil
}

// Close releases any resources held by the client.
func (c *Client) Close() error {
	if c.cached != nil {
		return c.cached.Close()
	}
	return nil
}

type completerAdapter struct {
	completer Completer
}

func (a completerAdapter) Complete(ctx context.Context, messages []internal.Message) (string, error) {
	msgs := make([]Message, 0, len(messages))
	for _, m := range messages {
		msgs = append(msgs, Message{Role: m.Role, Content: m.Content})
	}
	reply, err := a.completer.Complete(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("%w: %v", internal.ErrRemoteService, err)
	}
	return reply, nil
}

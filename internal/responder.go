package internal

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultSystemPrompt  = "請用繁體中文回答問題。"
	DefaultFallbackReply = "抱歉，我暫時無法處理您的請求。"
	DefaultTimeout       = 30 * time.Second
)

// ResponderConfig tunes one responder. Zero values fall back to the
// defaults above.
type ResponderConfig struct {
	SystemPrompt  string
	FallbackReply string
	Timeout       time.Duration
}

// Responder answers one user utterance at a time: knowledge lookup first,
// completion service on a miss. It never fails to the caller; every remote
// failure collapses into the fixed fallback reply.
type Responder struct {
	source   KnowledgeSource
	store    *ConversationStore
	provider Provider

	systemPrompt string
	fallback     string
	timeout      time.Duration
	log          *slog.Logger
}

func NewResponder(source KnowledgeSource, store *ConversationStore, provider Provider, cfg ResponderConfig, logger *slog.Logger) *Responder {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.FallbackReply == "" {
		cfg.FallbackReply = DefaultFallbackReply
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Responder{
		source:       source,
		store:        store,
		provider:     provider,
		systemPrompt: cfg.SystemPrompt,
		fallback:     cfg.FallbackReply,
		timeout:      cfg.Timeout,
		log:          logger,
	}
}

// Respond produces a reply for the utterance. A local hit returns without
// touching conversation memory; a miss records the user turn, sends the
// bounded context to the provider, and records the reply. A provider
// failure returns the fallback and records nothing further, so the
// unpaired user turn stays in history.
func (r *Responder) Respond(ctx context.Context, userID, text string) string {
	kb, _ := r.source.Knowledge()

	if answer, ok := Lookup(text, kb); ok {
		return answer
	}

	window := r.store.AppendContext(userID, Message{Role: RoleUser, Content: text}, r.systemPrompt)

	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reply, err := r.provider.Complete(cctx, window)
	if err != nil {
		r.log.Error("completion failed", "user", userID, "error", err)
		return r.fallback
	}

	r.store.Append(userID, RoleAssistant, reply)
	return reply
}

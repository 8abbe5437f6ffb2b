package internal

import (
	"context"
	"fmt"
	"strings"

	"charm.land/fantasy"
	"charm.land/fantasy/providers/anthropic"
	"charm.land/fantasy/providers/openai"
	"charm.land/fantasy/providers/openrouter"
)

type FantasyConfig struct {
	Backend string
	APIKey  string
	BaseURL string
	Model   string
}

var _ Provider = (*FantasyProvider)(nil)

// FantasyProvider serves deployments that answer through one of fantasy's
// backends instead of Groq. The agent call takes a single prompt string, so
// the message window is rendered into a role-labelled transcript.
type FantasyProvider struct {
	model fantasy.LanguageModel
	name  string
}

func NewFantasyProvider(ctx context.Context, cfg FantasyConfig) (*FantasyProvider, error) {
	var provider fantasy.Provider
	var err error

	switch cfg.Backend {
	case "openai":
		opts := []openai.Option{openai.WithAPIKey(cfg.APIKey)}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		provider, err = openai.New(opts...)

	case "anthropic":
		opts := []anthropic.Option{anthropic.WithAPIKey(cfg.APIKey)}
		if cfg.BaseURL != "" {
			opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
		}
		provider, err = anthropic.New(opts...)

	case "openrouter":
		opts := []openrouter.Option{openrouter.WithAPIKey(cfg.APIKey)}
		provider, err = openrouter.New(opts...)

	default:
		return nil, fmt.Errorf("unsupported backend: %s", cfg.Backend)
	}

	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	model, err := provider.LanguageModel(ctx, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("get language model: %w", err)
	}

	return &FantasyProvider{
		model: model,
		name:  cfg.Backend,
	}, nil
}

func (p *FantasyProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	agent := fantasy.NewAgent(p.model)

	result, err := agent.Generate(ctx, fantasy.AgentCall{
		Prompt: renderTranscript(messages),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRemoteService, err)
	}

	return strings.TrimSpace(result.Response.Content.Text()), nil
}

// renderTranscript flattens a message window into one prompt. The system
// prompt leads as a bare instruction; the remaining turns keep their role
// labels so the model sees who said what.
func renderTranscript(messages []Message) string {
	var sb strings.Builder
	for _, m := range messages {
		if m.Role == RoleSystem {
			sb.WriteString(m.Content)
			sb.WriteString("\n\n")
			continue
		}
		sb.WriteString(m.Role)
		sb.WriteString(": ")
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	sb.WriteString(RoleAssistant)
	sb.WriteString(":")
	return sb.String()
}

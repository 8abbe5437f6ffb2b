package internal

import (
	"context"
	"errors"
)

// ErrRemoteService marks any failure of the completion collaborator:
// transport, HTTP status, or payload shape. The responder converts it into
// the fixed fallback reply; it never reaches the end user.
var ErrRemoteService = errors.New("completion service failed")

// Provider is the outbound completion collaborator. Complete sends an
// ordered message window and returns the assistant reply text.
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

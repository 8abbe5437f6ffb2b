package v1

import "context"

// Message is one conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer is the outbound completion collaborator. Implement it to plug
// in a custom model backend (or a fake in tests).
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// TopicInfo describes one loaded topic.
type TopicInfo struct {
	Name     string `json:"name"`
	Keywords int    `json:"keywords"`
	Fields   int    `json:"fields"`
}

// LoadFailure describes one knowledge document that was skipped.
type LoadFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

package internal

import (
	"sync"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation, in the shape the completion
// service expects.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	// DefaultContextTurns is how many stored turns go into a model context.
	DefaultContextTurns = 10
	// DefaultMaxStoredTurns bounds each user's stored history. Old turns
	// are evicted once the cap is reached.
	DefaultMaxStoredTurns = 50
)

// ConversationStore keeps a bounded per-user message history. Histories
// are created lazily on first append and live for the process lifetime.
// Each user has its own lock, so turns for distinct users never contend;
// a user's own appends and context snapshots serialize against each other.
type ConversationStore struct {
	mu    sync.Mutex
	users map[string]*history

	window    int
	maxStored int
}

type history struct {
	mu    sync.Mutex
	turns []Message
}

// NewConversationStore builds a store reading the last window turns into
// each context and keeping at most maxStored turns per user. Non-positive
// arguments fall back to the defaults, and the storage cap never drops
// below the context window.
func NewConversationStore(window, maxStored int) *ConversationStore {
	if window <= 0 {
		window = DefaultContextTurns
	}
	if maxStored <= 0 {
		maxStored = DefaultMaxStoredTurns
	}
	if maxStored < window {
		maxStored = window
	}
	return &ConversationStore{
		users:     make(map[string]*history),
		window:    window,
		maxStored: maxStored,
	}
}

func (s *ConversationStore) user(id string) *history {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.users[id]
	if !ok {
		h = &history{}
		s.users[id] = h
	}
	return h
}

// peek returns the user's history without creating one. Read paths must
// not materialize empty histories.
func (s *ConversationStore) peek(id string) *history {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id]
}

// Append records one turn for the user, evicting the oldest turn when the
// storage cap is reached.
func (s *ConversationStore) Append(userID, role, content string) {
	h := s.user(userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.append(Message{Role: role, Content: content}, s.maxStored)
}

// Context returns the system prompt followed by the user's most recent
// turns, oldest first, never more than the context window.
func (s *ConversationStore) Context(userID, systemPrompt string) []Message {
	h := s.peek(userID)
	if h == nil {
		return []Message{{Role: RoleSystem, Content: systemPrompt}}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.context(systemPrompt, s.window)
}

// AppendContext appends the user turn and snapshots the resulting context
// in one critical section, so two racing turns for the same user cannot
// interleave between the append and the read. The caller makes the remote
// call outside any lock.
func (s *ConversationStore) AppendContext(userID string, msg Message, systemPrompt string) []Message {
	h := s.user(userID)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.append(msg, s.maxStored)
	return h.context(systemPrompt, s.window)
}

// Turns returns a copy of everything stored for the user.
func (s *ConversationStore) Turns(userID string) []Message {
	h := s.peek(userID)
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Message, len(h.turns))
	copy(out, h.turns)
	return out
}

func (h *history) append(m Message, maxStored int) {
	h.turns = append(h.turns, m)
	if len(h.turns) > maxStored {
		h.turns = append(h.turns[:0], h.turns[len(h.turns)-maxStored:]...)
	}
}

func (h *history) context(systemPrompt string, window int) []Message {
	start := 0
	if len(h.turns) > window {
		start = len(h.turns) - window
	}
	ctx := make([]Message, 0, len(h.turns)-start+1)
	ctx = append(ctx, Message{Role: RoleSystem, Content: systemPrompt})
	ctx = append(ctx, h.turns[start:]...)
	return ctx
}

package domain

import "slices"

// ExecutionStatus defines whether the conversation still accepts user turns.
type ExecutionStatus string

const (
	StatusActive     ExecutionStatus = "active"     // Waiting for the next user turn
	StatusTerminated ExecutionStatus = "terminated" // Order placed and closing remark delivered
)

// ConversationState is the complete snapshot of one ordering session.
// It is owned by a single engine invocation at a time and persisted by the caller.
type ConversationState struct {
	// SessionID identifies the session in stores and logs.
	SessionID string `json:"session_id,omitempty"`

	// Status indicates if the conversation is still running.
	Status ExecutionStatus `json:"status"`

	// History is append-only.
	History []Turn `json:"history"`

	// Order holds the lines collected so far, in insertion order.
	Order Order `json:"order"`

	// Finished flips to true once, when the order has been placed.
	Finished bool `json:"finished"`

	// ConfirmationToken is the token issued when the order was placed.
	ConfirmationToken string `json:"confirmation_token,omitempty"`

	// Metadata holds caller-owned annotations (channel, customer name, envelopes...).
	Metadata map[string]string `json:"metadata,omitempty"`
}

// NewConversationState creates a clean state for a new session.
func NewConversationState(sessionID string) *ConversationState {
	return &ConversationState{
		SessionID: sessionID,
		Status:    StatusActive,
		History:   []Turn{},
		Order:     Order{},
		Metadata:  make(map[string]string),
	}
}

// Clone creates a copy that can be appended to and mutated without touching the source.
// Turns are immutable so they are shared.
func (s *ConversationState) Clone() *ConversationState {
	if s == nil {
		return nil
	}
	next := *s
	next.History = slices.Clone(s.History)
	next.Order = s.Order.Clone()
	if s.Metadata != nil {
		next.Metadata = make(map[string]string, len(s.Metadata))
		for k, v := range s.Metadata {
			next.Metadata[k] = v
		}
	}
	return &next
}

// Append adds turns to the end of the history.
func (s *ConversationState) Append(turns ...Turn) {
	s.History = append(s.History, turns...)
}

// LastTurn returns the most recent turn, if any.
func (s *ConversationState) LastTurn() (Turn, bool) {
	if len(s.History) == 0 {
		return Turn{}, false
	}
	return s.History[len(s.History)-1], true
}

// LastReply returns the content of the latest assistant text turn, the one a UI displays.
func (s *ConversationState) LastReply() string {
	for i := len(s.History) - 1; i >= 0; i-- {
		t := s.History[i]
		if t.Role == RoleAssistant && t.Kind() == TurnText {
			return t.Content
		}
	}
	return ""
}

// Terminated reports whether the conversation reached its sink state.
func (s *ConversationState) Terminated() bool {
	return s.Status == StatusTerminated
}

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAction is returned when the Reasoner requests an action that was never registered.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnhandledAction is returned when an order batch contains an action the Order Handler does not implement.
	ErrUnhandledAction = errors.New("unhandled action")

	// ErrEmptyHistory is returned when routing is attempted before any turn exists.
	ErrEmptyHistory = errors.New("routing invoked with empty history")

	// ErrSessionNotFound is returned when a session ID cannot be found in the store.
	ErrSessionNotFound = errors.New("session not found")

	// ErrConversationFinished is returned when a user turn arrives after the order was placed.
	ErrConversationFinished = errors.New("conversation already finished")

	// ErrStepLimitExceeded is returned when one invocation asks the Reasoner for more turns than allowed.
	ErrStepLimitExceeded = errors.New("reasoner step limit exceeded")

	// ErrEmptyMessage is returned when the user turn carries no text.
	ErrEmptyMessage = errors.New("message text is empty")
)

// UnknownActionError names the action that is missing from the registry.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action %q", e.Name)
}

func (e *UnknownActionError) Unwrap() error {
	return ErrUnknownAction
}

// UnhandledActionError names the request the Order Handler could not apply.
type UnhandledActionError struct {
	Name      string
	RequestID string
}

func (e *UnhandledActionError) Error() string {
	return fmt.Sprintf("order handler cannot apply action %q (request %s)", e.Name, e.RequestID)
}

func (e *UnhandledActionError) Unwrap() error {
	return ErrUnhandledAction
}

// ReasonerError wraps a failure of the Reasoner call. The state passed to the
// engine is left untouched, so the same message can be retried.
type ReasonerError struct {
	Err error
}

func (e *ReasonerError) Error() string {
	return "reasoner: " + e.Err.Error()
}

func (e *ReasonerError) Unwrap() error {
	return e.Err
}

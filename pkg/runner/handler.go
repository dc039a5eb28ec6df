package runner

import "context"

// IOHandler defines the strategy for talking to the customer.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents an assistant reply.
	Output(ctx context.Context, reply string) error

	// Input reads the next customer message.
	// It returns io.EOF when the input stream is closed.
	Input(ctx context.Context) (string, error)

	// SystemOutput presents a meta-message (welcome banner, rejected input, errors).
	// This is distinct from assistant replies.
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms a reply before it is printed.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

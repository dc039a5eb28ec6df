package runner

import (
	"log/slog"

	"github.com/aretw0/baristabot/pkg/session"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithSessions configures the session manager used for persistence.
// Without it, sessions live in memory for the duration of the run.
func WithSessions(sessions *session.Manager) Option {
	return func(r *Runner) {
		r.Sessions = sessions
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithInputHandler configures a custom IOHandler.
func WithInputHandler(handler IOHandler) Option {
	return func(r *Runner) {
		r.Handler = handler
	}
}

// WithSessionID resumes (or creates) the given session.
// A random ID is generated when empty.
func WithSessionID(id string) Option {
	return func(r *Runner) {
		r.SessionID = id
	}
}

// WithWelcome sets the greeting shown before the first message of a new session.
func WithWelcome(msg string) Option {
	return func(r *Runner) {
		r.Welcome = msg
	}
}

// WithMaxInputSize bounds the size of a customer message in bytes.
func WithMaxInputSize(n int) Option {
	return func(r *Runner) {
		r.MaxInputSize = n
	}
}

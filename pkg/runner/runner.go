package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/baristabot/internal/logging"
	"github.com/aretw0/baristabot/pkg/adapters/memory"
	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/aretw0/baristabot/pkg/ports"
	"github.com/aretw0/baristabot/pkg/session"
	"github.com/google/uuid"
)

// quitCommands end the chat without touching the session.
var quitCommands = []string{"q", "quit", "exit"}

// Runner handles the chat loop of the engine using the provided IO.
// This allows for easy testing and integration with different frontends (CLI, TUI, etc).
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on Stdin/Stdout.
	Handler IOHandler

	// Sessions persists the conversation after each turn.
	// If nil, sessions are ephemeral.
	Sessions *session.Manager

	SessionID    string
	Welcome      string
	MaxInputSize int

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	engine ports.ConversationEngine
}

// NewRunner creates a Runner for the engine.
func NewRunner(engine ports.ConversationEngine, opts ...Option) *Runner {
	r := &Runner{engine: engine}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(os.Stdin, os.Stdout)
	}
	if r.Sessions == nil {
		r.Sessions = session.NewManager(memory.NewStore())
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	if r.SessionID == "" {
		r.SessionID = uuid.NewString()
	}
	return r
}

// Run loops until the order is placed, the customer quits or input ends.
// Turns that fail because of bad input or an unavailable Reasoner are reported
// and the customer may try again; the session is left as it was.
func (r *Runner) Run(ctx context.Context) error {
	state, err := r.Sessions.LoadOrStart(ctx, r.SessionID)
	if err != nil {
		return fmt.Errorf("failed to open session %s: %w", r.SessionID, err)
	}
	if err := r.greet(ctx, state); err != nil {
		return err
	}
	if state.Terminated() {
		return nil
	}

	for {
		text, err := r.Handler.Input(ctx)
		if err != nil {
			if err == io.EOF || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		if isQuit(text) {
			r.Logger.Debug("customer left", "session_id", r.SessionID)
			return nil
		}
		if strings.TrimSpace(text) == "" {
			continue
		}

		ex, err := SendMessage(ctx, r.engine, r.Sessions, r.SessionID, text, r.MaxInputSize)
		if err != nil {
			if retry := r.recover(ctx, err); retry {
				continue
			}
			if errors.Is(err, domain.ErrConversationFinished) {
				return nil
			}
			return fmt.Errorf("turn failed: %w", err)
		}

		r.Logger.Debug("turn completed",
			"session_id", r.SessionID,
			"order", ex.State.Order.Summary(),
			"terminated", ex.Terminated,
		)

		if err := r.Handler.Output(ctx, ex.Reply); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
		if ex.Terminated {
			return nil
		}
	}
}

func (r *Runner) greet(ctx context.Context, state *domain.ConversationState) error {
	if len(state.History) == 0 {
		if r.Welcome == "" {
			return nil
		}
		return r.Handler.SystemOutput(ctx, r.Welcome)
	}

	msg := fmt.Sprintf("Resuming session %s.", r.SessionID)
	if state.Terminated() {
		msg = fmt.Sprintf("Session %s is closed. Order placed with token %s.", r.SessionID, state.ConfirmationToken)
	}
	if err := r.Handler.SystemOutput(ctx, msg); err != nil {
		return err
	}
	if reply := state.LastReply(); reply != "" {
		return r.Handler.Output(ctx, reply)
	}
	return nil
}

// recover reports errors the customer can retry after.
func (r *Runner) recover(ctx context.Context, err error) bool {
	var rerr *domain.ReasonerError
	switch {
	case errors.Is(err, ErrInputTooLarge), errors.Is(err, ErrInvalidUTF8):
		_ = r.Handler.SystemOutput(ctx, fmt.Sprintf("Error: %v. Please try again.", err))
		return true
	case errors.As(err, &rerr), errors.Is(err, domain.ErrStepLimitExceeded):
		r.Logger.Warn("turn failed", "session_id", r.SessionID, "error", err)
		_ = r.Handler.SystemOutput(ctx, "The barista is busy right now. Please try again.")
		return true
	}
	return false
}

func isQuit(text string) bool {
	text = strings.ToLower(strings.TrimSpace(text))
	for _, cmd := range quitCommands {
		if text == cmd {
			return true
		}
	}
	return false
}

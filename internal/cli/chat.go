package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/baristabot"
	"github.com/aretw0/baristabot/internal/presentation/tui"
	"github.com/aretw0/baristabot/pkg/runner"
)

// ChatOptions configures the chat command.
type ChatOptions struct {
	SessionID string
	JSON      bool
	Stdin     io.Reader
	Stdout    io.Writer
}

// RunChat runs the interactive ordering REPL until the order is placed,
// the customer quits or ctx is cancelled.
func RunChat(ctx context.Context, app *App, opts ChatOptions) error {
	eng, err := app.BuildEngine(nil)
	if err != nil {
		return err
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	var handler runner.IOHandler
	if opts.JSON {
		handler = runner.NewJSONHandler(opts.Stdin, opts.Stdout)
	} else {
		tui.PrintBanner(opts.Stdout)
		handler = runner.NewTextHandler(opts.Stdin, opts.Stdout,
			runner.WithTextHandlerRenderer(tui.NewRenderer()),
		)
	}

	r := runner.NewRunner(eng,
		runner.WithInputHandler(handler),
		runner.WithSessions(app.Sessions),
		runner.WithSessionID(opts.SessionID),
		runner.WithWelcome(baristabot.WelcomeMessage),
		runner.WithMaxInputSize(app.Config.MaxInputSize),
		runner.WithLogger(app.Logger),
	)

	app.Logger.Info("chat started", "session_id", r.SessionID)
	if err := r.Run(ctx); err != nil {
		return fmt.Errorf("chat failed: %w", err)
	}
	app.Logger.Info("chat ended", "session_id", r.SessionID)
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ListSessions prints the stored session IDs.
func ListSessions(ctx context.Context, app *App, w io.Writer) error {
	ids, err := app.Sessions.List(ctx)
	if err != nil {
		return fmt.Errorf("error listing sessions: %w", err)
	}
	if len(ids) == 0 {
		fmt.Fprintln(w, "No active sessions found.")
		return nil
	}

	fmt.Fprintln(w, "Active Sessions:")
	for _, id := range ids {
		fmt.Fprintln(w, "- "+id)
	}
	return nil
}

// InspectSession pretty-prints the stored state of one session.
func InspectSession(ctx context.Context, app *App, w io.Writer, sessionID string) error {
	state, err := app.Sessions.Load(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("error loading session '%s': %w", sessionID, err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling state: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// RemoveSessions deletes every given session, reporting each one.
// It keeps going after a failure and returns all errors joined.
func RemoveSessions(ctx context.Context, app *App, w io.Writer, sessionIDs []string) error {
	var errs []error
	for _, id := range sessionIDs {
		if err := app.Sessions.Delete(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("error removing '%s': %w", id, err))
			continue
		}
		fmt.Fprintf(w, "Removed session '%s'\n", id)
	}
	return errors.Join(errs...)
}

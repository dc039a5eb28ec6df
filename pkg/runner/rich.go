package runner

import (
	"context"

	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/aretw0/baristabot/pkg/ports"
	"github.com/aretw0/baristabot/pkg/session"
)

// Exchange is the outcome of one customer message for rich clients (HTTP, MCP, etc).
type Exchange struct {
	Reply      string                    `json:"reply"`
	State      *domain.ConversationState `json:"state"`
	Diff       *domain.StateDiff         `json:"diff,omitempty"`
	Terminated bool                      `json:"terminated"`
}

// SendMessage sanitizes text and runs one turn of the session under its lock.
// The session is created on first use and saved only when the turn succeeds.
// maxInputSize <= 0 uses the environment default (see SanitizeInputLimit).
func SendMessage(
	ctx context.Context,
	engine ports.ConversationEngine,
	sessions *session.Manager,
	sessionID string,
	text string,
	maxInputSize int,
) (*Exchange, error) {
	clean, err := SanitizeInputLimit(text, maxInputSize)
	if err != nil {
		return nil, err
	}

	before, after, err := sessions.Update(ctx, sessionID, func(ctx context.Context, state *domain.ConversationState) (*domain.ConversationState, error) {
		return engine.HandleUserMessage(ctx, state, clean)
	})
	if err != nil {
		return nil, err
	}

	return &Exchange{
		Reply:      after.LastReply(),
		State:      after,
		Diff:       domain.Diff(before, after),
		Terminated: after.Terminated(),
	}, nil
}

package ports

import (
	"context"

	"github.com/aretw0/baristabot/pkg/domain"
)

// ConversationEngine is the caller boundary of the dialogue engine.
// It is the interface used by adapters (HTTP, MCP, CLI) that manage state externally.
type ConversationEngine interface {
	// HandleUserMessage appends the user turn and runs the dialogue loop until the
	// engine needs new input or the conversation terminates.
	HandleUserMessage(ctx context.Context, state *domain.ConversationState, text string) (*domain.ConversationState, error)
}

package ports

import (
	"context"

	"github.com/aretw0/baristabot/pkg/domain"
)

// Reasoner is the natural-language turn generator.
// Implementations are pre-bound to the action catalog. The history always starts
// with the system instruction turn.
type Reasoner interface {
	// TakeTurn returns either a text reply or a batch of action requests.
	// Transport failures are returned as is; the engine does not retry.
	TakeTurn(ctx context.Context, history []domain.Turn) (domain.Turn, error)
}

// ReasonerFunc adapts a function to the Reasoner interface.
type ReasonerFunc func(ctx context.Context, history []domain.Turn) (domain.Turn, error)

// TakeTurn calls f.
func (f ReasonerFunc) TakeTurn(ctx context.Context, history []domain.Turn) (domain.Turn, error) {
	return f(ctx, history)
}

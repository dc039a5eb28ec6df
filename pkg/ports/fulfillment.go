package ports

import (
	"context"

	"github.com/aretw0/baristabot/pkg/domain"
)

// Fulfillment receives orders once they are placed.
// An error aborts the order batch, leaving the conversation unfinished.
type Fulfillment interface {
	SubmitOrder(ctx context.Context, sessionID string, order domain.Order) error
}

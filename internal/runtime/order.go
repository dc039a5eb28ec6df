package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/aretw0/baristabot/internal/logging"
	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/aretw0/baristabot/pkg/ports"
	"github.com/mitchellh/mapstructure"
)

const (
	confirmAck       = "I've received your confirmation request."
	clearAck         = "Order cleared."
	alreadyPlacedMsg = "Error: the order was already placed and can no longer change."
)

// TokenFunc generates the confirmation token handed out when an order is placed.
type TokenFunc func() string

// DefaultToken returns a number between 1 and 5, the expected wait in minutes.
func DefaultToken() string {
	return strconv.Itoa(rand.IntN(5) + 1)
}

// OrderOutcome is the effect of one order batch. It is committed by the engine
// only when the whole batch succeeded.
type OrderOutcome struct {
	Results []domain.ActionResult
	Order   domain.Order
	// Placed is true when this batch submitted the order.
	Placed bool
	Token  string
}

// OrderHandler applies order-mutating actions.
type OrderHandler struct {
	fulfillment ports.Fulfillment
	token       TokenFunc
	logger      *slog.Logger
}

// NewOrderHandler creates a handler. Nil arguments fall back to defaults.
func NewOrderHandler(fulfillment ports.Fulfillment, token TokenFunc, logger *slog.Logger) *OrderHandler {
	if logger == nil {
		logger = logging.NewNop()
	}
	if fulfillment == nil {
		fulfillment = &kitchenLog{logger: logger}
	}
	if token == nil {
		token = DefaultToken
	}
	return &OrderHandler{fulfillment: fulfillment, token: token, logger: logger}
}

// Supports reports whether the handler implements the named action.
func (h *OrderHandler) Supports(name string) bool {
	switch name {
	case domain.ActionAddToOrder, domain.ActionConfirmOrder, domain.ActionGetOrder,
		domain.ActionClearOrder, domain.ActionPlaceOrder:
		return true
	}
	return false
}

type addLineArgs struct {
	Drink     string   `mapstructure:"drink"`
	Modifiers []string `mapstructure:"modifiers"`
}

// Apply runs the batch in emitted order against a working copy of the order.
// The state is read but never modified.
//
// Every request gets exactly one result. A request the handler does not
// implement fails the whole batch before any effect runs.
func (h *OrderHandler) Apply(ctx context.Context, state *domain.ConversationState, batch []domain.ActionRequest) (*OrderOutcome, error) {
	for _, req := range batch {
		if !h.Supports(req.Name) {
			return nil, &domain.UnhandledActionError{Name: req.Name, RequestID: req.ID}
		}
	}

	out := &OrderOutcome{
		Results: make([]domain.ActionResult, 0, len(batch)),
		Order:   state.Order.Clone(),
	}
	finished := state.Finished
	token := state.ConfirmationToken

	for _, req := range batch {
		res := domain.ActionResult{RequestID: req.ID, Name: req.Name}

		switch req.Name {
		case domain.ActionAddToOrder:
			if finished {
				res.Content, res.IsError = alreadyPlacedMsg, true
				break
			}
			line, err := decodeLine(req.Args)
			if err != nil {
				res.Content, res.IsError = "Error: "+err.Error(), true
				break
			}
			if out.Order == nil {
				out.Order = domain.Order{}
			}
			out.Order = append(out.Order, line)
			res.Content = out.Order.String()

		case domain.ActionConfirmOrder:
			res.Content = confirmAck

		case domain.ActionGetOrder:
			res.Content = out.Order.Summary()

		case domain.ActionClearOrder:
			if finished {
				res.Content, res.IsError = alreadyPlacedMsg, true
				break
			}
			out.Order = domain.Order{}
			res.Content = clearAck

		case domain.ActionPlaceOrder:
			if finished {
				// Placing twice repeats the original token.
				res.Content = token
				break
			}
			if err := h.fulfillment.SubmitOrder(ctx, state.SessionID, out.Order.Clone()); err != nil {
				return nil, fmt.Errorf("submit order: %w", err)
			}
			token = h.token()
			finished = true
			out.Placed = true
			out.Token = token
			res.Content = token
		}

		out.Results = append(out.Results, res)
	}

	return out, nil
}

func decodeLine(args map[string]any) (domain.OrderLine, error) {
	var parsed addLineArgs
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &parsed,
	})
	if err != nil {
		return domain.OrderLine{}, err
	}
	if err := dec.Decode(args); err != nil {
		return domain.OrderLine{}, fmt.Errorf("invalid %s arguments: %w", domain.ActionAddToOrder, err)
	}

	drink := strings.TrimSpace(parsed.Drink)
	if drink == "" {
		return domain.OrderLine{}, fmt.Errorf("%s requires a drink", domain.ActionAddToOrder)
	}

	var mods []string
	for _, m := range parsed.Modifiers {
		if m = strings.TrimSpace(m); m != "" {
			mods = append(mods, m)
		}
	}
	return domain.OrderLine{Drink: drink, Modifiers: mods}, nil
}

// kitchenLog is the fulfillment used when none is configured.
type kitchenLog struct {
	logger *slog.Logger
}

func (k *kitchenLog) SubmitOrder(ctx context.Context, sessionID string, order domain.Order) error {
	k.logger.Info("sending order to kitchen", "session_id", sessionID, "lines", len(order), "order", order.String())
	return nil
}

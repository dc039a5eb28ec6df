// Package runtime implements the dialogue loop: it alternates Reasoner turns
// with routing decisions and action execution until the conversation needs a
// new user turn or terminates.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/baristabot/internal/logging"
	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/aretw0/baristabot/pkg/ports"
	"github.com/aretw0/baristabot/pkg/registry"
)

// Engine is the dialogue state machine.
type Engine struct {
	reasoner    ports.Reasoner
	registry    *registry.Registry
	orders      *OrderHandler
	fulfillment ports.Fulfillment
	token       TokenFunc
	persona     string
	maxSteps    int
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// NewEngine wires the Reasoner to the registry.
// It fails when the registry declares an order action the Order Handler cannot apply.
func NewEngine(reasoner ports.Reasoner, reg *registry.Registry, opts ...EngineOption) (*Engine, error) {
	if reasoner == nil {
		return nil, errors.New("reasoner is required")
	}
	if reg == nil {
		return nil, errors.New("registry is required")
	}

	e := &Engine{
		reasoner: reasoner,
		registry: reg,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.orders = NewOrderHandler(e.fulfillment, e.token, e.logger)
	for _, name := range reg.Names(domain.ClassOrder) {
		if !e.orders.Supports(name) {
			return nil, fmt.Errorf("order action %q has no implementation", name)
		}
	}

	return e, nil
}

// Catalog returns the actions the Reasoner is bound to.
func (e *Engine) Catalog() []domain.Action {
	return e.registry.Catalog()
}

// HandleUserMessage appends the user turn and runs the loop until the Reasoner
// replies with text or the conversation terminates.
//
// The input state is never modified. On error it is still the latest valid
// state and the caller may retry with it.
func (e *Engine) HandleUserMessage(ctx context.Context, state *domain.ConversationState, text string) (*domain.ConversationState, error) {
	if state == nil {
		return nil, errors.New("state is required")
	}
	if strings.TrimSpace(text) == "" {
		return state, domain.ErrEmptyMessage
	}
	if state.Terminated() {
		return state, domain.ErrConversationFinished
	}

	next := state.Clone()
	if next.Status == "" {
		next.Status = domain.StatusActive
	}
	user := domain.UserTurn(text)
	next.Append(user)
	e.emitTurn(ctx, next.SessionID, user, 0)

	if err := e.run(ctx, next); err != nil {
		return state, err
	}
	return next, nil
}

func (e *Engine) run(ctx context.Context, state *domain.ConversationState) error {
	logger := e.logger.With("session_id", state.SessionID)

	for steps := 1; ; steps++ {
		if e.maxSteps > 0 && steps > e.maxSteps {
			return fmt.Errorf("%w: %d", domain.ErrStepLimitExceeded, e.maxSteps)
		}

		if err := e.reason(ctx, state); err != nil {
			return err
		}

		route, err := Route(state, e.registry)
		if err != nil {
			return err
		}
		last, _ := state.LastTurn()
		e.emitRoute(ctx, state.SessionID, route, len(last.Requests))
		logger.Debug("route decided", "route", route, "batch", len(last.Requests))

		switch route {
		case domain.RouteTerminate:
			state.Status = domain.StatusTerminated
			return nil
		case domain.RouteReasoner:
			return nil
		case domain.RouteAutoExec:
			if err := e.execAuto(ctx, state, last.Requests); err != nil {
				return err
			}
		case domain.RouteOrderExec:
			if err := e.execOrder(ctx, state, last.Requests); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unexpected route %q", route)
		}
	}
}

func (e *Engine) reason(ctx context.Context, state *domain.ConversationState) error {
	history := state.History
	if e.persona != "" {
		history = make([]domain.Turn, 0, len(state.History)+1)
		history = append(history, domain.SystemTurn(e.persona))
		history = append(history, state.History...)
	}

	start := time.Now()
	turn, err := e.reasoner.TakeTurn(ctx, history)
	if err != nil {
		return &domain.ReasonerError{Err: err}
	}
	latency := time.Since(start)

	turn.Role = domain.RoleAssistant
	turn.Result = nil
	if turn.HasActionRequests() {
		turn = domain.ActionRequestTurn(turn.Requests...)
	}

	state.Append(turn)
	e.emitTurn(ctx, state.SessionID, turn, latency)
	e.logger.Debug("reasoner turn", "session_id", state.SessionID, "kind", turn.Kind(), "latency", latency)
	return nil
}

// execAuto runs a batch that contains at least one auto action. Order actions
// mixed into it are answered with an error result and not applied.
func (e *Engine) execAuto(ctx context.Context, state *domain.ConversationState, batch []domain.ActionRequest) error {
	classes := make([]domain.ActionClass, len(batch))
	for i, req := range batch {
		class, err := e.registry.Classify(req.Name)
		if err != nil {
			return err
		}
		classes[i] = class
	}

	valid := strings.Join(e.registry.Names(domain.ClassAuto), ", ")
	for i, req := range batch {
		class := classes[i]
		e.emitActionCall(ctx, state.SessionID, class, req)

		res := domain.ActionResult{RequestID: req.ID, Name: req.Name}
		handler, err := e.registry.Resolve(req.Name)
		if err != nil {
			res.Content = fmt.Sprintf("Error: %s is not a valid tool, try one of [%s].", req.Name, valid)
			res.IsError = true
		} else if out, err := handler(ctx, req.Args); err != nil {
			e.logger.Warn("auto action failed", "session_id", state.SessionID, "action", req.Name, "error", err)
			res.Content = "Error: " + err.Error()
			res.IsError = true
		} else {
			res.Content = out
		}

		state.Append(domain.ResultTurn(res))
		e.emitActionReturn(ctx, state.SessionID, class, res)
	}
	return nil
}

func (e *Engine) execOrder(ctx context.Context, state *domain.ConversationState, batch []domain.ActionRequest) error {
	for _, req := range batch {
		e.emitActionCall(ctx, state.SessionID, domain.ClassOrder, req)
	}

	outcome, err := e.orders.Apply(ctx, state, batch)
	if err != nil {
		return err
	}

	state.Order = outcome.Order
	for _, res := range outcome.Results {
		state.Append(domain.ResultTurn(res))
		e.emitActionReturn(ctx, state.SessionID, domain.ClassOrder, res)
	}

	if outcome.Placed {
		state.Finished = true
		state.ConfirmationToken = outcome.Token
		e.logger.Info("order placed", "session_id", state.SessionID, "lines", len(outcome.Order), "token", outcome.Token)
		e.emitOrderPlaced(ctx, state.SessionID, outcome.Order.Clone(), outcome.Token)
	}
	return nil
}

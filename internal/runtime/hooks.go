package runtime

import (
	"context"
	"time"

	"github.com/aretw0/baristabot/pkg/domain"
)

func (e *Engine) base(t domain.EventType, sessionID string) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, SessionID: sessionID}
}

func (e *Engine) emitTurn(ctx context.Context, sessionID string, turn domain.Turn, latency time.Duration) {
	if e.hooks.OnTurn == nil {
		return
	}
	e.hooks.OnTurn(ctx, &domain.TurnEvent{
		EventBase: e.base(domain.EventTurn, sessionID),
		Role:      turn.Role,
		Kind:      turn.Kind(),
		Latency:   latency,
	})
}

func (e *Engine) emitRoute(ctx context.Context, sessionID string, route domain.Route, batch int) {
	if e.hooks.OnRoute == nil {
		return
	}
	e.hooks.OnRoute(ctx, &domain.RouteEvent{
		EventBase: e.base(domain.EventRoute, sessionID),
		Route:     route,
		Batch:     batch,
	})
}

func (e *Engine) emitActionCall(ctx context.Context, sessionID string, class domain.ActionClass, req domain.ActionRequest) {
	if e.hooks.OnActionCall == nil {
		return
	}
	e.hooks.OnActionCall(ctx, &domain.ActionEvent{
		EventBase: e.base(domain.EventActionCall, sessionID),
		RequestID: req.ID,
		Name:      req.Name,
		Class:     class,
		Input:     req.Args,
	})
}

func (e *Engine) emitActionReturn(ctx context.Context, sessionID string, class domain.ActionClass, res domain.ActionResult) {
	if e.hooks.OnActionReturn == nil {
		return
	}
	e.hooks.OnActionReturn(ctx, &domain.ActionEvent{
		EventBase: e.base(domain.EventActionReturn, sessionID),
		RequestID: res.RequestID,
		Name:      res.Name,
		Class:     class,
		Output:    res.Content,
		IsError:   res.IsError,
	})
}

func (e *Engine) emitOrderPlaced(ctx context.Context, sessionID string, order domain.Order, token string) {
	if e.hooks.OnOrderPlaced == nil {
		return
	}
	e.hooks.OnOrderPlaced(ctx, &domain.OrderEvent{
		EventBase: e.base(domain.EventOrderPlaced, sessionID),
		Order:     order,
		Token:     token,
	})
}

package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/baristabot/pkg/domain"
)

// LogHooks logs lifecycle events at debug level, and placed orders at info level.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			logger.DebugContext(ctx, "turn", "session_id", e.SessionID, "role", e.Role, "kind", e.Kind, "latency", e.Latency)
		},
		OnRoute: func(ctx context.Context, e *domain.RouteEvent) {
			logger.DebugContext(ctx, "route", "session_id", e.SessionID, "route", e.Route, "batch", e.Batch)
		},
		OnActionCall: func(ctx context.Context, e *domain.ActionEvent) {
			logger.DebugContext(ctx, "action_call", "session_id", e.SessionID, "action", e.Name, "class", e.Class, "request_id", e.RequestID)
		},
		OnActionReturn: func(ctx context.Context, e *domain.ActionEvent) {
			logger.DebugContext(ctx, "action_return", "session_id", e.SessionID, "action", e.Name, "is_error", e.IsError)
		},
		OnOrderPlaced: func(ctx context.Context, e *domain.OrderEvent) {
			logger.InfoContext(ctx, "order_placed", "session_id", e.SessionID, "token", e.Token, "lines", len(e.Order))
		},
	}
}

// ComposeHooks fans every event out to all hooks, in order.
func ComposeHooks(all ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range all {
		out.OnTurn = chain(out.OnTurn, h.OnTurn)
		out.OnRoute = chain(out.OnRoute, h.OnRoute)
		out.OnActionCall = chain(out.OnActionCall, h.OnActionCall)
		out.OnActionReturn = chain(out.OnActionReturn, h.OnActionReturn)
		out.OnOrderPlaced = chain(out.OnOrderPlaced, h.OnOrderPlaced)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

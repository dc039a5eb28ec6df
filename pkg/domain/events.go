package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventTurn         EventType = "turn"
	EventRoute        EventType = "route"
	EventActionCall   EventType = "action_call"
	EventActionReturn EventType = "action_return"
	EventOrderPlaced  EventType = "order_placed"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// TurnEvent is emitted for every turn appended to the history.
type TurnEvent struct {
	EventBase
	Role Role     `json:"role"`
	Kind TurnKind `json:"kind"`
	// Latency of the Reasoner call that produced the turn (assistant turns only).
	Latency time.Duration `json:"latency,omitempty"`
}

// RouteEvent records a routing decision.
type RouteEvent struct {
	EventBase
	Route Route `json:"route"`
	Batch int   `json:"batch"`
}

// ActionEvent represents an action execution.
type ActionEvent struct {
	EventBase
	RequestID string         `json:"request_id"`
	Name      string         `json:"name"`
	Class     ActionClass    `json:"class"`
	Input     map[string]any `json:"input,omitempty"`
	Output    string         `json:"output,omitempty"`
	IsError   bool           `json:"is_error,omitempty"`
}

// OrderEvent is emitted when an order is handed to fulfillment.
type OrderEvent struct {
	EventBase
	Order Order  `json:"order"`
	Token string `json:"token"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnTurn         func(context.Context, *TurnEvent)
	OnRoute        func(context.Context, *RouteEvent)
	OnActionCall   func(context.Context, *ActionEvent)
	OnActionReturn func(context.Context, *ActionEvent)
	OnOrderPlaced  func(context.Context, *OrderEvent)
}

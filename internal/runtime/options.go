package runtime

import (
	"log/slog"

	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/aretw0/baristabot/pkg/ports"
)

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithPersona sets the system instruction prepended to every Reasoner call.
// An empty persona sends the history as is.
func WithPersona(persona string) EngineOption {
	return func(e *Engine) {
		e.persona = persona
	}
}

// WithMaxSteps bounds the number of Reasoner calls per user message. Zero means unlimited.
func WithMaxSteps(n int) EngineOption {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// WithFulfillment sets the port receiving placed orders.
func WithFulfillment(f ports.Fulfillment) EngineOption {
	return func(e *Engine) {
		e.fulfillment = f
	}
}

// WithTokenGenerator replaces the confirmation token generator.
func WithTokenGenerator(fn TokenFunc) EngineOption {
	return func(e *Engine) {
		e.token = fn
	}
}

package baristabot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/baristabot/internal/logging"
	"github.com/aretw0/baristabot/internal/runtime"
	"github.com/aretw0/baristabot/pkg/catalog"
	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/aretw0/baristabot/pkg/menu"
	"github.com/aretw0/baristabot/pkg/ports"
)

// Engine is the high-level entry point of the library.
// It wires the default catalog to a Reasoner and wraps the internal runtime.
type Engine struct {
	runtime     *runtime.Engine
	menu        ports.MenuProvider
	fulfillment ports.Fulfillment
	token       runtime.TokenFunc
	persona     string
	maxSteps    int
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
	Name        string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithMenu replaces the embedded menu.
func WithMenu(m ports.MenuProvider) Option {
	return func(e *Engine) {
		e.menu = m
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithPersona overrides the system instruction.
func WithPersona(persona string) Option {
	return func(e *Engine) {
		e.persona = persona
	}
}

// WithMaxSteps bounds the Reasoner calls per user message. Zero means unlimited.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		e.maxSteps = n
	}
}

// WithFulfillment sets where placed orders are sent.
func WithFulfillment(f ports.Fulfillment) Option {
	return func(e *Engine) {
		e.fulfillment = f
	}
}

// WithTokenGenerator replaces the confirmation token generator.
func WithTokenGenerator(fn func() string) Option {
	return func(e *Engine) {
		e.token = fn
	}
}

// WithName labels the engine in logs.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New creates an engine bound to the default cafe catalog.
// The Reasoner must be bound to the same catalog (see catalog.Default).
func New(reasoner ports.Reasoner, opts ...Option) (*Engine, error) {
	eng := &Engine{
		persona: Persona,
		Name:    "baristabot",
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("app", eng.Name)
	}
	if eng.menu == nil {
		eng.menu = menu.NewProvider(menu.Default())
	}

	reg, err := catalog.NewRegistry(eng.menu)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	eng.runtime, err = runtime.NewEngine(reasoner, reg,
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
		runtime.WithPersona(eng.persona),
		runtime.WithMaxSteps(eng.maxSteps),
		runtime.WithFulfillment(eng.fulfillment),
		runtime.WithTokenGenerator(eng.token),
	)
	if err != nil {
		return nil, err
	}
	return eng, nil
}

// Start creates the state of a new conversation.
func (e *Engine) Start(sessionID string) *domain.ConversationState {
	return domain.NewConversationState(sessionID)
}

// HandleUserMessage runs one user turn. See ports.ConversationEngine.
func (e *Engine) HandleUserMessage(ctx context.Context, state *domain.ConversationState, text string) (*domain.ConversationState, error) {
	return e.runtime.HandleUserMessage(ctx, state, text)
}

// Catalog returns the actions the Reasoner must be bound to.
func (e *Engine) Catalog() []domain.Action {
	return e.runtime.Catalog()
}

// Menu returns the menu text served by the menu lookup action.
func (e *Engine) Menu(ctx context.Context) (string, error) {
	return e.menu.Menu(ctx)
}

var _ ports.ConversationEngine = (*Engine)(nil)

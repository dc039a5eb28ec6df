package testutils

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/google/uuid"
)

// ErrScriptExhausted is returned when the Reasoner is called more times than scripted.
var ErrScriptExhausted = errors.New("scripted reasoner has no more turns")

// Step produces one Reasoner turn. It sees the history the engine sent.
type Step func(history []domain.Turn) (domain.Turn, error)

// ScriptedReasoner replays a fixed sequence of turns and records every call.
type ScriptedReasoner struct {
	mu    sync.Mutex
	steps []Step
	calls [][]domain.Turn
}

// NewScriptedReasoner creates a reasoner that plays the steps in order.
func NewScriptedReasoner(steps ...Step) *ScriptedReasoner {
	return &ScriptedReasoner{steps: steps}
}

// Push appends steps to the script.
func (r *ScriptedReasoner) Push(steps ...Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, steps...)
}

// TakeTurn implements ports.Reasoner.
func (r *ScriptedReasoner) TakeTurn(ctx context.Context, history []domain.Turn) (domain.Turn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]domain.Turn, len(history))
	copy(snapshot, history)
	r.calls = append(r.calls, snapshot)

	if len(r.steps) == 0 {
		return domain.Turn{}, ErrScriptExhausted
	}
	step := r.steps[0]
	r.steps = r.steps[1:]
	return step(snapshot)
}

// Calls returns the histories received so far.
func (r *ScriptedReasoner) Calls() [][]domain.Turn {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// Remaining reports how many scripted steps were not consumed.
func (r *ScriptedReasoner) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.steps)
}

// Say scripts a plain-text reply.
func Say(text string) Step {
	return func([]domain.Turn) (domain.Turn, error) {
		return domain.AssistantTurn(text), nil
	}
}

// Call scripts a batch of action requests.
func Call(requests ...domain.ActionRequest) Step {
	return func([]domain.Turn) (domain.Turn, error) {
		return domain.ActionRequestTurn(requests...), nil
	}
}

// Fail scripts a Reasoner failure.
func Fail(err error) Step {
	return func([]domain.Turn) (domain.Turn, error) {
		return domain.Turn{}, err
	}
}

// Request builds an action request with a fresh ID.
func Request(name string, args map[string]any) domain.ActionRequest {
	return domain.ActionRequest{
		ID:   fmt.Sprintf("call_%s", uuid.NewString()),
		Name: name,
		Args: args,
	}
}

// AddLine builds an add_to_order request.
func AddLine(drink string, modifiers ...string) domain.ActionRequest {
	mods := make([]any, len(modifiers))
	for i, m := range modifiers {
		mods[i] = m
	}
	return Request(domain.ActionAddToOrder, map[string]any{"drink": drink, "modifiers": mods})
}

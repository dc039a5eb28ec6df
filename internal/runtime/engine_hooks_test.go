package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/baristabot/internal/runtime"
	"github.com/aretw0/baristabot/internal/testutils"
	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	var (
		roles   []domain.Role
		routes  []domain.Route
		calls   []string
		returns []string
		placed  []*domain.OrderEvent
	)

	hooks := domain.LifecycleHooks{
		OnTurn: func(ctx context.Context, e *domain.TurnEvent) {
			roles = append(roles, e.Role)
		},
		OnRoute: func(ctx context.Context, e *domain.RouteEvent) {
			routes = append(routes, e.Route)
		},
		OnActionCall: func(ctx context.Context, e *domain.ActionEvent) {
			calls = append(calls, e.Name)
		},
		OnActionReturn: func(ctx context.Context, e *domain.ActionEvent) {
			returns = append(returns, e.Output)
		},
		OnOrderPlaced: func(ctx context.Context, e *domain.OrderEvent) {
			placed = append(placed, e)
		},
	}

	reasoner := testutils.NewScriptedReasoner(
		testutils.Call(testutils.AddLine("Espresso"), testutils.Request(domain.ActionPlaceOrder, nil)),
		testutils.Say("Thanks!"),
	)
	eng := newEngine(t, reasoner, runtime.WithLifecycleHooks(hooks))

	state, err := eng.HandleUserMessage(context.Background(), domain.NewConversationState("hooks"), "An espresso, that's all")
	require.NoError(t, err)
	assert.True(t, state.Terminated())

	assert.Equal(t, []domain.Role{domain.RoleUser, domain.RoleAssistant, domain.RoleAssistant}, roles)
	assert.Equal(t, []domain.Route{domain.RouteOrderExec, domain.RouteTerminate}, routes)
	assert.Equal(t, []string{domain.ActionAddToOrder, domain.ActionPlaceOrder}, calls)
	assert.Equal(t, []string{"Espresso (no modifiers)", "3"}, returns)

	require.Len(t, placed, 1)
	assert.Equal(t, "hooks", placed[0].SessionID)
	assert.Equal(t, "3", placed[0].Token)
	assert.Len(t, placed[0].Order, 1)
}

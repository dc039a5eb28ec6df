package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/baristabot/internal/runtime"
	"github.com/aretw0/baristabot/internal/testutils"
	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/aretw0/baristabot/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const persona = "You are a test barista."

func newEngine(t *testing.T, r *testutils.ScriptedReasoner, opts ...runtime.EngineOption) *runtime.Engine {
	t.Helper()
	opts = append([]runtime.EngineOption{runtime.WithPersona(persona), runtime.WithTokenGenerator(fixedToken("3"))}, opts...)
	eng, err := runtime.NewEngine(r, testutils.NewRegistry(t), opts...)
	require.NoError(t, err)
	return eng
}

func TestEngine_MenuQuestion(t *testing.T) {
	reasoner := testutils.NewScriptedReasoner(
		testutils.Call(testutils.Request(domain.ActionGetMenu, nil)),
		testutils.Say("We serve lattes, cappuccinos and more."),
	)
	eng := newEngine(t, reasoner)
	start := domain.NewConversationState("menu")

	state, err := eng.HandleUserMessage(context.Background(), start, "What drinks do you have?")
	require.NoError(t, err)

	require.Len(t, state.History, 4)
	assert.Equal(t, domain.RoleUser, state.History[0].Role)
	assert.Equal(t, domain.TurnActionRequests, state.History[1].Kind())
	require.Equal(t, domain.TurnActionResult, state.History[2].Kind())
	assert.Equal(t, testutils.MenuText(), state.History[2].Content)
	assert.Equal(t, state.History[1].Requests[0].ID, state.History[2].Result.RequestID)
	assert.Equal(t, "We serve lattes, cappuccinos and more.", state.LastReply())

	assert.Empty(t, state.Order)
	assert.False(t, state.Finished)
	assert.Equal(t, domain.StatusActive, state.Status)
	assert.Empty(t, start.History, "caller state must not change")

	calls := reasoner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, domain.SystemTurn(persona), calls[0][0])
	assert.Equal(t, domain.TurnActionResult, calls[1][len(calls[1])-1].Kind())
	for _, turn := range state.History {
		assert.NotEqual(t, domain.RoleSystem, turn.Role, "persona must not be stored")
	}
}

func TestEngine_LatteConfirmed(t *testing.T) {
	reasoner := testutils.NewScriptedReasoner(
		testutils.Call(testutils.AddLine("Latte", "Oat Milk")),
		testutils.Call(testutils.Request(domain.ActionConfirmOrder, nil)),
		testutils.Say("One latte with oat milk. Is that correct?"),
		testutils.Say("Great! Anything else?"),
	)
	eng := newEngine(t, reasoner)
	ctx := context.Background()

	state, err := eng.HandleUserMessage(ctx, domain.NewConversationState("latte"), "A latte with oat milk please")
	require.NoError(t, err)
	assert.Equal(t, "One latte with oat milk. Is that correct?", state.LastReply())
	assert.Equal(t, "Latte (Oat Milk)", state.History[2].Content)
	assert.Equal(t, "I've received your confirmation request.", state.History[4].Content)

	state, err = eng.HandleUserMessage(ctx, state, "Yes")
	require.NoError(t, err)
	assert.Equal(t, "Great! Anything else?", state.LastReply())
	assert.True(t, state.Order.Equal(domain.Order{{Drink: "Latte", Modifiers: []string{"Oat Milk"}}}))
	assert.False(t, state.Finished)
	assert.Zero(t, reasoner.Remaining())
}

func TestEngine_PlaceOrder(t *testing.T) {
	reasoner := testutils.NewScriptedReasoner(
		testutils.Call(testutils.Request(domain.ActionPlaceOrder, nil)),
		testutils.Say("Your order will be ready in about 3 minutes. Bye!"),
	)
	eng := newEngine(t, reasoner)

	start := domain.NewConversationState("place")
	start.Order = domain.Order{{Drink: "Latte", Modifiers: []string{"Oat Milk"}}}

	state, err := eng.HandleUserMessage(context.Background(), start, "That's all, thanks")
	require.NoError(t, err)
	assert.True(t, state.Finished)
	assert.Equal(t, "3", state.ConfirmationToken)
	assert.Equal(t, "3", state.History[2].Content)
	assert.True(t, state.Terminated())
	assert.Len(t, state.Order, 1)

	_, err = eng.HandleUserMessage(context.Background(), state, "One more please")
	assert.ErrorIs(t, err, domain.ErrConversationFinished)
}

func TestEngine_ClearOrder(t *testing.T) {
	reasoner := testutils.NewScriptedReasoner(
		testutils.Call(
			testutils.AddLine("Mocha"),
			testutils.Request(domain.ActionClearOrder, nil),
			testutils.Request(domain.ActionGetOrder, nil),
		),
		testutils.Say("Your order is empty."),
	)
	eng := newEngine(t, reasoner)

	state, err := eng.HandleUserMessage(context.Background(), domain.NewConversationState("clear"), "Start over")
	require.NoError(t, err)
	assert.Equal(t, "Mocha (no modifiers)", state.History[2].Content)
	assert.Equal(t, "Order cleared.", state.History[3].Content)
	assert.Equal(t, "(no order)", state.History[4].Content)
	assert.Empty(t, state.Order)
}

func TestEngine_MixedBatch(t *testing.T) {
	add := testutils.AddLine("Latte")
	menuReq := testutils.Request(domain.ActionGetMenu, nil)
	reasoner := testutils.NewScriptedReasoner(
		testutils.Call(add, menuReq),
		testutils.Say("Here is the menu."),
	)
	eng := newEngine(t, reasoner)

	state, err := eng.HandleUserMessage(context.Background(), domain.NewConversationState("mixed"), "Menu and a latte")
	require.NoError(t, err)

	require.Len(t, state.History, 5)
	addResult := state.History[2].Result
	require.NotNil(t, addResult)
	assert.Equal(t, add.ID, addResult.RequestID)
	assert.True(t, addResult.IsError)
	assert.Equal(t, "Error: add_to_order is not a valid tool, try one of [get_menu].", addResult.Content)

	menuResult := state.History[3].Result
	require.NotNil(t, menuResult)
	assert.Equal(t, menuReq.ID, menuResult.RequestID)
	assert.False(t, menuResult.IsError)
	assert.Empty(t, state.Order, "order actions in an auto batch are not applied")
}

func TestEngine_AutoHandlerError(t *testing.T) {
	catalog := []domain.Action{{Name: domain.ActionGetMenu, Description: "menu", Class: domain.ClassAuto}}
	reg, err := registry.New(catalog, map[string]registry.Handler{
		domain.ActionGetMenu: func(ctx context.Context, args map[string]any) (string, error) {
			return "", errors.New("menu unavailable")
		},
	})
	require.NoError(t, err)

	reasoner := testutils.NewScriptedReasoner(
		testutils.Call(testutils.Request(domain.ActionGetMenu, nil)),
		testutils.Say("Sorry, the menu is unavailable."),
	)
	eng, err := runtime.NewEngine(reasoner, reg)
	require.NoError(t, err)

	state, err := eng.HandleUserMessage(context.Background(), domain.NewConversationState("err"), "Menu?")
	require.NoError(t, err)
	result := state.History[2].Result
	require.NotNil(t, result)
	assert.True(t, result.IsError)
	assert.Equal(t, "Error: menu unavailable", result.Content)
}

func TestEngine_FailuresLeaveStateUntouched(t *testing.T) {
	boom := errors.New("connection reset")

	tests := []struct {
		name  string
		steps []testutils.Step
		check func(t *testing.T, err error)
	}{
		{
			name:  "reasoner failure",
			steps: []testutils.Step{testutils.Fail(boom)},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, boom)
				var rerr *domain.ReasonerError
				assert.ErrorAs(t, err, &rerr)
			},
		},
		{
			name:  "reasoner failure after actions",
			steps: []testutils.Step{testutils.Call(testutils.AddLine("Latte")), testutils.Fail(boom)},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, boom)
			},
		},
		{
			name:  "unknown action",
			steps: []testutils.Step{testutils.Call(testutils.Request("make_toast", nil))},
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, domain.ErrUnknownAction)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := newEngine(t, testutils.NewScriptedReasoner(tt.steps...))
			start := domain.NewConversationState("fail")
			start.Append(domain.UserTurn("hi"), domain.AssistantTurn("Hello!"))

			out, err := eng.HandleUserMessage(context.Background(), start, "A latte")
			require.Error(t, err)
			tt.check(t, err)
			assert.Same(t, start, out)
			assert.Len(t, start.History, 2)
			assert.Empty(t, start.Order)
		})
	}
}

func TestEngine_StepLimit(t *testing.T) {
	loop := testutils.Call(testutils.Request(domain.ActionGetMenu, nil))
	reasoner := testutils.NewScriptedReasoner(loop, loop, loop, loop)
	eng := newEngine(t, reasoner, runtime.WithMaxSteps(3))

	start := domain.NewConversationState("loop")
	_, err := eng.HandleUserMessage(context.Background(), start, "Menu?")
	assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)
	assert.Len(t, reasoner.Calls(), 3)
	assert.Empty(t, start.History)
}

func TestEngine_EmptyMessage(t *testing.T) {
	reasoner := testutils.NewScriptedReasoner()
	eng := newEngine(t, reasoner)

	_, err := eng.HandleUserMessage(context.Background(), domain.NewConversationState("x"), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
	assert.Empty(t, reasoner.Calls())
}

func TestNewEngine_Validation(t *testing.T) {
	reasoner := testutils.NewScriptedReasoner()

	_, err := runtime.NewEngine(nil, testutils.NewRegistry(t))
	assert.Error(t, err)

	_, err = runtime.NewEngine(reasoner, nil)
	assert.Error(t, err)

	reg, err := registry.New([]domain.Action{{Name: "refund_order", Class: domain.ClassOrder}}, nil)
	require.NoError(t, err)
	_, err = runtime.NewEngine(reasoner, reg)
	assert.ErrorContains(t, err, "refund_order")
}

package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewConversationState(sessionID)
		state.Append(
			domain.UserTurn("a latte with oat milk"),
			domain.ActionRequestTurn(domain.ActionRequest{
				ID:   "call-1",
				Name: domain.ActionAddToOrder,
				Args: map[string]any{"drink": "Latte", "modifiers": []any{"Oat Milk"}},
			}),
			domain.ResultTurn(domain.ActionResult{RequestID: "call-1", Name: domain.ActionAddToOrder, Content: "Latte (Oat Milk)"}),
		)
		state.Order = domain.Order{{Drink: "Latte", Modifiers: []string{"Oat Milk"}}}

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, sessionID, loaded.SessionID)
		assert.True(t, state.Order.Equal(loaded.Order), "order should round-trip")
		require.Len(t, loaded.History, 3)
		assert.Equal(t, domain.TurnActionRequests, loaded.History[1].Kind())
		assert.Equal(t, "call-1", loaded.History[1].Requests[0].ID)
		require.NotNil(t, loaded.History[2].Result)
		assert.Equal(t, "call-1", loaded.History[2].Result.RequestID)
		assert.False(t, loaded.Finished)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		state := domain.NewConversationState(sessionID)
		state.Finished = true
		state.ConfirmationToken = "4"
		require.NoError(t, store.Save(ctx, sessionID, state))

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.True(t, loaded.Finished)
		assert.Equal(t, "4", loaded.ConfirmationToken)
		assert.Empty(t, loaded.History)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewConversationState(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewConversationState(id1))
		_ = store.Save(ctx, id2, domain.NewConversationState(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/baristabot/pkg/adapters/memory"
	"github.com/aretw0/baristabot/pkg/domain"
	"github.com/aretw0/baristabot/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStateStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	state := domain.NewConversationState("iso")
	state.Order = domain.Order{{Drink: "Latte"}}
	require.NoError(t, store.Save(ctx, "iso", state))

	state.Order[0].Drink = "Mocha"
	state.Append(domain.UserTurn("changed"))

	loaded, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	assert.Equal(t, "Latte", loaded.Order[0].Drink)
	assert.Empty(t, loaded.History)

	loaded.Order = nil
	again, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	assert.Len(t, again.Order, 1)
}

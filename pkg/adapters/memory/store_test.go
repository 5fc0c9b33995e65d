package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/bakingapp/pkg/adapters/memory"
	"github.com/aretw0/bakingapp/pkg/domain"
	"github.com/aretw0/bakingapp/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunStateStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	state := &domain.NavigationState{Steps: []domain.Step{{ShortDescription: "a"}}, CurrentIndex: 0}
	require.NoError(t, store.Save(ctx, "s1", state))

	state.Steps[0].ShortDescription = "changed after save"
	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "a", loaded.Steps[0].ShortDescription)

	loaded.CurrentIndex = 5
	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, again.CurrentIndex)
}

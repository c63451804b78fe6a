package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkplan/forkplan-server/internal/domain"
)

func floatp(f float64) *float64 { return &f }

func TestPantrySetEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rice := env.addIngredient(t, "Rice")

	entry, err := env.pantry.SetEntry(ctx, testUser, rice, floatp(500))
	require.NoError(t, err)
	require.NotNil(t, entry.Quantity)
	assert.InDelta(t, 500, *entry.Quantity, 1e-9)

	// Setting again replaces rather than accumulates.
	entry, err = env.pantry.SetEntry(ctx, testUser, rice, floatp(200))
	require.NoError(t, err)
	assert.InDelta(t, 200, *entry.Quantity, 1e-9)
}

func TestPantrySetEntry_UnknownIngredient(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.pantry.SetEntry(context.Background(), testUser, "ing-missing", nil)
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestPantryRemoveEntry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rice := env.addIngredient(t, "Rice")
	_, err := env.pantry.SetEntry(ctx, testUser, rice, nil)
	require.NoError(t, err)

	require.NoError(t, env.pantry.RemoveEntry(ctx, testUser, rice))
	assert.ErrorIs(t, env.pantry.RemoveEntry(ctx, testUser, rice), ErrPantryEntryNotFound)
}

func TestPantryTransfer_AddsOntoExistingQuantities(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rice := env.addIngredient(t, "Rice")
	salt := env.addIngredient(t, "Salt")
	_, err := env.pantry.SetEntry(ctx, testUser, rice, floatp(200))
	require.NoError(t, err)

	err = env.pantry.Transfer(ctx, testUser, []TransferItem{
		{IngredientID: rice, Quantity: floatp(300)},
		{IngredientID: salt}, // presence only
	})
	require.NoError(t, err)

	entries, err := env.pantry.ListPantry(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	byID := make(map[string]*float64)
	for _, e := range entries {
		byID[e.IngredientID] = e.Quantity
	}
	require.NotNil(t, byID[rice])
	assert.InDelta(t, 500, *byID[rice], 1e-9)
	assert.Nil(t, byID[salt])
}

func TestPantryTransfer_EmptyIsNoop(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.pantry.Transfer(context.Background(), testUser, nil))
	assert.Zero(t, env.undoSvc.Depth())
}

func TestPantryTransfer_UndoRestoresPriorState(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	rice := env.addIngredient(t, "Rice")
	salt := env.addIngredient(t, "Salt")
	_, err := env.pantry.SetEntry(ctx, testUser, rice, floatp(200))
	require.NoError(t, err)

	err = env.pantry.Transfer(ctx, testUser, []TransferItem{
		{IngredientID: rice, Quantity: floatp(300)},
		{IngredientID: salt, Quantity: floatp(50)},
	})
	require.NoError(t, err)
	require.Equal(t, 1, env.undoSvc.Depth())

	entry, err := env.undoSvc.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.UndoPantryTransfer, entry.Kind)

	// Rice returns to its pre-transfer quantity; the salt row the
	// transfer created is deleted entirely.
	entries, err := env.pantry.ListPantry(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, rice, entries[0].IngredientID)
	require.NotNil(t, entries[0].Quantity)
	assert.InDelta(t, 200, *entries[0].Quantity, 1e-9)
}

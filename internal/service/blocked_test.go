package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkplan/forkplan-server/internal/domain"
)

func TestBlock_AddsRowAndJournalsUndo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	peanut := env.addIngredient(t, "Peanut")

	require.NoError(t, env.blocked.Block(ctx, testUser, peanut))

	blocked, err := env.blocked.ListBlocked(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, blocked, 1)
	assert.Equal(t, peanut, blocked[0].IngredientID)
	assert.Equal(t, 1, env.undoSvc.Depth())
}

func TestBlock_UnknownIngredient(t *testing.T) {
	env := newTestEnv(t)
	err := env.blocked.Block(context.Background(), testUser, "ing-missing")
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}

func TestUnblock(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	peanut := env.addIngredient(t, "Peanut")
	require.NoError(t, env.blocked.Block(ctx, testUser, peanut))

	require.NoError(t, env.blocked.Unblock(ctx, testUser, peanut))
	assert.ErrorIs(t, env.blocked.Unblock(ctx, testUser, peanut), ErrNotBlocked)
}

func TestBlock_UndoRemovesRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	peanut := env.addIngredient(t, "Peanut")
	require.NoError(t, env.blocked.Block(ctx, testUser, peanut))

	entry, err := env.undoSvc.Undo(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.UndoBlockIngredient, entry.Kind)

	blocked, err := env.blocked.ListBlocked(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, blocked)
}

func TestBlock_UndoAfterManualUnblockStillSucceeds(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	peanut := env.addIngredient(t, "Peanut")
	require.NoError(t, env.blocked.Block(ctx, testUser, peanut))
	require.NoError(t, env.blocked.Unblock(ctx, testUser, peanut))

	// The journal entry survives the manual unblock; undoing it is a
	// no-op rather than an error.
	_, err := env.undoSvc.Undo(ctx)
	assert.NoError(t, err)
}

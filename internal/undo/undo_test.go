package undo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkplan/forkplan-server/internal/domain"
)

// recordingInverter journals which inversions ran, in order.
type recordingInverter struct {
	applied []string
	fail    error
}

func (r *recordingInverter) InvertSwap(_ context.Context, u *domain.SwapUndo) error {
	if r.fail != nil {
		return r.fail
	}
	r.applied = append(r.applied, "swap:"+u.PrevRecipeID)
	return nil
}

func (r *recordingInverter) InvertBlockIngredient(_ context.Context, u *domain.BlockIngredientUndo) error {
	if r.fail != nil {
		return r.fail
	}
	r.applied = append(r.applied, "block:"+u.IngredientID)
	return nil
}

func (r *recordingInverter) InvertPantryTransfer(_ context.Context, u *domain.PantryTransferUndo) error {
	if r.fail != nil {
		return r.fail
	}
	r.applied = append(r.applied, "pantry:"+u.UserID)
	return nil
}

func swapEntry(id, prev string) *domain.UndoEntry {
	return &domain.UndoEntry{
		ID:   id,
		Kind: domain.UndoSwap,
		Swap: &domain.SwapUndo{PrevRecipeID: prev, NextRecipeID: "next"},
	}
}

func TestLog_PopIsLastInFirstOut(t *testing.T) {
	log := NewLog(10)
	log.Push(swapEntry("e1", "r1"))
	log.Push(&domain.UndoEntry{
		ID:              "e2",
		Kind:            domain.UndoBlockIngredient,
		BlockIngredient: &domain.BlockIngredientUndo{IngredientID: "ing-a"},
	})

	inv := &recordingInverter{}
	ctx := context.Background()

	e, err := log.PopAndInvert(ctx, inv)
	require.NoError(t, err)
	assert.Equal(t, "e2", e.ID)

	e, err = log.PopAndInvert(ctx, inv)
	require.NoError(t, err)
	assert.Equal(t, "e1", e.ID)

	assert.Equal(t, []string{"block:ing-a", "swap:r1"}, inv.applied)
	assert.Zero(t, log.Len())
}

func TestLog_EmptyPop(t *testing.T) {
	log := NewLog(10)
	_, err := log.PopAndInvert(context.Background(), &recordingInverter{})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLog_CapacityEvictsOldest(t *testing.T) {
	log := NewLog(3)
	for i := 1; i <= 5; i++ {
		log.Push(swapEntry(fmt.Sprintf("e%d", i), "r"))
	}

	require.Equal(t, 3, log.Len())

	inv := &recordingInverter{}
	ids := make([]string, 0, 3)
	for {
		e, err := log.PopAndInvert(context.Background(), inv)
		if err != nil {
			break
		}
		ids = append(ids, e.ID)
	}
	// The two oldest entries were dropped when capacity was exceeded.
	assert.Equal(t, []string{"e5", "e4", "e3"}, ids)
}

func TestLog_NonPositiveCapacityUsesDefault(t *testing.T) {
	log := NewLog(0)
	for i := 0; i < DefaultCapacity+5; i++ {
		log.Push(swapEntry(fmt.Sprintf("e%d", i), "r"))
	}
	assert.Equal(t, DefaultCapacity, log.Len())
}

func TestLog_FailedInversionKeepsEntry(t *testing.T) {
	log := NewLog(10)
	log.Push(swapEntry("e1", "r1"))

	boom := errors.New("db unavailable")
	inv := &recordingInverter{fail: boom}

	_, err := log.PopAndInvert(context.Background(), inv)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, log.Len())

	// A retry after the failure clears succeeds on the same entry.
	inv.fail = nil
	e, err := log.PopAndInvert(context.Background(), inv)
	require.NoError(t, err)
	assert.Equal(t, "e1", e.ID)
	assert.Zero(t, log.Len())
}

func TestLog_UnknownKindFails(t *testing.T) {
	log := NewLog(10)
	log.Push(&domain.UndoEntry{ID: "e1", Kind: "rewind_time"})

	_, err := log.PopAndInvert(context.Background(), &recordingInverter{})
	assert.Error(t, err)
	// The malformed entry is pushed back rather than silently dropped.
	assert.Equal(t, 1, log.Len())
}

func TestLog_DispatchesEachKind(t *testing.T) {
	log := NewLog(10)
	log.Push(swapEntry("e1", "r1"))
	log.Push(&domain.UndoEntry{
		ID:              "e2",
		Kind:            domain.UndoBlockIngredient,
		BlockIngredient: &domain.BlockIngredientUndo{IngredientID: "ing-a"},
	})
	log.Push(&domain.UndoEntry{
		ID:             "e3",
		Kind:           domain.UndoPantryTransfer,
		PantryTransfer: &domain.PantryTransferUndo{UserID: "household"},
	})

	inv := &recordingInverter{}
	for i := 0; i < 3; i++ {
		_, err := log.PopAndInvert(context.Background(), inv)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"pantry:household", "block:ing-a", "swap:r1"}, inv.applied)
}

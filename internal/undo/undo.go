// Package undo implements the bounded journal of inverse operations for
// user-facing mutations: slot swaps, ingredient blocks, and pantry
// transfers.
package undo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/forkplan/forkplan-server/internal/domain"
)

// DefaultCapacity bounds the journal when no capacity is configured.
const DefaultCapacity = 30

// ErrEmpty is returned by PopAndInvert when nothing is left to undo.
var ErrEmpty = errors.New("nothing to undo")

// Inverter applies the inverse of each undo entry kind against persistent
// state. The plan service implements it; keeping it an interface keeps the
// journal free of storage concerns.
type Inverter interface {
	InvertSwap(ctx context.Context, u *domain.SwapUndo) error
	InvertBlockIngredient(ctx context.Context, u *domain.BlockIngredientUndo) error
	InvertPantryTransfer(ctx context.Context, u *domain.PantryTransferUndo) error
}

// Log is a capped, ordered journal acting as a stack. Pushing past capacity
// drops the oldest entry.
type Log struct {
	mu      sync.Mutex
	entries []*domain.UndoEntry
	cap     int
}

// NewLog creates a journal holding at most capacity entries.
// Non-positive capacities fall back to DefaultCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{cap: capacity}
}

// Push appends an entry, trimming from the front when over capacity.
func (l *Log) Push(e *domain.UndoEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	if len(l.entries) > l.cap {
		l.entries = l.entries[len(l.entries)-l.cap:]
	}
}

// Len returns the number of entries currently journaled.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// PopAndInvert removes the most recent entry and applies its inverse via
// inv. If the inversion fails the entry is pushed back, so undo stays
// retryable after a persistence error.
func (l *Log) PopAndInvert(ctx context.Context, inv Inverter) (*domain.UndoEntry, error) {
	l.mu.Lock()
	if len(l.entries) == 0 {
		l.mu.Unlock()
		return nil, ErrEmpty
	}
	e := l.entries[len(l.entries)-1]
	l.entries = l.entries[:len(l.entries)-1]
	l.mu.Unlock()

	if err := l.invert(ctx, inv, e); err != nil {
		l.Push(e)
		return nil, err
	}
	return e, nil
}

// invert is the single dispatch point over the undo union.
func (l *Log) invert(ctx context.Context, inv Inverter, e *domain.UndoEntry) error {
	switch e.Kind {
	case domain.UndoSwap:
		return inv.InvertSwap(ctx, e.Swap)
	case domain.UndoBlockIngredient:
		return inv.InvertBlockIngredient(ctx, e.BlockIngredient)
	case domain.UndoPantryTransfer:
		return inv.InvertPantryTransfer(ctx, e.PantryTransfer)
	default:
		return fmt.Errorf("unknown undo kind %q", e.Kind)
	}
}

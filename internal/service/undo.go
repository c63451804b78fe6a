package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/store"
	"github.com/forkplan/forkplan-server/internal/undo"
)

// ErrNothingToUndo is returned when the undo journal is empty.
var ErrNothingToUndo = undo.ErrEmpty

// UndoService applies inverse operations off the shared undo journal.
// It implements undo.Inverter against the store.
type UndoService struct {
	store  store.Store
	log    *undo.Log
	logger *slog.Logger
}

// NewUndoService creates an undo service over the shared journal.
func NewUndoService(st store.Store, log *undo.Log, logger *slog.Logger) *UndoService {
	return &UndoService{store: st, log: log, logger: logger}
}

// Undo pops the most recent journal entry and applies its inverse. A
// failed inverse re-arms the entry, so the action can be retried.
func (s *UndoService) Undo(ctx context.Context) (*domain.UndoEntry, error) {
	entry, err := s.log.PopAndInvert(ctx, s)
	if err != nil {
		if !errors.Is(err, undo.ErrEmpty) {
			s.logger.Error("undo failed, entry re-armed", "error", err)
		}
		return nil, err
	}
	s.logger.Info("undo applied", "kind", entry.Kind, "entry_id", entry.ID)
	return entry, nil
}

// Depth returns how many actions can currently be undone.
func (s *UndoService) Depth() int {
	return s.log.Len()
}

// InvertSwap restores the previous recipe on every slot the swap touched,
// the propagated leftover run included.
func (s *UndoService) InvertSwap(ctx context.Context, u *domain.SwapUndo) error {
	return s.store.UpdateSlotRecipes(ctx, u.SlotIDs, u.PrevRecipeID)
}

// InvertBlockIngredient removes the ingredient from the blocked set.
// An already unblocked ingredient counts as success.
func (s *UndoService) InvertBlockIngredient(ctx context.Context, u *domain.BlockIngredientUndo) error {
	err := s.store.UnblockIngredient(ctx, u.UserID, u.IngredientID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// InvertPantryTransfer restores each ingredient's prior quantity, deleting
// rows the transfer created.
func (s *UndoService) InvertPantryTransfer(ctx context.Context, u *domain.PantryTransferUndo) error {
	for _, item := range u.Items {
		if !item.Existed {
			err := s.store.DeletePantryEntry(ctx, u.UserID, item.IngredientID)
			if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
			continue
		}
		e := &domain.PantryEntry{
			UserID:       u.UserID,
			IngredientID: item.IngredientID,
			Quantity:     item.PrevQuantity,
			UpdatedAt:    time.Now(),
		}
		if err := s.store.UpsertPantryEntry(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

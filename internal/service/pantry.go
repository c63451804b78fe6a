package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/store"
	"github.com/forkplan/forkplan-server/internal/undo"
)

// ErrPantryEntryNotFound is returned when an ingredient is not in the pantry.
var ErrPantryEntryNotFound = errors.New("pantry entry not found")

// PantryService manages the household's on-hand ingredients.
type PantryService struct {
	store   store.Store
	undoLog *undo.Log
	logger  *slog.Logger
}

// NewPantryService creates a pantry service.
func NewPantryService(st store.Store, undoLog *undo.Log, logger *slog.Logger) *PantryService {
	return &PantryService{store: st, undoLog: undoLog, logger: logger}
}

// ListPantry returns all pantry entries for a user.
func (s *PantryService) ListPantry(ctx context.Context, userID string) ([]*domain.PantryEntry, error) {
	return s.store.ListPantry(ctx, userID)
}

// SetEntry writes one pantry entry. Quantity may be nil ("have some").
func (s *PantryService) SetEntry(ctx context.Context, userID, ingredientID string, quantity *float64) (*domain.PantryEntry, error) {
	if _, err := s.store.GetIngredient(ctx, ingredientID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	e := &domain.PantryEntry{
		UserID:       userID,
		IngredientID: ingredientID,
		Quantity:     quantity,
		UpdatedAt:    time.Now(),
	}
	if err := s.store.UpsertPantryEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// RemoveEntry deletes one pantry entry.
func (s *PantryService) RemoveEntry(ctx context.Context, userID, ingredientID string) error {
	err := s.store.DeletePantryEntry(ctx, userID, ingredientID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrPantryEntryNotFound
	}
	return err
}

// TransferItem is one ingredient being moved into the pantry, typically
// after shopping. A nil quantity marks presence without a measured amount.
type TransferItem struct {
	IngredientID string
	Quantity     *float64
}

// Transfer adds the given items to the pantry in one user action: incoming
// quantities are added onto existing ones, and a single pantry-transfer
// undo entry records every row's prior state.
func (s *PantryService) Transfer(ctx context.Context, userID string, items []TransferItem) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now()
	undoItems := make([]domain.PantryTransferItem, 0, len(items))

	for _, item := range items {
		prev, err := s.store.GetPantryEntry(ctx, userID, item.IngredientID)
		existed := true
		if errors.Is(err, store.ErrNotFound) {
			existed = false
		} else if err != nil {
			return err
		}

		var prevQty *float64
		if existed {
			prevQty = prev.Quantity
		}
		next := addQuantities(prevQty, item.Quantity)

		e := &domain.PantryEntry{
			UserID:       userID,
			IngredientID: item.IngredientID,
			Quantity:     next,
			UpdatedAt:    now,
		}
		if err := s.store.UpsertPantryEntry(ctx, e); err != nil {
			return err
		}

		undoItems = append(undoItems, domain.PantryTransferItem{
			IngredientID: item.IngredientID,
			PrevQuantity: prevQty,
			NextQuantity: next,
			Existed:      existed,
		})
	}

	s.undoLog.Push(&domain.UndoEntry{
		ID:        uuid.NewString(),
		Kind:      domain.UndoPantryTransfer,
		CreatedAt: now,
		PantryTransfer: &domain.PantryTransferUndo{
			UserID: userID,
			Items:  undoItems,
		},
	})

	s.logger.Info("pantry transfer applied", "user_id", userID, "items", len(items))
	return nil
}

// addQuantities sums two optional quantities; nil plus nil stays nil
// (presence only), nil plus a number becomes the number.
func addQuantities(a, b *float64) *float64 {
	if a == nil && b == nil {
		return nil
	}
	var sum float64
	if a != nil {
		sum += *a
	}
	if b != nil {
		sum += *b
	}
	return &sum
}

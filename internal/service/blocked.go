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

// ErrNotBlocked is returned when unblocking an ingredient that is not
// blocked.
var ErrNotBlocked = errors.New("ingredient is not blocked")

// BlockedIngredientService manages the dietary exclusion set.
type BlockedIngredientService struct {
	store   store.Store
	undoLog *undo.Log
	logger  *slog.Logger
}

// NewBlockedIngredientService creates a blocked-ingredient service.
func NewBlockedIngredientService(st store.Store, undoLog *undo.Log, logger *slog.Logger) *BlockedIngredientService {
	return &BlockedIngredientService{store: st, undoLog: undoLog, logger: logger}
}

// ListBlocked returns all blocked-ingredient rows for a user.
func (s *BlockedIngredientService) ListBlocked(ctx context.Context, userID string) ([]*domain.BlockedIngredient, error) {
	return s.store.ListBlockedIngredients(ctx, userID)
}

// Block excludes an ingredient from all future selections and journals the
// inverse.
func (s *BlockedIngredientService) Block(ctx context.Context, userID, ingredientID string) error {
	ing, err := s.store.GetIngredient(ctx, ingredientID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrIngredientNotFound
	}
	if err != nil {
		return err
	}

	now := time.Now()
	b := &domain.BlockedIngredient{
		UserID:       userID,
		IngredientID: ingredientID,
		CreatedAt:    now,
	}
	if err := s.store.BlockIngredient(ctx, b); err != nil {
		return err
	}

	s.undoLog.Push(&domain.UndoEntry{
		ID:        uuid.NewString(),
		Kind:      domain.UndoBlockIngredient,
		CreatedAt: now,
		BlockIngredient: &domain.BlockIngredientUndo{
			UserID:       userID,
			IngredientID: ingredientID,
			Name:         ing.Name,
		},
	})

	s.logger.Info("ingredient blocked", "ingredient_id", ingredientID, "name", ing.Name)
	return nil
}

// Unblock removes an ingredient from the exclusion set.
func (s *BlockedIngredientService) Unblock(ctx context.Context, userID, ingredientID string) error {
	err := s.store.UnblockIngredient(ctx, userID, ingredientID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotBlocked
	}
	return err
}

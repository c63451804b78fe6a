package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/id"
	"github.com/forkplan/forkplan-server/internal/store"
)

// IngredientService manages the ingredient reference data.
type IngredientService struct {
	store  store.Store
	logger *slog.Logger
}

// NewIngredientService creates an ingredient service.
func NewIngredientService(st store.Store, logger *slog.Logger) *IngredientService {
	return &IngredientService{store: st, logger: logger}
}

// ListIngredients returns all ingredients ordered by name.
func (s *IngredientService) ListIngredients(ctx context.Context) ([]*domain.Ingredient, error) {
	return s.store.ListIngredients(ctx)
}

// GetIngredient returns one ingredient.
func (s *IngredientService) GetIngredient(ctx context.Context, ingredientID string) (*domain.Ingredient, error) {
	ing, err := s.store.GetIngredient(ctx, ingredientID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrIngredientNotFound
	}
	return ing, err
}

// CreateIngredient adds an ingredient to the reference data.
func (s *IngredientService) CreateIngredient(ctx context.Context, name, unit, category string) (*domain.Ingredient, error) {
	now := time.Now()
	ing := &domain.Ingredient{
		ID:        id.MustGenerate("ing"),
		Name:      name,
		Unit:      unit,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.CreateIngredient(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/store"
)

// ErrInvalidPreference is returned for an unknown preference kind.
var ErrInvalidPreference = errors.New("invalid preference kind")

// PreferenceService manages favorite/dislike preferences.
type PreferenceService struct {
	store  store.Store
	logger *slog.Logger
}

// NewPreferenceService creates a preference service.
func NewPreferenceService(st store.Store, logger *slog.Logger) *PreferenceService {
	return &PreferenceService{store: st, logger: logger}
}

// ListPreferences returns all preference rows for a user.
func (s *PreferenceService) ListPreferences(ctx context.Context, userID string) ([]*domain.Preference, error) {
	return s.store.ListPreferences(ctx, userID)
}

// SetPreference marks a recipe favorite or disliked, replacing any prior
// preference for the same recipe.
func (s *PreferenceService) SetPreference(ctx context.Context, userID, recipeID string, kind domain.PreferenceKind) (*domain.Preference, error) {
	if !kind.Valid() {
		return nil, ErrInvalidPreference
	}
	if _, err := s.store.GetRecipe(ctx, recipeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	p := &domain.Preference{
		UserID:    userID,
		RecipeID:  recipeID,
		Kind:      kind,
		UpdatedAt: time.Now(),
	}
	if err := s.store.UpsertPreference(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ClearPreference resets a recipe to neutral. Clearing an already neutral
// recipe is a no-op.
func (s *PreferenceService) ClearPreference(ctx context.Context, userID, recipeID string) error {
	err := s.store.DeletePreference(ctx, userID, recipeID)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}

// Package store defines the persistence interface for the Forkplan server.
package store

import (
	"context"
	"time"

	"github.com/forkplan/forkplan-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Recipes (reference data; writes only happen through catalog CRUD and seeding)
	CreateRecipe(ctx context.Context, r *domain.Recipe) error
	GetRecipe(ctx context.Context, id string) (*domain.Recipe, error)
	ListRecipes(ctx context.Context) ([]*domain.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error

	// Ingredients
	CreateIngredient(ctx context.Context, ing *domain.Ingredient) error
	GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error)
	ListIngredients(ctx context.Context) ([]*domain.Ingredient, error)

	// Recipe-ingredient joins
	LinkRecipeIngredient(ctx context.Context, link *domain.RecipeIngredient) error
	ListRecipeIngredients(ctx context.Context) ([]*domain.RecipeIngredient, error)
	ListIngredientsForRecipe(ctx context.Context, recipeID string) ([]*domain.RecipeIngredient, error)

	// Preferences
	ListPreferences(ctx context.Context, userID string) ([]*domain.Preference, error)
	UpsertPreference(ctx context.Context, p *domain.Preference) error
	DeletePreference(ctx context.Context, userID, recipeID string) error

	// Blocked ingredients
	ListBlockedIngredients(ctx context.Context, userID string) ([]*domain.BlockedIngredient, error)
	BlockIngredient(ctx context.Context, b *domain.BlockedIngredient) error
	UnblockIngredient(ctx context.Context, userID, ingredientID string) error

	// Pantry
	ListPantry(ctx context.Context, userID string) ([]*domain.PantryEntry, error)
	GetPantryEntry(ctx context.Context, userID, ingredientID string) (*domain.PantryEntry, error)
	UpsertPantryEntry(ctx context.Context, e *domain.PantryEntry) error
	DeletePantryEntry(ctx context.Context, userID, ingredientID string) error

	// Plans and slots
	CreatePlan(ctx context.Context, p *domain.MealPlan) error
	GetPlan(ctx context.Context, id string) (*domain.MealPlan, error)
	ListPlans(ctx context.Context) ([]*domain.MealPlan, error)
	DeletePlan(ctx context.Context, id string) error
	BulkInsertSlots(ctx context.Context, slots []*domain.Slot) error
	GetSlot(ctx context.Context, id string) (*domain.Slot, error)
	ListSlotsByPlan(ctx context.Context, planID string) ([]*domain.Slot, error)
	// UpdateSlotRecipes assigns recipeID to every listed slot in one
	// transaction, so a batch-run propagation is all-or-nothing.
	UpdateSlotRecipes(ctx context.Context, slotIDs []string, recipeID string) error

	// ListCookSlotsInRange returns cook slots (servings > 0, recipe
	// assigned) across all plans dated in [from, to). Used to seed the
	// cooldown tracker at plan creation.
	ListCookSlotsInRange(ctx context.Context, from, to time.Time) ([]*domain.Slot, error)
}

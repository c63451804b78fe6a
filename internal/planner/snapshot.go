// Package planner implements the meal-plan scheduling and replacement engine.
//
// The engine is a pure function of (catalog snapshot, plan state, options):
// all reference data arrives as read-only snapshots built at call time, and
// randomness comes from an injected source, so every decision is reproducible
// under test.
package planner

import (
	"github.com/forkplan/forkplan-server/internal/domain"
)

// Catalog is a read-only view of the recipe catalog with ingredient sets
// pre-grouped per recipe.
type Catalog struct {
	recipes    []*domain.Recipe
	byID       map[string]*domain.Recipe
	byMealType map[domain.MealType][]*domain.Recipe
	// ingredient id set per recipe id, derived from the join rows
	ingredients map[string]map[string]struct{}
}

// NewCatalog groups recipes and their ingredient join rows into a catalog.
func NewCatalog(recipes []*domain.Recipe, links []*domain.RecipeIngredient) *Catalog {
	c := &Catalog{
		recipes:     recipes,
		byID:        make(map[string]*domain.Recipe, len(recipes)),
		byMealType:  make(map[domain.MealType][]*domain.Recipe),
		ingredients: make(map[string]map[string]struct{}),
	}
	for _, r := range recipes {
		c.byID[r.ID] = r
		c.byMealType[r.MealType] = append(c.byMealType[r.MealType], r)
	}
	for _, l := range links {
		set, ok := c.ingredients[l.RecipeID]
		if !ok {
			set = make(map[string]struct{})
			c.ingredients[l.RecipeID] = set
		}
		set[l.IngredientID] = struct{}{}
	}
	return c
}

// Recipe returns the recipe with the given id, or nil.
func (c *Catalog) Recipe(id string) *domain.Recipe {
	return c.byID[id]
}

// ByMealType returns all recipes fixed to the given meal type.
func (c *Catalog) ByMealType(mt domain.MealType) []*domain.Recipe {
	return c.byMealType[mt]
}

// IngredientsOf returns the distinct ingredient id set of a recipe.
// The returned map must not be mutated.
func (c *Catalog) IngredientsOf(recipeID string) map[string]struct{} {
	return c.ingredients[recipeID]
}

// Snapshot carries everything the engine needs to fill or replace a slot.
// It is assembled once per call and never mutated by the engine.
type Snapshot struct {
	Catalog     *Catalog
	Pantry      map[string]struct{}                  // ingredient ids on hand
	Preferences map[string]domain.PreferenceKind     // recipe id -> favorite/dislike
	Blocked     map[string]struct{}                  // blocked ingredient ids
}

// Disliked reports whether the recipe carries a dislike preference.
func (s *Snapshot) Disliked(recipeID string) bool {
	return s.Preferences[recipeID] == domain.PreferenceDislike
}

// Favorite reports whether the recipe carries a favorite preference.
func (s *Snapshot) Favorite(recipeID string) bool {
	return s.Preferences[recipeID] == domain.PreferenceFavorite
}

// ContainsBlocked reports whether the recipe uses any blocked ingredient.
// Blocked ingredients are a hard safety constraint and are never relaxed.
func (s *Snapshot) ContainsBlocked(recipeID string) bool {
	if len(s.Blocked) == 0 {
		return false
	}
	for ing := range s.Catalog.IngredientsOf(recipeID) {
		if _, ok := s.Blocked[ing]; ok {
			return true
		}
	}
	return false
}

// Desired is the transient per-session set of ingredients the user wants
// used. Hard requires every desired ingredient to be present when feasible;
// soft only boosts the score.
type Desired struct {
	IDs  map[string]struct{}
	Hard bool
}

// Empty reports whether no desired ingredients were supplied.
func (d Desired) Empty() bool {
	return len(d.IDs) == 0
}

// DesiredFromIDs builds a Desired set from a list of ingredient ids.
func DesiredFromIDs(ids []string, hard bool) Desired {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return Desired{IDs: set, Hard: hard}
}

package planner

import (
	"fmt"
	"time"

	"github.com/forkplan/forkplan-server/internal/domain"
)

// Shared fixtures for the planner tests. Everything builds plain in-memory
// snapshots; no storage is involved at this layer.

func testDate(day int) time.Time {
	return time.Date(2026, 1, 5+day, 0, 0, 0, 0, time.UTC)
}

func testRecipe(id, name string, mt domain.MealType) *domain.Recipe {
	return &domain.Recipe{ID: id, Name: name, MealType: mt, BaseServings: 2}
}

func link(recipeID string, ingredientIDs ...string) []*domain.RecipeIngredient {
	out := make([]*domain.RecipeIngredient, 0, len(ingredientIDs))
	for _, ing := range ingredientIDs {
		out = append(out, &domain.RecipeIngredient{RecipeID: recipeID, IngredientID: ing})
	}
	return out
}

func testSnapshot(recipes []*domain.Recipe, links []*domain.RecipeIngredient) *Snapshot {
	return &Snapshot{
		Catalog:     NewCatalog(recipes, links),
		Pantry:      map[string]struct{}{},
		Preferences: map[string]domain.PreferenceKind{},
		Blocked:     map[string]struct{}{},
	}
}

// dinnerCatalog builds n dinner recipes named d01, d02, ... with no
// ingredient links.
func dinnerCatalog(n int) *Snapshot {
	recipes := make([]*domain.Recipe, n)
	for i := range recipes {
		id := fmt.Sprintf("d%02d", i+1)
		recipes[i] = testRecipe(id, "Dinner "+id, domain.MealDinner)
	}
	return testSnapshot(recipes, nil)
}

func idSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func recipeIDs(recipes []*domain.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.ID
	}
	return out
}

func cookSlot(id, recipeID string, day int, mt domain.MealType, servings int) *domain.Slot {
	return &domain.Slot{
		ID:       id,
		Date:     testDate(day),
		MealType: mt,
		RecipeID: recipeID,
		Servings: servings,
	}
}

func testOptions(days int) Options {
	return Options{
		StartDate:     testDate(0),
		Days:          days,
		People:        2,
		LunchSpanDays: 1,
		CooldownDays:  0,
	}
}

// sequentialIDs mints s1, s2, ... for deterministic slot ids.
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("s%d", n)
	}
}

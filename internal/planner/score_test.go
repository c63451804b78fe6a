package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkplan/forkplan-server/internal/domain"
)

func TestScore_PantryMatchRatio(t *testing.T) {
	recipes := []*domain.Recipe{testRecipe("d01", "Stew", domain.MealDinner)}
	snap := testSnapshot(recipes, link("d01", "ing-a", "ing-b", "ing-c", "ing-d"))
	snap.Pantry["ing-a"] = struct{}{}
	snap.Pantry["ing-b"] = struct{}{}

	opts := Options{PreferPantry: true}
	assert.InDelta(t, 0.5, Score(snap, recipes[0], opts), 1e-9)

	opts.PreferPantry = false
	assert.InDelta(t, 0.0, Score(snap, recipes[0], opts), 1e-9)
}

func TestScore_NoIngredientsScoresZeroPantry(t *testing.T) {
	recipes := []*domain.Recipe{testRecipe("d01", "Water", domain.MealDinner)}
	snap := testSnapshot(recipes, nil)
	snap.Pantry["ing-a"] = struct{}{}

	assert.InDelta(t, 0.0, Score(snap, recipes[0], Options{PreferPantry: true}), 1e-9)
}

func TestScore_PreferenceAdjustments(t *testing.T) {
	recipes := []*domain.Recipe{
		testRecipe("d01", "Liked", domain.MealDinner),
		testRecipe("d02", "Hated", domain.MealDinner),
		testRecipe("d03", "Neutral", domain.MealDinner),
	}
	snap := testSnapshot(recipes, nil)
	snap.Preferences["d01"] = domain.PreferenceFavorite
	snap.Preferences["d02"] = domain.PreferenceDislike

	opts := Options{}
	assert.InDelta(t, 0.15, Score(snap, recipes[0], opts), 1e-9)
	assert.Less(t, Score(snap, recipes[1], opts), -900.0)
	assert.InDelta(t, 0.0, Score(snap, recipes[2], opts), 1e-9)
}

func TestScore_DesiredIngredientWeight(t *testing.T) {
	recipes := []*domain.Recipe{testRecipe("d01", "Tomato Soup", domain.MealDinner)}
	snap := testSnapshot(recipes, link("d01", "ing-tomato"))

	opts := Options{Desired: DesiredFromIDs([]string{"ing-tomato", "ing-basil"}, false)}

	// One of two desired ingredients present: 0.35 * 0.5.
	assert.InDelta(t, 0.175, Score(snap, recipes[0], opts), 1e-9)
}

func TestRank_OrdersByScoreDescending(t *testing.T) {
	recipes := []*domain.Recipe{
		testRecipe("d01", "Plain", domain.MealDinner),
		testRecipe("d02", "Stocked", domain.MealDinner),
		testRecipe("d03", "Favorite Plain", domain.MealDinner),
	}
	snap := testSnapshot(recipes, link("d02", "ing-a"))
	snap.Pantry["ing-a"] = struct{}{}
	snap.Preferences["d03"] = domain.PreferenceFavorite

	ranked := Rank(snap, recipes, Options{PreferPantry: true})

	// Full pantry match (1.0) beats favorite bonus (0.15) beats neutral.
	assert.Equal(t, []string{"d02", "d03", "d01"}, recipeIDs(ranked))
}

func TestRank_TieBreaksByNameCollation(t *testing.T) {
	recipes := []*domain.Recipe{
		testRecipe("d01", "Zucchini Bake", domain.MealDinner),
		testRecipe("d02", "Äpple Pancakes", domain.MealDinner),
		testRecipe("d03", "Bean Chili", domain.MealDinner),
	}
	snap := testSnapshot(recipes, nil)

	ranked := Rank(snap, recipes, Options{})

	// All score zero; collation puts Ä with A, ahead of B and Z.
	assert.Equal(t, []string{"d02", "d03", "d01"}, recipeIDs(ranked))
}

func TestRank_DoesNotModifyInput(t *testing.T) {
	recipes := []*domain.Recipe{
		testRecipe("d01", "Zed", domain.MealDinner),
		testRecipe("d02", "Alpha", domain.MealDinner),
	}
	snap := testSnapshot(recipes, nil)

	ranked := Rank(snap, recipes, Options{})

	require.Equal(t, []string{"d02", "d01"}, recipeIDs(ranked))
	assert.Equal(t, []string{"d01", "d02"}, recipeIDs(recipes))
}

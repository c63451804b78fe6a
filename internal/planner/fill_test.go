package planner

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkplan/forkplan-server/internal/domain"
)

// mixedCatalog builds a snapshot with the given number of breakfast, lunch,
// and dinner recipes and no ingredient links.
func mixedCatalog(nb, nl, nd int) *Snapshot {
	var recipes []*domain.Recipe
	add := func(prefix string, mt domain.MealType, n int) {
		for i := 1; i <= n; i++ {
			id := fmt.Sprintf("%s%02d", prefix, i)
			recipes = append(recipes, testRecipe(id, "Recipe "+id, mt))
		}
	}
	add("b", domain.MealBreakfast, nb)
	add("l", domain.MealLunch, nl)
	add("d", domain.MealDinner, nd)
	return testSnapshot(recipes, nil)
}

func slotsByMeal(slots []*domain.Slot, mt domain.MealType) []*domain.Slot {
	var out []*domain.Slot
	for _, s := range slots {
		if s.MealType == mt {
			out = append(out, s)
		}
	}
	domain.SortSlots(out)
	return out
}

func TestFill_AssignsEverySlot(t *testing.T) {
	snap := mixedCatalog(4, 3, 4)
	opts := testOptions(3)
	opts.LunchSpanDays = 2

	result, err := Fill(snap, opts, nil, rand.New(rand.NewSource(7)), sequentialIDs())
	require.NoError(t, err)

	assert.Len(t, result.Slots, 9)
	assert.Zero(t, result.Unfilled)
	assert.False(t, result.DietaryBlocked)
	for _, s := range result.Slots {
		assert.True(t, s.Filled(), "slot %s on %s", s.MealType, s.Date.Format("2006-01-02"))
	}
}

func TestFill_BatchedMealCooksOnCadence(t *testing.T) {
	snap := mixedCatalog(5, 3, 5)
	opts := testOptions(5)
	opts.People = 3
	opts.LunchSpanDays = 2

	result, err := Fill(snap, opts, nil, rand.New(rand.NewSource(7)), sequentialIDs())
	require.NoError(t, err)

	lunches := slotsByMeal(result.Slots, domain.MealLunch)
	require.Len(t, lunches, 5)

	// Cook on days 0, 2, 4 with batch-sized servings; leftovers in between
	// carry the cook's recipe at zero servings.
	for day, s := range lunches {
		if day%2 == 0 {
			assert.Equal(t, 6, s.Servings, "day %d should cook people*span", day)
		} else {
			assert.Equal(t, 0, s.Servings, "day %d should be a leftover", day)
			assert.Equal(t, lunches[day-1].RecipeID, s.RecipeID, "day %d leftover recipe", day)
		}
	}

	// Unbatched meals cook daily at plain per-person servings.
	for _, s := range slotsByMeal(result.Slots, domain.MealDinner) {
		assert.Equal(t, 3, s.Servings)
	}
}

func TestFill_NoRecipeRepeatsWhenCatalogSuffices(t *testing.T) {
	snap := mixedCatalog(7, 7, 7)
	opts := testOptions(7)

	result, err := Fill(snap, opts, nil, rand.New(rand.NewSource(7)), sequentialIDs())
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, s := range result.Slots {
		if s.IsLeftover() || !s.Filled() {
			continue
		}
		seen[s.RecipeID]++
	}
	for id, n := range seen {
		assert.Equal(t, 1, n, "recipe %s assigned more than once", id)
	}
}

func TestFill_ReusesRecipesWhenCatalogExhausted(t *testing.T) {
	snap := mixedCatalog(1, 1, 1)
	opts := testOptions(3)

	result, err := Fill(snap, opts, nil, rand.New(rand.NewSource(7)), sequentialIDs())
	require.NoError(t, err)

	// A one-recipe catalog still fills every day; uniqueness is a soft
	// constraint and falls away rather than leaving holes.
	assert.Zero(t, result.Unfilled)
	dinners := slotsByMeal(result.Slots, domain.MealDinner)
	for _, s := range dinners {
		assert.Equal(t, "d01", s.RecipeID)
	}
}

func TestFill_EmptyCatalogLeavesSlotsUnfilled(t *testing.T) {
	snap := testSnapshot(nil, nil)
	opts := testOptions(2)

	result, err := Fill(snap, opts, nil, rand.New(rand.NewSource(7)), sequentialIDs())
	require.NoError(t, err)

	assert.Len(t, result.Slots, 6)
	assert.Equal(t, 6, result.Unfilled)
	assert.False(t, result.DietaryBlocked)
	for _, s := range result.Slots {
		assert.False(t, s.Filled())
	}
}

func TestFill_UnfilledCountsWholeLeftoverRun(t *testing.T) {
	snap := mixedCatalog(1, 0, 1)
	opts := testOptions(3)
	opts.LunchSpanDays = 3

	result, err := Fill(snap, opts, nil, rand.New(rand.NewSource(7)), sequentialIDs())
	require.NoError(t, err)

	// The lunch cook pick fails, so its two scheduled leftover slots are
	// unfilled too.
	assert.Equal(t, 3, result.Unfilled)
	for _, s := range slotsByMeal(result.Slots, domain.MealLunch) {
		assert.False(t, s.Filled())
	}
}

func TestFill_FlagsDietaryBlockedUnfills(t *testing.T) {
	snap := testSnapshot(
		[]*domain.Recipe{testRecipe("d01", "Peanut Stew", domain.MealDinner)},
		link("d01", "ing-peanut"),
	)
	snap.Blocked["ing-peanut"] = struct{}{}
	opts := testOptions(1)

	result, err := Fill(snap, opts, nil, rand.New(rand.NewSource(7)), sequentialIDs())
	require.NoError(t, err)

	assert.Equal(t, 3, result.Unfilled)
	assert.True(t, result.DietaryBlocked)
}

func TestFill_CooldownExcludesRecentHistory(t *testing.T) {
	snap := mixedCatalog(0, 0, 2)
	opts := testOptions(1)
	opts.CooldownDays = 7
	history := []*domain.Slot{cookSlot("h1", "d01", -1, domain.MealDinner, 2)}

	result, err := Fill(snap, opts, history, rand.New(rand.NewSource(7)), sequentialIDs())
	require.NoError(t, err)

	dinners := slotsByMeal(result.Slots, domain.MealDinner)
	require.Len(t, dinners, 1)
	assert.Equal(t, "d02", dinners[0].RecipeID)
}

func TestFill_InvalidOptions(t *testing.T) {
	snap := mixedCatalog(1, 1, 1)
	opts := testOptions(0)

	_, err := Fill(snap, opts, nil, rand.New(rand.NewSource(7)), sequentialIDs())
	assert.Error(t, err)
}

func TestFill_LeftoverRunTruncatedAtPlanEnd(t *testing.T) {
	snap := mixedCatalog(4, 2, 4)
	opts := testOptions(4)
	opts.LunchSpanDays = 3

	result, err := Fill(snap, opts, nil, rand.New(rand.NewSource(7)), sequentialIDs())
	require.NoError(t, err)

	lunches := slotsByMeal(result.Slots, domain.MealLunch)
	require.Len(t, lunches, 4)
	assert.False(t, lunches[0].IsLeftover())
	assert.True(t, lunches[1].IsLeftover())
	assert.True(t, lunches[2].IsLeftover())
	// Day 3 starts a new batch; nothing spills past day 3.
	assert.False(t, lunches[3].IsLeftover())
}

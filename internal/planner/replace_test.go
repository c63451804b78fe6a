package planner

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkplan/forkplan-server/internal/domain"
)

func TestReplace_PicksDifferentRecipe(t *testing.T) {
	snap := dinnerCatalog(3)
	target := cookSlot("s1", "d01", 0, domain.MealDinner, 2)
	slots := []*domain.Slot{target}
	pool := NewShufflePool(rand.New(rand.NewSource(3)))

	rep, err := Replace(snap, slots, target, testOptions(1), pool, nil)
	require.NoError(t, err)

	assert.NotEqual(t, "d01", rep.RecipeID)
	assert.Contains(t, []string{"d02", "d03"}, rep.RecipeID)
	assert.Equal(t, "d01", rep.Previous)
	require.Len(t, rep.Affected, 1)
	assert.Equal(t, "s1", rep.Affected[0].ID)
}

func TestReplace_ConsecutiveSwapsCycleWithoutRepeat(t *testing.T) {
	snap := dinnerCatalog(3)
	target := cookSlot("s1", "d01", 0, domain.MealDinner, 2)
	slots := []*domain.Slot{target}
	pool := NewShufflePool(rand.New(rand.NewSource(3)))
	opts := testOptions(1)

	first, err := Replace(snap, slots, target, opts, pool, nil)
	require.NoError(t, err)
	target.RecipeID = first.RecipeID

	second, err := Replace(snap, slots, target, opts, pool, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first.RecipeID, second.RecipeID)
	assert.NotEqual(t, target.RecipeID, second.RecipeID)
}

func TestReplace_ExcludesRecipesUsedElsewhere(t *testing.T) {
	snap := dinnerCatalog(3)
	target := cookSlot("s1", "d01", 0, domain.MealDinner, 2)
	other := cookSlot("s2", "d02", 1, domain.MealDinner, 2)
	pool := NewShufflePool(rand.New(rand.NewSource(3)))

	rep, err := Replace(snap, []*domain.Slot{target, other}, target, testOptions(2), pool, nil)
	require.NoError(t, err)

	assert.Equal(t, "d03", rep.RecipeID)
}

func TestReplace_FallbackOffersRecipeUsedElsewhere(t *testing.T) {
	snap := dinnerCatalog(2)
	target := cookSlot("s1", "d01", 0, domain.MealDinner, 2)
	other := cookSlot("s2", "d02", 1, domain.MealDinner, 2)
	pool := NewShufflePool(rand.New(rand.NewSource(3)))

	// Every other recipe is taken, so the usage constraint relaxes and the
	// recipe on the other slot is offered rather than no alternative at all.
	rep, err := Replace(snap, []*domain.Slot{target, other}, target, testOptions(2), pool, nil)
	require.NoError(t, err)

	assert.Equal(t, "d02", rep.RecipeID)
}

func TestReplace_HonorsCooldownWindow(t *testing.T) {
	snap := dinnerCatalog(3)
	target := cookSlot("s1", "d01", 0, domain.MealDinner, 2)
	// d02 cooked 3 days later: inside a 7-day window even though it lies
	// in the future relative to the target.
	later := cookSlot("s2", "d02", 3, domain.MealDinner, 2)
	pool := NewShufflePool(rand.New(rand.NewSource(3)))
	opts := testOptions(7)
	opts.CooldownDays = 7

	rep, err := Replace(snap, []*domain.Slot{target, later}, target, opts, pool, nil)
	require.NoError(t, err)

	assert.Equal(t, "d03", rep.RecipeID)
}

func TestReplace_PerCallExclusions(t *testing.T) {
	snap := dinnerCatalog(3)
	target := cookSlot("s1", "d01", 0, domain.MealDinner, 2)
	pool := NewShufflePool(rand.New(rand.NewSource(3)))

	rep, err := Replace(snap, []*domain.Slot{target}, target, testOptions(1), pool,
		idSet("d02"))
	require.NoError(t, err)

	assert.Equal(t, "d03", rep.RecipeID)
}

func TestReplace_LeftoverSlotRejected(t *testing.T) {
	snap := dinnerCatalog(3)
	leftover := cookSlot("s1", "d01", 1, domain.MealLunch, 0)
	pool := NewShufflePool(rand.New(rand.NewSource(3)))

	_, err := Replace(snap, []*domain.Slot{leftover}, leftover, testOptions(2), pool, nil)
	assert.ErrorIs(t, err, ErrLeftoverSlot)
}

func TestReplace_NoAlternative(t *testing.T) {
	snap := dinnerCatalog(1)
	target := cookSlot("s1", "d01", 0, domain.MealDinner, 2)
	pool := NewShufflePool(rand.New(rand.NewSource(3)))

	_, err := Replace(snap, []*domain.Slot{target}, target, testOptions(1), pool, nil)
	assert.ErrorIs(t, err, ErrNoAlternative)
}

func TestReplace_DietaryBlockedDistinguished(t *testing.T) {
	recipes := []*domain.Recipe{
		testRecipe("d01", "Current", domain.MealDinner),
		testRecipe("d02", "Peanut Stew", domain.MealDinner),
	}
	snap := testSnapshot(recipes, link("d02", "ing-peanut"))
	snap.Blocked["ing-peanut"] = struct{}{}
	target := cookSlot("s1", "d01", 0, domain.MealDinner, 2)
	pool := NewShufflePool(rand.New(rand.NewSource(3)))

	_, err := Replace(snap, []*domain.Slot{target}, target, testOptions(1), pool, nil)
	assert.ErrorIs(t, err, ErrDietaryBlocked)
}

func TestReplace_PropagatesThroughLeftoverRun(t *testing.T) {
	snap := testSnapshot([]*domain.Recipe{
		testRecipe("l01", "Old Batch", domain.MealLunch),
		testRecipe("l02", "New Batch", domain.MealLunch),
	}, nil)
	cook := cookSlot("s1", "l01", 0, domain.MealLunch, 6)
	slots := []*domain.Slot{
		cook,
		cookSlot("s2", "l01", 1, domain.MealLunch, 0),
		cookSlot("s3", "l01", 2, domain.MealLunch, 0),
	}
	pool := NewShufflePool(rand.New(rand.NewSource(3)))

	rep, err := Replace(snap, slots, cook, testOptions(3), pool, nil)
	require.NoError(t, err)

	assert.Equal(t, "l02", rep.RecipeID)
	require.Len(t, rep.Affected, 3)
	assert.Equal(t, []string{"s1", "s2", "s3"},
		[]string{rep.Affected[0].ID, rep.Affected[1].ID, rep.Affected[2].ID})
}

func TestReplace_UnfilledTargetOffersAnything(t *testing.T) {
	snap := dinnerCatalog(1)
	target := cookSlot("s1", "", 0, domain.MealDinner, 2)
	pool := NewShufflePool(rand.New(rand.NewSource(3)))

	rep, err := Replace(snap, []*domain.Slot{target}, target, testOptions(1), pool, nil)
	require.NoError(t, err)

	assert.Equal(t, "d01", rep.RecipeID)
	assert.Empty(t, rep.Previous)
}

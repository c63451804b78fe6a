package planner

import (
	"github.com/forkplan/forkplan-server/internal/domain"
)

// Eligible computes the set of recipes that may legally fill a slot of the
// given meal type.
//
// used holds recipe ids occupying other non-leftover slots in the plan
// (never including the slot being filled or replaced). cooldownExcluded
// holds recipes inside the repetition window for this slot's date.
//
// Two filter tiers apply. The strict tier removes recipes that are used
// elsewhere, disliked, cooldown-excluded, or contain a blocked ingredient.
// When the strict tier leaves nothing, the usage and cooldown constraints
// are dropped and only the hard safety constraints (dislike, blocked
// ingredient) remain. relaxed reports whether the fallback tier was taken.
//
// When desired is non-empty and hard, the result is further restricted to
// recipes containing every desired ingredient, but only if at least one
// candidate survives; the restriction never empties a slot on its own.
func Eligible(snap *Snapshot, mealType domain.MealType, used, cooldownExcluded map[string]struct{}, desired Desired) (candidates []*domain.Recipe, relaxed bool) {
	pool := snap.Catalog.ByMealType(mealType)

	strict := filterPool(snap, pool, used, cooldownExcluded)
	candidates = strict
	if len(candidates) == 0 {
		// Usage and cooldown are soft constraints; dislike and blocked
		// ingredients are not.
		candidates = filterPool(snap, pool, nil, nil)
		relaxed = true
	}

	if desired.Hard && !desired.Empty() {
		restricted := make([]*domain.Recipe, 0, len(candidates))
		for _, r := range candidates {
			if containsAll(snap.Catalog.IngredientsOf(r.ID), desired.IDs) {
				restricted = append(restricted, r)
			}
		}
		if len(restricted) > 0 {
			candidates = restricted
		}
	}

	return candidates, relaxed
}

func filterPool(snap *Snapshot, pool []*domain.Recipe, used, cooldownExcluded map[string]struct{}) []*domain.Recipe {
	out := make([]*domain.Recipe, 0, len(pool))
	for _, r := range pool {
		if snap.Disliked(r.ID) || snap.ContainsBlocked(r.ID) {
			continue
		}
		if used != nil {
			if _, ok := used[r.ID]; ok {
				continue
			}
		}
		if cooldownExcluded != nil {
			if _, ok := cooldownExcluded[r.ID]; ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func containsAll(haystack, needles map[string]struct{}) bool {
	for n := range needles {
		if _, ok := haystack[n]; !ok {
			return false
		}
	}
	return true
}

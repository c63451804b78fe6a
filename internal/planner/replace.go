package planner

import (
	"errors"

	"github.com/forkplan/forkplan-server/internal/domain"
)

// Replacement failure modes. The caller distinguishes "your dietary
// restrictions rule everything out" from "nothing else is available".
var (
	ErrNoAlternative  = errors.New("no alternative recipe available")
	ErrDietaryBlocked = errors.New("no alternative recipe: blocked by dietary restrictions")
	ErrLeftoverSlot   = errors.New("leftover slots cannot be replaced directly")
)

// Replacement is the computed outcome of re-picking a recipe for one cook
// slot: the new recipe and every slot the change must be written to (the
// cook slot plus its contiguous trailing leftover run).
type Replacement struct {
	RecipeID string
	Affected []*domain.Slot // cook slot first, then propagated leftovers in date order
	Previous string         // recipe the affected slots held before
}

// Replace re-picks a recipe for target among the plan's slots. It computes
// global usage (the target's own recipe excepted), the slot-scan cooldown
// exclusion for the target's date, and a full ranked candidate list; the
// actual pick comes from pool, guaranteeing no repeat offers until every
// current candidate has been cycled once.
//
// exclude carries recipes forcibly barred for this call only — the
// just-disliked recipe during dislike-and-replace. All slots and the
// snapshot must come from a single read; Replace never refetches.
func Replace(snap *Snapshot, slots []*domain.Slot, target *domain.Slot, opts Options, pool *ShufflePool, exclude map[string]struct{}) (*Replacement, error) {
	if target.IsLeftover() {
		return nil, ErrLeftoverSlot
	}

	// barred holds this call's hard exclusions: the current recipe must not
	// be re-offered, nor may a just-disliked one. Unlike global usage, these
	// survive the eligibility fallback.
	barred := make(map[string]struct{})
	if target.Filled() {
		barred[target.RecipeID] = struct{}{}
	}
	for id := range exclude {
		barred[id] = struct{}{}
	}

	used := make(map[string]struct{}, len(barred))
	for id := range barred {
		used[id] = struct{}{}
	}
	for _, s := range slots {
		if s.ID == target.ID || s.IsLeftover() || !s.Filled() {
			continue
		}
		if s.RecipeID == target.RecipeID {
			continue
		}
		used[s.RecipeID] = struct{}{}
	}

	cooldown := ExclusionForSlot(target, slots, opts.CooldownDays)

	candidates, _ := Eligible(snap, target.MealType, used, cooldown, opts.Desired)
	candidates = dropExcluded(candidates, barred)
	if len(candidates) == 0 {
		if len(snap.Blocked) > 0 {
			return nil, ErrDietaryBlocked
		}
		return nil, ErrNoAlternative
	}

	ranked := Rank(snap, candidates, opts)
	ids := make([]string, len(ranked))
	for i, r := range ranked {
		ids[i] = r.ID
	}
	next, ok := pool.Next(ids)
	if !ok {
		return nil, ErrNoAlternative
	}

	return &Replacement{
		RecipeID: next,
		Affected: PropagateReplacement(target, slots),
		Previous: target.RecipeID,
	}, nil
}

// dropExcluded re-applies hard per-call exclusions after the eligibility
// fallback, which may have relaxed the usage filter they rode in on.
func dropExcluded(candidates []*domain.Recipe, excluded map[string]struct{}) []*domain.Recipe {
	out := candidates[:0]
	for _, r := range candidates {
		if _, ok := excluded[r.ID]; ok {
			continue
		}
		out = append(out, r)
	}
	return out
}

package planner

import (
	"time"

	"github.com/forkplan/forkplan-server/internal/domain"
)

// cooldownEntry records one recipe use at a day index relative to the plan
// start. Negative indices come from pre-plan history.
type cooldownEntry struct {
	day      int
	recipeID string
}

// CooldownTracker keeps a sliding window of recently used recipes per meal
// type. Initial fill walks the calendar chronologically, so pruning the
// per-meal-type queue as days advance is sufficient; ad-hoc replacement of
// an arbitrary slot instead uses ExclusionForSlot, which scans the whole
// plan on both sides of the target date.
type CooldownTracker struct {
	queues       map[domain.MealType][]cooldownEntry
	cooldownDays int
}

// NewCooldownTracker creates a tracker with the given window.
// A window of zero or less disables cooldown entirely.
func NewCooldownTracker(cooldownDays int) *CooldownTracker {
	return &CooldownTracker{
		queues:       make(map[domain.MealType][]cooldownEntry),
		cooldownDays: cooldownDays,
	}
}

// Seed loads pre-plan history into the tracker. Only cook slots with an
// assigned recipe count; their day index is negative relative to planStart.
func (t *CooldownTracker) Seed(planStart time.Time, history []*domain.Slot) {
	if t.cooldownDays <= 0 {
		return
	}
	for _, s := range history {
		if s.IsLeftover() || !s.Filled() {
			continue
		}
		day := domain.DayDistance(planStart, s.Date)
		if day >= 0 || day < -t.cooldownDays {
			continue
		}
		t.Push(s.MealType, day, s.RecipeID)
	}
}

// Push records a recipe use for a meal type at the given day index.
func (t *CooldownTracker) Push(mt domain.MealType, day int, recipeID string) {
	if t.cooldownDays <= 0 {
		return
	}
	t.queues[mt] = append(t.queues[mt], cooldownEntry{day: day, recipeID: recipeID})
}

// Prune drops queue entries that have aged out of the window as of
// currentDay. No-op when cooldown is disabled.
func (t *CooldownTracker) Prune(mt domain.MealType, currentDay int) {
	if t.cooldownDays <= 0 {
		return
	}
	q := t.queues[mt]
	kept := q[:0]
	for _, e := range q {
		if e.day > currentDay-t.cooldownDays {
			kept = append(kept, e)
		}
	}
	t.queues[mt] = kept
}

// Excluded returns the recipe ids currently inside the window for a meal
// type. Callers prune first.
func (t *CooldownTracker) Excluded(mt domain.MealType) map[string]struct{} {
	q := t.queues[mt]
	if len(q) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(q))
	for _, e := range q {
		out[e.recipeID] = struct{}{}
	}
	return out
}

// ExclusionForSlot computes the cooldown exclusion set for replacing one
// existing slot. It scans every same-meal-type slot in the plan (not just
// a chronological queue) and excludes any recipe whose nearest occurrence
// is within cooldownDays of the target date, the target slot excepted.
func ExclusionForSlot(target *domain.Slot, slots []*domain.Slot, cooldownDays int) map[string]struct{} {
	if cooldownDays <= 0 {
		return nil
	}
	out := make(map[string]struct{})
	for _, s := range slots {
		if s.ID == target.ID || s.MealType != target.MealType || !s.Filled() {
			continue
		}
		dist := domain.DayDistance(target.Date, s.Date)
		if dist < 0 {
			dist = -dist
		}
		if dist < cooldownDays {
			out[s.RecipeID] = struct{}{}
		}
	}
	return out
}

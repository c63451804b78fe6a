package planner

import (
	"math/rand"

	"github.com/forkplan/forkplan-server/internal/domain"
)

// topPickCount is how many of the best-ranked candidates initial fill
// samples from. Sampling near the top keeps plans close to optimal while
// varying across runs.
const topPickCount = 3

// FillResult is the outcome of one generation run. Unfilled slots stay in
// the plan with no recipe; the caller surfaces the condition once, never
// per slot.
type FillResult struct {
	Slots          []*domain.Slot
	Unfilled       int
	DietaryBlocked bool // unfilled slots coincide with configured blocked ingredients
}

// Fill assigns a recipe to every slot of a new plan. It walks days in order
// and meal types in fill order within each day, consulting eligibility,
// scoring, and the cooldown tracker per slot, and creating leftover runs for
// the batched meal type.
//
// history seeds the cooldown tracker with cook slots from before the plan
// start. rnd drives top-candidate sampling; newID mints slot ids. The
// computed schedule is purely in-memory — persistence is the caller's
// concern, issued as one batch after Fill returns.
func Fill(snap *Snapshot, opts Options, history []*domain.Slot, rnd *rand.Rand, newID func() string) (*FillResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	cal := BuildCalendar(opts.StartDate, opts.Days)
	tracker := NewCooldownTracker(opts.CooldownDays)
	tracker.Seed(cal.Start, history)

	used := make(map[string]struct{})
	result := &FillResult{}

	// Leftover slots scheduled by an earlier cook day, keyed by (day, meal).
	type slotKey struct {
		day int
		mt  domain.MealType
	}
	pending := make(map[slotKey]*domain.Slot)

	pick := func(mt domain.MealType, day int) *domain.Recipe {
		tracker.Prune(mt, day)
		candidates, _ := Eligible(snap, mt, used, tracker.Excluded(mt), opts.Desired)
		if len(candidates) == 0 {
			return nil
		}
		ranked := Rank(snap, candidates, opts)
		top := topPickCount
		if top > len(ranked) {
			top = len(ranked)
		}
		choice := ranked[rnd.Intn(top)]
		tracker.Push(mt, day, choice.ID)
		used[choice.ID] = struct{}{}
		return choice
	}

	for day, date := range cal.Dates {
		for _, mt := range domain.MealTypes() {
			if s, ok := pending[slotKey{day: day, mt: mt}]; ok {
				// An empty recipe means the originating cook pick failed;
				// the whole run counts as unfilled.
				if !s.Filled() {
					result.Unfilled++
				}
				result.Slots = append(result.Slots, s)
				continue
			}

			batched := mt == opts.BatchMealType && opts.LunchSpanDays > 1
			servings := opts.People
			if batched {
				servings = opts.People * opts.LunchSpanDays
			}

			slot := &domain.Slot{
				ID:       newID(),
				Date:     date,
				MealType: mt,
				Servings: servings,
			}
			if r := pick(mt, day); r != nil {
				slot.RecipeID = r.ID
			} else {
				result.Unfilled++
			}
			result.Slots = append(result.Slots, slot)

			if batched {
				for k := 1; k <= LeftoverRun(day, opts.LunchSpanDays, opts.Days); k++ {
					pending[slotKey{day: day + k, mt: mt}] = &domain.Slot{
						ID:       newID(),
						Date:     cal.Dates[day+k],
						MealType: mt,
						RecipeID: slot.RecipeID,
						Servings: 0,
					}
				}
			}
		}
	}

	result.DietaryBlocked = result.Unfilled > 0 && len(snap.Blocked) > 0
	return result, nil
}

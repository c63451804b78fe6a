package domain

import (
	"sort"
	"time"
)

// MealPlan owns a contiguous run of calendar dates starting at StartDate.
// Dates are stored normalized to UTC midnight.
type MealPlan struct {
	CreatedAt time.Time `json:"created_at"`
	StartDate time.Time `json:"start_date"`
	ID        string    `json:"id"`
	Days      int       `json:"days"` // >= 1
}

// NormalizeDate truncates t to UTC midnight. All slot and plan dates pass
// through this before comparison or persistence.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Dates expands the plan into its ordered list of calendar dates.
func (p *MealPlan) Dates() []time.Time {
	start := NormalizeDate(p.StartDate)
	dates := make([]time.Time, p.Days)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

// DayIndex returns the zero-based offset of date from the plan start.
// Negative for dates before the plan; callers decide whether that is valid.
func (p *MealPlan) DayIndex(date time.Time) int {
	return DayDistance(p.StartDate, date)
}

// DayDistance returns the whole-day distance from a to b (negative when b is
// earlier). Both are normalized to UTC midnight first, so DST shifts in the
// inputs' locations cannot skew the count.
func DayDistance(a, b time.Time) int {
	an := NormalizeDate(a)
	bn := NormalizeDate(b)
	return int(bn.Sub(an) / (24 * time.Hour))
}

// Slot is one meal of one day in a plan, keyed by (date, meal type).
//
// Servings encodes the slot's role: a positive count marks a cook slot, zero
// marks a leftover slot consuming an earlier cook slot's batch. An empty
// RecipeID means the slot could not be filled.
type Slot struct {
	Date     time.Time `json:"date"`
	ID       string    `json:"id"`
	PlanID   string    `json:"plan_id"`
	MealType MealType  `json:"meal_type"`
	RecipeID string    `json:"recipe_id,omitempty"`
	Servings int       `json:"servings"`
}

// IsLeftover reports whether the slot consumes a previously cooked batch.
func (s *Slot) IsLeftover() bool {
	return s.Servings == 0
}

// Filled reports whether a recipe is assigned to the slot.
func (s *Slot) Filled() bool {
	return s.RecipeID != ""
}

// SortSlots orders slots by date, then by meal type fill order.
func SortSlots(slots []*Slot) {
	order := map[MealType]int{MealBreakfast: 0, MealLunch: 1, MealDinner: 2}
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Date.Equal(slots[j].Date) {
			return slots[i].Date.Before(slots[j].Date)
		}
		return order[slots[i].MealType] < order[slots[j].MealType]
	})
}

// OriginOf resolves the cook slot a leftover slot consumes: the nearest
// earlier slot of the same meal type with non-zero servings, with no
// intervening slot holding a different recipe. Returns nil when the chain is
// broken, which callers treat as a data defect rather than a crash.
func OriginOf(leftover *Slot, slots []*Slot) *Slot {
	if !leftover.IsLeftover() {
		return leftover
	}
	same := make([]*Slot, 0, len(slots))
	for _, s := range slots {
		if s.MealType == leftover.MealType && s.Date.Before(leftover.Date) {
			same = append(same, s)
		}
	}
	SortSlots(same)
	for i := len(same) - 1; i >= 0; i-- {
		s := same[i]
		if s.RecipeID != leftover.RecipeID {
			return nil
		}
		if !s.IsLeftover() {
			return s
		}
	}
	return nil
}

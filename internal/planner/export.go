package planner

import (
	"fmt"
	"log/slog"

	"github.com/forkplan/forkplan-server/internal/domain"
)

// UnknownCode marks a slot whose batch chain could not be resolved. A
// leftover with no reachable origin is a data defect; export degrades to
// this marker instead of failing the whole document.
const UnknownCode = "unknown"

// mealCodePrefix is the single-letter code prefix per meal type.
var mealCodePrefix = map[domain.MealType]string{
	domain.MealBreakfast: "B",
	domain.MealLunch:     "L",
	domain.MealDinner:    "D",
}

// AssignCodes gives every cook slot a human-readable code (B1, L1, D2, …)
// numbered per meal type in date order, and resolves each leftover slot to
// its originating cook slot's code. Unfilled slots get no code.
func AssignCodes(slots []*domain.Slot, logger *slog.Logger) map[string]string {
	ordered := make([]*domain.Slot, len(slots))
	copy(ordered, slots)
	domain.SortSlots(ordered)

	codes := make(map[string]string, len(ordered))
	counters := make(map[domain.MealType]int)

	for _, s := range ordered {
		if s.IsLeftover() || !s.Filled() {
			continue
		}
		counters[s.MealType]++
		codes[s.ID] = fmt.Sprintf("%s%d", mealCodePrefix[s.MealType], counters[s.MealType])
	}

	for _, s := range ordered {
		if !s.IsLeftover() || !s.Filled() {
			continue
		}
		origin := domain.OriginOf(s, ordered)
		if origin == nil {
			if logger != nil {
				logger.Warn("leftover slot has no resolvable origin",
					"slot_id", s.ID,
					"date", s.Date.Format("2006-01-02"),
					"meal_type", s.MealType,
				)
			}
			codes[s.ID] = UnknownCode
			continue
		}
		codes[s.ID] = codes[origin.ID]
	}

	return codes
}

package planner

import (
	"github.com/forkplan/forkplan-server/internal/domain"
)

// CookDay reports whether dayIndex is a cook day under an N-day batch
// cadence: cooking happens on day 0 and every N days after.
func CookDay(dayIndex, spanDays int) bool {
	if spanDays <= 1 {
		return true
	}
	return dayIndex%spanDays == 0
}

// LeftoverRun returns how many leftover days follow a cook on dayIndex,
// bounded by the remaining plan length.
func LeftoverRun(dayIndex, spanDays, totalDays int) int {
	if spanDays <= 1 {
		return 0
	}
	run := spanDays - 1
	if remaining := totalDays - dayIndex - 1; run > remaining {
		run = remaining
	}
	return run
}

// PropagateReplacement returns the slots a recipe change on a cook slot must
// touch: the cook slot itself plus every immediately following same-meal-type
// leftover slot still holding the old recipe. The walk stops at the first
// slot that either carries servings or a different recipe, so an intervening
// cook day never has its batch overwritten.
func PropagateReplacement(cook *domain.Slot, slots []*domain.Slot) []*domain.Slot {
	affected := []*domain.Slot{cook}

	same := make([]*domain.Slot, 0, len(slots))
	for _, s := range slots {
		if s.MealType == cook.MealType && s.Date.After(cook.Date) {
			same = append(same, s)
		}
	}
	domain.SortSlots(same)

	for _, s := range same {
		if !s.IsLeftover() || s.RecipeID != cook.RecipeID {
			break
		}
		affected = append(affected, s)
	}
	return affected
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/forkplan/forkplan-server/internal/domain"
	"github.com/forkplan/forkplan-server/internal/planner"
	"github.com/forkplan/forkplan-server/internal/store"
)

// ExportRow is one slot of a plan rendered for export: a human-readable
// cook code, the recipe, and whether the row consumes leftovers.
type ExportRow struct {
	Date       time.Time       `json:"date"`
	MealType   domain.MealType `json:"meal_type"`
	Code       string          `json:"code,omitempty"`
	RecipeID   string          `json:"recipe_id,omitempty"`
	RecipeName string          `json:"recipe_name,omitempty"`
	Servings   int             `json:"servings"`
	Leftover   bool            `json:"leftover"`
}

// ExportPlan renders a plan into ordered export rows. Cook slots get codes
// numbered per meal type in date order; leftover rows carry their origin's
// code, or "unknown" when the batch chain is broken.
func (s *PlanService) ExportPlan(ctx context.Context, planID string) ([]ExportRow, error) {
	plan, err := s.store.GetPlan(ctx, planID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	slots, err := s.store.ListSlotsByPlan(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	recipes, err := s.store.ListRecipes(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(recipes))
	for _, r := range recipes {
		names[r.ID] = r.Name
	}

	codes := planner.AssignCodes(slots, s.logger)

	domain.SortSlots(slots)
	rows := make([]ExportRow, 0, len(slots))
	for _, sl := range slots {
		rows = append(rows, ExportRow{
			Date:       sl.Date,
			MealType:   sl.MealType,
			Code:       codes[sl.ID],
			RecipeID:   sl.RecipeID,
			RecipeName: names[sl.RecipeID],
			Servings:   sl.Servings,
			Leftover:   sl.IsLeftover(),
		})
	}
	return rows, nil
}

package api

import (
	"github.com/forkplan/forkplan-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Plan       *service.PlanService
	Recipe     *service.RecipeService
	Ingredient *service.IngredientService
	Pantry     *service.PantryService
	Preference *service.PreferenceService
	Blocked    *service.BlockedIngredientService
	Undo       *service.UndoService
}

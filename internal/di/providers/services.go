package providers

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/samber/do/v2"

	"github.com/forkplan/forkplan-server/internal/config"
	"github.com/forkplan/forkplan-server/internal/service"
)

// ProvidePlanService provides the plan generation and replacement service.
func ProvidePlanService(i do.Injector) (*service.PlanService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	undoHandle := do.MustInvoke[*UndoLogHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	defaults := service.PlanDefaults{
		CooldownDays: cfg.Planner.CooldownDays,
		PreferPantry: cfg.Planner.PreferPantry,
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	return service.NewPlanService(storeHandle.Store, undoHandle.Log, defaults, rnd, log), nil
}

// ProvideRecipeService provides the recipe catalog service.
func ProvideRecipeService(i do.Injector) (*service.RecipeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewRecipeService(storeHandle.Store, indexHandle.Index, log), nil
}

// ProvideIngredientService provides the ingredient reference-data service.
func ProvideIngredientService(i do.Injector) (*service.IngredientService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewIngredientService(storeHandle.Store, log), nil
}

// ProvidePantryService provides the pantry service.
func ProvidePantryService(i do.Injector) (*service.PantryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	undoHandle := do.MustInvoke[*UndoLogHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewPantryService(storeHandle.Store, undoHandle.Log, log), nil
}

// ProvidePreferenceService provides the preference service.
func ProvidePreferenceService(i do.Injector) (*service.PreferenceService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewPreferenceService(storeHandle.Store, log), nil
}

// ProvideBlockedIngredientService provides the dietary exclusion service.
func ProvideBlockedIngredientService(i do.Injector) (*service.BlockedIngredientService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	undoHandle := do.MustInvoke[*UndoLogHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewBlockedIngredientService(storeHandle.Store, undoHandle.Log, log), nil
}

// ProvideUndoService provides the undo service.
func ProvideUndoService(i do.Injector) (*service.UndoService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	undoHandle := do.MustInvoke[*UndoLogHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	return service.NewUndoService(storeHandle.Store, undoHandle.Log, log), nil
}

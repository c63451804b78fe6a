// Package di provides dependency injection configuration for the Forkplan server.
package di

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/forkplan/forkplan-server/internal/config"
	"github.com/forkplan/forkplan-server/internal/di/providers"
	"github.com/forkplan/forkplan-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideUndoLog)

	// Business services
	do.Provide(injector, providers.ProvidePlanService)
	do.Provide(injector, providers.ProvideRecipeService)
	do.Provide(injector, providers.ProvideIngredientService)
	do.Provide(injector, providers.ProvidePantryService)
	do.Provide(injector, providers.ProvidePreferenceService)
	do.Provide(injector, providers.ProvideBlockedIngredientService)
	do.Provide(injector, providers.ProvideUndoService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services. Invoking each one here triggers lazy
// initialization in dependency order; by the time it returns the HTTP
// server is accepting connections.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*slog.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*providers.UndoLogHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.PlanService](injector)
	_ = do.MustInvoke[*service.RecipeService](injector)
	_ = do.MustInvoke[*service.IngredientService](injector)
	_ = do.MustInvoke[*service.PantryService](injector)
	_ = do.MustInvoke[*service.PreferenceService](injector)
	_ = do.MustInvoke[*service.BlockedIngredientService](injector)
	_ = do.MustInvoke[*service.UndoService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	// Bring the search index in line with the catalog
	providers.TriggerSearchReindexIfNeeded(injector)

	return nil
}

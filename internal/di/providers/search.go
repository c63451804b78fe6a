package providers

import (
	"context"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/forkplan/forkplan-server/internal/config"
	"github.com/forkplan/forkplan-server/internal/search"
	"github.com/forkplan/forkplan-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve recipe index.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)

	index, err := search.Open(search.Options{
		DataPath: cfg.Search.IndexPath,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}

	docCount, _ := index.DocCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// TriggerSearchReindexIfNeeded rebuilds an empty index when the catalog
// already has recipes. Should be called after all services are wired.
func TriggerSearchReindexIfNeeded(i do.Injector) {
	recipeService := do.MustInvoke[*service.RecipeService](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	docCount, enabled, _ := recipeService.IndexDocCount()
	if !enabled || docCount > 0 {
		return
	}

	ctx := context.Background()
	recipes, err := storeHandle.ListRecipes(ctx)
	if err != nil || len(recipes) == 0 {
		return
	}

	log.Info("Search index is empty but recipes exist, triggering initial reindex",
		"recipe_count", len(recipes),
	)

	go func() {
		if err := recipeService.RebuildIndex(context.Background()); err != nil {
			log.Error("Initial search reindex failed", "error", err)
		} else {
			count, _, _ := recipeService.IndexDocCount()
			log.Info("Initial search reindex completed", "documents", count)
		}
	}()
}

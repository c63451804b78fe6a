package providers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/forkplan/forkplan-server/internal/api"
	"github.com/forkplan/forkplan-server/internal/config"
	"github.com/forkplan/forkplan-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	api *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.api.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*slog.Logger](i)

	services := &api.Services{
		Plan:       do.MustInvoke[*service.PlanService](i),
		Recipe:     do.MustInvoke[*service.RecipeService](i),
		Ingredient: do.MustInvoke[*service.IngredientService](i),
		Pantry:     do.MustInvoke[*service.PantryService](i),
		Preference: do.MustInvoke[*service.PreferenceService](i),
		Blocked:    do.MustInvoke[*service.BlockedIngredientService](i),
		Undo:       do.MustInvoke[*service.UndoService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, api.Options{
		Name:          cfg.Server.Name,
		HouseholdUser: cfg.Planner.HouseholdUser,
		Defaults: api.PlannerDefaults{
			CooldownDays:  cfg.Planner.CooldownDays,
			People:        cfg.Planner.People,
			LunchSpanDays: cfg.Planner.LunchSpanDays,
			PreferPantry:  cfg.Planner.PreferPantry,
		},
	}, log)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Server running", "addr", srv.Addr)

	return &HTTPServerHandle{Server: srv, api: handler}, nil
}

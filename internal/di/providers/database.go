package providers

import (
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/forkplan/forkplan-server/internal/config"
	"github.com/forkplan/forkplan-server/internal/store/sqlite"
	"github.com/forkplan/forkplan-server/internal/undo"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlite.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the SQLite store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*slog.Logger](i)

	db, err := sqlite.Open(cfg.Database.Path, log)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", cfg.Database.Path)

	return &StoreHandle{Store: db}, nil
}

// UndoLogHandle wraps the in-memory undo log. The log holds no external
// resources; the handle exists so the container owns its lifetime.
type UndoLogHandle struct {
	*undo.Log
}

// ProvideUndoLog provides the capped undo history.
func ProvideUndoLog(i do.Injector) (*UndoLogHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return &UndoLogHandle{Log: undo.NewLog(cfg.Undo.Capacity)}, nil
}

package providers

import (
	"github.com/samber/do/v2"

	"github.com/reserveapp/reserve-server/internal/config"
	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	db, err := store.New(cfg.Store.BasePath, log)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", cfg.Store.BasePath)

	return &StoreHandle{Store: db}, nil
}

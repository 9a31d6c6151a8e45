package providers

import (
	"github.com/samber/do/v2"

	"github.com/reserveapp/reserve-server/internal/catalog"
	"github.com/reserveapp/reserve-server/internal/config"
	"github.com/reserveapp/reserve-server/internal/logger"
)

// ProvideCatalog provides the in-memory seed catalog.
func ProvideCatalog(i do.Injector) (*catalog.Catalog, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	cat, err := catalog.Load(cfg.Catalog.DataPath)
	if err != nil {
		return nil, err
	}

	log.Info("Catalog loaded",
		"path", cfg.Catalog.DataPath,
		"books", len(cat.Books()),
		"edition_books", len(cat.Edition().Books),
		"canned_responses", len(cat.Responses()),
	)

	return cat, nil
}

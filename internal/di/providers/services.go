package providers

import (
	"github.com/samber/do/v2"

	"github.com/reserveapp/reserve-server/internal/catalog"
	"github.com/reserveapp/reserve-server/internal/config"
	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/service"
)

// ProvideConciergeService provides the recommendation service.
func ProvideConciergeService(i do.Injector) (*service.ConciergeService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	cat := do.MustInvoke[*catalog.Catalog](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	backendHandle := do.MustInvoke[*AnthropicClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewConciergeService(cat, storeHandle.Store, backendHandle.Anthropic, cfg.Concierge, log), nil
}

// ProvideEditionService provides the monthly edition service.
func ProvideEditionService(i do.Injector) (*service.EditionService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	cat := do.MustInvoke[*catalog.Catalog](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	backendHandle := do.MustInvoke[*AnthropicClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEditionService(cat, storeHandle.Store, backendHandle.Anthropic, cfg.Concierge, log), nil
}

// ProvideSummaryService provides the book summary service.
func ProvideSummaryService(i do.Injector) (*service.SummaryService, error) {
	backendHandle := do.MustInvoke[*AnthropicClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSummaryService(backendHandle.Anthropic, log), nil
}

// ProvideContextService provides the reading context service.
func ProvideContextService(i do.Injector) (*service.ContextService, error) {
	weatherHandle := do.MustInvoke[*WeatherClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewContextService(weatherHandle.Client, log), nil
}

// ProvideLibraryService provides the personal library service.
func ProvideLibraryService(i do.Injector) (*service.LibraryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewLibraryService(storeHandle.Store, log), nil
}

// ProvideCatalogService provides the catalog browse and search service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	cat := do.MustInvoke[*catalog.Catalog](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(cat, indexHandle.Index, log), nil
}

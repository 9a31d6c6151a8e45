// Package di provides dependency injection configuration for the Reserve server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/reserveapp/reserve-server/internal/catalog"
	"github.com/reserveapp/reserve-server/internal/config"
	"github.com/reserveapp/reserve-server/internal/di/providers"
	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Data layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideCatalog)
	do.Provide(injector, providers.ProvideSearchIndex)

	// Outbound clients
	do.Provide(injector, providers.ProvideAnthropicClient)
	do.Provide(injector, providers.ProvideWeatherClient)

	// Business services
	do.Provide(injector, providers.ProvideConciergeService)
	do.Provide(injector, providers.ProvideEditionService)
	do.Provide(injector, providers.ProvideSummaryService)
	do.Provide(injector, providers.ProvideContextService)
	do.Provide(injector, providers.ProvideLibraryService)
	do.Provide(injector, providers.ProvideCatalogService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*catalog.Catalog](injector)
	_ = do.MustInvoke[*providers.SearchIndexHandle](injector)
	_ = do.MustInvoke[*providers.AnthropicClientHandle](injector)
	_ = do.MustInvoke[*providers.WeatherClientHandle](injector)

	// Business services
	_ = do.MustInvoke[*service.ConciergeService](injector)
	_ = do.MustInvoke[*service.EditionService](injector)
	_ = do.MustInvoke[*service.SummaryService](injector)
	_ = do.MustInvoke[*service.ContextService](injector)
	_ = do.MustInvoke[*service.LibraryService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}

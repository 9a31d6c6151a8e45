package api

import (
	"github.com/reserveapp/reserve-server/internal/llm"
	"github.com/reserveapp/reserve-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Concierge *service.ConciergeService
	Edition   *service.EditionService
	Summary   *service.SummaryService
	Context   *service.ContextService
	Library   *service.LibraryService
	Catalog   *service.CatalogService

	// Backend is referenced directly only by the health check.
	Backend llm.Client
}

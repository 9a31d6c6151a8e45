package providers

import (
	"context"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/reserveapp/reserve-server/internal/api"
	"github.com/reserveapp/reserve-server/internal/config"
	"github.com/reserveapp/reserve-server/internal/logger"
	"github.com/reserveapp/reserve-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := h.Server.Shutdown(ctx)
	h.handler.Close()
	return err
}

// ProvideHTTPServer provides the HTTP server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	backendHandle := do.MustInvoke[*AnthropicClientHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Concierge: do.MustInvoke[*service.ConciergeService](i),
		Edition:   do.MustInvoke[*service.EditionService](i),
		Summary:   do.MustInvoke[*service.SummaryService](i),
		Context:   do.MustInvoke[*service.ContextService](i),
		Library:   do.MustInvoke[*service.LibraryService](i),
		Catalog:   do.MustInvoke[*service.CatalogService](i),
		Backend:   backendHandle.Anthropic,
	}

	handler := api.NewServer(storeHandle.Store, indexHandle.Index, services, log)

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

	return &HTTPServerHandle{Server: srv, handler: handler}, nil
}

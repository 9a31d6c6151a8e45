// Package main provides the entry point for the Reserve server application.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/reserveapp/reserve-server/internal/di"
	"github.com/reserveapp/reserve-server/internal/di/providers"
	"github.com/reserveapp/reserve-server/internal/logger"
)

func main() {
	injector := di.NewContainer()
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap server: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")
	if err := injector.Shutdown(); err != nil {
		log.Error("Shutdown error", "error", err)
	}

	// Handle types wrap the database and search index, so the container's
	// shutdown pass misses them; close them last, after the HTTP server
	// has drained.
	closeHandle(injector, log, "database", func(h *providers.StoreHandle) error { return h.Shutdown() })
	closeHandle(injector, log, "search index", func(h *providers.SearchIndexHandle) error { return h.Shutdown() })

	log.Info("Goodnight, reader")
}

func closeHandle[H any](injector do.Injector, log *logger.Logger, name string, shutdown func(H) error) {
	handle, err := do.Invoke[H](injector)
	if err != nil {
		return
	}
	if err := shutdown(handle); err != nil {
		log.Error("Failed to close "+name, "error", err)
		return
	}
	log.Info("Closed " + name)
}

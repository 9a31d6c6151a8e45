// Package store persists client state in a Badger key-value database:
// per-client preferences, personal libraries, and the month-keyed cache of
// generated editions.
package store

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/reserveapp/reserve-server/internal/domain"
	"github.com/reserveapp/reserve-server/internal/logger"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *logger.Logger

	// Generic entities
	Preferences *Entity[domain.Preferences]
	Library     *Entity[domain.LibraryBook]
	Editions    *Entity[domain.AIEdition]
}

// New creates a new Store instance with the given database path.
func New(path string, log *logger.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	store := &Store{
		db:     db,
		logger: log,
	}

	// Preferences are keyed by client ID, library books by
	// "<clientID>:<entryID>" so a client's shelf is a prefix scan, and
	// cached editions by their YYYY-MM month key.
	store.Preferences = NewEntity[domain.Preferences](store, "prefs:")
	store.Library = NewEntity[domain.LibraryBook](store, "lib:")
	store.Editions = NewEntity[domain.AIEdition](store, "edition:")

	if log != nil {
		log.Info("badger database opened", "path", path)
	}

	return store, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("closing database connection")
	}
	return s.db.Close()
}

// LibraryKey builds the composite key for a client's library entry.
func LibraryKey(clientID, entryID string) string {
	return clientID + ":" + entryID
}

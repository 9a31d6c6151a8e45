package store

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"iter"
	"strings"

	"github.com/dgraph-io/badger/v4"
	domainerrors "github.com/reserveapp/reserve-server/internal/errors"
)

// Entity provides typed CRUD operations over a key prefix. Values are
// stored as JSON under prefix+key.
type Entity[T any] struct {
	store  *Store
	prefix string
}

// NewEntity creates a typed entity bound to a key prefix.
func NewEntity[T any](store *Store, prefix string) *Entity[T] {
	return &Entity[T]{
		store:  store,
		prefix: prefix,
	}
}

func (e *Entity[T]) key(k string) []byte {
	return []byte(e.prefix + k)
}

// Create stores a new value. Returns ErrAlreadyExists if the key is taken.
func (e *Entity[T]) Create(ctx context.Context, k string, value *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(e.key(k))
		if err == nil {
			return domainerrors.AlreadyExistsf("entity with key %s already exists", k)
		}
		if err != badger.ErrKeyNotFound {
			return fmt.Errorf("failed to check key: %w", err)
		}
		return txn.Set(e.key(k), data)
	})
}

// Set stores a value, overwriting any existing one.
func (e *Entity[T]) Set(ctx context.Context, k string, value *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal entity: %w", err)
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		return txn.Set(e.key(k), data)
	})
}

// Get retrieves a value by key. Returns ErrNotFound if absent.
func (e *Entity[T]) Get(ctx context.Context, k string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var value T
	err := e.store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(e.key(k))
		if err == badger.ErrKeyNotFound {
			return domainerrors.NotFoundf("entity with key %s not found", k)
		}
		if err != nil {
			return fmt.Errorf("failed to get entity: %w", err)
		}
		return item.Value(func(data []byte) error {
			return json.Unmarshal(data, &value)
		})
	})
	if err != nil {
		return nil, err
	}
	return &value, nil
}

// Delete removes a value by key. Deleting a missing key is not an error.
func (e *Entity[T]) Delete(ctx context.Context, k string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return e.store.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(e.key(k))
	})
}

// List returns all stored values as a sequence of (key, value) pairs. The
// yielded keys have the entity prefix stripped.
func (e *Entity[T]) List(ctx context.Context) iter.Seq2[string, *T] {
	return e.ListPrefix(ctx, "")
}

// ListPrefix returns stored values whose key starts with the given prefix.
func (e *Entity[T]) ListPrefix(ctx context.Context, p string) iter.Seq2[string, *T] {
	return func(yield func(string, *T) bool) {
		_ = e.store.db.View(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.Prefix = e.key(p)
			it := txn.NewIterator(opts)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				if ctx.Err() != nil {
					return ctx.Err()
				}

				item := it.Item()
				var value T
				err := item.Value(func(data []byte) error {
					return json.Unmarshal(data, &value)
				})
				if err != nil {
					if e.store.logger != nil {
						e.store.logger.Warn("skipping undecodable entry", "key", string(item.Key()))
					}
					continue
				}

				k := strings.TrimPrefix(string(item.Key()), e.prefix)
				if !yield(k, &value) {
					return nil
				}
			}
			return nil
		})
	}
}

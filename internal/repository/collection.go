package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"persona-tracker/internal/pkg/lock"
)

// Collection is one typed document in the store. Reads fail closed: an
// absent, null or undecodable document yields the default value.
type Collection[T any] struct {
	store  Store
	locks  *lock.KeyLock
	key    string
	def    func() T
	decode func([]byte) (T, error)
}

func newCollection[T any](store Store, locks *lock.KeyLock, key string, def func() T) *Collection[T] {
	return &Collection[T]{
		store: store,
		locks: locks,
		key:   key,
		def:   def,
		decode: func(data []byte) (T, error) {
			var v T
			err := json.Unmarshal(data, &v)
			return v, err
		},
	}
}

// Key returns the full store key, prefix included.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load reads the document. Store I/O failures are returned; a malformed
// document is replaced by the default and logged.
func (c *Collection[T]) Load(ctx context.Context) (T, error) {
	data, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to load %s: %w", c.key, err)
	}
	if !found {
		return c.def(), nil
	}
	if isNull(data) {
		log.Warn().Str("key", c.key).Msg("Null document replaced by default")
		return c.def(), nil
	}

	v, err := c.decode(data)
	if err != nil {
		log.Warn().Err(err).Str("key", c.key).Msg("Malformed document replaced by default")
		return c.def(), nil
	}
	return v, nil
}

// Save writes the whole document, serialized with other writers of the key.
func (c *Collection[T]) Save(ctx context.Context, v T) error {
	if err := c.lock(ctx); err != nil {
		return err
	}
	defer c.locks.Unlock(c.key)
	return c.write(ctx, v)
}

// Update runs a read-modify-write cycle under the key's lock. When fn
// returns an error nothing is written and the error is returned as is.
func (c *Collection[T]) Update(ctx context.Context, fn func(T) (T, error)) (T, error) {
	if err := c.lock(ctx); err != nil {
		var zero T
		return zero, err
	}
	defer c.locks.Unlock(c.key)

	current, err := c.Load(ctx)
	if err != nil {
		return current, err
	}
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	if err := c.write(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}

// Exists reports whether the document has ever been written.
func (c *Collection[T]) Exists(ctx context.Context) (bool, error) {
	_, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", c.key, err)
	}
	return found, nil
}

// Seed writes the default value when the document is absent or null. It
// reports whether it wrote.
func (c *Collection[T]) Seed(ctx context.Context) (bool, error) {
	if err := c.lock(ctx); err != nil {
		return false, err
	}
	defer c.locks.Unlock(c.key)

	data, found, err := c.store.Get(ctx, c.key)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", c.key, err)
	}
	if found && !isNull(data) {
		return false, nil
	}
	return true, c.write(ctx, c.def())
}

// Remove deletes the document; later loads return the default.
func (c *Collection[T]) Remove(ctx context.Context) error {
	if err := c.lock(ctx); err != nil {
		return err
	}
	defer c.locks.Unlock(c.key)

	if err := c.store.Delete(ctx, c.key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", c.key, err)
	}
	return nil
}

// lock waits for the key, giving up when ctx is done.
func (c *Collection[T]) lock(ctx context.Context) error {
	if err := c.locks.LockContext(ctx, c.key); err != nil {
		return fmt.Errorf("failed to lock %s: %w", c.key, err)
	}
	return nil
}

func isNull(data []byte) bool {
	return gjson.ParseBytes(data).Type == gjson.Null
}

func (c *Collection[T]) write(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if err := c.store.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}

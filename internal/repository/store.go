// Package repository provides the key-value document store and the typed
// collections the engines read and write through it.
package repository

import (
	"context"
	"errors"
)

// Common errors for store operations.
var (
	ErrEmptyKey = errors.New("document key is required")
)

// Store is a whole-document key-value adapter. Values are JSON bytes.
// Get reports found=false for an absent key rather than an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

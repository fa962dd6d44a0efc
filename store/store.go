package store

import "context"

// Store persists schema documents by key.
// Implementations are safe for concurrent use once opened.
type Store interface {
	// Name returns the identifier name defined for this store.
	Name() string

	// Open is part of the lifecycle behaviour and gets called before the first operation.
	Open(ctx context.Context) error
	// Close is part of the lifecycle behaviour and releases held resources.
	Close(ctx context.Context) error

	Get(ctx context.Context, key string) (*Document, error)
	// Put creates or replaces the document stored under key.
	Put(ctx context.Context, key string, content []byte) (*Document, error)
	Delete(ctx context.Context, key string) error
	// List returns every stored key in ascending order.
	List(ctx context.Context) ([]string, error)
}

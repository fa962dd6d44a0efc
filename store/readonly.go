package store

import (
	"context"
	"fmt"

	"github.com/mwantia/cmdargs/pkg/errors"
)

// ReadOnlyStore passes reads through to the wrapped store and rejects writes.
type ReadOnlyStore struct {
	store Store
}

func NewReadOnly(store Store) *ReadOnlyStore {
	return &ReadOnlyStore{
		store: store,
	}
}

func (ros *ReadOnlyStore) Name() string {
	return ros.store.Name()
}

func (ros *ReadOnlyStore) Open(ctx context.Context) error {
	return ros.store.Open(ctx)
}

func (ros *ReadOnlyStore) Close(ctx context.Context) error {
	return ros.store.Close(ctx)
}

func (ros *ReadOnlyStore) Get(ctx context.Context, key string) (*Document, error) {
	return ros.store.Get(ctx, key)
}

func (ros *ReadOnlyStore) Put(_ context.Context, key string, _ []byte) (*Document, error) {
	return nil, fmt.Errorf("failed to put '%s' into %s: %w", key, ros.Name(), errors.ErrReadOnlyStore)
}

func (ros *ReadOnlyStore) Delete(_ context.Context, key string) error {
	return fmt.Errorf("failed to delete '%s' from %s: %w", key, ros.Name(), errors.ErrReadOnlyStore)
}

func (ros *ReadOnlyStore) List(ctx context.Context) ([]string, error) {
	return ros.store.List(ctx)
}

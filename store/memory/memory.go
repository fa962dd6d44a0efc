package memory

import (
	"context"
	"sync"

	"github.com/tidwall/btree"

	"github.com/mwantia/cmdargs/store"
)

// MemoryStore keeps documents in an ordered in-memory map.
// Content is lost on Close.
type MemoryStore struct {
	mu        sync.RWMutex
	documents *btree.Map[string, *store.Document]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: btree.NewMap[string, *store.Document](0),
	}
}

func (*MemoryStore) Name() string {
	return "memory"
}

func (*MemoryStore) Open(_ context.Context) error {
	return nil
}

func (ms *MemoryStore) Close(_ context.Context) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.documents.Clear()
	return nil
}

func (ms *MemoryStore) Get(_ context.Context, key string) (*store.Document, error) {
	key, err := store.CleanKey(key)
	if err != nil {
		return nil, err
	}

	ms.mu.RLock()
	defer ms.mu.RUnlock()

	doc, ok := ms.documents.Get(key)
	if !ok {
		return nil, store.NotFound(key)
	}
	return doc.Clone(), nil
}

func (ms *MemoryStore) Put(_ context.Context, key string, content []byte) (*store.Document, error) {
	key, err := store.CleanKey(key)
	if err != nil {
		return nil, err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	doc := store.NewDocument(key, content)
	ms.documents.Set(key, doc)
	return doc.Clone(), nil
}

func (ms *MemoryStore) Delete(_ context.Context, key string) error {
	key, err := store.CleanKey(key)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.documents.Delete(key); !ok {
		return store.NotFound(key)
	}
	return nil
}

func (ms *MemoryStore) List(_ context.Context) ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	keys := make([]string, 0, ms.documents.Len())
	ms.documents.Scan(func(key string, _ *store.Document) bool {
		keys = append(keys, key)
		return true
	})
	return keys, nil
}

package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	cmderrors "github.com/mwantia/cmdargs/pkg/errors"
	"github.com/mwantia/cmdargs/store"
)

// LocalStore keeps each document as a file below root.
// The revision is derived from the file modification time and size.
type LocalStore struct {
	mu   sync.RWMutex
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{
		root: filepath.Clean(root),
	}
}

func (*LocalStore) Name() string {
	return "local"
}

func (ls *LocalStore) Open(_ context.Context) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	info, err := os.Stat(ls.root)
	if errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(ls.root, 0o755)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("root '%s' is not a directory: %w", ls.root, cmderrors.ErrStoreUnavailable)
	}
	return nil
}

func (*LocalStore) Close(_ context.Context) error {
	return nil
}

func (ls *LocalStore) Get(_ context.Context, key string) (*store.Document, error) {
	key, err := store.CleanKey(key)
	if err != nil {
		return nil, err
	}

	ls.mu.RLock()
	defer ls.mu.RUnlock()

	fullPath := ls.resolvePath(key)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, store.NotFound(key)
		}
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, err
	}

	doc := documentOf(key, info)
	doc.Content = content
	return doc, nil
}

func (ls *LocalStore) Put(_ context.Context, key string, content []byte) (*store.Document, error) {
	key, err := store.CleanKey(key)
	if err != nil {
		return nil, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	fullPath := ls.resolvePath(key)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return nil, err
	}

	// Write to a sibling first so readers never observe a partial document.
	temp, err := os.CreateTemp(filepath.Dir(fullPath), ".cmdargs-*")
	if err != nil {
		return nil, err
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(content); err != nil {
		temp.Close()
		return nil, err
	}
	if err := temp.Close(); err != nil {
		return nil, err
	}
	if err := os.Rename(temp.Name(), fullPath); err != nil {
		return nil, err
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return nil, err
	}

	doc := documentOf(key, info)
	doc.Content = append([]byte(nil), content...)
	return doc, nil
}

func (ls *LocalStore) Delete(_ context.Context, key string) error {
	key, err := store.CleanKey(key)
	if err != nil {
		return err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if err := os.Remove(ls.resolvePath(key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return store.NotFound(key)
		}
		return err
	}
	return nil
}

func (ls *LocalStore) List(_ context.Context) ([]string, error) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()

	keys := []string{}
	err := filepath.WalkDir(ls.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(ls.root, path)
		if err != nil {
			return err
		}
		if key, err := store.CleanKey(filepath.ToSlash(rel)); err == nil {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(keys)
	return keys, nil
}

func (ls *LocalStore) resolvePath(key string) string {
	return filepath.Join(ls.root, filepath.FromSlash(key))
}

func documentOf(key string, info fs.FileInfo) *store.Document {
	return &store.Document{
		Key:        key,
		Revision:   fmt.Sprintf("%x-%x", info.ModTime().UnixNano(), info.Size()),
		Size:       info.Size(),
		ModifyTime: info.ModTime().UTC(),
	}
}

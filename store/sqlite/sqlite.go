package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	cmderrors "github.com/mwantia/cmdargs/pkg/errors"
	"github.com/mwantia/cmdargs/store"
)

// SQLiteStore keeps documents in a single table of a SQLite database.
type SQLiteStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath.
// The dbPath can be ":memory:" for an in-memory database or a file path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Every connection to ":memory:" would see its own empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{
		db: db,
	}, nil
}

func (*SQLiteStore) Name() string {
	return "sqlite"
}

func (ss *SQLiteStore) Open(ctx context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if err := ss.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w: %w", cmderrors.ErrStoreUnavailable, err)
	}

	_, err := ss.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS cmdargs_schemas (
		key TEXT PRIMARY KEY,
		revision TEXT NOT NULL,
		content BLOB,
		modify_time INTEGER NOT NULL
	)`)
	return err
}

func (ss *SQLiteStore) Close(_ context.Context) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	return ss.db.Close()
}

func (ss *SQLiteStore) Get(ctx context.Context, key string) (*store.Document, error) {
	key, err := store.CleanKey(key)
	if err != nil {
		return nil, err
	}

	ss.mu.RLock()
	defer ss.mu.RUnlock()

	doc := &store.Document{Key: key}
	var modifyTime int64

	row := ss.db.QueryRowContext(ctx, "SELECT revision, content, modify_time FROM cmdargs_schemas WHERE key = ?", key)
	if err := row.Scan(&doc.Revision, &doc.Content, &modifyTime); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.NotFound(key)
		}
		return nil, err
	}

	doc.Size = int64(len(doc.Content))
	doc.ModifyTime = time.Unix(0, modifyTime).UTC()
	return doc, nil
}

func (ss *SQLiteStore) Put(ctx context.Context, key string, content []byte) (*store.Document, error) {
	key, err := store.CleanKey(key)
	if err != nil {
		return nil, err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	doc := store.NewDocument(key, content)
	_, err = ss.db.ExecContext(ctx, `
		INSERT INTO cmdargs_schemas (key, revision, content, modify_time) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			revision = excluded.revision,
			content = excluded.content,
			modify_time = excluded.modify_time`,
		doc.Key, doc.Revision, doc.Content, doc.ModifyTime.UnixNano())
	if err != nil {
		return nil, err
	}

	return doc, nil
}

func (ss *SQLiteStore) Delete(ctx context.Context, key string) error {
	key, err := store.CleanKey(key)
	if err != nil {
		return err
	}

	ss.mu.Lock()
	defer ss.mu.Unlock()

	result, err := ss.db.ExecContext(ctx, "DELETE FROM cmdargs_schemas WHERE key = ?", key)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.NotFound(key)
	}
	return nil
}

func (ss *SQLiteStore) List(ctx context.Context) ([]string, error) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	rows, err := ss.db.QueryContext(ctx, "SELECT key FROM cmdargs_schemas ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

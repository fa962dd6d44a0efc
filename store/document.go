package store

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mwantia/cmdargs/pkg/errors"
)

// Document is a stored schema file.
// Revision is opaque and changes whenever the content is replaced.
type Document struct {
	Key        string    `json:"key"`
	Revision   string    `json:"revision"`
	Size       int64     `json:"size"`
	ModifyTime time.Time `json:"modify_time,omitzero"`
	Content    []byte    `json:"-"`
}

func NewDocument(key string, content []byte) *Document {
	return &Document{
		Key:        key,
		Revision:   NewRevision(),
		Size:       int64(len(content)),
		ModifyTime: time.Now().UTC(),
		Content:    append([]byte(nil), content...),
	}
}

// Clone returns a deep copy so callers cannot modify stored content.
func (d *Document) Clone() *Document {
	clone := *d
	clone.Content = append([]byte(nil), d.Content...)
	return &clone
}

func NewRevision() string {
	return uuid.Must(uuid.NewV7()).String()
}

// CleanKey trims surrounding slashes and rejects keys that are empty
// or not already in canonical slash-separated form.
func CleanKey(key string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(key), "/")
	if trimmed == "" {
		return "", fmt.Errorf("key cannot be empty: %w", errors.ErrInvalidDocumentKey)
	}

	cleaned := path.Clean(trimmed)
	if cleaned != trimmed || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("invalid key '%s': %w", key, errors.ErrInvalidDocumentKey)
	}
	if strings.ContainsRune(cleaned, '\\') {
		return "", fmt.Errorf("invalid key '%s': %w", key, errors.ErrInvalidDocumentKey)
	}

	return cleaned, nil
}

// ContentType maps a key extension to the MIME type used by object stores.
func ContentType(key string) string {
	switch strings.ToLower(filepath.Ext(key)) {
	case ".yaml", ".yml":
		return "application/yaml"
	case ".toml":
		return "application/toml"
	case ".json":
		return "application/json"
	}
	return "application/octet-stream"
}

// NotFound wraps ErrDocumentNotFound with the missing key.
func NotFound(key string) error {
	return fmt.Errorf("document '%s': %w", key, errors.ErrDocumentNotFound)
}

// Package storage archives conversion results so they can be downloaded
// later. Results are saved only when a client asks for it.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"document-converter/internal/config"
	"document-converter/internal/model"
)

// ErrNotFound is returned when a key has no stored object
var ErrNotFound = errors.New("object not found")

// ErrInvalidKey is returned for keys that could escape the store
var ErrInvalidKey = errors.New("invalid object key")

// Object is a stored result
type Object struct {
	Key         string
	ContentType string
	Data        []byte
}

// Store saves and serves conversion results
type Store interface {
	// Save stores data under a new unique key derived from name
	Save(ctx context.Context, name string, data []byte) (string, error)
	// Open returns the object stored under key
	Open(ctx context.Context, key string) (*Object, error)
	// Delete removes the object stored under key
	Delete(ctx context.Context, key string) error
	// Backend names the storage backend
	Backend() string
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// NewKey returns a unique, path-safe key that keeps name readable
func NewKey(name string) string {
	clean := strings.Trim(unsafeKeyChars.ReplaceAllString(name, "_"), "._")
	if clean == "" {
		clean = "result"
	}
	return uuid.NewString() + "-" + clean
}

// ValidateKey rejects keys that are empty or could leave the store
func ValidateKey(key string) error {
	if key == "" || strings.Contains(key, "..") || unsafeKeyChars.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// ContentTypeOf derives a MIME type from the key's extension
func ContentTypeOf(key string) string {
	return model.FormatFromName(key).ContentType()
}

// New creates the store selected by the configuration. It returns nil when
// storage is disabled.
func New(cfg config.StorageConfig, logger logrus.FieldLogger) (Store, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", config.StorageNone:
		return nil, nil
	case config.StorageLocal:
		store, err := NewLocalStore(cfg.OutputDir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageSupabase:
		return NewSupabaseStore(cfg.Supabase, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

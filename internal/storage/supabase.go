package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	storage_go "github.com/supabase-community/storage-go"
	supabase "github.com/supabase-community/supabase-go"

	"document-converter/internal/config"
)

// objectClient is the part of the Supabase Storage client the store uses
type objectClient interface {
	UploadFile(bucketID, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	DownloadFile(bucketID, filePath string, urlOptions ...storage_go.UrlOptions) ([]byte, error)
	RemoveFile(bucketID string, paths []string) ([]storage_go.FileUploadResponse, error)
}

// SupabaseStore keeps results in a Supabase Storage bucket. The client is
// created on first use and shared for the life of the process.
type SupabaseStore struct {
	cfg    config.SupabaseConfig
	logger logrus.FieldLogger

	once    sync.Once
	client  objectClient
	initErr error
}

// NewSupabaseStore returns a store for the configured bucket. No connection
// is made until the first operation.
func NewSupabaseStore(cfg config.SupabaseConfig, logger logrus.FieldLogger) *SupabaseStore {
	return &SupabaseStore{cfg: cfg, logger: logger}
}

func (s *SupabaseStore) storage() (objectClient, error) {
	s.once.Do(func() {
		if s.client != nil {
			return
		}
		client, err := supabase.NewClient(s.cfg.URL, s.cfg.Key, nil)
		if err != nil {
			s.initErr = fmt.Errorf("initialize supabase client: %w", err)
			return
		}
		s.client = client.Storage
		s.logger.WithField("bucket", s.cfg.Bucket).Info("supabase storage client initialized")
	})
	return s.client, s.initErr
}

func (s *SupabaseStore) objectPath(key string) string {
	if s.cfg.Prefix == "" {
		return key
	}
	return path.Join(strings.Trim(s.cfg.Prefix, "/"), key)
}

// Backend implements Store
func (s *SupabaseStore) Backend() string {
	return "supabase"
}

// Save implements Store
func (s *SupabaseStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	client, err := s.storage()
	if err != nil {
		return "", err
	}

	key := NewKey(name)
	contentType := ContentTypeOf(key)
	upsert := false
	_, err = client.UploadFile(s.cfg.Bucket, s.objectPath(key), bytes.NewReader(data), storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}
	return key, nil
}

// Open implements Store
func (s *SupabaseStore) Open(ctx context.Context, key string) (*Object, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	client, err := s.storage()
	if err != nil {
		return nil, err
	}

	data, err := client.DownloadFile(s.cfg.Bucket, s.objectPath(key))
	if err != nil {
		// the storage API reports missing objects as a generic error
		if strings.Contains(strings.ToLower(err.Error()), "not found") {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to download %s: %w", key, err)
	}
	return &Object{Key: key, ContentType: ContentTypeOf(key), Data: data}, nil
}

// Delete implements Store
func (s *SupabaseStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	client, err := s.storage()
	if err != nil {
		return err
	}
	if _, err := client.RemoveFile(s.cfg.Bucket, []string{s.objectPath(key)}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LocalStore stores receipt files on the local filesystem and serves
// them under a URL prefix ("/uploads" by default). Suitable for single
// node deployments and development.
type LocalStore struct {
	baseDir   string
	urlPrefix string
	mutex     sync.Mutex
}

// NewLocalStore creates a local receipt store rooted at baseDir,
// creating the directory if needed.
func NewLocalStore(baseDir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, &StorageError{
			Op:  "create_store",
			Err: fmt.Errorf("failed to create uploads directory: %w", err),
		}
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	return &LocalStore{
		baseDir:   baseDir,
		urlPrefix: strings.TrimSuffix(urlPrefix, "/"),
	}, nil
}

// BaseDir returns the directory files are stored in, for static-file
// serving.
func (s *LocalStore) BaseDir() string {
	return s.baseDir
}

// Save writes the receipt file to disk and returns its serving URL.
func (s *LocalStore) Save(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	select {
	case <-ctx.Done():
		return "", &StorageError{Op: "save_receipt", Err: ctx.Err()}
	default:
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	// Uploaded names are generated server-side, but keep path
	// traversal out regardless.
	filename = filepath.Base(filename)
	path := filepath.Join(s.baseDir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", &StorageError{
			Op:  "save_receipt",
			Err: fmt.Errorf("failed to write receipt file: %w", err),
		}
	}

	return s.urlPrefix + "/" + filename, nil
}

// Remove deletes the file a Save-returned URL points to. A URL outside
// this store's prefix is rejected.
func (s *LocalStore) Remove(ctx context.Context, receiptURL string) error {
	select {
	case <-ctx.Done():
		return &StorageError{Op: "remove_receipt", Err: ctx.Err()}
	default:
	}

	if !strings.HasPrefix(receiptURL, s.urlPrefix+"/") {
		return &StorageError{
			Op:  "remove_receipt",
			Err: fmt.Errorf("URL %q is not served by this store", receiptURL),
		}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	filename := filepath.Base(strings.TrimPrefix(receiptURL, s.urlPrefix+"/"))
	path := filepath.Join(s.baseDir, filename)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &StorageError{
			Op:  "remove_receipt",
			Err: fmt.Errorf("failed to remove receipt file: %w", err),
		}
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
)

// StorageError represents an error in a receipt store
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ReceiptStore persists uploaded receipt files and resolves them to a
// URL the frontend can render. Implementations: S3-compatible object
// storage or the local uploads directory.
type ReceiptStore interface {
	// Save stores the file under the given name and returns its URL.
	Save(ctx context.Context, data []byte, filename, contentType string) (string, error)

	// Remove deletes the stored file a previously returned URL points
	// to. Removing a URL this store did not produce is an error.
	Remove(ctx context.Context, receiptURL string) error
}

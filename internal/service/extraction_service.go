package service

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/hanifzr/expense-reporting-service/internal/extract"
	"github.com/hanifzr/expense-reporting-service/internal/imageutil"
	"github.com/hanifzr/expense-reporting-service/internal/storage"
)

// ServiceError represents an error in a service
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// ExtractionService processes uploaded receipt files: stores the file,
// runs the field-extraction engine and returns the combined result.
type ExtractionService interface {
	ProcessReceipt(ctx context.Context, fileData []byte, originalName string) (*domain.ReceiptUpload, error)
}

// ExtractionServiceImpl implements ExtractionService
type ExtractionServiceImpl struct {
	engine     *extract.Engine
	store      storage.ReceiptStore
	workerPool chan struct{}
}

// NewExtractionService creates an ExtractionService. maxWorkers bounds
// the number of concurrent recognitions; recognition over an image can
// take seconds and the server must keep accepting other requests while
// extractions are in flight.
func NewExtractionService(engine *extract.Engine, store storage.ReceiptStore, maxWorkers int) *ExtractionServiceImpl {
	if maxWorkers <= 0 {
		maxWorkers = 5
	}
	return &ExtractionServiceImpl{
		engine:     engine,
		store:      store,
		workerPool: make(chan struct{}, maxWorkers),
	}
}

// ProcessReceipt stores the uploaded file and runs the extraction
// pipeline over it. The pipeline itself never fails: a file the
// provider cannot read still yields a usable (mock) record. Only
// storage problems surface as errors.
func (s *ExtractionServiceImpl) ProcessReceipt(ctx context.Context, fileData []byte, originalName string) (*domain.ReceiptUpload, error) {
	// Acquire worker from pool
	select {
	case s.workerPool <- struct{}{}:
		defer func() {
			<-s.workerPool
		}()
	case <-ctx.Done():
		return nil, &ServiceError{Op: "acquire_worker", Err: ctx.Err()}
	}

	// Sniff the media type from content; the client-declared type is
	// not trusted.
	mediaType := mimetype.Detect(fileData).String()
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}

	filename := storedFilename(originalName)
	receiptURL, err := s.store.Save(ctx, fileData, filename, mediaType)
	if err != nil {
		return nil, &ServiceError{Op: "store_receipt_file", Err: err}
	}

	// Downscale large photos before recognition. If preparation fails
	// the original bytes go to the engine, whose own failure policy
	// takes over.
	recognitionInput := fileData
	if mediaType != "application/pdf" {
		if prepared, prepErr := imageutil.PrepareForRecognition(fileData, 0); prepErr == nil {
			recognitionInput = prepared
		} else {
			log.Printf("Warning: could not prepare %s for recognition: %v", filename, prepErr)
		}
	}

	extracted := s.engine.Extract(ctx, recognitionInput, mediaType)

	return &domain.ReceiptUpload{
		ReceiptURL: receiptURL,
		FileName:   filename,
		FileSize:   int64(len(fileData)),
		MediaType:  mediaType,
		Extracted:  extracted,
	}, nil
}

// storedFilename generates a unique name keeping the original
// extension.
func storedFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return fmt.Sprintf("receipt-%s%s", uuid.NewString(), ext)
}

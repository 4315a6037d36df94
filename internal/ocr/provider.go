package ocr

import (
	"context"
	"fmt"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
)

// ProviderError represents an error from a recognition provider
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Provider converts an image into raw multi-line text plus an overall
// recognition confidence in [0,100]. Recognition over a large image can
// take seconds; implementations must respect the context so the caller
// stays responsive while an extraction is in flight.
type Provider interface {
	Recognize(ctx context.Context, image []byte) (*domain.RawRecognitionResult, error)

	// Supports reports whether the provider can read the given media
	// type. Unsupported media bypasses recognition entirely.
	Supports(mediaType string) bool
}

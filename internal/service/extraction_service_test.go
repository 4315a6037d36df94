package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/hanifzr/expense-reporting-service/internal/extract"
)

type stubProvider struct {
	text       string
	confidence float64
	err        error
	calls      int
}

func (p *stubProvider) Recognize(ctx context.Context, image []byte) (*domain.RawRecognitionResult, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &domain.RawRecognitionResult{Text: p.text, Confidence: p.confidence}, nil
}

func (p *stubProvider) Supports(mediaType string) bool {
	return mediaType != "application/pdf"
}

type stubStore struct {
	saved     map[string][]byte
	saveErr   error
	removeErr error
}

func newStubStore() *stubStore {
	return &stubStore{saved: map[string][]byte{}}
}

func (s *stubStore) Save(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saved[filename] = data
	return "/uploads/" + filename, nil
}

func (s *stubStore) Remove(ctx context.Context, receiptURL string) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.saved, strings.TrimPrefix(receiptURL, "/uploads/"))
	return nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessReceiptStoresFileAndExtracts(t *testing.T) {
	provider := &stubProvider{
		text:       "Starbucks Coffee Shop\nTotal: $42.50\nDate: 03/04/2025",
		confidence: 91,
	}
	store := newStubStore()
	svc := NewExtractionService(extract.NewEngine(provider, nil, nil), store, 2)

	upload, err := svc.ProcessReceipt(context.Background(), pngBytes(t), "photo.png")
	require.NoError(t, err)

	assert.Equal(t, "image/png", upload.MediaType)
	assert.True(t, strings.HasPrefix(upload.FileName, "receipt-"))
	assert.True(t, strings.HasSuffix(upload.FileName, ".png"))
	assert.Equal(t, "/uploads/"+upload.FileName, upload.ReceiptURL)
	assert.Len(t, store.saved, 1)

	assert.True(t, upload.Extracted.Success)
	assert.Equal(t, "42.5", upload.Extracted.Amount.String())
	assert.Equal(t, "2025-03-04", upload.Extracted.Date)
	assert.Equal(t, 1, provider.calls)
}

func TestProcessReceiptPDFSkipsRecognition(t *testing.T) {
	provider := &stubProvider{}
	store := newStubStore()
	svc := NewExtractionService(extract.NewEngine(provider, nil, nil), store, 2)

	pdf := []byte("%PDF-1.4\n%some pdf content here for sniffing\n")
	upload, err := svc.ProcessReceipt(context.Background(), pdf, "scan.pdf")
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", upload.MediaType)
	assert.True(t, upload.Extracted.Success)
	assert.Empty(t, upload.Extracted.Error)
	assert.Equal(t, 0, provider.calls, "PDF must not reach the provider")
}

func TestProcessReceiptProviderFailureStillSucceeds(t *testing.T) {
	provider := &stubProvider{err: errors.New("engine offline")}
	store := newStubStore()
	svc := NewExtractionService(extract.NewEngine(provider, nil, nil), store, 2)

	upload, err := svc.ProcessReceipt(context.Background(), pngBytes(t), "photo.png")
	require.NoError(t, err, "recognition failure is not an upload failure")

	assert.False(t, upload.Extracted.Success)
	assert.NotEmpty(t, upload.Extracted.Error)
	assert.False(t, upload.Extracted.Amount.IsZero())
	assert.Len(t, store.saved, 1, "the file is stored either way")
}

func TestProcessReceiptStorageErrorPropagates(t *testing.T) {
	provider := &stubProvider{text: "Total: $10.00", confidence: 90}
	store := newStubStore()
	store.saveErr = errors.New("disk full")
	svc := NewExtractionService(extract.NewEngine(provider, nil, nil), store, 2)

	_, err := svc.ProcessReceipt(context.Background(), pngBytes(t), "photo.png")
	require.Error(t, err)

	var svcErr *ServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "store_receipt_file", svcErr.Op)
}

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
)

// supportedMediaTypes lists the media kinds Tesseract can read. PDFs
// are explicitly excluded and handled by the caller's fallback policy.
var supportedMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// TesseractProvider performs text recognition with a local Tesseract
// installation via gosseract.
type TesseractProvider struct {
	language string
}

// NewTesseractProvider creates a provider for the given language
// ("eng" when empty).
func NewTesseractProvider(language string) *TesseractProvider {
	if language == "" {
		language = "eng"
	}
	return &TesseractProvider{language: language}
}

// Supports reports whether the media type is an image kind Tesseract
// can read.
func (p *TesseractProvider) Supports(mediaType string) bool {
	return supportedMediaTypes[strings.ToLower(mediaType)]
}

// Recognize runs OCR over the image and returns the raw text with the
// mean word confidence. A gosseract client is created per call; the
// underlying Tesseract API is not safe for concurrent use on a shared
// client.
func (p *TesseractProvider) Recognize(ctx context.Context, image []byte) (*domain.RawRecognitionResult, error) {
	select {
	case <-ctx.Done():
		return nil, &ProviderError{Op: "recognize", Err: ctx.Err()}
	default:
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(p.language); err != nil {
		return nil, &ProviderError{Op: "set_language", Err: err}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return nil, &ProviderError{Op: "set_image", Err: err}
	}

	text, err := client.Text()
	if err != nil {
		return nil, &ProviderError{Op: "recognize", Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ProviderError{Op: "recognize", Err: fmt.Errorf("no text recognized in image")}
	}

	return &domain.RawRecognitionResult{
		Text:       text,
		Confidence: p.meanConfidence(client),
	}, nil
}

// meanConfidence averages per-word confidences. Tesseract reports each
// word in [0,100]; an image with no word boxes yields 0.
func (p *TesseractProvider) meanConfidence(client *gosseract.Client) float64 {
	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, box := range boxes {
		sum += box.Confidence
	}
	return sum / float64(len(boxes))
}

package domain

import (
	"github.com/shopspring/decimal"
)

// RawRecognitionResult is the output of a text-recognition provider:
// the raw multi-line text read from an image plus the provider's own
// confidence score in [0,100]. It is produced once per image and is
// never mutated by the extractors.
type RawRecognitionResult struct {
	Text       string
	Confidence float64
}

// ReceiptUpload is the result of processing one uploaded receipt file:
// where the file was stored, its metadata, and the engine's best-guess
// expense fields.
type ReceiptUpload struct {
	ReceiptURL string               `json:"receiptUrl"`
	FileName   string               `json:"fileName"`
	FileSize   int64                `json:"fileSize"`
	MediaType  string               `json:"mediaType"`
	Extracted  ExtractedReceiptData `json:"extractedData"`
}

// ExtractedReceiptData is the extraction engine's output contract.
// Every field is always populated: the engine never returns a blocking
// failure to its caller, only a possibly low-quality record. Confidence
// is the provider's recognition confidence, not a measure of extraction
// accuracy.
type ExtractedReceiptData struct {
	Amount        decimal.Decimal `json:"amount"`
	Category      Category        `json:"category"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	ExtractedText string          `json:"extractedText,omitempty"`
	Confidence    float64         `json:"confidence"`
	Success       bool            `json:"success"`
	Error         string          `json:"error,omitempty"`
}

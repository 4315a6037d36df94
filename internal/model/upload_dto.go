package model

// ExtractedDataResponse represents the engine's best-guess expense
// fields for an uploaded receipt
type ExtractedDataResponse struct {
	Amount        string  `json:"amount"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Date          string  `json:"date"`
	ExtractedText string  `json:"extractedText,omitempty"`
	Confidence    float64 `json:"confidence"`
	Success       bool    `json:"success"`
	Error         string  `json:"error,omitempty"`
}

// UploadReceiptResponse represents the result of a receipt upload
type UploadReceiptResponse struct {
	ReceiptURL    string                `json:"receiptUrl"`
	FileName      string                `json:"fileName"`
	FileSize      int64                 `json:"fileSize"`
	MediaType     string                `json:"mediaType"`
	ExtractedData ExtractedDataResponse `json:"extractedData"`
}

package handler

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/hanifzr/expense-reporting-service/internal/model"
	"github.com/hanifzr/expense-reporting-service/internal/service"
)

// DefaultMaxUploadSize caps receipt uploads at 5 MB
const DefaultMaxUploadSize = 5 << 20

// allowedExtensions lists the receipt file types accepted for upload
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

// UploadHandler handles receipt upload and extraction requests
type UploadHandler struct {
	extractionService service.ExtractionService
	maxUploadSize     int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(extractionService service.ExtractionService, maxUploadSize int64) *UploadHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &UploadHandler{
		extractionService: extractionService,
		maxUploadSize:     maxUploadSize,
	}
}

// UploadReceipt handles the POST /receipts/upload endpoint
// @Summary Upload a receipt file
// @Description Upload a receipt image or PDF, store it and extract expense fields
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param receipt formData file true "Receipt file (jpg, jpeg, png or pdf, max 5MB)"
// @Success 200 {object} model.UploadReceiptResponse "Receipt processed"
// @Failure 400 {object} model.ErrorResponse "Bad request"
// @Failure 401 {object} model.ErrorResponse "Unauthorized"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/receipts/upload [post]
func (h *UploadHandler) UploadReceipt(c *gin.Context) {
	if _, exists := c.Get("userID"); !exists {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	file, header, err := getFormFile(c, "receipt")
	if err != nil {
		respondBadRequest(c, err.Error(), newErrorDetail("receipt", "Receipt file is required"))
		return
	}
	defer file.Close()

	if header.Size > h.maxUploadSize {
		respondBadRequest(c, "File too large",
			newErrorDetail("receipt", "Receipt file cannot exceed 5MB"))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		respondBadRequest(c, "Unsupported file type",
			newErrorDetail("receipt", "Only jpg, jpeg, png and pdf files are accepted"))
		return
	}

	fileBytes, err := io.ReadAll(io.LimitReader(file, h.maxUploadSize+1))
	if err != nil {
		logError(c, "failed_to_read_upload", err, map[string]interface{}{
			"file_name": header.Filename,
		})
		respondInternalServerError(c, ErrFileProcessing)
		return
	}
	if int64(len(fileBytes)) > h.maxUploadSize {
		respondBadRequest(c, "File too large",
			newErrorDetail("receipt", "Receipt file cannot exceed 5MB"))
		return
	}

	upload, err := h.extractionService.ProcessReceipt(c.Request.Context(), fileBytes, header.Filename)
	if err != nil {
		logError(c, "failed_to_process_receipt", err, map[string]interface{}{
			"file_name": header.Filename,
			"file_size": len(fileBytes),
		})
		respondInternalServerError(c, ErrFileProcessing)
		return
	}

	respondOK(c, formatUploadResponse(upload))
}

// formatUploadResponse formats a processed upload for response
func formatUploadResponse(upload *domain.ReceiptUpload) model.UploadReceiptResponse {
	return model.UploadReceiptResponse{
		ReceiptURL: upload.ReceiptURL,
		FileName:   upload.FileName,
		FileSize:   upload.FileSize,
		MediaType:  upload.MediaType,
		ExtractedData: model.ExtractedDataResponse{
			Amount:        upload.Extracted.Amount.StringFixed(2),
			Category:      string(upload.Extracted.Category),
			Description:   upload.Extracted.Description,
			Date:          upload.Extracted.Date,
			ExtractedText: upload.Extracted.ExtractedText,
			Confidence:    upload.Extracted.Confidence,
			Success:       upload.Extracted.Success,
			Error:         upload.Extracted.Error,
		},
	}
}

// RegisterRoutes registers the upload routes
func (h *UploadHandler) RegisterRoutes(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	receipts := router.Group("/api/v1/receipts", authMiddleware)
	{
		receipts.POST("/upload", h.UploadReceipt)
	}
}

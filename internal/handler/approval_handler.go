package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/hanifzr/expense-reporting-service/internal/model"
	"github.com/hanifzr/expense-reporting-service/internal/service"
)

// ApprovalHandler handles HTTP requests for approval operations
type ApprovalHandler struct {
	approvalService service.ApprovalService
}

// NewApprovalHandler creates a new approval handler
func NewApprovalHandler(approvalService service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{
		approvalService: approvalService,
	}
}

// GetApprovals handles the GET /approvals endpoint
// @Summary List approval requests
// @Description Get all approval requests in the queue
// @Tags approvals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ApprovalsListResponse "Approval requests"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/approvals [get]
func (h *ApprovalHandler) GetApprovals(c *gin.Context) {
	approvals, err := h.approvalService.ListApprovals(c.Request.Context())
	if err != nil {
		respondInternalServerError(c, "Failed to retrieve approvals")
		return
	}

	respondOK(c, model.ApprovalsListResponse{
		Data: formatApprovalsResponse(approvals),
	})
}

// CreateApproval handles the POST /approvals endpoint
// @Summary Create an approval request
// @Description Create a new approval request; the USD equivalent is computed from the request currency
// @Tags approvals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param approval body model.ApprovalRequest true "Approval data"
// @Success 201 {object} model.ApprovalResponse "Approval created"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/approvals [post]
func (h *ApprovalHandler) CreateApproval(c *gin.Context) {
	var req model.ApprovalRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	approval, details := approvalFromRequest(&req)
	if approval.RequestOwner == "" {
		details = append(details, newErrorDetail("requestOwner", "Request owner is required"))
	}
	if len(details) > 0 {
		respondBadRequest(c, ErrInvalidInput, details...)
		return
	}

	created, err := h.approvalService.CreateApproval(c.Request.Context(), approval)
	if err != nil {
		logError(c, "failed_to_create_approval", err, map[string]interface{}{
			"request_owner": approval.RequestOwner,
		})
		respondInternalServerError(c, "Failed to create approval")
		return
	}

	respondCreated(c, formatApprovalResponse(created))
}

// UpdateApproval handles the PUT /approvals/{approvalId} endpoint
// @Summary Update an approval request
// @Description Update an approval request, typically to record an Approved or Rejected decision
// @Tags approvals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param approvalId path string true "Approval ID"
// @Param approval body model.ApprovalRequest true "Updated approval data"
// @Success 200 {object} model.ApprovalResponse "Approval updated"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 404 {object} model.ErrorResponse "Approval not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/approvals/{approvalId} [put]
func (h *ApprovalHandler) UpdateApproval(c *gin.Context) {
	approvalID, err := getPathParam(c, "approvalId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var req model.ApprovalRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	approval, details := approvalFromRequest(&req)
	if len(details) > 0 {
		respondBadRequest(c, ErrInvalidInput, details...)
		return
	}
	approval.ID = approvalID

	updated, err := h.approvalService.UpdateApproval(c.Request.Context(), approval)
	if err != nil {
		if errors.Is(err, service.ErrApprovalNotFound) {
			respondNotFound(c, "Approval not found")
		} else {
			respondInternalServerError(c, "Failed to update approval")
		}
		return
	}

	respondOK(c, formatApprovalResponse(updated))
}

// approvalFromRequest converts a request body into a domain approval,
// collecting field-level conversion problems.
func approvalFromRequest(req *model.ApprovalRequest) (*domain.Approval, []model.ErrorDetail) {
	var details []model.ErrorDetail

	approval := &domain.Approval{
		Subject:      req.Subject,
		RequestOwner: req.RequestOwner,
		Category:     req.Category,
		Currency:     req.Currency,
	}

	if req.Status != "" {
		status := domain.ApprovalStatus(req.Status)
		if !status.IsValid() {
			details = append(details, newErrorDetail("status",
				"Status must be Pending, Approved or Rejected"))
		} else {
			approval.Status = status
		}
	}

	if req.TotalAmount != "" {
		amount, err := decimal.NewFromString(req.TotalAmount)
		if err != nil {
			details = append(details, newErrorDetail("totalAmount", "Total amount must be a number"))
		} else {
			approval.TotalAmount = amount
		}
	}

	return approval, details
}

// formatApprovalResponse formats an approval for response
func formatApprovalResponse(approval *domain.Approval) model.ApprovalResponse {
	return model.ApprovalResponse{
		ID:             approval.ID,
		Subject:        approval.Subject,
		RequestOwner:   approval.RequestOwner,
		Category:       approval.Category,
		Status:         string(approval.Status),
		TotalAmount:    approval.TotalAmount.StringFixed(2),
		Currency:       approval.Currency,
		TotalAmountUSD: approval.TotalAmountUSD.StringFixed(2),
		CreatedAt:      approval.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      approval.UpdatedAt.Format(time.RFC3339),
	}
}

// formatApprovalsResponse formats a slice of approvals for response
func formatApprovalsResponse(approvals []domain.Approval) []model.ApprovalResponse {
	formatted := make([]model.ApprovalResponse, len(approvals))
	for i := range approvals {
		formatted[i] = formatApprovalResponse(&approvals[i])
	}
	return formatted
}

// RegisterRoutes registers the approval routes. Decisions are limited
// to reviewer roles.
func (h *ApprovalHandler) RegisterRoutes(router *gin.Engine, authMiddleware, reviewerOnly gin.HandlerFunc) {
	approvals := router.Group("/api/v1/approvals", authMiddleware)
	{
		approvals.GET("", h.GetApprovals)
		approvals.POST("", h.CreateApproval)
		approvals.PUT("/:approvalId", reviewerOnly, h.UpdateApproval)
	}
}

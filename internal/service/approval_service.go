package service

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"

	"github.com/hanifzr/expense-reporting-service/internal/currency"
	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/hanifzr/expense-reporting-service/internal/repository"
)

// ErrApprovalNotFound is returned when an approval does not exist
var ErrApprovalNotFound = errors.New("approval not found")

// ApprovalService defines the business logic for approval requests
type ApprovalService interface {
	CreateApproval(ctx context.Context, approval *domain.Approval) (*domain.Approval, error)
	GetApprovalByID(ctx context.Context, approvalID string) (*domain.Approval, error)
	ListApprovals(ctx context.Context) ([]domain.Approval, error)
	UpdateApproval(ctx context.Context, approval *domain.Approval) (*domain.Approval, error)
}

// ApprovalServiceImpl implements ApprovalService
type ApprovalServiceImpl struct {
	repository repository.ApprovalRepository
	converter  currency.Converter
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(repo repository.ApprovalRepository, converter currency.Converter) *ApprovalServiceImpl {
	return &ApprovalServiceImpl{
		repository: repo,
		converter:  converter,
	}
}

// CreateApproval saves a new approval request. Missing optional fields
// get defaults, and the USD equivalent of the amount is computed when
// the exchange rate is available. A rate lookup failure does not block
// the create; the USD amount stays zero and can be filled in later.
func (s *ApprovalServiceImpl) CreateApproval(ctx context.Context, approval *domain.Approval) (*domain.Approval, error) {
	if approval.Subject == "" {
		approval.Subject = "none"
	}
	if approval.Currency == "" {
		approval.Currency = "USD"
	}
	if approval.Status == "" {
		approval.Status = domain.ApprovalPending
	}
	approval.TotalAmount = approval.TotalAmount.Round(2)
	approval.TotalAmountUSD = s.convertToUSD(ctx, approval.TotalAmount, approval.Currency)

	created, err := s.repository.CreateApproval(ctx, approval)
	if err != nil {
		return nil, &ServiceError{Op: "create_approval", Err: err}
	}
	return created, nil
}

// GetApprovalByID retrieves an approval by ID
func (s *ApprovalServiceImpl) GetApprovalByID(ctx context.Context, approvalID string) (*domain.Approval, error) {
	approval, err := s.repository.GetApprovalByID(ctx, approvalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApprovalNotFound
		}
		return nil, &ServiceError{Op: "get_approval", Err: err}
	}
	return approval, nil
}

// ListApprovals returns all approval requests
func (s *ApprovalServiceImpl) ListApprovals(ctx context.Context) ([]domain.Approval, error) {
	approvals, err := s.repository.ListApprovals(ctx)
	if err != nil {
		return nil, &ServiceError{Op: "list_approvals", Err: err}
	}
	return approvals, nil
}

// UpdateApproval replaces the fields of an approval request and
// recomputes the USD equivalent for the (possibly changed) amount.
func (s *ApprovalServiceImpl) UpdateApproval(ctx context.Context, approval *domain.Approval) (*domain.Approval, error) {
	existing, err := s.GetApprovalByID(ctx, approval.ID)
	if err != nil {
		return nil, err
	}

	if approval.Subject == "" {
		approval.Subject = existing.Subject
	}
	if approval.RequestOwner == "" {
		approval.RequestOwner = existing.RequestOwner
	}
	if approval.Currency == "" {
		approval.Currency = existing.Currency
	}
	if approval.Status == "" {
		approval.Status = existing.Status
	}
	approval.TotalAmount = approval.TotalAmount.Round(2)
	approval.TotalAmountUSD = s.convertToUSD(ctx, approval.TotalAmount, approval.Currency)

	updated, err := s.repository.UpdateApproval(ctx, approval)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrApprovalNotFound
		}
		return nil, &ServiceError{Op: "update_approval", Err: err}
	}
	return updated, nil
}

func (s *ApprovalServiceImpl) convertToUSD(ctx context.Context, amount decimal.Decimal, fromCurrency string) decimal.Decimal {
	if s.converter == nil {
		return decimal.Zero
	}
	converted, err := s.converter.Convert(ctx, amount, fromCurrency, "USD")
	if err != nil {
		log.Printf("Warning: could not convert %s %s to USD: %v", amount, fromCurrency, err)
		return decimal.Zero
	}
	return converted
}

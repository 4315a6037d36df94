package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus represents the decision state of an approval request
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "Pending"
	ApprovalApproved ApprovalStatus = "Approved"
	ApprovalRejected ApprovalStatus = "Rejected"
)

// IsValid reports whether the status is one of the known values
func (s ApprovalStatus) IsValid() bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	}
	return false
}

// Approval represents a pending or decided approval request.
// This is the single shared definition used by every consumer; the
// schema is never re-declared per service.
type Approval struct {
	ID             string          `json:"id"`
	Subject        string          `json:"subject"`
	RequestOwner   string          `json:"requestOwner"`
	Category       string          `json:"category"`
	Status         ApprovalStatus  `json:"status"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	Currency       string          `json:"currency"`
	TotalAmountUSD decimal.Decimal `json:"totalAmountUsd"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/hanifzr/expense-reporting-service/internal/repository"
)

type stubApprovalRepo struct {
	approvals map[string]*domain.Approval
	nextID    int
}

func newStubApprovalRepo() *stubApprovalRepo {
	return &stubApprovalRepo{approvals: map[string]*domain.Approval{}, nextID: 1}
}

func (r *stubApprovalRepo) CreateApproval(ctx context.Context, approval *domain.Approval) (*domain.Approval, error) {
	approval.ID = string(rune('0' + r.nextID))
	r.nextID++
	approval.CreatedAt = time.Now()
	approval.UpdatedAt = approval.CreatedAt
	stored := *approval
	r.approvals[approval.ID] = &stored
	return approval, nil
}

func (r *stubApprovalRepo) GetApprovalByID(ctx context.Context, approvalID string) (*domain.Approval, error) {
	approval, ok := r.approvals[approvalID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *approval
	return &copied, nil
}

func (r *stubApprovalRepo) ListApprovals(ctx context.Context) ([]domain.Approval, error) {
	result := []domain.Approval{}
	for _, approval := range r.approvals {
		result = append(result, *approval)
	}
	return result, nil
}

func (r *stubApprovalRepo) UpdateApproval(ctx context.Context, approval *domain.Approval) (*domain.Approval, error) {
	if _, ok := r.approvals[approval.ID]; !ok {
		return nil, repository.ErrNotFound
	}
	stored := *approval
	r.approvals[approval.ID] = &stored
	return approval, nil
}

type stubConverter struct {
	rate decimal.Decimal
	err  error
}

func (c *stubConverter) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	if c.err != nil {
		return decimal.Zero, c.err
	}
	if fromCurrency == toCurrency {
		return amount, nil
	}
	return amount.Mul(c.rate).Round(2), nil
}

func TestCreateApprovalAppliesDefaults(t *testing.T) {
	svc := NewApprovalService(newStubApprovalRepo(), &stubConverter{rate: decimal.NewFromInt(1)})

	created, err := svc.CreateApproval(context.Background(), &domain.Approval{
		RequestOwner: "Jordan Lee",
		TotalAmount:  decimal.RequireFromString("150.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "none", created.Subject)
	assert.Equal(t, "USD", created.Currency)
	assert.Equal(t, domain.ApprovalPending, created.Status)
	assert.Equal(t, "150", created.TotalAmountUSD.String())
}

func TestCreateApprovalConvertsToUSD(t *testing.T) {
	converter := &stubConverter{rate: decimal.RequireFromString("1.10")}
	svc := NewApprovalService(newStubApprovalRepo(), converter)

	created, err := svc.CreateApproval(context.Background(), &domain.Approval{
		RequestOwner: "Jordan Lee",
		Currency:     "EUR",
		TotalAmount:  decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "110", created.TotalAmountUSD.String())
}

func TestCreateApprovalSurvivesRateFailure(t *testing.T) {
	converter := &stubConverter{err: errors.New("rates unavailable")}
	svc := NewApprovalService(newStubApprovalRepo(), converter)

	created, err := svc.CreateApproval(context.Background(), &domain.Approval{
		RequestOwner: "Jordan Lee",
		Currency:     "EUR",
		TotalAmount:  decimal.RequireFromString("100.00"),
	})
	require.NoError(t, err, "rate lookup failure must not block the create")
	assert.True(t, created.TotalAmountUSD.IsZero())
}

func TestUpdateApprovalDecision(t *testing.T) {
	repo := newStubApprovalRepo()
	svc := NewApprovalService(repo, &stubConverter{rate: decimal.NewFromInt(1)})

	created, err := svc.CreateApproval(context.Background(), &domain.Approval{
		Subject:      "Q3 travel",
		RequestOwner: "Jordan Lee",
		TotalAmount:  decimal.RequireFromString("900.00"),
	})
	require.NoError(t, err)

	updated, err := svc.UpdateApproval(context.Background(), &domain.Approval{
		ID:          created.ID,
		Status:      domain.ApprovalApproved,
		TotalAmount: created.TotalAmount,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ApprovalApproved, updated.Status)
	assert.Equal(t, "Q3 travel", updated.Subject, "missing fields keep their stored values")
	assert.Equal(t, "Jordan Lee", updated.RequestOwner)
}

func TestUpdateApprovalNotFound(t *testing.T) {
	svc := NewApprovalService(newStubApprovalRepo(), &stubConverter{rate: decimal.NewFromInt(1)})

	_, err := svc.UpdateApproval(context.Background(), &domain.Approval{ID: "missing"})
	assert.ErrorIs(t, err, ErrApprovalNotFound)
}

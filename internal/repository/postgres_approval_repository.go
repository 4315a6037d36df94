package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
)

// PostgresApprovalRepository implements ApprovalRepository using PostgreSQL
type PostgresApprovalRepository struct {
	db *pgxpool.Pool
}

// NewPostgresApprovalRepository creates a new PostgreSQL approval repository
func NewPostgresApprovalRepository(db *pgxpool.Pool) *PostgresApprovalRepository {
	return &PostgresApprovalRepository{db: db}
}

const approvalColumns = `id, subject, request_owner, category, status, total_amount, currency, total_amount_usd, created_at, updated_at`

func scanApproval(row pgx.Row) (*domain.Approval, error) {
	var a domain.Approval
	err := row.Scan(
		&a.ID, &a.Subject, &a.RequestOwner, &a.Category, &a.Status,
		&a.TotalAmount, &a.Currency, &a.TotalAmountUSD, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateApproval saves a new approval request
func (r *PostgresApprovalRepository) CreateApproval(ctx context.Context, approval *domain.Approval) (*domain.Approval, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO approvals (subject, request_owner, category, status, total_amount, currency, total_amount_usd)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, approval.Subject, approval.RequestOwner, approval.Category, approval.Status,
		approval.TotalAmount, approval.Currency, approval.TotalAmountUSD,
	).Scan(&approval.ID, &approval.CreatedAt, &approval.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert approval: %w", err)
	}
	return approval, nil
}

// GetApprovalByID retrieves an approval by its ID
func (r *PostgresApprovalRepository) GetApprovalByID(ctx context.Context, approvalID string) (*domain.Approval, error) {
	approval, err := scanApproval(r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM approvals WHERE id = $1
	`, approvalColumns), approvalID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get approval: %w", err)
	}
	return approval, nil
}

// ListApprovals retrieves all approval requests, newest first
func (r *PostgresApprovalRepository) ListApprovals(ctx context.Context) ([]domain.Approval, error) {
	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM approvals ORDER BY created_at DESC
	`, approvalColumns))
	if err != nil {
		return nil, fmt.Errorf("failed to query approvals: %w", err)
	}
	defer rows.Close()

	approvals := []domain.Approval{}
	for rows.Next() {
		approval, err := scanApproval(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval: %w", err)
		}
		approvals = append(approvals, *approval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating approvals: %w", err)
	}

	return approvals, nil
}

// UpdateApproval updates an existing approval request
func (r *PostgresApprovalRepository) UpdateApproval(ctx context.Context, approval *domain.Approval) (*domain.Approval, error) {
	err := r.db.QueryRow(ctx, `
		UPDATE approvals
		SET subject = $1, request_owner = $2, category = $3, status = $4,
		    total_amount = $5, currency = $6, total_amount_usd = $7, updated_at = now()
		WHERE id = $8
		RETURNING updated_at
	`, approval.Subject, approval.RequestOwner, approval.Category, approval.Status,
		approval.TotalAmount, approval.Currency, approval.TotalAmountUSD, approval.ID,
	).Scan(&approval.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update approval: %w", err)
	}
	return approval, nil
}

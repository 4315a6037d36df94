package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// RepositoryError represents an error that occurred within a repository
type RepositoryError struct {
	// Op is the operation that failed
	Op string

	// Err is the underlying error
	Err error
}

func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// ExpenseRepository defines persistence operations for expenses
type ExpenseRepository interface {
	CreateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListByEmployee(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error)
	ListAll(ctx context.Context, filter domain.ExpenseFilter) (*domain.PaginatedExpenses, error)
	UpdateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	UpdateStatus(ctx context.Context, expenseID string, status domain.ExpenseStatus) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ApprovalRepository defines persistence operations for approvals
type ApprovalRepository interface {
	CreateApproval(ctx context.Context, approval *domain.Approval) (*domain.Approval, error)
	GetApprovalByID(ctx context.Context, approvalID string) (*domain.Approval, error)
	ListApprovals(ctx context.Context) ([]domain.Approval, error)
	UpdateApproval(ctx context.Context, approval *domain.Approval) (*domain.Approval, error)
}

// UserRepository defines persistence operations for users
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

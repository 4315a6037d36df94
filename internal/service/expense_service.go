package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
	"github.com/hanifzr/expense-reporting-service/internal/repository"
	"github.com/hanifzr/expense-reporting-service/internal/storage"
)

// Common expense service errors
var (
	ErrExpenseNotFound  = errors.New("expense not found")
	ErrExpenseSubmitted = errors.New("cannot edit submitted expense")
)

// ExpenseService defines the business logic for expenses
type ExpenseService interface {
	CreateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error)
	ListByEmployee(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, *domain.ExpenseSummary, error)
	ListAll(ctx context.Context, filter domain.ExpenseFilter) (*domain.PaginatedExpenses, error)
	UpdateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error)
	UpdateStatus(ctx context.Context, expenseID string, status domain.ExpenseStatus) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseServiceImpl implements ExpenseService
type ExpenseServiceImpl struct {
	repository repository.ExpenseRepository
	store      storage.ReceiptStore
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(repo repository.ExpenseRepository, store storage.ReceiptStore) *ExpenseServiceImpl {
	return &ExpenseServiceImpl{
		repository: repo,
		store:      store,
	}
}

// ValidateExpense checks required fields and enum values, returning a
// map of field name to problem for the transport layer.
func ValidateExpense(expense *domain.Expense) map[string]string {
	problems := map[string]string{}

	if expense.EmployeeID == "" {
		problems["employeeId"] = "Employee ID is required"
	}
	if expense.Description == "" {
		problems["description"] = "Description is required"
	} else if len(expense.Description) > 200 {
		problems["description"] = "Description cannot exceed 200 characters"
	}
	if !expense.Category.IsValid() {
		problems["category"] = fmt.Sprintf("%s is not a valid category", expense.Category)
	}
	if expense.Amount.IsNegative() || expense.Amount.IsZero() {
		problems["amount"] = "Amount must be a positive number"
	}
	if expense.Date.IsZero() {
		problems["date"] = "Date is required"
	}
	if expense.PaidBy == "" {
		problems["paidBy"] = "Payment method is required"
	} else if !expense.PaidBy.IsValid() {
		problems["paidBy"] = fmt.Sprintf("%s is not a valid payment method", expense.PaidBy)
	}
	if len(expense.Remarks) > 500 {
		problems["remarks"] = "Remarks cannot exceed 500 characters"
	}
	if expense.Status != "" && !expense.Status.IsValid() {
		problems["status"] = fmt.Sprintf("%s is not a valid status", expense.Status)
	}

	return problems
}

// CreateExpense validates and saves a new expense. Amounts are rounded
// to 2 decimal places before persisting; a missing status defaults to
// Draft.
func (s *ExpenseServiceImpl) CreateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	if expense.Status == "" {
		expense.Status = domain.StatusDraft
	}
	expense.Amount = expense.Amount.Round(2)

	created, err := s.repository.CreateExpense(ctx, expense)
	if err != nil {
		return nil, &ServiceError{Op: "create_expense", Err: err}
	}
	return created, nil
}

// GetExpenseByID retrieves an expense by ID
func (s *ExpenseServiceImpl) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := s.repository.GetExpenseByID(ctx, expenseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, &ServiceError{Op: "get_expense", Err: err}
	}
	return expense, nil
}

// ListByEmployee returns an employee's expenses with a summary of
// counts and totals.
func (s *ExpenseServiceImpl) ListByEmployee(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, *domain.ExpenseSummary, error) {
	expenses, err := s.repository.ListByEmployee(ctx, filter)
	if err != nil {
		return nil, nil, &ServiceError{Op: "list_expenses", Err: err}
	}
	return expenses, Summarize(expenses), nil
}

// Summarize aggregates counts and amount totals over a set of expenses
func Summarize(expenses []domain.Expense) *domain.ExpenseSummary {
	summary := &domain.ExpenseSummary{
		Total:       len(expenses),
		TotalAmount: decimal.Zero,
	}
	for _, expense := range expenses {
		summary.TotalAmount = summary.TotalAmount.Add(expense.Amount)
		switch expense.Status {
		case domain.StatusDraft:
			summary.Drafted++
		case domain.StatusSubmitted:
			summary.Submitted++
		}
	}
	return summary
}

// ListAll returns a paginated list of all expenses (admin view)
func (s *ExpenseServiceImpl) ListAll(ctx context.Context, filter domain.ExpenseFilter) (*domain.PaginatedExpenses, error) {
	paginated, err := s.repository.ListAll(ctx, filter)
	if err != nil {
		return nil, &ServiceError{Op: "list_all_expenses", Err: err}
	}
	return paginated, nil
}

// UpdateExpense replaces the editable fields of a draft expense.
// Submitted expenses are frozen.
func (s *ExpenseServiceImpl) UpdateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	existing, err := s.GetExpenseByID(ctx, expense.ID)
	if err != nil {
		return nil, err
	}
	if !existing.IsEditable() {
		return nil, ErrExpenseSubmitted
	}

	expense.Amount = expense.Amount.Round(2)
	updated, err := s.repository.UpdateExpense(ctx, expense)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, &ServiceError{Op: "update_expense", Err: err}
	}
	return updated, nil
}

// UpdateStatus moves an expense between Draft and Submitted
func (s *ExpenseServiceImpl) UpdateStatus(ctx context.Context, expenseID string, status domain.ExpenseStatus) (*domain.Expense, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status %q: must be Draft or Submitted", status)
	}

	updated, err := s.repository.UpdateStatus(ctx, expenseID, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExpenseNotFound
		}
		return nil, &ServiceError{Op: "update_expense_status", Err: err}
	}
	return updated, nil
}

// DeleteExpense removes an expense and its stored receipt file, if any.
// A receipt file that cannot be removed does not block the delete.
func (s *ExpenseServiceImpl) DeleteExpense(ctx context.Context, expenseID string) error {
	expense, err := s.GetExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}

	if expense.ReceiptURL != "" && s.store != nil {
		if err := s.store.Remove(ctx, expense.ReceiptURL); err != nil {
			log.Printf("Warning: failed to remove receipt %s: %v", expense.ReceiptURL, err)
		}
	}

	if err := s.repository.DeleteExpense(ctx, expenseID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrExpenseNotFound
		}
		return &ServiceError{Op: "delete_expense", Err: err}
	}
	return nil
}

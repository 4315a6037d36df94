package repository

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hanifzr/expense-reporting-service/internal/domain"
)

// PostgresExpenseRepository implements ExpenseRepository using PostgreSQL
type PostgresExpenseRepository struct {
	db *pgxpool.Pool
}

// NewPostgresExpenseRepository creates a new PostgreSQL expense repository
func NewPostgresExpenseRepository(db *pgxpool.Pool) *PostgresExpenseRepository {
	return &PostgresExpenseRepository{db: db}
}

const expenseColumns = `id, employee_id, description, category, amount, date, paid_by, remarks, status, receipt_url, created_at, updated_at`

func scanExpense(row pgx.Row) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Description, &e.Category, &e.Amount, &e.Date,
		&e.PaidBy, &e.Remarks, &e.Status, &e.ReceiptURL, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateExpense saves a new expense to the database
func (r *PostgresExpenseRepository) CreateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	err := r.db.QueryRow(ctx, `
		INSERT INTO expenses (employee_id, description, category, amount, date, paid_by, remarks, status, receipt_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`, expense.EmployeeID, expense.Description, expense.Category, expense.Amount, expense.Date,
		expense.PaidBy, expense.Remarks, expense.Status, expense.ReceiptURL,
	).Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert expense: %w", err)
	}
	return expense, nil
}

// GetExpenseByID retrieves an expense by its ID
func (r *PostgresExpenseRepository) GetExpenseByID(ctx context.Context, expenseID string) (*domain.Expense, error) {
	expense, err := scanExpense(r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM expenses WHERE id = $1
	`, expenseColumns), expenseID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return expense, nil
}

// ListByEmployee retrieves all expenses of one employee, newest first,
// with optional status, category and date-range filters.
func (r *PostgresExpenseRepository) ListByEmployee(ctx context.Context, filter domain.ExpenseFilter) ([]domain.Expense, error) {
	conditions := []string{"employee_id = $1"}
	args := []interface{}{filter.EmployeeID}
	argCount := 2

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, filter.Status)
		argCount++
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, filter.Category)
		argCount++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argCount))
		args = append(args, filter.StartDate)
		argCount++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argCount))
		args = append(args, filter.EndDate)
		argCount++
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses
		WHERE %s
		ORDER BY created_at DESC
	`, expenseColumns, strings.Join(conditions, " AND "))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	expenses := []domain.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// ListAll retrieves a paginated list of all expenses (admin view),
// newest first, with optional status and category filters.
func (r *PostgresExpenseRepository) ListAll(ctx context.Context, filter domain.ExpenseFilter) (*domain.PaginatedExpenses, error) {
	result := &domain.PaginatedExpenses{
		Data:       []domain.Expense{},
		Pagination: domain.Pagination{},
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}

	conditions := []string{}
	args := []interface{}{}
	argCount := 1

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argCount))
		args = append(args, filter.Status)
		argCount++
	}
	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argCount))
		args = append(args, filter.Category)
		argCount++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var totalItems int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM expenses %s`, whereClause)
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&totalItems); err != nil {
		return nil, fmt.Errorf("failed to count expenses: %w", err)
	}

	result.Pagination.TotalItems = totalItems
	result.Pagination.Limit = filter.Limit
	result.Pagination.CurrentPage = filter.Page
	result.Pagination.TotalPages = int(math.Ceil(float64(totalItems) / float64(filter.Limit)))

	if totalItems == 0 {
		return result, nil
	}

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	query := fmt.Sprintf(`
		SELECT %s
		FROM expenses
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, expenseColumns, whereClause, argCount, argCount+1)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		result.Data = append(result.Data, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return result, nil
}

// UpdateExpense updates the editable fields of an existing expense
func (r *PostgresExpenseRepository) UpdateExpense(ctx context.Context, expense *domain.Expense) (*domain.Expense, error) {
	err := r.db.QueryRow(ctx, `
		UPDATE expenses
		SET description = $1, category = $2, amount = $3, date = $4, paid_by = $5, remarks = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at
	`, expense.Description, expense.Category, expense.Amount, expense.Date,
		expense.PaidBy, expense.Remarks, expense.ID,
	).Scan(&expense.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update expense: %w", err)
	}
	return expense, nil
}

// UpdateStatus changes an expense's status and returns the updated row
func (r *PostgresExpenseRepository) UpdateStatus(ctx context.Context, expenseID string, status domain.ExpenseStatus) (*domain.Expense, error) {
	expense, err := scanExpense(r.db.QueryRow(ctx, fmt.Sprintf(`
		UPDATE expenses
		SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING %s
	`, expenseColumns), status, expenseID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update expense status: %w", err)
	}
	return expense, nil
}

// DeleteExpense removes an expense from the database
func (r *PostgresExpenseRepository) DeleteExpense(ctx context.Context, expenseID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseStatus represents the lifecycle state of an expense
type ExpenseStatus string

const (
	StatusDraft     ExpenseStatus = "Draft"
	StatusSubmitted ExpenseStatus = "Submitted"
)

// IsValid reports whether the status is one of the known values
func (s ExpenseStatus) IsValid() bool {
	return s == StatusDraft || s == StatusSubmitted
}

// PaymentMethod represents how an expense was paid
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "Cash"
	PaymentCreditCard   PaymentMethod = "Credit Card"
	PaymentDebitCard    PaymentMethod = "Debit Card"
	PaymentBankTransfer PaymentMethod = "Bank Transfer"
)

// IsValid reports whether the payment method is one of the known values
func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentBankTransfer:
		return true
	}
	return false
}

// Category represents an expense category
type Category string

const (
	CategoryMeals     Category = "Meals"
	CategoryTravel    Category = "Travel"
	CategoryOffice    Category = "Office"
	CategoryUtilities Category = "Utilities"
	CategoryOther     Category = "Other"
)

// IsValid reports whether the category is one of the known values.
// The empty category is allowed on drafts.
func (c Category) IsValid() bool {
	switch c {
	case CategoryMeals, CategoryTravel, CategoryOffice, CategoryUtilities, CategoryOther, "":
		return true
	}
	return false
}

// Expense represents a single expense record
type Expense struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employeeId"`
	Description string          `json:"description"`
	Category    Category        `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	PaidBy      PaymentMethod   `json:"paidBy"`
	Remarks     string          `json:"remarks"`
	Status      ExpenseStatus   `json:"status"`
	ReceiptURL  string          `json:"receiptUrl"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// IsEditable reports whether the expense can still be modified.
// Submitted expenses are frozen.
func (e *Expense) IsEditable() bool {
	return e.Status == StatusDraft
}

// ExpenseFilter represents filters for querying expenses
type ExpenseFilter struct {
	EmployeeID string
	Status     ExpenseStatus
	Category   Category
	StartDate  *time.Time
	EndDate    *time.Time
	Page       int
	Limit      int
}

// ExpenseSummary aggregates counts and totals over a set of expenses
type ExpenseSummary struct {
	Total       int             `json:"total"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Drafted     int             `json:"drafted"`
	Submitted   int             `json:"submitted"`
}

// Pagination represents pagination metadata
type Pagination struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	Limit       int `json:"limit"`
}

// PaginatedExpenses represents a paginated list of expenses
type PaginatedExpenses struct {
	Data       []Expense  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

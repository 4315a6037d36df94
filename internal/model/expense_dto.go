package model

// ExpenseRequest represents the request body for creating or updating
// an expense
type ExpenseRequest struct {
	EmployeeID  string `json:"employeeId"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	PaidBy      string `json:"paidBy"`
	Remarks     string `json:"remarks"`
	Status      string `json:"status"`
	ReceiptURL  string `json:"receiptUrl"`
}

// ExpenseStatusRequest represents the request body for a status change
type ExpenseStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ExpenseResponse represents a single expense in API responses
type ExpenseResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employeeId"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	PaidBy      string `json:"paidBy"`
	Remarks     string `json:"remarks,omitempty"`
	Status      string `json:"status"`
	ReceiptURL  string `json:"receiptUrl,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ExpenseSummaryResponse aggregates counts and totals over an
// employee's expenses
type ExpenseSummaryResponse struct {
	Total       int    `json:"total"`
	TotalAmount string `json:"totalAmount"`
	Drafted     int    `json:"drafted"`
	Submitted   int    `json:"submitted"`
}

// ExpensesListResponse represents an employee's expense list with its
// summary
type ExpensesListResponse struct {
	Data    []ExpenseResponse      `json:"data"`
	Summary ExpenseSummaryResponse `json:"summary"`
}

// AdminExpensesListResponse represents a paginated list of all expenses
type AdminExpensesListResponse struct {
	Data       []ExpenseResponse  `json:"data"`
	Pagination PaginationResponse `json:"pagination"`
}

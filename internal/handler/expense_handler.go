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

// ExpenseHandler handles HTTP requests for expense operations
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// CreateExpense handles the POST /expenses endpoint
// @Summary Create a new expense
// @Description Create a new expense record for the authenticated employee
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param expense body model.ExpenseRequest true "Expense data"
// @Success 201 {object} model.ExpenseResponse "Expense created"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	var req model.ExpenseRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	expense, details := expenseFromRequest(&req)
	expense.EmployeeID = userID.(string)
	if validationErrors := service.ValidateExpense(expense); len(validationErrors) > 0 {
		details = append(details, buildValidationErrors(validationErrors)...)
	}
	if len(details) > 0 {
		respondBadRequest(c, ErrInvalidInput, details...)
		return
	}

	created, err := h.expenseService.CreateExpense(c.Request.Context(), expense)
	if err != nil {
		logError(c, "failed_to_create_expense", err, map[string]interface{}{
			"employee_id": expense.EmployeeID,
		})
		respondInternalServerError(c, "Failed to create expense")
		return
	}

	respondCreated(c, formatExpenseResponse(created))
}

// GetExpenses handles the GET /expenses endpoint
// @Summary List the caller's expenses
// @Description Get the authenticated employee's expenses with optional filters and a summary
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status query string false "Status filter (Draft or Submitted)"
// @Param category query string false "Category filter"
// @Param startDate query string false "Start date filter (YYYY-MM-DD)"
// @Param endDate query string false "End date filter (YYYY-MM-DD)"
// @Success 200 {object} model.ExpensesListResponse "Expenses with summary"
// @Failure 400 {object} model.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		respondUnauthorized(c, "User not authenticated")
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, newErrorDetail("query", err.Error()))
		return
	}
	filter.EmployeeID = userID.(string)

	expenses, summary, err := h.expenseService.ListByEmployee(c.Request.Context(), filter)
	if err != nil {
		respondInternalServerError(c, "Failed to retrieve expenses")
		return
	}

	respondOK(c, model.ExpensesListResponse{
		Data: formatExpensesResponse(expenses),
		Summary: model.ExpenseSummaryResponse{
			Total:       summary.Total,
			TotalAmount: summary.TotalAmount.StringFixed(2),
			Drafted:     summary.Drafted,
			Submitted:   summary.Submitted,
		},
	})
}

// GetAllExpenses handles the GET /admin/expenses endpoint
// @Summary List all expenses (admin)
// @Description Get a paginated list of every employee's expenses
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} model.AdminExpensesListResponse "Paginated expenses"
// @Failure 400 {object} model.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/admin/expenses [get]
func (h *ExpenseHandler) GetAllExpenses(c *gin.Context) {
	page, err := getQueryInt(c, "page", 1)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, newErrorDetail("page", err.Error()))
		return
	}
	limit, err := getQueryInt(c, "limit", 10)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, newErrorDetail("limit", err.Error()))
		return
	}
	if err := validatePagination(page, limit); err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, newErrorDetail("pagination", err.Error()))
		return
	}

	filter := domain.ExpenseFilter{Page: page, Limit: limit}
	paginated, err := h.expenseService.ListAll(c.Request.Context(), filter)
	if err != nil {
		respondInternalServerError(c, "Failed to retrieve expenses")
		return
	}

	respondOK(c, model.AdminExpensesListResponse{
		Data: formatExpensesResponse(paginated.Data),
		Pagination: model.PaginationResponse{
			TotalItems:  paginated.Pagination.TotalItems,
			TotalPages:  paginated.Pagination.TotalPages,
			CurrentPage: paginated.Pagination.CurrentPage,
			Limit:       paginated.Pagination.Limit,
		},
	})
}

// GetExpenseByID handles the GET /expenses/{expenseId} endpoint
// @Summary Get an expense by ID
// @Description Retrieve a specific expense by its ID
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param expenseId path string true "Expense ID"
// @Success 200 {object} model.ExpenseResponse "Expense details"
// @Failure 404 {object} model.ErrorResponse "Expense not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/expenses/{expenseId} [get]
func (h *ExpenseHandler) GetExpenseByID(c *gin.Context) {
	expenseID, err := getPathParam(c, "expenseId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	expense, err := h.expenseService.GetExpenseByID(c.Request.Context(), expenseID)
	if err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			respondNotFound(c, "Expense not found")
		} else {
			respondInternalServerError(c, "Failed to retrieve expense")
		}
		return
	}

	respondOK(c, formatExpenseResponse(expense))
}

// UpdateExpense handles the PUT /expenses/{expenseId} endpoint
// @Summary Update an expense
// @Description Update a draft expense. Submitted expenses cannot be edited.
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param expenseId path string true "Expense ID"
// @Param expense body model.ExpenseRequest true "Updated expense data"
// @Success 200 {object} model.ExpenseResponse "Expense updated"
// @Failure 400 {object} model.ErrorResponse "Invalid input"
// @Failure 404 {object} model.ErrorResponse "Expense not found"
// @Failure 409 {object} model.ErrorResponse "Expense already submitted"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/expenses/{expenseId} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	expenseID, err := getPathParam(c, "expenseId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var req model.ExpenseRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	expense, details := expenseFromRequest(&req)
	expense.ID = expenseID
	if validationErrors := service.ValidateExpense(expense); len(validationErrors) > 0 {
		details = append(details, buildValidationErrors(validationErrors)...)
	}
	if len(details) > 0 {
		respondBadRequest(c, ErrInvalidInput, details...)
		return
	}

	updated, err := h.expenseService.UpdateExpense(c.Request.Context(), expense)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpenseNotFound):
			respondNotFound(c, "Expense not found")
		case errors.Is(err, service.ErrExpenseSubmitted):
			respondConflict(c, "Submitted expenses cannot be edited")
		default:
			respondInternalServerError(c, "Failed to update expense")
		}
		return
	}

	respondOK(c, formatExpenseResponse(updated))
}

// UpdateExpenseStatus handles the PATCH /expenses/{expenseId}/status endpoint
// @Summary Change an expense status
// @Description Move an expense between Draft and Submitted
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param expenseId path string true "Expense ID"
// @Param status body model.ExpenseStatusRequest true "New status"
// @Success 200 {object} model.ExpenseResponse "Expense updated"
// @Failure 400 {object} model.ErrorResponse "Invalid status"
// @Failure 404 {object} model.ErrorResponse "Expense not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/expenses/{expenseId}/status [patch]
func (h *ExpenseHandler) UpdateExpenseStatus(c *gin.Context) {
	expenseID, err := getPathParam(c, "expenseId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	var req model.ExpenseStatusRequest
	if err := bindJSON(c, &req); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	status := domain.ExpenseStatus(req.Status)
	if !status.IsValid() {
		respondBadRequest(c, ErrInvalidInput,
			newErrorDetail("status", "Status must be Draft or Submitted"))
		return
	}

	updated, err := h.expenseService.UpdateStatus(c.Request.Context(), expenseID, status)
	if err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			respondNotFound(c, "Expense not found")
		} else {
			respondInternalServerError(c, "Failed to update expense status")
		}
		return
	}

	respondOK(c, formatExpenseResponse(updated))
}

// DeleteExpense handles the DELETE /expenses/{expenseId} endpoint
// @Summary Delete an expense
// @Description Delete an expense and its stored receipt file
// @Tags expenses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param expenseId path string true "Expense ID"
// @Success 204 "Expense deleted"
// @Failure 404 {object} model.ErrorResponse "Expense not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /v1/expenses/{expenseId} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	expenseID, err := getPathParam(c, "expenseId")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), expenseID); err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			respondNotFound(c, "Expense not found")
		} else {
			respondInternalServerError(c, "Failed to delete expense")
		}
		return
	}

	respondNoContent(c)
}

// expenseFromRequest converts a request body into a domain expense,
// collecting field-level conversion problems.
func expenseFromRequest(req *model.ExpenseRequest) (*domain.Expense, []model.ErrorDetail) {
	var details []model.ErrorDetail

	expense := &domain.Expense{
		EmployeeID:  req.EmployeeID,
		Description: req.Description,
		Category:    domain.Category(req.Category),
		PaidBy:      domain.PaymentMethod(req.PaidBy),
		Remarks:     req.Remarks,
		Status:      domain.ExpenseStatus(req.Status),
		ReceiptURL:  req.ReceiptURL,
	}

	if req.Amount != "" {
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			details = append(details, newErrorDetail("amount", "Amount must be a number"))
		} else {
			expense.Amount = amount
		}
	}

	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			details = append(details, newErrorDetail("date", err.Error()))
		} else {
			expense.Date = date
		}
	}

	return expense, details
}

// parseExpenseFilter extracts filtering parameters from request
func parseExpenseFilter(c *gin.Context) (domain.ExpenseFilter, error) {
	filter := domain.ExpenseFilter{}

	if status := getQueryString(c, "status"); status != "" {
		s := domain.ExpenseStatus(status)
		if !s.IsValid() {
			return filter, errors.New("status must be Draft or Submitted")
		}
		filter.Status = s
	}

	if category := getQueryString(c, "category"); category != "" {
		cat := domain.Category(category)
		if !cat.IsValid() {
			return filter, errors.New("invalid category")
		}
		filter.Category = cat
	}

	startDate, err := parseDate(getQueryString(c, "startDate"))
	if err != nil {
		return filter, err
	}
	if !startDate.IsZero() {
		filter.StartDate = &startDate
	}

	endDate, err := parseDate(getQueryString(c, "endDate"))
	if err != nil {
		return filter, err
	}
	if !endDate.IsZero() {
		filter.EndDate = &endDate
	}

	return filter, nil
}

// formatExpenseResponse formats an expense for response
func formatExpenseResponse(expense *domain.Expense) model.ExpenseResponse {
	return model.ExpenseResponse{
		ID:          expense.ID,
		EmployeeID:  expense.EmployeeID,
		Description: expense.Description,
		Category:    string(expense.Category),
		Amount:      expense.Amount.StringFixed(2),
		Date:        expense.Date.Format("2006-01-02"),
		PaidBy:      string(expense.PaidBy),
		Remarks:     expense.Remarks,
		Status:      string(expense.Status),
		ReceiptURL:  expense.ReceiptURL,
		CreatedAt:   expense.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   expense.UpdatedAt.Format(time.RFC3339),
	}
}

// formatExpensesResponse formats a slice of expenses for response
func formatExpensesResponse(expenses []domain.Expense) []model.ExpenseResponse {
	formatted := make([]model.ExpenseResponse, len(expenses))
	for i := range expenses {
		formatted[i] = formatExpenseResponse(&expenses[i])
	}
	return formatted
}

// RegisterRoutes registers the expense routes
func (h *ExpenseHandler) RegisterRoutes(router *gin.Engine, authMiddleware, adminOnly gin.HandlerFunc) {
	expenses := router.Group("/api/v1/expenses", authMiddleware)
	{
		expenses.POST("", h.CreateExpense)
		expenses.GET("", h.GetExpenses)
		expenses.GET("/:expenseId", h.GetExpenseByID)
		expenses.PUT("/:expenseId", h.UpdateExpense)
		expenses.PATCH("/:expenseId/status", h.UpdateExpenseStatus)
		expenses.DELETE("/:expenseId", h.DeleteExpense)
	}

	admin := router.Group("/api/v1/admin", authMiddleware, adminOnly)
	{
		admin.GET("/expenses", h.GetAllExpenses)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/realtrackapp/BackOffice-Backend/internal/api/request"
	"github.com/realtrackapp/BackOffice-Backend/internal/apperrors"
	"github.com/realtrackapp/BackOffice-Backend/internal/model"
	"github.com/realtrackapp/BackOffice-Backend/internal/service"
	"github.com/realtrackapp/BackOffice-Backend/internal/validation"
)

// ExpenseHandler handles expense-related HTTP requests
type ExpenseHandler struct {
	expenseService *service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// Expenses lists a user's expenses, optionally restricted to a year.
// Query parameters: user (required UUID), anio (optional year).
func (h *ExpenseHandler) Expenses(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if err := validation.ValidateUUID(userID); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "Valid user UUID is required", err)
		return
	}

	filter := model.ExpenseFilter{UserID: userID}
	if yearStr := r.URL.Query().Get("anio"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			respondErrorMap(w, http.StatusBadRequest, "Invalid year", err)
			return
		}
		filter.Year = year
	}

	expenses, err := h.expenseService.GetExpenses(filter)
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "Failed to retrieve expenses", err)
		return
	}

	respondJSON(w, http.StatusOK, expenses)
}

// MonthlyTotals returns a user's per-month expense totals for a year.
// Query parameters: user (required UUID), anio (required year).
func (h *ExpenseHandler) MonthlyTotals(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user")
	if err := validation.ValidateUUID(userID); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "Valid user UUID is required", err)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("anio"))
	if err != nil {
		respondErrorMap(w, http.StatusBadRequest, "Valid year is required", err)
		return
	}

	totals, err := h.expenseService.GetMonthlyExpenseTotals(userID, year)
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "Failed to compute expense totals", err)
		return
	}

	respondJSON(w, http.StatusOK, totals)
}

// CreateExpense validates and persists a new expense.
func (h *ExpenseHandler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var req request.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := validation.ValidateCreateExpense(req); err != nil {
		respondErrorMap(w, http.StatusBadRequest, "Validation failed", err)
		return
	}

	// Date format was validated above.
	date, _ := time.Parse("2006-01-02", req.Date)

	expense, err := h.expenseService.CreateExpense(model.Expense{
		UserID:          req.UserID,
		Amount:          req.Amount,
		AmountInDollars: req.AmountInDollars,
		Date:            date.UTC(),
		ExpenseType:     req.ExpenseType,
		Description:     req.Description,
		IsRecurring:     req.IsRecurring,
	})
	if err != nil {
		respondErrorMap(w, http.StatusInternalServerError, "Failed to create expense", err)
		return
	}

	respondJSON(w, http.StatusCreated, expense)
}

// DeleteExpense removes an expense by UUID.
func (h *ExpenseHandler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "uuid")

	if err := h.expenseService.DeleteExpense(expenseID); err != nil {
		if errors.Is(err, apperrors.ErrExpenseNotFound) {
			respondErrorMap(w, http.StatusNotFound, "Expense not found", err)
			return
		}
		respondErrorMap(w, http.StatusInternalServerError, "Failed to delete expense", err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}

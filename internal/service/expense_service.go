package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtrackapp/BackOffice-Backend/internal/model"
	"github.com/realtrackapp/BackOffice-Backend/internal/repository"
)

// ExpenseService handles expense records and the expense report rollups.
// Expenses are read-only inputs to the calculation engine; this service
// never touches operation data.
type ExpenseService struct {
	expenseRepo *repository.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService with the provided repository dependency.
func NewExpenseService(expenseRepo *repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// GetExpenses retrieves a user's expenses, optionally restricted to a year.
func (s *ExpenseService) GetExpenses(filter model.ExpenseFilter) ([]model.Expense, error) {
	return s.expenseRepo.GetExpenses(filter)
}

// CreateExpense assigns an ID and creation time, then persists the expense.
func (s *ExpenseService) CreateExpense(e model.Expense) (model.Expense, error) {
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC()

	if err := s.expenseRepo.CreateExpense(e); err != nil {
		return model.Expense{}, err
	}
	return e, nil
}

// DeleteExpense removes an expense by its ID.
func (s *ExpenseService) DeleteExpense(expenseID string) error {
	return s.expenseRepo.DeleteExpense(expenseID)
}

// GetMonthlyExpenseTotals rolls a user's expenses up into one row per month
// of the given year.
//
// A non-recurring expense counts only in its own month. A recurring expense
// counts in every month from its start month through December; a recurring
// expense started in a previous year counts in all twelve months. Expenses
// dated after the requested year are ignored.
func (s *ExpenseService) GetMonthlyExpenseTotals(userID string, year int) ([]model.MonthlyExpenseTotals, error) {
	// Load all years: recurring expenses from earlier years still apply.
	expenses, err := s.expenseRepo.GetExpenses(model.ExpenseFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	months := make([]model.MonthlyExpenseTotals, 12)
	for i := range months {
		months[i] = model.MonthlyExpenseTotals{Year: year, Month: i + 1}
	}

	addTo := func(month int, e model.Expense) {
		months[month-1].Total += e.Amount
		months[month-1].TotalInDollars += e.AmountInDollars
		months[month-1].ExpenseCount++
	}

	for _, e := range expenses {
		switch {
		case !e.IsRecurring:
			if e.Date.Year() == year {
				addTo(int(e.Date.Month()), e)
			}
		case e.Date.Year() < year:
			for month := 1; month <= 12; month++ {
				addTo(month, e)
			}
		case e.Date.Year() == year:
			for month := int(e.Date.Month()); month <= 12; month++ {
				addTo(month, e)
			}
		}
	}

	for i := range months {
		months[i].Total = round(months[i].Total)
		months[i].TotalInDollars = round(months[i].TotalInDollars)
	}

	return months, nil
}

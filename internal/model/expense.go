package model

import "time"

// Expense represents an independent expense record owned by a user.
// Expenses are never mutated by the calculation engine; they are read-only
// inputs to profitability and to the expense reports.
type Expense struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_uid"`
	Amount          float64   `json:"monto"`
	AmountInDollars float64   `json:"dolares"`
	Date            time.Time `json:"fecha"`
	ExpenseType     string    `json:"tipo_gasto"`
	Description     string    `json:"descripcion"`
	IsRecurring     bool      `json:"recurrente"`
	CreatedAt       time.Time `json:"createdAt,omitempty"`
}

// ExpenseFilter for querying expenses
type ExpenseFilter struct {
	UserID string
	Year   int // 0 means all years
}

package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/realtrackapp/BackOffice-Backend/internal/apperrors"
	"github.com/realtrackapp/BackOffice-Backend/internal/model"
)

// ExpenseRepository provides data access methods for the expense table.
type ExpenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository with the provided database connection.
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// GetExpenses retrieves expenses matching the filter, sorted by date ascending.
// A zero Year in the filter returns every year.
func (s *ExpenseRepository) GetExpenses(filter model.ExpenseFilter) ([]model.Expense, error) {
	query := `
		SELECT id, user_id, amount, amount_in_dollars, date, expense_type, description, is_recurring, created_at
		FROM expense
		WHERE user_id = ?
	`
	args := []any{filter.UserID}

	if filter.Year != 0 {
		query += " AND strftime('%Y', date) = ?"
		args = append(args, fmt.Sprintf("%04d", filter.Year))
	}
	query += " ORDER BY date ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense table: %w", err)
	}
	defer rows.Close()

	expenses := []model.Expense{}
	for rows.Next() {
		var e model.Expense
		var dateStr, createdAtStr string

		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Amount,
			&e.AmountInDollars,
			&dateStr,
			&e.ExpenseType,
			&e.Description,
			&e.IsRecurring,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense table results: %w", err)
		}

		if e.Date, err = ParseTime(dateStr); err != nil {
			return nil, fmt.Errorf("failed to parse expense date: %w", err)
		}
		if e.CreatedAt, err = ParseTime(createdAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense table: %w", err)
	}

	return expenses, nil
}

// GetExpenseOnID retrieves a single expense by its ID.
func (s *ExpenseRepository) GetExpenseOnID(expenseID string) (model.Expense, error) {
	query := `
		SELECT id, user_id, amount, amount_in_dollars, date, expense_type, description, is_recurring, created_at
		FROM expense
		WHERE id = ?
	`
	var e model.Expense
	var dateStr, createdAtStr string

	err := s.db.QueryRow(query, expenseID).Scan(
		&e.ID,
		&e.UserID,
		&e.Amount,
		&e.AmountInDollars,
		&dateStr,
		&e.ExpenseType,
		&e.Description,
		&e.IsRecurring,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Expense{}, apperrors.ErrExpenseNotFound
	}
	if err != nil {
		return model.Expense{}, fmt.Errorf("failed to query expense: %w", err)
	}

	if e.Date, err = ParseTime(dateStr); err != nil {
		return model.Expense{}, fmt.Errorf("failed to parse expense date: %w", err)
	}
	if e.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Expense{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return e, nil
}

// CreateExpense inserts a new expense record.
func (s *ExpenseRepository) CreateExpense(e model.Expense) error {
	query := `
		INSERT INTO expense (id, user_id, amount, amount_in_dollars, date, expense_type, description, is_recurring, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		e.ID,
		e.UserID,
		e.Amount,
		e.AmountInDollars,
		e.Date.Format("2006-01-02"),
		e.ExpenseType,
		e.Description,
		e.IsRecurring,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense by its ID.
func (s *ExpenseRepository) DeleteExpense(expenseID string) error {
	result, err := s.db.Exec(`DELETE FROM expense WHERE id = ?`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

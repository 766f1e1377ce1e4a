package validation

import (
	"strings"
	"time"

	"github.com/realtrackapp/BackOffice-Backend/internal/api/request"
)

// ValidateCreateExpense validates an expense creation request.
//
// Required fields:
//   - user_uid: valid UUID of the owning user
//   - fecha: date in YYYY-MM-DD format
//   - tipo_gasto: non-empty expense type
//   - monto, dolares: non-negative amounts
//
// Returns a validation Error with field-specific error messages if validation fails.
func ValidateCreateExpense(req request.CreateExpenseRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.UserID); err != nil {
		errors["user_uid"] = err.Error()
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["fecha"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["fecha"] = err.Error()
	}

	if strings.TrimSpace(req.ExpenseType) == "" {
		errors["tipo_gasto"] = "expense type is required"
	}

	if req.Amount < 0 {
		errors["monto"] = "amount cannot be negative"
	}
	if req.AmountInDollars < 0 {
		errors["dolares"] = "amount cannot be negative"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

package request

// CreateExpenseRequest carries the expense form fields.
type CreateExpenseRequest struct {
	UserID          string  `json:"user_uid"`
	Amount          float64 `json:"monto"`
	AmountInDollars float64 `json:"dolares"`
	Date            string  `json:"fecha"`
	ExpenseType     string  `json:"tipo_gasto"`
	Description     string  `json:"descripcion"`
	IsRecurring     bool    `json:"recurrente"`
}

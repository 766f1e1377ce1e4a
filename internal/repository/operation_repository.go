package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/realtrackapp/BackOffice-Backend/internal/apperrors"
	"github.com/realtrackapp/BackOffice-Backend/internal/model"
)

// operationColumns is the canonical column list shared by every SELECT on
// the operation table, kept in one place so Scan order never drifts.
const operationColumns = `
	id, address, operation_type, status,
	base_value, advisor_fee_percent, broker_fee_percent,
	shared_with_percent, referred_percent,
	buyer_side, seller_side, buyer_side_percent, seller_side_percent,
	primary_advisor_id, primary_advisor_name,
	additional_advisor_id, additional_advisor_percent,
	operation_date, reservation_date, capture_date,
	assigned_expenses, is_exclusive, created_at
`

// OperationRepository provides data access methods for the operation table.
type OperationRepository struct {
	db *sql.DB
}

// NewOperationRepository creates a new OperationRepository with the provided database connection.
func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

// GetOperationsForUsers retrieves all operations executed by any of the given
// users, either as primary or as additional advisor, sorted by creation time.
//
// Status, period, type and text filtering happen in the service layer on the
// loaded set; the repository only scopes by ownership. Returns an empty slice
// when userIDs is empty.
func (s *OperationRepository) GetOperationsForUsers(userIDs []string) ([]model.Operation, error) {
	if len(userIDs) == 0 {
		return []model.Operation{}, nil
	}

	placeholders := make([]string, len(userIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	in := strings.Join(placeholders, ",")

	query := `
		SELECT ` + operationColumns + `
		FROM operation
		WHERE primary_advisor_id IN (` + in + `)
		   OR additional_advisor_id IN (` + in + `)
		ORDER BY created_at ASC
	`

	args := make([]any, 0, 2*len(userIDs))
	for _, id := range userIDs {
		args = append(args, id)
	}
	for _, id := range userIDs {
		args = append(args, id)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query operation table: %w", err)
	}
	defer rows.Close()

	operations := []model.Operation{}
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		operations = append(operations, op)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating operation table: %w", err)
	}

	return operations, nil
}

// GetOperationOnID retrieves a single operation by its ID.
func (s *OperationRepository) GetOperationOnID(operationID string) (model.Operation, error) {
	query := `
		SELECT ` + operationColumns + `
		FROM operation
		WHERE id = ?
	`
	row := s.db.QueryRow(query, operationID)
	op, err := scanOperation(row)
	if err == sql.ErrNoRows {
		return model.Operation{}, apperrors.ErrOperationNotFound
	}
	if err != nil {
		return model.Operation{}, err
	}
	return op, nil
}

// CreateOperation inserts a new operation record.
func (s *OperationRepository) CreateOperation(op model.Operation) error {
	query := `
		INSERT INTO operation (` + operationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		op.ID,
		op.Address,
		op.OperationType,
		string(op.Status),
		op.BaseValue,
		op.AdvisorFeePercent,
		op.BrokerFeePercent,
		floatArg(op.SharedWithPercent),
		floatArg(op.ReferredPercent),
		op.BuyerSide,
		op.SellerSide,
		floatArg(op.BuyerSidePercent),
		floatArg(op.SellerSidePercent),
		op.PrimaryAdvisorID,
		op.PrimaryAdvisorName,
		stringArg(op.AdditionalAdvisorID),
		floatArg(op.AdditionalAdvisorPercent),
		dateArg(op.OperationDate),
		dateArg(op.ReservationDate),
		dateArg(op.CaptureDate),
		floatArg(op.AssignedExpenses),
		op.IsExclusive,
		op.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert operation: %w", err)
	}
	return nil
}

// UpdateOperation replaces the stored record for the operation's ID.
func (s *OperationRepository) UpdateOperation(op model.Operation) error {
	query := `
		UPDATE operation SET
			address = ?, operation_type = ?, status = ?,
			base_value = ?, advisor_fee_percent = ?, broker_fee_percent = ?,
			shared_with_percent = ?, referred_percent = ?,
			buyer_side = ?, seller_side = ?, buyer_side_percent = ?, seller_side_percent = ?,
			primary_advisor_id = ?, primary_advisor_name = ?,
			additional_advisor_id = ?, additional_advisor_percent = ?,
			operation_date = ?, reservation_date = ?, capture_date = ?,
			assigned_expenses = ?, is_exclusive = ?
		WHERE id = ?
	`
	result, err := s.db.Exec(query,
		op.Address,
		op.OperationType,
		string(op.Status),
		op.BaseValue,
		op.AdvisorFeePercent,
		op.BrokerFeePercent,
		floatArg(op.SharedWithPercent),
		floatArg(op.ReferredPercent),
		op.BuyerSide,
		op.SellerSide,
		floatArg(op.BuyerSidePercent),
		floatArg(op.SellerSidePercent),
		op.PrimaryAdvisorID,
		op.PrimaryAdvisorName,
		stringArg(op.AdditionalAdvisorID),
		floatArg(op.AdditionalAdvisorPercent),
		dateArg(op.OperationDate),
		dateArg(op.ReservationDate),
		dateArg(op.CaptureDate),
		floatArg(op.AssignedExpenses),
		op.IsExclusive,
		op.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update operation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrOperationNotFound
	}
	return nil
}

// DeleteOperation removes an operation by its ID.
func (s *OperationRepository) DeleteOperation(operationID string) error {
	result, err := s.db.Exec(`DELETE FROM operation WHERE id = ?`, operationID)
	if err != nil {
		return fmt.Errorf("failed to delete operation: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrOperationNotFound
	}
	return nil
}

// scanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type scanner interface {
	Scan(dest ...any) error
}

func scanOperation(row scanner) (model.Operation, error) {
	var op model.Operation
	var status, createdAtStr string
	var sharedWith, referred, buyerPct, sellerPct, additionalPct, expenses sql.NullFloat64
	var additionalID sql.NullString
	var operationDate, reservationDate, captureDate sql.NullString

	err := row.Scan(
		&op.ID,
		&op.Address,
		&op.OperationType,
		&status,
		&op.BaseValue,
		&op.AdvisorFeePercent,
		&op.BrokerFeePercent,
		&sharedWith,
		&referred,
		&op.BuyerSide,
		&op.SellerSide,
		&buyerPct,
		&sellerPct,
		&op.PrimaryAdvisorID,
		&op.PrimaryAdvisorName,
		&additionalID,
		&additionalPct,
		&operationDate,
		&reservationDate,
		&captureDate,
		&expenses,
		&op.IsExclusive,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Operation{}, err
	}
	if err != nil {
		return model.Operation{}, fmt.Errorf("failed to scan operation table results: %w", err)
	}

	op.Status = model.OperationStatus(status)
	op.SharedWithPercent = nullableFloat(sharedWith)
	op.ReferredPercent = nullableFloat(referred)
	op.BuyerSidePercent = nullableFloat(buyerPct)
	op.SellerSidePercent = nullableFloat(sellerPct)
	op.AdditionalAdvisorID = nullableString(additionalID)
	op.AdditionalAdvisorPercent = nullableFloat(additionalPct)
	op.AssignedExpenses = nullableFloat(expenses)

	if op.OperationDate, err = nullableDate(operationDate); err != nil {
		return model.Operation{}, fmt.Errorf("failed to parse operation_date: %w", err)
	}
	if op.ReservationDate, err = nullableDate(reservationDate); err != nil {
		return model.Operation{}, fmt.Errorf("failed to parse reservation_date: %w", err)
	}
	if op.CaptureDate, err = nullableDate(captureDate); err != nil {
		return model.Operation{}, fmt.Errorf("failed to parse capture_date: %w", err)
	}
	if op.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.Operation{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return op, nil
}

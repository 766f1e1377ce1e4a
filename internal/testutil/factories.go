package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/realtrackapp/BackOffice-Backend/internal/model"
)

// MakeID returns a fresh UUID string for test entities.
func MakeID() string {
	return uuid.New().String()
}

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	advisor := testutil.NewUser().Build(t, db)
//	leader := testutil.NewUser().AsTeamLeader().Build(t, db)
//	member := testutil.NewUser().OnTeam(leader.ID).Build(t, db)
type UserBuilder struct {
	ID                       string
	Name                     string
	Role                     model.Role
	FranchiseOrBrokerPercent *float64
	Currency                 string
	TeamLeaderID             *string
}

// NewUser creates a UserBuilder with advisor defaults.
func NewUser() *UserBuilder {
	return &UserBuilder{
		ID:       MakeID(),
		Name:     "Test Advisor",
		Role:     model.RoleAdvisor,
		Currency: "USD",
	}
}

// WithName sets a custom name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.Name = name
	return b
}

// AsTeamLeader sets the team leader broker role.
func (b *UserBuilder) AsTeamLeader() *UserBuilder {
	b.Role = model.RoleTeamLeaderBroker
	return b
}

// OnTeam links the user to a team leader.
func (b *UserBuilder) OnTeam(leaderID string) *UserBuilder {
	b.TeamLeaderID = &leaderID
	return b
}

// WithFranchisePercent sets the franchise/broker override percentage.
func (b *UserBuilder) WithFranchisePercent(percent float64) *UserBuilder {
	b.FranchiseOrBrokerPercent = &percent
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	query := `
		INSERT INTO app_user (id, name, role, franchise_or_broker_percent, currency, team_leader_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	var franchise, leader any
	if b.FranchiseOrBrokerPercent != nil {
		franchise = *b.FranchiseOrBrokerPercent
	}
	if b.TeamLeaderID != nil {
		leader = *b.TeamLeaderID
	}

	_, err := db.Exec(query, b.ID, b.Name, string(b.Role), franchise, b.Currency, leader)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:                       b.ID,
		Name:                     b.Name,
		Role:                     b.Role,
		FranchiseOrBrokerPercent: b.FranchiseOrBrokerPercent,
		Currency:                 b.Currency,
		TeamLeaderID:             b.TeamLeaderID,
	}
}

// OperationBuilder provides a fluent interface for creating test operations.
//
// Example usage:
//
//	op := testutil.NewOperation(advisor.ID).
//	    WithBaseValue(100000).
//	    WithFees(3, 6).
//	    Closed().
//	    Build(t, db)
type OperationBuilder struct {
	op model.Operation
}

// NewOperation creates an OperationBuilder with sensible defaults: an open
// sale by the given primary advisor, dated today.
func NewOperation(primaryAdvisorID string) *OperationBuilder {
	now := time.Now().UTC()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return &OperationBuilder{
		op: model.Operation{
			ID:                 MakeID(),
			Address:            "Av. Siempre Viva 742",
			OperationType:      "Venta",
			Status:             model.StatusInProgress,
			BaseValue:          100000,
			AdvisorFeePercent:  3,
			BrokerFeePercent:   6,
			PrimaryAdvisorID:   primaryAdvisorID,
			PrimaryAdvisorName: "Test Advisor",
			OperationDate:      &date,
			CreatedAt:          now,
		},
	}
}

// WithAddress sets the address.
func (b *OperationBuilder) WithAddress(address string) *OperationBuilder {
	b.op.Address = address
	return b
}

// WithAdvisorName sets the executing advisor's display name.
func (b *OperationBuilder) WithAdvisorName(name string) *OperationBuilder {
	b.op.PrimaryAdvisorName = name
	return b
}

// WithType sets the operation type.
func (b *OperationBuilder) WithType(operationType string) *OperationBuilder {
	b.op.OperationType = operationType
	return b
}

// WithStatus sets the status.
func (b *OperationBuilder) WithStatus(status model.OperationStatus) *OperationBuilder {
	b.op.Status = status
	return b
}

// Closed marks the operation as closed.
func (b *OperationBuilder) Closed() *OperationBuilder {
	b.op.Status = model.StatusClosed
	return b
}

// Fallen marks the operation as fallen through.
func (b *OperationBuilder) Fallen() *OperationBuilder {
	b.op.Status = model.StatusFallen
	return b
}

// WithBaseValue sets the reservation value.
func (b *OperationBuilder) WithBaseValue(value float64) *OperationBuilder {
	b.op.BaseValue = value
	return b
}

// WithFees sets the advisor and broker fee percentages.
func (b *OperationBuilder) WithFees(advisorPercent, brokerPercent float64) *OperationBuilder {
	b.op.AdvisorFeePercent = advisorPercent
	b.op.BrokerFeePercent = brokerPercent
	return b
}

// SharedWith sets the compartido percentage.
func (b *OperationBuilder) SharedWith(percent float64) *OperationBuilder {
	b.op.SharedWithPercent = &percent
	return b
}

// ReferredBy sets the referido percentage.
func (b *OperationBuilder) ReferredBy(percent float64) *OperationBuilder {
	b.op.ReferredPercent = &percent
	return b
}

// WithBuyerSide marks the buyer punta with its percentage (0 keeps the
// percentage unset).
func (b *OperationBuilder) WithBuyerSide(percent float64) *OperationBuilder {
	b.op.BuyerSide = true
	if percent != 0 {
		b.op.BuyerSidePercent = &percent
	}
	return b
}

// WithSellerSide marks the seller punta with its percentage.
func (b *OperationBuilder) WithSellerSide(percent float64) *OperationBuilder {
	b.op.SellerSide = true
	if percent != 0 {
		b.op.SellerSidePercent = &percent
	}
	return b
}

// WithAdditionalAdvisor sets the additional advisor and their percentage.
func (b *OperationBuilder) WithAdditionalAdvisor(advisorID string, percent float64) *OperationBuilder {
	b.op.AdditionalAdvisorID = &advisorID
	b.op.AdditionalAdvisorPercent = &percent
	return b
}

// OnDate sets the operation date.
func (b *OperationBuilder) OnDate(date time.Time) *OperationBuilder {
	d := date.UTC()
	b.op.OperationDate = &d
	return b
}

// WithoutDates clears all three dates.
func (b *OperationBuilder) WithoutDates() *OperationBuilder {
	b.op.OperationDate = nil
	b.op.ReservationDate = nil
	b.op.CaptureDate = nil
	return b
}

// ReservedOn clears the operation date and sets the reservation date,
// exercising the date fallback chain.
func (b *OperationBuilder) ReservedOn(date time.Time) *OperationBuilder {
	d := date.UTC()
	b.op.OperationDate = nil
	b.op.ReservationDate = &d
	return b
}

// WithExpenses sets the operation-assigned expenses.
func (b *OperationBuilder) WithExpenses(amount float64) *OperationBuilder {
	b.op.AssignedExpenses = &amount
	return b
}

// Exclusive marks the listing as exclusive.
func (b *OperationBuilder) Exclusive() *OperationBuilder {
	b.op.IsExclusive = true
	return b
}

// Value returns the built operation without persisting it, for pure-engine tests.
func (b *OperationBuilder) Value() model.Operation {
	return b.op
}

// Build creates the operation in the database and returns it.
func (b *OperationBuilder) Build(t *testing.T, db *sql.DB) model.Operation {
	t.Helper()

	query := `
		INSERT INTO operation (
			id, address, operation_type, status,
			base_value, advisor_fee_percent, broker_fee_percent,
			shared_with_percent, referred_percent,
			buyer_side, seller_side, buyer_side_percent, seller_side_percent,
			primary_advisor_id, primary_advisor_name,
			additional_advisor_id, additional_advisor_percent,
			operation_date, reservation_date, capture_date,
			assigned_expenses, is_exclusive, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	op := b.op
	_, err := db.Exec(query,
		op.ID, op.Address, op.OperationType, string(op.Status),
		op.BaseValue, op.AdvisorFeePercent, op.BrokerFeePercent,
		optFloat(op.SharedWithPercent), optFloat(op.ReferredPercent),
		op.BuyerSide, op.SellerSide, optFloat(op.BuyerSidePercent), optFloat(op.SellerSidePercent),
		op.PrimaryAdvisorID, op.PrimaryAdvisorName,
		optString(op.AdditionalAdvisorID), optFloat(op.AdditionalAdvisorPercent),
		optDate(op.OperationDate), optDate(op.ReservationDate), optDate(op.CaptureDate),
		optFloat(op.AssignedExpenses), op.IsExclusive, op.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test operation: %v", err)
	}

	return op
}

// ExpenseBuilder provides a fluent interface for creating test expenses.
type ExpenseBuilder struct {
	e model.Expense
}

// NewExpense creates an ExpenseBuilder with sensible defaults.
func NewExpense(userID string) *ExpenseBuilder {
	return &ExpenseBuilder{
		e: model.Expense{
			ID:              MakeID(),
			UserID:          userID,
			Amount:          1000,
			AmountInDollars: 10,
			Date:            time.Now().UTC(),
			ExpenseType:     "Publicidad",
			Description:     "Test expense",
			CreatedAt:       time.Now().UTC(),
		},
	}
}

// WithAmounts sets the local and dollar amounts.
func (b *ExpenseBuilder) WithAmounts(amount, dollars float64) *ExpenseBuilder {
	b.e.Amount = amount
	b.e.AmountInDollars = dollars
	return b
}

// OnDate sets the expense date.
func (b *ExpenseBuilder) OnDate(date time.Time) *ExpenseBuilder {
	b.e.Date = date.UTC()
	return b
}

// Recurring marks the expense as recurring.
func (b *ExpenseBuilder) Recurring() *ExpenseBuilder {
	b.e.IsRecurring = true
	return b
}

// WithType sets the expense type.
func (b *ExpenseBuilder) WithType(expenseType string) *ExpenseBuilder {
	b.e.ExpenseType = expenseType
	return b
}

// Build creates the expense in the database and returns it.
func (b *ExpenseBuilder) Build(t *testing.T, db *sql.DB) model.Expense {
	t.Helper()

	query := `
		INSERT INTO expense (id, user_id, amount, amount_in_dollars, date, expense_type, description, is_recurring, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	e := b.e
	_, err := db.Exec(query,
		e.ID, e.UserID, e.Amount, e.AmountInDollars,
		e.Date.Format("2006-01-02"), e.ExpenseType, e.Description, e.IsRecurring,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		t.Fatalf("Failed to create test expense: %v", err)
	}

	return e
}

func optFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func optString(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func optDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

package repository

import (
	"database/sql"
	"fmt"

	"github.com/realtrackapp/BackOffice-Backend/internal/apperrors"
	"github.com/realtrackapp/BackOffice-Backend/internal/model"
)

// UserRepository provides data access methods for the app_user table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetUserOnID retrieves a single user by their ID.
func (s *UserRepository) GetUserOnID(userID string) (model.User, error) {
	query := `
		SELECT id, name, role, franchise_or_broker_percent, currency, team_leader_id
		FROM app_user
		WHERE id = ?
	`
	var u model.User
	var franchisePercent sql.NullFloat64
	var teamLeaderID sql.NullString
	var role string

	err := s.db.QueryRow(query, userID).Scan(
		&u.ID,
		&u.Name,
		&role,
		&franchisePercent,
		&u.Currency,
		&teamLeaderID,
	)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	u.Role = model.Role(role)
	u.FranchiseOrBrokerPercent = nullableFloat(franchisePercent)
	u.TeamLeaderID = nullableString(teamLeaderID)

	return u, nil
}

// GetUsers retrieves users matching the filter, sorted by name.
// An empty filter returns every user.
func (s *UserRepository) GetUsers(filter model.UserFilter) ([]model.User, error) {
	query := `
		SELECT id, name, role, franchise_or_broker_percent, currency, team_leader_id
		FROM app_user
		WHERE 1=1
	`
	var args []any

	if filter.TeamLeaderID != "" {
		query += " AND team_leader_id = ?"
		args = append(args, filter.TeamLeaderID)
	}
	if filter.Role != "" {
		query += " AND role = ?"
		args = append(args, string(filter.Role))
	}
	query += " ORDER BY name ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query app_user table: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		var franchisePercent sql.NullFloat64
		var teamLeaderID sql.NullString
		var role string

		err := rows.Scan(
			&u.ID,
			&u.Name,
			&role,
			&franchisePercent,
			&u.Currency,
			&teamLeaderID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan app_user table results: %w", err)
		}

		u.Role = model.Role(role)
		u.FranchiseOrBrokerPercent = nullableFloat(franchisePercent)
		u.TeamLeaderID = nullableString(teamLeaderID)

		users = append(users, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating app_user table: %w", err)
	}

	return users, nil
}

// CreateUser inserts a new user record.
func (s *UserRepository) CreateUser(u model.User) error {
	query := `
		INSERT INTO app_user (id, name, role, franchise_or_broker_percent, currency, team_leader_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.Exec(query,
		u.ID,
		u.Name,
		string(u.Role),
		floatArg(u.FranchiseOrBrokerPercent),
		u.Currency,
		stringArg(u.TeamLeaderID),
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

package service

import (
	"database/sql"
	"fmt"

	"github.com/realtrackapp/BackOffice-Backend/internal/apperrors"
	"github.com/realtrackapp/BackOffice-Backend/internal/database"
	"github.com/realtrackapp/BackOffice-Backend/internal/security"
	"github.com/realtrackapp/BackOffice-Backend/internal/version"
)

// reportAPIKeySetting is the system_setting key under which the developer
// report API key is stored, fernet-encrypted.
const reportAPIKeySetting = "report_api_key"

// SystemService handles system-level operations: health, version and the
// encrypted report API key used by the developer endpoints.
type SystemService struct {
	db        *sql.DB
	encryptor *security.Encryptor
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, encryptor *security.Encryptor) *SystemService {
	return &SystemService{
		db:        db,
		encryptor: encryptor,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion returns the application version string.
func (s *SystemService) CheckVersion() string {
	return version.Version
}

// SetReportAPIKey encrypts and stores the developer report API key.
func (s *SystemService) SetReportAPIKey(key string) error {
	token, err := s.encryptor.Encrypt(key)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO system_setting (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`
	if _, err := s.db.Exec(query, reportAPIKeySetting, token); err != nil {
		return fmt.Errorf("failed to store setting: %w", err)
	}
	return nil
}

// GetReportAPIKey retrieves and decrypts the stored report API key.
// Returns ErrSettingNotFound when no key has been configured.
func (s *SystemService) GetReportAPIKey() (string, error) {
	var token string
	err := s.db.QueryRow(`SELECT value FROM system_setting WHERE key = ?`, reportAPIKeySetting).Scan(&token)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting: %w", err)
	}

	return s.encryptor.Decrypt(token)
}

// VerifyReportAPIKey reports whether the candidate matches the stored key.
// An unset or undecryptable key never matches.
func (s *SystemService) VerifyReportAPIKey(candidate string) bool {
	if candidate == "" {
		return false
	}
	stored, err := s.GetReportAPIKey()
	if err != nil {
		return false
	}
	return stored == candidate
}

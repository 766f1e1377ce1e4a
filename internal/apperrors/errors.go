package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrOperationNotFound indicates that an operation with the given ID does not exist.
	ErrOperationNotFound = errors.New("operation not found")

	// ErrExpenseNotFound indicates that an expense with the given ID does not exist.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrUserNotFound indicates that a user with the given ID does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrReportNotFound indicates that no materialized report exists for the
	// requested user/period combination.
	ErrReportNotFound = errors.New("materialized report not found")

	// ErrSettingNotFound indicates that a system setting key has not been stored.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrPercentOutOfRange indicates a percentage outside the [0,100] range.
	ErrPercentOutOfRange = errors.New("percentage must be between 0 and 100")

	// ErrInvalidStatus indicates an unknown operation status value.
	ErrInvalidStatus = errors.New("invalid operation status")

	// ErrInvalidRole indicates an unknown user role value.
	ErrInvalidRole = errors.New("invalid user role")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Security errors represent failures in the secret handling layer.
var (
	// ErrInvalidEncryptionKey indicates that the configured fernet key cannot be decoded.
	ErrInvalidEncryptionKey = errors.New("invalid encryption key")

	// ErrDecryptionFailed indicates that a stored secret could not be verified and decrypted.
	ErrDecryptionFailed = errors.New("decryption failed")
)

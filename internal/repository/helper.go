package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// ParseTime parses a date string in "2006-01-02" or RFC3339 format.
// Date columns store the former; created_at timestamps store the latter.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
	}
	return returnTime.UTC(), nil
}

// nullableFloat converts a scanned NULL-able float column to the model's
// pointer representation (nil = never entered).
func nullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// nullableString converts a scanned NULL-able text column to a pointer.
func nullableString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

// nullableDate parses a scanned NULL-able date column into a *time.Time.
func nullableDate(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := ParseTime(v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// floatArg renders an optional float for use as a query argument.
func floatArg(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// stringArg renders an optional string for use as a query argument.
func stringArg(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// dateArg renders an optional date for use as a query argument.
func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}

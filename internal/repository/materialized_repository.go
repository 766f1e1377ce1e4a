package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/realtrackapp/BackOffice-Backend/internal/model"
)

// MaterializedReportRepository provides data access methods for the
// materialized_monthly_report table, which stores pre-calculated monthly
// report totals per user for fast retrieval.
type MaterializedReportRepository struct {
	db *sql.DB
}

// NewMaterializedReportRepository creates a new MaterializedReportRepository
// with the provided database connection.
func NewMaterializedReportRepository(db *sql.DB) *MaterializedReportRepository {
	return &MaterializedReportRepository{db: db}
}

// UpsertMonthlyReport inserts or replaces the pre-calculated totals for a
// user/year/month combination.
func (s *MaterializedReportRepository) UpsertMonthlyReport(r model.MaterializedMonthlyReport) error {
	query := `
		INSERT INTO materialized_monthly_report (
			id, user_id, year, month,
			operation_count, total_value, total_gross_broker_fee, total_net_fee,
			buyer_side_count, seller_side_count,
			average_buyer_side_percent, average_seller_side_percent,
			exclusivity_percent, calculated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, year, month) DO UPDATE SET
			operation_count = excluded.operation_count,
			total_value = excluded.total_value,
			total_gross_broker_fee = excluded.total_gross_broker_fee,
			total_net_fee = excluded.total_net_fee,
			buyer_side_count = excluded.buyer_side_count,
			seller_side_count = excluded.seller_side_count,
			average_buyer_side_percent = excluded.average_buyer_side_percent,
			average_seller_side_percent = excluded.average_seller_side_percent,
			exclusivity_percent = excluded.exclusivity_percent,
			calculated_at = excluded.calculated_at
	`
	_, err := s.db.Exec(query,
		r.ID,
		r.UserID,
		r.Year,
		r.Month,
		r.Totals.OperationCount,
		r.Totals.TotalValue,
		r.Totals.TotalGrossBrokerFee,
		r.Totals.TotalNetFee,
		r.Totals.BuyerSideCount,
		r.Totals.SellerSideCount,
		floatArg(r.Totals.AverageBuyerSidePercent),
		floatArg(r.Totals.AverageSellerSidePercent),
		r.Totals.ExclusivityPercent,
		r.CalculatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert materialized monthly report: %w", err)
	}
	return nil
}

// GetMonthlyReports retrieves the pre-calculated monthly reports for a user
// and year, sorted by month. Returns an empty slice when nothing has been
// materialized yet; callers fall back to on-demand calculation.
func (s *MaterializedReportRepository) GetMonthlyReports(userID string, year int) ([]model.MaterializedMonthlyReport, error) {
	query := `
		SELECT id, user_id, year, month,
			operation_count, total_value, total_gross_broker_fee, total_net_fee,
			buyer_side_count, seller_side_count,
			average_buyer_side_percent, average_seller_side_percent,
			exclusivity_percent, calculated_at
		FROM materialized_monthly_report
		WHERE user_id = ? AND year = ?
		ORDER BY month ASC
	`
	rows, err := s.db.Query(query, userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to query materialized_monthly_report table: %w", err)
	}
	defer rows.Close()

	reports := []model.MaterializedMonthlyReport{}
	for rows.Next() {
		var r model.MaterializedMonthlyReport
		var avgBuyer, avgSeller sql.NullFloat64
		var calculatedAtStr string

		err := rows.Scan(
			&r.ID,
			&r.UserID,
			&r.Year,
			&r.Month,
			&r.Totals.OperationCount,
			&r.Totals.TotalValue,
			&r.Totals.TotalGrossBrokerFee,
			&r.Totals.TotalNetFee,
			&r.Totals.BuyerSideCount,
			&r.Totals.SellerSideCount,
			&avgBuyer,
			&avgSeller,
			&r.Totals.ExclusivityPercent,
			&calculatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan materialized_monthly_report results: %w", err)
		}

		r.Totals.AverageBuyerSidePercent = nullableFloat(avgBuyer)
		r.Totals.AverageSellerSidePercent = nullableFloat(avgSeller)
		r.Totals.TotalSides = r.Totals.BuyerSideCount + r.Totals.SellerSideCount

		if r.CalculatedAt, err = ParseTime(calculatedAtStr); err != nil {
			return nil, fmt.Errorf("failed to parse calculated_at: %w", err)
		}

		reports = append(reports, r)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating materialized_monthly_report table: %w", err)
	}

	return reports, nil
}

// DeleteForUser removes all materialized rows for a user, forcing the next
// read to fall back to on-demand calculation until the next rebuild.
func (s *MaterializedReportRepository) DeleteForUser(userID string) error {
	if _, err := s.db.Exec(`DELETE FROM materialized_monthly_report WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete materialized reports: %w", err)
	}
	return nil
}

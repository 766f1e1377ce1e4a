package model

import "time"

// ReportTotals aggregates a filtered set of operations into the numbers the
// report screens render. Monetary values are raw (unrounded, symbol-free);
// formatting belongs to the consuming display layer.
//
// Average punta percentages are pointers: nil means "no data" (no operation
// in the set carried a non-zero percentage for that side), which is distinct
// from a true 0% average and must stay distinct in API responses.
type ReportTotals struct {
	OperationCount      int     `json:"operationCount"`
	TotalValue          float64 `json:"totalValue"`
	TotalGrossBrokerFee float64 `json:"totalGrossBrokerFee"`
	TotalNetFee         float64 `json:"totalNetFee"`

	BuyerSideCount  int `json:"buyerSideCount"`
	SellerSideCount int `json:"sellerSideCount"`
	TotalSides      int `json:"totalSides"`

	AverageBuyerSidePercent  *float64 `json:"averageBuyerSidePercent"`
	AverageSellerSidePercent *float64 `json:"averageSellerSidePercent"`

	ExclusivityPercent float64 `json:"exclusivityPercent"`
}

// AdvisorContribution is one row of a team report: an advisor's net fees and
// their share of the team's total. ContributionPercent is nil when the team's
// fee pool is 0 (no data, never a division by zero).
type AdvisorContribution struct {
	AdvisorID           string   `json:"advisorId"`
	AdvisorName         string   `json:"advisorName"`
	OperationCount      int      `json:"operationCount"`
	NetFee              float64  `json:"netFee"`
	ContributionPercent *float64 `json:"contributionPercent"`
}

// MonthlyTotals is one month's slice of a yearly report.
type MonthlyTotals struct {
	Year   int          `json:"year"`
	Month  int          `json:"month"`
	Totals ReportTotals `json:"totals"`
}

// ProfitabilityRow holds the per-operation profitability figures shown in
// the profitability report. Negative values are valid and flagged by the UI.
type ProfitabilityRow struct {
	OperationID          string  `json:"operationId"`
	Address              string  `json:"address"`
	NetFee               float64 `json:"netFee"`
	AssignedExpenses     float64 `json:"assignedExpenses"`
	NetProfit            float64 `json:"netProfit"`
	ProfitabilityPercent float64 `json:"profitabilityPercent"`
}

// MonthlyExpenseTotals is one month's aggregated expenses for the expense
// report. Recurring expenses count in every month from their start month on.
type MonthlyExpenseTotals struct {
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	Total          float64 `json:"total"`
	TotalInDollars float64 `json:"totalInDollars"`
	ExpenseCount   int     `json:"expenseCount"`
}

// MaterializedMonthlyReport is a pre-calculated monthly report row for a
// single user, used for fast retrieval from the materialized report table.
type MaterializedMonthlyReport struct {
	ID           string
	UserID       string
	Year         int
	Month        int
	Totals       ReportTotals
	CalculatedAt time.Time
}

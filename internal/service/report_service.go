package service

import (
	"strconv"

	"github.com/realtrackapp/BackOffice-Backend/internal/model"
	"github.com/realtrackapp/BackOffice-Backend/internal/repository"
)

// ReportService orchestrates the report screens: it loads the viewer's
// operation set, runs it through the filter and the pure calculation engine,
// and rolls the per-operation results up into report totals.
//
// Every report is recomputed from source fields when requested. The
// materialized report service layers a cache on top of this one; this
// service itself holds no state between calls.
type ReportService struct {
	operationRepo *repository.OperationRepository
	userRepo      *repository.UserRepository
}

// NewReportService creates a new ReportService with the provided repository dependencies.
func NewReportService(
	operationRepo *repository.OperationRepository,
	userRepo *repository.UserRepository,
) *ReportService {
	return &ReportService{
		operationRepo: operationRepo,
		userRepo:      userRepo,
	}
}

// GetReportTotals aggregates the viewer's filtered operations into totals.
func (s *ReportService) GetReportTotals(viewerID string, filter model.OperationFilter) (model.ReportTotals, error) {
	viewer, operations, err := s.loadViewerOperations(viewerID)
	if err != nil {
		return model.ReportTotals{}, err
	}

	totals := Aggregate(FilterOperations(operations, filter), &viewer)
	return roundTotals(totals), nil
}

// GetYearlyReport computes one ReportTotals per month of the given year.
// Months without operations yield zero-valued totals with nil punta averages.
func (s *ReportService) GetYearlyReport(viewerID string, year int) ([]model.MonthlyTotals, error) {
	viewer, operations, err := s.loadViewerOperations(viewerID)
	if err != nil {
		return nil, err
	}

	months := make([]model.MonthlyTotals, 12)
	for month := 1; month <= 12; month++ {
		filter := model.OperationFilter{
			Status: model.StatusAll,
			Year:   strconv.Itoa(year),
			Month:  strconv.Itoa(month),
		}
		totals := Aggregate(FilterOperations(operations, filter), &viewer)
		months[month-1] = model.MonthlyTotals{
			Year:   year,
			Month:  month,
			Totals: roundTotals(totals),
		}
	}

	return months, nil
}

// GetTeamReport computes per-advisor contributions over the filtered set.
// For a team leader the rows cover the leader plus every team advisor; for
// an ordinary advisor the report degrades to a single self row.
func (s *ReportService) GetTeamReport(viewerID string, filter model.OperationFilter) ([]model.AdvisorContribution, error) {
	viewer, operations, err := s.loadViewerOperations(viewerID)
	if err != nil {
		return nil, err
	}

	advisors := []model.User{viewer}
	if viewer.Role == model.RoleTeamLeaderBroker {
		team, err := s.userRepo.GetUsers(model.UserFilter{TeamLeaderID: viewer.ID})
		if err != nil {
			return nil, err
		}
		advisors = append(advisors, team...)
	}

	contributions := AdvisorContributions(FilterOperations(operations, filter), advisors)
	for i := range contributions {
		contributions[i].NetFee = round(contributions[i].NetFee)
		if contributions[i].ContributionPercent != nil {
			rounded := round(*contributions[i].ContributionPercent)
			contributions[i].ContributionPercent = &rounded
		}
	}
	return contributions, nil
}

// GetProfitabilityReport returns the per-operation profitability rows for
// the viewer's filtered operations.
func (s *ReportService) GetProfitabilityReport(viewerID string, filter model.OperationFilter) ([]model.ProfitabilityRow, error) {
	viewer, operations, err := s.loadViewerOperations(viewerID)
	if err != nil {
		return nil, err
	}

	filtered := FilterOperations(operations, filter)
	rows := make([]model.ProfitabilityRow, len(filtered))
	for i, op := range filtered {
		profit := ComputeProfit(op, &viewer)
		rows[i] = model.ProfitabilityRow{
			OperationID:          op.ID,
			Address:              op.Address,
			NetFee:               round(ResolveNetFee(op, &viewer)),
			AssignedExpenses:     round(AmountOrZero(op.AssignedExpenses)),
			NetProfit:            round(profit.NetProfit),
			ProfitabilityPercent: round(profit.ProfitabilityPercent),
		}
	}

	return rows, nil
}

// loadViewerOperations resolves the viewer and loads every operation in
// their visibility scope (own plus team for team leaders).
func (s *ReportService) loadViewerOperations(viewerID string) (model.User, []model.Operation, error) {
	viewer, err := s.userRepo.GetUserOnID(viewerID)
	if err != nil {
		return model.User{}, nil, err
	}

	userIDs := []string{viewer.ID}
	if viewer.Role == model.RoleTeamLeaderBroker {
		team, err := s.userRepo.GetUsers(model.UserFilter{TeamLeaderID: viewer.ID})
		if err != nil {
			return model.User{}, nil, err
		}
		for _, advisor := range team {
			userIDs = append(userIDs, advisor.ID)
		}
	}

	operations, err := s.operationRepo.GetOperationsForUsers(userIDs)
	if err != nil {
		return model.User{}, nil, err
	}

	return viewer, operations, nil
}

// roundTotals rounds the monetary and percentage figures of a ReportTotals
// for the response boundary. Counts stay as-is; nil punta averages stay nil.
func roundTotals(t model.ReportTotals) model.ReportTotals {
	t.TotalValue = round(t.TotalValue)
	t.TotalGrossBrokerFee = round(t.TotalGrossBrokerFee)
	t.TotalNetFee = round(t.TotalNetFee)
	t.ExclusivityPercent = round(t.ExclusivityPercent)
	if t.AverageBuyerSidePercent != nil {
		avg := round(*t.AverageBuyerSidePercent)
		t.AverageBuyerSidePercent = &avg
	}
	if t.AverageSellerSidePercent != nil {
		avg := round(*t.AverageSellerSidePercent)
		t.AverageSellerSidePercent = &avg
	}
	return t
}

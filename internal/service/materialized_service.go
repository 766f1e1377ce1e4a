package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/realtrackapp/BackOffice-Backend/internal/model"
	"github.com/realtrackapp/BackOffice-Backend/internal/repository"
)

// rebuildConcurrency caps how many users are recalculated in parallel
// during a materialized rebuild.
const rebuildConcurrency = 4

// MaterializedReportService maintains pre-calculated monthly report totals
// per user. Reads prefer the materialized rows and fall back to on-demand
// calculation when the table is empty for the requested user/year, so a
// stale or mid-rebuild cache never breaks a report screen.
type MaterializedReportService struct {
	materializedRepo *repository.MaterializedReportRepository
	reportService    *ReportService
	userRepo         *repository.UserRepository
}

// NewMaterializedReportService creates a new MaterializedReportService with
// the provided dependencies.
func NewMaterializedReportService(
	materializedRepo *repository.MaterializedReportRepository,
	reportService *ReportService,
	userRepo *repository.UserRepository,
) *MaterializedReportService {
	return &MaterializedReportService{
		materializedRepo: materializedRepo,
		reportService:    reportService,
		userRepo:         userRepo,
	}
}

// GetYearlyReportWithFallback returns the monthly totals for a user and
// year, preferring materialized rows and recomputing on demand when none
// exist. A full materialized year has exactly twelve rows; partial data also
// triggers the fallback so months are never silently missing.
func (s *MaterializedReportService) GetYearlyReportWithFallback(userID string, year int) ([]model.MonthlyTotals, error) {
	materialized, err := s.materializedRepo.GetMonthlyReports(userID, year)
	if err == nil && len(materialized) == 12 {
		months := make([]model.MonthlyTotals, len(materialized))
		for i, r := range materialized {
			months[i] = model.MonthlyTotals{
				Year:   r.Year,
				Month:  r.Month,
				Totals: r.Totals,
			}
		}
		return months, nil
	}

	return s.reportService.GetYearlyReport(userID, year)
}

// RebuildForUser recalculates and stores the twelve monthly rows for a
// single user and year.
func (s *MaterializedReportService) RebuildForUser(userID string, year int) error {
	months, err := s.reportService.GetYearlyReport(userID, year)
	if err != nil {
		return err
	}

	calculatedAt := time.Now().UTC()
	for _, m := range months {
		report := model.MaterializedMonthlyReport{
			ID:           uuid.New().String(),
			UserID:       userID,
			Year:         m.Year,
			Month:        m.Month,
			Totals:       m.Totals,
			CalculatedAt: calculatedAt,
		}
		if err := s.materializedRepo.UpsertMonthlyReport(report); err != nil {
			return err
		}
	}
	return nil
}

// RebuildAll recalculates the materialized rows for every user, a bounded
// number of users at a time. The first failure cancels the remaining work.
func (s *MaterializedReportService) RebuildAll(ctx context.Context, year int) error {
	users, err := s.userRepo.GetUsers(model.UserFilter{})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(rebuildConcurrency)

	for _, user := range users {
		user := user
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return s.RebuildForUser(user.ID, year)
		})
	}

	return g.Wait()
}

// Invalidate drops a user's materialized rows so the next read recomputes.
// Called by the CRUD layer after operation writes.
func (s *MaterializedReportService) Invalidate(userID string) error {
	return s.materializedRepo.DeleteForUser(userID)
}

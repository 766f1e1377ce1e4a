package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/realtrackapp/BackOffice-Backend/internal/model"
	"github.com/realtrackapp/BackOffice-Backend/internal/testutil"
)

func setupReportHandler(t *testing.T) (*ReportHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewReportHandler(
		testutil.NewTestReportService(t, db),
		testutil.NewTestMaterializedReportService(t, db),
	), db
}

func TestReportHandler_Totals(t *testing.T) {
	t.Run("returns the viewer's totals", func(t *testing.T) {
		handler, db := setupReportHandler(t)

		advisor := testutil.NewUser().Build(t, db)
		testutil.NewOperation(advisor.ID).
			WithBaseValue(100000).WithFees(3, 6).
			Build(t, db)

		req := httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/api/reports/totals?viewer=%s&estado=all", advisor.ID), nil)
		w := httptest.NewRecorder()

		handler.Totals(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var totals model.ReportTotals
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&totals)

		if totals.OperationCount != 1 || totals.TotalNetFee != 3000 {
			t.Errorf("Expected 1 operation with net fee 3000, got %d / %v",
				totals.OperationCount, totals.TotalNetFee)
		}
	})

	t.Run("requires a valid viewer UUID", func(t *testing.T) {
		handler, _ := setupReportHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/reports/totals?viewer=nope", nil)
		w := httptest.NewRecorder()

		handler.Totals(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 404 for an unknown viewer", func(t *testing.T) {
		handler, _ := setupReportHandler(t)

		req := httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/api/reports/totals?viewer=%s", testutil.MakeID()), nil)
		w := httptest.NewRecorder()

		handler.Totals(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestReportHandler_Yearly(t *testing.T) {
	t.Run("returns twelve months for the requested year", func(t *testing.T) {
		handler, db := setupReportHandler(t)

		advisor := testutil.NewUser().Build(t, db)
		opDate := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
		testutil.NewOperation(advisor.ID).
			WithBaseValue(100000).
			OnDate(opDate).
			Build(t, db)

		req := httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/api/reports/yearly?viewer=%s&anio=2024", advisor.ID), nil)
		w := httptest.NewRecorder()

		handler.Yearly(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var months []model.MonthlyTotals
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&months)

		if len(months) != 12 {
			t.Fatalf("Expected 12 months, got %d", len(months))
		}
		if months[2].Totals.TotalValue != 100000 {
			t.Errorf("Expected March total 100000, got %v", months[2].Totals.TotalValue)
		}
	})

	t.Run("rejects a non-numeric year", func(t *testing.T) {
		handler, db := setupReportHandler(t)
		advisor := testutil.NewUser().Build(t, db)

		req := httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/api/reports/yearly?viewer=%s&anio=abc", advisor.ID), nil)
		w := httptest.NewRecorder()

		handler.Yearly(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestReportHandler_Team(t *testing.T) {
	t.Run("returns contribution rows for the team", func(t *testing.T) {
		handler, db := setupReportHandler(t)

		leader := testutil.NewUser().AsTeamLeader().Build(t, db)
		member := testutil.NewUser().OnTeam(leader.ID).Build(t, db)
		testutil.NewOperation(leader.ID).Build(t, db)
		testutil.NewOperation(member.ID).Build(t, db)

		req := httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/api/reports/team?viewer=%s&estado=all", leader.ID), nil)
		w := httptest.NewRecorder()

		handler.Team(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var rows []model.AdvisorContribution
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&rows)

		if len(rows) != 2 {
			t.Errorf("Expected 2 contribution rows, got %d", len(rows))
		}
	})
}

func TestReportHandler_Rebuild(t *testing.T) {
	t.Run("materializes rows for every user", func(t *testing.T) {
		handler, db := setupReportHandler(t)

		advisor := testutil.NewUser().Build(t, db)
		testutil.NewOperation(advisor.ID).
			OnDate(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)).
			Build(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/reports/developer/rebuild?anio=2024", nil)
		w := httptest.NewRecorder()

		handler.Rebuild(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM materialized_monthly_report`).Scan(&count); err != nil {
			t.Fatalf("Failed to count materialized rows: %v", err)
		}
		if count != 12 {
			t.Errorf("Expected 12 materialized rows, got %d", count)
		}
	})
}

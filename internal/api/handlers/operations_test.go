package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/realtrackapp/BackOffice-Backend/internal/service"
	"github.com/realtrackapp/BackOffice-Backend/internal/testutil"
)

func setupOperationHandler(t *testing.T) (*OperationHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewOperationHandler(
		testutil.NewTestOperationService(t, db),
		testutil.NewTestMaterializedReportService(t, db),
	), db
}

// withUUIDParam injects a uuid URL parameter the way the chi router would.
func withUUIDParam(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("uuid", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestOperationHandler_Operations(t *testing.T) {
	t.Run("lists the viewer's operations with derived fields", func(t *testing.T) {
		handler, db := setupOperationHandler(t)

		advisor := testutil.NewUser().Build(t, db)
		testutil.NewOperation(advisor.ID).
			WithBaseValue(100000).WithFees(3, 6).
			Build(t, db)

		req := httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/api/operations?viewer=%s&estado=all", advisor.ID), nil)
		w := httptest.NewRecorder()

		handler.Operations(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var views []service.OperationView
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&views)

		if len(views) != 1 {
			t.Fatalf("Expected 1 operation, got %d", len(views))
		}
		if views[0].NetFee != 3000 {
			t.Errorf("Expected net fee 3000, got %v", views[0].NetFee)
		}
	})

	t.Run("requires a valid viewer UUID", func(t *testing.T) {
		handler, _ := setupOperationHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/operations?viewer=bogus", nil)
		w := httptest.NewRecorder()

		handler.Operations(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 404 for an unknown viewer", func(t *testing.T) {
		handler, _ := setupOperationHandler(t)

		req := httptest.NewRequest(http.MethodGet,
			fmt.Sprintf("/api/operations?viewer=%s", testutil.MakeID()), nil)
		w := httptest.NewRecorder()

		handler.Operations(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestOperationHandler_CreateOperation(t *testing.T) {
	t.Run("creates a valid operation", func(t *testing.T) {
		handler, db := setupOperationHandler(t)
		advisor := testutil.NewUser().Build(t, db)

		body := fmt.Sprintf(`{
			"direccion": "Av. Libertador 1500",
			"tipo_operacion": "Venta",
			"estado": "En Curso",
			"valor_reserva": 100000,
			"porcentaje_honorarios_asesor": 3,
			"porcentaje_honorarios_broker": 6,
			"user_uid": "%s",
			"realizador_venta": "Maria Gomez",
			"fecha_operacion": "2024-03-15"
		}`, advisor.ID)

		req := httptest.NewRequest(http.MethodPost, "/api/operations", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateOperation(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM operation`).Scan(&count); err != nil {
			t.Fatalf("Failed to count operations: %v", err)
		}
		if count != 1 {
			t.Errorf("Expected 1 stored operation, got %d", count)
		}
	})

	t.Run("rejects validation failures with field errors", func(t *testing.T) {
		handler, db := setupOperationHandler(t)
		advisor := testutil.NewUser().Build(t, db)

		body := fmt.Sprintf(`{
			"direccion": "",
			"tipo_operacion": "Venta",
			"valor_reserva": -5,
			"porcentaje_honorarios_asesor": 3,
			"porcentaje_honorarios_broker": 6,
			"user_uid": "%s"
		}`, advisor.ID)

		req := httptest.NewRequest(http.MethodPost, "/api/operations", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreateOperation(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestOperationHandler_UpdateOperation(t *testing.T) {
	t.Run("reassignment invalidates the previous advisor's cache", func(t *testing.T) {
		handler, db := setupOperationHandler(t)

		oldAdvisor := testutil.NewUser().Build(t, db)
		newAdvisor := testutil.NewUser().Build(t, db)
		op := testutil.NewOperation(oldAdvisor.ID).
			WithBaseValue(100000).
			OnDate(time.Date(2023, time.March, 10, 0, 0, 0, 0, time.UTC)).
			Build(t, db)

		materialized := testutil.NewTestMaterializedReportService(t, db)
		if err := materialized.RebuildForUser(oldAdvisor.ID, 2023); err != nil {
			t.Fatalf("Failed to seed materialized rows: %v", err)
		}

		body := fmt.Sprintf(`{
			"direccion": "Av. Libertador 1500",
			"tipo_operacion": "Venta",
			"estado": "En Curso",
			"valor_reserva": 100000,
			"porcentaje_honorarios_asesor": 3,
			"porcentaje_honorarios_broker": 6,
			"user_uid": "%s",
			"realizador_venta": "New Advisor",
			"fecha_operacion": "2023-03-10"
		}`, newAdvisor.ID)

		req := withUUIDParam(
			httptest.NewRequest(http.MethodPut, "/api/operations/"+op.ID, strings.NewReader(body)),
			op.ID,
		)
		w := httptest.NewRecorder()

		handler.UpdateOperation(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		months, err := materialized.GetYearlyReportWithFallback(oldAdvisor.ID, 2023)
		if err != nil {
			t.Fatalf("Failed to read old advisor's report: %v", err)
		}
		if months[2].Totals.TotalValue != 0 {
			t.Errorf("Old advisor's March total still %v after reassignment, want 0",
				months[2].Totals.TotalValue)
		}
	})

	t.Run("swapping the additional advisor invalidates their cache", func(t *testing.T) {
		handler, db := setupOperationHandler(t)

		primary := testutil.NewUser().Build(t, db)
		helper := testutil.NewUser().Build(t, db)
		op := testutil.NewOperation(primary.ID).
			WithBaseValue(100000).WithFees(3, 6).
			WithAdditionalAdvisor(helper.ID, 4).
			OnDate(time.Date(2023, time.May, 1, 0, 0, 0, 0, time.UTC)).
			Build(t, db)

		materialized := testutil.NewTestMaterializedReportService(t, db)
		if err := materialized.RebuildForUser(helper.ID, 2023); err != nil {
			t.Fatalf("Failed to seed materialized rows: %v", err)
		}

		// Same primary, additional advisor removed.
		body := fmt.Sprintf(`{
			"direccion": "Av. Siempre Viva 742",
			"tipo_operacion": "Venta",
			"estado": "En Curso",
			"valor_reserva": 100000,
			"porcentaje_honorarios_asesor": 3,
			"porcentaje_honorarios_broker": 6,
			"user_uid": "%s",
			"realizador_venta": "Test Advisor",
			"fecha_operacion": "2023-05-01"
		}`, primary.ID)

		req := withUUIDParam(
			httptest.NewRequest(http.MethodPut, "/api/operations/"+op.ID, strings.NewReader(body)),
			op.ID,
		)
		w := httptest.NewRecorder()

		handler.UpdateOperation(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM materialized_monthly_report WHERE user_id = ?`, helper.ID).Scan(&count); err != nil {
			t.Fatalf("Failed to count materialized rows: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected the former additional advisor's cache to be dropped, found %d rows", count)
		}
	})

	t.Run("returns 404 for an unknown operation", func(t *testing.T) {
		handler, db := setupOperationHandler(t)
		advisor := testutil.NewUser().Build(t, db)

		body := fmt.Sprintf(`{
			"direccion": "Av. Libertador 1500",
			"tipo_operacion": "Venta",
			"valor_reserva": 100000,
			"porcentaje_honorarios_asesor": 3,
			"porcentaje_honorarios_broker": 6,
			"user_uid": "%s"
		}`, advisor.ID)

		id := testutil.MakeID()
		req := withUUIDParam(
			httptest.NewRequest(http.MethodPut, "/api/operations/"+id, strings.NewReader(body)),
			id,
		)
		w := httptest.NewRecorder()

		handler.UpdateOperation(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestOperationHandler_DeleteOperation(t *testing.T) {
	t.Run("deletes and invalidates the materialized cache", func(t *testing.T) {
		handler, db := setupOperationHandler(t)

		advisor := testutil.NewUser().Build(t, db)
		op := testutil.NewOperation(advisor.ID).Build(t, db)

		materialized := testutil.NewTestMaterializedReportService(t, db)
		if err := materialized.RebuildForUser(advisor.ID, op.OperationDate.Year()); err != nil {
			t.Fatalf("Failed to seed materialized rows: %v", err)
		}

		req := withUUIDParam(httptest.NewRequest(http.MethodDelete, "/api/operations/"+op.ID, nil), op.ID)
		w := httptest.NewRecorder()

		handler.DeleteOperation(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM materialized_monthly_report WHERE user_id = ?`, advisor.ID).Scan(&count); err != nil {
			t.Fatalf("Failed to count materialized rows: %v", err)
		}
		if count != 0 {
			t.Errorf("Expected the cache to be dropped, found %d rows", count)
		}
	})

	t.Run("returns 404 for an unknown operation", func(t *testing.T) {
		handler, _ := setupOperationHandler(t)

		id := testutil.MakeID()
		req := withUUIDParam(httptest.NewRequest(http.MethodDelete, "/api/operations/"+id, nil), id)
		w := httptest.NewRecorder()

		handler.DeleteOperation(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

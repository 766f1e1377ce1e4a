package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/realtrackapp/BackOffice-Backend/internal/api/handlers"
	custommiddleware "github.com/realtrackapp/BackOffice-Backend/internal/api/middleware"
	"github.com/realtrackapp/BackOffice-Backend/internal/config"
	"github.com/realtrackapp/BackOffice-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	operationService *service.OperationService,
	expenseService *service.ExpenseService,
	reportService *service.ReportService,
	materializedService *service.MaterializedReportService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
			r.Post("/apikey", systemHandler.SetAPIKey)
		})

		r.Route("/operations", func(r chi.Router) {
			operationHandler := handlers.NewOperationHandler(operationService, materializedService)
			r.Get("/", operationHandler.Operations)
			r.Post("/", operationHandler.CreateOperation)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", operationHandler.GetOperation)
				r.Put("/", operationHandler.UpdateOperation)
				r.Delete("/", operationHandler.DeleteOperation)
			})
		})

		r.Route("/expenses", func(r chi.Router) {
			expenseHandler := handlers.NewExpenseHandler(expenseService)
			r.Get("/", expenseHandler.Expenses)
			r.Get("/monthly", expenseHandler.MonthlyTotals)
			r.Post("/", expenseHandler.CreateExpense)
			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Delete("/", expenseHandler.DeleteExpense)
			})
		})

		r.Route("/reports", func(r chi.Router) {
			reportHandler := handlers.NewReportHandler(reportService, materializedService)
			r.Get("/totals", reportHandler.Totals)
			r.Get("/yearly", reportHandler.Yearly)
			r.Get("/team", reportHandler.Team)
			r.Get("/profitability", reportHandler.Profitability)

			// Developer namespace: maintenance operations behind the API key.
			r.Route("/developer", func(r chi.Router) {
				r.Use(custommiddleware.RequireAPIKey(systemService))
				r.Post("/rebuild", reportHandler.Rebuild)
			})
		})
	})

	return r
}

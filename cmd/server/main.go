package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/realtrackapp/BackOffice-Backend/internal/api"
	"github.com/realtrackapp/BackOffice-Backend/internal/config"
	"github.com/realtrackapp/BackOffice-Backend/internal/database"
	"github.com/realtrackapp/BackOffice-Backend/internal/repository"
	"github.com/realtrackapp/BackOffice-Backend/internal/security"
	"github.com/realtrackapp/BackOffice-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	encryptor, err := security.NewEncryptor(cfg.Security.FernetKey)
	if err != nil {
		log.Fatalf("Failed to initialize encryption: %v", err)
	}

	// Create repositories
	operationRepo := repository.NewOperationRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	userRepo := repository.NewUserRepository(db)
	materializedRepo := repository.NewMaterializedReportRepository(db)

	// Create services
	systemService := service.NewSystemService(db, encryptor)
	operationService := service.NewOperationService(operationRepo, userRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	reportService := service.NewReportService(operationRepo, userRepo)
	materializedService := service.NewMaterializedReportService(materializedRepo, reportService, userRepo)

	// Create router
	router := api.NewRouter(systemService, operationService, expenseService, reportService, materializedService, cfg)

	// Nightly refresh of the materialized monthly reports
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Reports.RefreshSchedule, func() {
		year := time.Now().UTC().Year()
		if err := materializedService.RebuildAll(context.Background(), year); err != nil {
			log.Printf("Materialized report refresh failed: %v", err)
			return
		}
		log.Printf("Materialized reports refreshed for %d", year)
	})
	if err != nil {
		log.Fatalf("Failed to schedule report refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

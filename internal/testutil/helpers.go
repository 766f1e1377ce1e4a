package testutil

import (
	"database/sql"
	"testing"

	"github.com/realtrackapp/BackOffice-Backend/internal/repository"
	"github.com/realtrackapp/BackOffice-Backend/internal/security"
	"github.com/realtrackapp/BackOffice-Backend/internal/service"
)

func NewTestOperationService(t *testing.T, db *sql.DB) *service.OperationService {
	t.Helper()

	operationRepo := repository.NewOperationRepository(db)
	userRepo := repository.NewUserRepository(db)

	return service.NewOperationService(operationRepo, userRepo)
}

func NewTestExpenseService(t *testing.T, db *sql.DB) *service.ExpenseService {
	t.Helper()

	return service.NewExpenseService(repository.NewExpenseRepository(db))
}

func NewTestReportService(t *testing.T, db *sql.DB) *service.ReportService {
	t.Helper()

	operationRepo := repository.NewOperationRepository(db)
	userRepo := repository.NewUserRepository(db)

	return service.NewReportService(operationRepo, userRepo)
}

func NewTestMaterializedReportService(t *testing.T, db *sql.DB) *service.MaterializedReportService {
	t.Helper()

	operationRepo := repository.NewOperationRepository(db)
	userRepo := repository.NewUserRepository(db)
	materializedRepo := repository.NewMaterializedReportRepository(db)
	reportService := service.NewReportService(operationRepo, userRepo)

	return service.NewMaterializedReportService(materializedRepo, reportService, userRepo)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	// Ephemeral key: secrets only need to survive the test.
	encryptor, err := security.NewEncryptor("")
	if err != nil {
		t.Fatalf("Failed to create test encryptor: %v", err)
	}

	return service.NewSystemService(db, encryptor)
}

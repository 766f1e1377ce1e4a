package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/realtrackapp/BackOffice-Backend/internal/model"
	"github.com/realtrackapp/BackOffice-Backend/internal/repository"
)

// OperationService handles operation CRUD and the per-operation derived
// figures shown in list views. All commission math is delegated to the pure
// engine functions; the service adds ownership scoping and persistence.
type OperationService struct {
	operationRepo *repository.OperationRepository
	userRepo      *repository.UserRepository
}

// NewOperationService creates a new OperationService with the provided repository dependencies.
func NewOperationService(
	operationRepo *repository.OperationRepository,
	userRepo *repository.UserRepository,
) *OperationService {
	return &OperationService{
		operationRepo: operationRepo,
		userRepo:      userRepo,
	}
}

// OperationView is an operation enriched with its derived fee figures,
// rounded to two decimals for display.
type OperationView struct {
	model.Operation
	BrokerFee            float64 `json:"brokerFee"`
	AdvisorFee           float64 `json:"advisorFee"`
	NetFee               float64 `json:"netFee"`
	NetProfit            float64 `json:"netProfit"`
	ProfitabilityPercent float64 `json:"profitabilityPercent"`
}

// GetOperations loads the viewer's operations, applies the filter and
// computes the derived fee fields per record.
//
// Team leaders see their own operations plus every operation executed by the
// advisors on their team; ordinary advisors see only their own. Results are
// recomputed from source fields on every call; nothing is persisted.
func (s *OperationService) GetOperations(viewerID string, filter model.OperationFilter) ([]OperationView, error) {
	viewer, err := s.userRepo.GetUserOnID(viewerID)
	if err != nil {
		return nil, err
	}

	userIDs, err := s.scopeUserIDs(viewer)
	if err != nil {
		return nil, err
	}

	operations, err := s.operationRepo.GetOperationsForUsers(userIDs)
	if err != nil {
		return nil, err
	}

	filtered := FilterOperations(operations, filter)

	views := make([]OperationView, len(filtered))
	for i, op := range filtered {
		split := SplitCommission(op)
		profit := ComputeProfit(op, &viewer)

		views[i] = OperationView{
			Operation:            op,
			BrokerFee:            round(split.BrokerFee),
			AdvisorFee:           round(split.AdvisorFee),
			NetFee:               round(ResolveNetFee(op, &viewer)),
			NetProfit:            round(profit.NetProfit),
			ProfitabilityPercent: round(profit.ProfitabilityPercent),
		}
	}

	return views, nil
}

// GetOperation retrieves a single operation by its ID.
func (s *OperationService) GetOperation(operationID string) (model.Operation, error) {
	return s.operationRepo.GetOperationOnID(operationID)
}

// CreateOperation assigns an ID and creation time, then persists the operation.
func (s *OperationService) CreateOperation(op model.Operation) (model.Operation, error) {
	op.ID = uuid.New().String()
	op.CreatedAt = time.Now().UTC()
	if op.Status == "" {
		op.Status = model.StatusInProgress
	}

	if err := s.operationRepo.CreateOperation(op); err != nil {
		return model.Operation{}, err
	}
	return op, nil
}

// UpdateOperation persists changes to an existing operation.
func (s *OperationService) UpdateOperation(op model.Operation) error {
	return s.operationRepo.UpdateOperation(op)
}

// DeleteOperation removes an operation by its ID.
func (s *OperationService) DeleteOperation(operationID string) error {
	return s.operationRepo.DeleteOperation(operationID)
}

// scopeUserIDs returns the user IDs whose operations the viewer may see.
func (s *OperationService) scopeUserIDs(viewer model.User) ([]string, error) {
	userIDs := []string{viewer.ID}

	if viewer.Role != model.RoleTeamLeaderBroker {
		return userIDs, nil
	}

	team, err := s.userRepo.GetUsers(model.UserFilter{TeamLeaderID: viewer.ID})
	if err != nil {
		return nil, err
	}
	for _, advisor := range team {
		userIDs = append(userIDs, advisor.ID)
	}
	return userIDs, nil
}

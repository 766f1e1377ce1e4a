package service_test

import (
	"math"
	"testing"

	"github.com/realtrackapp/BackOffice-Backend/internal/model"
	"github.com/realtrackapp/BackOffice-Backend/internal/service"
)

// TestComputeProfit tests per-operation profitability.
//
// WHY: Operations with a zero or missing base value show up in imported
// historical data; they must render as 0% margin, never NaN, and losses
// must come back signed so the report can flag them.
func TestComputeProfit(t *testing.T) {
	advisor := model.User{ID: "adv-1", Role: model.RoleAdvisor}

	t.Run("nets assigned expenses against the fee", func(t *testing.T) {
		op := model.Operation{
			BaseValue:         100000,
			AdvisorFeePercent: 3,
			PrimaryAdvisorID:  "adv-1",
			AssignedExpenses:  ptr(1000.0),
		}

		profit := service.ComputeProfit(op, &advisor)

		if profit.NetProfit != 2000 {
			t.Errorf("Expected net profit 2000, got %v", profit.NetProfit)
		}
		if profit.ProfitabilityPercent != 2 {
			t.Errorf("Expected profitability 2%%, got %v", profit.ProfitabilityPercent)
		}
	})

	t.Run("expenses above the fee yield a signed loss", func(t *testing.T) {
		op := model.Operation{
			BaseValue:         100000,
			AdvisorFeePercent: 3,
			PrimaryAdvisorID:  "adv-1",
			AssignedExpenses:  ptr(5000.0),
		}

		profit := service.ComputeProfit(op, &advisor)

		if profit.NetProfit != -2000 {
			t.Errorf("Expected net profit -2000, got %v", profit.NetProfit)
		}
		if profit.ProfitabilityPercent != -2 {
			t.Errorf("Expected profitability -2%%, got %v", profit.ProfitabilityPercent)
		}
	})

	t.Run("zero base value degrades to zero percent", func(t *testing.T) {
		op := model.Operation{
			PrimaryAdvisorID: "adv-1",
			AssignedExpenses: ptr(500.0),
		}

		profit := service.ComputeProfit(op, &advisor)

		if math.IsNaN(profit.ProfitabilityPercent) || math.IsInf(profit.ProfitabilityPercent, 0) {
			t.Fatalf("Expected finite profitability, got %v", profit.ProfitabilityPercent)
		}
		if profit.ProfitabilityPercent != 0 {
			t.Errorf("Expected 0%% for zero base value, got %v", profit.ProfitabilityPercent)
		}
		if profit.NetProfit != -500 {
			t.Errorf("Expected net profit -500, got %v", profit.NetProfit)
		}
	})

	t.Run("missing expenses count as zero", func(t *testing.T) {
		op := model.Operation{
			BaseValue:         100000,
			AdvisorFeePercent: 3,
			PrimaryAdvisorID:  "adv-1",
		}

		if got := service.ComputeProfit(op, &advisor).NetProfit; got != 3000 {
			t.Errorf("Expected net profit 3000 with no expenses, got %v", got)
		}
	})
}

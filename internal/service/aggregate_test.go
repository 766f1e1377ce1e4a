package service_test

import (
	"reflect"
	"testing"

	"github.com/realtrackapp/BackOffice-Backend/internal/model"
	"github.com/realtrackapp/BackOffice-Backend/internal/service"
	"github.com/realtrackapp/BackOffice-Backend/internal/testutil"
)

// TestAggregate tests report roll-ups.
//
// WHY: The punta averages must distinguish "no data" from 0%. Counting an
// unentered percentage as a zero sample drags every average down and the
// report screens cannot tell a quiet month from a broken one.
func TestAggregate(t *testing.T) {
	advisor := model.User{ID: testutil.MakeID(), Role: model.RoleAdvisor}

	t.Run("sums values, fees and sides", func(t *testing.T) {
		ops := []model.Operation{
			testutil.NewOperation(advisor.ID).
				WithBaseValue(100000).WithFees(3, 6).
				WithBuyerSide(4).Exclusive().Value(),
			testutil.NewOperation(advisor.ID).
				WithBaseValue(200000).WithFees(3, 5).
				WithBuyerSide(3).WithSellerSide(2).Value(),
		}

		totals := service.Aggregate(ops, &advisor)

		if totals.OperationCount != 2 {
			t.Errorf("Expected 2 operations, got %d", totals.OperationCount)
		}
		if totals.TotalValue != 300000 {
			t.Errorf("Expected total value 300000, got %v", totals.TotalValue)
		}
		if totals.TotalGrossBrokerFee != 16000 {
			t.Errorf("Expected gross broker fees 16000, got %v", totals.TotalGrossBrokerFee)
		}
		if totals.TotalNetFee != 9000 {
			t.Errorf("Expected net fees 9000, got %v", totals.TotalNetFee)
		}
		if totals.BuyerSideCount != 2 || totals.SellerSideCount != 1 || totals.TotalSides != 3 {
			t.Errorf("Expected sides 2/1/3, got %d/%d/%d",
				totals.BuyerSideCount, totals.SellerSideCount, totals.TotalSides)
		}
		if totals.ExclusivityPercent != 50 {
			t.Errorf("Expected 50%% exclusivity, got %v", totals.ExclusivityPercent)
		}
	})

	t.Run("punta averages skip zero and missing percentages", func(t *testing.T) {
		ops := []model.Operation{
			testutil.NewOperation(advisor.ID).WithBuyerSide(4).Value(),
			testutil.NewOperation(advisor.ID).WithBuyerSide(2).Value(),
			// Side marked but percentage never entered.
			testutil.NewOperation(advisor.ID).WithBuyerSide(0).Value(),
		}

		totals := service.Aggregate(ops, &advisor)

		if totals.AverageBuyerSidePercent == nil {
			t.Fatal("Expected a buyer-side average")
		}
		if *totals.AverageBuyerSidePercent != 3 {
			t.Errorf("Expected buyer-side average 3, got %v", *totals.AverageBuyerSidePercent)
		}
		if totals.BuyerSideCount != 3 {
			t.Errorf("Expected the unentered side to still count, got %d", totals.BuyerSideCount)
		}
	})

	t.Run("no samples means nil average, not zero", func(t *testing.T) {
		ops := []model.Operation{
			testutil.NewOperation(advisor.ID).WithBuyerSide(0).Value(),
			testutil.NewOperation(advisor.ID).Value(),
		}

		totals := service.Aggregate(ops, &advisor)

		if totals.AverageBuyerSidePercent != nil {
			t.Errorf("Expected nil buyer-side average, got %v", *totals.AverageBuyerSidePercent)
		}
		if totals.AverageSellerSidePercent != nil {
			t.Errorf("Expected nil seller-side average, got %v", *totals.AverageSellerSidePercent)
		}
	})

	t.Run("empty set yields an empty report without dividing", func(t *testing.T) {
		totals := service.Aggregate(nil, &advisor)

		if totals.OperationCount != 0 || totals.TotalValue != 0 || totals.ExclusivityPercent != 0 {
			t.Errorf("Expected empty totals, got %+v", totals)
		}
	})

	t.Run("aggregation is repeatable", func(t *testing.T) {
		ops := []model.Operation{
			testutil.NewOperation(advisor.ID).WithBuyerSide(4).Exclusive().Value(),
			testutil.NewOperation(advisor.ID).WithSellerSide(2).Value(),
		}

		first := service.Aggregate(ops, &advisor)
		second := service.Aggregate(ops, &advisor)

		if !reflect.DeepEqual(first, second) {
			t.Errorf("Aggregate not repeatable:\nfirst:  %+v\nsecond: %+v", first, second)
		}
	})
}

// TestAdvisorContributions tests the team contribution breakdown.
//
// WHY: Each row resolves fees with its own advisor as viewer, so an
// additional advisor's halved cut shows up in their row and not the
// primary's. A zero pool must yield nil percentages, not a panic.
func TestAdvisorContributions(t *testing.T) {
	t.Run("splits the pool across involved advisors", func(t *testing.T) {
		primary := model.User{ID: testutil.MakeID(), Name: "Maria", Role: model.RoleAdvisor}
		helper := model.User{ID: testutil.MakeID(), Name: "Juan", Role: model.RoleAdvisor}

		ops := []model.Operation{
			testutil.NewOperation(primary.ID).
				WithBaseValue(100000).WithFees(3, 6).
				WithAdditionalAdvisor(helper.ID, 4).Value(),
			testutil.NewOperation(primary.ID).
				WithBaseValue(100000).WithFees(1, 6).Value(),
		}

		rows := service.AdvisorContributions(ops, []model.User{primary, helper})

		if len(rows) != 2 {
			t.Fatalf("Expected 2 rows, got %d", len(rows))
		}

		// Primary: 3000 + 1000. Helper: half of 4000.
		if rows[0].NetFee != 4000 || rows[0].OperationCount != 2 {
			t.Errorf("Primary row: expected 4000 over 2 operations, got %v over %d",
				rows[0].NetFee, rows[0].OperationCount)
		}
		if rows[1].NetFee != 2000 || rows[1].OperationCount != 1 {
			t.Errorf("Helper row: expected 2000 over 1 operation, got %v over %d",
				rows[1].NetFee, rows[1].OperationCount)
		}

		if rows[0].ContributionPercent == nil || rows[1].ContributionPercent == nil {
			t.Fatal("Expected contribution percentages on a non-zero pool")
		}
		if got := *rows[0].ContributionPercent + *rows[1].ContributionPercent; got < 99.999 || got > 100.001 {
			t.Errorf("Expected percentages to sum to 100, got %v", got)
		}
	})

	t.Run("zero pool leaves percentages nil", func(t *testing.T) {
		advisor := model.User{ID: testutil.MakeID(), Name: "Maria", Role: model.RoleAdvisor}
		ops := []model.Operation{
			testutil.NewOperation(advisor.ID).WithBaseValue(0).Value(),
		}

		rows := service.AdvisorContributions(ops, []model.User{advisor})

		if len(rows) != 1 {
			t.Fatalf("Expected 1 row, got %d", len(rows))
		}
		if rows[0].ContributionPercent != nil {
			t.Errorf("Expected nil percentage on a zero pool, got %v", *rows[0].ContributionPercent)
		}
		if rows[0].OperationCount != 1 {
			t.Errorf("Expected the operation to still be counted, got %d", rows[0].OperationCount)
		}
	})

	t.Run("uninvolved advisors get an empty row", func(t *testing.T) {
		active := model.User{ID: testutil.MakeID(), Name: "Maria", Role: model.RoleAdvisor}
		idle := model.User{ID: testutil.MakeID(), Name: "Pedro", Role: model.RoleAdvisor}

		ops := []model.Operation{
			testutil.NewOperation(active.ID).WithBaseValue(100000).WithFees(3, 6).Value(),
		}

		rows := service.AdvisorContributions(ops, []model.User{active, idle})

		if rows[1].NetFee != 0 || rows[1].OperationCount != 0 {
			t.Errorf("Expected an empty row for the idle advisor, got %+v", rows[1])
		}
		if rows[1].ContributionPercent == nil || *rows[1].ContributionPercent != 0 {
			t.Errorf("Expected a 0%% contribution on a non-zero pool, got %v", rows[1].ContributionPercent)
		}
	})
}

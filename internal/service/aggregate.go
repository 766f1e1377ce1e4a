package service

import (
	"github.com/realtrackapp/BackOffice-Backend/internal/model"
)

// Aggregate rolls a filtered operation set up into report totals.
//
// Punta averages exclude operations where the side is absent or the
// percentage is exactly 0: an unentered punta percentage is "not applicable",
// not a valid zero sample, so it must not dilute the denominator. When no
// operation contributes a sample the average is nil ("no data"), which the
// report screens render distinctly from 0%.
//
// Aggregation reads its inputs and nothing else; calling it twice on the
// same set yields identical results.
func Aggregate(ops []model.Operation, viewer *model.User) model.ReportTotals {
	totals := model.ReportTotals{OperationCount: len(ops)}

	var buyerPercentSum, sellerPercentSum float64
	var buyerPercentN, sellerPercentN int
	exclusiveCount := 0

	for _, op := range ops {
		split := SplitCommission(op)

		totals.TotalValue += op.BaseValue
		totals.TotalGrossBrokerFee += split.BrokerFee
		totals.TotalNetFee += ResolveNetFee(op, viewer)

		if op.BuyerSide {
			totals.BuyerSideCount++
		}
		if op.SellerSide {
			totals.SellerSideCount++
		}
		if p := PercentOrZero(op.BuyerSidePercent); op.BuyerSide && p != 0 {
			buyerPercentSum += p
			buyerPercentN++
		}
		if p := PercentOrZero(op.SellerSidePercent); op.SellerSide && p != 0 {
			sellerPercentSum += p
			sellerPercentN++
		}
		if op.IsExclusive {
			exclusiveCount++
		}
	}

	totals.TotalSides = totals.BuyerSideCount + totals.SellerSideCount

	if buyerPercentN > 0 {
		avg := buyerPercentSum / float64(buyerPercentN)
		totals.AverageBuyerSidePercent = &avg
	}
	if sellerPercentN > 0 {
		avg := sellerPercentSum / float64(sellerPercentN)
		totals.AverageSellerSidePercent = &avg
	}

	if len(ops) > 0 {
		totals.ExclusivityPercent = float64(exclusiveCount) / float64(len(ops)) * 100
	}

	return totals
}

// AdvisorContributions computes each advisor's net fees over the filtered
// set and their share of the combined fee pool, for team reports.
//
// An operation counts toward an advisor when they executed it as primary or
// additional advisor; the net fee per advisor is resolved with that advisor
// as the viewer, so the additional-advisor halving applies per row. When the
// pool is 0 every contribution percentage is nil ("no data") rather than a
// division by zero.
func AdvisorContributions(ops []model.Operation, advisors []model.User) []model.AdvisorContribution {
	contributions := make([]model.AdvisorContribution, len(advisors))

	var pool float64
	for i, advisor := range advisors {
		row := model.AdvisorContribution{
			AdvisorID:   advisor.ID,
			AdvisorName: advisor.Name,
		}
		for _, op := range ops {
			if !op.InvolvesAdvisor(advisor.ID) {
				continue
			}
			row.OperationCount++
			row.NetFee += ResolveNetFee(op, &advisor)
		}
		pool += row.NetFee
		contributions[i] = row
	}

	if pool == 0 {
		return contributions
	}
	for i := range contributions {
		percent := contributions[i].NetFee / pool * 100
		contributions[i].ContributionPercent = &percent
	}
	return contributions
}

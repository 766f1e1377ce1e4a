package service

import (
	"github.com/realtrackapp/BackOffice-Backend/internal/model"
)

// Profit holds the profitability figures for a single operation.
type Profit struct {
	NetProfit            float64 // net fee minus operation-assigned expenses
	ProfitabilityPercent float64 // signed percentage of the base value
}

// ComputeProfit nets the operation's assigned expenses against the viewer's
// net fee.
//
// The profitability percentage is netProfit / baseValue * 100; a zero base
// value degrades to 0 rather than NaN or Infinity. Negative profit is valid
// and returned signed; flagging it is the consuming UI's job.
func ComputeProfit(op model.Operation, viewer *model.User) Profit {
	netProfit := ResolveNetFee(op, viewer) - AmountOrZero(op.AssignedExpenses)

	var profitability float64
	if op.BaseValue != 0 {
		profitability = netProfit / op.BaseValue * 100
	}

	return Profit{
		NetProfit:            netProfit,
		ProfitabilityPercent: profitability,
	}
}

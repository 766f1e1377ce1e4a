package service

import (
	"github.com/realtrackapp/BackOffice-Backend/internal/model"
)

// CommissionSplit holds the two fee figures derived from a single operation.
type CommissionSplit struct {
	BrokerFee  float64 // gross brokerage fee after compartido/referido cuts
	AdvisorFee float64 // advisor's fee, a direct cut of the base value
}

// SplitCommission computes the gross broker fee and the advisor fee for an
// operation.
//
// The broker side starts at baseValue * brokerFeePercent and is reduced by
// the compartido (shared deal) and referido (referral) cuts, each computed
// against the gross broker fee. These cuts are amounts paid out to external
// parties and reduce what the owning brokerage keeps.
//
// The advisor fee is baseValue * advisorFeePercent, computed from the
// original base value, independent of the broker-side deductions. The
// advisor's percentage is a direct cut of the deal, not of the post-deduction
// broker fee.
//
// Missing optional percentages count as 0 and a zero base value yields zero
// fees; the function is total and never fails.
func SplitCommission(op model.Operation) CommissionSplit {
	grossBrokerFee := op.BaseValue * op.BrokerFeePercent / 100

	sharedCut := grossBrokerFee * PercentOrZero(op.SharedWithPercent) / 100
	referralCut := grossBrokerFee * PercentOrZero(op.ReferredPercent) / 100

	return CommissionSplit{
		BrokerFee:  grossBrokerFee - sharedCut - referralCut,
		AdvisorFee: op.BaseValue * op.AdvisorFeePercent / 100,
	}
}

// ResolveNetFee determines the viewer's take-home fee for an operation.
//
// Rules, evaluated in order:
//
//  1. A team leader who personally closed the operation receives the full
//     advisor percentage of the base value, with no netting.
//  2. A viewer listed as the additional advisor receives half of the
//     additional-advisor percentage applied to the base value. The primary
//     and additional advisor split that fee pool evenly; the 50/50 ratio is
//     fixed policy, not configurable.
//  3. Otherwise the viewer receives the advisor fee from SplitCommission,
//     reduced by their franchise/brokerage override percentage when present.
//
// A nil viewer yields 0. The function never fails on missing data.
func ResolveNetFee(op model.Operation, viewer *model.User) float64 {
	if viewer == nil {
		return 0
	}

	if viewer.Role == model.RoleTeamLeaderBroker && op.PrimaryAdvisorID == viewer.ID {
		return op.BaseValue * op.AdvisorFeePercent / 100
	}

	if op.AdditionalAdvisorID != nil && *op.AdditionalAdvisorID == viewer.ID {
		additionalFee := op.BaseValue * PercentOrZero(op.AdditionalAdvisorPercent) / 100
		return additionalFee / 2
	}

	advisorFee := SplitCommission(op).AdvisorFee
	if override := PercentOrZero(viewer.FranchiseOrBrokerPercent); override > 0 {
		advisorFee -= advisorFee * override / 100
	}
	return advisorFee
}

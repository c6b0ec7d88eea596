package compliance

import (
	"math"
	"time"

	"github.com/meridian-ca/meridian/internal/fiscal"
)

// assumedLiability is the average tax liability used for interest
// accrual when the real liability is not yet computed.
const assumedLiability = 10_000.0

// feeStructure fixes the penalty rules for one filing category.
type feeStructure struct {
	DailyFee         float64
	MaxFee           float64 // 0 means uncapped
	FlatFee          float64
	FlatFeeAfterYear float64 // replaces FlatFee past 365 days overdue
	AnnualRate       float64
}

// feeStructures approximates FY2024-25 late-filing penalties. Amounts
// are asserted constants, not derived law.
var feeStructures = map[TaskCategory]feeStructure{
	CategoryGST:   {DailyFee: 50, MaxFee: 5_000, AnnualRate: 0.18},
	CategoryITR:   {FlatFee: 5_000, FlatFeeAfterYear: 10_000, AnnualRate: 0.12},
	CategoryTDS:   {DailyFee: 200, AnnualRate: 0.18},
	CategoryROC:   {DailyFee: 100, MaxFee: 200_000},
	CategoryAudit: {},
}

// PenaltyBreakdown exposes the constants behind a penalty figure.
type PenaltyBreakdown struct {
	LateFeePerDay    float64 `json:"late_fee_per_day"`
	AnnualRatePct    float64 `json:"interest_rate_pa"`
	AssumedLiability float64 `json:"assumed_tax_liability"`
}

// PenaltyResult is the accrued penalty for an overdue obligation.
type PenaltyResult struct {
	Category     TaskCategory     `json:"category"`
	Overdue      bool             `json:"overdue"`
	DaysOverdue  int              `json:"days_overdue"`
	LateFee      float64          `json:"late_fee"`
	Interest     float64          `json:"interest"`
	TotalPenalty float64          `json:"total_penalty"`
	Breakdown    PenaltyBreakdown `json:"penalty_breakdown"`
}

// ComputeLateFee accrues the late fee and interest for an obligation
// overdue as of the supplied reference date. Categories outside the
// table degrade to a zero structure; that default keeps a bad category
// from blocking a deadline sweep.
func ComputeLateFee(category TaskCategory, due, asOf time.Time) PenaltyResult {
	result := PenaltyResult{Category: category}
	if !asOf.After(due) {
		return result
	}
	days := fiscal.DaysBetween(due, asOf)
	structure := feeStructures[category]

	fee := structure.FlatFee
	if structure.FlatFeeAfterYear > 0 && days > 365 {
		fee = structure.FlatFeeAfterYear
	}
	if structure.DailyFee > 0 {
		fee = float64(days) * structure.DailyFee
		if structure.MaxFee > 0 && fee > structure.MaxFee {
			fee = structure.MaxFee
		}
	}
	interest := assumedLiability * structure.AnnualRate * float64(days) / 365

	result.Overdue = true
	result.DaysOverdue = days
	result.LateFee = round2(fee)
	result.Interest = round2(interest)
	result.TotalPenalty = round2(fee + interest)
	result.Breakdown = PenaltyBreakdown{
		LateFeePerDay:    structure.DailyFee,
		AnnualRatePct:    round2(structure.AnnualRate * 100),
		AssumedLiability: assumedLiability,
	}
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

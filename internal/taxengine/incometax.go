package taxengine

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// StandardDeduction applies to both regimes before slab computation.
const StandardDeduction = 50_000.0

// CessRate is the health and education cess on the slab tax.
const CessRate = 0.04

// slab is one half-open marginal bracket [Min, Max).
type slab struct {
	Min  float64
	Max  float64
	Rate float64
}

// Slab tables for FY2024-25. The last bracket is unbounded.
var (
	oldRegimeSlabs = []slab{
		{0, 250_000, 0},
		{250_000, 500_000, 0.05},
		{500_000, 1_000_000, 0.20},
		{1_000_000, math.Inf(1), 0.30},
	}
	newRegimeSlabs = []slab{
		{0, 300_000, 0},
		{300_000, 600_000, 0.05},
		{600_000, 900_000, 0.10},
		{900_000, 1_200_000, 0.15},
		{1_200_000, 1_500_000, 0.20},
		{1_500_000, math.Inf(1), 0.30},
	}
)

// inr formats whole-rupee amounts with Indian digit grouping.
var inr = message.NewPrinter(language.MustParse("en-IN"))

// ComputeIncomeTax runs the full liability computation for one regime.
// Deductions are honoured only under the old regime; the new regime
// ignores any supplied values.
func ComputeIncomeTax(income Income, deductions Deductions, regime Regime) (RegimeResult, error) {
	var slabs []slab
	switch regime {
	case RegimeOld:
		slabs = oldRegimeSlabs
	case RegimeNew:
		slabs = newRegimeSlabs
	default:
		return RegimeResult{}, ErrUnknownRegime
	}

	gross := income.Total()
	var totalDeductions float64
	if regime == RegimeOld {
		totalDeductions = deductions.Total()
	}

	taxable := gross - StandardDeduction - totalDeductions
	if taxable < 0 {
		taxable = 0
	}

	taxOnIncome := taxFromSlabs(taxable, slabs)
	cess := taxOnIncome * CessRate
	total := math.Round(taxOnIncome + cess)

	result := RegimeResult{
		Regime:            regime,
		GrossTotalIncome:  gross,
		StandardDeduction: StandardDeduction,
		TotalDeductions:   totalDeductions,
		TaxableIncome:     taxable,
		TaxOnIncome:       round2(taxOnIncome),
		Cess:              round2(cess),
		TotalTaxLiability: total,
		Breakdown:         slabBreakdown(taxable, slabs),
	}
	if gross > 0 {
		result.EffectiveRatePct = round2(total / gross * 100)
	}
	return result, nil
}

// CompareRegimes computes both regimes over the same income and
// recommends the cheaper one. A tie recommends the new regime, which
// carries no deduction paperwork.
func CompareRegimes(income Income, deductions Deductions) (RegimeComparison, error) {
	oldRes, err := ComputeIncomeTax(income, deductions, RegimeOld)
	if err != nil {
		return RegimeComparison{}, err
	}
	newRes, err := ComputeIncomeTax(income, deductions, RegimeNew)
	if err != nil {
		return RegimeComparison{}, err
	}

	cmp := RegimeComparison{Old: oldRes, New: newRes}
	oldTax, newTax := oldRes.TotalTaxLiability, newRes.TotalTaxLiability
	cmp.Savings = math.Abs(oldTax - newTax)
	if higher := math.Max(oldTax, newTax); higher > 0 {
		cmp.SavingsPct = round2(cmp.Savings / higher * 100)
	}

	switch {
	case newTax < oldTax:
		cmp.Recommended = RegimeNew
		cmp.Reason = inr.Sprintf("New regime saves ₹%.0f. Lower tax rates compensate for loss of deductions.", cmp.Savings)
	case oldTax < newTax:
		cmp.Recommended = RegimeOld
		cmp.Reason = inr.Sprintf("Old regime saves ₹%.0f. Your deductions (₹%.0f) provide significant benefit.", cmp.Savings, deductions.Total())
	default:
		cmp.Recommended = RegimeNew
		cmp.Reason = "Both regimes produce the same liability; the new regime avoids deduction paperwork."
	}
	return cmp, nil
}

// taxFromSlabs walks the marginal brackets, taxing the portion of
// income falling inside each.
func taxFromSlabs(income float64, slabs []slab) float64 {
	var tax float64
	for _, s := range slabs {
		if income <= s.Min {
			continue
		}
		tax += (math.Min(income, s.Max) - s.Min) * s.Rate
	}
	return tax
}

// slabBreakdown renders the per-bracket rows for brackets actually
// reached. Taxed amounts across rows sum to the taxable income and
// row taxes sum to the pre-cess tax.
func slabBreakdown(income float64, slabs []slab) []SlabLine {
	lines := make([]SlabLine, 0, len(slabs))
	for _, s := range slabs {
		if income <= s.Min {
			continue
		}
		amount := math.Min(income, s.Max) - s.Min
		if amount <= 0 {
			continue
		}
		lines = append(lines, SlabLine{
			Range:         slabRange(s),
			RatePct:       s.Rate * 100,
			TaxableAmount: round2(amount),
			Tax:           round2(amount * s.Rate),
		})
	}
	return lines
}

func slabRange(s slab) string {
	if math.IsInf(s.Max, 1) {
		return inr.Sprintf("₹%.0f and above", s.Min)
	}
	return inr.Sprintf("₹%.0f - ₹%.0f", s.Min, s.Max)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ParseRegime rejects regime ids outside old/new at the boundary,
// before computation.
func ParseRegime(s string) (Regime, error) {
	switch Regime(s) {
	case RegimeOld:
		return RegimeOld, nil
	case RegimeNew:
		return RegimeNew, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRegime, s)
	}
}

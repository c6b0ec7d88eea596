package taxengine

import "math"

// Holding-period boundaries in days. Classification is strictly
// greater-than: an equity asset held exactly 365 days is short term.
const (
	equityLongTermDays   = 365
	propertyLongTermDays = 730
	otherLongTermDays    = 1095
)

// LTCGEquityExemption is the long-term equity gain exempt from tax.
const LTCGEquityExemption = 100_000.0

// Capital-gains tax rates.
const (
	ltcgEquityRate   = 0.10
	ltcgFlatRate     = 0.20
	stcgEquityRate   = 0.15
)

// ComputeCapitalGains classifies a disposal as short or long term and
// computes the tax. Short-term non-equity gains are taxed at zero here
// because the caller folds them into ordinary income.
func ComputeCapitalGains(in Disposal) (CapitalGainResult, error) {
	days := in.HoldingDays
	if in.PurchaseDate != nil && in.SaleDate != nil {
		days = int(in.SaleDate.Sub(*in.PurchaseDate).Hours() / 24)
	}
	if days < 0 {
		return CapitalGainResult{}, ErrNegativeHolding
	}

	var longTerm bool
	switch in.AssetClass {
	case GainEquity:
		longTerm = days > equityLongTermDays
	case GainProperty:
		longTerm = days > propertyLongTermDays
	default:
		longTerm = days > otherLongTermDays
	}

	basis := in.PurchasePrice
	if longTerm && in.AssetClass == GainProperty && in.CIIPurchase > 0 && in.CIISale > 0 {
		basis = in.PurchasePrice * (in.CIISale / in.CIIPurchase)
	}
	gain := in.SalePrice - basis

	var tax float64
	switch {
	case longTerm && in.AssetClass == GainEquity:
		tax = math.Max(0, gain-LTCGEquityExemption) * ltcgEquityRate
	case longTerm:
		tax = gain * ltcgFlatRate
	case in.AssetClass == GainEquity:
		tax = gain * stcgEquityRate
	default:
		tax = 0
	}

	term := "Short-term"
	if longTerm {
		term = "Long-term"
	}
	return CapitalGainResult{
		AssetClass:  in.AssetClass,
		HoldingDays: days,
		LongTerm:    longTerm,
		Term:        term,
		IndexedCost: round2(basis),
		Gain:        round2(gain),
		Tax:         round2(tax),
	}, nil
}

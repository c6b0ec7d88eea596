package taxengine

// tdsRates maps payment categories to withholding rates. Salary is
// withheld at slab rates by the employer, so it carries no flat rate
// here.
var tdsRates = map[PaymentCategory]float64{
	PaySalary:          0,
	PayProfessionalFee: 0.10,
	PayContract:        0.02,
	PayContractCompany: 0.01,
	PayRent:            0.10,
	PayCommission:      0.05,
	PayInterest:        0.10,
	PayDividend:        0.10,
}

// tdsThresholds fixes the per-category annual threshold below which no
// withholding applies. Categories absent here have a zero threshold.
var tdsThresholds = map[PaymentCategory]float64{
	PayProfessionalFee: 30_000,
	PayRent:            240_000,
	PayCommission:      15_000,
	PayInterest:        40_000,
}

// defaultTDSRate applies to categories outside the table.
const defaultTDSRate = 0.10

// ComputeTDS determines the withholding on a single payment. The
// withheld amount is zero below the category threshold.
func ComputeTDS(category PaymentCategory, amount float64) TDSResult {
	rate, ok := tdsRates[category]
	if !ok {
		rate = defaultTDSRate
	}
	threshold := tdsThresholds[category]
	applicable := amount >= threshold

	var withheld float64
	if applicable {
		withheld = round2(amount * rate)
	}
	return TDSResult{
		Category:   category,
		Amount:     amount,
		RatePct:    rate * 100,
		Threshold:  threshold,
		Applicable: applicable,
		TDSAmount:  withheld,
		NetPayable: round2(amount - withheld),
	}
}

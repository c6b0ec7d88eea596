package taxengine

import "math"

// ComputeGST nets output tax on sales against input credit on
// purchases for a filing period. The net liability splits evenly into
// the two intra-state components.
func ComputeGST(transactions []GSTTransaction) GSTNetResult {
	var output, input float64
	for _, txn := range transactions {
		tax := txn.Amount * txn.Rate
		if txn.Direction == TxnSale {
			output += tax
		} else {
			input += tax
		}
	}
	net := output - input

	result := GSTNetResult{
		OutputGST:      round2(output),
		InputTaxCredit: round2(input),
		NetLiability:   round2(net),
		CGST:           round2(net / 2),
		SGST:           round2(net / 2),
	}
	switch {
	case net > 0:
		result.PaymentRequired = true
	case net < 0:
		result.RefundDue = true
		result.RefundAmount = round2(math.Abs(net))
	}
	return result
}

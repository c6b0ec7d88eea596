// Package billing computes practice invoice totals. Amounts use
// decimal arithmetic so line extensions and GST splits stay exact at
// two places.
package billing

import "github.com/shopspring/decimal"

var two = decimal.NewFromInt(2)

// Line is one billable service on a practice invoice.
type Line struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	GSTRate     decimal.Decimal `json:"gst_rate"`
}

// LineTotal is the computed extension of a line, intra-state GST split
// included.
type LineTotal struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceTotal aggregates an invoice computation.
type InvoiceTotal struct {
	Lines      []LineTotal     `json:"lines"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalCGST  decimal.Decimal `json:"total_cgst"`
	TotalSGST  decimal.Decimal `json:"total_sgst"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// ComputeInvoice extends each line, splits GST into the two
// intra-state halves, and totals the invoice. All returned amounts are
// rounded to two places; line order mirrors the input.
func ComputeInvoice(lines []Line) InvoiceTotal {
	result := InvoiceTotal{Lines: make([]LineTotal, 0, len(lines))}
	subtotal := decimal.Zero
	cgst := decimal.Zero
	sgst := decimal.Zero

	for _, line := range lines {
		amount := line.Quantity.Mul(line.UnitPrice).Round(2)
		gst := amount.Mul(line.GSTRate)
		half := gst.Div(two).Round(2)
		total := amount.Add(half).Add(half)

		result.Lines = append(result.Lines, LineTotal{
			Description: line.Description,
			Amount:      amount,
			CGST:        half,
			SGST:        half,
			Total:       total,
		})
		subtotal = subtotal.Add(amount)
		cgst = cgst.Add(half)
		sgst = sgst.Add(half)
	}

	result.Subtotal = subtotal
	result.TotalCGST = cgst
	result.TotalSGST = sgst
	result.GrandTotal = subtotal.Add(cgst).Add(sgst)
	return result
}

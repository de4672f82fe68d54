package restaurant

import "math"

// TaxRate applied to every bill subtotal.
const TaxRate = 0.10

// BillTotals holds the derived money fields of a bill, each rounded to
// two decimals.
type BillTotals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// ComputeBillTotals derives subtotal, tax and total from order items.
// All three values are rounded half-up at the cent boundary, so the
// same items always produce the same totals.
func ComputeBillTotals(items []OrderItem) BillTotals {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}

	subtotal = roundCents(subtotal)
	tax := roundCents(subtotal * TaxRate)
	total := roundCents(subtotal + tax)

	return BillTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
	}
}

// roundCents rounds half-up at two decimal places.
func roundCents(value float64) float64 {
	return math.Floor(value*100+0.5) / 100
}

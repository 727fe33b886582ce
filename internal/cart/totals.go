package cart

import "github.com/shopspring/decimal"

// Totals are the derived cart fields.
type Totals struct {
	Quantity int
	Price    string
}

// ComputeTotals derives totals from the lines alone, using each line's
// unit price snapshot rather than a live catalog lookup.
//
// A line whose snapshot does not parse as a non-negative decimal still
// counts toward the quantity but contributes nothing to the price; the
// ids of such lines are returned so callers can surface the data-quality
// condition instead of blanking the whole total.
func ComputeTotals(lines []Line) (Totals, []string) {
	sum := decimal.Zero
	quantity := 0
	var invalid []string

	for _, ln := range lines {
		quantity += ln.Quantity

		price, err := decimal.NewFromString(ln.UnitPrice)
		if err != nil || price.IsNegative() {
			invalid = append(invalid, ln.ProductID)
			continue
		}
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(ln.Quantity))))
	}

	return Totals{Quantity: quantity, Price: sum.StringFixed(2)}, invalid
}

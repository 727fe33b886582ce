package cart

// Reduce maps (cart, action) to the next cart. Pure and total: neither
// argument is mutated, well-formed input never panics, and an action
// that finds nothing to do returns the cart unchanged.
//
// Totals are recomputed from the resulting lines on every call. Cached
// totals on the incoming cart are never trusted, so a missed incremental
// update cannot make them drift from the lines.
func Reduce(c Cart, action Action) Cart {
	var next Cart

	switch a := action.(type) {
	case AddItem:
		next = reduceAdd(c, a)
	case UpdateItem:
		next = reduceUpdate(c, a)
	case ClearCart:
		return Empty()
	default:
		return c
	}

	totals, _ := ComputeTotals(next.Lines)
	next.TotalQuantity = totals.Quantity
	next.TotalPrice = totals.Price
	return next
}

func reduceAdd(c Cart, a AddItem) Cart {
	next := c.Clone()

	for i := range next.Lines {
		ln := &next.Lines[i]
		if ln.ProductID == a.ProductID && ln.Variant.Matches(a.Variant) {
			// Existing line: only the quantity grows. The unit price
			// snapshot and the stored selector stay as captured at the
			// first add.
			ln.Quantity += a.Quantity
			return next
		}
	}

	next.Lines = append(next.Lines, Line{
		ProductID: a.ProductID,
		Quantity:  a.Quantity,
		Variant:   a.Variant,
		UnitPrice: a.UnitPrice,
	})
	return next
}

func reduceUpdate(c Cart, a UpdateItem) Cart {
	idx := -1
	for i := range c.Lines {
		if c.Lines[i].ProductID == a.ProductID && c.Lines[i].Variant.Matches(a.Variant) {
			idx = i
			break
		}
	}
	if idx == -1 {
		// No matching line is a no-op, not an error.
		return c
	}

	next := c.Clone()
	ln := &next.Lines[idx]

	switch a.Kind {
	case Increment:
		ln.Quantity++
	case Decrement:
		ln.Quantity--
	case Remove:
		ln.Quantity = 0
	}

	if ln.Quantity <= 0 {
		next.Lines = append(next.Lines[:idx], next.Lines[idx+1:]...)
	}
	return next
}

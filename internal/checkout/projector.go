package checkout

import (
	"strconv"
	"strings"

	"github.com/crlapples/commerce/internal/cart"
	"github.com/crlapples/commerce/internal/catalog"

	"github.com/shopspring/decimal"
)

// ProductLookup is the slice of the catalog the projection needs.
type ProductLookup interface {
	FindByID(id string) (*catalog.Product, error)
}

// BuildOrder projects a cart into the gateway's line-item shape.
//
// Line prices come from the per-line snapshots, the same numbers the
// cart total was derived from. Lines with unparseable snapshots are
// left out of the projection exactly as the Totals Calculator leaves
// them out of the total, so the cross-check below stays consistent.
// A mismatch between the recomputed item total and the cart's total is
// surfaced as ErrTotalMismatch: the gateway would reject it anyway, and
// the cart must survive for a retry.
func BuildOrder(c cart.Cart, products ProductLookup) (*OrderRequest, error) {
	if len(c.Lines) == 0 {
		return nil, ErrCartEmpty
	}

	items := make([]LineItem, 0, len(c.Lines))
	sum := decimal.Zero

	for _, ln := range c.Lines {
		price, err := decimal.NewFromString(ln.UnitPrice)
		if err != nil || price.IsNegative() {
			continue
		}
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(ln.Quantity))))

		item := LineItem{
			Name:       ln.ProductID,
			SKU:        ln.ProductID,
			UnitAmount: UnitAmount{CurrencyCode: CurrencyCode, Value: price.StringFixed(2)},
			Quantity:   strconv.Itoa(ln.Quantity),
			CustomID:   variantCustomID(ln.Variant),
		}
		if p, err := products.FindByID(ln.ProductID); err == nil {
			item.Name = p.Name
			if p.Description != nil {
				item.Description = *p.Description
			}
		}
		items = append(items, item)
	}

	if total := sum.StringFixed(2); total != c.TotalPrice {
		return nil, ErrTotalMismatch
	}

	return &OrderRequest{Items: items, Total: c.TotalPrice}, nil
}

// variantCustomID encodes the selector so the purchased variant is
// readable on the gateway's side.
func variantCustomID(v cart.VariantSelector) string {
	parts := make([]string, 0, 2)
	if v.Color != "" {
		parts = append(parts, "color:"+v.Color)
	}
	if v.Size != "" {
		parts = append(parts, "size:"+v.Size)
	}
	return strings.Join(parts, "|")
}

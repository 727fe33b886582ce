package cart

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Persisted record layout. Kept separate from the in-memory model so the
// storage schema can stay loose (optional variant object, price as a
// JSON number) while loads are validated strictly.

type persistedVariant struct {
	Color *string `json:"color,omitempty"`
	Size  *string `json:"size,omitempty"`
	Image *string `json:"image,omitempty"`
}

type persistedLine struct {
	ProductID string            `json:"productId"`
	Quantity  int               `json:"quantity"`
	Variant   *persistedVariant `json:"variant,omitempty"`
	Price     json.Number       `json:"price,omitempty"`
}

type persistedCart struct {
	ID            *string         `json:"id,omitempty"`
	Items         []persistedLine `json:"items"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalPrice    string          `json:"totalPrice"`
}

// MarshalCart serializes a cart into its persisted JSON form.
func MarshalCart(c Cart) ([]byte, error) {
	pc := persistedCart{
		Items:         make([]persistedLine, 0, len(c.Lines)),
		TotalQuantity: c.TotalQuantity,
		TotalPrice:    c.TotalPrice,
	}
	if c.ID != "" {
		id := c.ID
		pc.ID = &id
	}

	for _, ln := range c.Lines {
		pl := persistedLine{ProductID: ln.ProductID, Quantity: ln.Quantity}

		if !ln.Variant.IsZero() || ln.Variant.Image != "" {
			pv := &persistedVariant{}
			if ln.Variant.Color != "" {
				pv.Color = strPtr(ln.Variant.Color)
			}
			if ln.Variant.Size != "" {
				pv.Size = strPtr(ln.Variant.Size)
			}
			if ln.Variant.Image != "" {
				pv.Image = strPtr(ln.Variant.Image)
			}
			pl.Variant = pv
		}

		// Only a parseable snapshot can be written as a JSON number; an
		// unparseable one is dropped and resurfaces as a flagged line on
		// the next load.
		if _, err := decimal.NewFromString(ln.UnitPrice); err == nil {
			pl.Price = json.Number(ln.UnitPrice)
		}

		pc.Items = append(pc.Items, pl)
	}

	return json.Marshal(pc)
}

// UnmarshalCart deserializes and validates a persisted payload. Any
// schema violation returns ErrMalformedPayload so the store can discard
// the record and start the session from empty.
func UnmarshalCart(raw []byte) (Cart, error) {
	var pc persistedCart
	if err := json.Unmarshal(raw, &pc); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if pc.Items == nil {
		return Cart{}, fmt.Errorf("%w: missing items", ErrMalformedPayload)
	}

	c := Empty()
	if pc.ID != nil {
		c.ID = *pc.ID
	}

	for _, pl := range pc.Items {
		if pl.ProductID == "" {
			return Cart{}, fmt.Errorf("%w: line without productId", ErrMalformedPayload)
		}
		if pl.Quantity < 1 {
			return Cart{}, fmt.Errorf("%w: line quantity %d", ErrMalformedPayload, pl.Quantity)
		}

		ln := Line{
			ProductID: pl.ProductID,
			Quantity:  pl.Quantity,
			UnitPrice: pl.Price.String(),
		}
		if pl.Variant != nil {
			// Absent fields normalize to empty strings; both mean the
			// axis is not applicable.
			ln.Variant = VariantSelector{
				Color: deref(pl.Variant.Color),
				Size:  deref(pl.Variant.Size),
				Image: deref(pl.Variant.Image),
			}
		}
		c.Lines = append(c.Lines, ln)
	}

	// Stored totals are advisory; the lines are authoritative.
	totals, _ := ComputeTotals(c.Lines)
	c.TotalQuantity = totals.Quantity
	c.TotalPrice = totals.Price
	return c, nil
}

func strPtr(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

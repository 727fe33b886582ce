package catalog

// VariantAxes declares the option axes a product can be purchased in.
// A nil axes block means the product has exactly one purchasable form.
type VariantAxes struct {
	Colors []string `json:"colors,omitempty"`
	Sizes  []string `json:"sizes,omitempty"`
}

// Product is an immutable catalog record. The cart engine references
// products but never mutates them.
type Product struct {
	ID          string       `json:"id"`
	Collection  string       `json:"collection,omitempty"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Price       string       `json:"price"`
	Images      []string     `json:"images"`
	Variant     *VariantAxes `json:"variant,omitempty"`
}

// HasVariants reports whether the product declares at least one option axis.
func (p *Product) HasVariants() bool {
	return p.Variant != nil && (len(p.Variant.Colors) > 0 || len(p.Variant.Sizes) > 0)
}

package catalog

// PlaceholderImage is served when a product declares no images at all.
const PlaceholderImage = "/images/placeholder.png"

// Selection is one resolved point in a product's variant axes. Empty
// fields mean the axis does not apply to the product.
type Selection struct {
	Color string
	Size  string
	Image string
}

// DefaultSelection resolves the variant a product page starts on: the
// first declared color crossed with the first declared size, or the
// axis-less selection for products without variants.
func DefaultSelection(p *Product) Selection {
	sel := Selection{}
	if p.Variant != nil {
		if len(p.Variant.Colors) > 0 {
			sel.Color = p.Variant.Colors[0]
		}
		if len(p.Variant.Sizes) > 0 {
			sel.Size = p.Variant.Sizes[0]
		}
	}
	sel.Image = ImageFor(p, sel.Color)
	return sel
}

// ImageFor picks the representative image for a color choice. The image
// index mirrors the color's position in the declared color list, clamped
// to the images the product actually has.
func ImageFor(p *Product, color string) string {
	if len(p.Images) == 0 {
		return PlaceholderImage
	}

	idx := 0
	if color != "" && p.Variant != nil {
		for i, c := range p.Variant.Colors {
			if c == color {
				idx = i
				break
			}
		}
	}
	if idx >= len(p.Images) {
		idx = len(p.Images) - 1
	}
	return p.Images[idx]
}

// UnitPrice returns the catalog price for a product id. Satisfies the
// cart session's price lookup dependency.
func (p *Provider) UnitPrice(productID string) (string, error) {
	prod, err := p.FindByID(productID)
	if err != nil {
		return "", err
	}
	return prod.Price, nil
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func axesProduct() *Product {
	return &Product{
		ID:     "classic-tee",
		Name:   "Classic Tee",
		Price:  "24.99",
		Images: []string{"/black.jpg", "/white.jpg", "/navy.jpg"},
		Variant: &VariantAxes{
			Colors: []string{"black", "white", "navy"},
			Sizes:  []string{"S", "M", "L"},
		},
	}
}

func TestDefaultSelection(t *testing.T) {
	t.Run("FirstColorCrossFirstSize", func(t *testing.T) {
		sel := DefaultSelection(axesProduct())
		assert.Equal(t, "black", sel.Color)
		assert.Equal(t, "S", sel.Size)
		assert.Equal(t, "/black.jpg", sel.Image)
	})

	t.Run("ColorsOnly", func(t *testing.T) {
		p := axesProduct()
		p.Variant.Sizes = nil

		sel := DefaultSelection(p)
		assert.Equal(t, "black", sel.Color)
		assert.Empty(t, sel.Size)
	})

	t.Run("NoAxesYieldsAxislessDefault", func(t *testing.T) {
		p := &Product{ID: "canvas-tote", Price: "18.50", Images: []string{"/tote.jpg"}}

		sel := DefaultSelection(p)
		assert.Empty(t, sel.Color)
		assert.Empty(t, sel.Size)
		assert.Equal(t, "/tote.jpg", sel.Image)
	})
}

func TestImageFor(t *testing.T) {
	t.Run("ColorPositionSelectsImage", func(t *testing.T) {
		p := axesProduct()
		assert.Equal(t, "/white.jpg", ImageFor(p, "white"))
		assert.Equal(t, "/navy.jpg", ImageFor(p, "navy"))
	})

	t.Run("IndexClampedToImageBounds", func(t *testing.T) {
		p := axesProduct()
		p.Images = p.Images[:2]

		assert.Equal(t, "/white.jpg", ImageFor(p, "navy"))
	})

	t.Run("UnknownColorFallsBackToFirstImage", func(t *testing.T) {
		assert.Equal(t, "/black.jpg", ImageFor(axesProduct(), "chartreuse"))
	})

	t.Run("NoImagesFallsBackToPlaceholder", func(t *testing.T) {
		p := axesProduct()
		p.Images = nil

		assert.Equal(t, PlaceholderImage, ImageFor(p, "black"))
	})
}

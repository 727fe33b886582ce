package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	t.Run("SumsQuantityTimesUnitPrice", func(t *testing.T) {
		totals, invalid := ComputeTotals([]Line{
			{ProductID: "p1", Quantity: 2, UnitPrice: "9.99"},
			{ProductID: "p2", Quantity: 1, UnitPrice: "5.00"},
		})

		assert.Equal(t, 3, totals.Quantity)
		assert.Equal(t, "24.98", totals.Price)
		assert.Empty(t, invalid)
	})

	t.Run("EmptyLines", func(t *testing.T) {
		totals, invalid := ComputeTotals(nil)
		assert.Equal(t, 0, totals.Quantity)
		assert.Equal(t, "0.00", totals.Price)
		assert.Empty(t, invalid)
	})

	t.Run("UnparseablePriceExcludedButLineRetained", func(t *testing.T) {
		totals, invalid := ComputeTotals([]Line{
			{ProductID: "p1", Quantity: 2, UnitPrice: "9.99"},
			{ProductID: "bad", Quantity: 3, UnitPrice: "not-a-price"},
		})

		// The bad line still counts toward quantity; only its price
		// contribution is dropped, and the condition is flagged.
		assert.Equal(t, 5, totals.Quantity)
		assert.Equal(t, "19.98", totals.Price)
		assert.Equal(t, []string{"bad"}, invalid)
	})

	t.Run("NegativePriceFlagged", func(t *testing.T) {
		totals, invalid := ComputeTotals([]Line{
			{ProductID: "p1", Quantity: 1, UnitPrice: "-3.00"},
		})

		assert.Equal(t, "0.00", totals.Price)
		assert.Equal(t, []string{"p1"}, invalid)
	})

	t.Run("FormatsToExactlyTwoDecimals", func(t *testing.T) {
		totals, _ := ComputeTotals([]Line{
			{ProductID: "p1", Quantity: 1, UnitPrice: "12"},
			{ProductID: "p2", Quantity: 1, UnitPrice: "0.5"},
		})
		assert.Equal(t, "12.50", totals.Price)
	})

	t.Run("StandardRounding", func(t *testing.T) {
		totals, _ := ComputeTotals([]Line{
			{ProductID: "p1", Quantity: 3, UnitPrice: "6.665"},
		})
		assert.Equal(t, "20.00", totals.Price)
	})
}

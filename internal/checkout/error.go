package checkout

import "errors"

var (
	// -- Projection --
	ErrCartEmpty     = errors.New("cart has no lines to check out")
	ErrTotalMismatch = errors.New("projected item total does not match cart total")

	// -- Gateway --
	ErrMissingOrderID = errors.New("order id is required")
)

package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInvalidUpdateKind = errors.New("unknown cart update kind")

	// -- Persisted State --
	ErrMalformedPayload = errors.New("persisted cart payload is malformed")

	// -- Session Lifecycle --
	ErrSessionClosed = errors.New("cart session is closed")
)

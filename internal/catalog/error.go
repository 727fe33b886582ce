package catalog

import "errors"

var (
	// -- Loading --
	ErrEmptyCatalog   = errors.New("catalog contains no products")
	ErrInvalidCatalog = errors.New("catalog file is not valid JSON")

	// -- Lookup --
	ErrProductNotFound = errors.New("product not found")
)

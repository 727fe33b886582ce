package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/crlapples/commerce/internal/logger"

	"go.uber.org/zap"
)

// Provider exposes the read-only product list. Loaded once per process;
// the slice order is the display order and is never reordered.
type Provider struct {
	products []Product
	byID     map[string]*Product
}

// NewProvider reads the catalog JSON file at path.
func NewProvider(path string) (*Provider, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	p, err := NewProviderFromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}

	logger.L().Info("catalog loaded",
		zap.String("path", path),
		zap.Int("products", len(p.products)),
	)
	return p, nil
}

// NewProviderFromBytes builds a provider from raw catalog JSON.
func NewProviderFromBytes(raw []byte) (*Provider, error) {
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(products) == 0 {
		return nil, ErrEmptyCatalog
	}

	byID := make(map[string]*Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	return &Provider{products: products, byID: byID}, nil
}

// List returns all products in catalog order.
func (p *Provider) List() []Product {
	return p.products
}

// FindByID returns the product with the given id.
func (p *Provider) FindByID(id string) (*Product, error) {
	prod, ok := p.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return prod, nil
}

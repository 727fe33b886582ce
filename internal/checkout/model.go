package checkout

// CurrencyCode for the storefront. The catalog carries a single
// currency; conversion is out of scope.
const CurrencyCode = "USD"

type UnitAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// LineItem is the gateway's view of one cart line.
type LineItem struct {
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	SKU         string     `json:"sku,omitempty"`
	UnitAmount  UnitAmount `json:"unit_amount"`
	Quantity    string     `json:"quantity"`
	CustomID    string     `json:"custom_id,omitempty"`
}

// OrderRequest is the cart→line-items projection sent at checkout. The
// gateway validates that Total equals the sum of the items string for
// string, so the projection cross-checks it first.
type OrderRequest struct {
	Items []LineItem
	Total string
}

// Order is the gateway's handle for an authorized-but-uncaptured order.
type Order struct {
	ID     string
	Status string
}

// CaptureResult is the outcome of exchanging an order id for funds.
// The cart may be cleared only when Completed is true.
type CaptureResult struct {
	OrderID   string
	CaptureID string
	Status    string
	Completed bool
}

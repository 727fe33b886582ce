package cart

// VariantSelector identifies one point in a product's variant axes.
// An empty field means the axis does not apply; an absent axis and an
// explicitly empty one are the same identity. Image is display payload
// carried along with the line and never part of identity.
type VariantSelector struct {
	Color string `json:"color,omitempty"`
	Size  string `json:"size,omitempty"`
	Image string `json:"image,omitempty"`
}

// Matches reports whether two selectors name the same variant. Only the
// option axes participate; Image is ignored.
func (v VariantSelector) Matches(other VariantSelector) bool {
	return v.Color == other.Color && v.Size == other.Size
}

// IsZero reports whether no axis is selected.
func (v VariantSelector) IsZero() bool {
	return v.Color == "" && v.Size == ""
}

// Line is one cart entry: a product+variant combination, its quantity
// and the unit price snapshot captured when the line was created.
type Line struct {
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Variant   VariantSelector `json:"variant"`
	UnitPrice string          `json:"price"`
}

// Cart is the complete cart state. Lines keep insertion order, which is
// the display order. Totals are derived: they are recomputed from the
// lines after every reduction and never patched incrementally.
type Cart struct {
	ID            string `json:"id,omitempty"`
	Lines         []Line `json:"items"`
	TotalQuantity int    `json:"totalQuantity"`
	TotalPrice    string `json:"totalPrice"`
}

// Empty returns a fresh cart with no lines.
func Empty() Cart {
	return Cart{Lines: []Line{}, TotalQuantity: 0, TotalPrice: "0.00"}
}

// Clone returns a deep copy; callers can hold it without racing the
// session's in-memory state.
func (c Cart) Clone() Cart {
	out := c
	out.Lines = make([]Line, len(c.Lines))
	copy(out.Lines, c.Lines)
	return out
}

// UpdateKind names the three single-line update operations.
type UpdateKind string

const (
	Increment UpdateKind = "plus"
	Decrement UpdateKind = "minus"
	Remove    UpdateKind = "delete"
)

// Action is a cart mutation understood by Reduce.
type Action interface {
	isAction()
}

// AddItem merges quantity into the line matching (ProductID, Variant),
// or appends a new line carrying the resolved unit price.
type AddItem struct {
	ProductID string
	Quantity  int
	UnitPrice string
	Variant   VariantSelector
}

// UpdateItem adjusts or removes the line matching (ProductID, Variant).
type UpdateItem struct {
	ProductID string
	Kind      UpdateKind
	Variant   VariantSelector
}

// ClearCart discards all lines.
type ClearCart struct{}

func (AddItem) isAction()    {}
func (UpdateItem) isAction() {}
func (ClearCart) isAction()  {}

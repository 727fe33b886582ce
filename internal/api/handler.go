package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crlapples/commerce/internal/cart"
	"github.com/crlapples/commerce/internal/catalog"
	"github.com/crlapples/commerce/internal/checkout"
	"github.com/crlapples/commerce/internal/logger"
	"github.com/crlapples/commerce/internal/scope"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler is the storefront's JSON surface. It plays the UI-layer role
// from the cart engine's point of view: it consults the catalog and the
// variant resolver before handing already-resolved descriptors to the
// session.
type Handler struct {
	catalog  *catalog.Provider
	sessions *cart.Manager
	gateway  checkout.Gateway
}

func NewHandler(provider *catalog.Provider, sessions *cart.Manager, gateway checkout.Gateway) *Handler {
	return &Handler{catalog: provider, sessions: sessions, gateway: gateway}
}

func (h *Handler) session(r *http.Request) *cart.Session {
	return h.sessions.Session(r.Context(), scope.IDFrom(r.Context()))
}

// ----------------- Request / response shapes -----------------

type variantInput struct {
	Color string `json:"color"`
	Size  string `json:"size"`
	Image string `json:"image"`
}

type addItemRequest struct {
	ProductID string        `json:"productId"`
	Quantity  int           `json:"quantity"`
	Variant   *variantInput `json:"variant"`
}

type updateItemRequest struct {
	ProductID  string        `json:"productId"`
	UpdateType string        `json:"updateType"`
	Variant    *variantInput `json:"variant"`
}

type captureRequest struct {
	OrderID string `json:"orderID"`
}

type cartResponse struct {
	cart.Cart
	IsOpen bool `json:"isOpen"`
}

func (h *Handler) respondCart(w http.ResponseWriter, s *cart.Session, c cart.Cart) {
	writeJSON(w, http.StatusOK, cartResponse{Cart: c, IsOpen: s.IsOpen()})
}

// ----------------- Catalog -----------------

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.List())
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.FindByID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSONError(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// ----------------- Cart -----------------

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	h.respondCart(w, s, s.Cart())
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Quantity < 1 {
		writeJSONError(w, cart.ErrInvalidQuantity.Error(), http.StatusBadRequest)
		return
	}

	product, err := h.catalog.FindByID(req.ProductID)
	if err != nil {
		writeJSONError(w, "product not found", http.StatusNotFound)
		return
	}

	selector := h.resolveSelector(product, req.Variant)

	s := h.session(r)
	next, err := s.AddItem(r.Context(), req.ProductID, req.Quantity, selector)
	if err != nil {
		logger.FromCtx(r.Context()).Error("add to cart failed", zap.Error(err))
		writeJSONError(w, "failed to add item", http.StatusInternalServerError)
		return
	}
	h.respondCart(w, s, next)
}

// resolveSelector turns the client's (possibly partial) variant choice
// into a fully resolved descriptor, so the cart engine never consults
// the catalog itself.
func (h *Handler) resolveSelector(product *catalog.Product, v *variantInput) cart.VariantSelector {
	if v == nil {
		if !product.HasVariants() {
			return cart.VariantSelector{}
		}
		def := catalog.DefaultSelection(product)
		return cart.VariantSelector{Color: def.Color, Size: def.Size, Image: def.Image}
	}

	selector := cart.VariantSelector{Color: v.Color, Size: v.Size, Image: v.Image}
	if selector.Image == "" {
		selector.Image = catalog.ImageFor(product, selector.Color)
	}
	return selector
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	kind := cart.UpdateKind(req.UpdateType)
	switch kind {
	case cart.Increment, cart.Decrement, cart.Remove:
	default:
		writeJSONError(w, cart.ErrInvalidUpdateKind.Error(), http.StatusBadRequest)
		return
	}

	var selector cart.VariantSelector
	if req.Variant != nil {
		selector = cart.VariantSelector{Color: req.Variant.Color, Size: req.Variant.Size, Image: req.Variant.Image}
	}

	s := h.session(r)
	next, err := s.UpdateItem(r.Context(), req.ProductID, kind, selector)
	if err != nil {
		logger.FromCtx(r.Context()).Error("cart update failed", zap.Error(err))
		writeJSONError(w, "failed to update item", http.StatusInternalServerError)
		return
	}
	h.respondCart(w, s, next)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	next, err := s.Clear(r.Context())
	if err != nil {
		logger.FromCtx(r.Context()).Error("cart clear failed", zap.Error(err))
		writeJSONError(w, "failed to clear cart", http.StatusInternalServerError)
		return
	}
	h.respondCart(w, s, next)
}

func (h *Handler) OpenCart(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	s.Open()
	h.respondCart(w, s, s.Cart())
}

func (h *Handler) CloseCart(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)
	s.Close()
	h.respondCart(w, s, s.Cart())
}

// ----------------- Checkout -----------------

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	s := h.session(r)

	orderReq, err := checkout.BuildOrder(s.Cart(), h.catalog)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrCartEmpty):
			writeJSONError(w, "cart is empty", http.StatusBadRequest)
		case errors.Is(err, checkout.ErrTotalMismatch):
			writeJSONError(w, "cart total mismatch", http.StatusUnprocessableEntity)
		default:
			writeJSONError(w, "failed to build order", http.StatusInternalServerError)
		}
		return
	}

	order, err := h.gateway.CreateOrder(r.Context(), *orderReq)
	if err != nil {
		logger.FromCtx(r.Context()).Error("order creation failed", zap.Error(err))
		writeJSONError(w, "failed to create order", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"orderID": order.ID})
}

func (h *Handler) CaptureOrder(w http.ResponseWriter, r *http.Request) {
	var req captureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.OrderID == "" {
		writeJSONError(w, "orderID is required", http.StatusBadRequest)
		return
	}

	result, err := h.gateway.CaptureOrder(r.Context(), req.OrderID)
	if err != nil {
		logger.FromCtx(r.Context()).Error("order capture failed", zap.Error(err))
		writeJSONError(w, "failed to capture order", http.StatusBadGateway)
		return
	}

	// The cart survives anything short of a completed capture so the
	// user can retry.
	if result.Completed {
		s := h.session(r)
		if _, err := s.Clear(r.Context()); err != nil {
			logger.FromCtx(r.Context()).Error("post-capture clear failed", zap.Error(err))
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":    result.Status,
		"orderID":   result.OrderID,
		"captureID": result.CaptureID,
	})
}

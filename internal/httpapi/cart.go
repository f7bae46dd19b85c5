package httpapi

import (
	"net/http"

	"github.com/nikolayk812/shop-checkout/internal/service"
)

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetExpanded(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mapExpandedCartToResponse(cart))
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	productID, err := parseID("productId", req.ProductID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	cart, err := h.carts.Add(r.Context(), ownerFromContext(r.Context()), service.AddItemInput{
		ProductID: productID,
		Quantity:  req.Quantity,
		Color:     req.Color,
		Size:      req.Size,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := mapCartToResponse(cart)
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "product added to cart", Cart: &resp})
}

func (h *Handler) DecreaseCartItem(w http.ResponseWriter, r *http.Request) {
	var req CartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	cartItemID, err := parseID("cartItemId", req.CartItemID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	cart, err := h.carts.Decrease(r.Context(), ownerFromContext(r.Context()), cartItemID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := mapCartToResponse(cart)
	writeJSON(w, http.StatusOK, MessageResponse{Message: "item quantity decreased", Cart: &resp})
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	var req CartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	cartItemID, err := parseID("cartItemId", req.CartItemID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	cart, err := h.carts.Remove(r.Context(), ownerFromContext(r.Context()), cartItemID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	resp := mapCartToResponse(cart)
	writeJSON(w, http.StatusOK, MessageResponse{Message: "product deleted from cart", Cart: &resp})
}

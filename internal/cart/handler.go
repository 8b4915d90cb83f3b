// internal/cart/handler.go
package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the cart endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/cart", h.handleGetCart)
	r.Delete("/cart", h.handleClearCart)
	r.Post("/cart/items", h.handleAddItem)
	r.Put("/cart/items/{productID}", h.handleUpdateItem)
	r.Delete("/cart/items/{productID}", h.handleRemoveItem)
}

type cartResponse struct {
	Items []Item          `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(cartResponse{
		Items: h.service.Items(),
		Total: h.service.Total(),
		Count: h.service.Count(),
	})
}

func (h *Handler) handleAddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int `json:"productId"`
		Quantity  int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	if err := h.service.Add(r.Context(), req.ProductID, req.Quantity); err != nil {
		writeCartError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	h.handleGetCart(w, r)
}

func (h *Handler) handleUpdateItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.UpdateQuantity(r.Context(), productID, req.Quantity); err != nil {
		writeCartError(w, err)
		return
	}

	h.handleGetCart(w, r)
}

func (h *Handler) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Remove(r.Context(), productID); err != nil {
		writeCartError(w, err)
		return
	}

	h.handleGetCart(w, r)
}

func (h *Handler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context()); err != nil {
		writeCartError(w, err)
		return
	}

	h.handleGetCart(w, r)
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrProductNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrOutOfStock):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

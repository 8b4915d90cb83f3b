// internal/wishlist/handler.go
package wishlist

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the wishlist endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/wishlist", h.handleGetWishlist)
	r.Post("/wishlist/{productID}", h.handleAdd)
	r.Delete("/wishlist/{productID}", h.handleRemove)
}

func (h *Handler) handleGetWishlist(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(struct {
		Items []Item `json:"items"`
	}{Items: h.service.Items()})
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Add(r.Context(), productID); err != nil {
		if errors.Is(err, ErrAlreadyWishlisted) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	h.handleGetWishlist(w, r)
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Remove(r.Context(), productID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.handleGetWishlist(w, r)
}

// internal/catalog/handler.go
package catalog

import (
	"encoding/json"
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

// Routes mounts the catalog endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/products", h.handleListProducts)
	r.Get("/products/{slug}", h.handleGetProduct)
	r.Get("/categories", h.handleListCategories)
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := ProductFilter{
		CategoryID:    atoi(q.Get("category")),
		SubcategoryID: atoi(q.Get("subcategory")),
		Featured:      q.Get("featured") == "true",
		New:           q.Get("new") == "true",
		Limit:         atoi(q.Get("limit")),
	}

	json.NewEncoder(w).Encode(h.service.Products(filter))
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	product, ok := h.service.ProductBySlug(slug)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(product)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(struct {
		Categories    []*Category    `json:"categories"`
		Subcategories []*Subcategory `json:"subcategories"`
	}{
		Categories:    h.service.Categories(),
		Subcategories: h.service.Subcategories(),
	})
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

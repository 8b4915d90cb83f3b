// internal/admin/handler.go
package admin

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storefront/internal/session"
)

type Handler struct {
	service  Service
	sessions session.Service
}

func NewHandler(service Service, sessions session.Service) *Handler {
	return &Handler{service: service, sessions: sessions}
}

// Routes mounts the admin endpoints on the router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/admin/stats", h.handleStats)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	if !h.sessions.IsAdmin() {
		http.Error(w, "admin role required", http.StatusForbidden)
		return
	}

	json.NewEncoder(w).Encode(h.service.Stats())
}

package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	personaModel "github.com/varsha-bot/varsha/internal/model/persona"
	"github.com/varsha-bot/varsha/pkg/utils"
)

// Handler exposes the persona catalog for operational smoke checks.
type Handler struct {
	registry personaModel.Registry
}

// New creates a persona handler.
func New(registry personaModel.Registry) *Handler {
	return &Handler{registry: registry}
}

// RegisterRoutes registers persona routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleList)
}

func (h *Handler) handleList(w http.ResponseWriter, _ *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.registry.List())
}

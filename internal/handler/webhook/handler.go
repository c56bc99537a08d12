package webhook

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/varsha-bot/varsha/internal/telegram"
	"github.com/varsha-bot/varsha/pkg/utils"
)

// Engine consumes decoded updates.
type Engine interface {
	HandleUpdate(ctx context.Context, update telegram.Update)
}

// Handler receives Telegram webhook deliveries. The bot token is part of the
// path, so only Telegram (which knows the token) can reach the endpoint.
type Handler struct {
	engine Engine
	token  string
}

// New creates a webhook handler bound to the bot token.
func New(engine Engine, token string) *Handler {
	return &Handler{engine: engine, token: token}
}

// RegisterRoutes registers the webhook endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/webhook/{token}", h.handleUpdate)
}

// handleUpdate acknowledges the delivery immediately and processes the update
// on its own goroutine, so a slow completion call never blocks Telegram's
// delivery loop or unrelated updates.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "token") != h.token {
		utils.RespondError(w, http.StatusNotFound, "not found")
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid update payload")
		return
	}

	go h.engine.HandleUpdate(context.Background(), update)

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

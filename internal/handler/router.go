package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/varsha-bot/varsha/internal/handler/persona"
	"github.com/varsha-bot/varsha/internal/handler/webhook"
	personaModel "github.com/varsha-bot/varsha/internal/model/persona"
	"github.com/varsha-bot/varsha/pkg/utils"
)

// NewRouter wires HTTP routes to the bot engine.
func NewRouter(registry personaModel.Registry, engine webhook.Engine, botToken string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "bot is running"})
	})

	webhookHandler := webhook.New(engine, botToken)
	webhookHandler.RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		personaHandler := persona.New(registry)
		personaHandler.RegisterRoutes(api)
	})

	return r
}

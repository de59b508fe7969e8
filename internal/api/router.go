// Package api exposes the game core over HTTP for the AR client.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/udisondev/hunters/internal/metrics"
)

// NewRouter builds the HTTP routes.
func NewRouter(h *Handler, apiKeyHash string) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(AuthMiddleware(apiKeyHash))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", h.HandleHealthz)
	r.Get("/readyz", h.HandleReadyz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/monsters", h.HandleListMonsters)
			r.Get("/items", h.HandleListItems)
		})

		r.Post("/sessions", h.HandleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", h.HandleGetSession)
			r.Delete("/", h.HandleCloseSession)

			r.Post("/ar/start", h.HandleStartAR)
			r.Post("/ar/stop", h.HandleStopAR)
			r.Post("/pose", h.HandlePose)

			r.Post("/select", h.HandleSelect)
			r.Post("/attack", h.HandleAttack)
			r.Post("/reveal", h.HandleReveal)
			r.Post("/use", h.HandleUse)
			r.Post("/strike", h.HandleStrike)

			r.Get("/encounters", h.HandleListEncounters)
			r.Get("/encounters/{instanceID}", h.HandleGetEncounter)
			r.Get("/vitals", h.HandleVitals)
			r.Get("/inventory", h.HandleInventory)
			r.Get("/diary", h.HandleDiary)
			r.Get("/stats", h.HandleStats)
		})
	})

	return r
}

package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/DHYEY166/teamflow-enterprise/internal/api/middleware"
	"github.com/DHYEY166/teamflow-enterprise/internal/handlers"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(logger *zap.Logger, h *handlers.Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-User-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Metrics endpoint (for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", h.Health)

	r.Get("/members", h.ListMembers)
	r.Patch("/members/{memberID}/presence", h.UpdatePresence)

	r.Route("/rooms", func(r chi.Router) {
		r.Get("/", h.ListRooms)
		r.Post("/", h.CreateRoom)

		r.Route("/{roomID}", func(r chi.Router) {
			r.Get("/", h.GetRoom)
			r.Post("/messages", h.SendMessage)
			r.Delete("/messages", h.ClearHistory)
			r.Post("/summarize", h.Summarize)
			r.Post("/pins/{messageID}", h.TogglePin)

			r.Post("/tasks", h.CreateTask)
			r.Patch("/tasks/{taskID}", h.UpdateTaskStatus)

			r.Post("/resources", h.AddResource)
			r.Delete("/resources/{resourceID}", h.RemoveResource)

			r.Post("/members", h.AddMember)
			r.Delete("/members/{memberID}", h.RemoveMember)
		})
	})

	return r
}

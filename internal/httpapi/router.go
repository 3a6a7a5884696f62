package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mediaforge/internal/httpapi/handlers"
	"mediaforge/internal/httpkit"
	"mediaforge/internal/jobs"
	"mediaforge/internal/orchestrator"
	"mediaforge/internal/pkg/logger"
	"mediaforge/internal/pkg/middleware"
	"mediaforge/internal/ports"
)

type Deps struct {
	Orch   *orchestrator.Orchestrator
	Store  jobs.Store
	SP     ports.StorageProvider
	APIKey string
	// CORSOrigins comes from the resolved config; empty means allow any.
	CORSOrigins []string
	Log         *logger.Logger
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.Logging(d.Log))

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(httpkit.CORS(httpkit.CORSOptions{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", middleware.APIKeyHeader},
		AllowCredentials: false,
		MaxAgeSeconds:    600,
	}))

	h := handlers.New(handlers.Deps{
		Orch:  d.Orch,
		Store: d.Store,
		SP:    d.SP,
		Log:   d.Log,
	})

	// ---- HEALTH ----
	r.Get("/health", h.Health)

	// ---- API (key-protected) ----
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.APIKey(d.APIKey))

		r.Post("/video/add-title", h.PostAddTitle)
		r.Post("/video/caption", h.PostCaption)
		r.Get("/jobs/{jobId}", h.GetJob)
	})

	return r
}

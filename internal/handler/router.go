package handler

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abdulhamidaa6024/backend-afterschool/internal/mw"
	"github.com/abdulhamidaa6024/backend-afterschool/internal/service"
)

type RouterConfig struct {
	Catalog        *service.CatalogService
	Booking        *service.BookingService
	Health         Pinger
	Observer       mw.RequestObserver // optional
	MetricsHandler http.Handler       // optional, mounted at /metrics
	StaticDir      string             // optional
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.Observer != nil {
		r.Use(mw.Metrics(cfg.Observer))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Group(func(r chi.Router) {
		r.Use(mw.RequestTimeout(cfg.RequestTimeout))

		r.Get("/api/lessons", ListLessonsHandler(cfg.Catalog))
		r.Put("/api/lessons/{id}", UpdateLessonHandler(cfg.Catalog))
		r.Get("/api/search", SearchHandler(cfg.Catalog))
		r.Post("/api/orders", PlaceOrderHandler(cfg.Booking))

		r.Get("/healthz", HealthHandler(cfg.Health))
	})

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	if cfg.StaticDir != "" {
		images := http.Dir(filepath.Join(cfg.StaticDir, "images"))
		r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(images)))
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}

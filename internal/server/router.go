// Package server assembles the HTTP API.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/auth"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/content"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/gallery"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/lookup"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/metrics"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/middleware"
	"github.com/caffeinepub/national-level-project-expo-2026-sub000/internal/registration"
)

// Deps are the handlers the router mounts. Content and Gallery are
// optional; their routes are skipped when nil.
type Deps struct {
	Gate          *auth.Gate
	Auth          *auth.Handler
	Registrations *registration.Handler
	Lookup        *lookup.Handler
	Content       *content.Handler
	Gallery       *gallery.Handler
	Metrics       *metrics.Metrics
	CORSOrigins   []string
	// RequestLog turns on chi's request logger.
	RequestLog bool
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	if d.RequestLog {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	if d.Metrics != nil {
		r.Handle("/metrics", d.Metrics.Handler())
	}

	// Public
	r.Post("/api/registrations", d.Registrations.Submit)
	r.Get("/api/registrations/lookup", d.Lookup.Lookup)
	if d.Content != nil {
		r.Get("/api/content/{section}", d.Content.Get)
	}
	if d.Gallery != nil {
		r.Get("/api/gallery", d.Gallery.List)
		r.Get("/api/gallery/{id}/image", d.Gallery.Image)
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", d.Auth.Login)
		r.Post("/logout", d.Auth.Logout)
		r.Get("/session", d.Auth.Session)
	})

	// Admin
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(d.Gate))

		r.Get("/registrations", d.Registrations.List)
		r.Get("/registrations/count", d.Registrations.Count)
		r.Get("/registrations/categories", d.Registrations.Categories)
		r.Get("/registrations/export.csv", d.Registrations.Export)
		r.Put("/registrations/{id}", d.Registrations.Update)
		r.Delete("/registrations/{id}", d.Registrations.Delete)

		if d.Content != nil {
			r.Put("/content/{section}", d.Content.Put)
		}
		if d.Gallery != nil {
			r.Post("/gallery", d.Gallery.Upload)
			r.Delete("/gallery/{id}", d.Gallery.Delete)
		}
	})

	return r
}

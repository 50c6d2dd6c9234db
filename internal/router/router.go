// Package router sets up all HTTP routes and middleware chains for the
// clinic site. Routes are grouped into HTML pages, the JSON API and the
// operational endpoints.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pocsclinic/internal/handlers"
	"pocsclinic/internal/middleware"
	"pocsclinic/web"
)

// Handlers are the handler groups mounted by New. Drafts is optional; the
// draft API is only mounted when it is set.
type Handlers struct {
	Public     *handlers.Public
	API        *handlers.API
	Assessment *handlers.Assessment
	Contact    *handlers.Contact
	Drafts     *handlers.Drafts
}

// New creates and returns the configured Chi router. contactLimit guards
// both contact form endpoints.
func New(h Handlers, contactLimit *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(web.Static())))

	// Pages
	r.Get("/", h.Public.Homepage)
	r.Get("/blog", h.Public.BlogList)
	r.Get("/blog/{id}", h.Public.BlogDetail)
	r.Get("/blog-posts/{name}", h.Public.RawDocument)
	r.Get("/assessment", h.Assessment.Show)
	r.Post("/assessment", h.Assessment.Step)
	r.Get("/contact", h.Contact.Show)
	r.With(contactLimit.Middleware).Post("/contact", h.Contact.Submit)

	// JSON API
	r.Route("/api", func(r chi.Router) {
		r.Get("/posts", h.API.ListPosts)
		r.Get("/posts/{id}", h.API.GetPost)
		r.Get("/categories", h.API.Categories)
		r.Get("/assessment", h.API.Questions)
		r.Post("/assessment", h.API.Evaluate)
		r.With(contactLimit.Middleware).Post("/contact", h.Contact.SubmitJSON)

		if h.Drafts != nil {
			r.Route("/drafts", func(r chi.Router) {
				r.Get("/", h.Drafts.List)
				r.Post("/", h.Drafts.Create)
				r.Get("/{id}", h.Drafts.Get)
				r.Patch("/{id}", h.Drafts.Update)
				r.Delete("/{id}", h.Drafts.Delete)
			})
		}
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

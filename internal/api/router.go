package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/joe-blog/internal/auth"
	"github.com/joestump/joe-blog/internal/blog"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Blog     *blog.Service
	Defaults blog.Submission
	// Generations enables the history endpoints when non-nil.
	Generations GenerationReader
	// Tokens enables bearer-token authentication when non-nil.
	Tokens auth.TokenStore
}

// NewAPIRouter creates a chi sub-router for /api/v1. The API is stateless:
// every request supplies its own provider credential and settings. With a
// token store configured, every route except /defaults requires a bearer token.
func NewAPIRouter(deps Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(jsonContentType)

	gen := &generateAPIHandler{svc: deps.Blog, defaults: deps.Defaults}
	r.Get("/defaults", gen.GetDefaults)

	r.Group(func(r chi.Router) {
		if deps.Tokens != nil {
			r.Use(auth.NewBearerTokenMiddleware(deps.Tokens, writeError).Authenticate)
		}
		r.Post("/generate", gen.Generate)

		if deps.Generations != nil {
			hist := &generationsAPIHandler{gens: deps.Generations}
			r.Get("/generations", hist.List)
			r.Get("/generations/{id}", hist.Get)
		}
	})

	return r
}

// jsonContentType sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

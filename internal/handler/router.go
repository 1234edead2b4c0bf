package handler

import (
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/joestump/joe-blog/docs/swagger"
	"github.com/joestump/joe-blog/internal/api"
	"github.com/joestump/joe-blog/internal/auth"
	"github.com/joestump/joe-blog/internal/blog"
	"github.com/joestump/joe-blog/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	SessionManager *scs.SessionManager
	Blog           *blog.Service
	Defaults       blog.Submission
	Generations    api.GenerationReader // optional; enables /api/v1/generations
	Tokens         auth.TokenStore      // optional; requires bearer tokens on the API
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	// Static assets (embedded). fs.Sub so the file server sees css/app.css
	// directly, not static/css/... paths.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(staticSub)))

	r.Get("/healthz", Health)
	r.Handle("/metrics", promhttp.Handler())

	themeHandler := NewThemeHandler()
	r.Post("/theme", themeHandler.Toggle)

	// Browser routes carry the session-scoped form configuration.
	gen := NewGeneratorHandler(deps.SessionManager, deps.Blog, deps.Defaults)
	r.Group(func(r chi.Router) {
		r.Use(deps.SessionManager.LoadAndSave)
		r.Get("/", gen.Index)
		r.Post("/generate", gen.Generate)
		r.Get("/download", gen.Download)
	})

	// Swagger UI and the stateless JSON API.
	r.Get("/api/docs/*", httpSwagger.WrapHandler)
	r.Mount("/api/v1", api.NewAPIRouter(api.Deps{
		Blog:        deps.Blog,
		Defaults:    deps.Defaults,
		Generations: deps.Generations,
		Tokens:      deps.Tokens,
	}))

	return r
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"translingo/internal/http/handlers"
	"translingo/internal/infra"
	"translingo/internal/middleware"
)

// Options carries the cross-cutting router configuration.
type Options struct {
	Logger          infra.Logger
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	RateLimitPerMin int
}

// NewRouter mounts the API surface with the shared middleware chain.
func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/transcriptions", func(r chi.Router) {
		// Job creation spawns provider work; reads are cheap and stay
		// unthrottled.
		r.With(rateLimit(opts)).Post("/", app.CreateTranscription)
		r.Get("/{id}", app.GetTranscription)
		r.Get("/{id}/translation", app.GetTranslation)
	})

	r.Route("/v1/documents", func(r chi.Router) {
		r.With(rateLimit(opts)).Post("/", app.CreateDocument)
		r.Get("/{id}", app.GetDocument)
		r.Get("/{id}/download", app.DownloadDocument)
	})

	r.With(rateLimit(opts)).Post("/v1/chat/localize", app.LocalizeChat)

	return r
}

func rateLimit(opts Options) func(http.Handler) http.Handler {
	limit := opts.RateLimitPerMin
	if limit <= 0 {
		limit = 30
	}
	return middleware.RateLimit(limit, time.Minute)
}

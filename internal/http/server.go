package http

import (
	"context"
	nethttp "net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/claes/teleflix/internal/catalog"
	"github.com/claes/teleflix/internal/metrics"
	"github.com/claes/teleflix/internal/model"
)

// Catalog is the subset of the catalog API the pages need.
type Catalog interface {
	Recent(ctx context.Context, mediaType string, limit int) model.SearchResponse
	Search(ctx context.Context, q catalog.Query) model.SearchResponse
	Genres(ctx context.Context) model.GenresResponse
	Media(ctx context.Context, slug string) (model.Media, error)
	Season(ctx context.Context, slug string, season int) (model.SeasonData, error)
	Episode(ctx context.Context, slug string, season, episode int) (model.EpisodeData, error)
	StreamLink(ctx context.Context, fileID string) (model.FileLink, error)
	DownloadLink(ctx context.Context, fileID string) (model.FileLink, error)
}

type server struct {
	catalog      Catalog
	pages        *renderer
	recentLimit  int
	sitePassword string
	apiTarget    *url.URL
	now          func() time.Time
}

// Option configures the handler built by NewServer.
type Option func(*server)

// WithSitePassword protects the pages with a shared password.
func WithSitePassword(pw string) Option {
	return func(s *server) { s.sitePassword = pw }
}

// WithAPIProxy forwards /api/* to target.
func WithAPIProxy(target *url.URL) Option {
	return func(s *server) { s.apiTarget = target }
}

// WithRecentLimit sets how many titles the recent and category pages list.
// Non-positive values keep the default of 20.
func WithRecentLimit(n int) Option {
	return func(s *server) {
		if n > 0 {
			s.recentLimit = n
		}
	}
}

// NewServer creates the HTTP handler serving the catalog pages.
func NewServer(c Catalog, opts ...Option) nethttp.Handler {
	s := &server{
		catalog:     c,
		pages:       newRenderer(),
		recentLimit: 20,
		now:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, accessLog, countRequests, middleware.Recoverer)

	r.Get("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		HealthHandler().ServeHTTP(w, r)
	})
	r.Method(nethttp.MethodGet, "/metrics", metrics.Handler())
	if s.apiTarget != nil {
		r.Handle("/api/*", newAPIProxy(s.apiTarget))
	}

	r.Group(func(r chi.Router) {
		if s.sitePassword != "" {
			r.Use(requirePassword(s.sitePassword))
		}
		r.NotFound(s.handleNotFound)

		r.Get("/", s.handleHome)
		r.Get("/recent", s.handleRecent)
		r.Get("/movies", s.handleCategory(model.Movie, "Movies", "movies"))
		r.Get("/series", s.handleCategory(model.Series, "Series", "series"))
		r.Get("/anime", s.handleCategory(model.Anime, "Anime", "anime"))
		r.Get("/search", s.handleSearch)
		r.Get("/suggest", s.handleSuggest)
		r.Post("/theme", s.handleTheme)

		r.Get("/stream/{fileID}", s.handleStream)
		r.Get("/download/{fileID}", s.handleDownload)
		r.Get("/players/{fileID}", s.handlePlayers)

		r.Get("/{slug}", s.handleMedia)
		r.Get("/{slug}/season-{season:[0-9]+}", s.handleSeason)
		r.Get("/{slug}/season-{season:[0-9]+}/episode-{episode:[0-9]+}", s.handleEpisode)
	})
	return r
}

func httpError(w nethttp.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}

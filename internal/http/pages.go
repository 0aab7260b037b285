package http

import (
	nethttp "net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"

	"github.com/claes/teleflix/internal/browse"
	"github.com/claes/teleflix/internal/catalog"
	"github.com/claes/teleflix/internal/format"
	"github.com/claes/teleflix/internal/links"
	"github.com/claes/teleflix/internal/logging"
	"github.com/claes/teleflix/internal/model"
)

func (s *server) handleHome(w nethttp.ResponseWriter, r *nethttp.Request) {
	s.render(w, r, nethttp.StatusOK, "home", pageData{Nav: "home"})
}

type listPage struct {
	Heading string
	Cards   []browse.Card
	Empty   string
}

func (s *server) handleRecent(w nethttp.ResponseWriter, r *nethttp.Request) {
	res := s.catalog.Recent(r.Context(), "", s.recentLimit)
	s.render(w, r, nethttp.StatusOK, "list", pageData{
		Title: "Recent Uploads",
		Content: listPage{
			Heading: "Recent Uploads",
			Cards:   browse.Cards(res.Results),
			Empty:   "No recent uploads available yet.",
		},
	})
}

// handleCategory lists the most recent titles of one media type.
func (s *server) handleCategory(t model.MediaType, heading, nav string) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		res := s.catalog.Recent(r.Context(), string(t), s.recentLimit)
		s.render(w, r, nethttp.StatusOK, "list", pageData{
			Title: heading,
			Nav:   nav,
			Content: listPage{
				Heading: heading,
				Cards:   browse.Cards(res.Results),
				Empty:   "No " + strings.ToLower(heading) + " available yet.",
			},
		})
	}
}

type genreLink struct {
	Name string
	Href string
}

type mediaPage struct {
	Media     model.Media
	Poster    string
	TypeLabel string
	Year      string
	Rating    string
	Genres    []genreLink
	Episodic  bool
	Seasons   []browse.SeasonCard
	Files     browse.FileSelection
}

func (s *server) handleMedia(w nethttp.ResponseWriter, r *nethttp.Request) {
	slug := chi.URLParam(r, "slug")
	m, err := s.catalog.Media(r.Context(), slug)
	if err != nil {
		logFetchError("media", slug, err)
		s.renderMessage(w, r, nethttp.StatusNotFound, "Media Not Found", message{
			Heading:   "Media Not Found",
			Text:      "The requested media could not be found.",
			BackHref:  "/",
			BackLabel: "Return to Home",
		})
		return
	}

	p := mediaPage{
		Media:     m,
		Poster:    m.Poster,
		TypeLabel: format.Capitalize(string(m.MediaType)),
		Rating:    format.Rating(m.Rating),
		Episodic:  m.MediaType.IsEpisodic(),
	}
	if p.Poster == "" {
		p.Poster = browse.PosterFallback
	}
	if m.ReleaseYear > 0 {
		p.Year = strconv.Itoa(m.ReleaseYear)
	}
	for _, g := range m.Genres {
		p.Genres = append(p.Genres, genreLink{Name: g, Href: links.Genre(g)})
	}
	if p.Episodic {
		p.Seasons = browse.SeasonCards(m)
	} else {
		p.Files = browse.SelectFile(links.Media(slug), m.Files, r.URL.Query().Get("file"))
	}
	s.render(w, r, nethttp.StatusOK, "media", pageData{Title: m.Title, Content: p})
}

type seasonPage struct {
	MediaTitle string
	BackHref   string
	Number     int
	Title      string
	Episodes   []browse.EpisodeRow
}

func (s *server) handleSeason(w nethttp.ResponseWriter, r *nethttp.Request) {
	slug := chi.URLParam(r, "slug")
	season, err := strconv.Atoi(chi.URLParam(r, "season"))
	if err != nil {
		s.handleNotFound(w, r)
		return
	}
	data, err := s.catalog.Season(r.Context(), slug, season)
	if err != nil {
		logFetchError("season", slug, err)
		s.renderMessage(w, r, nethttp.StatusNotFound, "Season Not Found", message{
			Heading:   "Season Not Found",
			Text:      "The requested season could not be found.",
			BackHref:  links.Media(slug),
			BackLabel: "Return to Series Page",
		})
		return
	}
	s.render(w, r, nethttp.StatusOK, "season", pageData{
		Title: data.Media.Title + " - Season " + strconv.Itoa(season),
		Content: seasonPage{
			MediaTitle: data.Media.Title,
			BackHref:   links.Media(slug),
			Number:     season,
			Title:      data.Season.Title,
			Episodes:   browse.EpisodeRows(slug, season, data.Season),
		},
	})
}

type episodePage struct {
	MediaTitle string
	BackHref   string
	Season     int
	Episode    int
	Title      string
	Files      browse.FileSelection
	Nav        browse.Nav
}

func (s *server) handleEpisode(w nethttp.ResponseWriter, r *nethttp.Request) {
	slug := chi.URLParam(r, "slug")
	season, err1 := strconv.Atoi(chi.URLParam(r, "season"))
	episode, err2 := strconv.Atoi(chi.URLParam(r, "episode"))
	if err1 != nil || err2 != nil {
		s.handleNotFound(w, r)
		return
	}
	data, err := s.catalog.Episode(r.Context(), slug, season, episode)
	if err != nil {
		logFetchError("episode", slug, err)
		s.renderMessage(w, r, nethttp.StatusNotFound, "Episode Not Found", message{
			Heading:   "Episode Not Found",
			Text:      "The requested episode could not be found.",
			BackHref:  links.Season(slug, season),
			BackLabel: "Return to Season Page",
		})
		return
	}
	page := links.Episode(slug, season, episode)
	s.render(w, r, nethttp.StatusOK, "episode", pageData{
		Title: data.Media.Title + " - S" + strconv.Itoa(season) + "E" + strconv.Itoa(episode),
		Content: episodePage{
			MediaTitle: data.Media.Title,
			BackHref:   links.Season(slug, season),
			Season:     season,
			Episode:    episode,
			Title:      data.Episode.Title,
			Files:      browse.SelectFile(page, data.Episode.Files, r.URL.Query().Get("file")),
			Nav:        browse.EpisodeNav(slug, season, episode),
		},
	})
}

// logFetchError keeps expected 404s at debug level.
func logFetchError(endpoint, slug string, err error) {
	if errors.Is(err, catalog.ErrNotFound) {
		logging.Debug("catalog lookup missed", "endpoint", endpoint, "slug", slug)
		return
	}
	logging.Warn("catalog lookup failed", "endpoint", endpoint, "slug", slug, "err", err)
}

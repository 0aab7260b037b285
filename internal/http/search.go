package http

import (
	nethttp "net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/claes/teleflix/internal/browse"
	"github.com/claes/teleflix/internal/catalog"
	"github.com/claes/teleflix/internal/format"
	"github.com/claes/teleflix/internal/links"
	"github.com/claes/teleflix/internal/model"
)

const (
	suggestLimit    = 5
	suggestMinChars = 2
	maxQueryLength  = 200
)

type searchPage struct {
	Query   string
	Total   int
	Cards   []browse.Card
	Filters []browse.FilterGroup
}

func (s *server) handleSearch(w nethttp.ResponseWriter, r *nethttp.Request) {
	v := r.URL.Query()
	q := catalog.Query{
		Q:         truncate(strings.TrimSpace(v.Get("q")), maxQueryLength),
		MediaType: v.Get("media_type"),
		Genre:     v.Get("genre"),
		Sort:      v.Get("sort"),
	}
	if !model.MediaType(q.MediaType).Valid() {
		q.MediaType = ""
	}
	switch q.Sort {
	case browse.SortRecent, browse.SortPopular, browse.SortAZ:
	default:
		q.Sort = browse.SortRecent
	}

	var (
		results model.SearchResponse
		genres  model.GenresResponse
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		if q.Q == "" {
			results = model.SearchResponse{Results: []model.MediaSummary{}}
			return nil
		}
		results = s.catalog.Search(ctx, q)
		return nil
	})
	g.Go(func() error {
		genres = s.catalog.Genres(ctx)
		return nil
	})
	_ = g.Wait()

	s.render(w, r, nethttp.StatusOK, "search", pageData{
		Title: "Search Results",
		Query: q.Q,
		Content: searchPage{
			Query:   q.Q,
			Total:   results.Total,
			Cards:   browse.Cards(results.Results),
			Filters: browse.Filters(q.Q, q.MediaType, q.Genre, q.Sort, browse.SortGenres(genres.Genres)),
		},
	})
}

type suggestion struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	MediaType string `json:"media_type"`
	TypeLabel string `json:"type_label"`
	Poster    string `json:"poster,omitempty"`
	Href      string `json:"href"`
}

// handleSuggest feeds the search-as-you-type dropdown.
func (s *server) handleSuggest(w nethttp.ResponseWriter, r *nethttp.Request) {
	q := truncate(strings.TrimSpace(r.URL.Query().Get("q")), maxQueryLength)
	out := struct {
		Results []suggestion `json:"results"`
	}{Results: []suggestion{}}
	if len([]rune(q)) < suggestMinChars {
		writeJSON(w, nethttp.StatusOK, out)
		return
	}
	res := s.catalog.Search(r.Context(), catalog.Query{Q: q, Limit: suggestLimit})
	for _, m := range res.Results {
		if len(out.Results) == suggestLimit {
			break
		}
		out.Results = append(out.Results, suggestion{
			ID:        m.ID,
			Title:     m.Title,
			Slug:      m.Slug,
			MediaType: string(m.MediaType),
			TypeLabel: format.Capitalize(string(m.MediaType)),
			Poster:    m.Poster,
			Href:      links.Media(m.Slug),
		})
	}
	writeJSON(w, nethttp.StatusOK, out)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

package http

import (
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/claes/teleflix/internal/catalog"
)

// fakeAPI is a catalog backend answering fixed JSON bodies per path.
// Paths without a body answer 404.
type fakeAPI struct {
	srv    *httptest.Server
	mu     sync.Mutex
	bodies map[string]string
	status map[string]int
	calls  []string
}

func newFakeAPI(t *testing.T, bodies map[string]string) *fakeAPI {
	t.Helper()
	f := &fakeAPI{bodies: bodies, status: map[string]int{}}
	f.srv = httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		f.mu.Lock()
		f.calls = append(f.calls, r.URL.RequestURI())
		body, ok := f.bodies[r.URL.Path]
		code, forced := f.status[r.URL.Path]
		f.mu.Unlock()
		if forced {
			nethttp.Error(w, `{"detail":"error"}`, code)
			return
		}
		if !ok {
			nethttp.Error(w, `{"detail":"Not found"}`, nethttp.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeAPI) fail(path string, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[path] = code
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// called reports whether any request hit path (ignoring the query).
func (f *fakeAPI) called(path string) bool {
	for _, c := range f.Calls() {
		if c == path || strings.HasPrefix(c, path+"?") {
			return true
		}
	}
	return false
}

func newTestServer(t *testing.T, bodies map[string]string, opts ...Option) (nethttp.Handler, *fakeAPI) {
	t.Helper()
	api := newFakeAPI(t, bodies)
	c := catalog.New(api.srv.URL, 2*time.Second)
	return NewServer(c, opts...), api
}

func get(t *testing.T, h nethttp.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", target, nil))
	return rr
}

func parseDoc(t *testing.T, rr *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rr.Body.String()))
	require.NoError(t, err)
	return doc
}

const movieJSON = `{
  "_id": "m1",
  "title": "Dune",
  "slug": "dune",
  "media_type": "movie",
  "poster": "https://img.example/dune.jpg",
  "plot": "A noble family becomes embroiled in a war.",
  "rating": 8.04,
  "genres": ["Sci-Fi", "Adventure"],
  "release_year": 2021,
  "files": [
    {"file_id": "f720", "file_size": 1536, "quality": "720p", "source": "WEB-DL"},
    {"file_id": "f1080", "file_size": 2147483648, "quality": "1080p", "source": "BluRay", "format": "x264"}
  ],
  "seasons": {}
}`

const seriesJSON = `{
  "_id": "s1",
  "title": "Breaking Bad",
  "slug": "breaking-bad",
  "media_type": "series",
  "genres": [],
  "files": [],
  "seasons": {
    "2": {"season_number": 2, "episodes": {"1": {"episode_number": 1, "files": []}}},
    "1": {"season_number": 1, "episodes": {"1": {"episode_number": 1, "files": []}, "2": {"episode_number": 2, "files": []}}}
  }
}`

const seasonJSON = `{
  "media": {"_id": "s1", "title": "Breaking Bad", "slug": "breaking-bad", "media_type": "series"},
  "season": {"season_number": 1, "title": "The Beginning", "episodes": {
    "2": {"episode_number": 2, "title": "Cat's in the Bag", "files": [{"file_id": "e2", "file_size": 10, "quality": "720p", "source": "HDTV"}]},
    "1": {"episode_number": 1, "title": "Pilot", "files": []}
  }}
}`

const episodeJSON = `{
  "media": {"_id": "s1", "title": "Breaking Bad", "slug": "breaking-bad", "media_type": "series"},
  "season": 1,
  "episode": {"episode_number": 2, "title": "Cat's in the Bag", "files": [
    {"file_id": "e2a", "file_size": 1048576, "quality": "720p"},
    {"file_id": "e2b", "file_size": 3145728, "quality": "1080p", "source": "WEB-DL"}
  ]}
}`

const searchJSON = `{"results": [
  {"id": "1", "title": "Dune", "slug": "dune", "media_type": "movie", "rating": 8.0, "release_year": 2021},
  {"id": "2", "title": "Dune: Part Two", "slug": "dune-part-two", "media_type": "movie"},
  {"id": "3", "title": "Dune Saga", "slug": "dune-saga", "media_type": "series"},
  {"id": "4", "title": "Dune Anime", "slug": "dune-anime", "media_type": "anime", "poster": "https://img.example/a.jpg"},
  {"id": "5", "title": "Dune Extended", "slug": "dune-extended", "media_type": "movie"},
  {"id": "6", "title": "Dune Documentary", "slug": "dune-doc", "media_type": "movie"}
], "total": 6}`

const genresJSON = `{"genres": ["Thriller", "action", "Drama", "Comedy", "Horror", "Romance"]}`

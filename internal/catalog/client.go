// Package catalog is the client of the Teleflix catalog REST API.
//
// List endpoints (recent, search, genres) never fail from the caller's point of
// view: a non-2xx response or a transport error is logged and the empty result
// shape is returned. Detail and link endpoints return errors so pages can
// render their not-found state.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/coocood/freecache"
	"github.com/klauspost/compress/s2"
	"github.com/pkg/errors"

	"github.com/claes/teleflix/internal/logging"
	"github.com/claes/teleflix/internal/metrics"
	"github.com/claes/teleflix/internal/model"
)

// Revalidation windows for cached responses.
const (
	DetailTTL = time.Hour
	ListTTL   = time.Minute
)

const maxBodySize = 8 << 20

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("catalog: not found")

// StatusError is a non-2xx, non-404 answer from the API.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s: unexpected status %d", e.Endpoint, e.Code)
}

// Query holds the search page parameters.
type Query struct {
	Q         string
	MediaType string
	Genre     string
	Sort      string
	Limit     int
}

// Client calls the catalog API rooted at baseURL.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *freecache.Cache
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the pooled default client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCacheSize enables the response cache with the given size in bytes.
// A size of zero disables caching.
func WithCacheSize(bytes int) Option {
	return func(c *Client) {
		if bytes <= 0 {
			c.cache = nil
			return
		}
		c.cache = freecache.NewCache(bytes)
	}
}

// New returns a client for the API at baseURL (without the /api suffix).
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    newHTTPClient(timeout),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Recent lists the latest uploads, optionally restricted to one media type.
func (c *Client) Recent(ctx context.Context, mediaType string, limit int) model.SearchResponse {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if mediaType != "" {
		q.Set("media_type", mediaType)
	}
	var out model.SearchResponse
	if err := c.getJSON(ctx, "recent", "/api/recent", q, ListTTL, &out); err != nil {
		logging.Warn("recent uploads unavailable", "media_type", mediaType, "err", err)
		return emptySearch()
	}
	return normalizeSearch(out)
}

// Search runs a full-text search. The result is trimmed to Limit when set.
func (c *Client) Search(ctx context.Context, query Query) model.SearchResponse {
	q := url.Values{}
	q.Set("q", query.Q)
	if query.MediaType != "" {
		q.Set("media_type", query.MediaType)
	}
	if query.Genre != "" {
		q.Set("genre", query.Genre)
	}
	if query.Sort != "" {
		q.Set("sort", query.Sort)
	}
	if query.Limit > 0 {
		q.Set("limit", strconv.Itoa(query.Limit))
	}
	var out model.SearchResponse
	if err := c.getJSON(ctx, "search", "/api/search", q, ListTTL, &out); err != nil {
		logging.Warn("search failed", "q", query.Q, "err", err)
		return emptySearch()
	}
	out = normalizeSearch(out)
	if query.Limit > 0 && len(out.Results) > query.Limit {
		out.Results = out.Results[:query.Limit]
	}
	return out
}

// Genres lists every genre known to the catalog.
func (c *Client) Genres(ctx context.Context) model.GenresResponse {
	var out model.GenresResponse
	if err := c.getJSON(ctx, "genres", "/api/genres", nil, DetailTTL, &out); err != nil {
		logging.Warn("genres unavailable", "err", err)
		return model.GenresResponse{Genres: []string{}}
	}
	if out.Genres == nil {
		out.Genres = []string{}
	}
	return out
}

// Media fetches the full record of one title, seasons and files included.
func (c *Client) Media(ctx context.Context, slug string) (model.Media, error) {
	var out model.Media
	err := c.getJSON(ctx, "media", "/api/media/"+url.PathEscape(slug), nil, DetailTTL, &out)
	return out, err
}

// Season fetches one season of slug together with its parent media.
func (c *Client) Season(ctx context.Context, slug string, season int) (model.SeasonData, error) {
	var out model.SeasonData
	path := fmt.Sprintf("/api/media/%s/season/%d", url.PathEscape(slug), season)
	err := c.getJSON(ctx, "season", path, nil, DetailTTL, &out)
	return out, err
}

// Episode fetches one episode of slug together with its parent media.
func (c *Client) Episode(ctx context.Context, slug string, season, episode int) (model.EpisodeData, error) {
	var out model.EpisodeData
	path := fmt.Sprintf("/api/media/%s/season/%d/episode/%d", url.PathEscape(slug), season, episode)
	err := c.getJSON(ctx, "episode", path, nil, DetailTTL, &out)
	return out, err
}

// StreamLink asks the API for a one-off playback URL. Never cached.
func (c *Client) StreamLink(ctx context.Context, fileID string) (model.FileLink, error) {
	var out model.FileLink
	if err := c.getJSON(ctx, "stream", "/api/stream/"+url.PathEscape(fileID), nil, 0, &out); err != nil {
		return out, err
	}
	if out.StreamLink == "" {
		return out, errors.Errorf("catalog stream: empty stream_link for %s", fileID)
	}
	return out, nil
}

// DownloadLink asks the API for a one-off download URL. Never cached.
func (c *Client) DownloadLink(ctx context.Context, fileID string) (model.FileLink, error) {
	var out model.FileLink
	if err := c.getJSON(ctx, "file", "/api/file/"+url.PathEscape(fileID), nil, 0, &out); err != nil {
		return out, err
	}
	if out.DownloadLink == "" {
		return out, errors.Errorf("catalog file: empty download_link for %s", fileID)
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, path string, q url.Values, ttl time.Duration, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	useCache := c.cache != nil && ttl > 0
	if useCache {
		b, err := c.cachedBody(u)
		switch {
		case errors.Is(err, freecache.ErrNotFound):
		case err == nil && json.Unmarshal(b, out) == nil:
			metrics.CatalogRequests.WithLabelValues(endpoint, metrics.OutcomeCache).Inc()
			return nil
		default:
			c.cache.Del([]byte(u))
		}
	}

	body, err := c.fetch(ctx, endpoint, u)
	if err != nil {
		metrics.CatalogRequests.WithLabelValues(endpoint, metrics.OutcomeError).Inc()
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		metrics.CatalogRequests.WithLabelValues(endpoint, metrics.OutcomeError).Inc()
		return errors.Wrapf(err, "catalog %s: decode", endpoint)
	}
	metrics.CatalogRequests.WithLabelValues(endpoint, metrics.OutcomeOK).Inc()
	if useCache {
		c.storeBody(endpoint, u, body, ttl)
	}
	return nil
}

// Entries are stored s2-compressed. freecache refuses entries larger than
// about 1/1024 of its size, and long series payloads are highly repetitive.
func (c *Client) cachedBody(u string) ([]byte, error) {
	b, err := c.cache.Get([]byte(u))
	if err != nil {
		return nil, err
	}
	return s2.Decode(nil, b)
}

func (c *Client) storeBody(endpoint, u string, body []byte, ttl time.Duration) {
	packed := s2.EncodeBetter(nil, body)
	if err := c.cache.Set([]byte(u), packed, int(ttl/time.Second)); err != nil {
		logging.Warn("catalog response not cached",
			"endpoint", endpoint, "bytes", len(body), "stored", len(packed), "err", err)
	}
}

func (c *Client) fetch(ctx context.Context, endpoint, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s: build request", endpoint)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.CatalogLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, errors.WithStack(ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s: read body", endpoint)
	}
	logging.Debug("catalog request", "endpoint", endpoint, "url", u, "dur", time.Since(start))
	return body, nil
}

func emptySearch() model.SearchResponse {
	return model.SearchResponse{Results: []model.MediaSummary{}}
}

func normalizeSearch(r model.SearchResponse) model.SearchResponse {
	if r.Results == nil {
		r.Results = []model.MediaSummary{}
	}
	return r
}

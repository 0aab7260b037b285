package http

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome_RendersBrowseLinks(t *testing.T) {
	h, _ := newTestServer(t, nil)
	rr := get(t, h, "/")
	require.Equal(t, 200, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	doc := parseDoc(t, rr)
	assert.Equal(t, "Welcome to Teleflix", doc.Find("h1").First().Text())
	var tiles []string
	doc.Find(".tiles a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		tiles = append(tiles, href)
	})
	assert.Equal(t, []string{"/movies", "/series", "/anime", "/recent"}, tiles)
	assert.Equal(t, 1, doc.Find(".searchbar").Length())
	assert.Contains(t, doc.Find("footer").Text(), "Teleflix. All rights reserved.")
}

func TestMoviePage_FileListDefaultsToFirstFile(t *testing.T) {
	h, api := newTestServer(t, map[string]string{"/api/media/dune": movieJSON})
	rr := get(t, h, "/dune")
	require.Equal(t, 200, rr.Code)
	assert.True(t, api.called("/api/media/dune"))

	doc := parseDoc(t, rr)
	assert.Equal(t, "Dune - Teleflix", doc.Find("title").Text())
	assert.Equal(t, "Dune", doc.Find(".info h1").Text())
	assert.Contains(t, doc.Find(".facts .star").Text(), "8.0/10")
	assert.Contains(t, doc.Find(".facts .type").Text(), "Movie")
	assert.Contains(t, doc.Find(".facts .year").Text(), "2021")

	genre, _ := doc.Find(".genres a").First().Attr("href")
	assert.Equal(t, "/search?genre=Sci-Fi", genre)

	active := doc.Find(".filelist .chip.active")
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "720p • WEB-DL", active.Text())
	assert.Equal(t, "Size: 1.5 KB", doc.Find(".filelist .size").Text())

	stream, _ := doc.Find(".filelist a.stream").Attr("href")
	assert.Equal(t, "/stream/f720", stream)
	target, _ := doc.Find(".filelist a.stream").Attr("target")
	assert.Equal(t, "_blank", target)
	download, _ := doc.Find(".filelist a.download").Attr("href")
	assert.Equal(t, "/download/f720", download)
}

func TestMoviePage_SelectedFileFromQuery(t *testing.T) {
	h, _ := newTestServer(t, map[string]string{"/api/media/dune": movieJSON})
	doc := parseDoc(t, get(t, h, "/dune?file=f1080"))

	assert.Equal(t, "1080p • BluRay • x264", doc.Find(".filelist .chip.active").Text())
	assert.Equal(t, "Size: 2 GB", doc.Find(".filelist .size").Text())
	players, _ := doc.Find(".filelist a.players").Attr("href")
	assert.Equal(t, "/players/f1080", players)

	other, _ := doc.Find(".filelist .chip").First().Attr("href")
	assert.Equal(t, "/dune?file=f720", other)
}

func TestSeriesPage_ListsSeasonsInOrder(t *testing.T) {
	h, _ := newTestServer(t, map[string]string{"/api/media/breaking-bad": seriesJSON})
	rr := get(t, h, "/breaking-bad")
	require.Equal(t, 200, rr.Code)

	doc := parseDoc(t, rr)
	assert.Equal(t, 0, doc.Find(".filelist").Length())
	var hrefs, counts []string
	doc.Find(".seasons a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		hrefs = append(hrefs, href)
		counts = append(counts, strings.TrimSpace(s.Find("p").Text()))
	})
	assert.Equal(t, []string{"/breaking-bad/season-1", "/breaking-bad/season-2"}, hrefs)
	assert.Equal(t, []string{"2 Episodes", "1 Episodes"}, counts)
	assert.Equal(t, browsePosterFallback(), doc.Find("img.poster").AttrOr("src", ""))
}

func TestSeriesPage_NoSeasons(t *testing.T) {
	h, _ := newTestServer(t, map[string]string{
		"/api/media/empty": `{"_id":"x","title":"Empty","slug":"empty","media_type":"anime","seasons":{}}`,
	})
	rr := get(t, h, "/empty")
	require.Equal(t, 200, rr.Code)
	assert.Contains(t, rr.Body.String(), "No seasons available yet.")
}

func TestMediaPage_NotFound(t *testing.T) {
	h, _ := newTestServer(t, nil)
	rr := get(t, h, "/nope")
	require.Equal(t, 404, rr.Code)

	doc := parseDoc(t, rr)
	assert.Equal(t, "Media Not Found", doc.Find(".message h1").Text())
	href, _ := doc.Find(".message a").Attr("href")
	assert.Equal(t, "/", href)
}

func TestMediaPage_BackendErrorRendersNotFound(t *testing.T) {
	h, api := newTestServer(t, map[string]string{"/api/media/dune": movieJSON})
	api.fail("/api/media/dune", 500)
	rr := get(t, h, "/dune")
	assert.Equal(t, 404, rr.Code)
	assert.Contains(t, rr.Body.String(), "Media Not Found")
}

func TestSeasonPage(t *testing.T) {
	h, api := newTestServer(t, map[string]string{"/api/media/breaking-bad/season/1": seasonJSON})
	rr := get(t, h, "/breaking-bad/season-1")
	require.Equal(t, 200, rr.Code)
	assert.True(t, api.called("/api/media/breaking-bad/season/1"))

	doc := parseDoc(t, rr)
	back := doc.Find("a.back")
	assert.Equal(t, "/breaking-bad", back.AttrOr("href", ""))
	assert.Contains(t, back.Text(), "Back to Breaking Bad")
	assert.Contains(t, doc.Text(), "The Beginning")

	var titles []string
	doc.Find(".episodes a h3").Each(func(_ int, s *goquery.Selection) {
		titles = append(titles, s.Text())
	})
	assert.Equal(t, []string{"Episode 1: Pilot", "Episode 2: Cat's in the Bag"}, titles)
	assert.Equal(t, "720p • HDTV", doc.Find(".episodes .badge").Text())
	assert.Equal(t, "/breaking-bad/season-1/episode-2", doc.Find(".episodes a").Last().AttrOr("href", ""))
}

func TestSeasonPage_NotFoundAndInvalidNumber(t *testing.T) {
	h, _ := newTestServer(t, nil)

	rr := get(t, h, "/breaking-bad/season-9")
	require.Equal(t, 404, rr.Code)
	doc := parseDoc(t, rr)
	assert.Equal(t, "Season Not Found", doc.Find(".message h1").Text())
	assert.Equal(t, "/breaking-bad", doc.Find(".message a").AttrOr("href", ""))

	rr = get(t, h, "/breaking-bad/season-x")
	assert.Equal(t, 404, rr.Code)
}

func TestEpisodePage(t *testing.T) {
	h, _ := newTestServer(t, map[string]string{"/api/media/breaking-bad/season/1/episode/2": episodeJSON})
	rr := get(t, h, "/breaking-bad/season-1/episode-2?file=e2b")
	require.Equal(t, 200, rr.Code)

	doc := parseDoc(t, rr)
	assert.Equal(t, "Breaking Bad - S1E2: Cat's in the Bag", doc.Find("main h1").Text())
	assert.Equal(t, "/breaking-bad/season-1", doc.Find("a.back").AttrOr("href", ""))
	assert.Equal(t, "1080p • WEB-DL", doc.Find(".filelist .chip.active").Text())
	assert.Equal(t, "Size: 3 MB", doc.Find(".filelist .size").Text())
	assert.Equal(t, "/breaking-bad/season-1/episode-2?file=e2a", doc.Find(".filelist .chip").First().AttrOr("href", ""))
	assert.Equal(t, "/breaking-bad/season-1/episode-1", doc.Find(".episode-nav a.prev").AttrOr("href", ""))
	assert.Equal(t, "/breaking-bad/season-1/episode-3", doc.Find(".episode-nav a.next").AttrOr("href", ""))
}

func TestEpisodePage_FirstEpisodeHasNoPrevious(t *testing.T) {
	h, _ := newTestServer(t, map[string]string{"/api/media/bb/season/1/episode/1": episodeJSON})
	doc := parseDoc(t, get(t, h, "/bb/season-1/episode-1"))
	assert.Equal(t, 0, doc.Find(".episode-nav a.prev").Length())
	assert.Equal(t, 1, doc.Find(".episode-nav a.next").Length())
}

func TestEpisodePage_NotFound(t *testing.T) {
	h, _ := newTestServer(t, nil)
	rr := get(t, h, "/bb/season-1/episode-40")
	require.Equal(t, 404, rr.Code)
	doc := parseDoc(t, rr)
	assert.Equal(t, "Episode Not Found", doc.Find(".message h1").Text())
	assert.Equal(t, "/bb/season-1", doc.Find(".message a").AttrOr("href", ""))
}

func TestEpisodePage_NoFiles(t *testing.T) {
	h, _ := newTestServer(t, map[string]string{
		"/api/media/bb/season/1/episode/3": `{"media":{"title":"BB","slug":"bb"},"season":1,"episode":{"episode_number":3,"files":[]}}`,
	})
	rr := get(t, h, "/bb/season-1/episode-3")
	require.Equal(t, 200, rr.Code)
	assert.Contains(t, rr.Body.String(), "No files available")
}

func TestRecentAndCategoryPages(t *testing.T) {
	h, api := newTestServer(t, map[string]string{"/api/recent": searchJSON}, WithRecentLimit(12))

	doc := parseDoc(t, get(t, h, "/recent"))
	assert.Equal(t, "Recent Uploads", doc.Find("main h1").Text())
	assert.Equal(t, 6, doc.Find(".grid .card").Length())
	assert.Contains(t, api.Calls(), "/api/recent?limit=12")

	doc = parseDoc(t, get(t, h, "/anime"))
	assert.Equal(t, "Anime", doc.Find("main h1").Text())
	assert.True(t, doc.Find(`nav a[href="/anime"]`).HasClass("active"))
	assert.Contains(t, api.Calls(), "/api/recent?limit=12&media_type=anime")
}

func TestCategoryPage_EmptyState(t *testing.T) {
	h, api := newTestServer(t, nil)
	api.fail("/api/recent", 503)

	rr := get(t, h, "/movies")
	require.Equal(t, 200, rr.Code)
	assert.Contains(t, rr.Body.String(), "No movies available yet.")

	rr = get(t, h, "/anime")
	assert.Contains(t, rr.Body.String(), "No anime available yet.")
}

func TestUnknownDeepPathIsNotFound(t *testing.T) {
	h, _ := newTestServer(t, nil)
	rr := get(t, h, "/a/b/c/d")
	assert.Equal(t, 404, rr.Code)
	assert.Contains(t, rr.Body.String(), "Page Not Found")
}

func browsePosterFallback() string {
	return "https://placehold.co/300x450?text=No+Image"
}

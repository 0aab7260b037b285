// Package browse turns catalog payloads into the view models rendered by the pages.
package browse

import (
	"sort"
	"strconv"
	"strings"

	"github.com/claes/teleflix/internal/format"
	"github.com/claes/teleflix/internal/links"
	"github.com/claes/teleflix/internal/model"
)

// PosterFallback is shown for titles without artwork.
const PosterFallback = "https://placehold.co/300x450?text=No+Image"

// GenreChoices is how many genres the search filter offers.
const GenreChoices = 5

// Sort orders understood by the search endpoint.
const (
	SortRecent  = "recent"
	SortPopular = "popular"
	SortAZ      = "az"
)

// Card is a media tile in result grids.
type Card struct {
	ID        string
	Href      string
	Title     string
	Poster    string
	TypeLabel string
	Year      string
	Rating    string
}

func Cards(results []model.MediaSummary) []Card {
	cards := make([]Card, 0, len(results))
	for _, r := range results {
		c := Card{
			ID:        r.ID,
			Href:      links.Media(r.Slug),
			Title:     r.Title,
			Poster:    r.Poster,
			TypeLabel: format.Capitalize(string(r.MediaType)),
			Rating:    format.Rating(r.Rating),
		}
		if c.Poster == "" {
			c.Poster = PosterFallback
		}
		if r.ReleaseYear > 0 {
			c.Year = strconv.Itoa(r.ReleaseYear)
		}
		cards = append(cards, c)
	}
	return cards
}

// FileOption is one quality button of the file list.
type FileOption struct {
	ID     string
	Label  string
	Href   string
	Active bool
}

// FileSelection is the state of the file list widget for one page render.
type FileSelection struct {
	Options     []FileOption
	Selected    model.FileInfo
	HasSelected bool
	Size        string
	StreamURL   string
	DownloadURL string
	PlayersURL  string
}

// SelectFile picks selectedID among files, or the first file when the id is
// empty or unknown. page is the URL the quality buttons link back to.
func SelectFile(page string, files []model.FileInfo, selectedID string) FileSelection {
	var fs FileSelection
	if len(files) == 0 {
		return fs
	}
	idx := 0
	for i, f := range files {
		if f.FileID == selectedID {
			idx = i
			break
		}
	}
	fs.Selected = files[idx]
	fs.HasSelected = true
	fs.Size = format.FileSize(fs.Selected.FileSize)
	fs.StreamURL = links.Stream(fs.Selected.FileID)
	fs.DownloadURL = links.Download(fs.Selected.FileID)
	fs.PlayersURL = links.Players(fs.Selected.FileID)
	fs.Options = make([]FileOption, 0, len(files))
	for i, f := range files {
		fs.Options = append(fs.Options, FileOption{
			ID:     f.FileID,
			Label:  format.FileLabel(f),
			Href:   links.WithFile(page, f.FileID),
			Active: i == idx,
		})
	}
	return fs
}

// SeasonCard links to one season of a series.
type SeasonCard struct {
	Number       int
	Title        string
	Href         string
	EpisodeCount int
}

func SeasonCards(m model.Media) []SeasonCard {
	nums := m.SeasonNumbers()
	cards := make([]SeasonCard, 0, len(nums))
	for _, n := range nums {
		s := m.Seasons[n]
		cards = append(cards, SeasonCard{
			Number:       n,
			Title:        s.Title,
			Href:         links.Season(m.Slug, n),
			EpisodeCount: len(s.Episodes),
		})
	}
	return cards
}

// EpisodeRow is one entry of a season's episode list.
type EpisodeRow struct {
	Number int
	Title  string
	Href   string
	Badges []string
}

func EpisodeRows(slug string, seasonNumber int, s model.Season) []EpisodeRow {
	nums := s.EpisodeNumbers()
	rows := make([]EpisodeRow, 0, len(nums))
	for _, n := range nums {
		ep := s.Episodes[n]
		row := EpisodeRow{
			Number: n,
			Title:  strings.TrimSpace(ep.Title),
			Href:   links.Episode(slug, seasonNumber, n),
		}
		for _, f := range ep.Files {
			row.Badges = append(row.Badges, format.Badge(f))
		}
		rows = append(rows, row)
	}
	return rows
}

// Nav holds the previous/next episode links. Prev is empty on the first episode.
type Nav struct {
	Prev string
	Next string
}

// EpisodeNav links to the neighbouring episode numbers. The catalog does not
// say how many episodes a season has, so Next is always offered.
func EpisodeNav(slug string, season, episode int) Nav {
	var n Nav
	if episode > 1 {
		n.Prev = links.Episode(slug, season, episode-1)
	}
	n.Next = links.Episode(slug, season, episode+1)
	return n
}

// FilterOption is one chip of a search filter group.
type FilterOption struct {
	Label  string
	Href   string
	Active bool
}

type FilterGroup struct {
	Title   string
	Options []FilterOption
}

// Filters builds the media type, genre and sort groups of the search page.
// Each link keeps the other two dimensions of the current search.
func Filters(q, mediaType, genre, sortBy string, genres []string) []FilterGroup {
	if sortBy == "" {
		sortBy = SortRecent
	}
	types := FilterGroup{Title: "Media Type"}
	types.Options = append(types.Options, FilterOption{
		Label: "All", Href: links.Search(q, "", genre, sortBy), Active: mediaType == "",
	})
	for _, t := range []struct{ value, label string }{
		{string(model.Movie), "Movies"},
		{string(model.Series), "Series"},
		{string(model.Anime), "Anime"},
	} {
		types.Options = append(types.Options, FilterOption{
			Label: t.label, Href: links.Search(q, t.value, genre, sortBy), Active: mediaType == t.value,
		})
	}

	g := FilterGroup{Title: "Genre"}
	g.Options = append(g.Options, FilterOption{
		Label: "All", Href: links.Search(q, mediaType, "", sortBy), Active: genre == "",
	})
	shown := genres
	if len(shown) > GenreChoices {
		shown = shown[:GenreChoices]
	}
	for _, name := range shown {
		g.Options = append(g.Options, FilterOption{
			Label: name, Href: links.Search(q, mediaType, name, sortBy), Active: genre == name,
		})
	}

	s := FilterGroup{Title: "Sort By"}
	for _, o := range []struct{ value, label string }{
		{SortRecent, "Recent"},
		{SortPopular, "Popular"},
		{SortAZ, "A-Z"},
	} {
		s.Options = append(s.Options, FilterOption{
			Label: o.label, Href: links.Search(q, mediaType, genre, o.value), Active: sortBy == o.value,
		})
	}
	return []FilterGroup{types, g, s}
}

// SortGenres returns genres ordered case-insensitively, dropping blanks and duplicates.
func SortGenres(genres []string) []string {
	seen := make(map[string]bool, len(genres))
	out := make([]string, 0, len(genres))
	for _, g := range genres {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i]), strings.ToLower(out[j])
		if li == lj {
			return out[i] < out[j]
		}
		return li < lj
	})
	return out
}

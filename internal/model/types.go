package model

import "sort"

// MediaType is the catalog category of a title.
type MediaType string

const (
	Movie  MediaType = "movie"
	Series MediaType = "series"
	Anime  MediaType = "anime"
)

// IsEpisodic reports whether the media is organised in seasons and episodes.
func (t MediaType) IsEpisodic() bool {
	return t == Series || t == Anime
}

// Valid reports whether t is one of the known media types.
func (t MediaType) Valid() bool {
	switch t {
	case Movie, Series, Anime:
		return true
	}
	return false
}

// FileInfo is one downloadable/streamable variant of a movie or episode.
type FileInfo struct {
	FileID   string `json:"file_id"`
	FileSize int64  `json:"file_size"`
	Quality  string `json:"quality"`
	Source   string `json:"source,omitempty"`
	Format   string `json:"format,omitempty"`
}

type Episode struct {
	EpisodeNumber int        `json:"episode_number"`
	Title         string     `json:"title,omitempty"`
	Files         []FileInfo `json:"files"`
}

type Season struct {
	SeasonNumber int             `json:"season_number"`
	Title        string          `json:"title,omitempty"`
	Episodes     map[int]Episode `json:"episodes"`
}

// EpisodeNumbers returns the episode keys in ascending order.
func (s Season) EpisodeNumbers() []int {
	return sortedKeys(s.Episodes)
}

// Media is the full catalog record returned by /api/media/{slug}.
// Movies carry Files, series and anime carry Seasons.
type Media struct {
	ID          string         `json:"_id"`
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	MediaType   MediaType      `json:"media_type"`
	Poster      string         `json:"poster,omitempty"`
	Backdrop    string         `json:"backdrop,omitempty"`
	Plot        string         `json:"plot,omitempty"`
	Rating      *float64       `json:"rating,omitempty"`
	Genres      []string       `json:"genres"`
	ReleaseYear int            `json:"release_year,omitempty"`
	Files       []FileInfo     `json:"files"`
	Seasons     map[int]Season `json:"seasons"`
}

// SeasonNumbers returns the season keys in ascending order.
func (m Media) SeasonNumbers() []int {
	return sortedKeys(m.Seasons)
}

// MediaSummary is the list representation used by search and recent results.
type MediaSummary struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	MediaType   MediaType `json:"media_type"`
	Poster      string    `json:"poster,omitempty"`
	Rating      *float64  `json:"rating,omitempty"`
	Genres      []string  `json:"genres"`
	ReleaseYear int       `json:"release_year,omitempty"`
}

type SearchResponse struct {
	Results []MediaSummary `json:"results"`
	Total   int            `json:"total"`
}

type GenresResponse struct {
	Genres []string `json:"genres"`
}

// SeasonData is the payload of /api/media/{slug}/season/{n}.
type SeasonData struct {
	Media  Media  `json:"media"`
	Season Season `json:"season"`
}

// EpisodeData is the payload of /api/media/{slug}/season/{s}/episode/{e}.
type EpisodeData struct {
	Media   Media   `json:"media"`
	Season  int     `json:"season"`
	Episode Episode `json:"episode"`
}

// FileLink is a one-off playback or download URL for a file.
type FileLink struct {
	FileID       string `json:"file_id"`
	DownloadLink string `json:"download_link,omitempty"`
	StreamLink   string `json:"stream_link,omitempty"`
	FileSize     int64  `json:"file_size"`
	Quality      string `json:"quality"`
	Source       string `json:"source,omitempty"`
	Format       string `json:"format,omitempty"`
}

func sortedKeys[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Package links builds the site URLs and the third-party player deep links.
package links

import (
	"net/url"
	"strconv"
)

// Media returns the detail page path for slug.
func Media(slug string) string {
	return "/" + url.PathEscape(slug)
}

func Season(slug string, season int) string {
	return Media(slug) + "/season-" + strconv.Itoa(season)
}

func Episode(slug string, season, episode int) string {
	return Season(slug, season) + "/episode-" + strconv.Itoa(episode)
}

// Search builds a search page URL. q is always present; empty filters are omitted.
func Search(q, mediaType, genre, sort string) string {
	v := url.Values{}
	v.Set("q", q)
	if mediaType != "" {
		v.Set("media_type", mediaType)
	}
	if genre != "" {
		v.Set("genre", genre)
	}
	if sort != "" {
		v.Set("sort", sort)
	}
	return "/search?" + v.Encode()
}

// Genre is the link used by genre chips on the detail page.
func Genre(genre string) string {
	return "/search?" + url.Values{"genre": {genre}}.Encode()
}

// WithFile returns page with the selected file query parameter set.
func WithFile(page, fileID string) string {
	return page + "?" + url.Values{"file": {fileID}}.Encode()
}

func Stream(fileID string) string   { return "/stream/" + url.PathEscape(fileID) }
func Download(fileID string) string { return "/download/" + url.PathEscape(fileID) }
func Players(fileID string) string  { return "/players/" + url.PathEscape(fileID) }

// PlayerTitle is the title handed to Android players.
const PlayerTitle = "Teleflix Stream"

// Player is one external player option.
type Player struct {
	Name string
	URL  string
}

// ExternalPlayers returns the deep links that hand streamLink to external players.
func ExternalPlayers(streamLink string) []Player {
	return []Player{
		{Name: "VLC Player", URL: VLC(streamLink)},
		{Name: "MX Player", URL: MXPlayer(streamLink)},
		{Name: "nPlayer", URL: NPlayer(streamLink)},
	}
}

func VLC(streamLink string) string {
	return "vlc://" + streamLink
}

// MXPlayer builds an Android intent URI targeting MX Player.
func MXPlayer(streamLink string) string {
	return "intent:" + streamLink + "#Intent;package=com.mxtech.videoplayer.ad;S.title=" +
		url.PathEscape(PlayerTitle) + ";end"
}

func NPlayer(streamLink string) string {
	return "nplayer-" + streamLink
}

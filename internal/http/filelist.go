package http

import (
	"html/template"
	nethttp "net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/claes/teleflix/internal/format"
	"github.com/claes/teleflix/internal/links"
	"github.com/claes/teleflix/internal/logging"
	"github.com/claes/teleflix/internal/model"
)

const (
	streamFailed   = "Failed to generate streaming link. Please try again."
	downloadFailed = "Failed to generate download link. Please try again."
)

// handleStream resolves a one-off stream URL and sends the browser there.
func (s *server) handleStream(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := chi.URLParam(r, "fileID")
	link, err := s.catalog.StreamLink(r.Context(), id)
	if err != nil {
		logging.Warn("stream link failed", "file_id", id, "err", err)
		s.linkFailed(w, r, streamFailed)
		return
	}
	nethttp.Redirect(w, r, link.StreamLink, nethttp.StatusFound)
}

func (s *server) handleDownload(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := chi.URLParam(r, "fileID")
	link, err := s.catalog.DownloadLink(r.Context(), id)
	if err != nil {
		logging.Warn("download link failed", "file_id", id, "err", err)
		s.linkFailed(w, r, downloadFailed)
		return
	}
	nethttp.Redirect(w, r, link.DownloadLink, nethttp.StatusFound)
}

type playerLink struct {
	Name string
	URL  template.URL
}

type playersPage struct {
	Quality  string
	Players  []playerLink
	BackHref string
}

// handlePlayers lists deep links that open the stream in a third-party player.
func (s *server) handlePlayers(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := chi.URLParam(r, "fileID")
	link, err := s.catalog.StreamLink(r.Context(), id)
	if err != nil {
		logging.Warn("stream link failed", "file_id", id, "err", err)
		s.linkFailed(w, r, streamFailed)
		return
	}
	p := playersPage{BackHref: localReferer(r)}
	if link.Quality != "" {
		p.Quality = format.FileLabel(model.FileInfo{Quality: link.Quality, Source: link.Source, Format: link.Format})
	}
	for _, pl := range links.ExternalPlayers(link.StreamLink) {
		// Custom schemes would otherwise be rewritten to #ZgotmplZ.
		p.Players = append(p.Players, playerLink{Name: pl.Name, URL: template.URL(pl.URL)})
	}
	s.render(w, r, nethttp.StatusOK, "players", pageData{Title: "External Player", Content: p})
}

func (s *server) linkFailed(w nethttp.ResponseWriter, r *nethttp.Request, text string) {
	s.renderMessage(w, r, nethttp.StatusBadGateway, "Link Unavailable", message{
		Heading:   "Link Unavailable",
		Text:      text,
		BackHref:  localReferer(r),
		BackLabel: "Go Back",
	})
}

// localReferer returns the path of a same-host referer, or "/".
func localReferer(r *nethttp.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Host != r.Host || ref.Path == "" {
		return "/"
	}
	return safeLocalPath(ref.RequestURI())
}

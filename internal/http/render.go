package http

import (
	"bytes"
	"embed"
	"html/template"
	nethttp "net/http"

	"github.com/claes/teleflix/internal/format"
	"github.com/claes/teleflix/internal/logging"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var pageNames = []string{"home", "list", "search", "media", "season", "episode", "players", "message"}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() *renderer {
	funcs := template.FuncMap{
		"capitalize": format.Capitalize,
		"rating":     format.Rating,
	}
	r := &renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		r.pages[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.tmpl", "templates/partials.tmpl", "templates/"+name+".tmpl"))
	}
	return r
}

// pageData is what the layout renders around every page.
type pageData struct {
	Title    string
	Nav      string
	Dark     bool
	ThemeSet bool
	Return   string
	Query    string
	Year     int
	Content  any
}

func (s *server) render(w nethttp.ResponseWriter, r *nethttp.Request, code int, name string, d pageData) {
	d.Dark, d.ThemeSet = themeFromRequest(r)
	d.Return = r.URL.RequestURI()
	d.Year = s.now().Year()
	if d.Title == "" {
		d.Title = "Teleflix - Stream Movies, Series, and Anime"
	} else {
		d.Title += " - Teleflix"
	}

	var buf bytes.Buffer
	if err := s.pages.pages[name].ExecuteTemplate(&buf, "layout", d); err != nil {
		logging.Error("render failed", "page", name, "err", err)
		httpError(w, nethttp.StatusInternalServerError, "internal error")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

// message is the content of not-found and error pages.
type message struct {
	Heading   string
	Text      string
	BackHref  string
	BackLabel string
}

func (s *server) renderMessage(w nethttp.ResponseWriter, r *nethttp.Request, code int, title string, m message) {
	s.render(w, r, code, "message", pageData{Title: title, Content: m})
}

func (s *server) handleNotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	s.renderMessage(w, r, nethttp.StatusNotFound, "Not Found", message{
		Heading:   "Page Not Found",
		Text:      "The requested page could not be found.",
		BackHref:  "/",
		BackLabel: "Return to Home",
	})
}

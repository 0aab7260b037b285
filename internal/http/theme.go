package http

import (
	nethttp "net/http"
	"strings"
	"time"
)

const themeCookie = "darkMode"

// themeFromRequest returns the stored preference and whether one was stored.
func themeFromRequest(r *nethttp.Request) (dark, set bool) {
	c, err := r.Cookie(themeCookie)
	if err != nil {
		return false, false
	}
	switch c.Value {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// handleTheme flips the theme. The form posts the theme currently shown, which
// may come from the system preference when no cookie is stored yet.
func (s *server) handleTheme(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.ParseForm(); err != nil {
		httpError(w, nethttp.StatusBadRequest, "invalid form")
		return
	}
	current, _ := themeFromRequest(r)
	switch r.PostForm.Get("current") {
	case "true":
		current = true
	case "false":
		current = false
	}
	next := "true"
	if current {
		next = "false"
	}
	nethttp.SetCookie(w, &nethttp.Cookie{
		Name:     themeCookie,
		Value:    next,
		Path:     "/",
		Expires:  s.now().Add(365 * 24 * time.Hour),
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: nethttp.SameSiteLaxMode,
	})
	nethttp.Redirect(w, r, safeLocalPath(r.PostForm.Get("return")), nethttp.StatusSeeOther)
}

// safeLocalPath only lets same-site absolute paths through.
func safeLocalPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return "/"
	}
	return p
}

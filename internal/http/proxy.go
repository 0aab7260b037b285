package http

import (
	nethttp "net/http"
	"net/http/httputil"
	"net/url"

	"github.com/claes/teleflix/internal/logging"
)

// newAPIProxy forwards /api/* unchanged to the catalog API so browser code can
// reach it from the same origin.
func newAPIProxy(target *url.URL) nethttp.Handler {
	p := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
			logging.Warn("api proxy failed", "path", r.URL.Path, "err", err)
			writeJSON(w, nethttp.StatusBadGateway, map[string]string{"detail": "catalog API unavailable"})
		},
	}
	return p
}

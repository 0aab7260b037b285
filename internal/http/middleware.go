package http

import (
	"crypto/subtle"
	"encoding/base64"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/claes/teleflix/internal/logging"
	"github.com/claes/teleflix/internal/metrics"
)

func accessLog(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"dur", time.Since(start).Round(time.Millisecond),
			"req_id", middleware.GetReqID(r.Context()),
		)
	})
}

// countRequests labels requests with the matched route pattern so that slugs
// and file ids do not explode the metric cardinality.
func countRequests(next nethttp.Handler) nethttp.Handler {
	return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = nethttp.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

// requirePassword accepts "Authorization: Bearer <pw>" or basic auth with any
// user name and <pw> as password. Browsers get a basic auth challenge.
func requirePassword(pw string) func(nethttp.Handler) nethttp.Handler {
	want := []byte(pw)
	return func(next nethttp.Handler) nethttp.Handler {
		return nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
			if got, ok := presentedPassword(r); ok && subtle.ConstantTimeCompare([]byte(got), want) == 1 {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("WWW-Authenticate", `Basic realm="Teleflix"`)
			httpError(w, nethttp.StatusUnauthorized, "Password required")
		})
	}
}

func presentedPassword(r *nethttp.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return token, true
	}
	if raw, ok := strings.CutPrefix(h, "Basic "); ok {
		b, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return "", false
		}
		_, pass, found := strings.Cut(string(b), ":")
		return pass, found
	}
	return "", false
}

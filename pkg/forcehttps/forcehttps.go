package forcehttps

import (
	"net"
	"net/http"
	"strconv"
)

// Filter decides per request whether it should be upgraded to HTTPS.
// Returning false lets the request through on plain HTTP, which is useful
// for health checks and ACME challenges.
type Filter func(r *http.Request) bool

// ForceHTTPS redirects plain HTTP requests to their HTTPS equivalent with a
// permanent redirect, preserving the path and query. Requests that already
// arrived over TLS pass through untouched.
type ForceHTTPS struct {
	port   int
	filter Filter
}

// New creates a ForceHTTPS middleware. By default every plain HTTP request
// is redirected to the same host and port over HTTPS.
func New(opts ...Option) *ForceHTTPS {
	f := &ForceHTTPS{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Middleware wraps next, redirecting plain HTTP requests to HTTPS.
func (f *ForceHTTPS) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.TLS != nil {
			next.ServeHTTP(w, r)
			return
		}
		if f.filter != nil && !f.filter(r) {
			next.ServeHTTP(w, r)
			return
		}

		target := "https://" + redirectHost(r.Host, f.port) + r.URL.RequestURI()
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
	})
}

// redirectHost rewrites the request host for the redirect target. With no
// port override the host is kept as-is; with one, any existing port is
// replaced by the override.
func redirectHost(host string, port int) string {
	if port == 0 {
		return host
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

package forcehttps_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/forcehttps"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
}

func TestForceHTTPS_Redirect(t *testing.T) {
	t.Run("plain http gets a permanent redirect", func(t *testing.T) {
		srv := forcehttps.New().Middleware(okHandler())

		r := httptest.NewRequest("GET", "http://example.com/path?q=1", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)

		assert.Equal(t, http.StatusPermanentRedirect, w.Code)
		assert.Equal(t, "https://example.com/path?q=1", w.Header().Get("Location"))
	})

	t.Run("https passes through", func(t *testing.T) {
		srv := forcehttps.New().Middleware(okHandler())

		r := httptest.NewRequest("GET", "https://example.com/path", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ok", w.Body.String())
	})

	t.Run("path and query preserved", func(t *testing.T) {
		srv := forcehttps.New().Middleware(okHandler())

		r := httptest.NewRequest("GET", "http://example.com/a/b/c?x=1&y=2", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)

		assert.Equal(t, "https://example.com/a/b/c?x=1&y=2", w.Header().Get("Location"))
	})
}

func TestForceHTTPS_PortOverride(t *testing.T) {
	tests := []struct {
		name string
		host string
		port int
		want string
	}{
		{"adds override port", "example.com", 1234, "example.com:1234"},
		{"replaces existing port", "example.com:5678", 1234, "example.com:1234"},
		{"no override keeps port", "example.com:1234", 0, "example.com:1234"},
		{"no override keeps bare host", "example.com", 0, "example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var opts []forcehttps.Option
			if tt.port != 0 {
				opts = append(opts, forcehttps.WithHTTPSPort(tt.port))
			}
			srv := forcehttps.New(opts...).Middleware(okHandler())

			r := httptest.NewRequest("GET", "http://"+tt.host+"/", nil)
			r.Host = tt.host
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, r)

			require.Equal(t, http.StatusPermanentRedirect, w.Code)
			assert.Equal(t, "https://"+tt.want+"/", w.Header().Get("Location"))
		})
	}
}

func TestForceHTTPS_Filter(t *testing.T) {
	srv := forcehttps.New(
		forcehttps.WithFilter(func(r *http.Request) bool {
			return !strings.HasPrefix(r.URL.Path, "/.well-known/")
		}),
	).Middleware(okHandler())

	t.Run("exempted path stays on http", func(t *testing.T) {
		r := httptest.NewRequest("GET", "http://example.com/.well-known/acme-challenge/token", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other paths still redirect", func(t *testing.T) {
		r := httptest.NewRequest("GET", "http://example.com/app", nil)
		w := httptest.NewRecorder()
		srv.ServeHTTP(w, r)

		assert.Equal(t, http.StatusPermanentRedirect, w.Code)
	})
}

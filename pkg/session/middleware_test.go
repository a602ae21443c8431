package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestMiddleware_CommitBeforeBody(t *testing.T) {
	store := session.NewMemoryStore(0)
	handler := setupHandler(t, store)

	t.Run("cookie set despite body write", func(t *testing.T) {
		srv := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session.MustFromContext(r.Context()).Set("user", "alice")
			_, _ = w.Write([]byte("hello"))
		}))

		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, "hello", w.Body.String())
		assert.NotNil(t, sessionCookie(t, w))
	})

	t.Run("cookie set despite explicit status", func(t *testing.T) {
		srv := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session.MustFromContext(r.Context()).Set("user", "bob")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("created"))
		}))

		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NotNil(t, sessionCookie(t, w))
	})

	t.Run("cookie set despite flush", func(t *testing.T) {
		srv := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session.MustFromContext(r.Context()).Set("user", "carol")
			w.(http.Flusher).Flush()
			_, _ = w.Write([]byte("streamed"))
		}))

		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.True(t, w.Flushed)
		assert.NotNil(t, sessionCookie(t, w))
	})

	t.Run("handler that writes nothing still commits", func(t *testing.T) {
		srv := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session.MustFromContext(r.Context()).Set("user", "dave")
		}))

		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		assert.NotNil(t, sessionCookie(t, w))
	})
}

func TestMiddleware_CommitOnce(t *testing.T) {
	store := session.NewMemoryStore(0)
	handler := setupHandler(t, store)

	srv := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Multiple writes must not produce multiple commits.
		_, _ = w.Write([]byte("one"))
		_, _ = w.Write([]byte("two"))
		w.(http.Flusher).Flush()
	}))

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	var count int
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookieName {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestMiddleware_CancelledRequest(t *testing.T) {
	store := session.NewMemoryStore(0)
	handler := setupHandler(t, store)

	srv := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session.MustFromContext(r.Context()).Set("user", "alice")
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/", nil).WithContext(ctx))

	// A cancelled request persists nothing and sets no cookie.
	assert.Equal(t, 0, store.Len())
	assert.Nil(t, sessionCookie(t, w))
}

func TestMiddleware_ResponseController(t *testing.T) {
	handler := setupHandler(t, session.NewMemoryStore(0))

	srv := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The wrapped writer must stay usable through http.ResponseController.
		rc := http.NewResponseController(w)
		assert.NoError(t, rc.Flush())
	}))

	w := httptest.NewRecorder()
	srv.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	assert.True(t, w.Flushed)
}

func TestMiddleware_ChiRouter(t *testing.T) {
	store := session.NewMemoryStore(0)
	handler := setupHandler(t, store)

	r := chi.NewRouter()
	r.Use(handler.Middleware)
	r.Post("/login", func(w http.ResponseWriter, req *http.Request) {
		session.MustFromContext(req.Context()).Set("user", "alice")
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/me", func(w http.ResponseWriter, req *http.Request) {
		user, ok := session.MustFromContext(req.Context()).GetString("user")
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(user))
	})

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest("POST", "/login", nil))
	require.Equal(t, http.StatusNoContent, w1.Code)
	c := sessionCookie(t, w1)
	require.NotNil(t, c)

	req := httptest.NewRequest("GET", "/me", nil)
	req.AddCookie(c)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Equal(t, "alice", w2.Body.String())
}

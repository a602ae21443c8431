package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestFromContext(t *testing.T) {
	t.Run("empty context", func(t *testing.T) {
		sess, ok := session.FromContext(context.Background())
		assert.False(t, ok)
		assert.Nil(t, sess)
	})

	t.Run("inside middleware", func(t *testing.T) {
		handler := setupHandler(t, session.NewMemoryStore(0))

		var sess *session.Session
		srv := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var ok bool
			sess, ok = session.FromContext(r.Context())
			assert.True(t, ok)
		}))

		srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
		assert.NotNil(t, sess)
	})
}

func TestMustFromContext(t *testing.T) {
	assert.Panics(t, func() {
		session.MustFromContext(context.Background())
	})
}

func TestReplace(t *testing.T) {
	t.Run("replacement gets persisted", func(t *testing.T) {
		store := session.NewMemoryStore(0)
		handler := setupHandler(t, store)

		replacement := session.New()
		replacement.Set("user", "replaced")

		srv := handler.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.True(t, session.Replace(r.Context(), replacement))

			sess := session.MustFromContext(r.Context())
			assert.Equal(t, replacement.ID(), sess.ID())
		}))

		w := httptest.NewRecorder()
		srv.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

		loaded, err := store.Load(context.Background(), sessionToken(t, w))
		require.NoError(t, err)
		require.NotNil(t, loaded)
		user, _ := loaded.GetString("user")
		assert.Equal(t, "replaced", user)
	})

	t.Run("nil replacement rejected", func(t *testing.T) {
		assert.False(t, session.Replace(context.Background(), nil))
	})

	t.Run("no slot rejected", func(t *testing.T) {
		assert.False(t, session.Replace(context.Background(), session.New()))
	})
}

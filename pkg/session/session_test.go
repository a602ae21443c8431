package session_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/sessionkit/pkg/session"
)

func TestSession_New(t *testing.T) {
	sess := session.New()
	require.NotNil(t, sess)

	assert.NotEmpty(t, sess.ID())
	assert.False(t, sess.Changed())
	assert.False(t, sess.IsDestroyed())
	assert.True(t, sess.Expiry().IsZero())

	t.Run("token hashes to id", func(t *testing.T) {
		fresh := session.New()
		token := fresh.TakeCookieToken()
		require.NotEmpty(t, token)
		assert.Equal(t, fresh.ID(), session.HashToken(token))
	})

	t.Run("ids are unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			id := session.New().ID()
			assert.False(t, seen[id])
			seen[id] = true
		}
	})
}

func TestSession_DataAccess(t *testing.T) {
	t.Run("get and set", func(t *testing.T) {
		sess := session.New()

		_, ok := sess.Get("missing")
		assert.False(t, ok)

		sess.Set("user", "alice")
		val, ok := sess.Get("user")
		assert.True(t, ok)
		assert.Equal(t, "alice", val)
	})

	t.Run("typed getters", func(t *testing.T) {
		sess := session.New()
		sess.Set("name", "alice")
		sess.Set("count", 42)
		sess.Set("float", float64(7))
		sess.Set("admin", true)

		name, ok := sess.GetString("name")
		assert.True(t, ok)
		assert.Equal(t, "alice", name)

		count, ok := sess.GetInt("count")
		assert.True(t, ok)
		assert.Equal(t, 42, count)

		f, ok := sess.GetInt("float")
		assert.True(t, ok)
		assert.Equal(t, 7, f)

		admin, ok := sess.GetBool("admin")
		assert.True(t, ok)
		assert.True(t, admin)

		_, ok = sess.GetString("count")
		assert.False(t, ok)
		_, ok = sess.GetInt("name")
		assert.False(t, ok)
		_, ok = sess.GetBool("missing")
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		sess := session.New()
		sess.Set("key", "value")
		sess.Delete("key")

		_, ok := sess.Get("key")
		assert.False(t, ok)
	})

	t.Run("clear", func(t *testing.T) {
		sess := session.New()
		sess.Set("a", 1)
		sess.Set("b", 2)
		sess.Clear()

		_, ok := sess.Get("a")
		assert.False(t, ok)
		_, ok = sess.Get("b")
		assert.False(t, ok)
	})

	t.Run("nil session is safe", func(t *testing.T) {
		var sess *session.Session

		_, ok := sess.Get("key")
		assert.False(t, ok)
		sess.Set("key", "value")
		sess.Delete("key")
		sess.Clear()
		assert.False(t, sess.Changed())
		assert.False(t, sess.IsDestroyed())
	})
}

func TestSession_ChangeTracking(t *testing.T) {
	t.Run("set marks changed", func(t *testing.T) {
		sess := session.New()
		assert.False(t, sess.Changed())
		sess.Set("key", "value")
		assert.True(t, sess.Changed())
	})

	t.Run("delete of existing key marks changed", func(t *testing.T) {
		sess := session.New()
		sess.Set("key", "value")

		reloaded := roundTrip(t, sess)
		assert.False(t, reloaded.Changed())

		reloaded.Delete("key")
		assert.True(t, reloaded.Changed())
	})

	t.Run("delete of absent key does not mark changed", func(t *testing.T) {
		sess := session.New()
		sess.Delete("missing")
		assert.False(t, sess.Changed())
	})

	t.Run("clear marks changed", func(t *testing.T) {
		sess := session.New()
		sess.Clear()
		assert.True(t, sess.Changed())
	})

	t.Run("expiry setters mark changed", func(t *testing.T) {
		sess := session.New()
		sess.SetExpiry(time.Now().Add(time.Hour))
		assert.True(t, sess.Changed())

		sess2 := session.New()
		sess2.ExpireIn(time.Hour)
		assert.True(t, sess2.Changed())
	})
}

func TestSession_Destroy(t *testing.T) {
	sess := session.New()
	assert.False(t, sess.IsDestroyed())

	sess.Destroy()
	assert.True(t, sess.IsDestroyed())

	// Destruction is one-way and survives later mutation.
	sess.Set("key", "value")
	assert.True(t, sess.IsDestroyed())
}

func TestSession_Expiry(t *testing.T) {
	t.Run("no expiry never expires", func(t *testing.T) {
		sess := session.New()
		assert.False(t, sess.IsExpired())
		assert.Same(t, sess, sess.Validate())
	})

	t.Run("future expiry is live", func(t *testing.T) {
		sess := session.New()
		sess.SetExpiry(time.Now().Add(time.Hour))
		assert.False(t, sess.IsExpired())
		assert.Same(t, sess, sess.Validate())
	})

	t.Run("past expiry is dead", func(t *testing.T) {
		sess := session.New()
		sess.SetExpiry(time.Now().Add(-time.Minute))
		assert.True(t, sess.IsExpired())
		assert.Nil(t, sess.Validate())
	})

	t.Run("nil validates to nil", func(t *testing.T) {
		var sess *session.Session
		assert.Nil(t, sess.Validate())
	})
}

func TestSession_TakeCookieToken(t *testing.T) {
	t.Run("yields once for new sessions", func(t *testing.T) {
		sess := session.New()
		token := sess.TakeCookieToken()
		assert.NotEmpty(t, token)
		assert.Empty(t, sess.TakeCookieToken())
	})

	t.Run("yields nothing after reload", func(t *testing.T) {
		sess := session.New()
		reloaded := roundTrip(t, sess)
		assert.Empty(t, reloaded.TakeCookieToken())
	})

	t.Run("nil session yields nothing", func(t *testing.T) {
		var sess *session.Session
		assert.Empty(t, sess.TakeCookieToken())
	})
}

func TestSession_JSON(t *testing.T) {
	t.Run("round trip preserves state", func(t *testing.T) {
		sess := session.New()
		sess.Set("user", "alice")
		sess.Set("count", 3)
		expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		sess.SetExpiry(expiry)

		reloaded := roundTrip(t, sess)
		assert.Equal(t, sess.ID(), reloaded.ID())
		assert.True(t, expiry.Equal(reloaded.Expiry()))

		user, ok := reloaded.GetString("user")
		assert.True(t, ok)
		assert.Equal(t, "alice", user)

		count, ok := reloaded.GetInt("count")
		assert.True(t, ok)
		assert.Equal(t, 3, count)
	})

	t.Run("reload resets request flags", func(t *testing.T) {
		sess := session.New()
		sess.Set("key", "value")
		sess.Destroy()

		reloaded := roundTrip(t, sess)
		assert.False(t, reloaded.Changed())
		assert.False(t, reloaded.IsDestroyed())
	})

	t.Run("cookie token is never serialized", func(t *testing.T) {
		sess := session.New()
		b, err := json.Marshal(sess)
		require.NoError(t, err)

		token := sess.TakeCookieToken()
		assert.NotContains(t, string(b), token)
	})

	t.Run("zero expiry is omitted", func(t *testing.T) {
		sess := session.New()
		b, err := json.Marshal(sess)
		require.NoError(t, err)
		assert.NotContains(t, string(b), "expires_at")

		reloaded := roundTrip(t, sess)
		assert.True(t, reloaded.Expiry().IsZero())
	})
}

// roundTrip serializes a session and decodes it back the way a store would.
func roundTrip(t *testing.T, sess *session.Session) *session.Session {
	t.Helper()

	b, err := json.Marshal(sess)
	require.NoError(t, err)

	reloaded := &session.Session{}
	require.NoError(t, json.Unmarshal(b, reloaded))
	return reloaded
}

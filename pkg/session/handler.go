package session

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

// Handler drives the session lifecycle for HTTP requests: it verifies and
// resolves the inbound cookie, exposes the session to the handler chain and
// decides at the end of each request whether to persist, destroy or skip.
//
// A Handler is immutable after construction and safe for concurrent use by
// any number of in-flight requests; the only per-request state is the
// Session itself, owned by that request.
type Handler struct {
	store     Store
	cookies   *cookie.Manager
	config    Config
	fallbacks []string
	log       *slog.Logger
}

// New creates a session Handler backed by the given store. The secret signs
// session cookies; fallback secrets added via WithFallbackSecrets keep
// previously issued cookies verifiable during key rotation. Construction
// fails when the store is missing or any secret is unusable as a signing
// key.
func New(store Store, secret string, opts ...Option) (*Handler, error) {
	h := &Handler{
		store:  store,
		config: DefaultConfig(),
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.store == nil {
		return nil, ErrNoStore
	}
	if h.log == nil {
		h.log = slog.Default()
	}

	cookieOpts := []cookie.Option{
		cookie.WithPath(h.config.CookiePath),
		cookie.WithSameSite(h.config.SameSite),
		cookie.WithHTTPOnly(true),
	}
	if h.config.CookieDomain != "" {
		cookieOpts = append(cookieOpts, cookie.WithDomain(h.config.CookieDomain))
	}

	cookies, err := cookie.New(append([]string{secret}, h.fallbacks...), cookieOpts...)
	if err != nil {
		return nil, err
	}
	h.cookies = cookies

	return h, nil
}

// begin resolves the request's session: the one referenced by a verified
// cookie when the store still has it, a fresh empty one otherwise. When a
// TTL is configured the expiry is re-derived for this request before the
// session is exposed, so neither the client nor a stale record decides how
// long the session lives.
func (h *Handler) begin(r *http.Request) *Session {
	sess := h.resolve(r)
	if sess == nil {
		sess = New()
	}

	if h.config.TTL > 0 {
		sess.refreshExpiry(h.config.TTL)
	}

	return sess
}

// resolve returns the stored session for the request's cookie, or nil. A
// missing cookie, a malformed or forged signature, a store failure and an
// expired session all land in the same place: no session. Failing open to
// an anonymous session means a garbled cookie can never turn into an error
// response.
func (h *Handler) resolve(r *http.Request) *Session {
	token, err := h.cookies.GetSigned(r, h.config.CookieName)
	if err != nil {
		return nil
	}

	sess, err := h.store.Load(r.Context(), token)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to load session", slog.Any("error", err))
		return nil
	}

	return sess.Validate()
}

// commit runs once per request after the handler chain is done with the
// session. Destruction wins over mutation; store failures are logged and
// the request completes regardless.
func (h *Handler) commit(w http.ResponseWriter, r *http.Request, slot *sessionSlot) {
	if r.Context().Err() != nil {
		// The chain was cancelled; skip persistence entirely.
		return
	}

	sess := slot.take()
	if sess == nil {
		panic("session: request slot is empty at commit time")
	}

	ctx := r.Context()
	switch {
	case sess.IsDestroyed():
		if err := h.store.Destroy(ctx, sess); err != nil {
			h.log.ErrorContext(ctx, "failed to destroy session", slog.Any("error", err))
		}
		// The cookie must stop referencing the destroyed session even if
		// the store call failed.
		h.cookies.Delete(w, h.config.CookieName)

	case h.config.SaveUnchanged || sess.Changed():
		token, err := h.store.Store(ctx, sess)
		if err != nil {
			h.log.ErrorContext(ctx, "failed to store session", slog.Any("error", err))
			return
		}
		if token == "" {
			return
		}

		opts := []cookie.Option{cookie.WithSecure(r.TLS != nil)}
		if h.config.TTL > 0 {
			opts = append(opts, cookie.WithExpiresIn(h.config.TTL))
		}
		if err := h.cookies.SetSigned(w, h.config.CookieName, token, opts...); err != nil {
			h.log.ErrorContext(ctx, "failed to set session cookie", slog.Any("error", err))
		}
	}
}

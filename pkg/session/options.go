package session

import (
	"log/slog"
	"net/http"
	"time"
)

// Option is a functional option for configuring the Handler
type Option func(*Handler)

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(h *Handler) {
		h.config = config
	}
}

// WithCookieName sets the session cookie name
func WithCookieName(name string) Option {
	return func(h *Handler) {
		h.config.CookieName = name
	}
}

// WithCookiePath sets the session cookie path
func WithCookiePath(path string) Option {
	return func(h *Handler) {
		h.config.CookiePath = path
	}
}

// WithCookieDomain sets the session cookie domain
func WithCookieDomain(domain string) Option {
	return func(h *Handler) {
		h.config.CookieDomain = domain
	}
}

// WithSameSite sets the SameSite policy for the session cookie
func WithSameSite(sameSite http.SameSite) Option {
	return func(h *Handler) {
		h.config.SameSite = sameSite
	}
}

// WithTTL sets the session time-to-live, used for both the cookie expiry
// and the session-internal expiry. Zero disables expiry, which is not
// recommended.
func WithTTL(ttl time.Duration) Option {
	return func(h *Handler) {
		h.config.TTL = ttl
	}
}

// WithSaveUnchanged controls whether sessions are persisted even when no
// data was modified during the request.
func WithSaveUnchanged(save bool) Option {
	return func(h *Handler) {
		h.config.SaveUnchanged = save
	}
}

// WithFallbackSecrets adds verification-only secrets so cookies signed
// under previous keys keep working during key rotation.
func WithFallbackSecrets(secrets ...string) Option {
	return func(h *Handler) {
		h.fallbacks = append(h.fallbacks, secrets...)
	}
}

// WithLogger sets the logger used for store failures
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		h.log = log
	}
}

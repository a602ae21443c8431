package session

import (
	"net/http"
	"strings"
	"time"
)

// Config holds session handler configuration
type Config struct {
	// CookieName is the name of the session cookie (default: "sessionkit.sid")
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"sessionkit.sid"`

	// CookiePath scopes the session cookie (default: "/")
	CookiePath string `env:"SESSION_COOKIE_PATH" envDefault:"/"`

	// CookieDomain sets an explicit cookie domain; empty leaves it host-only
	CookieDomain string `env:"SESSION_COOKIE_DOMAIN" envDefault:""`

	// SameSite policy for the session cookie (default: 2 = SameSiteLaxMode)
	SameSite http.SameSite `env:"SESSION_SAME_SITE" envDefault:"2"`

	// TTL bounds both the cookie expiry and the session-internal expiry.
	// Zero disables expiry entirely, which is not recommended.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// SaveUnchanged persists the session (and re-issues a cookie for new
	// sessions) even when no data was modified during the request.
	SaveUnchanged bool `env:"SESSION_SAVE_UNCHANGED" envDefault:"true"`

	// Secrets is a comma-separated list of signing secrets; the first signs
	// new cookies, the rest verify cookies issued under previous keys.
	Secrets string `env:"SESSION_SECRETS" envDefault:""`
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		CookieName:    "sessionkit.sid",
		CookiePath:    "/",
		CookieDomain:  "",
		SameSite:      http.SameSiteLaxMode,
		TTL:           24 * time.Hour,
		SaveUnchanged: true,
	}
}

// parseSecrets splits the comma-separated secrets into primary and fallbacks.
func (c Config) parseSecrets() (primary string, fallbacks []string) {
	for _, s := range strings.Split(c.Secrets, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if primary == "" {
			primary = s
		} else {
			fallbacks = append(fallbacks, s)
		}
	}
	return primary, fallbacks
}

// NewFromConfig creates a Handler from the provided Config. Secrets come
// from the config; additional options are applied on top.
func NewFromConfig(store Store, cfg Config, opts ...Option) (*Handler, error) {
	primary, fallbacks := cfg.parseSecrets()

	configOpts := []Option{
		WithConfig(cfg),
		WithFallbackSecrets(fallbacks...),
	}
	configOpts = append(configOpts, opts...)

	return New(store, primary, configOpts...)
}

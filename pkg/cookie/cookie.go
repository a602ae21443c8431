package cookie

import (
	"errors"
	"net/http"
	"time"
)

// Manager reads and writes HTTP cookies with a set of default attributes,
// optionally signing values with its Keyset for tamper detection.
type Manager struct {
	keys     *Keyset
	defaults Options
}

// New creates a Manager. The first secret signs new cookies; any further
// secrets verify cookies signed under previous keys (key rotation).
func New(secrets []string, opts ...Option) (*Manager, error) {
	keys, err := NewKeyset(secrets)
	if err != nil {
		return nil, err
	}

	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	defaults = applyOptions(defaults, opts)

	return &Manager{
		keys:     keys,
		defaults: defaults,
	}, nil
}

// Keys returns the manager's keyset.
func (m *Manager) Keys() *Keyset {
	return m.keys
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	options := applyOptions(m.defaults, opts)

	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Expires:  options.Expires,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}

	http.SetCookie(w, cookie)
	return nil
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return cookie.Value, nil
}

// Delete instructs the client to drop the named cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     m.defaults.Path,
		Domain:   m.defaults.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: m.defaults.HttpOnly,
		SameSite: m.defaults.SameSite,
		Secure:   m.defaults.Secure,
	}
	http.SetCookie(w, cookie)
}

// SetSigned signs the value under the primary key and sets it as a cookie.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Set(w, name, m.keys.Sign(value), opts...)
}

// GetSigned reads the named cookie and verifies its signature, returning
// the original value. Tampered or malformed cookies fail verification.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}

	return m.keys.Verify(signed)
}

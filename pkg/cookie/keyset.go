package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"slices"
)

const (
	minSecretLength = 32

	// digestLength is the length of a base64-encoded HMAC-SHA256 digest.
	// Signed values carry the digest as a fixed-size prefix, so the split
	// point is structural rather than delimited.
	digestLength = 44
)

// Keyset holds the secrets used to sign and verify cookie values. The first
// secret signs new values; the remaining secrets are fallbacks that only
// verify, which keeps previously issued cookies valid during key rotation.
// A Keyset is immutable after construction and safe for concurrent use.
type Keyset struct {
	keys [][]byte
}

// NewKeyset validates the given secrets and builds a Keyset. Empty secrets
// are ignored; construction fails if no usable secret remains or if any
// secret is shorter than 32 bytes.
func NewKeyset(secrets []string) (*Keyset, error) {
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	keys := make([][]byte, 0, len(secrets))
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d bytes, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		keys = append(keys, []byte(s))
	}

	return &Keyset{keys: keys}, nil
}

// Sign computes HMAC-SHA256 of value under the primary key and returns the
// base64-encoded digest prepended to the value. Deterministic for a fixed
// key and value; it provides integrity and authenticity, not confidentiality.
func (k *Keyset) Sign(value string) string {
	mac := hmac.New(sha256.New, k.keys[0])
	mac.Write([]byte(value))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)) + value
}

// Verify checks a signed value and returns the original value on success.
// The primary key is tried first, then each fallback in order. Values that
// are too short to contain a digest or whose digest is not valid base64
// fail with ErrInvalidFormat; a digest that matches under no key fails with
// ErrInvalidSignature.
func (k *Keyset) Verify(signed string) (string, error) {
	if len(signed) < digestLength {
		return "", ErrInvalidFormat
	}

	digestPart, value := signed[:digestLength], signed[digestLength:]
	digest, err := base64.StdEncoding.DecodeString(digestPart)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, key := range k.keys {
		mac := hmac.New(sha256.New, key)
		mac.Write([]byte(value))
		// hmac.Equal is constant time, preventing timing attacks
		if hmac.Equal(digest, mac.Sum(nil)) {
			return value, nil
		}
	}

	return "", ErrInvalidSignature
}

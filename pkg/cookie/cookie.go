package cookie

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Errors.
var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrDecrypt   = errors.New("cookie: decryption failed")
)

// Manager writes and reads encrypted cookies that carry JSON values.
type Manager struct {
	aead     cipher.AEAD
	domain   string
	path     string
	secure   bool
	sameSite http.SameSite
}

// Option configures the Manager.
type Option func(*Manager)

// New creates a Manager. The secret must be at least 32 bytes; the AES-256
// key is its SHA-256 digest. Cookies are HttpOnly, Path=/ and SameSite=Lax
// unless overridden.
func New(secret string, opts ...Option) (*Manager, error) {
	if len(secret) < 32 {
		return nil, ErrBadSecret
	}

	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	m := &Manager{
		aead:     aead,
		path:     "/",
		sameSite: http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// WithDomain sets the cookie domain.
func WithDomain(domain string) Option {
	return func(m *Manager) {
		m.domain = domain
	}
}

// WithPath sets the cookie path.
func WithPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.path = path
		}
	}
}

// WithSecure sets the Secure flag.
func WithSecure(secure bool) Option {
	return func(m *Manager) {
		m.secure = secure
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(ss http.SameSite) Option {
	return func(m *Manager) {
		m.sameSite = ss
	}
}

// SetEncrypted stores v as JSON, sealed with AES-GCM. The cookie name is
// bound as additional data, so a value cannot be replayed under another name.
func (m *Manager) SetEncrypted(w http.ResponseWriter, name string, v any, maxAge int) error {
	plaintext, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cookie: encode %s: %w", name, err)
	}

	nonce := make([]byte, m.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("cookie: nonce: %w", err)
	}
	sealed := m.aead.Seal(nonce, nonce, plaintext, []byte(name))

	http.SetCookie(w, m.cookie(name, base64.RawURLEncoding.EncodeToString(sealed), maxAge))
	return nil
}

// GetEncrypted opens the named cookie and decodes its JSON into dest.
// Returns ErrNotFound when the cookie is absent and ErrDecrypt when it
// was not written by a Manager with the same secret.
func (m *Manager) GetEncrypted(r *http.Request, name string, dest any) error {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return ErrNotFound
		}
		return err
	}

	data, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil || len(data) < m.aead.NonceSize() {
		return ErrDecrypt
	}
	nonce, ciphertext := data[:m.aead.NonceSize()], data[m.aead.NonceSize():]

	plaintext, err := m.aead.Open(nil, nonce, ciphertext, []byte(name))
	if err != nil {
		return ErrDecrypt
	}
	if err := json.Unmarshal(plaintext, dest); err != nil {
		return errors.Join(ErrDecrypt, err)
	}
	return nil
}

// Delete expires the named cookie.
func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: m.sameSite,
	}
}

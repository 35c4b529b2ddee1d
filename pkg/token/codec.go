package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"
)

// DefaultTTL is the lifetime applied to tokens when no override is configured.
// Credentials wrapped by the codec are short-lived on purpose: an expired token
// forces the caller back through authentication instead of trusting stale state.
const DefaultTTL = time.Hour

// Config holds codec settings sourced from the environment.
type Config struct {
	Secret string        `env:"TOKEN_SECRET,required"` // Secret is the key material tokens are sealed with. Never logged.
	TTL    time.Duration `env:"TOKEN_TTL" envDefault:"1h"`
}

// Codec seals a sensitive value into an opaque string safe to persist.
// The payload is AES-256-GCM encrypted with a key derived from the configured
// secret, so the stored form carries both confidentiality and an integrity
// check, plus an embedded expiry.
type Codec struct {
	aead cipher.AEAD
	ttl  time.Duration
	now  func() time.Time
}

// Option configures a Codec.
type Option func(*Codec)

// WithTTL overrides the default token lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Codec) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock replaces the time source. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a Codec from the given secret. The secret may be any length;
// HKDF stretches it into a 256-bit AES key.
func New(secret string, opts ...Option) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(keyInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	c := &Codec{
		aead: aead,
		ttl:  DefaultTTL,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// NewFromConfig creates a Codec from environment-sourced configuration.
func NewFromConfig(cfg Config, opts ...Option) (*Codec, error) {
	if cfg.TTL > 0 {
		opts = append([]Option{WithTTL(cfg.TTL)}, opts...)
	}
	return New(cfg.Secret, opts...)
}

// keyInfo provides HKDF domain separation so the same secret cannot be reused
// for a different purpose with the same derived key.
const keyInfo = "storelocator-credential-token-v1"

type payload struct {
	Value     string `json:"v"`
	ExpiresAt int64  `json:"exp"` // unix seconds
}

// Encode wraps the secret value into an opaque token that expires after the
// configured TTL.
func (c *Codec) Encode(value string) (string, error) {
	data, err := json.Marshal(payload{
		Value:     value,
		ExpiresAt: c.now().Add(c.ttl).Unix(),
	})
	if err != nil {
		return "", err
	}

	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrEncodeFailed, err)
	}

	sealed := c.aead.Seal(nonce, nonce, data, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decode unwraps a token produced by Encode. It returns the original value and
// true only when the token is authentic and unexpired. Any failure, including
// tampering, truncation, and expiry, yields ("", false) so callers treat the
// result as "re-authenticate" rather than branching on error causes.
func (c *Codec) Decode(token string) (string, bool) {
	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", false
	}

	nonceSize := c.aead.NonceSize()
	if len(sealed) < nonceSize {
		return "", false
	}

	data, err := c.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return "", false
	}

	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return "", false
	}
	if c.now().Unix() >= p.ExpiresAt {
		return "", false
	}

	return p.Value, true
}

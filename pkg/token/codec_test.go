package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storelocator/pkg/token"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	codec, err := token.New("test-secret")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
	}{
		{name: "access token", value: "shpat_0123456789abcdef"},
		{name: "empty value", value: ""},
		{name: "unicode value", value: "tøken-ünicode"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tok, err := codec.Encode(tt.value)
			require.NoError(t, err)
			assert.NotContains(t, tok, tt.value, "token must be opaque")

			got, ok := codec.Decode(tok)
			require.True(t, ok)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestDecodeFailuresReturnFalse(t *testing.T) {
	t.Parallel()
	codec, err := token.New("test-secret")
	require.NoError(t, err)

	valid, err := codec.Encode("value")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "empty", token: ""},
		{name: "invalid base64", token: "!!!"},
		{name: "truncated", token: valid[:8]},
		{name: "tampered", token: tamper(valid)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := codec.Decode(tt.token)
			assert.False(t, ok)
			assert.Empty(t, got)
		})
	}
}

func TestDecodeWrongSecret(t *testing.T) {
	t.Parallel()
	codec, err := token.New("secret-a")
	require.NoError(t, err)
	other, err := token.New("secret-b")
	require.NoError(t, err)

	tok, err := codec.Encode("value")
	require.NoError(t, err)

	_, ok := other.Decode(tok)
	assert.False(t, ok)
}

func TestDecodeExpired(t *testing.T) {
	t.Parallel()
	current := time.Now()
	codec, err := token.New("test-secret",
		token.WithTTL(time.Hour),
		token.WithClock(func() time.Time { return current }),
	)
	require.NoError(t, err)

	tok, err := codec.Encode("value")
	require.NoError(t, err)

	// Still valid just before expiry.
	current = current.Add(59 * time.Minute)
	_, ok := codec.Decode(tok)
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok = codec.Decode(tok)
	assert.False(t, ok, "token must be rejected after TTL")
}

func TestNewEmptySecret(t *testing.T) {
	t.Parallel()
	_, err := token.New("")
	assert.ErrorIs(t, err, token.ErrEmptySecret)
}

// tamper flips a byte near the end of the token, inside the ciphertext.
func tamper(tok string) string {
	b := []byte(tok)
	i := len(b) - 2
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	return string(b)
}

func TestDecodeNeverPanics(t *testing.T) {
	t.Parallel()
	codec, err := token.New("test-secret")
	require.NoError(t, err)

	for _, tok := range []string{"", ".", "..", strings.Repeat("A", 3), strings.Repeat("A", 300)} {
		_, ok := codec.Decode(tok)
		assert.False(t, ok)
	}
}

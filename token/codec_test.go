package token

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	codec, err := NewCodec([]byte("test-secret-for-codec-tests"))
	require.NoError(t, err)
	return codec
}

func TestNewCodec(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := NewCodec(nil)
		assert.Error(t, err)

		_, err = NewCodec([]byte{})
		assert.Error(t, err)
	})

	t.Run("accepts non-empty secret", func(t *testing.T) {
		codec, err := NewCodec([]byte("s"))
		require.NoError(t, err)
		assert.NotNil(t, codec)
	})
}

func TestCodecRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	// JWT timestamps have second precision; truncate so the round trip
	// compares equal.
	now := time.Unix(time.Now().Unix(), 0)
	claims := NewClaims("student1", []string{"STUDENT"}, now, time.Hour)

	signed, err := codec.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	verified, err := codec.Verify(signed)
	require.NoError(t, err)

	assert.Equal(t, "student1", verified.Subject)
	assert.Equal(t, []string{"STUDENT"}, verified.Roles)
	assert.True(t, verified.IssuedAt.Time.Equal(now))
	assert.True(t, verified.ExpiresAt.Time.Equal(now.Add(time.Hour)))
}

func TestCodecSignRejectsInvalidClaims(t *testing.T) {
	codec := newTestCodec(t)
	now := time.Now()

	tests := []struct {
		name   string
		claims Claims
	}{
		{"missing subject", NewClaims("", []string{"STUDENT"}, now, time.Hour)},
		{"missing roles", NewClaims("student1", nil, now, time.Hour)},
		{"expiry before issuance", NewClaims("student1", []string{"STUDENT"}, now, -time.Hour)},
		{"expiry equals issuance", NewClaims("student1", []string{"STUDENT"}, now, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Sign(tt.claims)
			assert.ErrorIs(t, err, ErrInvalidClaims)
		})
	}
}

func TestCodecVerifyRejectsTampering(t *testing.T) {
	codec := newTestCodec(t)

	claims := NewClaims("student1", []string{"STUDENT"}, time.Now(), time.Hour)
	signed, err := codec.Sign(claims)
	require.NoError(t, err)

	// Flipping any bit anywhere in the token must never yield valid claims.
	for i := 0; i < len(signed); i++ {
		tampered := []byte(signed)
		tampered[i] ^= 0x01

		got, err := codec.Verify(string(tampered))
		if err == nil {
			t.Fatalf("tampered token at byte %d verified successfully", i)
		}
		assert.Nil(t, got)

		recognized := errors.Is(err, ErrMalformed) || errors.Is(err, ErrBadSignature) || errors.Is(err, ErrExpired)
		assert.True(t, recognized, "unexpected error for byte %d: %v", i, err)
	}
}

func TestCodecVerifyRejectsWrongKey(t *testing.T) {
	signer, err := NewCodec([]byte("signing-secret"))
	require.NoError(t, err)
	verifier, err := NewCodec([]byte("different-secret"))
	require.NoError(t, err)

	signed, err := signer.Sign(NewClaims("student1", []string{"STUDENT"}, time.Now(), time.Hour))
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestCodecVerifyExpiry(t *testing.T) {
	codec := newTestCodec(t)

	issued := time.Unix(time.Now().Unix(), 0)
	ttl := time.Hour

	signed, err := codec.Sign(NewClaims("student1", []string{"STUDENT"}, issued, ttl))
	require.NoError(t, err)

	t.Run("valid just before expiry", func(t *testing.T) {
		codec.Now = func() time.Time { return issued.Add(ttl - time.Second) }
		_, err := codec.Verify(signed)
		assert.NoError(t, err)
	})

	t.Run("expired exactly at expiry", func(t *testing.T) {
		codec.Now = func() time.Time { return issued.Add(ttl) }
		_, err := codec.Verify(signed)
		assert.ErrorIs(t, err, ErrExpired)
	})

	t.Run("expired after expiry", func(t *testing.T) {
		codec.Now = func() time.Time { return issued.Add(ttl + time.Minute) }
		_, err := codec.Verify(signed)
		assert.ErrorIs(t, err, ErrExpired)
	})
}

func TestCodecVerifyRejectsGarbage(t *testing.T) {
	codec := newTestCodec(t)

	for _, raw := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
		_, err := codec.Verify(raw)
		assert.ErrorIs(t, err, ErrMalformed, "input %q", raw)
	}
}

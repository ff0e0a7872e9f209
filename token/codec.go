package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. The authentication gate absorbs all of them
// and treats the request as anonymous; they are never surfaced to clients as
// distinct error codes.
var (
	ErrInvalidClaims = errors.New("token: invalid claims")
	ErrMalformed     = errors.New("token: malformed")
	ErrBadSignature  = errors.New("token: bad signature")
	ErrExpired       = errors.New("token: expired")
)

// Codec signs claim sets into compact HS256 tokens and verifies them back.
// It is stateless and safe for concurrent use; the secret is immutable for
// the process lifetime.
type Codec struct {
	secret []byte

	// Now is the clock used during verification. Defaults to time.Now.
	Now func() time.Time
}

func NewCodec(secret []byte) (*Codec, error) {
	if len(secret) == 0 {
		return nil, errors.New("token: signing secret cannot be empty")
	}

	return &Codec{secret: secret, Now: time.Now}, nil
}

// Sign encodes and authenticates the claim set. Claim sets without a subject
// or roles, or whose expiry does not follow issuance, are rejected with
// ErrInvalidClaims.
func (c *Codec) Sign(claims Claims) (string, error) {
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidClaims)
	}
	if len(claims.Roles) == 0 {
		return "", fmt.Errorf("%w: missing roles", ErrInvalidClaims)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil || !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		return "", fmt.Errorf("%w: expiry must be after issuance", ErrInvalidClaims)
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify recomputes the integrity check over the token and returns the
// embedded claims. The wall clock is read once per call. The signature
// comparison is constant time with respect to the secret.
func (c *Codec) Verify(raw string) (*Claims, error) {
	now := c.Now()

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, c.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, mapParseError(err)
	}

	if claims.Subject == "" || len(claims.Roles) == 0 {
		return nil, fmt.Errorf("%w: incomplete claims", ErrMalformed)
	}

	// The library treats exp == now as still valid; tokens die exactly at
	// their expiry instant.
	if !now.Before(claims.ExpiresAt.Time) {
		return nil, ErrExpired
	}

	return claims, nil
}

func (c *Codec) keyFunc(t *jwt.Token) (any, error) {
	return c.secret, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrTokenUnverifiable),
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}

package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the set of identity facts embedded in a session token. The
// registered claims carry subject (username), issuance and expiry; the roles
// claim carries the user's roles at login time. The token is the sole source
// of truth for identity at request time, so a role change or a compromised
// credential only takes effect after the token expires.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// NewClaims builds a claim set for a subject, valid from now until now+ttl.
func NewClaims(subject string, roles []string, now time.Time, ttl time.Duration) Claims {
	return Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

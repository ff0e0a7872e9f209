package token

import (
	"errors"

	"github.com/xompass/gradebook-api/authz"
)

// Resolve projects a verified claim set into a request principal. The first
// role of the claim set becomes the principal's role; it must belong to the
// closed role set. No store lookup happens here: the verified token is the
// sole source of identity for the request.
func Resolve(claims *Claims) (*authz.Principal, error) {
	if claims == nil || claims.Subject == "" {
		return nil, errors.New("token: claims have no subject")
	}
	if len(claims.Roles) == 0 {
		return nil, errors.New("token: claims have no roles")
	}

	role := authz.Role(claims.Roles[0])
	if !role.Valid() {
		return nil, errors.New("token: unknown role " + claims.Roles[0])
	}

	return &authz.Principal{
		Username: claims.Subject,
		Role:     role,
	}, nil
}

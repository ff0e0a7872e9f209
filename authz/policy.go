package authz

import (
	"github.com/xompass/gradebook-api/http_errors"
)

// Error codes for authorization decisions
const (
	AUTH_REQUIRED     = "AUTH_REQUIRED"
	INSUFFICIENT_ROLE = "INSUFFICIENT_ROLE"
	UNKNOWN_ROLE      = "UNKNOWN_ROLE"
)

var (
	// ErrUnauthenticated is returned when an operation requires an identity
	// and none was resolved for the request.
	ErrUnauthenticated = http_errors.UnauthorizedErrorWithCode(AUTH_REQUIRED, "authentication required")

	// ErrForbidden is returned when an identity is present but its role does
	// not allow the operation.
	ErrForbidden = http_errors.ForbiddenErrorWithCode(INSUFFICIENT_ROLE, "you do not have permission to perform this action")
)

// Principal is the authenticated identity resolved for a single request. It
// is derived from a verified token and passed explicitly through the call
// chain, never stored globally.
type Principal struct {
	Username string
	Role     Role
}

func (p *Principal) GetPrincipalID() string {
	return p.Username
}

func (p *Principal) GetPrincipalRole() string {
	return string(p.Role)
}

// RequireRole allows the call when the principal holds one of the allowed
// roles. A nil principal yields ErrUnauthenticated, a role mismatch
// ErrForbidden.
func RequireRole(principal *Principal, allowed ...Role) error {
	if principal == nil {
		return ErrUnauthenticated
	}

	for _, role := range allowed {
		if principal.Role == role {
			return nil
		}
	}
	return ErrForbidden
}

// RequireOwnershipOrRole allows the call when the principal owns the resource
// or holds the privileged role. Read paths that use this check are expected
// to surface a denial as not-found so that callers cannot probe for the
// existence of records they do not own.
func RequireOwnershipOrRole(principal *Principal, resourceOwner string, privileged Role) error {
	if principal == nil {
		return ErrUnauthenticated
	}

	if principal.Role == privileged || principal.Username == resourceOwner {
		return nil
	}
	return ErrForbidden
}

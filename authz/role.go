package authz

import (
	"strings"

	"github.com/xompass/gradebook-api/http_errors"
)

// Role is the closed set of roles a user can hold. Roles are stored and
// compared uppercase; anything outside the set is rejected at the
// registration boundary, not at use.
type Role string

const (
	RoleTeacher Role = "TEACHER"
	RoleStudent Role = "STUDENT"
)

// DefaultRole is assigned when registration does not specify a role.
const DefaultRole = RoleStudent

// RoleName implements rest.EndpointRole so a Role can be used directly in
// endpoint declarations.
func (r Role) RoleName() string {
	return string(r)
}

func (r Role) Valid() bool {
	switch r {
	case RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// ParseRole normalizes a raw role string to uppercase and checks it against
// the closed set. An empty string resolves to DefaultRole.
func ParseRole(raw string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return DefaultRole, nil
	}

	role := Role(normalized)
	if !role.Valid() {
		return "", http_errors.BadRequestErrorWithCode(UNKNOWN_ROLE, "unknown role: "+normalized)
	}
	return role, nil
}

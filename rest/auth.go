package rest

// Principal is the authenticated identity attached to a request after the
// authorizer ran. It only exists for the lifetime of that request.
type Principal interface {
	GetPrincipalID() string
	GetPrincipalRole() string
}

// Authorizer resolves the request credential into a principal. Returning a
// nil principal with a nil error means the request proceeds anonymously; the
// authorizer itself never rejects a request, role enforcement happens per
// endpoint.
type Authorizer func(*EndpointContext) (Principal, AuthToken, error)

type AuthToken interface {
	IsValid() bool
	GetUserId() string
	GetUserType() string
	GetToken() string
	GetExpiresAt() int64
}

// EndpointRole is implemented by role types that can gate an endpoint.
type EndpointRole interface {
	RoleName() string
}

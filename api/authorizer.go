package api

import (
	"strings"

	"github.com/xompass/gradebook-api/rest"
	"github.com/xompass/gradebook-api/token"
)

const bearerPrefix = "Bearer "

// NewAuthorizer builds the authentication gate. It reads the Authorization
// header, verifies the bearer token and resolves it into a principal. Any
// failure along the way (missing header, malformed token, bad signature,
// expired token, unknown role) downgrades the request to anonymous instead
// of rejecting it; endpoints that require authentication reject it later
// with a 401.
func NewAuthorizer(codec *token.Codec) rest.Authorizer {
	return func(ctx *rest.EndpointContext) (rest.Principal, rest.AuthToken, error) {
		header := ctx.EchoCtx.Request().Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, bearerPrefix) {
			return nil, nil, nil
		}

		raw := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
		if raw == "" {
			return nil, nil, nil
		}

		claims, err := codec.Verify(raw)
		if err != nil {
			ctx.App.Debugf("Discarding bearer token: %v", err)
			return nil, nil, nil
		}

		principal, err := token.Resolve(claims)
		if err != nil {
			ctx.App.Debugf("Discarding bearer token: %v", err)
			return nil, nil, nil
		}

		return principal, token.NewBearerToken(raw, claims), nil
	}
}

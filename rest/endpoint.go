package rest

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xompass/gradebook-api/http_errors"
)

type RateLimit struct {
	Max    int
	Window time.Duration
	Key    string
}

type Endpoint struct {
	Name          string
	Method        EndpointMethod
	Path          string
	Handler       func(c *EndpointContext) error
	Disabled      bool           // If true, the endpoint is not accessible.
	BodyParams    func() any     // Factory for the body struct to bind and validate.
	RateLimiter   func(*EndpointContext) RateLimit
	Public        bool           // If true, the endpoint is accessible without authentication.
	Roles         []EndpointRole // Roles that can access this endpoint. Empty means any authenticated user.
	ActionType    ActionType     // e.g. "create", "read". Used for audit logging.
	Model         string         // The related model, e.g. "Grade". Used for audit logging.
	AuditDisabled bool           // Disable audit logging for this endpoint
	MetaData      map[string]any
	app           *RestApp
}

func (ep *Endpoint) run(c echo.Context) error {
	if ep.Disabled {
		return http_errors.NotFoundError("Endpoint not found")
	}

	ctx := &EndpointContext{
		EchoCtx:   c,
		Endpoint:  ep,
		App:       ep.app,
		IpAddress: c.RealIP(),
		context:   c.Request().Context(),
	}

	if err := parseBody(ep, ctx); err != nil {
		return err
	}

	if err := ep.app.Authorize(ctx); err != nil {
		return err
	}

	if err := ep.checkAccess(ctx); err != nil {
		return err
	}

	if err := checkRateLimit(ctx); err != nil {
		return err
	}

	return ep.Handler(ctx)
}

// checkAccess enforces the endpoint's declared access requirements. A public
// endpoint skips the check entirely. Anything else requires a principal, and
// when roles are declared, one of them. The corresponding service methods
// re-check on their own; this gate only exists so a rejected request never
// reaches a handler.
func (ep *Endpoint) checkAccess(ctx *EndpointContext) error {
	if ep.Public {
		return nil
	}

	if ctx.Principal == nil {
		return http_errors.UnauthorizedErrorWithCode("AUTH_REQUIRED", "authentication required")
	}

	if len(ep.Roles) == 0 {
		return nil
	}

	role := ctx.Principal.GetPrincipalRole()
	for _, allowed := range ep.Roles {
		if allowed.RoleName() == role {
			return nil
		}
	}

	return http_errors.ForbiddenErrorWithCode("INSUFFICIENT_ROLE", "you do not have permission to perform this action")
}

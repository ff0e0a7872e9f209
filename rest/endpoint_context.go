package rest

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type EndpointContext struct {
	App        *RestApp
	EchoCtx    echo.Context
	Endpoint   *Endpoint
	ParsedBody any
	IpAddress  string
	Principal  Principal
	Token      AuthToken
	context    context.Context
}

func (eCtx *EndpointContext) Context() context.Context {
	if eCtx.context != nil {
		return eCtx.context
	}
	return eCtx.EchoCtx.Request().Context()
}

func (eCtx *EndpointContext) ValidateStruct(v any) error {
	if v == nil {
		return nil
	}
	return eCtx.App.ValidatorInstance.Struct(v)
}

func (eCtx *EndpointContext) NormalizeStruct(v any) error {
	if v == nil {
		return nil
	}
	return processStruct(v, "normalize")
}

func (eCtx *EndpointContext) SanitizeStruct(v any) error {
	if v == nil {
		return nil
	}
	return processStruct(v, "sanitize")
}

// Param returns a path parameter by name.
func (eCtx *EndpointContext) Param(name string) string {
	return eCtx.EchoCtx.Param(name)
}

// QueryParam returns a query parameter by name.
func (eCtx *EndpointContext) QueryParam(name string) string {
	return eCtx.EchoCtx.QueryParam(name)
}

// RespondAndLog sends a response and, when audit logging is enabled for the
// application and the endpoint, hands the response to the audit handler.
func (ctx *EndpointContext) RespondAndLog(response any, affectedModelId any, contentType ResponseType, statusCode ...int) error {
	if !ctx.Endpoint.AuditDisabled {
		if ctx.App.auditLogConfig.Enabled && ctx.App.auditLogConfig.Handler != nil {
			if err := ctx.App.auditLogConfig.Handler(ctx, response, affectedModelId); err != nil {
				ctx.App.Errorf("Failed to log audit: %v", err)
			}
		}
	}

	status := http.StatusOK
	if len(statusCode) > 0 {
		status = statusCode[0]
	}

	switch contentType {
	case ResponseTypeJSON:
		return ctx.EchoCtx.JSON(status, response)
	case ResponseTypeText:
		if str, ok := response.(string); ok {
			return ctx.EchoCtx.String(status, str)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "text response must be string")
	case ResponseTypeNoContent:
		return ctx.EchoCtx.NoContent(status)
	default:
		return echo.NewHTTPError(http.StatusNotAcceptable, "unsupported content type")
	}
}

// JSON sends a JSON response
func (ctx *EndpointContext) JSON(response any, statusCode ...int) error {
	status := http.StatusOK
	if len(statusCode) > 0 {
		status = statusCode[0]
	}

	return ctx.EchoCtx.JSON(status, response)
}

// NoContent sends a 204 No Content response
func (ctx *EndpointContext) NoContent() error {
	return ctx.EchoCtx.NoContent(http.StatusNoContent)
}

// Get retrieves a value from the context by key
func (ctx *EndpointContext) Get(key string) any {
	return ctx.EchoCtx.Get(key)
}

// Set allows setting a value in the context
func (ctx *EndpointContext) Set(key string, value any) {
	ctx.EchoCtx.Set(key, value)
}

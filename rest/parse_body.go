package rest

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/xompass/gradebook-api/http_errors"
)

// Validable is implemented by body structs that validate themselves instead
// of relying on validator tags.
type Validable interface {
	Validate(ctx *EndpointContext) error
}

// Sanitizeable is implemented by body structs that sanitize themselves.
type Sanitizeable interface {
	Sanitize(ctx *EndpointContext) error
}

// Normalizeable is implemented by body structs that normalize themselves.
type Normalizeable interface {
	Normalize(ctx *EndpointContext) error
}

// parseBody binds, normalizes, sanitizes and validates the request body for
// endpoints that declare one. The processed struct ends up in
// ctx.ParsedBody.
func parseBody(e *Endpoint, ec *EndpointContext) error {
	if e.Method != MethodPOST && e.Method != MethodPUT && e.Method != MethodPATCH {
		return nil
	}

	if e.BodyParams == nil {
		return nil
	}

	form := e.BodyParams()
	if form == nil {
		return http_errors.BadRequestError("Request body cannot be nil")
	}

	if err := ec.EchoCtx.Bind(form); err != nil {
		return http_errors.BadRequestError("Failed to bind request body", err.Error())
	}

	if n, ok := form.(Normalizeable); ok {
		if err := n.Normalize(ec); err != nil {
			return asBadRequest("Failed to normalize request body", err)
		}
	} else if err := ec.NormalizeStruct(form); err != nil {
		return asBadRequest("Failed to normalize request body", err)
	}

	if s, ok := form.(Sanitizeable); ok {
		if err := s.Sanitize(ec); err != nil {
			return asBadRequest("Failed to sanitize request body", err)
		}
	} else if err := ec.SanitizeStruct(form); err != nil {
		return asBadRequest("Failed to sanitize request body", err)
	}

	if v, ok := form.(Validable); ok {
		if err := v.Validate(ec); err != nil {
			return asBadRequest("Request validation failed", err)
		}
	} else if err := ec.ValidateStruct(form); err != nil {
		return http_errors.BadRequestError("Request validation failed", getFriendlyValidationErrors(err))
	}

	ec.ParsedBody = form
	return nil
}

func asBadRequest(message string, err error) error {
	var response *http_errors.ErrorResponse
	if errors.As(err, &response) {
		return response
	}
	return http_errors.BadRequestError(message, err.Error())
}

func getFriendlyValidationErrors(err error) map[string]string {
	friendlyErrors := map[string]string{}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		friendlyErrors["error"] = err.Error()
		return friendlyErrors
	}

	for _, e := range ve {
		message := getErrorMessage(e.Tag(), e.Param())
		if message == "" {
			message = "This field is invalid"
		}
		friendlyErrors[e.Field()] = message
	}

	return friendlyErrors
}

func getErrorMessage(tag string, param string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "This field must be a valid email address"
	case "min":
		return "This field must be at least " + param
	case "max":
		return "This field must be at most " + param
	case "oneof":
		return "This field must be one of: " + param
	case "uuid":
		return "This field must be a valid UUID"
	}
	return ""
}

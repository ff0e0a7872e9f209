package api

import (
	"net/http"
	"time"

	"github.com/xompass/gradebook-api/accounts"
	"github.com/xompass/gradebook-api/rest"
)

// AuthHandlers exposes login and registration over HTTP.
type AuthHandlers struct {
	service *accounts.Service
}

func NewAuthHandlers(service *accounts.Service) *AuthHandlers {
	return &AuthHandlers{service: service}
}

func (h *AuthHandlers) Login(ctx *rest.EndpointContext) error {
	body := ctx.ParsedBody.(*LoginRequest)

	result, err := h.service.Login(ctx.Context(), body.Username, body.Password)
	if err != nil {
		return err
	}

	return ctx.JSON(result)
}

func (h *AuthHandlers) Register(ctx *rest.EndpointContext) error {
	body := ctx.ParsedBody.(*RegisterRequest)

	_, err := h.service.Register(ctx.Context(), accounts.RegisterInput{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
		Role:     body.Role,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(MessageResponse{Message: "user registered successfully"}, http.StatusCreated)
}

// Endpoints returns the authentication endpoint table. Both endpoints are
// public; login is rate limited per client IP to slow down password
// guessing.
func (h *AuthHandlers) Endpoints() []*rest.Endpoint {
	return []*rest.Endpoint{
		{
			Name:          "Login",
			Method:        rest.MethodPOST,
			Path:          "/login",
			Handler:       h.Login,
			Public:        true,
			ActionType:    rest.ActionTypeLogin,
			AuditDisabled: true,
			BodyParams:    func() any { return &LoginRequest{} },
			RateLimiter: func(ctx *rest.EndpointContext) rest.RateLimit {
				return rest.RateLimit{Max: 10, Window: time.Minute}
			},
		},
		{
			Name:          "Register",
			Method:        rest.MethodPOST,
			Path:          "/register",
			Handler:       h.Register,
			Public:        true,
			ActionType:    rest.ActionTypeRegister,
			AuditDisabled: true,
			BodyParams:    func() any { return &RegisterRequest{} },
		},
	}
}

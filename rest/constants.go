package rest

type ResponseType string

const (
	ResponseTypeJSON      ResponseType = "json"
	ResponseTypeText      ResponseType = "text"
	ResponseTypeNoContent ResponseType = "no_content"
)

type EndpointMethod string

const (
	MethodGET    EndpointMethod = "Get"
	MethodPOST   EndpointMethod = "Post"
	MethodPUT    EndpointMethod = "Put"
	MethodPATCH  EndpointMethod = "Patch"
	MethodDELETE EndpointMethod = "Delete"
)

type ActionType string

const (
	ActionTypeRead     ActionType = "read"
	ActionTypeCreate   ActionType = "create"
	ActionTypeUpdate   ActionType = "update"
	ActionTypeDelete   ActionType = "delete"
	ActionTypeLogin    ActionType = "login"
	ActionTypeRegister ActionType = "register"
)

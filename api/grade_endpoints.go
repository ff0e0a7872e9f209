package api

import (
	"net/http"

	"github.com/xompass/gradebook-api/authz"
	"github.com/xompass/gradebook-api/grades"
	"github.com/xompass/gradebook-api/rest"
)

// GradeHandlers exposes the grade CRUD over HTTP. The endpoint table gates
// by role declaratively; the service re-checks role and ownership on its
// own, so a handler never needs to.
type GradeHandlers struct {
	service *grades.Service
}

func NewGradeHandlers(service *grades.Service) *GradeHandlers {
	return &GradeHandlers{service: service}
}

func principalOf(ctx *rest.EndpointContext) *authz.Principal {
	if p, ok := ctx.Principal.(*authz.Principal); ok {
		return p
	}
	return nil
}

func (h *GradeHandlers) Create(ctx *rest.EndpointContext) error {
	body := ctx.ParsedBody.(*GradeRequest)

	grade, err := h.service.Create(ctx.Context(), principalOf(ctx), grades.GradeInput{
		Course:          body.Course,
		Score:           body.Score,
		Comments:        body.Comments,
		StudentUsername: body.StudentUsername,
	})
	if err != nil {
		return err
	}

	return ctx.RespondAndLog(grade, grade.ID, rest.ResponseTypeJSON, http.StatusCreated)
}

func (h *GradeHandlers) ListMine(ctx *rest.EndpointContext) error {
	list, err := h.service.ListMine(ctx.Context(), principalOf(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(list)
}

func (h *GradeHandlers) GetById(ctx *rest.EndpointContext) error {
	grade, err := h.service.GetById(ctx.Context(), principalOf(ctx), ctx.Param("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(grade)
}

func (h *GradeHandlers) Update(ctx *rest.EndpointContext) error {
	body := ctx.ParsedBody.(*UpdateGradeRequest)

	grade, err := h.service.Update(ctx.Context(), principalOf(ctx), ctx.Param("id"), grades.GradeInput{
		Course:          body.Course,
		Score:           body.Score,
		Comments:        body.Comments,
		StudentUsername: body.StudentUsername,
	})
	if err != nil {
		return err
	}

	return ctx.RespondAndLog(grade, grade.ID, rest.ResponseTypeJSON)
}

func (h *GradeHandlers) Delete(ctx *rest.EndpointContext) error {
	id := ctx.Param("id")
	if err := h.service.Delete(ctx.Context(), principalOf(ctx), id); err != nil {
		return err
	}

	return ctx.RespondAndLog(MessageResponse{Message: "grade deleted successfully"}, id, rest.ResponseTypeJSON)
}

// Endpoints returns the grade endpoint table. Writes are teacher only;
// reads accept both roles and the service narrows students down to their
// own records.
func (h *GradeHandlers) Endpoints() []*rest.Endpoint {
	return []*rest.Endpoint{
		{
			Name:       "Create Grade",
			Method:     rest.MethodPOST,
			Path:       "",
			Handler:    h.Create,
			Roles:      []rest.EndpointRole{authz.RoleTeacher},
			ActionType: rest.ActionTypeCreate,
			Model:      "Grade",
			BodyParams: func() any { return &GradeRequest{} },
		},
		{
			Name:       "List My Grades",
			Method:     rest.MethodGET,
			Path:       "",
			Handler:    h.ListMine,
			Roles:      []rest.EndpointRole{authz.RoleStudent},
			ActionType: rest.ActionTypeRead,
			Model:      "Grade",
		},
		{
			Name:       "Get Grade",
			Method:     rest.MethodGET,
			Path:       "/:id",
			Handler:    h.GetById,
			Roles:      []rest.EndpointRole{authz.RoleStudent, authz.RoleTeacher},
			ActionType: rest.ActionTypeRead,
			Model:      "Grade",
		},
		{
			Name:       "Update Grade",
			Method:     rest.MethodPUT,
			Path:       "/:id",
			Handler:    h.Update,
			Roles:      []rest.EndpointRole{authz.RoleTeacher},
			ActionType: rest.ActionTypeUpdate,
			Model:      "Grade",
			BodyParams: func() any { return &UpdateGradeRequest{} },
		},
		{
			Name:       "Delete Grade",
			Method:     rest.MethodDELETE,
			Path:       "/:id",
			Handler:    h.Delete,
			Roles:      []rest.EndpointRole{authz.RoleTeacher},
			ActionType: rest.ActionTypeDelete,
			Model:      "Grade",
		},
	}
}

// RegisterRoutes mounts the authentication and grade endpoints under their
// /api groups.
func RegisterRoutes(app *rest.RestApp, auth *AuthHandlers, grade *GradeHandlers) {
	authGroup := app.Group("/api/auth")
	app.RegisterEndpoints(auth.Endpoints(), authGroup)

	gradeGroup := app.Group("/api/grades")
	app.RegisterEndpoints(grade.Endpoints(), gradeGroup)
}

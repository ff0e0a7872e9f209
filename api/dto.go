package api

// RegisterRequest is the body for POST /api/auth/register. Usernames and
// emails are normalized to lowercase before the uniqueness checks so that
// "Alice" and "alice" cannot coexist.
type RegisterRequest struct {
	Username string `json:"username" normalize:"trim,lowercase" validate:"required,min=3,max=50"`
	Email    string `json:"email" normalize:"trim,lowercase" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Role     string `json:"role" normalize:"trim,uppercase" validate:"omitempty,oneof=TEACHER STUDENT"`
} // @name RegisterRequest

// LoginRequest is the body for POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" normalize:"trim,lowercase" validate:"required"`
	Password string `json:"password" validate:"required"`
} // @name LoginRequest

// GradeRequest is the body for creating and updating grades. Scores use the
// vigesimal scale.
type GradeRequest struct {
	Course          string  `json:"course" normalize:"trim" validate:"required,max=100"`
	Score           float64 `json:"score" validate:"min=0,max=20"`
	Comments        string  `json:"comments" normalize:"trim" sanitize:"html" validate:"omitempty,max=500"`
	StudentUsername string  `json:"studentUsername" normalize:"trim,lowercase" validate:"required"`
} // @name GradeRequest

// UpdateGradeRequest allows omitting studentUsername to keep the current
// owner.
type UpdateGradeRequest struct {
	Course          string  `json:"course" normalize:"trim" validate:"required,max=100"`
	Score           float64 `json:"score" validate:"min=0,max=20"`
	Comments        string  `json:"comments" normalize:"trim" sanitize:"html" validate:"omitempty,max=500"`
	StudentUsername string  `json:"studentUsername" normalize:"trim,lowercase" validate:"omitempty"`
} // @name UpdateGradeRequest

type MessageResponse struct {
	Message string `json:"message"`
} // @name MessageResponse

package grades

import (
	"context"

	"github.com/xompass/gradebook-api/accounts"
	"github.com/xompass/gradebook-api/authz"
	"github.com/xompass/gradebook-api/http_errors"
	"github.com/xompass/gradebook-api/models"
)

// Error codes for grade operations
const (
	GRADE_NOT_FOUND   = "GRADE_NOT_FOUND"
	STUDENT_NOT_FOUND = "STUDENT_NOT_FOUND"
)

var (
	// ErrGradeNotFound is returned both when a grade is genuinely absent and
	// when it exists but the caller may not see it. Collapsing the two keeps
	// a student from confirming the existence of someone else's records.
	ErrGradeNotFound = http_errors.NotFoundErrorWithCode(GRADE_NOT_FOUND, "grade not found")

	ErrStudentNotFound = http_errors.NotFoundErrorWithCode(STUDENT_NOT_FOUND, "student not found")
)

// Service implements the ownership-aware grade operations. Reads hide
// denials behind not-found; writes are gated purely by role and report
// forbidden openly. That asymmetry is intentional: reads leak existence,
// writes do not.
type Service struct {
	grades GradeStore
	users  accounts.UserStore
}

func NewService(grades GradeStore, users accounts.UserStore) *Service {
	return &Service{grades: grades, users: users}
}

type GradeInput struct {
	Course          string
	Score           float64
	Comments        string
	StudentUsername string
}

// Create registers a grade for the named student. Teachers only.
func (s *Service) Create(ctx context.Context, principal *authz.Principal, in GradeInput) (*models.Grade, error) {
	if err := authz.RequireRole(principal, authz.RoleTeacher); err != nil {
		return nil, err
	}

	student, err := s.users.FindByUsername(ctx, in.StudentUsername)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	grade := &models.Grade{
		Course:          in.Course,
		Score:           in.Score,
		Comments:        in.Comments,
		StudentUsername: student.Username,
	}

	return s.grades.Create(ctx, grade)
}

// ListMine returns the caller's own grades, newest first.
func (s *Service) ListMine(ctx context.Context, principal *authz.Principal) ([]models.Grade, error) {
	if principal == nil {
		return nil, authz.ErrUnauthenticated
	}

	return s.grades.FindAllByOwner(ctx, principal.Username)
}

// GetById returns a single grade. Students only see their own; a denied
// lookup is indistinguishable from a missing id.
func (s *Service) GetById(ctx context.Context, principal *authz.Principal, id string) (*models.Grade, error) {
	if principal == nil {
		return nil, authz.ErrUnauthenticated
	}

	grade, err := s.grades.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if grade == nil {
		return nil, ErrGradeNotFound
	}

	if err := authz.RequireOwnershipOrRole(principal, grade.StudentUsername, authz.RoleTeacher); err != nil {
		return nil, ErrGradeNotFound
	}

	return grade, nil
}

// Update modifies a grade and optionally reassigns it to another student.
// Teachers only.
func (s *Service) Update(ctx context.Context, principal *authz.Principal, id string, in GradeInput) (*models.Grade, error) {
	if err := authz.RequireRole(principal, authz.RoleTeacher); err != nil {
		return nil, err
	}

	grade, err := s.grades.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if grade == nil {
		return nil, ErrGradeNotFound
	}

	grade.Course = in.Course
	grade.Score = in.Score
	grade.Comments = in.Comments

	if in.StudentUsername != "" && in.StudentUsername != grade.StudentUsername {
		student, err := s.users.FindByUsername(ctx, in.StudentUsername)
		if err != nil {
			return nil, err
		}
		if student == nil {
			return nil, ErrStudentNotFound
		}
		grade.StudentUsername = student.Username
	}

	return s.grades.Update(ctx, grade)
}

// Delete removes a grade. Teachers only.
func (s *Service) Delete(ctx context.Context, principal *authz.Principal, id string) error {
	if err := authz.RequireRole(principal, authz.RoleTeacher); err != nil {
		return err
	}

	grade, err := s.grades.FindById(ctx, id)
	if err != nil {
		return err
	}
	if grade == nil {
		return ErrGradeNotFound
	}

	return s.grades.DeleteById(ctx, grade.ID)
}

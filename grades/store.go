package grades

import (
	"context"
	"time"

	"github.com/xompass/gradebook-api/database"
	"github.com/xompass/gradebook-api/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// GradeStore is the persistence boundary for grade records. Ownership and
// role checks live in the service; the store only reads and writes rows.
type GradeStore interface {
	// FindById returns nil, nil when the grade does not exist.
	FindById(ctx context.Context, id string) (*models.Grade, error)

	// FindAllByOwner returns the owner's grades ordered newest first.
	FindAllByOwner(ctx context.Context, username string) ([]models.Grade, error)

	Create(ctx context.Context, grade *models.Grade) (*models.Grade, error)

	// Update persists the mutable fields of an existing grade.
	Update(ctx context.Context, grade *models.Grade) (*models.Grade, error)

	// DeleteById fails with a not-found error when the grade is absent.
	DeleteById(ctx context.Context, id string) error

	Count(ctx context.Context) (int64, error)
}

type mongoGradeStore struct {
	repo database.Repository[models.Grade]
}

func NewMongoGradeStore(repo database.Repository[models.Grade]) GradeStore {
	return &mongoGradeStore{repo: repo}
}

func (s *mongoGradeStore) FindById(ctx context.Context, id string) (*models.Grade, error) {
	return s.repo.FindById(ctx, id)
}

func (s *mongoGradeStore) FindAllByOwner(ctx context.Context, username string) ([]models.Grade, error) {
	filter := database.NewFilter().
		Eq("studentUsername", username).
		SortDesc("created")

	return s.repo.Find(ctx, filter)
}

func (s *mongoGradeStore) Create(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	return s.repo.Create(ctx, *grade)
}

func (s *mongoGradeStore) Update(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	update := bson.M{
		"course":          grade.Course,
		"score":           grade.Score,
		"comments":        grade.Comments,
		"studentUsername": grade.StudentUsername,
		"modified":        time.Now(),
	}

	if err := s.repo.UpdateById(ctx, grade.ID, update); err != nil {
		return nil, err
	}

	return s.repo.FindById(ctx, grade.ID)
}

func (s *mongoGradeStore) DeleteById(ctx context.Context, id string) error {
	return s.repo.DeleteById(ctx, id)
}

func (s *mongoGradeStore) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, nil)
}

package accounts

import (
	"context"

	"github.com/xompass/gradebook-api/database"
	"github.com/xompass/gradebook-api/models"
)

// UserStore is the persistence boundary for accounts. It has no
// authorization knowledge; the services own every allow/deny decision.
type UserStore interface {
	// FindByUsername returns nil, nil when the username is unknown.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

type mongoUserStore struct {
	repo database.Repository[models.User]
}

func NewMongoUserStore(repo database.Repository[models.User]) UserStore {
	return &mongoUserStore{repo: repo}
}

func (s *mongoUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.FindOne(ctx, database.NewFilter().Eq("username", username))
}

func (s *mongoUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	count, err := s.repo.Count(ctx, database.NewFilter().Eq("username", username))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *mongoUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := s.repo.Count(ctx, database.NewFilter().Eq("email", email))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *mongoUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	return s.repo.Create(ctx, *user)
}

func (s *mongoUserStore) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx, nil)
}

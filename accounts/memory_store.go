package accounts

import (
	"context"
	"sync"

	"github.com/xompass/gradebook-api/http_errors"
	"github.com/xompass/gradebook-api/models"
)

// MemoryUserStore is an in-memory UserStore used by tests and by local runs
// without a database. Documents are copied on the way in and out so callers
// never share memory with the store.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User // keyed by id
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (s *MemoryUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, nil
}

func (s *MemoryUserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	user, err := s.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (s *MemoryUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryUserStore) Create(ctx context.Context, user *models.User) (*models.User, error) {
	doc := *user
	if err := doc.BeforeCreate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Mirror the unique indexes the mongo store relies on.
	for _, existing := range s.users {
		if existing.Username == doc.Username || existing.Email == doc.Email {
			return nil, http_errors.ConflictErrorWithCode("MONGO_DUPLICATE_KEY", "duplicate key error")
		}
	}

	s.users[doc.ID] = doc
	created := doc
	return &created, nil
}

func (s *MemoryUserStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

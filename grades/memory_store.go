package grades

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/xompass/gradebook-api/http_errors"
	"github.com/xompass/gradebook-api/models"
)

// MemoryGradeStore is an in-memory GradeStore used by tests and by local
// runs without a database.
type MemoryGradeStore struct {
	mu     sync.RWMutex
	grades map[string]models.Grade // keyed by id
}

func NewMemoryGradeStore() *MemoryGradeStore {
	return &MemoryGradeStore{grades: make(map[string]models.Grade)}
}

func cloneGrade(grade models.Grade) (models.Grade, error) {
	raw, err := sonic.Marshal(grade)
	if err != nil {
		return models.Grade{}, err
	}

	var clone models.Grade
	if err := sonic.Unmarshal(raw, &clone); err != nil {
		return models.Grade{}, err
	}
	return clone, nil
}

func (s *MemoryGradeStore) FindById(ctx context.Context, id string) (*models.Grade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grade, ok := s.grades[id]
	if !ok {
		return nil, nil
	}

	clone, err := cloneGrade(grade)
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

func (s *MemoryGradeStore) FindAllByOwner(ctx context.Context, username string) ([]models.Grade, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := []models.Grade{}
	for _, grade := range s.grades {
		if grade.StudentUsername != username {
			continue
		}

		clone, err := cloneGrade(grade)
		if err != nil {
			return nil, err
		}
		owned = append(owned, clone)
	}

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].Created.After(owned[j].Created)
	})

	return owned, nil
}

func (s *MemoryGradeStore) Create(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	doc := *grade
	if err := doc.BeforeCreate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.grades[doc.ID] = doc
	s.mu.Unlock()

	clone, err := cloneGrade(doc)
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

func (s *MemoryGradeStore) Update(ctx context.Context, grade *models.Grade) (*models.Grade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.grades[grade.ID]
	if !ok {
		return nil, http_errors.NotFoundErrorWithCode("MONGO_NO_DOCUMENTS_FOUND", "document not found")
	}

	existing.Course = grade.Course
	existing.Score = grade.Score
	existing.Comments = grade.Comments
	existing.StudentUsername = grade.StudentUsername
	existing.Modified = time.Now()
	s.grades[grade.ID] = existing

	clone, err := cloneGrade(existing)
	if err != nil {
		return nil, err
	}
	return &clone, nil
}

func (s *MemoryGradeStore) DeleteById(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.grades[id]; !ok {
		return http_errors.NotFoundErrorWithCode("MONGO_NO_DOCUMENTS_FOUND", "document not found")
	}

	delete(s.grades, id)
	return nil
}

func (s *MemoryGradeStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.grades)), nil
}

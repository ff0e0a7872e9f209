package seed

import (
	"context"

	"github.com/labstack/gommon/log"
	"github.com/xompass/gradebook-api/accounts"
	"github.com/xompass/gradebook-api/grades"
	"github.com/xompass/gradebook-api/models"
	"golang.org/x/crypto/bcrypt"
)

// Load inserts a demo teacher, a demo student and a couple of grades so a
// fresh deployment is immediately usable. It is a no-op when any user
// already exists.
func Load(ctx context.Context, users accounts.UserStore, gradeStore grades.GradeStore) error {
	count, err := users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Debug("Seed skipped: users already present")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demoUsers := []models.User{
		{
			Username: "teacher1",
			Email:    "teacher1@school.edu",
			Password: string(hash),
			Role:     "TEACHER",
		},
		{
			Username: "student1",
			Email:    "student1@school.edu",
			Password: string(hash),
			Role:     "STUDENT",
		},
	}

	for i := range demoUsers {
		if _, err := users.Create(ctx, &demoUsers[i]); err != nil {
			return err
		}
	}

	demoGrades := []models.Grade{
		{
			Course:          "Matemáticas",
			Score:           14.0,
			Comments:        "Examen Parcial",
			StudentUsername: "student1",
		},
		{
			Course:          "Programación",
			Score:           15.5,
			Comments:        "Proyecto Final",
			StudentUsername: "student1",
		},
	}

	for i := range demoGrades {
		if _, err := gradeStore.Create(ctx, &demoGrades[i]); err != nil {
			return err
		}
	}

	log.Infof("Seeded %d users and %d grades", len(demoUsers), len(demoGrades))
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/xompass/gradebook-api/database"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Grade is an academic record owned by a student. StudentUsername is the
// ownership anchor every read-side authorization check compares against.
type Grade struct {
	ID              string    `json:"id" bson:"_id,omitempty"`
	Course          string    `json:"course" bson:"course"`
	Score           float64   `json:"score" bson:"score"`
	Comments        string    `json:"comments,omitempty" bson:"comments,omitempty"`
	StudentUsername string    `json:"studentUsername" bson:"studentUsername"`
	Created         time.Time `json:"created" bson:"created"`
	Modified        time.Time `json:"modified" bson:"modified"`
} // @name Grade

func (Grade) GetTableName() string {
	return "grades"
}

func (Grade) GetModelName() string {
	return "Grade"
}

func (Grade) GetConnectorName() string {
	return "mongodb"
}

func (g Grade) GetId() any {
	return g.ID
}

func (g *Grade) BeforeCreate() error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	now := time.Now()
	if g.Created.IsZero() {
		g.Created = now
	}
	g.Modified = now
	return nil
}

func (Grade) Indexes() []database.IndexDefinition {
	return []database.IndexDefinition{
		{Name: "studentUsername_1_created_-1", Keys: bson.D{{Key: "studentUsername", Value: 1}, {Key: "created", Value: -1}}},
	}
}

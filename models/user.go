package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/xompass/gradebook-api/database"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is an account that can authenticate. Password holds the bcrypt hash
// and is never serialized to JSON.
type User struct {
	ID       string    `json:"id" bson:"_id,omitempty"`
	Username string    `json:"username" bson:"username"`
	Email    string    `json:"email" bson:"email"`
	Password string    `json:"-" bson:"password"`
	Role     string    `json:"role" bson:"role"`
	Created  time.Time `json:"created" bson:"created"`
	Modified time.Time `json:"modified" bson:"modified"`
} // @name User

func (User) GetTableName() string {
	return "users"
}

func (User) GetModelName() string {
	return "User"
}

func (User) GetConnectorName() string {
	return "mongodb"
}

func (u User) GetId() any {
	return u.ID
}

func (u *User) BeforeCreate() error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}

	now := time.Now()
	if u.Created.IsZero() {
		u.Created = now
	}
	u.Modified = now
	return nil
}

func (User) Indexes() []database.IndexDefinition {
	return []database.IndexDefinition{
		{Name: "username_1", Keys: bson.D{{Key: "username", Value: 1}}, Unique: true},
		{Name: "email_1", Keys: bson.D{{Key: "email", Value: 1}}, Unique: true},
	}
}

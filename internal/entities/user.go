package entities

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const RoleUser = "user"

// User is a document in the users collection
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"` // bcrypt hash, empty for provider-only accounts
	Role      string             `bson:"role" json:"role"`
	Provider  string             `bson:"provider,omitempty" json:"provider,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasPassword reports whether the user registered locally.
func (u *User) HasPassword() bool {
	return u.Password != ""
}

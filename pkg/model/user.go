package model

import (
	"time"

	"smarthost/pkg/config"
)

type User struct {
	ID        string      `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Email     string      `json:"email" bson:"email" validate:"required,email"`
	Name      string      `json:"name" bson:"name" validate:"required,min=1,max=100"`
	Role      config.Role `json:"role" bson:"role" validate:"required,oneof=ADMIN HOST USER"`
	CreatedAt time.Time   `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" bson:"updated_at"`
}

// UserSummary is the public projection of a user shown next to listings and reviews.
type UserSummary struct {
	ID    string `json:"id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email,omitempty" bson:"email"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

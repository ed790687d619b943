package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a user account in Socialee.
type User struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name           string               `bson:"name" json:"name"`
	Username       string               `bson:"username" json:"username"`
	Email          string               `bson:"email" json:"email"`
	HashedPassword string               `bson:"hashed_password" json:"-"`
	Bio            string               `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfilePicture string               `bson:"profile_picture,omitempty" json:"profile_picture,omitempty"`
	Followers      []primitive.ObjectID `bson:"followers,omitempty" json:"followers,omitempty"`
	Following      []primitive.ObjectID `bson:"following,omitempty" json:"following,omitempty"`
	ResetToken     string               `bson:"reset_token,omitempty" json:"-"`
	ResetTokenExp  time.Time            `bson:"reset_token_exp,omitempty" json:"-"`
	CreatedAt      time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time            `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the profile shape exposed to other users.
type PublicUser struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	Username       string             `json:"username"`
	Bio            string             `json:"bio,omitempty"`
	ProfilePicture string             `json:"profile_picture,omitempty"`
	Followers      int                `json:"followers"`
	Following      int                `json:"following"`
}

// Public strips private fields from a user document.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:             u.ID,
		Name:           u.Name,
		Username:       u.Username,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
		Followers:      len(u.Followers),
		Following:      len(u.Following),
	}
}

// IsFollowing reports whether id is present in the user's following list.
func (u *User) IsFollowing(id primitive.ObjectID) bool {
	for _, f := range u.Following {
		if f == id {
			return true
		}
	}
	return false
}

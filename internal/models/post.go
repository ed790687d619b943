package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment is embedded in its parent post or mood and deleted with it.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Username  string             `bson:"username" json:"username"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Post represents an image post with likes and embedded comments.
type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID   `bson:"user_id" json:"user_id"`
	ImageURL  string               `bson:"image_url" json:"image_url"`
	Caption   string               `bson:"caption,omitempty" json:"caption,omitempty"`
	Likes     []primitive.ObjectID `bson:"likes,omitempty" json:"likes,omitempty"`
	Comments  []Comment            `bson:"comments,omitempty" json:"comments,omitempty"`
	Tags      []string             `bson:"tags,omitempty" json:"tags,omitempty"`
	Location  string               `bson:"location,omitempty" json:"location,omitempty"`
	Archived  bool                 `bson:"archived" json:"archived"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}

// IsLikedBy reports whether the given user already likes the post.
func (p *Post) IsLikedBy(userID primitive.ObjectID) bool {
	return containsID(p.Likes, userID)
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

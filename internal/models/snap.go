package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SnapTTL is how long a snap stays visible after creation.
const SnapTTL = 24 * time.Hour

// SnapView records that a user saw a snap.
type SnapView struct {
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	ViewedAt time.Time          `bson:"viewed_at" json:"viewed_at"`
}

// SnapReaction is an emoji reaction on a snap.
type SnapReaction struct {
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Emoji     string             `bson:"emoji" json:"emoji"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// Snap is ephemeral content: excluded from reads once expires_at has passed.
// Expiry is enforced by query filtering, not by deletion at the moment of
// expiry; a background sweeper removes long-expired documents.
type Snap struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	MediaURL  string             `bson:"media_url" json:"media_url"`
	MediaType string             `bson:"media_type" json:"media_type"` // "image" or "video"
	Views     []SnapView         `bson:"views,omitempty" json:"views,omitempty"`
	Reactions []SnapReaction     `bson:"reactions,omitempty" json:"reactions,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time          `bson:"expires_at" json:"expires_at"`
}

// IsExpired reports whether the snap should be hidden from feeds.
func (s *Snap) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// HasViewed reports whether the given user already viewed the snap.
func (s *Snap) HasViewed(userID primitive.ObjectID) bool {
	for _, v := range s.Views {
		if v.UserID == userID {
			return true
		}
	}
	return false
}

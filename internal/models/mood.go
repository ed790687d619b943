package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MoodColors maps each mood to its display color.
var MoodColors = map[string]string{
	"happy":   "#FFD700",
	"sad":     "#6495ED",
	"excited": "#FF6347",
	"angry":   "#DC143C",
	"calm":    "#98FB98",
	"anxious": "#DDA0DD",
}

// ValidMood reports whether the given mood name is recognized.
func ValidMood(mood string) bool {
	_, ok := MoodColors[mood]
	return ok
}

// Mood is a short text status tagged with a mood and its display color.
type Mood struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID   `bson:"user_id" json:"user_id"`
	Text      string               `bson:"text" json:"text"`
	Mood      string               `bson:"mood" json:"mood"`
	Color     string               `bson:"color" json:"color"`
	Likes     []primitive.ObjectID `bson:"likes,omitempty" json:"likes,omitempty"`
	Comments  []Comment            `bson:"comments,omitempty" json:"comments,omitempty"`
	CreatedAt time.Time            `bson:"created_at" json:"created_at"`
}

// IsLikedBy reports whether the given user already likes the mood.
func (m *Mood) IsLikedBy(userID primitive.ObjectID) bool {
	return containsID(m.Likes, userID)
}

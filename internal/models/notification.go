package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationFollow  = "follow"
	NotificationMessage = "message"
	NotificationPost    = "post"
	NotificationSnap    = "snap"
	NotificationMood    = "mood"
)

// Notification is an alert for a single recipient. RelatedPost/Snap/Mood
// point at the content that triggered it, depending on Type.
type Notification struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID  `bson:"user_id" json:"user_id"`
	SenderID    primitive.ObjectID  `bson:"sender_id" json:"sender_id"`
	SenderName  string              `bson:"sender_name" json:"sender_name"`
	Type        string              `bson:"type" json:"type"`
	Message     string              `bson:"message" json:"message"`
	RelatedPost *primitive.ObjectID `bson:"related_post,omitempty" json:"related_post,omitempty"`
	RelatedSnap *primitive.ObjectID `bson:"related_snap,omitempty" json:"related_snap,omitempty"`
	RelatedMood *primitive.ObjectID `bson:"related_mood,omitempty" json:"related_mood,omitempty"`
	Read        bool                `bson:"read" json:"read"`
	CreatedAt   time.Time           `bson:"created_at" json:"created_at"`
}

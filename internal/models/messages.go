package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is a direct message between two users, grouped by a canonical
// conversation id.
type Message struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID string             `bson:"conversation_id" json:"conversation_id"`
	SenderID       primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	ReceiverID     primitive.ObjectID `bson:"receiver_id" json:"receiver_id"`
	Text           string             `bson:"text" json:"text"`
	Read           bool               `bson:"read" json:"read"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}

// Conversation summarizes one message thread for the conversation list.
type Conversation struct {
	ConversationID string    `bson:"_id" json:"conversation_id"`
	LastMessage    Message   `bson:"last_message" json:"last_message"`
	UnreadCount    int64     `bson:"unread_count" json:"unread_count"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// ConversationID derives the canonical thread key for an unordered pair of
// user ids: the two ids sorted lexicographically, joined by an underscore.
// Identical regardless of argument order.
func ConversationID(a, b string) string {
	if a <= b {
		return a + "_" + b
	}
	return b + "_" + a
}

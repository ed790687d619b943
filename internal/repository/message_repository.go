package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/socialee/socialee/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository handles database operations for direct messages.
type MessageRepository struct {
	collection *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{collection: db.Collection("messages")}
}

// SendMessage inserts a message. The conversation id must already be set by
// the service layer.
func (r *MessageRepository) SendMessage(ctx context.Context, msg *models.Message) (*models.Message, error) {
	msg.CreatedAt = time.Now()
	result, err := r.collection.InsertOne(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to insert message: %v", err)
	}
	msg.ID = result.InsertedID.(primitive.ObjectID)
	return msg, nil
}

// GetConversation returns the full thread for a conversation id, oldest first.
func (r *MessageRepository) GetConversation(ctx context.Context, conversationID string) ([]models.Message, error) {
	filter := bson.M{"conversation_id": conversationID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation: %v", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %v", err)
	}
	return messages, nil
}

// MarkConversationRead flags every message addressed to the reader in the
// given conversation as read.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, conversationID string, readerID primitive.ObjectID) error {
	filter := bson.M{
		"conversation_id": conversationID,
		"receiver_id":     readerID,
		"read":            false,
	}
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return fmt.Errorf("failed to mark conversation read: %v", err)
	}
	return nil
}

// GetConversations summarizes every thread the user participates in: the
// latest message plus the count of unread messages addressed to them,
// ordered by recency.
func (r *MessageRepository) GetConversations(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"$or": []bson.M{
				{"sender_id": userID},
				{"receiver_id": userID},
			},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$conversation_id",
			"last_message": bson.M{"$first": "$$ROOT"},
			"updated_at":   bson.M{"$first": "$created_at"},
			"unread_count": bson.M{"$sum": bson.M{
				"$cond": bson.A{
					bson.M{"$and": bson.A{
						bson.M{"$eq": bson.A{"$receiver_id", userID}},
						bson.M{"$eq": bson.A{"$read", false}},
					}},
					1,
					0,
				},
			}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "updated_at", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate conversations: %v", err)
	}
	defer cursor.Close(ctx)

	var conversations []models.Conversation
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, fmt.Errorf("failed to decode conversations: %v", err)
	}
	return conversations, nil
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/socialee/socialee/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MoodRepository handles database operations related to moods.
type MoodRepository struct {
	collection *mongo.Collection
}

func NewMoodRepository(db *mongo.Database) *MoodRepository {
	return &MoodRepository{
		collection: db.Collection("moods"),
	}
}

// CreateMood inserts a new mood.
func (r *MoodRepository) CreateMood(ctx context.Context, mood *models.Mood) (*models.Mood, error) {
	mood.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, mood)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert mood")
		return nil, fmt.Errorf("failed to insert mood: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	mood.ID = insertedID

	return mood, nil
}

// GetMoodByID retrieves a single mood.
func (r *MoodRepository) GetMoodByID(ctx context.Context, id primitive.ObjectID) (*models.Mood, error) {
	var mood models.Mood
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&mood)
	if err != nil {
		return nil, fmt.Errorf("failed to find mood: %v", err)
	}
	return &mood, nil
}

// GetFeed returns moods by the given authors, newest first.
func (r *MoodRepository) GetFeed(ctx context.Context, authorIDs []primitive.ObjectID, limit int64) ([]models.Mood, error) {
	filter := bson.M{"user_id": bson.M{"$in": authorIDs}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch moods: %v", err)
	}
	defer cursor.Close(ctx)

	var moods []models.Mood
	if err := cursor.All(ctx, &moods); err != nil {
		return nil, fmt.Errorf("failed to decode moods: %v", err)
	}
	return moods, nil
}

// AddLike adds a user to the mood's like set.
func (r *MoodRepository) AddLike(ctx context.Context, moodID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": moodID},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to like mood: %v", err)
	}
	return nil
}

// RemoveLike removes a user from the mood's like set.
func (r *MoodRepository) RemoveLike(ctx context.Context, moodID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": moodID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to unlike mood: %v", err)
	}
	return nil
}

// AddComment appends an embedded comment to the mood.
func (r *MoodRepository) AddComment(ctx context.Context, moodID primitive.ObjectID, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": moodID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return fmt.Errorf("failed to add comment: %v", err)
	}
	return nil
}

// DeleteMood removes a mood and its embedded comments.
func (r *MoodRepository) DeleteMood(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete mood: %v", err)
	}
	return nil
}

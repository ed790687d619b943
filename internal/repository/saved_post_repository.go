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

// SavedPostRepository handles bookmark persistence. Uniqueness per
// (user, post) pair is backed by a unique compound index.
type SavedPostRepository struct {
	collection *mongo.Collection
}

func NewSavedPostRepository(db *mongo.Database) *SavedPostRepository {
	return &SavedPostRepository{
		collection: db.Collection("saved_posts"),
	}
}

// Save bookmarks a post for a user. Duplicate saves fail on the unique index.
func (r *SavedPostRepository) Save(ctx context.Context, userID, postID primitive.ObjectID) (*models.SavedPost, error) {
	saved := &models.SavedPost{
		UserID:    userID,
		PostID:    postID,
		CreatedAt: time.Now(),
	}

	result, err := r.collection.InsertOne(ctx, saved)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("post already saved")
		}
		return nil, fmt.Errorf("failed to save post: %v", err)
	}
	saved.ID = result.InsertedID.(primitive.ObjectID)

	return saved, nil
}

// Unsave removes a bookmark. Removing an absent bookmark is a no-op.
func (r *SavedPostRepository) Unsave(ctx context.Context, userID, postID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "post_id": postID})
	if err != nil {
		return fmt.Errorf("failed to unsave post: %v", err)
	}
	return nil
}

// GetSavedPosts returns the user's bookmarks, newest first.
func (r *SavedPostRepository) GetSavedPosts(ctx context.Context, userID primitive.ObjectID) ([]models.SavedPost, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch saved posts: %v", err)
	}
	defer cursor.Close(ctx)

	var saved []models.SavedPost
	if err := cursor.All(ctx, &saved); err != nil {
		return nil, fmt.Errorf("failed to decode saved posts: %v", err)
	}
	return saved, nil
}

// DeleteByPost removes every bookmark pointing at a deleted post.
func (r *SavedPostRepository) DeleteByPost(ctx context.Context, postID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"post_id": postID})
	if err != nil {
		return fmt.Errorf("failed to delete saved posts for post %s: %v", postID.Hex(), err)
	}
	return nil
}

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

// PostRepository handles database operations related to posts.
type PostRepository struct {
	collection *mongo.Collection
}

// NewPostRepository creates a new instance of PostRepository.
func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{
		collection: db.Collection("posts"),
	}
}

// CreatePost inserts a new post.
func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt

	result, err := r.collection.InsertOne(ctx, post)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert post")
		return nil, fmt.Errorf("failed to insert post: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	post.ID = insertedID

	logrus.WithField("postID", post.ID.Hex()).Info("Post inserted successfully")
	return post, nil
}

// GetPostByID retrieves a single post.
func (r *PostRepository) GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %v", err)
	}
	return &post, nil
}

// GetFeed returns unarchived posts by the given authors, newest first.
func (r *PostRepository) GetFeed(ctx context.Context, authorIDs []primitive.ObjectID, limit int64) ([]models.Post, error) {
	filter := bson.M{
		"user_id":  bson.M{"$in": authorIDs},
		"archived": false,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %v", err)
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %v", err)
	}
	return posts, nil
}

// GetPostsByUser returns every unarchived post of a single author, newest first.
func (r *PostRepository) GetPostsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	return r.GetFeed(ctx, []primitive.ObjectID{userID}, 100)
}

// AddLike adds a user to the post's like set. $addToSet guarantees the id
// appears at most once.
func (r *PostRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to like post: %v", err)
	}
	return nil
}

// RemoveLike removes a user from the post's like set.
func (r *PostRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("failed to unlike post: %v", err)
	}
	return nil
}

// AddComment appends an embedded comment to the post.
func (r *PostRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()

	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return fmt.Errorf("failed to add comment: %v", err)
	}
	return nil
}

// DeletePost removes a post and its embedded comments.
func (r *PostRepository) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"postID": id.Hex(),
			"error":  err,
		}).Error("Failed to delete post")
		return fmt.Errorf("failed to delete post: %v", err)
	}
	return nil
}

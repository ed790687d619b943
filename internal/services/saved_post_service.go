package services

import (
	"context"
	"fmt"

	"github.com/socialee/socialee/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// savedPostStore is the slice of the bookmark repository this service needs.
type savedPostStore interface {
	Save(ctx context.Context, userID, postID primitive.ObjectID) (*models.SavedPost, error)
	Unsave(ctx context.Context, userID, postID primitive.ObjectID) error
	GetSavedPosts(ctx context.Context, userID primitive.ObjectID) ([]models.SavedPost, error)
}

// postLookup resolves bookmarks into post documents.
type postLookup interface {
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
}

// SavedPostService handles bookmarks.
type SavedPostService struct {
	repo     savedPostStore
	postRepo postLookup
}

func NewSavedPostService(repo savedPostStore, postRepo postLookup) *SavedPostService {
	return &SavedPostService{
		repo:     repo,
		postRepo: postRepo,
	}
}

// SavePost bookmarks an existing post for the user.
func (s *SavedPostService) SavePost(ctx context.Context, userID, postID primitive.ObjectID) (*models.SavedPost, error) {
	if _, err := s.postRepo.GetPostByID(ctx, postID); err != nil {
		return nil, fmt.Errorf("post not found")
	}
	return s.repo.Save(ctx, userID, postID)
}

// UnsavePost removes a bookmark. Removing an absent bookmark is a no-op.
func (s *SavedPostService) UnsavePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return s.repo.Unsave(ctx, userID, postID)
}

// GetSavedPosts resolves the user's bookmarks into full post documents,
// skipping any post deleted since it was saved.
func (s *SavedPostService) GetSavedPosts(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	saved, err := s.repo.GetSavedPosts(ctx, userID)
	if err != nil {
		return nil, err
	}

	posts := make([]models.Post, 0, len(saved))
	for _, record := range saved {
		post, err := s.postRepo.GetPostByID(ctx, record.PostID)
		if err != nil {
			continue
		}
		posts = append(posts, *post)
	}
	return posts, nil
}

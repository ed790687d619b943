package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/socialee/socialee/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxCaptionLength = 2200
const maxCommentLength = 500

// postStore is the slice of the post repository this service needs.
type postStore interface {
	CreatePost(ctx context.Context, post *models.Post) (*models.Post, error)
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	GetFeed(ctx context.Context, authorIDs []primitive.ObjectID, limit int64) ([]models.Post, error)
	GetPostsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error)
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
	AddComment(ctx context.Context, postID primitive.ObjectID, comment *models.Comment) error
	DeletePost(ctx context.Context, id primitive.ObjectID) error
}

// bookmarkCleaner removes bookmarks pointing at a deleted post.
type bookmarkCleaner interface {
	DeleteByPost(ctx context.Context, postID primitive.ObjectID) error
}

// contentNotifier is the notification surface the content services depend on.
type contentNotifier interface {
	BroadcastNewContent(ctx context.Context, authorID, contentID primitive.ObjectID, contentType string)
	NotifyInteraction(ctx context.Context, ownerID, actorID primitive.ObjectID, interaction, contentType string, contentID primitive.ObjectID)
}

// PostService handles the business logic for posts.
type PostService struct {
	repo          postStore
	savedRepo     bookmarkCleaner
	userService   *UserService
	notifications contentNotifier
}

func NewPostService(repo postStore, savedRepo bookmarkCleaner, userService *UserService, notifications contentNotifier) *PostService {
	return &PostService{
		repo:          repo,
		savedRepo:     savedRepo,
		userService:   userService,
		notifications: notifications,
	}
}

// CreatePost validates and stores a post, then fans out notifications to the
// author's followers. Fan-out failure never fails the creation.
func (s *PostService) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	if strings.TrimSpace(post.ImageURL) == "" {
		return nil, fmt.Errorf("image URL is required")
	}
	if len(post.Caption) > maxCaptionLength {
		return nil, fmt.Errorf("caption exceeds %d characters", maxCaptionLength)
	}

	created, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %v", err)
	}

	s.notifications.BroadcastNewContent(ctx, created.UserID, created.ID, models.NotificationPost)

	return created, nil
}

// GetPost retrieves a single post.
func (s *PostService) GetPost(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return s.repo.GetPostByID(ctx, id)
}

// GetFeed returns recent posts from the users the viewer follows, plus their own.
func (s *PostService) GetFeed(ctx context.Context, viewerID primitive.ObjectID) ([]models.Post, error) {
	authors, err := s.userService.FeedAuthors(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetFeed(ctx, authors, 50)
}

// GetPostsByUser returns one author's posts.
func (s *PostService) GetPostsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Post, error) {
	return s.repo.GetPostsByUser(ctx, userID)
}

// ToggleLike likes the post if the actor hasn't liked it yet, otherwise
// removes the like. Returns whether the post is liked after the call.
// A missing post is ErrNotFound; a failed update is a plain error.
// A cross-user like notifies the owner; unlikes and self-likes are silent.
func (s *PostService) ToggleLike(ctx context.Context, postID, actorID primitive.ObjectID) (bool, error) {
	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return false, ErrNotFound
	}

	if post.IsLikedBy(actorID) {
		if err := s.repo.RemoveLike(ctx, postID, actorID); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := s.repo.AddLike(ctx, postID, actorID); err != nil {
		return false, err
	}

	s.notifications.NotifyInteraction(ctx, post.UserID, actorID, models.NotificationLike, models.NotificationPost, post.ID)

	return true, nil
}

// AddComment appends a comment and notifies the post owner.
func (s *PostService) AddComment(ctx context.Context, postID, actorID primitive.ObjectID, actorUsername, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("comment text is required")
	}
	if len(text) > maxCommentLength {
		return nil, fmt.Errorf("comment exceeds %d characters", maxCommentLength)
	}

	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:   actorID,
		Username: actorUsername,
		Text:     text,
	}
	if err := s.repo.AddComment(ctx, postID, comment); err != nil {
		return nil, err
	}

	s.notifications.NotifyInteraction(ctx, post.UserID, actorID, models.NotificationComment, models.NotificationPost, post.ID)

	return comment, nil
}

// DeletePost removes a post and every bookmark pointing at it. Ownership is
// checked by the handler.
func (s *PostService) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.DeletePost(ctx, id); err != nil {
		return err
	}
	if err := s.savedRepo.DeleteByPost(ctx, id); err != nil {
		logrus.WithError(err).Warnf("Failed to clean up bookmarks for post %s", id.Hex())
	}
	return nil
}

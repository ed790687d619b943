package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/socialee/socialee/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxMoodLength = 280

// moodStore is the slice of the mood repository this service needs.
type moodStore interface {
	CreateMood(ctx context.Context, mood *models.Mood) (*models.Mood, error)
	GetMoodByID(ctx context.Context, id primitive.ObjectID) (*models.Mood, error)
	GetFeed(ctx context.Context, authorIDs []primitive.ObjectID, limit int64) ([]models.Mood, error)
	AddLike(ctx context.Context, moodID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, moodID, userID primitive.ObjectID) error
	AddComment(ctx context.Context, moodID primitive.ObjectID, comment *models.Comment) error
	DeleteMood(ctx context.Context, id primitive.ObjectID) error
}

// MoodService handles the business logic for mood statuses.
type MoodService struct {
	repo          moodStore
	userService   *UserService
	notifications contentNotifier
}

func NewMoodService(repo moodStore, userService *UserService, notifications contentNotifier) *MoodService {
	return &MoodService{
		repo:          repo,
		userService:   userService,
		notifications: notifications,
	}
}

// CreateMood validates and stores a mood, then fans out to followers.
func (s *MoodService) CreateMood(ctx context.Context, mood *models.Mood) (*models.Mood, error) {
	mood.Text = strings.TrimSpace(mood.Text)
	if mood.Text == "" {
		return nil, fmt.Errorf("mood text is required")
	}
	if len(mood.Text) > maxMoodLength {
		return nil, fmt.Errorf("mood text exceeds %d characters", maxMoodLength)
	}
	if !models.ValidMood(mood.Mood) {
		return nil, fmt.Errorf("unknown mood %q", mood.Mood)
	}
	mood.Color = models.MoodColors[mood.Mood]

	created, err := s.repo.CreateMood(ctx, mood)
	if err != nil {
		return nil, fmt.Errorf("failed to create mood: %v", err)
	}

	s.notifications.BroadcastNewContent(ctx, created.UserID, created.ID, models.NotificationMood)

	return created, nil
}

// GetMood retrieves a single mood.
func (s *MoodService) GetMood(ctx context.Context, id primitive.ObjectID) (*models.Mood, error) {
	return s.repo.GetMoodByID(ctx, id)
}

// GetFeed returns recent moods from followed users plus the viewer's own.
func (s *MoodService) GetFeed(ctx context.Context, viewerID primitive.ObjectID) ([]models.Mood, error) {
	authors, err := s.userService.FeedAuthors(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetFeed(ctx, authors, 50)
}

// ToggleLike mirrors PostService.ToggleLike for moods.
func (s *MoodService) ToggleLike(ctx context.Context, moodID, actorID primitive.ObjectID) (bool, error) {
	mood, err := s.repo.GetMoodByID(ctx, moodID)
	if err != nil {
		return false, ErrNotFound
	}

	if mood.IsLikedBy(actorID) {
		if err := s.repo.RemoveLike(ctx, moodID, actorID); err != nil {
			return true, err
		}
		return false, nil
	}

	if err := s.repo.AddLike(ctx, moodID, actorID); err != nil {
		return false, err
	}

	s.notifications.NotifyInteraction(ctx, mood.UserID, actorID, models.NotificationLike, models.NotificationMood, mood.ID)

	return true, nil
}

// AddComment appends a comment and notifies the mood owner.
func (s *MoodService) AddComment(ctx context.Context, moodID, actorID primitive.ObjectID, actorUsername, text string) (*models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("comment text is required")
	}
	if len(text) > maxCommentLength {
		return nil, fmt.Errorf("comment exceeds %d characters", maxCommentLength)
	}

	mood, err := s.repo.GetMoodByID(ctx, moodID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		UserID:   actorID,
		Username: actorUsername,
		Text:     text,
	}
	if err := s.repo.AddComment(ctx, moodID, comment); err != nil {
		return nil, err
	}

	s.notifications.NotifyInteraction(ctx, mood.UserID, actorID, models.NotificationComment, models.NotificationMood, mood.ID)

	return comment, nil
}

// DeleteMood removes a mood. Ownership is checked by the handler.
func (s *MoodService) DeleteMood(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.DeleteMood(ctx, id)
}

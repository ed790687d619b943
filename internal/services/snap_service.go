package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/socialee/socialee/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// snapStore is the slice of the snap repository this service needs.
type snapStore interface {
	CreateSnap(ctx context.Context, snap *models.Snap) (*models.Snap, error)
	GetSnapByID(ctx context.Context, id primitive.ObjectID) (*models.Snap, error)
	GetActiveSnaps(ctx context.Context, authorIDs []primitive.ObjectID) ([]models.Snap, error)
	AddView(ctx context.Context, snapID primitive.ObjectID, view *models.SnapView) error
	AddReaction(ctx context.Context, snapID primitive.ObjectID, reaction *models.SnapReaction) error
	DeleteSnap(ctx context.Context, id primitive.ObjectID) error
}

// SnapService handles the business logic for ephemeral snaps.
type SnapService struct {
	repo          snapStore
	userService   *UserService
	notifications contentNotifier
}

func NewSnapService(repo snapStore, userService *UserService, notifications contentNotifier) *SnapService {
	return &SnapService{
		repo:          repo,
		userService:   userService,
		notifications: notifications,
	}
}

// CreateSnap validates and stores a snap, then fans out to followers.
func (s *SnapService) CreateSnap(ctx context.Context, snap *models.Snap) (*models.Snap, error) {
	if strings.TrimSpace(snap.MediaURL) == "" {
		return nil, fmt.Errorf("media URL is required")
	}
	if snap.MediaType != "image" && snap.MediaType != "video" {
		return nil, fmt.Errorf("media type must be image or video")
	}

	created, err := s.repo.CreateSnap(ctx, snap)
	if err != nil {
		return nil, fmt.Errorf("failed to create snap: %v", err)
	}

	s.notifications.BroadcastNewContent(ctx, created.UserID, created.ID, models.NotificationSnap)

	return created, nil
}

// GetFeed returns unexpired snaps from followed users plus the viewer's own.
func (s *SnapService) GetFeed(ctx context.Context, viewerID primitive.ObjectID) ([]models.Snap, error) {
	authors, err := s.userService.FeedAuthors(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetActiveSnaps(ctx, authors)
}

// GetSnap retrieves a snap, treating an expired one as absent.
func (s *SnapService) GetSnap(ctx context.Context, id primitive.ObjectID) (*models.Snap, error) {
	snap, err := s.repo.GetSnapByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap.IsExpired(time.Now()) {
		return nil, fmt.Errorf("snap has expired")
	}
	return snap, nil
}

// ViewSnap records that the viewer saw the snap, once per viewer.
func (s *SnapService) ViewSnap(ctx context.Context, snapID, viewerID primitive.ObjectID) error {
	if _, err := s.GetSnap(ctx, snapID); err != nil {
		return err
	}

	view := &models.SnapView{
		UserID:   viewerID,
		ViewedAt: time.Now(),
	}
	return s.repo.AddView(ctx, snapID, view)
}

// ReactToSnap adds an emoji reaction and notifies the owner. Reactions count
// as like interactions for notification purposes.
func (s *SnapService) ReactToSnap(ctx context.Context, snapID, actorID primitive.ObjectID, emoji string) error {
	if strings.TrimSpace(emoji) == "" {
		return fmt.Errorf("emoji is required")
	}

	snap, err := s.GetSnap(ctx, snapID)
	if err != nil {
		return err
	}

	reaction := &models.SnapReaction{
		UserID:    actorID,
		Emoji:     emoji,
		CreatedAt: time.Now(),
	}
	if err := s.repo.AddReaction(ctx, snapID, reaction); err != nil {
		return err
	}

	s.notifications.NotifyInteraction(ctx, snap.UserID, actorID, models.NotificationLike, models.NotificationSnap, snap.ID)

	return nil
}

// DeleteSnap removes a snap. Ownership is checked by the handler.
func (s *SnapService) DeleteSnap(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.DeleteSnap(ctx, id)
}

// GetSnapOwner fetches a snap without the expiry filter, for ownership checks
// on deletion (owners may delete their expired snaps).
func (s *SnapService) GetSnapOwner(ctx context.Context, id primitive.ObjectID) (*models.Snap, error) {
	return s.repo.GetSnapByID(ctx, id)
}

package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/socialee/socialee/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// notificationStore is the slice of the notification repository this service needs.
type notificationStore interface {
	GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error)
	GetNotificationByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error)
	MarkAsRead(ctx context.Context, id primitive.ObjectID) error
	MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) error
}

// actorDirectory resolves user ids to full user documents.
type actorDirectory interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// deliveryQueue accepts notification batches for asynchronous delivery.
type deliveryQueue interface {
	Enqueue(notifs []*models.Notification)
}

// NotificationService builds notification records and hands them to the
// outbound queue. Everything here is best-effort: failures are logged and
// never surface to the request that triggered them.
type NotificationService struct {
	repo  notificationStore
	users actorDirectory
	queue deliveryQueue
}

func NewNotificationService(repo notificationStore, users actorDirectory, queue deliveryQueue) *NotificationService {
	return &NotificationService{
		repo:  repo,
		users: users,
		queue: queue,
	}
}

// BroadcastNewContent notifies every follower of the author that new content
// was published. contentType is one of "post", "snap" or "mood". An author
// with no followers is a logged no-op, not an error.
func (s *NotificationService) BroadcastNewContent(ctx context.Context, authorID, contentID primitive.ObjectID, contentType string) {
	author, err := s.users.GetUserByID(ctx, authorID)
	if err != nil {
		logrus.WithError(err).Warnf("Fan-out skipped: author %s not found", authorID.Hex())
		return
	}

	if len(author.Followers) == 0 {
		logrus.WithField("userID", authorID.Hex()).Info("Fan-out skipped: author has no followers")
		return
	}

	batch := buildFanout(author, contentID, contentType)
	s.queue.Enqueue(batch)

	logrus.WithFields(logrus.Fields{
		"userID": authorID.Hex(),
		"type":   contentType,
		"count":  len(batch),
	}).Info("New content fan-out enqueued")
}

// buildFanout constructs one notification per follower, each carrying the
// content id in the type-specific related field.
func buildFanout(author *models.User, contentID primitive.ObjectID, contentType string) []*models.Notification {
	message := fmt.Sprintf("%s shared a new %s", author.Name, contentType)

	batch := make([]*models.Notification, 0, len(author.Followers))
	for _, followerID := range author.Followers {
		notif := &models.Notification{
			UserID:     followerID,
			SenderID:   author.ID,
			SenderName: author.Name,
			Type:       contentType,
			Message:    message,
		}
		setRelatedContent(notif, contentID, contentType)
		batch = append(batch, notif)
	}
	return batch
}

func setRelatedContent(notif *models.Notification, contentID primitive.ObjectID, contentType string) {
	switch contentType {
	case models.NotificationPost:
		notif.RelatedPost = &contentID
	case models.NotificationSnap:
		notif.RelatedSnap = &contentID
	case models.NotificationMood:
		notif.RelatedMood = &contentID
	}
}

// NotifyInteraction alerts a content owner that another user liked or
// commented. The actor's display name is resolved here so the message matches
// what fan-out shows. Self-interactions are silent. interaction is "like" or
// "comment"; contentType is "post", "snap" or "mood".
func (s *NotificationService) NotifyInteraction(ctx context.Context, ownerID, actorID primitive.ObjectID, interaction, contentType string, contentID primitive.ObjectID) {
	if ownerID == actorID {
		return
	}

	actor, err := s.users.GetUserByID(ctx, actorID)
	if err != nil {
		logrus.WithError(err).Warnf("Interaction alert skipped: actor %s not found", actorID.Hex())
		return
	}

	notif, ok := buildInteraction(ownerID, actorID, actor.Name, interaction, contentType, contentID)
	if !ok {
		return
	}
	s.queue.Enqueue([]*models.Notification{notif})
}

// buildInteraction selects the message template for the (interaction x
// content type) pair. Returns false for self-interactions.
func buildInteraction(ownerID, actorID primitive.ObjectID, actorName, interaction, contentType string, contentID primitive.ObjectID) (*models.Notification, bool) {
	if ownerID == actorID {
		return nil, false
	}

	var verb string
	switch interaction {
	case models.NotificationLike:
		verb = "liked"
	case models.NotificationComment:
		verb = "commented on"
	default:
		return nil, false
	}

	notif := &models.Notification{
		UserID:     ownerID,
		SenderID:   actorID,
		SenderName: actorName,
		Type:       interaction,
		Message:    fmt.Sprintf("%s %s your %s", actorName, verb, contentType),
	}
	setRelatedContent(notif, contentID, contentType)
	return notif, true
}

// NotifyFollow alerts a user about their new follower.
func (s *NotificationService) NotifyFollow(followedID, followerID primitive.ObjectID, followerName string) {
	s.queue.Enqueue([]*models.Notification{{
		UserID:     followedID,
		SenderID:   followerID,
		SenderName: followerName,
		Type:       models.NotificationFollow,
		Message:    fmt.Sprintf("%s started following you", followerName),
	}})
}

// NotifyMessage alerts a user about an incoming direct message.
func (s *NotificationService) NotifyMessage(ctx context.Context, receiverID, senderID primitive.ObjectID) {
	sender, err := s.users.GetUserByID(ctx, senderID)
	if err != nil {
		logrus.WithError(err).Warnf("Message alert skipped: sender %s not found", senderID.Hex())
		return
	}

	s.queue.Enqueue([]*models.Notification{{
		UserID:     receiverID,
		SenderID:   senderID,
		SenderName: sender.Name,
		Type:       models.NotificationMessage,
		Message:    fmt.Sprintf("%s sent you a message", sender.Name),
	}})
}

// GetUserNotifications returns all notifications for a user.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

// GetNotification retrieves a single notification.
func (s *NotificationService) GetNotification(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	return s.repo.GetNotificationByID(ctx, id)
}

// MarkNotificationAsRead sets the "read" status of a notification to true.
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notifID primitive.ObjectID) error {
	return s.repo.MarkAsRead(ctx, notifID)
}

// MarkAllNotificationsAsRead flags every unread notification for the user.
func (s *NotificationService) MarkAllNotificationsAsRead(ctx context.Context, userID primitive.ObjectID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

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

type NotificationRepository struct {
	collection *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{
		collection: db.Collection("notifications"),
	}
}

// CreateNotification inserts a single notification.
func (r *NotificationRepository) CreateNotification(ctx context.Context, notif *models.Notification) error {
	notif.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, notif)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert notification")
		return fmt.Errorf("failed to create notification: %v", err)
	}
	return nil
}

// CreateNotifications inserts a fan-out batch in one call.
func (r *NotificationRepository) CreateNotifications(ctx context.Context, notifs []*models.Notification) error {
	if len(notifs) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, 0, len(notifs))
	for _, n := range notifs {
		n.CreatedAt = now
		docs = append(docs, n)
	}

	_, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		logrus.WithError(err).Errorf("Failed to insert %d notifications", len(notifs))
		return fmt.Errorf("failed to create notifications: %v", err)
	}
	return nil
}

// GetUserNotifications returns all notifications for a user, newest first.
func (r *NotificationRepository) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	filter := bson.M{"user_id": userID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(100)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %v", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %v", err)
	}
	return notifications, nil
}

// GetNotificationByID retrieves a single notification.
func (r *NotificationRepository) GetNotificationByID(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	var notif models.Notification
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&notif)
	if err != nil {
		return nil, fmt.Errorf("failed to find notification: %v", err)
	}
	return &notif, nil
}

// MarkAsRead sets notification's Read to true.
func (r *NotificationRepository) MarkAsRead(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"read": true}})
	return err
}

// MarkAllAsRead flags every unread notification for the user.
func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{"user_id": userID, "read": false},
		bson.M{"$set": bson.M{"read": true}},
	)
	return err
}

// DeleteOldNotifications removes notifications older than the given age.
func (r *NotificationRepository) DeleteOldNotifications(ctx context.Context, age time.Duration) error {
	filter := bson.M{"created_at": bson.M{"$lte": time.Now().Add(-age)}}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete old notifications: %v", err)
	}
	logrus.Infof("Deleted %d old notifications", result.DeletedCount)
	return nil
}

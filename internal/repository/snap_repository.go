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

// SnapRepository handles database operations related to snaps.
type SnapRepository struct {
	collection *mongo.Collection
}

func NewSnapRepository(db *mongo.Database) *SnapRepository {
	return &SnapRepository{
		collection: db.Collection("snaps"),
	}
}

// CreateSnap inserts a new snap with a 24h expiry.
func (r *SnapRepository) CreateSnap(ctx context.Context, snap *models.Snap) (*models.Snap, error) {
	snap.CreatedAt = time.Now()
	if snap.ExpiresAt.IsZero() {
		snap.ExpiresAt = snap.CreatedAt.Add(models.SnapTTL)
	}

	result, err := r.collection.InsertOne(ctx, snap)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert snap")
		return nil, fmt.Errorf("failed to insert snap: %v", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("failed to cast inserted ID")
	}
	snap.ID = insertedID

	return snap, nil
}

// GetSnapByID retrieves a snap regardless of expiry; callers that serve
// feeds must use GetActiveSnaps instead.
func (r *SnapRepository) GetSnapByID(ctx context.Context, id primitive.ObjectID) (*models.Snap, error) {
	var snap models.Snap
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if err != nil {
		return nil, fmt.Errorf("failed to find snap: %v", err)
	}
	return &snap, nil
}

// GetActiveSnaps returns unexpired snaps by the given authors, newest first.
// Expiry is enforced here by the query filter, never in application code.
func (r *SnapRepository) GetActiveSnaps(ctx context.Context, authorIDs []primitive.ObjectID) ([]models.Snap, error) {
	filter := bson.M{
		"user_id":    bson.M{"$in": authorIDs},
		"expires_at": bson.M{"$gt": time.Now()},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snaps: %v", err)
	}
	defer cursor.Close(ctx)

	var snaps []models.Snap
	if err := cursor.All(ctx, &snaps); err != nil {
		return nil, fmt.Errorf("failed to decode snaps: %v", err)
	}
	return snaps, nil
}

// AddView records a view once per viewer.
func (r *SnapRepository) AddView(ctx context.Context, snapID primitive.ObjectID, view *models.SnapView) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": snapID, "views.user_id": bson.M{"$ne": view.UserID}},
		bson.M{"$push": bson.M{"views": view}},
	)
	if err != nil {
		return fmt.Errorf("failed to record snap view: %v", err)
	}
	return nil
}

// AddReaction appends an emoji reaction.
func (r *SnapRepository) AddReaction(ctx context.Context, snapID primitive.ObjectID, reaction *models.SnapReaction) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": snapID},
		bson.M{"$push": bson.M{"reactions": reaction}},
	)
	if err != nil {
		return fmt.Errorf("failed to add snap reaction: %v", err)
	}
	return nil
}

// DeleteSnap removes a snap.
func (r *SnapRepository) DeleteSnap(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete snap: %v", err)
	}
	return nil
}

// DeleteExpiredSnaps sweeps snaps whose expiry passed more than the given
// grace period ago. Housekeeping only; visibility is handled by query filters.
func (r *SnapRepository) DeleteExpiredSnaps(ctx context.Context, grace time.Duration) error {
	filter := bson.M{"expires_at": bson.M{"$lte": time.Now().Add(-grace)}}
	result, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete expired snaps: %v", err)
	}
	logrus.Infof("Deleted %d expired snaps", result.DeletedCount)
	return nil
}

package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/socialee/socialee/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildFanoutOnePerFollower(t *testing.T) {
	followers := []primitive.ObjectID{
		primitive.NewObjectID(),
		primitive.NewObjectID(),
		primitive.NewObjectID(),
	}
	author := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      "Bob",
		Followers: followers,
	}
	contentID := primitive.NewObjectID()

	batch := buildFanout(author, contentID, models.NotificationPost)

	require.Len(t, batch, len(followers))
	for i, notif := range batch {
		assert.Equal(t, followers[i], notif.UserID)
		assert.Equal(t, author.ID, notif.SenderID)
		assert.Equal(t, models.NotificationPost, notif.Type)
		assert.Equal(t, "Bob shared a new post", notif.Message)
		require.NotNil(t, notif.RelatedPost)
		assert.Equal(t, contentID, *notif.RelatedPost)
		assert.Nil(t, notif.RelatedSnap)
		assert.Nil(t, notif.RelatedMood)
	}
}

func TestBuildFanoutRelatedFieldPerType(t *testing.T) {
	author := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      "Bob",
		Followers: []primitive.ObjectID{primitive.NewObjectID()},
	}
	contentID := primitive.NewObjectID()

	snaps := buildFanout(author, contentID, models.NotificationSnap)
	require.Len(t, snaps, 1)
	require.NotNil(t, snaps[0].RelatedSnap)
	assert.Equal(t, contentID, *snaps[0].RelatedSnap)
	assert.Nil(t, snaps[0].RelatedPost)

	moods := buildFanout(author, contentID, models.NotificationMood)
	require.Len(t, moods, 1)
	require.NotNil(t, moods[0].RelatedMood)
	assert.Equal(t, contentID, *moods[0].RelatedMood)
}

func TestBuildFanoutNoFollowers(t *testing.T) {
	author := &models.User{ID: primitive.NewObjectID(), Name: "Bob"}
	batch := buildFanout(author, primitive.NewObjectID(), models.NotificationPost)
	assert.Empty(t, batch)
}

func TestBuildInteractionSelfIsSilent(t *testing.T) {
	user := primitive.NewObjectID()
	notif, ok := buildInteraction(user, user, "Alice", models.NotificationLike, models.NotificationPost, primitive.NewObjectID())
	assert.False(t, ok)
	assert.Nil(t, notif)
}

func TestBuildInteractionTemplates(t *testing.T) {
	owner := primitive.NewObjectID()
	actor := primitive.NewObjectID()
	contentID := primitive.NewObjectID()

	cases := []struct {
		interaction string
		contentType string
		want        string
	}{
		{models.NotificationLike, models.NotificationPost, "Alice liked your post"},
		{models.NotificationComment, models.NotificationPost, "Alice commented on your post"},
		{models.NotificationLike, models.NotificationSnap, "Alice liked your snap"},
		{models.NotificationComment, models.NotificationSnap, "Alice commented on your snap"},
		{models.NotificationLike, models.NotificationMood, "Alice liked your mood"},
		{models.NotificationComment, models.NotificationMood, "Alice commented on your mood"},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s_%s", tc.interaction, tc.contentType), func(t *testing.T) {
			notif, ok := buildInteraction(owner, actor, "Alice", tc.interaction, tc.contentType, contentID)
			require.True(t, ok)
			assert.Equal(t, tc.want, notif.Message)
			assert.Equal(t, owner, notif.UserID)
			assert.Equal(t, actor, notif.SenderID)
			assert.Equal(t, tc.interaction, notif.Type)
		})
	}
}

func TestBuildInteractionUnknownTypeIsSilent(t *testing.T) {
	owner := primitive.NewObjectID()
	actor := primitive.NewObjectID()
	_, ok := buildInteraction(owner, actor, "Alice", "poke", models.NotificationPost, primitive.NewObjectID())
	assert.False(t, ok)
}

type fakeQueue struct {
	batches [][]*models.Notification
}

func (f *fakeQueue) Enqueue(notifs []*models.Notification) {
	f.batches = append(f.batches, notifs)
}

func TestNotifyInteractionUsesDisplayName(t *testing.T) {
	actor := &models.User{ID: primitive.NewObjectID(), Name: "Alice Johnson", Username: "alice"}
	owner := primitive.NewObjectID()
	queue := &fakeQueue{}
	svc := NewNotificationService(nil, newFakeUserStore(actor), queue)

	svc.NotifyInteraction(context.Background(), owner, actor.ID, models.NotificationLike, models.NotificationPost, primitive.NewObjectID())

	require.Len(t, queue.batches, 1)
	require.Len(t, queue.batches[0], 1)
	notif := queue.batches[0][0]
	assert.Equal(t, "Alice Johnson liked your post", notif.Message)
	assert.Equal(t, "Alice Johnson", notif.SenderName)
}

func TestNotifyInteractionSelfEnqueuesNothing(t *testing.T) {
	actor := &models.User{ID: primitive.NewObjectID(), Name: "Alice", Username: "alice"}
	queue := &fakeQueue{}
	svc := NewNotificationService(nil, newFakeUserStore(actor), queue)

	svc.NotifyInteraction(context.Background(), actor.ID, actor.ID, models.NotificationLike, models.NotificationPost, primitive.NewObjectID())

	assert.Empty(t, queue.batches)
}

func TestNotifyInteractionUnknownActorIsSilent(t *testing.T) {
	queue := &fakeQueue{}
	svc := NewNotificationService(nil, newFakeUserStore(), queue)

	svc.NotifyInteraction(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), models.NotificationLike, models.NotificationPost, primitive.NewObjectID())

	assert.Empty(t, queue.batches)
}

func TestNotifyMessageUsesDisplayName(t *testing.T) {
	sender := &models.User{ID: primitive.NewObjectID(), Name: "Alice Johnson", Username: "alice"}
	receiver := primitive.NewObjectID()
	queue := &fakeQueue{}
	svc := NewNotificationService(nil, newFakeUserStore(sender), queue)

	svc.NotifyMessage(context.Background(), receiver, sender.ID)

	require.Len(t, queue.batches, 1)
	assert.Equal(t, "Alice Johnson sent you a message", queue.batches[0][0].Message)
	assert.Equal(t, receiver, queue.batches[0][0].UserID)
}

func TestBroadcastNewContentEnqueuesFanout(t *testing.T) {
	follower := primitive.NewObjectID()
	author := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      "Bob",
		Username:  "bob",
		Followers: []primitive.ObjectID{follower},
	}
	queue := &fakeQueue{}
	svc := NewNotificationService(nil, newFakeUserStore(author), queue)

	svc.BroadcastNewContent(context.Background(), author.ID, primitive.NewObjectID(), models.NotificationPost)

	require.Len(t, queue.batches, 1)
	require.Len(t, queue.batches[0], 1)
	assert.Equal(t, follower, queue.batches[0][0].UserID)
	assert.Equal(t, "Bob shared a new post", queue.batches[0][0].Message)
}

func TestBroadcastNewContentNoFollowersEnqueuesNothing(t *testing.T) {
	author := &models.User{ID: primitive.NewObjectID(), Name: "Bob", Username: "bob"}
	queue := &fakeQueue{}
	svc := NewNotificationService(nil, newFakeUserStore(author), queue)

	svc.BroadcastNewContent(context.Background(), author.ID, primitive.NewObjectID(), models.NotificationPost)

	assert.Empty(t, queue.batches)
}

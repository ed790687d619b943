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

type fakeMoodStore struct {
	moods map[primitive.ObjectID]*models.Mood
}

func newFakeMoodStore(moods ...*models.Mood) *fakeMoodStore {
	store := &fakeMoodStore{moods: map[primitive.ObjectID]*models.Mood{}}
	for _, m := range moods {
		store.moods[m.ID] = m
	}
	return store
}

func (f *fakeMoodStore) CreateMood(_ context.Context, mood *models.Mood) (*models.Mood, error) {
	mood.ID = primitive.NewObjectID()
	f.moods[mood.ID] = mood
	return mood, nil
}

func (f *fakeMoodStore) GetMoodByID(_ context.Context, id primitive.ObjectID) (*models.Mood, error) {
	m, ok := f.moods[id]
	if !ok {
		return nil, fmt.Errorf("no mood %s", id.Hex())
	}
	return m, nil
}

func (f *fakeMoodStore) GetFeed(_ context.Context, _ []primitive.ObjectID, _ int64) ([]models.Mood, error) {
	return nil, nil
}

func (f *fakeMoodStore) AddLike(_ context.Context, moodID, userID primitive.ObjectID) error {
	m := f.moods[moodID]
	if !containsObjectID(m.Likes, userID) {
		m.Likes = append(m.Likes, userID)
	}
	return nil
}

func (f *fakeMoodStore) RemoveLike(_ context.Context, moodID, userID primitive.ObjectID) error {
	m := f.moods[moodID]
	m.Likes = removeObjectID(m.Likes, userID)
	return nil
}

func (f *fakeMoodStore) AddComment(_ context.Context, moodID primitive.ObjectID, comment *models.Comment) error {
	m := f.moods[moodID]
	m.Comments = append(m.Comments, *comment)
	return nil
}

func (f *fakeMoodStore) DeleteMood(_ context.Context, id primitive.ObjectID) error {
	delete(f.moods, id)
	return nil
}

func TestMoodToggleLikeRoundTrip(t *testing.T) {
	actor := primitive.NewObjectID()
	mood := &models.Mood{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}
	store := newFakeMoodStore(mood)
	notifier := &fakeContentNotifier{}
	svc := NewMoodService(store, nil, notifier)

	liked, err := svc.ToggleLike(context.Background(), mood.ID, actor)
	require.NoError(t, err)
	assert.True(t, liked)
	require.Len(t, notifier.interactions, 1)
	assert.Equal(t, models.NotificationMood, notifier.interactions[0].contentType)

	liked, err = svc.ToggleLike(context.Background(), mood.ID, actor)
	require.NoError(t, err)
	assert.False(t, liked)
	// The unlike adds no second alert.
	assert.Len(t, notifier.interactions, 1)
}

func TestMoodToggleLikeMissingMood(t *testing.T) {
	svc := NewMoodService(newFakeMoodStore(), nil, &fakeContentNotifier{})

	_, err := svc.ToggleLike(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrNotFound)
}

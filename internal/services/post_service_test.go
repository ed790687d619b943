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

type fakePostStore struct {
	posts     map[primitive.ObjectID]*models.Post
	likeErr   error
	unlikeErr error
}

func newFakePostStore(posts ...*models.Post) *fakePostStore {
	store := &fakePostStore{posts: map[primitive.ObjectID]*models.Post{}}
	for _, p := range posts {
		store.posts[p.ID] = p
	}
	return store
}

func (f *fakePostStore) CreatePost(_ context.Context, post *models.Post) (*models.Post, error) {
	post.ID = primitive.NewObjectID()
	f.posts[post.ID] = post
	return post, nil
}

func (f *fakePostStore) GetPostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, fmt.Errorf("no post %s", id.Hex())
	}
	return p, nil
}

func (f *fakePostStore) GetFeed(_ context.Context, _ []primitive.ObjectID, _ int64) ([]models.Post, error) {
	return nil, nil
}

func (f *fakePostStore) GetPostsByUser(_ context.Context, _ primitive.ObjectID) ([]models.Post, error) {
	return nil, nil
}

func (f *fakePostStore) AddLike(_ context.Context, postID, userID primitive.ObjectID) error {
	if f.likeErr != nil {
		return f.likeErr
	}
	p := f.posts[postID]
	if !containsObjectID(p.Likes, userID) {
		p.Likes = append(p.Likes, userID)
	}
	return nil
}

func (f *fakePostStore) RemoveLike(_ context.Context, postID, userID primitive.ObjectID) error {
	if f.unlikeErr != nil {
		return f.unlikeErr
	}
	p := f.posts[postID]
	p.Likes = removeObjectID(p.Likes, userID)
	return nil
}

func (f *fakePostStore) AddComment(_ context.Context, postID primitive.ObjectID, comment *models.Comment) error {
	p := f.posts[postID]
	p.Comments = append(p.Comments, *comment)
	return nil
}

func (f *fakePostStore) DeletePost(_ context.Context, id primitive.ObjectID) error {
	delete(f.posts, id)
	return nil
}

type fakeBookmarkCleaner struct {
	deleted []primitive.ObjectID
}

func (f *fakeBookmarkCleaner) DeleteByPost(_ context.Context, postID primitive.ObjectID) error {
	f.deleted = append(f.deleted, postID)
	return nil
}

type interactionCall struct {
	ownerID     primitive.ObjectID
	actorID     primitive.ObjectID
	interaction string
	contentType string
}

type fakeContentNotifier struct {
	broadcasts   []string
	interactions []interactionCall
}

func (f *fakeContentNotifier) BroadcastNewContent(_ context.Context, _, _ primitive.ObjectID, contentType string) {
	f.broadcasts = append(f.broadcasts, contentType)
}

func (f *fakeContentNotifier) NotifyInteraction(_ context.Context, ownerID, actorID primitive.ObjectID, interaction, contentType string, _ primitive.ObjectID) {
	f.interactions = append(f.interactions, interactionCall{ownerID, actorID, interaction, contentType})
}

func newPostService(store *fakePostStore, notifier *fakeContentNotifier) *PostService {
	return NewPostService(store, &fakeBookmarkCleaner{}, nil, notifier)
}

func TestToggleLikeLikesAndNotifies(t *testing.T) {
	owner := primitive.NewObjectID()
	actor := primitive.NewObjectID()
	post := &models.Post{ID: primitive.NewObjectID(), UserID: owner}
	store := newFakePostStore(post)
	notifier := &fakeContentNotifier{}
	svc := newPostService(store, notifier)

	liked, err := svc.ToggleLike(context.Background(), post.ID, actor)

	require.NoError(t, err)
	assert.True(t, liked)
	assert.True(t, post.IsLikedBy(actor))
	require.Len(t, notifier.interactions, 1)
	assert.Equal(t, owner, notifier.interactions[0].ownerID)
	assert.Equal(t, actor, notifier.interactions[0].actorID)
	assert.Equal(t, models.NotificationLike, notifier.interactions[0].interaction)
	assert.Equal(t, models.NotificationPost, notifier.interactions[0].contentType)
}

func TestToggleLikeUnlikeIsSilent(t *testing.T) {
	actor := primitive.NewObjectID()
	post := &models.Post{
		ID:     primitive.NewObjectID(),
		UserID: primitive.NewObjectID(),
		Likes:  []primitive.ObjectID{actor},
	}
	store := newFakePostStore(post)
	notifier := &fakeContentNotifier{}
	svc := newPostService(store, notifier)

	liked, err := svc.ToggleLike(context.Background(), post.ID, actor)

	require.NoError(t, err)
	assert.False(t, liked)
	assert.False(t, post.IsLikedBy(actor))
	assert.Empty(t, notifier.interactions)
}

func TestToggleLikeRoundTrip(t *testing.T) {
	actor := primitive.NewObjectID()
	post := &models.Post{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}
	store := newFakePostStore(post)
	svc := newPostService(store, &fakeContentNotifier{})

	liked, err := svc.ToggleLike(context.Background(), post.ID, actor)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = svc.ToggleLike(context.Background(), post.ID, actor)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Empty(t, post.Likes)
}

func TestToggleLikeMissingPost(t *testing.T) {
	svc := newPostService(newFakePostStore(), &fakeContentNotifier{})

	_, err := svc.ToggleLike(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleLikeUpdateFailureIsNotMissing(t *testing.T) {
	post := &models.Post{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}
	store := newFakePostStore(post)
	store.likeErr = fmt.Errorf("write failed")
	notifier := &fakeContentNotifier{}
	svc := newPostService(store, notifier)

	_, err := svc.ToggleLike(context.Background(), post.ID, primitive.NewObjectID())

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Empty(t, notifier.interactions)
}

func TestDeletePostCleansBookmarks(t *testing.T) {
	post := &models.Post{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}
	store := newFakePostStore(post)
	cleaner := &fakeBookmarkCleaner{}
	svc := NewPostService(store, cleaner, nil, &fakeContentNotifier{})

	require.NoError(t, svc.DeletePost(context.Background(), post.ID))
	assert.Equal(t, []primitive.ObjectID{post.ID}, cleaner.deleted)
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostIsLikedBy(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	post := &Post{Likes: []primitive.ObjectID{alice}}

	assert.True(t, post.IsLikedBy(alice))
	assert.False(t, post.IsLikedBy(bob))
	assert.False(t, (&Post{}).IsLikedBy(alice))
}

func TestSnapIsExpired(t *testing.T) {
	now := time.Now()

	fresh := &Snap{ExpiresAt: now.Add(time.Hour)}
	stale := &Snap{ExpiresAt: now.Add(-time.Minute)}
	boundary := &Snap{ExpiresAt: now}

	assert.False(t, fresh.IsExpired(now))
	assert.True(t, stale.IsExpired(now))
	assert.True(t, boundary.IsExpired(now))
}

func TestSnapHasViewed(t *testing.T) {
	viewer := primitive.NewObjectID()
	other := primitive.NewObjectID()

	snap := &Snap{Views: []SnapView{{UserID: viewer, ViewedAt: time.Now()}}}

	assert.True(t, snap.HasViewed(viewer))
	assert.False(t, snap.HasViewed(other))
}

func TestValidMood(t *testing.T) {
	for mood := range MoodColors {
		assert.True(t, ValidMood(mood))
	}
	assert.False(t, ValidMood("grumpy"))
	assert.False(t, ValidMood(""))
}

func TestUserIsFollowing(t *testing.T) {
	target := primitive.NewObjectID()
	user := &User{Following: []primitive.ObjectID{target}}

	assert.True(t, user.IsFollowing(target))
	assert.False(t, user.IsFollowing(primitive.NewObjectID()))
}

func TestUserPublicHidesPrivateFields(t *testing.T) {
	user := &User{
		Name:           "Alice",
		Username:       "alice",
		HashedPassword: "secret-hash",
		Followers:      []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()},
		Following:      []primitive.ObjectID{primitive.NewObjectID()},
	}

	public := user.Public()
	assert.Equal(t, "alice", public.Username)
	assert.Equal(t, 2, public.Followers)
	assert.Equal(t, 1, public.Following)
}

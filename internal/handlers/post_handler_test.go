package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/socialee/socialee/internal/models"
	"github.com/socialee/socialee/internal/services"
	jwtutil "github.com/socialee/socialee/pkg/jwt"
	"github.com/socialee/socialee/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubPostStore struct {
	posts   map[primitive.ObjectID]*models.Post
	likeErr error
}

func (s *stubPostStore) CreatePost(_ context.Context, post *models.Post) (*models.Post, error) {
	return post, nil
}

func (s *stubPostStore) GetPostByID(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("no post %s", id.Hex())
	}
	return p, nil
}

func (s *stubPostStore) GetFeed(_ context.Context, _ []primitive.ObjectID, _ int64) ([]models.Post, error) {
	return nil, nil
}

func (s *stubPostStore) GetPostsByUser(_ context.Context, _ primitive.ObjectID) ([]models.Post, error) {
	return nil, nil
}

func (s *stubPostStore) AddLike(_ context.Context, postID, userID primitive.ObjectID) error {
	if s.likeErr != nil {
		return s.likeErr
	}
	p := s.posts[postID]
	p.Likes = append(p.Likes, userID)
	return nil
}

func (s *stubPostStore) RemoveLike(_ context.Context, _, _ primitive.ObjectID) error {
	return nil
}

func (s *stubPostStore) AddComment(_ context.Context, _ primitive.ObjectID, _ *models.Comment) error {
	return nil
}

func (s *stubPostStore) DeletePost(_ context.Context, _ primitive.ObjectID) error {
	return nil
}

type stubBookmarks struct{}

func (stubBookmarks) DeleteByPost(_ context.Context, _ primitive.ObjectID) error { return nil }

type stubNotifier struct{}

func (stubNotifier) BroadcastNewContent(_ context.Context, _, _ primitive.ObjectID, _ string) {}
func (stubNotifier) NotifyInteraction(_ context.Context, _, _ primitive.ObjectID, _, _ string, _ primitive.ObjectID) {
}

func newLikeRequest(postID primitive.ObjectID, claims *jwtutil.Claims) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/posts/"+postID.Hex()+"/like", nil)
	req = mux.SetURLVars(req, map[string]string{"id": postID.Hex()})
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	return req.WithContext(ctx)
}

func TestLikePostHandlerMissingPostIs404(t *testing.T) {
	store := &stubPostStore{posts: map[primitive.ObjectID]*models.Post{}}
	handler := NewPostHandler(services.NewPostService(store, stubBookmarks{}, nil, stubNotifier{}))
	claims := &jwtutil.Claims{UserID: primitive.NewObjectID().Hex(), Username: "alice"}

	rec := httptest.NewRecorder()
	handler.LikePostHandler(rec, newLikeRequest(primitive.NewObjectID(), claims))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLikePostHandlerUpdateFailureIs500(t *testing.T) {
	post := &models.Post{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}
	store := &stubPostStore{
		posts:   map[primitive.ObjectID]*models.Post{post.ID: post},
		likeErr: fmt.Errorf("write failed"),
	}
	handler := NewPostHandler(services.NewPostService(store, stubBookmarks{}, nil, stubNotifier{}))
	claims := &jwtutil.Claims{UserID: primitive.NewObjectID().Hex(), Username: "alice"}

	rec := httptest.NewRecorder()
	handler.LikePostHandler(rec, newLikeRequest(post.ID, claims))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLikePostHandlerTogglesLike(t *testing.T) {
	post := &models.Post{ID: primitive.NewObjectID(), UserID: primitive.NewObjectID()}
	store := &stubPostStore{posts: map[primitive.ObjectID]*models.Post{post.ID: post}}
	handler := NewPostHandler(services.NewPostService(store, stubBookmarks{}, nil, stubNotifier{}))
	claims := &jwtutil.Claims{UserID: primitive.NewObjectID().Hex(), Username: "alice"}

	rec := httptest.NewRecorder()
	handler.LikePostHandler(rec, newLikeRequest(post.ID, claims))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]bool
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.True(t, body["liked"])
}

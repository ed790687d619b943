package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/socialee/socialee/internal/models"
	"github.com/socialee/socialee/internal/services"
	"github.com/socialee/socialee/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler handles HTTP requests related to posts.
type PostHandler struct {
	Service *services.PostService
}

func NewPostHandler(service *services.PostService) *PostHandler {
	return &PostHandler{Service: service}
}

// CreatePostHandler publishes a new post for the authenticated user.
func (h *PostHandler) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		ImageURL string   `json:"image_url"`
		Caption  string   `json:"caption"`
		Tags     []string `json:"tags"`
		Location string   `json:"location"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.WithError(err).Warn("Failed to decode create post request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	post := &models.Post{
		UserID:   userID,
		ImageURL: body.ImageURL,
		Caption:  body.Caption,
		Tags:     body.Tags,
		Location: body.Location,
	}

	created, err := h.Service.CreatePost(r.Context(), post)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.WithField("postID", created.ID.Hex()).Info("Post created")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetFeedHandler returns the authenticated user's post feed.
func (h *PostHandler) GetFeedHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	posts, err := h.Service.GetFeed(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to fetch feed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// GetPostHandler returns a single post.
func (h *PostHandler) GetPostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := h.Service.GetPost(r.Context(), postID)
	if err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(post)
}

// GetUserPostsHandler returns all posts of one author.
func (h *PostHandler) GetUserPostsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	posts, err := h.Service.GetPostsByUser(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

// LikePostHandler toggles the caller's like on a post.
func (h *PostHandler) LikePostHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	actorID, _ := primitive.ObjectIDFromHex(claims.UserID)

	liked, err := h.Service.ToggleLike(r.Context(), postID, actorID)
	if errors.Is(err, services.ErrNotFound) {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.WithError(err).Error("Failed to toggle like")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"liked": liked})
}

// AddCommentHandler appends a comment to a post.
func (h *PostHandler) AddCommentHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	actorID, _ := primitive.ObjectIDFromHex(claims.UserID)

	comment, err := h.Service.AddComment(r.Context(), postID, actorID, claims.Username, body.Text)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(comment)
}

// DeletePostHandler deletes a post; only the author may delete it.
func (h *PostHandler) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	post, err := h.Service.GetPost(r.Context(), postID)
	if err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	if post.UserID.Hex() != claims.UserID {
		log.WithFields(log.Fields{
			"postID": postID.Hex(),
			"userID": claims.UserID,
		}).Warn("Forbidden post deletion attempt")
		http.Error(w, "Forbidden: only the author may delete this post", http.StatusForbidden)
		return
	}

	if err := h.Service.DeletePost(r.Context(), postID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Post deleted"})
}

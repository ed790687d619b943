package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/socialee/socialee/internal/services"
	"github.com/socialee/socialee/pkg/logger"
	"github.com/socialee/socialee/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedPostHandler handles bookmark endpoints.
type SavedPostHandler struct {
	Service *services.SavedPostService
}

func NewSavedPostHandler(service *services.SavedPostService) *SavedPostHandler {
	return &SavedPostHandler{Service: service}
}

// POST /api/saved/{postId}
func (h *SavedPostHandler) SavePostHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["postId"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	saved, err := h.Service.SavePost(r.Context(), userID, postID)
	if err != nil {
		logger.Log.Warnf("Failed to save post: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(saved)
}

// DELETE /api/saved/{postId}
func (h *SavedPostHandler) UnsavePostHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	postID, err := primitive.ObjectIDFromHex(mux.Vars(r)["postId"])
	if err != nil {
		http.Error(w, "Invalid post ID", http.StatusBadRequest)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.UnsavePost(r.Context(), userID, postID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Post unsaved"})
}

// GET /api/saved
func (h *SavedPostHandler) GetSavedPostsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	posts, err := h.Service.GetSavedPosts(r.Context(), userID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch saved posts: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(posts)
}

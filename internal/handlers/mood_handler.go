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

// MoodHandler handles HTTP requests related to moods.
type MoodHandler struct {
	Service *services.MoodService
}

func NewMoodHandler(service *services.MoodService) *MoodHandler {
	return &MoodHandler{Service: service}
}

// CreateMoodHandler publishes a new mood status.
func (h *MoodHandler) CreateMoodHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		Text string `json:"text"`
		Mood string `json:"mood"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	mood := &models.Mood{
		UserID: userID,
		Text:   body.Text,
		Mood:   body.Mood,
	}

	created, err := h.Service.CreateMood(r.Context(), mood)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.WithField("moodID", created.ID.Hex()).Info("Mood created")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetFeedHandler returns the caller's mood feed.
func (h *MoodHandler) GetFeedHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	moods, err := h.Service.GetFeed(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to fetch mood feed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(moods)
}

// LikeMoodHandler toggles the caller's like on a mood.
func (h *MoodHandler) LikeMoodHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	moodID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid mood ID", http.StatusBadRequest)
		return
	}

	actorID, _ := primitive.ObjectIDFromHex(claims.UserID)

	liked, err := h.Service.ToggleLike(r.Context(), moodID, actorID)
	if errors.Is(err, services.ErrNotFound) {
		http.Error(w, "Mood not found", http.StatusNotFound)
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

// AddCommentHandler appends a comment to a mood.
func (h *MoodHandler) AddCommentHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	moodID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid mood ID", http.StatusBadRequest)
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

	comment, err := h.Service.AddComment(r.Context(), moodID, actorID, claims.Username, body.Text)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(comment)
}

// DeleteMoodHandler deletes a mood; only the author may delete it.
func (h *MoodHandler) DeleteMoodHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	moodID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid mood ID", http.StatusBadRequest)
		return
	}

	mood, err := h.Service.GetMood(r.Context(), moodID)
	if err != nil {
		http.Error(w, "Mood not found", http.StatusNotFound)
		return
	}

	if mood.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden: only the author may delete this mood", http.StatusForbidden)
		return
	}

	if err := h.Service.DeleteMood(r.Context(), moodID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Mood deleted"})
}

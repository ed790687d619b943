package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/socialee/socialee/internal/models"
	"github.com/socialee/socialee/internal/services"
	"github.com/socialee/socialee/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SnapHandler handles HTTP requests related to snaps.
type SnapHandler struct {
	Service *services.SnapService
}

func NewSnapHandler(service *services.SnapService) *SnapHandler {
	return &SnapHandler{Service: service}
}

// CreateSnapHandler publishes a snap that expires 24 hours after creation.
func (h *SnapHandler) CreateSnapHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		MediaURL  string `json:"media_url"`
		MediaType string `json:"media_type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)
	snap := &models.Snap{
		UserID:    userID,
		MediaURL:  body.MediaURL,
		MediaType: body.MediaType,
	}

	created, err := h.Service.CreateSnap(r.Context(), snap)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.WithField("snapID", created.ID.Hex()).Info("Snap created")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetFeedHandler returns current (unexpired) snaps for the caller's feed.
func (h *SnapHandler) GetFeedHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	snaps, err := h.Service.GetFeed(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to fetch snap feed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snaps)
}

// ViewSnapHandler records that the caller viewed a snap.
func (h *SnapHandler) ViewSnapHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	snapID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid snap ID", http.StatusBadRequest)
		return
	}

	viewerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.ViewSnap(r.Context(), snapID, viewerID); err != nil {
		http.Error(w, "Snap not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "View recorded"})
}

// ReactSnapHandler adds an emoji reaction to a snap.
func (h *SnapHandler) ReactSnapHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	snapID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid snap ID", http.StatusBadRequest)
		return
	}

	var body struct {
		Emoji string `json:"emoji"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	actorID, _ := primitive.ObjectIDFromHex(claims.UserID)

	if err := h.Service.ReactToSnap(r.Context(), snapID, actorID, body.Emoji); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Reaction added"})
}

// DeleteSnapHandler deletes a snap; only the author may delete it, including
// after expiry.
func (h *SnapHandler) DeleteSnapHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	snapID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid snap ID", http.StatusBadRequest)
		return
	}

	snap, err := h.Service.GetSnapOwner(r.Context(), snapID)
	if err != nil {
		http.Error(w, "Snap not found", http.StatusNotFound)
		return
	}

	if snap.UserID.Hex() != claims.UserID {
		http.Error(w, "Forbidden: only the author may delete this snap", http.StatusForbidden)
		return
	}

	if err := h.Service.DeleteSnap(r.Context(), snapID); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Snap deleted"})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/socialee/socialee/internal/services"
	"github.com/socialee/socialee/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MessageHandler handles HTTP requests for direct messages.
type MessageHandler struct {
	Service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{Service: service}
}

// SendMessageHandler stores a direct message and notifies the receiver.
func (h *MessageHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var body struct {
		ReceiverID string `json:"receiver_id"`
		Text       string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	receiverID, err := primitive.ObjectIDFromHex(body.ReceiverID)
	if err != nil {
		http.Error(w, "Invalid receiver ID", http.StatusBadRequest)
		return
	}

	senderID, _ := primitive.ObjectIDFromHex(claims.UserID)

	msg, err := h.Service.SendMessage(r.Context(), senderID, receiverID, body.Text)
	if err != nil {
		log.WithError(err).Warn("Failed to send message")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(msg)
}

// GetConversationsHandler lists the caller's threads.
func (h *MessageHandler) GetConversationsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, _ := primitive.ObjectIDFromHex(claims.UserID)

	conversations, err := h.Service.GetConversations(r.Context(), userID)
	if err != nil {
		log.WithError(err).Error("Failed to fetch conversations")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(conversations)
}

// GetConversationHandler returns the full thread with another user and marks
// the caller's incoming messages as read.
func (h *MessageHandler) GetConversationHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	otherID, err := primitive.ObjectIDFromHex(mux.Vars(r)["userId"])
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	readerID, _ := primitive.ObjectIDFromHex(claims.UserID)

	messages, err := h.Service.GetConversationWith(r.Context(), readerID, otherID)
	if err != nil {
		log.WithError(err).Error("Failed to fetch conversation")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(messages)
}

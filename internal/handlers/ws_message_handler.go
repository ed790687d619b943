package handlers

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"github.com/socialee/socialee/internal/services"
	jwtutil "github.com/socialee/socialee/pkg/jwt"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WSMessage is the wire shape for live chat frames.
type WSMessage struct {
	Type       string `json:"type"` // "text", "status", "typing"
	ReceiverID string `json:"receiver_id"`
	SenderID   string `json:"sender_id,omitempty"`
	Text       string `json:"text,omitempty"`
	Typing     bool   `json:"typing,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// WSMessageHandler pushes direct messages to connected clients as they are
// sent. Messages are still persisted through MessageService, so the REST
// endpoints see the same history.
type WSMessageHandler struct {
	Service   *services.MessageService
	JWTSecret string

	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewWSMessageHandler(service *services.MessageService, jwtSecret string) *WSMessageHandler {
	return &WSMessageHandler{
		Service:   service,
		JWTSecret: jwtSecret,
		clients:   make(map[string]*websocket.Conn),
	}
}

func (h *WSMessageHandler) broadcastStatus(userID, status string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conn := range h.clients {
		_ = conn.WriteJSON(map[string]interface{}{
			"type":    "status",
			"user_id": userID,
			"status":  status, // "online" or "offline"
		})
	}
}

// ServeWS upgrades the connection. Browsers can't set headers on websocket
// dials, so the token rides in the query string.
func (h *WSMessageHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := jwtutil.ValidateToken(token, h.JWTSecret)
	if err != nil {
		log.WithError(err).Warn("WebSocket auth failed")
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}
	userID := claims.UserID

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	log.WithField("userID", userID).Info("WebSocket connected")

	h.mu.Lock()
	h.clients[userID] = conn
	h.mu.Unlock()
	h.broadcastStatus(userID, "online")

	defer func() {
		h.mu.Lock()
		delete(h.clients, userID)
		h.mu.Unlock()
		h.broadcastStatus(userID, "offline")
		conn.Close()
		log.WithField("userID", userID).Info("WebSocket disconnected")
	}()

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			log.WithError(err).Debug("WebSocket read ended")
			break
		}

		if msg.Type == "typing" {
			h.mu.Lock()
			if receiverConn, ok := h.clients[msg.ReceiverID]; ok {
				_ = receiverConn.WriteJSON(map[string]interface{}{
					"type":      "typing",
					"sender_id": userID,
					"typing":    msg.Typing,
				})
			}
			h.mu.Unlock()
			continue
		}

		if msg.Type != "" && msg.Type != "text" {
			continue
		}

		senderID, _ := primitive.ObjectIDFromHex(userID)
		receiverID, err := primitive.ObjectIDFromHex(msg.ReceiverID)
		if err != nil {
			continue
		}

		sent, err := h.Service.SendMessage(r.Context(), senderID, receiverID, msg.Text)
		if err != nil {
			log.WithError(err).Warn("Failed to persist websocket message")
			continue
		}

		response := map[string]interface{}{
			"type":            "text",
			"id":              sent.ID.Hex(),
			"conversation_id": sent.ConversationID,
			"sender_id":       userID,
			"receiver_id":     msg.ReceiverID,
			"text":            sent.Text,
			"created_at":      sent.CreatedAt,
		}

		h.mu.Lock()
		if receiverConn, ok := h.clients[msg.ReceiverID]; ok {
			_ = receiverConn.WriteJSON(response)
		}
		_ = conn.WriteJSON(response)
		h.mu.Unlock()
	}
}

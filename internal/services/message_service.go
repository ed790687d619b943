package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/socialee/socialee/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const maxMessageLength = 1000

// messageStore is the slice of the message repository this service needs.
type messageStore interface {
	SendMessage(ctx context.Context, msg *models.Message) (*models.Message, error)
	GetConversation(ctx context.Context, conversationID string) ([]models.Message, error)
	MarkConversationRead(ctx context.Context, conversationID string, readerID primitive.ObjectID) error
	GetConversations(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error)
}

// messageNotifier alerts a user about an incoming direct message.
type messageNotifier interface {
	NotifyMessage(ctx context.Context, receiverID, senderID primitive.ObjectID)
}

// MessageService handles direct messaging between two users.
type MessageService struct {
	repo          messageStore
	userRepo      actorDirectory
	notifications messageNotifier
}

func NewMessageService(repo messageStore, userRepo actorDirectory, notifications messageNotifier) *MessageService {
	return &MessageService{
		repo:          repo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

// SendMessage validates and stores a message under the canonical conversation
// id for the sender/receiver pair, then notifies the receiver.
func (s *MessageService) SendMessage(ctx context.Context, senderID, receiverID primitive.ObjectID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("message text is required")
	}
	if len(text) > maxMessageLength {
		return nil, fmt.Errorf("message exceeds %d characters", maxMessageLength)
	}
	if senderID == receiverID {
		return nil, fmt.Errorf("cannot message yourself")
	}

	if _, err := s.userRepo.GetUserByID(ctx, receiverID); err != nil {
		return nil, fmt.Errorf("receiver not found")
	}

	msg := &models.Message{
		ConversationID: models.ConversationID(senderID.Hex(), receiverID.Hex()),
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Text:           text,
	}

	sent, err := s.repo.SendMessage(ctx, msg)
	if err != nil {
		return nil, err
	}

	s.notifications.NotifyMessage(ctx, receiverID, senderID)

	return sent, nil
}

// GetConversationWith returns the full thread between the reader and another
// user, marking the reader's incoming messages as read. Marking happens before
// the fetch so the returned messages carry their post-read state.
func (s *MessageService) GetConversationWith(ctx context.Context, readerID, otherID primitive.ObjectID) ([]models.Message, error) {
	conversationID := models.ConversationID(readerID.Hex(), otherID.Hex())

	if err := s.repo.MarkConversationRead(ctx, conversationID, readerID); err != nil {
		return nil, err
	}

	return s.repo.GetConversation(ctx, conversationID)
}

// GetConversations lists the user's threads with last message and unread count.
func (s *MessageService) GetConversations(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	return s.repo.GetConversations(ctx, userID)
}

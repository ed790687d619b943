package services

import (
	"context"
	"testing"

	"github.com/socialee/socialee/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeMessageStore keeps messages in memory and records the call order so the
// read-marking tests can assert sequencing.
type fakeMessageStore struct {
	messages []models.Message
	calls    []string
}

func (f *fakeMessageStore) SendMessage(_ context.Context, msg *models.Message) (*models.Message, error) {
	f.calls = append(f.calls, "send")
	msg.ID = primitive.NewObjectID()
	f.messages = append(f.messages, *msg)
	return msg, nil
}

func (f *fakeMessageStore) GetConversation(_ context.Context, conversationID string) ([]models.Message, error) {
	f.calls = append(f.calls, "get")
	var out []models.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageStore) MarkConversationRead(_ context.Context, conversationID string, readerID primitive.ObjectID) error {
	f.calls = append(f.calls, "mark")
	for i := range f.messages {
		if f.messages[i].ConversationID == conversationID && f.messages[i].ReceiverID == readerID {
			f.messages[i].Read = true
		}
	}
	return nil
}

func (f *fakeMessageStore) GetConversations(_ context.Context, _ primitive.ObjectID) ([]models.Conversation, error) {
	return nil, nil
}

type messageCall struct {
	receiverID primitive.ObjectID
	senderID   primitive.ObjectID
}

type fakeMessageNotifier struct {
	calls []messageCall
}

func (f *fakeMessageNotifier) NotifyMessage(_ context.Context, receiverID, senderID primitive.ObjectID) {
	f.calls = append(f.calls, messageCall{receiverID, senderID})
}

func TestGetConversationMarksReadBeforeFetch(t *testing.T) {
	reader := &models.User{ID: primitive.NewObjectID(), Username: "alice"}
	other := &models.User{ID: primitive.NewObjectID(), Username: "bob"}
	store := &fakeMessageStore{}
	svc := NewMessageService(store, newFakeUserStore(reader, other), &fakeMessageNotifier{})

	store.messages = []models.Message{{
		ConversationID: models.ConversationID(reader.ID.Hex(), other.ID.Hex()),
		SenderID:       other.ID,
		ReceiverID:     reader.ID,
		Text:           "hi",
	}}

	messages, err := svc.GetConversationWith(context.Background(), reader.ID, other.ID)

	require.NoError(t, err)
	assert.Equal(t, []string{"mark", "get"}, store.calls)
	require.Len(t, messages, 1)
	// The returned thread reflects the read state this call just produced.
	assert.True(t, messages[0].Read)
}

func TestSendMessageNotifiesReceiver(t *testing.T) {
	sender := &models.User{ID: primitive.NewObjectID(), Name: "Alice", Username: "alice"}
	receiver := &models.User{ID: primitive.NewObjectID(), Name: "Bob", Username: "bob"}
	store := &fakeMessageStore{}
	notifier := &fakeMessageNotifier{}
	svc := NewMessageService(store, newFakeUserStore(sender, receiver), notifier)

	msg, err := svc.SendMessage(context.Background(), sender.ID, receiver.ID, "hello")

	require.NoError(t, err)
	assert.Equal(t, models.ConversationID(sender.ID.Hex(), receiver.ID.Hex()), msg.ConversationID)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, receiver.ID, notifier.calls[0].receiverID)
	assert.Equal(t, sender.ID, notifier.calls[0].senderID)
}

func TestSendMessageSelfRejected(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Username: "alice"}
	svc := NewMessageService(&fakeMessageStore{}, newFakeUserStore(user), &fakeMessageNotifier{})

	_, err := svc.SendMessage(context.Background(), user.ID, user.ID, "hello")

	assert.EqualError(t, err, "cannot message yourself")
}

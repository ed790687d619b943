package notifier

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/socialee/socialee/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	mu       sync.Mutex
	failures int
	singles  int
	batches  [][]*models.Notification
}

func (f *fakeStore) CreateNotification(_ context.Context, notif *models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return fmt.Errorf("insert failed")
	}
	f.singles++
	f.batches = append(f.batches, []*models.Notification{notif})
	return nil
}

func (f *fakeStore) CreateNotifications(_ context.Context, notifs []*models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return fmt.Errorf("insert failed")
	}
	f.batches = append(f.batches, notifs)
	return nil
}

func (f *fakeStore) delivered() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.batches)
}

func batch(n int) []*models.Notification {
	out := make([]*models.Notification, n)
	for i := range out {
		out[i] = &models.Notification{UserID: primitive.NewObjectID()}
	}
	return out
}

func TestNotifierDeliversBatch(t *testing.T) {
	store := &fakeStore{}
	n := New(store, 8)
	n.backoff = time.Millisecond
	n.Start()

	n.Enqueue(batch(3))
	n.Stop()

	require.Equal(t, 1, store.delivered())
	assert.Len(t, store.batches[0], 3)
	assert.Equal(t, 0, store.singles)
}

func TestNotifierSingleInsertForBatchOfOne(t *testing.T) {
	store := &fakeStore{}
	n := New(store, 8)
	n.backoff = time.Millisecond
	n.Start()

	n.Enqueue(batch(1))
	n.Stop()

	require.Equal(t, 1, store.delivered())
	assert.Equal(t, 1, store.singles)
}

func TestNotifierRetriesTransientFailure(t *testing.T) {
	store := &fakeStore{failures: 2}
	n := New(store, 8)
	n.backoff = time.Millisecond
	n.Start()

	n.Enqueue(batch(1))
	n.Stop()

	assert.Equal(t, 1, store.delivered())
}

func TestNotifierDropsAfterMaxRetries(t *testing.T) {
	store := &fakeStore{failures: 100}
	n := New(store, 8)
	n.backoff = time.Millisecond
	n.Start()

	n.Enqueue(batch(1))
	n.Stop()

	// Every attempt failed; the batch is dropped, not redelivered.
	assert.Equal(t, 0, store.delivered())
}

func TestNotifierIgnoresEmptyBatch(t *testing.T) {
	store := &fakeStore{}
	n := New(store, 8)
	n.Start()

	n.Enqueue(nil)
	n.Enqueue([]*models.Notification{})
	n.Stop()

	assert.Equal(t, 0, store.delivered())
}

func TestNotifierStopDrainsQueue(t *testing.T) {
	store := &fakeStore{}
	n := New(store, 8)
	n.backoff = time.Millisecond
	n.Start()

	for i := 0; i < 5; i++ {
		n.Enqueue(batch(1))
	}
	n.Stop()

	assert.Equal(t, 5, store.delivered())
}

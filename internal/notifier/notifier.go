package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/socialee/socialee/internal/models"
)

// store is the slice of the notification repository the notifier needs.
type store interface {
	CreateNotification(ctx context.Context, notif *models.Notification) error
	CreateNotifications(ctx context.Context, notifs []*models.Notification) error
}

// Notifier is the outbound notification queue. Content mutations enqueue
// batches and move on; a single worker goroutine delivers them with bounded
// retries. Delivery failure never reaches the request that triggered it.
type Notifier struct {
	repo       store
	queue      chan []*models.Notification
	maxRetries int
	backoff    time.Duration

	stopOnce sync.Once
	done     chan struct{}
}

// New creates a Notifier with the given queue capacity.
func New(repo store, capacity int) *Notifier {
	if capacity <= 0 {
		capacity = 256
	}
	return &Notifier{
		repo:       repo,
		queue:      make(chan []*models.Notification, capacity),
		maxRetries: 3,
		backoff:    200 * time.Millisecond,
		done:       make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (n *Notifier) Start() {
	go n.run()
}

// Stop closes the queue and waits for the worker to drain it.
func (n *Notifier) Stop() {
	n.stopOnce.Do(func() {
		close(n.queue)
	})
	<-n.done
}

// Enqueue hands a batch to the worker without blocking. A full queue drops
// the batch with a log line, matching the best-effort delivery contract.
func (n *Notifier) Enqueue(notifs []*models.Notification) {
	if len(notifs) == 0 {
		return
	}
	select {
	case n.queue <- notifs:
	default:
		logrus.Warnf("Notification queue full, dropping batch of %d", len(notifs))
	}
}

func (n *Notifier) run() {
	defer close(n.done)
	for batch := range n.queue {
		n.deliver(batch)
	}
}

func (n *Notifier) deliver(batch []*models.Notification) {
	var err error
	for attempt := 0; attempt <= n.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(n.backoff * time.Duration(1<<(attempt-1)))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if len(batch) == 1 {
			err = n.repo.CreateNotification(ctx, batch[0])
		} else {
			err = n.repo.CreateNotifications(ctx, batch)
		}
		cancel()
		if err == nil {
			logrus.WithField("count", len(batch)).Debug("Notification batch delivered")
			return
		}

		logrus.WithError(err).Warnf("Notification delivery attempt %d failed", attempt+1)
	}

	logrus.WithError(err).Errorf("Dropping notification batch of %d after %d attempts", len(batch), n.maxRetries+1)
}

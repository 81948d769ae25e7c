package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/notification"
	"github.com/peopleops-io/hrms-backend-go/internal/pkg/sse"
)

type fakeRepo struct {
	mu            sync.Mutex
	notifications []*notification.Notification
	markedIDs     []string
	markedUser    string
}

func (f *fakeRepo) Create(_ context.Context, n *notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
	return nil
}

func (f *fakeRepo) CreateBatch(_ context.Context, ns []*notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, ns...)
	return nil
}

func (f *fakeRepo) GetByUserID(_ context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*notification.Notification
	for _, n := range f.notifications {
		if n.RecipientID != userID {
			continue
		}
		if unreadOnly && n.IsRead {
			continue
		}
		out = append(out, n)
	}
	return out, len(out), nil
}

func (f *fakeRepo) GetUnreadCount(_ context.Context, userID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, n := range f.notifications {
		if n.RecipientID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) MarkAsRead(_ context.Context, ids []string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedIDs = ids
	f.markedUser = userID
	return nil
}

func (f *fakeRepo) MarkAllAsRead(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedUser = userID
	for _, n := range f.notifications {
		if n.RecipientID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.notifications {
		if n.ID == id && n.RecipientID == userID {
			f.notifications = append(f.notifications[:i], f.notifications[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRepo) stored() []*notification.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*notification.Notification(nil), f.notifications...)
}

func queueReq(recipientID string) notification.CreateNotificationRequest {
	return notification.CreateNotificationRequest{
		RecipientID: recipientID,
		Type:        notification.TypeAnnouncement,
		Title:       "Hello",
		Message:     "world",
	}
}

func TestQueueAndFlush(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, sse.NewHub(), Config{
		BatchSize:     100,
		FlushInterval: time.Minute, // only Stop flushes in this test
		WorkerCount:   1,
	})

	require.NoError(t, svc.QueueNotification(ctx, queueReq("u-1")))
	require.NoError(t, svc.QueueBulkNotification(ctx, []notification.CreateNotificationRequest{
		queueReq("u-1"),
		queueReq("u-2"),
	}))

	// Stop drains the queue and flushes the pending batch
	svc.Stop()

	stored := repo.stored()
	require.Len(t, stored, 3)
	for _, n := range stored {
		assert.NotEmpty(t, n.ID)
		assert.False(t, n.IsRead)
		assert.False(t, n.CreatedAt.IsZero())
	}
}

func TestFlushPushesToSubscribers(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	hub := sse.NewHub()
	svc := NewNotificationService(repo, hub, Config{
		BatchSize:     1, // flush on every queued item
		FlushInterval: time.Minute,
		WorkerCount:   1,
	})
	defer svc.Stop()

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	events, cleanup := svc.Subscribe(subCtx, "u-1")
	defer cleanup()

	require.NoError(t, svc.QueueNotification(ctx, queueReq("u-1")))

	select {
	case event := <-events:
		assert.Equal(t, "notification", event.Event)
		assert.Equal(t, "Hello", event.Data.Title)
	case <-time.After(2 * time.Second):
		t.Fatal("no SSE event received")
	}
}

func TestGetNotifications(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, sse.NewHub(), Config{WorkerCount: 1})
	defer svc.Stop()

	require.NoError(t, repo.Create(ctx, &notification.Notification{ID: "n-1", RecipientID: "u-1"}))
	require.NoError(t, repo.Create(ctx, &notification.Notification{ID: "n-2", RecipientID: "u-1", IsRead: true}))
	require.NoError(t, repo.Create(ctx, &notification.Notification{ID: "n-3", RecipientID: "u-2"}))

	list, err := svc.GetNotifications(ctx, "u-1", 0, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 1, list.UnreadCount)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.PageSize)

	unread, err := svc.GetNotifications(ctx, "u-1", 1, 20, true)
	require.NoError(t, err)
	assert.Equal(t, 1, unread.Total)
}

func TestMarkAsRead(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	svc := NewNotificationService(repo, sse.NewHub(), Config{WorkerCount: 1})
	defer svc.Stop()

	err := svc.MarkAsRead(ctx, "u-1", notification.MarkAsReadRequest{NotificationIDs: []string{"n-1", "n-2"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"n-1", "n-2"}, repo.markedIDs)
	assert.Equal(t, "u-1", repo.markedUser)
}

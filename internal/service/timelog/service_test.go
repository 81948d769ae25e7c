package timelog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/notification"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/timelog"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
)

// fakeTxManager runs the function on the caller's context; repositories in
// these tests are in-memory so there is nothing transactional to carry.
type fakeTxManager struct{}

func (f *fakeTxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeNotifier records queued notifications instead of delivering them.
type fakeNotifier struct {
	mu     sync.Mutex
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotifier) QueueNotification(_ context.Context, req notification.CreateNotificationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued = append(f.queued, req)
	return nil
}

func (f *fakeNotifier) QueueBulkNotification(_ context.Context, reqs []notification.CreateNotificationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queued = append(f.queued, reqs...)
	return nil
}

func (f *fakeNotifier) GetNotifications(context.Context, string, int, int, bool) (*notification.NotificationListResponse, error) {
	return &notification.NotificationListResponse{}, nil
}

func (f *fakeNotifier) GetUnreadCount(context.Context, string) (int, error) { return 0, nil }

func (f *fakeNotifier) MarkAsRead(context.Context, string, notification.MarkAsReadRequest) error {
	return nil
}

func (f *fakeNotifier) MarkAllAsRead(context.Context, string) error { return nil }

func (f *fakeNotifier) Delete(context.Context, string, string) error { return nil }

func (f *fakeNotifier) Subscribe(context.Context, string) (<-chan notification.SSEEvent, func()) {
	ch := make(chan notification.SSEEvent)
	return ch, func() { close(ch) }
}

func (f *fakeNotifier) Stop() {}

func (f *fakeNotifier) sent() []notification.CreateNotificationRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]notification.CreateNotificationRequest(nil), f.queued...)
}

type fakeTimelogRepo struct {
	mu    sync.Mutex
	seq   int
	logs  map[string]timelog.Timelog
	locks int
}

func newFakeTimelogRepo() *fakeTimelogRepo {
	return &fakeTimelogRepo{logs: make(map[string]timelog.Timelog)}
}

func (f *fakeTimelogRepo) Create(_ context.Context, t timelog.Timelog) (timelog.Timelog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t.ID = fmt.Sprintf("tl-%d", f.seq)
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	f.logs[t.ID] = t
	return t, nil
}

func (f *fakeTimelogRepo) GetByID(_ context.Context, id string) (timelog.Timelog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.logs[id]
	if !ok {
		return timelog.Timelog{}, timelog.ErrTimelogNotFound
	}
	return t, nil
}

func (f *fakeTimelogRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (*timelog.Timelog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.logs {
		if t.EmployeeID == employeeID && sameDay(t.LogDate, date) {
			copied := t
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTimelogRepo) GetActiveByEmployee(_ context.Context, employeeID string) (*timelog.Timelog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.logs {
		if t.EmployeeID == employeeID && (t.Status == timelog.StatusClockedIn || t.Status == timelog.StatusOnBreak) {
			copied := t
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeTimelogRepo) Update(_ context.Context, t timelog.Timelog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.logs[t.ID]; !ok {
		return timelog.ErrTimelogNotFound
	}
	t.UpdatedAt = time.Now()
	f.logs[t.ID] = t
	return nil
}

func (f *fakeTimelogRepo) ListByEmployee(_ context.Context, employeeID string, _ timelog.Filter) ([]timelog.Timelog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timelog.Timelog
	for _, t := range f.logs {
		if t.EmployeeID == employeeID {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTimelogRepo) Search(_ context.Context, _ timelog.Filter) ([]timelog.Timelog, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timelog.Timelog
	for _, t := range f.logs {
		out = append(out, t)
	}
	return out, int64(len(out)), nil
}

func (f *fakeTimelogRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.logs[id]; !ok {
		return timelog.ErrTimelogNotFound
	}
	delete(f.logs, id)
	return nil
}

func (f *fakeTimelogRepo) LockEmployee(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.locks++
	return nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func newTestService() (timelog.Service, *fakeTimelogRepo, *fakeNotifier) {
	repo := newFakeTimelogRepo()
	notifier := &fakeNotifier{}
	svc := NewTimelogService(repo, &fakeTxManager{}, notifier)
	return svc, repo, notifier
}

func employee(id string) user.User {
	return user.User{ID: id, Username: id, Role: user.RoleEmployee, Enabled: true, FirstName: "Test", LastName: "Employee"}
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestClockIn(t *testing.T) {
	ctx := context.Background()
	actor := employee("emp-1")

	t.Run("requires a photo", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.ClockIn(ctx, actor, timelog.ClockInRequest{Photo: "  "})
		assert.ErrorIs(t, err, timelog.ErrMissingPhoto)
	})

	t.Run("opens a new session", func(t *testing.T) {
		svc, repo, _ := newTestService()

		resp, err := svc.ClockIn(ctx, actor, timelog.ClockInRequest{Photo: "selfie.jpg"})
		require.NoError(t, err)

		assert.Equal(t, string(timelog.StatusClockedIn), resp.Status)
		assert.NotNil(t, resp.TimeIn)

		stored, err := repo.GetByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Equal(t, "selfie.jpg", *stored.ClockInPhoto)
		assert.True(t, sameDay(stored.LogDate, time.Now()))
	})

	t.Run("rejects a second clock-in while a session is open", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.ClockIn(ctx, actor, timelog.ClockInRequest{Photo: "a.jpg"})
		require.NoError(t, err)

		_, err = svc.ClockIn(ctx, actor, timelog.ClockInRequest{Photo: "b.jpg"})
		assert.ErrorIs(t, err, timelog.ErrAlreadyActive)
	})

	t.Run("rejects clock-in while a session from a previous day is still open", func(t *testing.T) {
		svc, repo, _ := newTestService()

		yesterday := time.Now().AddDate(0, 0, -1)
		in := yesterday.Add(9 * time.Hour)
		_, err := repo.Create(ctx, timelog.Timelog{
			EmployeeID: actor.ID,
			LogDate:    yesterday,
			TimeIn:     &in,
			Status:     timelog.StatusClockedIn,
		})
		require.NoError(t, err)

		_, err = svc.ClockIn(ctx, actor, timelog.ClockInRequest{Photo: "a.jpg"})
		assert.ErrorIs(t, err, timelog.ErrAlreadyActive)
	})

	t.Run("reuses today's row after an earlier clock-out", func(t *testing.T) {
		svc, repo, _ := newTestService()

		first, err := svc.ClockIn(ctx, actor, timelog.ClockInRequest{Photo: "a.jpg"})
		require.NoError(t, err)
		_, err = svc.ClockOut(ctx, actor, timelog.ClockOutRequest{Photo: "b.jpg"})
		require.NoError(t, err)

		second, err := svc.ClockIn(ctx, actor, timelog.ClockInRequest{Photo: "c.jpg"})
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, string(timelog.StatusClockedIn), second.Status)

		stored, err := repo.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "c.jpg", *stored.ClockInPhoto)
	})
}

func TestClockOut(t *testing.T) {
	ctx := context.Background()
	actor := employee("emp-1")

	t.Run("requires an open session", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.ClockOut(ctx, actor, timelog.ClockOutRequest{Photo: "a.jpg"})
		assert.ErrorIs(t, err, timelog.ErrNotActive)
	})

	t.Run("requires a photo", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.ClockOut(ctx, actor, timelog.ClockOutRequest{})
		assert.ErrorIs(t, err, timelog.ErrMissingPhoto)
	})

	t.Run("closes the session and computes worked hours", func(t *testing.T) {
		svc, repo, _ := newTestService()

		in := time.Now().Add(-8 * time.Hour)
		created, err := repo.Create(ctx, timelog.Timelog{
			EmployeeID: actor.ID,
			LogDate:    time.Now(),
			TimeIn:     &in,
			Status:     timelog.StatusClockedIn,
		})
		require.NoError(t, err)

		resp, err := svc.ClockOut(ctx, actor, timelog.ClockOutRequest{Photo: "out.jpg"})
		require.NoError(t, err)

		assert.Equal(t, created.ID, resp.ID)
		assert.Equal(t, string(timelog.StatusClockedOut), resp.Status)
		assert.InDelta(t, 8.0, resp.TotalWorkedHours, 0.05)
	})

	t.Run("auto-closes an open break", func(t *testing.T) {
		svc, repo, _ := newTestService()

		in := time.Now().Add(-4 * time.Hour)
		breakStart := time.Now().Add(-30 * time.Minute)
		_, err := repo.Create(ctx, timelog.Timelog{
			EmployeeID: actor.ID,
			LogDate:    time.Now(),
			TimeIn:     &in,
			BreakStart: &breakStart,
			Status:     timelog.StatusOnBreak,
		})
		require.NoError(t, err)

		resp, err := svc.ClockOut(ctx, actor, timelog.ClockOutRequest{Photo: "out.jpg"})
		require.NoError(t, err)

		require.NotNil(t, resp.BreakDurationMinutes)
		assert.InDelta(t, 30, *resp.BreakDurationMinutes, 1)
		assert.NotNil(t, resp.BreakEnd)
		// Raw break punches survive the auto-close
		assert.NotNil(t, resp.BreakStart)
		assert.InDelta(t, 3.5, resp.TotalWorkedHours, 0.05)
	})
}

func TestBreaks(t *testing.T) {
	ctx := context.Background()
	actor := employee("emp-1")

	t.Run("start requires an open session", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.StartBreak(ctx, actor)
		assert.ErrorIs(t, err, timelog.ErrNotClockedIn)
	})

	t.Run("start rejects a second break", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.ClockIn(ctx, actor, timelog.ClockInRequest{Photo: "a.jpg"})
		require.NoError(t, err)
		_, err = svc.StartBreak(ctx, actor)
		require.NoError(t, err)

		_, err = svc.StartBreak(ctx, actor)
		assert.ErrorIs(t, err, timelog.ErrAlreadyOnBreak)
	})

	t.Run("end requires being on break", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.ClockIn(ctx, actor, timelog.ClockInRequest{Photo: "a.jpg"})
		require.NoError(t, err)

		_, err = svc.EndBreak(ctx, actor)
		assert.ErrorIs(t, err, timelog.ErrNotOnBreak)
	})

	t.Run("end accumulates minutes across breaks", func(t *testing.T) {
		svc, repo, _ := newTestService()

		in := time.Now().Add(-4 * time.Hour)
		breakStart := time.Now().Add(-20 * time.Minute)
		prior := 15
		created, err := repo.Create(ctx, timelog.Timelog{
			EmployeeID:           actor.ID,
			LogDate:              time.Now(),
			TimeIn:               &in,
			BreakStart:           &breakStart,
			BreakDurationMinutes: &prior,
			Status:               timelog.StatusOnBreak,
		})
		require.NoError(t, err)

		resp, err := svc.EndBreak(ctx, actor)
		require.NoError(t, err)

		assert.Equal(t, created.ID, resp.ID)
		assert.Equal(t, string(timelog.StatusClockedIn), resp.Status)
		require.NotNil(t, resp.BreakDurationMinutes)
		assert.InDelta(t, 35, *resp.BreakDurationMinutes, 1)
	})
}

func TestGetStatus(t *testing.T) {
	ctx := context.Background()
	actor := employee("emp-1")

	t.Run("no session", func(t *testing.T) {
		svc, _, _ := newTestService()

		status, err := svc.GetStatus(ctx, actor)
		require.NoError(t, err)

		assert.Equal(t, string(timelog.StatusClockedOut), status.Status)
		assert.True(t, status.CanClockIn)
		assert.False(t, status.CanClockOut)
		assert.Nil(t, status.TodayTimelog)
	})

	t.Run("open session", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.ClockIn(ctx, actor, timelog.ClockInRequest{Photo: "a.jpg"})
		require.NoError(t, err)

		status, err := svc.GetStatus(ctx, actor)
		require.NoError(t, err)

		assert.Equal(t, string(timelog.StatusClockedIn), status.Status)
		assert.False(t, status.CanClockIn)
		assert.True(t, status.CanClockOut)
		require.NotNil(t, status.TodayTimelog)
	})
}

func TestGet(t *testing.T) {
	ctx := context.Background()

	svc, repo, _ := newTestService()
	created, err := repo.Create(ctx, timelog.Timelog{
		EmployeeID: "emp-1",
		LogDate:    time.Now(),
		Status:     timelog.StatusClockedOut,
	})
	require.NoError(t, err)

	t.Run("owner sees their row", func(t *testing.T) {
		_, err := svc.Get(ctx, employee("emp-1"), created.ID)
		assert.NoError(t, err)
	})

	t.Run("another employee gets not found", func(t *testing.T) {
		_, err := svc.Get(ctx, employee("emp-2"), created.ID)
		assert.ErrorIs(t, err, timelog.ErrTimelogNotFound)
	})

	t.Run("HR sees any row", func(t *testing.T) {
		hr := user.User{ID: "hr-1", Role: user.RoleHR}
		_, err := svc.Get(ctx, hr, created.ID)
		assert.NoError(t, err)
	})
}

func TestAdjust(t *testing.T) {
	ctx := context.Background()

	seed := func(repo *fakeTimelogRepo) timelog.Timelog {
		in := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
		out := time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC)
		created, err := repo.Create(ctx, timelog.Timelog{
			EmployeeID: "emp-1",
			LogDate:    time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			TimeIn:     &in,
			TimeOut:    &out,
			Status:     timelog.StatusClockedOut,
		})
		require.NoError(t, err)
		return created
	}

	t.Run("plain HR cannot adjust", func(t *testing.T) {
		svc, repo, _ := newTestService()
		created := seed(repo)

		hr := user.User{ID: "hr-1", Role: user.RoleHR, PositionTitle: strPtr("HR Generalist")}
		_, err := svc.Adjust(ctx, hr, timelog.AdjustRequest{
			ID:     created.ID,
			TimeIn: strPtr("2025-06-02T08:30:00Z"),
			Reason: "forgot badge",
		})
		assert.ErrorIs(t, err, timelog.ErrAdjustmentForbidden)
	})

	t.Run("senior HR writes the overlay and keeps raw punches", func(t *testing.T) {
		svc, repo, notifier := newTestService()
		created := seed(repo)

		hr := user.User{ID: "hr-1", Role: user.RoleHR, PositionTitle: strPtr("HR-Supervisor")}
		resp, err := svc.Adjust(ctx, hr, timelog.AdjustRequest{
			ID:      created.ID,
			TimeIn:  strPtr("2025-06-02T08:30:00Z"),
			TimeOut: strPtr("2025-06-02T17:30:00Z"),
			Reason:  "badge reader outage",
		})
		require.NoError(t, err)

		assert.Equal(t, "2025-06-02T08:30:00Z", *resp.AdjustedTimeIn)
		assert.Equal(t, "2025-06-02T09:00:00Z", *resp.TimeIn)
		assert.InDelta(t, 9.0, resp.TotalWorkedHours, 0.01)
		assert.Equal(t, "badge reader outage", *resp.AdjustmentReason)
		assert.Equal(t, hr.ID, *resp.AdjustedByID)

		sent := notifier.sent()
		require.Len(t, sent, 1)
		assert.Equal(t, "emp-1", sent[0].RecipientID)
		assert.Equal(t, notification.TypeTimelogAdjusted, sent[0].Type)
	})

	t.Run("requires a reason", func(t *testing.T) {
		svc, repo, _ := newTestService()
		created := seed(repo)

		admin := user.User{ID: "adm-1", Role: user.RoleAdmin}
		_, err := svc.Adjust(ctx, admin, timelog.AdjustRequest{
			ID:     created.ID,
			TimeIn: strPtr("2025-06-02T08:30:00Z"),
		})
		assert.Error(t, err)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	created, err := repo.Create(ctx, timelog.Timelog{
		EmployeeID: "emp-1",
		LogDate:    time.Now(),
		Status:     timelog.StatusClockedOut,
	})
	require.NoError(t, err)

	t.Run("admin only", func(t *testing.T) {
		hr := user.User{ID: "hr-1", Role: user.RoleHR}
		err := svc.Delete(ctx, hr, created.ID)
		assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
	})

	t.Run("admin removes the row", func(t *testing.T) {
		admin := user.User{ID: "adm-1", Role: user.RoleAdmin}
		require.NoError(t, svc.Delete(ctx, admin, created.ID))

		_, err := repo.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, timelog.ErrTimelogNotFound)
	})
}

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	in := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC)
	adjustedIn := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	name := "Jane Doe"
	username := "jdoe"
	_, err := repo.Create(ctx, timelog.Timelog{
		EmployeeID:       "emp-1",
		EmployeeName:     &name,
		EmployeeUsername: &username,
		LogDate:          time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		TimeIn:           &in,
		TimeOut:          &out,
		AdjustedTimeIn:   &adjustedIn,
		Status:           timelog.StatusClockedOut,
	})
	require.NoError(t, err)

	data, err := svc.ExportCSV(ctx, timelog.Filter{})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Employee,Username,Date,Time In,Time Out,Break Minutes,Worked Hours,Status", lines[0])
	// Adjusted clock-in wins over the raw punch
	assert.Equal(t, "Jane Doe,jdoe,2025-06-02,08:00:00,17:00:00,0,9.00,CLOCKED_OUT", lines[1])
}

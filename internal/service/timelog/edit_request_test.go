package timelog

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/notification"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/timelog"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
)

type fakeEditRequestRepo struct {
	mu       sync.Mutex
	seq      int
	requests map[string]timelog.EditRequest
}

func newFakeEditRequestRepo() *fakeEditRequestRepo {
	return &fakeEditRequestRepo{requests: make(map[string]timelog.EditRequest)}
}

func (f *fakeEditRequestRepo) Create(_ context.Context, req timelog.EditRequest) (timelog.EditRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	req.ID = fmt.Sprintf("er-%d", f.seq)
	req.RequestDate = time.Now()
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeEditRequestRepo) GetByID(_ context.Context, id string) (timelog.EditRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return timelog.EditRequest{}, timelog.ErrEditRequestNotFound
	}
	return req, nil
}

func (f *fakeEditRequestRepo) Update(_ context.Context, req timelog.EditRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.requests[req.ID]; !ok {
		return timelog.ErrEditRequestNotFound
	}
	f.requests[req.ID] = req
	return nil
}

func (f *fakeEditRequestRepo) ListByEmployee(_ context.Context, employeeID string) ([]timelog.EditRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timelog.EditRequest
	for _, req := range f.requests {
		if req.EmployeeID == employeeID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeEditRequestRepo) ListByAssignedHr(_ context.Context, hrID string) ([]timelog.EditRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timelog.EditRequest
	for _, req := range f.requests {
		if req.AssignedHrID == hrID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeEditRequestRepo) ListAll(_ context.Context) ([]timelog.EditRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []timelog.EditRequest
	for _, req := range f.requests {
		out = append(out, req)
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, u user.User) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByRole(_ context.Context, role user.Role) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []user.User
	for _, u := range f.users {
		if u.Role == role && u.Enabled {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) GetByPositionTitles(_ context.Context, titles []string) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []user.User
	for _, u := range f.users {
		if !u.Enabled || u.PositionTitle == nil {
			continue
		}
		for _, title := range titles {
			if *u.PositionTitle == title {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListEnabled(_ context.Context) ([]user.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []user.User
	for _, u := range f.users {
		if u.Enabled {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) List(_ context.Context, _ user.UserFilter) ([]user.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []user.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, u user.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id string, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) SetEnabled(_ context.Context, id string, enabled bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Enabled = enabled
	f.users[id] = u
	return nil
}

func newEditRequestTestService(users ...user.User) (timelog.EditRequestService, *fakeEditRequestRepo, *fakeTimelogRepo, *fakeNotifier) {
	repo := newFakeEditRequestRepo()
	timelogRepo := newFakeTimelogRepo()
	notifier := &fakeNotifier{}
	svc := NewEditRequestService(repo, timelogRepo, newFakeUserRepo(users...), notifier)
	return svc, repo, timelogRepo, notifier
}

func hrUser(id string) user.User {
	return user.User{ID: id, Username: id, Role: user.RoleHR, Enabled: true}
}

func TestEditRequestCreate(t *testing.T) {
	ctx := context.Background()
	actor := employee("emp-1")
	hr := hrUser("hr-1")

	t.Run("files a pending request and notifies the assignee", func(t *testing.T) {
		svc, _, timelogRepo, notifier := newEditRequestTestService(actor, hr)

		created, err := timelogRepo.Create(ctx, timelog.Timelog{
			EmployeeID: actor.ID,
			LogDate:    time.Now(),
			Status:     timelog.StatusClockedOut,
		})
		require.NoError(t, err)

		resp, err := svc.Create(ctx, actor, timelog.CreateEditRequest{
			TimelogID:    created.ID,
			AssignedHrID: hr.ID,
			Reason:       "forgot to clock out",
			RequestedTimeOut: strPtr("2025-06-02T17:00:00Z"),
		})
		require.NoError(t, err)

		assert.Equal(t, string(timelog.EditRequestPending), resp.Status)
		assert.Equal(t, hr.ID, resp.AssignedHrID)
		assert.Equal(t, "2025-06-02T17:00:00Z", *resp.RequestedTimeOut)

		sent := notifier.sent()
		require.Len(t, sent, 1)
		assert.Equal(t, hr.ID, sent[0].RecipientID)
		assert.Equal(t, notification.TypeEditRequest, sent[0].Type)
	})

	t.Run("rejects requests against another employee's timelog", func(t *testing.T) {
		svc, _, timelogRepo, _ := newEditRequestTestService(actor, hr)

		created, err := timelogRepo.Create(ctx, timelog.Timelog{
			EmployeeID: "emp-2",
			LogDate:    time.Now(),
			Status:     timelog.StatusClockedOut,
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, actor, timelog.CreateEditRequest{
			TimelogID:    created.ID,
			AssignedHrID: hr.ID,
			Reason:       "wrong hours",
		})
		assert.ErrorIs(t, err, timelog.ErrTimelogNotFound)
	})

	t.Run("rejects an unknown assignee", func(t *testing.T) {
		svc, _, timelogRepo, _ := newEditRequestTestService(actor)

		created, err := timelogRepo.Create(ctx, timelog.Timelog{
			EmployeeID: actor.ID,
			LogDate:    time.Now(),
			Status:     timelog.StatusClockedOut,
		})
		require.NoError(t, err)

		_, err = svc.Create(ctx, actor, timelog.CreateEditRequest{
			TimelogID:    created.ID,
			AssignedHrID: "nobody",
			Reason:       "wrong hours",
		})
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestEditRequestProcess(t *testing.T) {
	ctx := context.Background()
	actor := employee("emp-1")
	assignedHr := hrUser("hr-1")
	otherHr := hrUser("hr-2")
	admin := user.User{ID: "adm-1", Role: user.RoleAdmin, Enabled: true}

	seed := func(svc timelog.EditRequestService, timelogRepo *fakeTimelogRepo) timelog.EditRequestResponse {
		created, err := timelogRepo.Create(ctx, timelog.Timelog{
			EmployeeID: actor.ID,
			LogDate:    time.Now(),
			Status:     timelog.StatusClockedOut,
		})
		require.NoError(t, err)

		resp, err := svc.Create(ctx, actor, timelog.CreateEditRequest{
			TimelogID:       created.ID,
			AssignedHrID:    assignedHr.ID,
			Reason:          "forgot to clock out",
			RequestedTimeIn: strPtr("2025-06-02T08:00:00Z"),
		})
		require.NoError(t, err)
		return resp
	}

	t.Run("only the assigned HR or an admin may decide", func(t *testing.T) {
		svc, _, timelogRepo, _ := newEditRequestTestService(actor, assignedHr)
		pending := seed(svc, timelogRepo)

		_, err := svc.Approve(ctx, otherHr, timelog.ProcessEditRequest{ID: pending.ID})
		assert.ErrorIs(t, err, timelog.ErrEditRequestForbidden)

		_, err = svc.Approve(ctx, admin, timelog.ProcessEditRequest{ID: pending.ID})
		assert.NoError(t, err)
	})

	t.Run("approval records the decision without touching the timelog", func(t *testing.T) {
		svc, _, timelogRepo, notifier := newEditRequestTestService(actor, assignedHr)
		pending := seed(svc, timelogRepo)

		resp, err := svc.Approve(ctx, assignedHr, timelog.ProcessEditRequest{
			ID:       pending.ID,
			Response: strPtr("verified against badge logs"),
		})
		require.NoError(t, err)

		assert.Equal(t, string(timelog.EditRequestApproved), resp.Status)
		assert.Equal(t, "verified against badge logs", *resp.HrResponse)
		assert.Equal(t, assignedHr.ID, *resp.ProcessedByID)

		// The requested time was not applied to the timelog row
		stored, err := timelogRepo.GetByID(ctx, pending.TimelogID)
		require.NoError(t, err)
		assert.Nil(t, stored.AdjustedTimeIn)
		assert.Nil(t, stored.TimeIn)

		sent := notifier.sent()
		require.Len(t, sent, 2) // create + decision
		assert.Equal(t, actor.ID, sent[1].RecipientID)
		assert.Equal(t, notification.TypeEditRequestProcessed, sent[1].Type)
	})

	t.Run("decisions are one-shot", func(t *testing.T) {
		svc, _, timelogRepo, _ := newEditRequestTestService(actor, assignedHr)
		pending := seed(svc, timelogRepo)

		_, err := svc.Reject(ctx, assignedHr, timelog.ProcessEditRequest{ID: pending.ID})
		require.NoError(t, err)

		_, err = svc.Approve(ctx, assignedHr, timelog.ProcessEditRequest{ID: pending.ID})
		assert.ErrorIs(t, err, timelog.ErrEditRequestNotPending)
	})
}

func TestEditRequestLists(t *testing.T) {
	ctx := context.Background()
	actor := employee("emp-1")
	assignedHr := hrUser("hr-1")
	otherHr := hrUser("hr-2")
	admin := user.User{ID: "adm-1", Role: user.RoleAdmin, Enabled: true}

	svc, _, timelogRepo, _ := newEditRequestTestService(actor, assignedHr, otherHr)

	created, err := timelogRepo.Create(ctx, timelog.Timelog{
		EmployeeID: actor.ID,
		LogDate:    time.Now(),
		Status:     timelog.StatusClockedOut,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, actor, timelog.CreateEditRequest{
		TimelogID:    created.ID,
		AssignedHrID: assignedHr.ID,
		Reason:       "wrong hours",
	})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, actor)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	assigned, err := svc.ListAssigned(ctx, assignedHr)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	unrelated, err := svc.ListAssigned(ctx, otherHr)
	require.NoError(t, err)
	assert.Empty(t, unrelated)

	all, err := svc.ListAssigned(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

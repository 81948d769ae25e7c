package user

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/peopleops-io/hrms-backend-go/internal/domain/position"
	"github.com/peopleops-io/hrms-backend-go/internal/domain/user"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	seq   int
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
	f.seq++
	u.ID = fmt.Sprintf("u-%d", f.seq)
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

func (f *fakeUserRepo) List(_ context.Context, filter user.UserFilter) ([]user.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []user.User
	for _, u := range f.users {
		if filter.Role != nil && string(u.Role) != *filter.Role {
			continue
		}
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

type fakePositionRepo struct {
	positions map[string]position.Position
}

func newFakePositionRepo(positions ...position.Position) *fakePositionRepo {
	f := &fakePositionRepo{positions: make(map[string]position.Position)}
	for _, p := range positions {
		f.positions[p.ID] = p
	}
	return f
}

func (f *fakePositionRepo) Create(_ context.Context, p position.Position) (position.Position, error) {
	f.positions[p.ID] = p
	return p, nil
}

func (f *fakePositionRepo) GetByID(_ context.Context, id string) (position.Position, error) {
	p, ok := f.positions[id]
	if !ok {
		return position.Position{}, position.ErrPositionNotFound
	}
	return p, nil
}

func (f *fakePositionRepo) GetByTitle(_ context.Context, title string) (position.Position, error) {
	for _, p := range f.positions {
		if p.Title == title {
			return p, nil
		}
	}
	return position.Position{}, position.ErrPositionNotFound
}

func (f *fakePositionRepo) List(_ context.Context) ([]position.Position, error) {
	var out []position.Position
	for _, p := range f.positions {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePositionRepo) Update(_ context.Context, p position.Position) error {
	f.positions[p.ID] = p
	return nil
}

func (f *fakePositionRepo) Delete(_ context.Context, id string) error {
	delete(f.positions, id)
	return nil
}

func strPtr(s string) *string { return &s }

var (
	adminActor = user.User{ID: "adm-1", Username: "admin", Role: user.RoleAdmin, Enabled: true}
	hrActor    = user.User{ID: "hr-1", Username: "hr", Role: user.RoleHR, Enabled: true}
	empActor   = user.User{ID: "emp-1", Username: "emp", Role: user.RoleEmployee, Enabled: true}
)

func createReq(username, role string) user.CreateUserRequest {
	return user.CreateUserRequest{
		Username:  username,
		Password:  "Sup3rSecret",
		Role:      role,
		FirstName: "New",
		LastName:  "Hire",
		Email:     username + "@example.com",
	}
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("admin provisions any role", func(t *testing.T) {
		repo := newFakeUserRepo(adminActor)
		svc := NewUserService(repo, newFakePositionRepo())

		created, err := svc.CreateUser(ctx, adminActor, createReq("newhr", "HR"))
		require.NoError(t, err)
		assert.Equal(t, "HR", created.Role)
		assert.True(t, created.Enabled)

		// The password never round-trips in plain text
		stored, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.NotEqual(t, "Sup3rSecret", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Sup3rSecret")))
	})

	t.Run("HR provisions employee accounts only", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(hrActor), newFakePositionRepo())

		_, err := svc.CreateUser(ctx, hrActor, createReq("newemp", "EMPLOYEE"))
		assert.NoError(t, err)

		_, err = svc.CreateUser(ctx, hrActor, createReq("newadmin", "ADMIN"))
		assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
	})

	t.Run("employees cannot provision accounts", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(empActor), newFakePositionRepo())

		_, err := svc.CreateUser(ctx, empActor, createReq("newemp", "EMPLOYEE"))
		assert.ErrorIs(t, err, user.ErrHRPrivilegeRequired)
	})

	t.Run("rejects duplicate usernames", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(adminActor, empActor), newFakePositionRepo())

		_, err := svc.CreateUser(ctx, adminActor, createReq("emp", "EMPLOYEE"))
		assert.ErrorIs(t, err, user.ErrUsernameExists)
	})

	t.Run("rejects an unknown position", func(t *testing.T) {
		svc := NewUserService(newFakeUserRepo(adminActor), newFakePositionRepo())

		req := createReq("newemp", "EMPLOYEE")
		req.PositionID = strPtr("pos-missing")
		_, err := svc.CreateUser(ctx, adminActor, req)
		assert.ErrorIs(t, err, position.ErrPositionNotFound)
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("users edit their own profile", func(t *testing.T) {
		repo := newFakeUserRepo(empActor)
		svc := NewUserService(repo, newFakePositionRepo())

		updated, err := svc.UpdateProfile(ctx, empActor, user.UpdateProfileRequest{
			FirstName: strPtr("Renamed"),
			Phone:     strPtr("+15550100"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.FirstName)
		assert.Equal(t, "+15550100", *updated.Phone)
	})

	t.Run("editing someone else requires admin", func(t *testing.T) {
		repo := newFakeUserRepo(adminActor, hrActor, empActor)
		svc := NewUserService(repo, newFakePositionRepo())

		_, err := svc.UpdateProfile(ctx, hrActor, user.UpdateProfileRequest{
			ID:        empActor.ID,
			FirstName: strPtr("Renamed"),
		})
		assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

		updated, err := svc.UpdateProfile(ctx, adminActor, user.UpdateProfileRequest{
			ID:        empActor.ID,
			FirstName: strPtr("Renamed"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.FirstName)
	})
}

func TestSetEnabled(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo(adminActor, hrActor, empActor)
	svc := NewUserService(repo, newFakePositionRepo())

	err := svc.SetEnabled(ctx, hrActor, empActor.ID, false)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	require.NoError(t, svc.SetEnabled(ctx, adminActor, empActor.ID, false))
	stored, err := repo.GetByID(ctx, empActor.ID)
	require.NoError(t, err)
	assert.False(t, stored.Enabled)

	require.NoError(t, svc.SetEnabled(ctx, adminActor, empActor.ID, true))
	stored, err = repo.GetByID(ctx, empActor.ID)
	require.NoError(t, err)
	assert.True(t, stored.Enabled)
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo(adminActor, hrActor, empActor)
	svc := NewUserService(repo, newFakePositionRepo())

	all, err := svc.ListUsers(ctx, user.UserFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.TotalCount)
	assert.Equal(t, 1, all.Page)
	assert.Equal(t, 20, all.Limit)

	hrOnly, err := svc.ListUsers(ctx, user.UserFilter{Role: strPtr("HR")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), hrOnly.TotalCount)

	_, err = svc.ListUsers(ctx, user.UserFilter{Limit: 500})
	assert.Error(t, err)
}

package users

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JorgeSaicoski/time-keeper/internal/db"
)

type fakeUserRepo struct {
	users map[string]db.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]db.User)}
}

func (r *fakeUserRepo) Create(user *db.User) error {
	if _, exists := r.users[user.ID]; exists {
		return fmt.Errorf("duplicate key value violates unique constraint \"users_pkey\"")
	}
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) Update(user *db.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindAll(dest *[]db.User) error {
	for _, u := range r.users {
		*dest = append(*dest, u)
	}
	return nil
}

func (r *fakeUserRepo) FindWhere(dest *[]db.User, cond interface{}, args ...interface{}) error {
	condition, _ := cond.(string)
	if condition != "id = ?" {
		return fmt.Errorf("unexpected condition %q", condition)
	}
	if u, ok := r.users[args[0].(string)]; ok {
		*dest = append(*dest, u)
	}
	return nil
}

func TestEnsureUserRegistersOnFirstSight(t *testing.T) {
	repo := newFakeUserRepo()
	service := newUserService(repo, nil)

	user, err := service.EnsureUser("user-1", "ada@example.com", "Ada")
	require.NoError(t, err)

	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, db.RoleUser, user.Role)
	assert.Len(t, repo.users, 1)
}

func TestEnsureUserBootstrapsAdmins(t *testing.T) {
	repo := newFakeUserRepo()
	service := newUserService(repo, []string{"root-1", ""})

	admin, err := service.EnsureUser("root-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, db.RoleAdmin, admin.Role)

	regular, err := service.EnsureUser("user-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, db.RoleUser, regular.Role)
}

func TestEnsureUserRefreshesProfile(t *testing.T) {
	repo := newFakeUserRepo()
	service := newUserService(repo, nil)

	_, err := service.EnsureUser("user-1", "old@example.com", "Old Name")
	require.NoError(t, err)

	user, err := service.EnsureUser("user-1", "new@example.com", "New Name")
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "New Name", user.Name)
	assert.Len(t, repo.users, 1)
}

func TestEnsureUserKeepsProfileOnEmptyHeaders(t *testing.T) {
	repo := newFakeUserRepo()
	service := newUserService(repo, nil)

	_, err := service.EnsureUser("user-1", "ada@example.com", "Ada")
	require.NoError(t, err)

	user, err := service.EnsureUser("user-1", "", "")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada", user.Name)
}

func TestListUsersRegistrationOrder(t *testing.T) {
	repo := newFakeUserRepo()
	service := newUserService(repo, nil)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.users["b"] = db.User{ID: "b", CreatedAt: base.Add(time.Hour)}
	repo.users["a"] = db.User{ID: "a", CreatedAt: base}
	repo.users["c"] = db.User{ID: "c", CreatedAt: base.Add(2 * time.Hour)}

	users, err := service.ListUsers()
	require.NoError(t, err)

	require.Len(t, users, 3)
	assert.Equal(t, "a", users[0].ID)
	assert.Equal(t, "b", users[1].ID)
	assert.Equal(t, "c", users[2].ID)
}

func TestIsAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	service := newUserService(repo, []string{"root-1"})

	_, err := service.EnsureUser("root-1", "", "")
	require.NoError(t, err)
	_, err = service.EnsureUser("user-1", "", "")
	require.NoError(t, err)

	isAdmin, err := service.IsAdmin("root-1")
	require.NoError(t, err)
	assert.True(t, isAdmin)

	isAdmin, err = service.IsAdmin("user-1")
	require.NoError(t, err)
	assert.False(t, isAdmin)

	// Unknown identities are simply not admins.
	isAdmin, err = service.IsAdmin("ghost")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

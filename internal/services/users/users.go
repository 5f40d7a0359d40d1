package users

import (
	"log/slog"
	"sort"
	"time"

	"github.com/JorgeSaicoski/pgconnect"

	"github.com/JorgeSaicoski/time-keeper/internal/apperrors"
	"github.com/JorgeSaicoski/time-keeper/internal/db"
)

var log = slog.Default().With(
	slog.String("layer", "service"),
	slog.String("service", "UserService"),
)

type userRepository interface {
	Create(user *db.User) error
	Update(user *db.User) error
	FindAll(dest *[]db.User) error
	FindWhere(dest *[]db.User, condition interface{}, args ...interface{}) error
}

// UserService maintains the local registry behind authenticated
// identities. Auth itself lives upstream; this service only records who
// has been seen so admin reports can enumerate every user.
type UserService struct {
	userRepo userRepository
	admins   map[string]struct{}
}

// NewUserService builds the service. adminIDs are the identities that
// get the admin role on first sight (ADMIN_USERS env).
func NewUserService(database *pgconnect.DB, adminIDs []string) *UserService {
	return newUserService(pgconnect.NewRepository[db.User](database), adminIDs)
}

func newUserService(userRepo userRepository, adminIDs []string) *UserService {
	admins := make(map[string]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		if id != "" {
			admins[id] = struct{}{}
		}
	}
	return &UserService{userRepo: userRepo, admins: admins}
}

// EnsureUser records the identity on first sight and refreshes name and
// email on later ones. Called by middleware on every authenticated
// request, so it has to stay cheap on the common path.
func (s *UserService) EnsureUser(id, email, name string) (*db.User, error) {
	var found []db.User
	if err := s.userRepo.FindWhere(&found, "id = ?", id); err != nil {
		log.Error("ensure-user:query-failed", "userID", id, "err", err)
		return nil, apperrors.Storage("find user", err)
	}

	if len(found) == 0 {
		now := time.Now()
		user := &db.User{
			ID:        id,
			Email:     email,
			Name:      name,
			Role:      s.roleFor(id),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.userRepo.Create(user); err != nil {
			log.Error("ensure-user:insert-failed", "userID", id, "err", err)
			return nil, apperrors.Storage("create user", err)
		}
		log.Info("ensure-user:registered", "userID", id, "role", user.Role)
		return user, nil
	}

	user := found[0]
	changed := false
	if email != "" && email != user.Email {
		user.Email = email
		changed = true
	}
	if name != "" && name != user.Name {
		user.Name = name
		changed = true
	}
	if changed {
		user.UpdatedAt = time.Now()
		if err := s.userRepo.Update(&user); err != nil {
			log.Error("ensure-user:update-failed", "userID", id, "err", err)
			return nil, apperrors.Storage("update user", err)
		}
	}
	return &user, nil
}

// GetUser returns a registry row.
func (s *UserService) GetUser(id string) (*db.User, error) {
	var found []db.User
	if err := s.userRepo.FindWhere(&found, "id = ?", id); err != nil {
		return nil, apperrors.Storage("find user", err)
	}
	if len(found) == 0 {
		return nil, apperrors.NotFound("user", id)
	}
	return &found[0], nil
}

// ListUsers returns every registered user in registration order.
func (s *UserService) ListUsers() ([]db.User, error) {
	var users []db.User
	if err := s.userRepo.FindAll(&users); err != nil {
		return nil, apperrors.Storage("list users", err)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// IsAdmin reports whether the identity carries the admin role.
func (s *UserService) IsAdmin(id string) (bool, error) {
	user, err := s.GetUser(id)
	if err != nil {
		if apperrors.IsKind(err, apperrors.KindNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.Role == db.RoleAdmin, nil
}

func (s *UserService) roleFor(id string) string {
	if _, ok := s.admins[id]; ok {
		return db.RoleAdmin
	}
	return db.RoleUser
}

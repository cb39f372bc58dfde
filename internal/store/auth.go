package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pathology-case-server/internal/models"
)

// ErrUserNotFound is returned by lookups against the user roster.
var ErrUserNotFound = errors.New("user not found")

// sessionFile is the ephemeral session pointer written next to the process.
// It holds only the current user id, re-resolved against the roster at
// startup so the restored user carries fresh roster data.
type sessionFile struct {
	UserID string `json:"userId"`
}

// NewUserData is the payload for creating a user.
type NewUserData struct {
	Name     string
	Role     models.RoleName
	TenantID *string
	Password string
}

// AuthStore owns the user roster and the current session.
type AuthStore struct {
	log         *zap.Logger
	sessionPath string

	users   *Signal[[]models.User]
	current *Signal[*models.User]
}

// NewAuthStore seeds the roster and restores the previous session if a
// session file exists. Without one it defaults to the first seeded user,
// mirroring the demo login flow.
func NewAuthStore(log *zap.Logger, sessionPath string) *AuthStore {
	s := &AuthStore{
		log:         log,
		sessionPath: sessionPath,
		users:       NewSignal(seedUsers()),
		current:     NewSignal[*models.User](nil),
	}
	s.restoreSession()
	return s
}

func (s *AuthStore) restoreSession() {
	users := s.users.Get()
	if len(users) == 0 {
		return
	}

	if s.sessionPath != "" {
		data, err := os.ReadFile(s.sessionPath)
		if err == nil {
			var sess sessionFile
			if err := json.Unmarshal(data, &sess); err == nil {
				for _, u := range users {
					if u.ID == sess.UserID {
						c := u
						s.current.Set(&c)
						return
					}
				}
			}
			s.log.Warn("stored session did not resolve to a known user",
				zap.String("path", s.sessionPath))
		}
	}

	first := users[0]
	s.current.Set(&first)
	s.persistSession(first.ID)
}

func (s *AuthStore) persistSession(userID string) {
	if s.sessionPath == "" {
		return
	}
	data, err := json.Marshal(sessionFile{UserID: userID})
	if err == nil {
		err = os.WriteFile(s.sessionPath, data, 0o600)
	}
	if err != nil {
		s.log.Warn("failed to persist session pointer", zap.Error(err))
	}
}

// AllUsers returns a snapshot of the roster.
func (s *AuthStore) AllUsers() []models.User {
	return slices.Clone(s.users.Get())
}

// UserByID resolves a user from the roster.
func (s *AuthStore) UserByID(id string) (models.User, error) {
	for _, u := range s.users.Get() {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// CurrentUser returns a copy of the acting user, or nil when logged out.
func (s *AuthStore) CurrentUser() *models.User {
	cur := s.current.Get()
	if cur == nil {
		return nil
	}
	c := *cur
	return &c
}

// Login switches the session to the given user. Password is checked only
// for users that carry a hash.
func (s *AuthStore) Login(userID, password string) (models.User, error) {
	user, err := s.UserByID(userID)
	if err != nil {
		return models.User{}, err
	}
	if !user.CheckPassword(password) {
		return models.User{}, fmt.Errorf("invalid credentials for user %s", userID)
	}

	c := user
	s.current.Set(&c)
	s.persistSession(user.ID)
	s.log.Info("user logged in", zap.String("user", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Logout clears the session and removes the session pointer.
func (s *AuthStore) Logout() {
	s.current.Set(nil)
	if s.sessionPath != "" {
		if err := os.Remove(s.sessionPath); err != nil && !os.IsNotExist(err) {
			s.log.Warn("failed to remove session pointer", zap.Error(err))
		}
	}
}

// AddUser creates a roster entry with zero feedback points.
func (s *AuthStore) AddUser(data NewUserData) (models.User, error) {
	user := models.User{
		ID:       uuid.New().String(),
		Name:     data.Name,
		Role:     data.Role,
		TenantID: data.TenantID,
	}
	if data.Password != "" {
		if err := user.SetPassword(data.Password); err != nil {
			return models.User{}, fmt.Errorf("hash password: %w", err)
		}
	}

	s.users.Update(func(users []models.User) []models.User {
		return append(slices.Clone(users), user)
	})
	return user, nil
}

// UpdateUserName renames a user; the current-session copy is refreshed so
// readers see the change immediately. No-op for unknown ids.
func (s *AuthStore) UpdateUserName(userID, name string) {
	s.users.Update(func(users []models.User) []models.User {
		out := slices.Clone(users)
		for i := range out {
			if out[i].ID == userID {
				out[i].Name = name
			}
		}
		return out
	})
	s.refreshCurrent(userID)
}

// AddPoints awards feedback points to a user. No-op for unknown ids.
func (s *AuthStore) AddPoints(userID string, points int) {
	s.users.Update(func(users []models.User) []models.User {
		out := slices.Clone(users)
		for i := range out {
			if out[i].ID == userID {
				out[i].FeedbackPoints += points
			}
		}
		return out
	})
	s.refreshCurrent(userID)
}

func (s *AuthStore) refreshCurrent(userID string) {
	cur := s.current.Get()
	if cur == nil || cur.ID != userID {
		return
	}
	if updated, err := s.UserByID(userID); err == nil {
		c := updated
		s.current.Set(&c)
	}
}

// SubscribeUsers registers fn to run on every roster change.
func (s *AuthStore) SubscribeUsers(fn func([]models.User)) func() {
	return s.users.Subscribe(fn)
}

package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pathology-case-server/internal/models"
)

func TestDefaultsToFirstSeededUser(t *testing.T) {
	auth := NewAuthStore(zap.NewNop(), "")

	current := auth.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, "u1", current.ID)
}

func TestSessionSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first := NewAuthStore(zap.NewNop(), path)
	_, err := first.Login("u3", "")
	require.NoError(t, err)

	second := NewAuthStore(zap.NewNop(), path)
	current := second.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, "u3", current.ID)
}

func TestLogoutClearsSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	auth := NewAuthStore(zap.NewNop(), path)
	auth.Logout()
	assert.Nil(t, auth.CurrentUser())

	// Without a session pointer the next start falls back to the default.
	restarted := NewAuthStore(zap.NewNop(), path)
	current := restarted.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, "u1", current.ID)
}

func TestLoginUnknownUser(t *testing.T) {
	auth := NewAuthStore(zap.NewNop(), "")
	_, err := auth.Login("nope", "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAddUserWithPassword(t *testing.T) {
	auth := NewAuthStore(zap.NewNop(), "")

	user, err := auth.AddUser(NewUserData{
		Name:     "Dr. New Pathologist",
		Role:     models.RolePathologist,
		TenantID: strPtr("t1"),
		Password: "s3cret-pw",
	})
	require.NoError(t, err)
	assert.Zero(t, user.FeedbackPoints)

	_, err = auth.Login(user.ID, "wrong")
	assert.Error(t, err)

	logged, err := auth.Login(user.ID, "s3cret-pw")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
}

func TestAddPointsRefreshesCurrentUser(t *testing.T) {
	auth := NewAuthStore(zap.NewNop(), "")
	_, err := auth.Login("u1", "")
	require.NoError(t, err)
	before := auth.CurrentUser().FeedbackPoints

	auth.AddPoints("u1", 7)
	assert.Equal(t, before+7, auth.CurrentUser().FeedbackPoints)
}

func TestUpdateUserName(t *testing.T) {
	auth := NewAuthStore(zap.NewNop(), "")

	auth.UpdateUserName("u2", "Dr. Benjamin Carter")
	u, err := auth.UserByID("u2")
	require.NoError(t, err)
	assert.Equal(t, "Dr. Benjamin Carter", u.Name)

	// Unknown ids are ignored.
	auth.UpdateUserName("nope", "Ghost")
	_, err = auth.UserByID("nope")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathology-case-server/internal/models"
	"pathology-case-server/internal/utils"
)

func TestLoginIssuesTokens(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"userId": "u1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var data struct {
		User   models.User     `json:"user"`
		Tokens utils.TokenPair `json:"tokens"`
	}
	decodeData(t, w, &data)
	assert.Equal(t, "u1", data.User.ID)
	assert.NotEmpty(t, data.Tokens.AccessToken)

	// The issued token works against protected routes.
	profile := s.request(t, http.MethodGet, "/api/auth/profile", data.Tokens.AccessToken, nil)
	assert.Equal(t, http.StatusOK, profile.Code)
}

func TestLoginUnknownUserRejected(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"userId": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshTokenFlow(t *testing.T) {
	s := newTestServer(t)

	login := s.request(t, http.MethodPost, "/api/auth/login", "", map[string]string{"userId": "u2"})
	require.Equal(t, http.StatusOK, login.Code)

	var data struct {
		Tokens utils.TokenPair `json:"tokens"`
	}
	decodeData(t, login, &data)

	w := s.request(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": data.Tokens.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var refreshed utils.TokenPair
	decodeData(t, w, &refreshed)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not accepted as a refresh token.
	w = s.request(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{
		"refreshToken": data.Tokens.AccessToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPermissionsEndpointReflectsRole(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodGet, "/api/auth/permissions", s.tokenFor(t, "u1"), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var perms []models.Permission
	decodeData(t, w, &perms)
	assert.Contains(t, perms, models.PermRunAIAnalysis)
	assert.NotContains(t, perms, models.PermManageUsers)
}

func TestTenantRoutesRequireSuperAdmin(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodGet, "/api/tenants", s.tokenFor(t, "u1"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.request(t, http.MethodGet, "/api/tenants", s.tokenFor(t, "u4"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFeedbackSubmissionAndReview(t *testing.T) {
	s := newTestServer(t)
	pathologist := s.tokenFor(t, "u1")
	admin := s.tokenFor(t, "u4")

	w := s.request(t, http.MethodPost, "/api/feedback", pathologist, map[string]interface{}{
		"type":        "Suggestion",
		"title":       "Dark mode for the viewer",
		"description": "Reading slides at night would be easier on the eyes with a dark theme.",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Feedback
	decodeData(t, w, &created)
	assert.Equal(t, models.FeedbackNew, created.Status)

	// Review is gated to admins.
	w = s.request(t, http.MethodPost, "/api/feedback/"+created.ID+"/review", pathologist, map[string]interface{}{
		"accept": true,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.request(t, http.MethodPost, "/api/feedback/"+created.ID+"/review", admin, map[string]interface{}{
		"accept":   true,
		"priority": "Medium",
		"comment":  "Planned.",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var reviewed models.Feedback
	decodeData(t, w, &reviewed)
	assert.Equal(t, models.FeedbackInProgress, reviewed.Status)
	assert.Equal(t, models.FeedbackPriorityMedium, reviewed.Priority)
}

func TestRoleManagementPermissionGate(t *testing.T) {
	s := newTestServer(t)

	// Pathologists cannot view role definitions.
	w := s.request(t, http.MethodGet, "/api/roles", s.tokenFor(t, "u1"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Tenant admins can.
	w = s.request(t, http.MethodGet, "/api/roles", s.tokenFor(t, "u6"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStatsRequireReportsPermission(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodGet, "/api/stats/qa-metrics", s.tokenFor(t, "u1"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Researchers hold view:reports.
	w = s.request(t, http.MethodGet, "/api/stats/qa-metrics", s.tokenFor(t, "u2"), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthEndpointIsPublic(t *testing.T) {
	s := newTestServer(t)

	w := s.request(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

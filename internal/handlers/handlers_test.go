package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pathology-case-server/internal/ai"
	"pathology-case-server/internal/config"
	"pathology-case-server/internal/handlers"
	"pathology-case-server/internal/models"
	"pathology-case-server/internal/routes"
	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

type testServer struct {
	router *gin.Engine
	cfg    *config.Config
	auth   *store.AuthStore
	cases  *store.CaseStore
	roles  *store.RoleStore
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:                 "test-secret",
		JWTRefreshSecret:          "test-refresh-secret",
		JWTExpirationMinutes:      5,
		JWTRefreshExpirationHours: 1,
		SessionFile:               filepath.Join(t.TempDir(), "session.json"),
	}

	logger := zap.NewNop()
	notifications := store.NewNotificationStore()
	errorLog := store.NewErrorLogStore(logger)
	auth := store.NewAuthStore(logger, cfg.SessionFile)
	cases := store.NewCaseStore(logger, auth, notifications)
	feedback := store.NewFeedbackStore(logger, auth)
	roles := store.NewRoleStore()
	activity := store.NewActivityStore()
	stats := store.NewStatsStore(auth, cases)
	aiClient := ai.NewClient(context.Background(), logger, "", "")

	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(logger, cfg, auth),
		Users:    handlers.NewUserHandler(logger, auth, feedback, activity),
		Cases:    handlers.NewCaseHandler(logger, cases, auth, aiClient, errorLog, activity),
		Editor:   handlers.NewEditorHandler(logger, cases),
		Search:   handlers.NewSearchHandler(logger, aiClient, auth, cases),
		Feedback: handlers.NewFeedbackHandler(logger, feedback, activity),
		Tenants:  handlers.NewTenantHandler(store.NewTenantStore(), store.NewIntegrationStore()),
		Roles:    handlers.NewRoleHandler(roles),
		Tasks:    handlers.NewTaskHandler(store.NewTaskStore(auth)),
		Admin: handlers.NewAdminHandler(logger, store.NewIntegrationStore(), store.NewModelStore(),
			store.NewMlflowStore(), store.NewChangelogStore(), store.NewCourseStore(), activity,
			store.NewSettingsStore(), errorLog),
		Stats: handlers.NewStatsHandler(stats, notifications),
	}

	router := gin.New()
	routes.SetupRoutes(router, cfg, roles, h)

	return &testServer{router: router, cfg: cfg, auth: auth, cases: cases, roles: roles}
}

func (s *testServer) tokenFor(t *testing.T, userID string) string {
	t.Helper()
	user, err := s.auth.UserByID(userID)
	require.NoError(t, err)

	pair, err := utils.GenerateTokens(&user, s.cfg.JWTSecret, s.cfg.JWTRefreshSecret,
		time.Duration(s.cfg.JWTExpirationMinutes)*time.Minute,
		time.Duration(s.cfg.JWTRefreshExpirationHours)*time.Hour)
	require.NoError(t, err)
	return pair.AccessToken
}

func (s *testServer) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Status  string          `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
}

func responseMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Message
}

// caseSummary is the subset of case fields the tests assert on.
type caseSummary struct {
	ID              string            `json:"id"`
	AccessionNumber string            `json:"accession_number"`
	Status          models.CaseStatus `json:"status"`
	IsArchived      bool              `json:"isArchived"`
}

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pathology-case-server/internal/models"
)

func newTestStatsStore(t *testing.T) (*StatsStore, *AuthStore, *CaseStore) {
	t.Helper()
	auth := NewAuthStore(zap.NewNop(), "")
	cases := NewCaseStore(zap.NewNop(), auth, NewNotificationStore())
	return NewStatsStore(auth, cases), auth, cases
}

func TestQAMetricsForActingUser(t *testing.T) {
	stats, _, _ := newTestStatsStore(t)

	// u1 is the default acting user; c1 is their only reported case and it
	// carries matching AI and pathologist diagnoses.
	m := stats.QAMetrics()
	assert.InDelta(t, 100.0, m.AIConcordanceRate, 0.001)
	assert.InDelta(t, 120.0, m.AvgTurnaroundTime, 1.0) // received five days ago
	assert.Zero(t, m.UserAnnotationRate)
}

func TestQAMetricsCountsAnnotatedCases(t *testing.T) {
	stats, _, cases := newTestStatsStore(t)

	cases.UpdateAnnotations("c1", models.AnnotationList{
		models.CircleAnnotation{ID: "a1", Color: "#fff", StrokeWidth: 2, Center: models.Point{X: 10, Y: 10}, Radius: 4},
	})

	m := stats.QAMetrics()
	assert.InDelta(t, 100.0, m.UserAnnotationRate, 0.001)
}

func TestQAMetricsEmptyWithoutSession(t *testing.T) {
	stats, auth, _ := newTestStatsStore(t)
	auth.Logout()

	assert.Equal(t, QAMetrics{}, stats.QAMetrics())
}

func TestAuditTrailScopedToTenant(t *testing.T) {
	stats, _, _ := newTestStatsStore(t)

	// u1 belongs to t1; c3 is the only other diagnosed case and it lives in
	// t2, so the trail contains c1 alone.
	trail := stats.DiagnosisAuditTrail()
	assert.Equal(t, 1, trail.TotalReviewed)
	assert.Equal(t, 1, trail.Concordant)
	assert.Zero(t, trail.Discordant)
	assert.InDelta(t, 100.0, trail.Concordance, 0.001)
	require.Len(t, trail.Cases, 1)
	assert.Equal(t, "c1", trail.Cases[0].ID)
	assert.True(t, trail.Cases[0].Match)
}

func TestAuditTrailRequiresReportedStatus(t *testing.T) {
	stats, auth, _ := newTestStatsStore(t)

	// u3 belongs to t2, but c3 is closed rather than reported.
	_, err := auth.Login("u3", "")
	require.NoError(t, err)
	trail := stats.DiagnosisAuditTrail()
	assert.Zero(t, trail.TotalReviewed)
	assert.Empty(t, trail.Cases)
}

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pathology-case-server/internal/models"
)

func newTestFeedbackStore(t *testing.T) (*FeedbackStore, *AuthStore) {
	t.Helper()
	auth := NewAuthStore(zap.NewNop(), "")
	return NewFeedbackStore(zap.NewNop(), auth), auth
}

func userPoints(t *testing.T, auth *AuthStore, id string) int {
	t.Helper()
	u, err := auth.UserByID(id)
	require.NoError(t, err)
	return u.FeedbackPoints
}

func TestAddFeedbackAwardsSubmissionPoints(t *testing.T) {
	s, auth := newTestFeedbackStore(t)
	_, err := auth.Login("u2", "")
	require.NoError(t, err)
	before := userPoints(t, auth, "u2")

	fb, ok := s.AddFeedback(NewFeedbackData{
		Type:        models.FeedbackBug,
		Title:       "Case list renders slowly",
		Description: "Scrolling through more than a hundred cases lags noticeably.",
	})
	require.True(t, ok)

	assert.Equal(t, models.FeedbackNew, fb.Status)
	assert.Equal(t, submissionPoints, fb.PointsAwarded)
	assert.Equal(t, "u2", fb.SubmittedBy)
	assert.Equal(t, before+submissionPoints, userPoints(t, auth, "u2"))

	// Newest first.
	assert.Equal(t, fb.ID, s.Feedback()[0].ID)
}

func TestResolvingSuggestionAwardsBonusOnce(t *testing.T) {
	s, auth := newTestFeedbackStore(t)

	// fb4 is an unresolved suggestion submitted by u1.
	before := userPoints(t, auth, "u1")

	s.UpdateStatus("fb4", models.FeedbackResolved)
	assert.Equal(t, before+resolutionPoints, userPoints(t, auth, "u1"))

	// Same transition again is a no-op.
	s.UpdateStatus("fb4", models.FeedbackResolved)
	assert.Equal(t, before+resolutionPoints, userPoints(t, auth, "u1"))

	var fb4 models.Feedback
	for _, fb := range s.Feedback() {
		if fb.ID == "fb4" {
			fb4 = fb
		}
	}
	assert.Equal(t, models.FeedbackResolved, fb4.Status)
	assert.Equal(t, submissionPoints+resolutionPoints, fb4.PointsAwarded)
}

func TestResolvingNonSuggestionAwardsNoBonus(t *testing.T) {
	s, auth := newTestFeedbackStore(t)

	// fb1 is a bug submitted by u1.
	before := userPoints(t, auth, "u1")
	s.UpdateStatus("fb1", models.FeedbackResolved)
	assert.Equal(t, before, userPoints(t, auth, "u1"))
}

func TestReviewFeedback(t *testing.T) {
	s, _ := newTestFeedbackStore(t)

	s.ReviewFeedback("fb4", true, ReviewFeedbackData{
		Priority:   models.FeedbackPriorityMedium,
		Comment:    "Scheduled for the next sprint.",
		TargetDate: "2026-09-15",
	})

	for _, fb := range s.Feedback() {
		if fb.ID == "fb4" {
			assert.Equal(t, models.FeedbackInProgress, fb.Status)
			assert.Equal(t, models.FeedbackPriorityMedium, fb.Priority)
			assert.Equal(t, "Scheduled for the next sprint.", fb.AdminComment)
			assert.Equal(t, "2026-09-15", fb.TargetResolutionDate)
		}
	}

	s.ReviewFeedback("fb4", false, ReviewFeedbackData{})
	for _, fb := range s.Feedback() {
		if fb.ID == "fb4" {
			assert.Equal(t, models.FeedbackClosed, fb.Status)
		}
	}
}

func TestNewCount(t *testing.T) {
	s, auth := newTestFeedbackStore(t)

	initial := s.NewCount()
	assert.Equal(t, 1, initial) // fb4 is the only untriaged seed item

	_, err := auth.Login("u1", "")
	require.NoError(t, err)
	_, ok := s.AddFeedback(NewFeedbackData{
		Type:        models.FeedbackQuestion,
		Title:       "Exporting reports",
		Description: "Is there a way to export the QA metrics view?",
	})
	require.True(t, ok)
	assert.Equal(t, initial+1, s.NewCount())
}

func TestLeaderboardOrderedByPoints(t *testing.T) {
	s, _ := newTestFeedbackStore(t)

	board := s.Leaderboard()
	require.NotEmpty(t, board)
	for i := 1; i < len(board); i++ {
		assert.GreaterOrEqual(t, board[i-1].FeedbackPoints, board[i].FeedbackPoints)
	}
}

package store

import (
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pathology-case-server/internal/models"
)

const (
	submissionPoints = 5  // awarded for any submission
	resolutionPoints = 20 // bonus when a suggestion is resolved
)

// NewFeedbackData is the payload for submitting feedback.
type NewFeedbackData struct {
	Type        models.FeedbackType
	Title       string
	Description string
	Attachment  *models.FeedbackAttachment
}

// ReviewFeedbackData carries the admin's triage decision.
type ReviewFeedbackData struct {
	Priority   models.FeedbackPriority
	Comment    string
	TargetDate string
}

// FeedbackStore owns the feedback collection and the point-award rules
// attached to its workflow.
type FeedbackStore struct {
	log  *zap.Logger
	auth *AuthStore

	feedback *Signal[[]models.Feedback]
}

func NewFeedbackStore(log *zap.Logger, auth *AuthStore) *FeedbackStore {
	return &FeedbackStore{
		log:      log,
		auth:     auth,
		feedback: NewSignal(seedFeedback(time.Now())),
	}
}

// Feedback returns a snapshot of the collection, newest first.
func (s *FeedbackStore) Feedback() []models.Feedback {
	return slices.Clone(s.feedback.Get())
}

// NewCount reports how many submissions are still untriaged.
func (s *FeedbackStore) NewCount() int {
	n := 0
	for _, f := range s.feedback.Get() {
		if f.Status == models.FeedbackNew {
			n++
		}
	}
	return n
}

// Leaderboard returns the user roster ordered by feedback points, highest
// first.
func (s *FeedbackStore) Leaderboard() []models.User {
	users := s.auth.AllUsers()
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].FeedbackPoints > users[j].FeedbackPoints
	})
	return users
}

// AddFeedback records a submission and awards the submitter the submission
// points. Returns false when no acting user exists.
func (s *FeedbackStore) AddFeedback(data NewFeedbackData) (models.Feedback, bool) {
	user := s.auth.CurrentUser()
	if user == nil {
		return models.Feedback{}, false
	}

	fb := models.Feedback{
		ID:              uuid.New().String(),
		Type:            data.Type,
		Title:           data.Title,
		Description:     data.Description,
		Status:          models.FeedbackNew,
		SubmittedBy:     user.ID,
		SubmittedByName: user.Name,
		SubmittedAt:     time.Now(),
		PointsAwarded:   submissionPoints,
		Attachment:      data.Attachment,
	}

	s.feedback.Update(func(list []models.Feedback) []models.Feedback {
		return append([]models.Feedback{fb}, list...)
	})
	s.auth.AddPoints(user.ID, submissionPoints)
	s.log.Info("feedback submitted",
		zap.String("feedback", fb.ID),
		zap.String("type", string(fb.Type)))
	return fb, true
}

// ReviewFeedback applies an admin triage decision: accepting moves the item
// to In Progress, rejecting closes it. No-op for unknown ids.
func (s *FeedbackStore) ReviewFeedback(feedbackID string, accept bool, data ReviewFeedbackData) {
	status := models.FeedbackClosed
	if accept {
		status = models.FeedbackInProgress
	}
	s.feedback.Update(func(list []models.Feedback) []models.Feedback {
		out := slices.Clone(list)
		for i := range out {
			if out[i].ID == feedbackID {
				out[i].Status = status
				out[i].Priority = data.Priority
				out[i].AdminComment = data.Comment
				out[i].TargetResolutionDate = data.TargetDate
			}
		}
		return out
	})
}

// UpdateStatus transitions a feedback item. Resolving a suggestion from a
// non-Resolved state awards the submitter the resolution bonus exactly
// once; repeating the transition never re-awards.
func (s *FeedbackStore) UpdateStatus(feedbackID string, status models.FeedbackStatus) {
	var rewardUser string

	s.feedback.Update(func(list []models.Feedback) []models.Feedback {
		out := slices.Clone(list)
		for i := range out {
			if out[i].ID != feedbackID || out[i].Status == status {
				continue
			}
			if out[i].Type == models.FeedbackSuggestion &&
				out[i].Status != models.FeedbackResolved &&
				status == models.FeedbackResolved {
				rewardUser = out[i].SubmittedBy
				out[i].PointsAwarded += resolutionPoints
			}
			out[i].Status = status
		}
		return out
	})

	if rewardUser != "" {
		s.auth.AddPoints(rewardUser, resolutionPoints)
	}
}

package models

import (
	"time"
)

// FeedbackType enum
type FeedbackType string

const (
	FeedbackBug        FeedbackType = "Bug"
	FeedbackSuggestion FeedbackType = "Suggestion"
	FeedbackError      FeedbackType = "Error"
	FeedbackQuestion   FeedbackType = "Question"
)

// FeedbackStatus is the review workflow: New -> In Progress -> Resolved|Closed.
type FeedbackStatus string

const (
	FeedbackNew        FeedbackStatus = "New"
	FeedbackInProgress FeedbackStatus = "In Progress"
	FeedbackResolved   FeedbackStatus = "Resolved"
	FeedbackClosed     FeedbackStatus = "Closed"
)

// FeedbackPriority enum
type FeedbackPriority string

const (
	FeedbackPriorityCritical FeedbackPriority = "Critical"
	FeedbackPriorityHigh     FeedbackPriority = "High"
	FeedbackPriorityMedium   FeedbackPriority = "Medium"
	FeedbackPriorityLow      FeedbackPriority = "Low"
)

// FeedbackAttachment holds metadata for a file attached to a submission.
// The file content itself is not retained.
type FeedbackAttachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

// Feedback is a user-submitted report moving through the review workflow.
type Feedback struct {
	ID                   string              `json:"id"`
	Type                 FeedbackType        `json:"type"`
	Title                string              `json:"title"`
	Description          string              `json:"description"`
	Status               FeedbackStatus      `json:"status"`
	SubmittedBy          string              `json:"submittedBy"`
	SubmittedByName      string              `json:"submittedByName"`
	SubmittedAt          time.Time           `json:"submittedAt"`
	PointsAwarded        int                 `json:"pointsAwarded"`
	Priority             FeedbackPriority    `json:"priority,omitempty"`
	Attachment           *FeedbackAttachment `json:"attachment,omitempty"`
	AdminComment         string              `json:"admin_comment,omitempty"`
	TargetResolutionDate string              `json:"target_resolution_date,omitempty"`
}

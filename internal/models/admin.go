package models

import (
	"time"
)

// IntegrationType enum
type IntegrationType string

const (
	IntegrationLIS  IntegrationType = "LIS"
	IntegrationEHR  IntegrationType = "EHR"
	IntegrationPACS IntegrationType = "PACS"
)

// IntegrationStatus enum
type IntegrationStatus string

const (
	IntegrationConnected    IntegrationStatus = "Connected"
	IntegrationError        IntegrationStatus = "Error"
	IntegrationDisconnected IntegrationStatus = "Disconnected"
)

// Integration is an external system connection tracked per tenant.
type Integration struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Type     IntegrationType   `json:"type"`
	Tenant   string            `json:"tenant"`
	Status   IntegrationStatus `json:"status"`
	LastSync string            `json:"lastSync"`
}

// ModelStatus enum
type ModelStatus string

const (
	ModelProduction    ModelStatus = "Production"
	ModelArchived      ModelStatus = "Archived"
	ModelInDevelopment ModelStatus = "In Development"
)

// AiModel is an entry in the deployed-model registry. At most one model is
// in production at a time.
type AiModel struct {
	ID             string      `json:"id"`
	Version        string      `json:"version"`
	Concordance    float64     `json:"concordance"`
	Status         ModelStatus `json:"status"`
	StabilityScore float64     `json:"stabilityScore"`
	TotalRuns      int         `json:"totalRuns"`
}

// ExperimentStatus enum
type ExperimentStatus string

const (
	ExperimentCompleted ExperimentStatus = "Completed"
	ExperimentRunning   ExperimentStatus = "Running"
	ExperimentFailed    ExperimentStatus = "Failed"
)

// MlflowExperiment is a tracked training run. Accuracy is nil until the run
// completes successfully.
type MlflowExperiment struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Accuracy *float64         `json:"accuracy"`
	Status   ExperimentStatus `json:"status"`
}

// ChangelogItemType enum
type ChangelogItemType string

const (
	ChangelogNew     ChangelogItemType = "NEW"
	ChangelogImprove ChangelogItemType = "IMPROVE"
	ChangelogFix     ChangelogItemType = "FIX"
)

// ChangelogItem is one published release note.
type ChangelogItem struct {
	ID          string            `json:"id"`
	Type        ChangelogItemType `json:"type"`
	Date        string            `json:"date"`
	Description string            `json:"description"`
}

// Course is an educational unit students can be assigned to.
type Course struct {
	ID               string   `json:"id"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	AssignedStudents []string `json:"assignedStudents"`
}

// SystemSettings are the global toggles editable by system admins.
type SystemSettings struct {
	EmailOnError bool `json:"emailOnError"`
	WeeklyReport bool `json:"weeklyReport"`
	MFAEnforced  bool `json:"mfaEnforced"`
}

// ActivityIcon tags an activity entry for dashboard rendering.
type ActivityIcon string

const (
	ActivityCaseNew      ActivityIcon = "case_new"
	ActivityCaseClosed   ActivityIcon = "case_closed"
	ActivityFeedbackNew  ActivityIcon = "feedback_new"
	ActivityUserAdded    ActivityIcon = "user_added"
	ActivitySystemUpdate ActivityIcon = "system_update"
	ActivityCache        ActivityIcon = "action_cache"
	ActivityRestart      ActivityIcon = "action_restart"
)

// Activity is one entry in the recent-activity feed.
type Activity struct {
	ID        string       `json:"id"`
	Icon      ActivityIcon `json:"icon"`
	Text      string       `json:"text"`
	Timestamp time.Time    `json:"timestamp"`
}

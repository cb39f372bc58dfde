package models

import (
	"time"
)

// Gender represents a patient's recorded gender.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// Patient is the demographic snapshot embedded in a case.
type Patient struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	DOB    string `json:"dob"`
	Gender Gender `json:"gender"`
	MRN    string `json:"mrn"`
}

// CaseStatus represents where a case sits in the review workflow.
type CaseStatus string

const (
	StatusSpecimenAccessioned CaseStatus = "Specimen Accessioned"
	StatusAwaitingReview      CaseStatus = "Awaiting Review"
	StatusInReview            CaseStatus = "In Review"
	StatusSecondOpinion       CaseStatus = "Second Opinion"
	StatusReported            CaseStatus = "Reported"
	StatusClosed              CaseStatus = "Closed"
)

// CaseStatuses lists every workflow status, used for validation and for the
// AI query schema.
var CaseStatuses = []CaseStatus{
	StatusSpecimenAccessioned,
	StatusAwaitingReview,
	StatusInReview,
	StatusSecondOpinion,
	StatusReported,
	StatusClosed,
}

// CasePriority represents the urgency of a case.
type CasePriority string

const (
	PriorityRoutine CasePriority = "Routine"
	PriorityStat    CasePriority = "STAT"
)

// AnalysisRating is the thumbs-up/down verdict on an AI analysis result.
type AnalysisRating string

const (
	RatingGood AnalysisRating = "good"
	RatingBad  AnalysisRating = "bad"
)

// AnalysisFeedback is a reviewer's verdict on a single analysis run.
type AnalysisFeedback struct {
	Rating      AnalysisRating `json:"rating"`
	Comment     string         `json:"comment,omitempty"`
	SubmittedBy string         `json:"submittedBy"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

// AnalysisHistoryItem records one AI analysis run against a case slide.
// The history is append-only; feedback may later be merged into an entry.
type AnalysisHistoryItem struct {
	ID           string            `json:"id"`
	Date         time.Time         `json:"date"`
	AnalysisName string            `json:"analysisName"`
	Prompt       string            `json:"prompt"`
	Result       string            `json:"result"`
	Feedback     *AnalysisFeedback `json:"feedback,omitempty"`
}

// Case is a tracked pathology specimen record moving through the review
// workflow. AssignedTo is a denormalized copy of the user at assignment
// time; callers must re-resolve against the user roster for fresh data.
type Case struct {
	ID                   string                `json:"id"`
	AccessionNumber      string                `json:"accession_number"`
	Patient              Patient               `json:"patient"`
	PatientID            string                `json:"patientId"`
	DateReceived         time.Time             `json:"date_received"`
	ClinicalHistory      string                `json:"clinical_history"`
	Status               CaseStatus            `json:"status"`
	Priority             CasePriority          `json:"priority"`
	AssignedTo           *User                 `json:"assigned_to"`
	SlideImageURL        string                `json:"slide_image_url,omitempty"`
	AnalysisHistory      []AnalysisHistoryItem `json:"analysisHistory"`
	Annotations          AnnotationList        `json:"annotations"`
	IsArchived           bool                  `json:"isArchived"`
	TenantID             *string               `json:"tenantId"`
	IsTrainingCase       bool                  `json:"isTrainingCase,omitempty"`
	AIDiagnosis          string                `json:"aiDiagnosis,omitempty"`
	AIConfidence         float64               `json:"aiConfidence,omitempty"`
	PathologistDiagnosis string                `json:"pathologistDiagnosis,omitempty"`
}

// CaseFilters is a set of optional predicates narrowing the case collection.
// Zero-valued fields impose no constraint. IsTrainingCase is a pointer so
// that "unset" and "false" stay distinguishable. AssignedToName carries the
// free-text assignee extracted by the AI query adapter; the search layer
// resolves it to an id before filtering.
type CaseFilters struct {
	Status          CaseStatus   `json:"status,omitempty"`
	Priority        CasePriority `json:"priority,omitempty"`
	PatientName     string       `json:"patientName,omitempty"`
	AccessionNumber string       `json:"accessionNumber,omitempty"`
	AssignedToID    string       `json:"assignedToId,omitempty"`
	AssignedToName  string       `json:"assignedTo,omitempty"`
	IsTrainingCase  *bool        `json:"isTrainingCase,omitempty"`
	ShowArchived    bool         `json:"showArchived,omitempty"`
}

// SortColumn identifies a sortable case-list column.
type SortColumn string

const (
	SortByAccessionNumber SortColumn = "accession_number"
	SortByPatient         SortColumn = "patient"
	SortByDateReceived    SortColumn = "date_received"
	SortByStatus          SortColumn = "status"
	SortByPriority        SortColumn = "priority"
	SortByAssignedTo      SortColumn = "assigned_to"
)

// SortDirection enum
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// CaseSort is the active sort specification for the case list.
type CaseSort struct {
	Column    SortColumn    `json:"column"`
	Direction SortDirection `json:"direction"`
}

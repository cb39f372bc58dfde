package store

import (
	"sort"
	"time"

	"pathology-case-server/internal/models"
)

// nowFunc is split out so turnaround math is deterministic in tests.
var nowFunc = time.Now

// QAMetrics summarizes the acting user's completed-case quality signals.
type QAMetrics struct {
	AIConcordanceRate  float64 `json:"aiConcordanceRate"`
	AvgTurnaroundTime  float64 `json:"avgTurnaroundTime"`
	UserAnnotationRate float64 `json:"userAnnotationRate"`
}

// AuditCase is one row of the diagnosis audit trail.
type AuditCase struct {
	ID                   string  `json:"id"`
	AccessionNumber      string  `json:"accessionNumber"`
	PatientMRN           string  `json:"patientMrn"`
	AIDiagnosis          string  `json:"aiDiagnosis"`
	AIConfidence         float64 `json:"aiConfidence"`
	PathologistDiagnosis string  `json:"pathologistDiagnosis"`
	Match                bool    `json:"match"`
}

// AuditTrail summarizes AI/pathologist concordance for one tenant.
type AuditTrail struct {
	Concordance   float64     `json:"concordance"`
	TotalReviewed int         `json:"totalReviewed"`
	Concordant    int         `json:"concordant"`
	Discordant    int         `json:"discordant"`
	Cases         []AuditCase `json:"cases"`
}

// StatsStore derives quality views from the auth and case stores. It owns
// no state of its own; every read recomputes from the latest snapshots.
type StatsStore struct {
	auth  *AuthStore
	cases *CaseStore
}

func NewStatsStore(auth *AuthStore, cases *CaseStore) *StatsStore {
	return &StatsStore{auth: auth, cases: cases}
}

// QAMetrics computes concordance, turnaround, and annotation rate over the
// acting user's reported and closed cases.
func (s *StatsStore) QAMetrics() QAMetrics {
	user := s.auth.CurrentUser()
	if user == nil {
		return QAMetrics{}
	}

	var completed []models.Case
	for _, c := range s.cases.AllCases() {
		if c.AssignedTo != nil && c.AssignedTo.ID == user.ID &&
			(c.Status == models.StatusClosed || c.Status == models.StatusReported) {
			completed = append(completed, c)
		}
	}
	if len(completed) == 0 {
		return QAMetrics{}
	}

	var reviewed, concordant, annotated int
	var turnaroundHours float64
	for _, c := range completed {
		if c.AIDiagnosis != "" && c.PathologistDiagnosis != "" {
			reviewed++
			if c.AIDiagnosis == c.PathologistDiagnosis {
				concordant++
			}
		}
		if len(c.Annotations) > 0 {
			annotated++
		}
		turnaroundHours += nowFunc().Sub(c.DateReceived).Hours()
	}

	m := QAMetrics{
		AvgTurnaroundTime:  turnaroundHours / float64(len(completed)),
		UserAnnotationRate: float64(annotated) / float64(len(completed)) * 100,
	}
	if reviewed > 0 {
		m.AIConcordanceRate = float64(concordant) / float64(reviewed) * 100
	}
	return m
}

// DiagnosisAuditTrail lists the acting user's tenant cases that were
// reported with both an AI and a pathologist diagnosis, with a concordance
// summary computed from the live collection.
func (s *StatsStore) DiagnosisAuditTrail() AuditTrail {
	user := s.auth.CurrentUser()
	if user == nil || user.TenantID == nil {
		return AuditTrail{Cases: []AuditCase{}}
	}

	trail := AuditTrail{Cases: []AuditCase{}}
	for _, c := range s.cases.AllCases() {
		if c.TenantID == nil || *c.TenantID != *user.TenantID {
			continue
		}
		if c.Status != models.StatusReported || c.AIDiagnosis == "" || c.PathologistDiagnosis == "" {
			continue
		}

		match := c.AIDiagnosis == c.PathologistDiagnosis
		trail.TotalReviewed++
		if match {
			trail.Concordant++
		} else {
			trail.Discordant++
		}
		trail.Cases = append(trail.Cases, AuditCase{
			ID:                   c.ID,
			AccessionNumber:      c.AccessionNumber,
			PatientMRN:           c.Patient.MRN,
			AIDiagnosis:          c.AIDiagnosis,
			AIConfidence:         c.AIConfidence,
			PathologistDiagnosis: c.PathologistDiagnosis,
			Match:                match,
		})
	}

	if trail.TotalReviewed > 0 {
		trail.Concordance = float64(trail.Concordant) / float64(trail.TotalReviewed) * 100
	}
	sort.SliceStable(trail.Cases, func(i, j int) bool {
		return trail.Cases[i].AccessionNumber > trail.Cases[j].AccessionNumber
	})
	return trail
}

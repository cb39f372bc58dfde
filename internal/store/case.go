package store

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pathology-case-server/internal/models"
)

// defaultTenantID is used for cases created by users without a tenant.
const defaultTenantID = "t1"

// NewCaseData is the payload for accessioning a new case.
type NewCaseData struct {
	PatientName     string
	PatientDOB      string
	PatientGender   models.Gender
	PatientMRN      string
	AccessionNumber string
	Priority        models.CasePriority
	AssignedToID    string
	ClinicalHistory string
}

// CaseStore owns the case collection together with the active filter and
// sort specification. The derived filtered+sorted view is recomputed from
// the canonical collection on every read; the collection itself is only
// replaced wholesale, never mutated in place.
type CaseStore struct {
	log      *zap.Logger
	auth     *AuthStore
	notifier Notifier

	cases      *Signal[[]models.Case]
	selectedID *Signal[string]
	filters    *Signal[models.CaseFilters]
	sort       *Signal[models.CaseSort]
}

// NewCaseStore seeds the collection and wires the collaborating stores.
func NewCaseStore(log *zap.Logger, auth *AuthStore, notifier Notifier) *CaseStore {
	return &CaseStore{
		log:        log,
		auth:       auth,
		notifier:   notifier,
		cases:      NewSignal(seedCases(time.Now(), auth.AllUsers())),
		selectedID: NewSignal(""),
		filters:    NewSignal(models.CaseFilters{}),
		sort:       NewSignal(models.CaseSort{Column: models.SortByDateReceived, Direction: models.SortDesc}),
	}
}

// AllCases returns a snapshot of the full collection, unfiltered.
func (s *CaseStore) AllCases() []models.Case {
	return slices.Clone(s.cases.Get())
}

// Cases returns the derived view: the collection narrowed by the active
// filters and ordered by the active sort specification.
func (s *CaseStore) Cases() []models.Case {
	return s.View(s.filters.Get())
}

// View narrows the collection by the given filters and orders it by the
// active sort specification. The stored filter specification is untouched,
// so ad-hoc queries never clobber another client's filters.
func (s *CaseStore) View(f models.CaseFilters) []models.Case {
	return SortCases(FilterCases(s.cases.Get(), f), s.sort.Get())
}

// CaseByID returns a copy of the matching case.
func (s *CaseStore) CaseByID(id string) (models.Case, bool) {
	for _, c := range s.cases.Get() {
		if c.ID == id {
			return c, true
		}
	}
	return models.Case{}, false
}

// --- Selection ---

// SelectCase marks a case as the active detail view.
func (s *CaseStore) SelectCase(caseID string) { s.selectedID.Set(caseID) }

// ClearSelection resets the active detail view.
func (s *CaseStore) ClearSelection() { s.selectedID.Set("") }

// SelectedCase returns the case behind the active detail view, or false
// when nothing is selected or the id no longer resolves.
func (s *CaseStore) SelectedCase() (models.Case, bool) {
	id := s.selectedID.Get()
	if id == "" {
		return models.Case{}, false
	}
	return s.CaseByID(id)
}

// --- Filtering and sorting ---

// Filters returns the active filter specification.
func (s *CaseStore) Filters() models.CaseFilters { return s.filters.Get() }

// Sort returns the active sort specification.
func (s *CaseStore) Sort() models.CaseSort { return s.sort.Get() }

// ApplyFilters replaces the filter specification wholesale.
func (s *CaseStore) ApplyFilters(f models.CaseFilters) { s.filters.Set(f) }

// ClearFilters resets all predicates; archived cases stay hidden.
func (s *CaseStore) ClearFilters() { s.filters.Set(models.CaseFilters{}) }

// SetSort selects the sort column. Re-selecting the active column toggles
// direction; a new column resets direction to descending.
func (s *CaseStore) SetSort(column models.SortColumn) {
	s.sort.Update(func(cur models.CaseSort) models.CaseSort {
		if cur.Column == column {
			dir := models.SortAsc
			if cur.Direction == models.SortAsc {
				dir = models.SortDesc
			}
			return models.CaseSort{Column: column, Direction: dir}
		}
		return models.CaseSort{Column: column, Direction: models.SortDesc}
	})
}

// --- Mutations ---
//
// Every mutation replaces the matching case by id and leaves all other
// cases untouched. Unknown ids are a silent no-op.

// AddCase accessions a new case with a freshly created patient record. The
// case enters the workflow at Specimen Accessioned and inherits the acting
// user's tenant. Returns false when no acting user exists.
func (s *CaseStore) AddCase(data NewCaseData) (models.Case, bool) {
	user := s.auth.CurrentUser()
	if user == nil {
		return models.Case{}, false
	}

	patient := models.Patient{
		ID:     uuid.New().String(),
		Name:   data.PatientName,
		DOB:    data.PatientDOB,
		Gender: data.PatientGender,
		MRN:    data.PatientMRN,
	}

	var assigned *models.User
	if data.AssignedToID != "" {
		if u, err := s.auth.UserByID(data.AssignedToID); err == nil {
			assigned = &u
		}
	}

	tenantID := user.TenantID
	if tenantID == nil {
		tenantID = strPtr(defaultTenantID)
	}

	newCase := models.Case{
		ID:              uuid.New().String(),
		AccessionNumber: data.AccessionNumber,
		Patient:         patient,
		PatientID:       patient.ID,
		DateReceived:    time.Now(),
		ClinicalHistory: data.ClinicalHistory,
		Status:          models.StatusSpecimenAccessioned,
		Priority:        data.Priority,
		AssignedTo:      assigned,
		AnalysisHistory: []models.AnalysisHistoryItem{},
		Annotations:     models.AnnotationList{},
		TenantID:        tenantID,
	}

	s.cases.Update(func(cases []models.Case) []models.Case {
		return append([]models.Case{newCase}, cases...)
	})
	s.log.Info("case accessioned",
		zap.String("case", newCase.ID),
		zap.String("accession", newCase.AccessionNumber))

	if assigned != nil && assigned.ID == user.ID {
		s.notifier.Show(fmt.Sprintf("You have been assigned a new case: %s", newCase.AccessionNumber), models.NotifyInfo)
	}
	return newCase, true
}

// ArchiveCase flags a case as archived. Idempotent.
func (s *CaseStore) ArchiveCase(caseID string) {
	s.replaceCase(caseID, func(c models.Case) models.Case {
		c.IsArchived = true
		return c
	})
}

// UnarchiveCase clears the archived flag. Idempotent.
func (s *CaseStore) UnarchiveCase(caseID string) {
	s.replaceCase(caseID, func(c models.Case) models.Case {
		c.IsArchived = false
		return c
	})
}

// UpdateImageURL replaces the slide image reference.
func (s *CaseStore) UpdateImageURL(caseID, imageURL string) {
	s.replaceCase(caseID, func(c models.Case) models.Case {
		c.SlideImageURL = imageURL
		return c
	})
}

// UpdateStatus moves a case to a new workflow status.
func (s *CaseStore) UpdateStatus(caseID string, status models.CaseStatus) {
	s.replaceCase(caseID, func(c models.Case) models.Case {
		c.Status = status
		return c
	})
}

// UpdateAssignment replaces the assignee. When the assignment changes and
// the new assignee is the acting user, a notification is emitted.
func (s *CaseStore) UpdateAssignment(caseID, userID string) {
	var assigned *models.User
	if userID != "" {
		if u, err := s.auth.UserByID(userID); err == nil {
			assigned = &u
		}
	}

	var previousID string
	var found bool
	s.replaceCase(caseID, func(c models.Case) models.Case {
		found = true
		if c.AssignedTo != nil {
			previousID = c.AssignedTo.ID
		}
		c.AssignedTo = assigned
		return c
	})

	if !found || previousID == userID {
		return
	}

	current := s.auth.CurrentUser()
	if current != nil && assigned != nil && current.ID == assigned.ID {
		if c, ok := s.CaseByID(caseID); ok {
			s.notifier.Show(fmt.Sprintf("You have been assigned case: %s", c.AccessionNumber), models.NotifyInfo)
		}
	}
}

// AddAnalysisToHistory prepends an analysis run, newest first.
func (s *CaseStore) AddAnalysisToHistory(caseID string, item models.AnalysisHistoryItem) {
	s.replaceCase(caseID, func(c models.Case) models.Case {
		history := make([]models.AnalysisHistoryItem, 0, len(c.AnalysisHistory)+1)
		history = append(history, item)
		history = append(history, c.AnalysisHistory...)
		c.AnalysisHistory = history
		return c
	})
}

// AddAnalysisFeedback merges feedback into the matching history entry only.
func (s *CaseStore) AddAnalysisFeedback(caseID, historyItemID string, feedback models.AnalysisFeedback) {
	s.replaceCase(caseID, func(c models.Case) models.Case {
		history := slices.Clone(c.AnalysisHistory)
		for i := range history {
			if history[i].ID == historyItemID {
				fb := feedback
				history[i].Feedback = &fb
			}
		}
		c.AnalysisHistory = history
		return c
	})
}

// UpdateAnnotations replaces a case's annotation list wholesale.
func (s *CaseStore) UpdateAnnotations(caseID string, annotations models.AnnotationList) {
	s.replaceCase(caseID, func(c models.Case) models.Case {
		c.Annotations = annotations
		return c
	})
}

// replaceCase swaps the matching case for fn's result within a new slice.
func (s *CaseStore) replaceCase(caseID string, fn func(models.Case) models.Case) {
	s.cases.Update(func(cases []models.Case) []models.Case {
		out := slices.Clone(cases)
		for i := range out {
			if out[i].ID == caseID {
				out[i] = fn(out[i])
			}
		}
		return out
	})
}

// SubscribeCases registers fn to run on every collection change.
func (s *CaseStore) SubscribeCases(fn func([]models.Case)) func() {
	return s.cases.Subscribe(fn)
}

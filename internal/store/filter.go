package store

import (
	"sort"
	"strings"

	"pathology-case-server/internal/models"
)

// FilterCases applies every present predicate conjunctively. Substring
// predicates match case-insensitively. Archived cases are excluded unless
// ShowArchived is set. The input slice is never mutated.
func FilterCases(cases []models.Case, f models.CaseFilters) []models.Case {
	out := make([]models.Case, 0, len(cases))
	for _, c := range cases {
		if f.Status != "" && c.Status != f.Status {
			continue
		}
		if f.Priority != "" && c.Priority != f.Priority {
			continue
		}
		if f.PatientName != "" && !containsFold(c.Patient.Name, f.PatientName) {
			continue
		}
		if f.AccessionNumber != "" && !containsFold(c.AccessionNumber, f.AccessionNumber) {
			continue
		}
		if f.AssignedToID != "" && (c.AssignedTo == nil || c.AssignedTo.ID != f.AssignedToID) {
			continue
		}
		if f.AssignedToName != "" && (c.AssignedTo == nil || !containsFold(c.AssignedTo.Name, f.AssignedToName)) {
			continue
		}
		if f.IsTrainingCase != nil && c.IsTrainingCase != *f.IsTrainingCase {
			continue
		}
		if !f.ShowArchived && c.IsArchived {
			continue
		}
		out = append(out, c)
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// SortCases returns a stably sorted copy of cases. Unassigned cases always
// sort after assigned ones on the assignee column, regardless of direction.
func SortCases(cases []models.Case, spec models.CaseSort) []models.Case {
	out := make([]models.Case, len(cases))
	copy(out, cases)

	desc := spec.Direction == models.SortDesc
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]

		if spec.Column == models.SortByAssignedTo {
			// Presence ranks before name and ignores direction.
			aAssigned, bAssigned := a.AssignedTo != nil, b.AssignedTo != nil
			if aAssigned != bAssigned {
				return aAssigned
			}
			if !aAssigned {
				return false
			}
			cmp := strings.Compare(a.AssignedTo.Name, b.AssignedTo.Name)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		}

		var cmp int
		switch spec.Column {
		case models.SortByPatient:
			cmp = strings.Compare(a.Patient.Name, b.Patient.Name)
		case models.SortByAccessionNumber:
			cmp = strings.Compare(a.AccessionNumber, b.AccessionNumber)
		case models.SortByDateReceived:
			cmp = a.DateReceived.Compare(b.DateReceived)
		case models.SortByStatus:
			cmp = strings.Compare(string(a.Status), string(b.Status))
		case models.SortByPriority:
			cmp = strings.Compare(string(a.Priority), string(b.Priority))
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	return out
}

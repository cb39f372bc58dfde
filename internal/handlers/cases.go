package handlers

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"pathology-case-server/internal/ai"
	"pathology-case-server/internal/metrics"
	"pathology-case-server/internal/middleware"
	"pathology-case-server/internal/models"
	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

// analysisFeedbackPoints is awarded for rating an AI analysis run.
const analysisFeedbackPoints = 2

// CaseHandler handles the case workflow endpoints.
type CaseHandler struct {
	log      *zap.Logger
	cases    *store.CaseStore
	auth     *store.AuthStore
	ai       *ai.Client
	errors   *store.ErrorLogStore
	activity *store.ActivityStore
}

func NewCaseHandler(log *zap.Logger, cases *store.CaseStore, auth *store.AuthStore, aiClient *ai.Client, errors *store.ErrorLogStore, activity *store.ActivityStore) *CaseHandler {
	return &CaseHandler{log: log, cases: cases, auth: auth, ai: aiClient, errors: errors, activity: activity}
}

type createCaseRequest struct {
	PatientName     string              `json:"patientName" validate:"required,min=2,max=100"`
	PatientDOB      string              `json:"patientDob" validate:"required"`
	PatientGender   models.Gender       `json:"patientGender" validate:"required,oneof=Male Female Other"`
	PatientMRN      string              `json:"patientMrn" validate:"required"`
	AccessionNumber string              `json:"accessionNumber" validate:"required"`
	Priority        models.CasePriority `json:"priority" validate:"required,oneof=Routine STAT"`
	AssignedToID    string              `json:"assignedToId"`
	ClinicalHistory string              `json:"clinicalHistory"`
}

type updateStatusRequest struct {
	Status models.CaseStatus `json:"status" validate:"required"`
}

type updateAssigneeRequest struct {
	UserID string `json:"userId"`
}

type updateImageRequest struct {
	ImageURL string `json:"imageUrl" validate:"required"`
}

type sortRequest struct {
	Column models.SortColumn `json:"column" validate:"required,oneof=accession_number patient date_received status priority assigned_to"`
}

type runAnalysisRequest struct {
	PresetID string `json:"presetId"`
	Prompt   string `json:"prompt"`
	Image    string `json:"image" validate:"required"`
}

type analysisFeedbackRequest struct {
	Rating  models.AnalysisRating `json:"rating" validate:"required,oneof=good bad"`
	Comment string                `json:"comment"`
}

// ListCases returns the filtered and sorted view. Query parameters, when
// present, describe an ad-hoc view computed for this request only; the
// shared filter specification changes through PUT /cases/filters alone.
func (h *CaseHandler) ListCases(c *gin.Context) {
	filters := h.cases.Filters()
	if hasFilterParams(c) {
		filters = filtersFromQuery(c)
	}
	utils.Success(c, gin.H{
		"cases":   h.cases.View(filters),
		"filters": filters,
		"sort":    h.cases.Sort(),
	})
}

func hasFilterParams(c *gin.Context) bool {
	for _, key := range []string{"status", "priority", "patientName", "accessionNumber", "assignedToId", "assignedTo", "isTrainingCase", "showArchived"} {
		if _, ok := c.GetQuery(key); ok {
			return true
		}
	}
	return false
}

func filtersFromQuery(c *gin.Context) models.CaseFilters {
	f := models.CaseFilters{
		Status:          models.CaseStatus(c.Query("status")),
		Priority:        models.CasePriority(c.Query("priority")),
		PatientName:     c.Query("patientName"),
		AccessionNumber: c.Query("accessionNumber"),
		AssignedToID:    c.Query("assignedToId"),
		AssignedToName:  c.Query("assignedTo"),
	}
	if v, ok := c.GetQuery("isTrainingCase"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			f.IsTrainingCase = &b
		}
	}
	if v, ok := c.GetQuery("showArchived"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			f.ShowArchived = b
		}
	}
	return f
}

// GetCase returns one case by id.
func (h *CaseHandler) GetCase(c *gin.Context) {
	found, ok := h.cases.CaseByID(c.Param("id"))
	if !ok {
		utils.NotFound(c, "Case not found")
		return
	}
	utils.Success(c, found)
}

// CreateCase accessions a new case.
func (h *CaseHandler) CreateCase(c *gin.Context) {
	var req createCaseRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	newCase, ok := h.cases.AddCase(store.NewCaseData{
		PatientName:     req.PatientName,
		PatientDOB:      req.PatientDOB,
		PatientGender:   req.PatientGender,
		PatientMRN:      req.PatientMRN,
		AccessionNumber: req.AccessionNumber,
		Priority:        req.Priority,
		AssignedToID:    req.AssignedToID,
		ClinicalHistory: req.ClinicalHistory,
	})
	if !ok {
		utils.Unauthorized(c, "No active session")
		return
	}

	metrics.CaseMutations.WithLabelValues("create").Inc()
	h.activity.Log(models.ActivityCaseNew, fmt.Sprintf("Case %s was accessioned", newCase.AccessionNumber))
	utils.Created(c, newCase)
}

// ApplyFilters replaces the active filter specification.
func (h *CaseHandler) ApplyFilters(c *gin.Context) {
	var filters models.CaseFilters
	if err := c.ShouldBindJSON(&filters); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	h.cases.ApplyFilters(filters)
	utils.Success(c, h.cases.Cases())
}

// ClearFilters resets all filter predicates.
func (h *CaseHandler) ClearFilters(c *gin.Context) {
	h.cases.ClearFilters()
	utils.Success(c, h.cases.Cases())
}

// SetSort selects the sort column, toggling direction on re-selection.
func (h *CaseHandler) SetSort(c *gin.Context) {
	var req sortRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}
	h.cases.SetSort(req.Column)
	utils.Success(c, gin.H{
		"sort":  h.cases.Sort(),
		"cases": h.cases.Cases(),
	})
}

// SelectCase marks a case as the active detail view.
func (h *CaseHandler) SelectCase(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.cases.CaseByID(id); !ok {
		utils.NotFound(c, "Case not found")
		return
	}
	h.cases.SelectCase(id)
	utils.Success(c, gin.H{"selected": id})
}

// ClearSelection resets the active detail view.
func (h *CaseHandler) ClearSelection(c *gin.Context) {
	h.cases.ClearSelection()
	utils.NoContent(c)
}

// ArchiveCase hides a case from default views.
func (h *CaseHandler) ArchiveCase(c *gin.Context) {
	h.mutateCase(c, "archive", h.cases.ArchiveCase)
}

// UnarchiveCase restores an archived case.
func (h *CaseHandler) UnarchiveCase(c *gin.Context) {
	h.mutateCase(c, "unarchive", h.cases.UnarchiveCase)
}

func (h *CaseHandler) mutateCase(c *gin.Context, operation string, fn func(string)) {
	id := c.Param("id")
	if _, ok := h.cases.CaseByID(id); !ok {
		utils.NotFound(c, "Case not found")
		return
	}

	fn(id)
	metrics.CaseMutations.WithLabelValues(operation).Inc()

	updated, _ := h.cases.CaseByID(id)
	utils.Success(c, updated)
}

// UpdateStatus moves a case to a new workflow status.
func (h *CaseHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}
	if !validStatus(req.Status) {
		utils.BadRequest(c, "Unknown case status")
		return
	}

	h.mutateCase(c, "status", func(id string) {
		h.cases.UpdateStatus(id, req.Status)
	})
}

func validStatus(status models.CaseStatus) bool {
	for _, s := range models.CaseStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// UpdateAssignee replaces a case's assignee. An empty userId unassigns.
func (h *CaseHandler) UpdateAssignee(c *gin.Context) {
	var req updateAssigneeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	h.mutateCase(c, "assign", func(id string) {
		h.cases.UpdateAssignment(id, req.UserID)
	})
}

// UpdateImage replaces the slide image reference.
func (h *CaseHandler) UpdateImage(c *gin.Context) {
	var req updateImageRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	h.mutateCase(c, "image", func(id string) {
		h.cases.UpdateImageURL(id, req.ImageURL)
	})
}

// ReplaceAnnotations swaps a case's annotation list wholesale.
func (h *CaseHandler) ReplaceAnnotations(c *gin.Context) {
	var annotations models.AnnotationList
	if err := c.ShouldBindJSON(&annotations); err != nil {
		utils.BadRequest(c, "Invalid annotation payload: "+err.Error())
		return
	}

	h.mutateCase(c, "annotate", func(id string) {
		h.cases.UpdateAnnotations(id, annotations)
	})
}

// ClearAnnotations removes every annotation from a case.
func (h *CaseHandler) ClearAnnotations(c *gin.Context) {
	h.mutateCase(c, "annotate", func(id string) {
		h.cases.UpdateAnnotations(id, models.AnnotationList{})
	})
}

// ListPresets returns the available analysis presets.
func (h *CaseHandler) ListPresets(c *gin.Context) {
	utils.Success(c, ai.Presets())
}

// RunAnalysis executes an AI analysis against a slide image and records the
// run in the case's history. Failures are captured in the error log and the
// reference id is returned to the client.
func (h *CaseHandler) RunAnalysis(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.cases.CaseByID(id); !ok {
		utils.NotFound(c, "Case not found")
		return
	}

	var req runAnalysisRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	name := "Custom Analysis"
	prompt := req.Prompt
	if req.PresetID != "" {
		preset, ok := ai.PresetByID(req.PresetID)
		if !ok {
			utils.BadRequest(c, "Unknown analysis preset")
			return
		}
		name = preset.Name
		prompt = preset.Prompt
	}
	if prompt == "" {
		utils.BadRequest(c, "Either presetId or prompt is required")
		return
	}

	image, mimeType, err := decodeImage(req.Image)
	if err != nil {
		utils.BadRequest(c, "Invalid image payload")
		return
	}

	result, err := h.ai.AnalyzeSlide(c.Request.Context(), image, mimeType, prompt)
	if err != nil {
		refID := h.errors.LogError(err, fmt.Sprintf("analysis of case %s", id))
		utils.InternalServerError(c, fmt.Sprintf("Analysis failed. Reference ID: %s", refID))
		return
	}

	item := models.AnalysisHistoryItem{
		ID:           uuid.New().String(),
		Date:         time.Now(),
		AnalysisName: name,
		Prompt:       prompt,
		Result:       result,
	}
	h.cases.AddAnalysisToHistory(id, item)
	metrics.CaseMutations.WithLabelValues("analysis").Inc()

	utils.Success(c, item)
}

// decodeImage accepts either a data URI or a bare base64 string.
func decodeImage(input string) ([]byte, string, error) {
	mimeType := "image/jpeg"
	payload := input

	if strings.HasPrefix(input, "data:") {
		rest, found := strings.CutPrefix(input, "data:")
		if !found {
			return nil, "", fmt.Errorf("malformed data uri")
		}
		meta, data, ok := strings.Cut(rest, ",")
		if !ok {
			return nil, "", fmt.Errorf("malformed data uri")
		}
		if mt, _, _ := strings.Cut(meta, ";"); mt != "" {
			mimeType = mt
		}
		payload = data
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return decoded, mimeType, nil
}

// AnalysisFeedback rates a past analysis run and awards the reviewer points.
func (h *CaseHandler) AnalysisFeedback(c *gin.Context) {
	id := c.Param("id")
	itemID := c.Param("itemId")

	found, ok := h.cases.CaseByID(id)
	if !ok {
		utils.NotFound(c, "Case not found")
		return
	}
	if !hasHistoryItem(found, itemID) {
		utils.NotFound(c, "Analysis run not found")
		return
	}

	var req analysisFeedbackRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	h.cases.AddAnalysisFeedback(id, itemID, models.AnalysisFeedback{
		Rating:      req.Rating,
		Comment:     req.Comment,
		SubmittedBy: userID,
		SubmittedAt: time.Now(),
	})
	h.auth.AddPoints(userID, analysisFeedbackPoints)
	metrics.CaseMutations.WithLabelValues("analysis_feedback").Inc()

	updated, _ := h.cases.CaseByID(id)
	utils.Success(c, updated)
}

func hasHistoryItem(c models.Case, itemID string) bool {
	for _, item := range c.AnalysisHistory {
		if item.ID == itemID {
			return true
		}
	}
	return false
}

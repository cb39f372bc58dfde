package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathology-case-server/internal/models"
	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

// AdminHandler handles platform administration endpoints: integrations,
// the model registry, experiments, release notes, courses, activity and
// system settings.
type AdminHandler struct {
	log          *zap.Logger
	integrations *store.IntegrationStore
	aiModels     *store.ModelStore
	experiments  *store.MlflowStore
	changelog    *store.ChangelogStore
	courses      *store.CourseStore
	activity     *store.ActivityStore
	settings     *store.SettingsStore
	errors       *store.ErrorLogStore
}

func NewAdminHandler(
	log *zap.Logger,
	integrations *store.IntegrationStore,
	aiModels *store.ModelStore,
	experiments *store.MlflowStore,
	changelog *store.ChangelogStore,
	courses *store.CourseStore,
	activity *store.ActivityStore,
	settings *store.SettingsStore,
	errors *store.ErrorLogStore,
) *AdminHandler {
	return &AdminHandler{
		log:          log,
		integrations: integrations,
		aiModels:     aiModels,
		experiments:  experiments,
		changelog:    changelog,
		courses:      courses,
		activity:     activity,
		settings:     settings,
		errors:       errors,
	}
}

type createCourseRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"required,max=500"`
}

type assignStudentRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// ListIntegrations returns all external system connections.
func (h *AdminHandler) ListIntegrations(c *gin.Context) {
	utils.Success(c, h.integrations.Integrations())
}

// ListModels returns the deployed-model registry.
func (h *AdminHandler) ListModels(c *gin.Context) {
	utils.Success(c, h.aiModels.Models())
}

// RollbackModel promotes an archived model back to production. The current
// production model is archived in the same step.
func (h *AdminHandler) RollbackModel(c *gin.Context) {
	id := c.Param("id")
	h.aiModels.Rollback(id)
	h.activity.Log(models.ActivitySystemUpdate, fmt.Sprintf("Model %s promoted to production", id))
	utils.Success(c, h.aiModels.Models())
}

// ListExperiments returns the tracked training runs.
func (h *AdminHandler) ListExperiments(c *gin.Context) {
	utils.Success(c, h.experiments.Experiments())
}

// ListChangelog returns the published release notes.
func (h *AdminHandler) ListChangelog(c *gin.Context) {
	utils.Success(c, h.changelog.Items())
}

// ListCourses returns all courses.
func (h *AdminHandler) ListCourses(c *gin.Context) {
	utils.Success(c, h.courses.Courses())
}

// CreateCourse adds a course.
func (h *AdminHandler) CreateCourse(c *gin.Context) {
	var req createCourseRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}
	utils.Created(c, h.courses.AddCourse(req.Title, req.Description))
}

// AssignStudent enrolls a student in a course. Enrolling twice is a no-op.
func (h *AdminHandler) AssignStudent(c *gin.Context) {
	var req assignStudentRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}
	h.courses.AssignStudent(c.Param("id"), req.UserID)
	utils.Success(c, h.courses.Courses())
}

// ListActivity returns the recent-activity feed, newest first.
func (h *AdminHandler) ListActivity(c *gin.Context) {
	utils.Success(c, h.activity.Activities())
}

// GetSettings returns the global system settings.
func (h *AdminHandler) GetSettings(c *gin.Context) {
	utils.Success(c, h.settings.Settings())
}

// UpdateSettings applies a partial settings update. Absent fields keep
// their current values.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	var patch store.SettingsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	updated := h.settings.Update(patch)
	h.activity.Log(models.ActivitySystemUpdate, "System settings were updated")
	utils.Success(c, updated)
}

// ListErrors returns captured failures for administrator review.
func (h *AdminHandler) ListErrors(c *gin.Context) {
	utils.Success(c, h.errors.Errors())
}

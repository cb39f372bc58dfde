package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathology-case-server/internal/models"
	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

// FeedbackHandler handles feedback submission and review endpoints.
type FeedbackHandler struct {
	log      *zap.Logger
	feedback *store.FeedbackStore
	activity *store.ActivityStore
}

func NewFeedbackHandler(log *zap.Logger, feedback *store.FeedbackStore, activity *store.ActivityStore) *FeedbackHandler {
	return &FeedbackHandler{log: log, feedback: feedback, activity: activity}
}

type createFeedbackRequest struct {
	Type        models.FeedbackType        `json:"type" validate:"required,oneof=Bug Suggestion Error Question"`
	Title       string                     `json:"title" validate:"required,min=3,max=200"`
	Description string                     `json:"description" validate:"required,min=3"`
	Attachment  *models.FeedbackAttachment `json:"attachment"`
}

type reviewFeedbackRequest struct {
	Accept     bool                    `json:"accept"`
	Priority   models.FeedbackPriority `json:"priority" validate:"omitempty,oneof=Critical High Medium Low"`
	Comment    string                  `json:"comment"`
	TargetDate string                  `json:"targetDate"`
}

type feedbackStatusRequest struct {
	Status models.FeedbackStatus `json:"status" validate:"required,oneof=New 'In Progress' Resolved Closed"`
}

// ListFeedback returns all submissions together with the untriaged count.
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	utils.Success(c, gin.H{
		"feedback": h.feedback.Feedback(),
		"newCount": h.feedback.NewCount(),
	})
}

// CreateFeedback records a submission and awards submission points.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req createFeedbackRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	fb, ok := h.feedback.AddFeedback(store.NewFeedbackData{
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Attachment:  req.Attachment,
	})
	if !ok {
		utils.Unauthorized(c, "No active session")
		return
	}

	h.activity.Log(models.ActivityFeedbackNew, fmt.Sprintf("New feedback submitted: '%s'", fb.Title))
	utils.Created(c, fb)
}

// ReviewFeedback applies an admin triage decision.
func (h *FeedbackHandler) ReviewFeedback(c *gin.Context) {
	var req reviewFeedbackRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	id := c.Param("id")
	if !h.exists(id) {
		utils.NotFound(c, "Feedback not found")
		return
	}

	h.feedback.ReviewFeedback(id, req.Accept, store.ReviewFeedbackData{
		Priority:   req.Priority,
		Comment:    req.Comment,
		TargetDate: req.TargetDate,
	})
	utils.Success(c, h.find(id))
}

// UpdateFeedbackStatus transitions a feedback item through the workflow.
func (h *FeedbackHandler) UpdateFeedbackStatus(c *gin.Context) {
	var req feedbackStatusRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	id := c.Param("id")
	if !h.exists(id) {
		utils.NotFound(c, "Feedback not found")
		return
	}

	h.feedback.UpdateStatus(id, req.Status)
	utils.Success(c, h.find(id))
}

func (h *FeedbackHandler) exists(id string) bool {
	for _, fb := range h.feedback.Feedback() {
		if fb.ID == id {
			return true
		}
	}
	return false
}

func (h *FeedbackHandler) find(id string) models.Feedback {
	for _, fb := range h.feedback.Feedback() {
		if fb.ID == id {
			return fb
		}
	}
	return models.Feedback{}
}

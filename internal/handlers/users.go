package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathology-case-server/internal/models"
	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

// UserHandler handles user roster management endpoints.
type UserHandler struct {
	log      *zap.Logger
	auth     *store.AuthStore
	feedback *store.FeedbackStore
	activity *store.ActivityStore
}

func NewUserHandler(log *zap.Logger, auth *store.AuthStore, feedback *store.FeedbackStore, activity *store.ActivityStore) *UserHandler {
	return &UserHandler{log: log, auth: auth, feedback: feedback, activity: activity}
}

type createUserRequest struct {
	Name     string          `json:"name" validate:"required,min=2,max=100"`
	Role     models.RoleName `json:"role" validate:"required"`
	TenantID *string         `json:"tenantId"`
	Password string          `json:"password" validate:"omitempty,min=6"`
}

type updateUserNameRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// ListUsers returns the roster, optionally narrowed to one role.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users := h.auth.AllUsers()

	if role := c.Query("role"); role != "" {
		filtered := make([]models.User, 0, len(users))
		for _, u := range users {
			if u.Role == models.RoleName(role) {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	utils.Success(c, users)
}

// GetUser returns one user by id.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.auth.UserByID(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "User not found")
		return
	}
	utils.Success(c, user)
}

// CreateUser adds a user to the roster.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	user, err := h.auth.AddUser(store.NewUserData{
		Name:     req.Name,
		Role:     req.Role,
		TenantID: req.TenantID,
		Password: req.Password,
	})
	if err != nil {
		h.log.Error("failed to create user", zap.Error(err))
		utils.InternalServerError(c, "Failed to create user")
		return
	}

	h.activity.Log(models.ActivityUserAdded, fmt.Sprintf("New user '%s' was added", user.Name))
	utils.Created(c, user)
}

// UpdateUserName renames a user.
func (h *UserHandler) UpdateUserName(c *gin.Context) {
	var req updateUserNameRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	id := c.Param("id")
	if _, err := h.auth.UserByID(id); err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	h.auth.UpdateUserName(id, req.Name)
	user, err := h.auth.UserByID(id)
	if err != nil {
		utils.NotFound(c, "User not found")
		return
	}
	utils.Success(c, user)
}

// Leaderboard returns the roster ordered by feedback points.
func (h *UserHandler) Leaderboard(c *gin.Context) {
	utils.Success(c, h.feedback.Leaderboard())
}

package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathology-case-server/internal/config"
	"pathology-case-server/internal/middleware"
	"pathology-case-server/internal/models"
	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

// AuthHandler handles login, logout and profile endpoints.
type AuthHandler struct {
	log  *zap.Logger
	cfg  *config.Config
	auth *store.AuthStore
}

func NewAuthHandler(log *zap.Logger, cfg *config.Config, auth *store.AuthStore) *AuthHandler {
	return &AuthHandler{log: log, cfg: cfg, auth: auth}
}

type loginRequest struct {
	UserID   string `json:"userId" validate:"required"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// Login authenticates a user and issues a token pair. The selected user
// becomes the acting user for all subsequent store operations.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	user, err := h.auth.Login(req.UserID, req.Password)
	if err != nil {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	tokens, err := utils.GenerateTokens(&user,
		h.cfg.JWTSecret, h.cfg.JWTRefreshSecret,
		time.Duration(h.cfg.JWTExpirationMinutes)*time.Minute,
		time.Duration(h.cfg.JWTRefreshExpirationHours)*time.Hour)
	if err != nil {
		h.log.Error("failed to generate tokens", zap.Error(err))
		utils.InternalServerError(c, "Failed to generate tokens")
		return
	}

	utils.Success(c, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Logout clears the acting user.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.auth.Logout()
	utils.Success(c, gin.H{"message": "Logged out"})
}

// Profile returns the authenticated user's record.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.auth.UserByID(userID)
	if err != nil {
		utils.NotFound(c, "User not found")
		return
	}

	utils.Success(c, user)
}

// UpdateProfile renames the authenticated user.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	var req updateProfileRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	h.auth.UpdateUserName(userID, req.Name)

	user, err := h.auth.UserByID(userID)
	if err != nil {
		utils.NotFound(c, "User not found")
		return
	}
	utils.Success(c, user)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.cfg.JWTRefreshSecret)
	if err != nil {
		utils.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	user, err := h.auth.UserByID(claims.UserID)
	if err != nil {
		utils.Unauthorized(c, "User no longer exists")
		return
	}

	tokens, err := utils.GenerateTokens(&user,
		h.cfg.JWTSecret, h.cfg.JWTRefreshSecret,
		time.Duration(h.cfg.JWTExpirationMinutes)*time.Minute,
		time.Duration(h.cfg.JWTRefreshExpirationHours)*time.Hour)
	if err != nil {
		h.log.Error("failed to generate tokens", zap.Error(err))
		utils.InternalServerError(c, "Failed to generate tokens")
		return
	}

	utils.Success(c, tokens)
}

// Permissions lists the effective permission set for the authenticated
// user's role.
func (h *AuthHandler) Permissions(roles *store.RoleStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleName, ok := middleware.GetUserRoleFromContext(c)
		if !ok {
			utils.Unauthorized(c, "Authentication required")
			return
		}

		role, found := roles.RoleByName(roleName)
		if !found {
			utils.Success(c, []models.Permission{})
			return
		}
		utils.Success(c, role.Permissions)
	}
}

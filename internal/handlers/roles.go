package handlers

import (
	"github.com/gin-gonic/gin"

	"pathology-case-server/internal/models"
	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

// RoleHandler handles role and permission management endpoints.
type RoleHandler struct {
	roles *store.RoleStore
}

func NewRoleHandler(roles *store.RoleStore) *RoleHandler {
	return &RoleHandler{roles: roles}
}

type roleRequest struct {
	Name        models.RoleName     `json:"name" validate:"required,min=2,max=50"`
	Description string              `json:"description" validate:"required,max=300"`
	Permissions []models.Permission `json:"permissions" validate:"required"`
}

// ListRoles returns all role definitions.
func (h *RoleHandler) ListRoles(c *gin.Context) {
	utils.Success(c, h.roles.Roles())
}

// ListPermissions returns the full permission catalog.
func (h *RoleHandler) ListPermissions(c *gin.Context) {
	utils.Success(c, h.roles.Permissions())
}

// CreateRole adds a role definition.
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req roleRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	role := h.roles.AddRole(models.Role{
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	})
	utils.Created(c, role)
}

// UpdateRole replaces a role definition.
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	var req roleRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	id := c.Param("id")
	if !h.roleExists(id) {
		utils.NotFound(c, "Role not found")
		return
	}

	updated := models.Role{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Permissions: req.Permissions,
	}
	h.roles.UpdateRole(updated)
	utils.Success(c, updated)
}

// DeleteRole removes a role definition.
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	id := c.Param("id")
	if !h.roleExists(id) {
		utils.NotFound(c, "Role not found")
		return
	}
	h.roles.DeleteRole(id)
	utils.NoContent(c)
}

func (h *RoleHandler) roleExists(id string) bool {
	for _, r := range h.roles.Roles() {
		if r.ID == id {
			return true
		}
	}
	return false
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"pathology-case-server/internal/models"
	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

// TenantHandler handles tenant management endpoints.
type TenantHandler struct {
	tenants      *store.TenantStore
	integrations *store.IntegrationStore
}

func NewTenantHandler(tenants *store.TenantStore, integrations *store.IntegrationStore) *TenantHandler {
	return &TenantHandler{tenants: tenants, integrations: integrations}
}

type createTenantRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type updateTenantRequest struct {
	Name   string              `json:"name" validate:"required,min=2,max=100"`
	Status models.TenantStatus `json:"status" validate:"required,oneof=Active Suspended"`
}

// ListTenants returns all tenants.
func (h *TenantHandler) ListTenants(c *gin.Context) {
	utils.Success(c, h.tenants.Tenants())
}

// CreateTenant registers a new tenant.
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req createTenantRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	tenant, ok := h.tenants.AddTenant(req.Name)
	if !ok {
		utils.BadRequest(c, "Tenant name must not be blank")
		return
	}
	utils.Created(c, tenant)
}

// UpdateTenant renames a tenant or changes its status.
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	var req updateTenantRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	id := c.Param("id")
	if !h.tenantExists(id) {
		utils.NotFound(c, "Tenant not found")
		return
	}

	h.tenants.UpdateTenant(models.Tenant{ID: id, Name: req.Name, Status: req.Status})
	utils.Success(c, models.Tenant{ID: id, Name: req.Name, Status: req.Status})
}

// DeleteTenant removes a tenant.
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	id := c.Param("id")
	if !h.tenantExists(id) {
		utils.NotFound(c, "Tenant not found")
		return
	}
	h.tenants.DeleteTenant(id)
	utils.NoContent(c)
}

// TenantIntegrations lists the external connections for one tenant.
func (h *TenantHandler) TenantIntegrations(c *gin.Context) {
	id := c.Param("id")
	for _, t := range h.tenants.Tenants() {
		if t.ID == id {
			utils.Success(c, h.integrations.TenantIntegrations(t.Name))
			return
		}
	}
	utils.NotFound(c, "Tenant not found")
}

func (h *TenantHandler) tenantExists(id string) bool {
	for _, t := range h.tenants.Tenants() {
		if t.ID == id {
			return true
		}
	}
	return false
}

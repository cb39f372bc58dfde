package handlers

import (
	"github.com/gin-gonic/gin"

	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

// StatsHandler handles quality reporting endpoints.
type StatsHandler struct {
	stats         *store.StatsStore
	notifications *store.NotificationStore
}

func NewStatsHandler(stats *store.StatsStore, notifications *store.NotificationStore) *StatsHandler {
	return &StatsHandler{stats: stats, notifications: notifications}
}

// QAMetrics returns the acting user's quality metrics.
func (h *StatsHandler) QAMetrics(c *gin.Context) {
	utils.Success(c, h.stats.QAMetrics())
}

// AuditTrail returns the diagnosis concordance report for the acting
// user's tenant.
func (h *StatsHandler) AuditTrail(c *gin.Context) {
	utils.Success(c, h.stats.DiagnosisAuditTrail())
}

// CurrentNotification returns the pending transient notification, if any.
func (h *StatsHandler) CurrentNotification(c *gin.Context) {
	utils.Success(c, h.notifications.Current())
}

// DismissNotification clears the pending notification.
func (h *StatsHandler) DismissNotification(c *gin.Context) {
	h.notifications.Hide()
	utils.NoContent(c)
}

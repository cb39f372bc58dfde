package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pathology-case-server/internal/ai"
	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

// SearchHandler translates natural-language queries into case filters.
type SearchHandler struct {
	log   *zap.Logger
	ai    *ai.Client
	auth  *store.AuthStore
	cases *store.CaseStore
}

func NewSearchHandler(log *zap.Logger, aiClient *ai.Client, auth *store.AuthStore, cases *store.CaseStore) *SearchHandler {
	return &SearchHandler{log: log, ai: aiClient, auth: auth, cases: cases}
}

type searchRequest struct {
	Query string `json:"query" validate:"required,min=1,max=500"`
}

// Search parses the query into a filter specification, applies it as the
// active filter set and returns the resulting view. When the parser names an
// assignee, the name is resolved against the roster so the id-based filter
// matches exactly.
func (h *SearchHandler) Search(c *gin.Context) {
	var req searchRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	filters := h.ai.ParseQuery(c.Request.Context(), req.Query)

	if filters.AssignedToName != "" && filters.AssignedToID == "" {
		for _, u := range h.auth.AllUsers() {
			if strings.EqualFold(u.Name, filters.AssignedToName) {
				filters.AssignedToID = u.ID
				filters.AssignedToName = ""
				break
			}
		}
	}

	h.cases.ApplyFilters(filters)
	utils.Success(c, gin.H{
		"filters": filters,
		"cases":   h.cases.Cases(),
	})
}

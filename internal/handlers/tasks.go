package handlers

import (
	"github.com/gin-gonic/gin"

	"pathology-case-server/internal/store"
	"pathology-case-server/internal/utils"
)

// TaskHandler handles personal task list endpoints.
type TaskHandler struct {
	tasks *store.TaskStore
}

func NewTaskHandler(tasks *store.TaskStore) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type createTaskRequest struct {
	Text   string `json:"text" validate:"required,min=1,max=300"`
	CaseID string `json:"caseId"`
}

// ListTasks returns the acting user's tasks, newest first.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	utils.Success(c, h.tasks.UserTasks())
}

// CreateTask adds a task for the acting user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if msg := utils.BindAndValidate(c, &req); msg != "" {
		utils.BadRequest(c, msg)
		return
	}

	task, ok := h.tasks.AddTask(req.Text, req.CaseID)
	if !ok {
		utils.Unauthorized(c, "No active session")
		return
	}
	utils.Created(c, task)
}

// ToggleTask flips a task's completion flag.
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	h.tasks.ToggleTask(c.Param("id"))
	utils.Success(c, h.tasks.UserTasks())
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	h.tasks.DeleteTask(c.Param("id"))
	utils.NoContent(c)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/dto"
	apierrors "tasktracker/internal/errors"
	"tasktracker/internal/middleware"
	"tasktracker/internal/models"
	"tasktracker/internal/policy"
	"tasktracker/internal/repository"
	"tasktracker/internal/services"
)

// TaskHandler coordinates task management endpoints. The whole surface is
// restricted to admins and the superadmin.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// List returns tasks newest-first. Supports `status` for an exact match and
// `search` for a substring match over the status field.
func (h *TaskHandler) List(c *gin.Context) {
	if !h.requireManager(c) {
		return
	}

	var filter repository.TaskFilter
	if statusParam := c.Query("status"); statusParam != "" {
		status := models.TaskStatus(statusParam)
		filter.Status = &status
	}
	filter.Search = c.Query("search")

	tasks, err := h.taskService.List(filter)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// Create persists a new task for an employee.
func (h *TaskHandler) Create(c *gin.Context) {
	if !h.requireManager(c) {
		return
	}

	type CreateTaskRequest struct {
		EmployeeID  uint64            `json:"employee_id" binding:"required"`
		Description string            `json:"description"`
		Status      models.TaskStatus `json:"status"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.Create(services.CreateTaskInput{
		EmployeeID:  req.EmployeeID,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// Get returns one task.
func (h *TaskHandler) Get(c *gin.Context) {
	if !h.requireManager(c) {
		return
	}

	id, err := parseID(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.Get(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// Update applies a partial update and records one edit-log entry holding
// the task's pre-update description and status. The entry is written on
// every call, including updates that change nothing.
func (h *TaskHandler) Update(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if ok, reason := policy.CanManageTasks(actor); !ok {
		apierrors.Forbidden(c, reason)
		return
	}

	id, err := parseID(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.Get(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	type UpdateTaskRequest struct {
		EmployeeID  *uint64            `json:"employee_id"`
		Description *string            `json:"description"`
		Status      *models.TaskStatus `json:"status"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.Update(task, actor, services.UpdateTaskInput{
		EmployeeID:  req.EmployeeID,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

// Delete removes a task together with its edit history.
func (h *TaskHandler) Delete(c *gin.Context) {
	if !h.requireManager(c) {
		return
	}

	id, err := parseID(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.Get(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	if err := h.taskService.Delete(task); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Logs returns a task's edit history, newest first.
func (h *TaskHandler) Logs(c *gin.Context) {
	if !h.requireManager(c) {
		return
	}

	id, err := parseID(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	logs, err := h.taskService.Logs(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskEditLogDTOs(logs))
}

// requireManager resolves the actor and applies the task-surface policy,
// writing the error response itself when the check fails.
func (h *TaskHandler) requireManager(c *gin.Context) bool {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return false
	}
	if ok, reason := policy.CanManageTasks(actor); !ok {
		apierrors.Forbidden(c, reason)
		return false
	}
	return true
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTaskOwnerUnknown),
		errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

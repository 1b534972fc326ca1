package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskOwnerUnknown = errors.New("employee does not exist")
	ErrInvalidStatus    = errors.New("invalid task status")
)

// TaskService handles task business logic, including the audit trail on
// updates.
type TaskService struct {
	taskRepo     repository.TaskRepository
	employeeRepo repository.EmployeeRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, employeeRepo repository.EmployeeRepository) *TaskService {
	return &TaskService{
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
	}
}

// CreateTaskInput represents the fields accepted when creating a task.
type CreateTaskInput struct {
	EmployeeID  uint64
	Description string
	Status      models.TaskStatus
}

// Create persists a new task for the given employee. Status defaults to
// pending when omitted.
func (s *TaskService) Create(input CreateTaskInput) (*models.Task, error) {
	status := input.Status
	if status == "" {
		status = models.TaskStatusPending
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	if _, err := s.employeeRepo.FindByID(input.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskOwnerUnknown
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	task := &models.Task{
		EmployeeID:  input.EmployeeID,
		Description: input.Description,
		Status:      status,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.Get(task.ID)
}

// List returns tasks newest-first, optionally filtered by status.
func (s *TaskService) List(filter repository.TaskFilter) ([]models.Task, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	return s.taskRepo.List(filter)
}

// Get retrieves a task by ID with its owner preloaded.
func (s *TaskService) Get(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, "Employee")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTaskInput carries a partial task update; nil fields are left
// unchanged.
type UpdateTaskInput struct {
	EmployeeID  *uint64
	Description *string
	Status      *models.TaskStatus
}

// Update applies the changes and appends one edit-log row holding the
// description and status the task had immediately before this call. The log
// is written on every update, even when nothing actually changed.
func (s *TaskService) Update(task *models.Task, actor *models.Employee, input UpdateTaskInput) (*models.Task, error) {
	oldDescription := task.Description
	oldStatus := task.Status

	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.EmployeeID != nil {
		if _, err := s.employeeRepo.FindByID(*input.EmployeeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrTaskOwnerUnknown
			}
			return nil, fmt.Errorf("failed to find employee: %w", err)
		}
		task.EmployeeID = *input.EmployeeID
	}

	editorID := actor.ID
	log := &models.TaskEditLog{
		EditedByID:     &editorID,
		OldDescription: oldDescription,
		OldStatus:      oldStatus,
	}
	if err := s.taskRepo.UpdateWithLog(task, log); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.Get(task.ID)
}

// Delete removes the task and its edit history.
func (s *TaskService) Delete(task *models.Task) error {
	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// Logs returns the edit history for a task, newest first.
func (s *TaskService) Logs(taskID uint64) ([]models.TaskEditLog, error) {
	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return s.taskRepo.ListEditLogs(taskID)
}

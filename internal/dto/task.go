package dto

import (
	"time"

	"tasktracker/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64            `json:"id"`
	EmployeeID  uint64            `json:"employee_id"`
	Description string            `json:"description"`
	Status      models.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Employee    *EmployeeDTO      `json:"employee,omitempty"`
}

// TaskEditLogDTO represents one entry of a task's edit history
type TaskEditLogDTO struct {
	ID             uint64            `json:"id"`
	TaskID         uint64            `json:"task_id"`
	EditedByID     *uint64           `json:"edited_by_id"`
	OldDescription string            `json:"old_description"`
	OldStatus      models.TaskStatus `json:"old_status"`
	EditedAt       time.Time         `json:"edited_at"`
	EditedBy       *EmployeeDTO      `json:"edited_by,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		EmployeeID:  task.EmployeeID,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	// Include owner if preloaded
	if task.Employee.ID != 0 {
		owner := ToEmployeeDTO(task.Employee)
		dto.Employee = &owner
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks.
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}

// ToTaskEditLogDTO converts a TaskEditLog model to TaskEditLogDTO
func ToTaskEditLogDTO(log models.TaskEditLog) TaskEditLogDTO {
	dto := TaskEditLogDTO{
		ID:             log.ID,
		TaskID:         log.TaskID,
		EditedByID:     log.EditedByID,
		OldDescription: log.OldDescription,
		OldStatus:      log.OldStatus,
		EditedAt:       log.EditedAt,
	}

	if log.EditedBy != nil {
		editor := ToEmployeeDTO(*log.EditedBy)
		dto.EditedBy = &editor
	}

	return dto
}

// ToTaskEditLogDTOs converts a slice of edit logs.
func ToTaskEditLogDTOs(logs []models.TaskEditLog) []TaskEditLogDTO {
	dtos := make([]TaskEditLogDTO, len(logs))
	for i, l := range logs {
		dtos[i] = ToTaskEditLogDTO(l)
	}
	return dtos
}

package repository

import (
	"tasktracker/internal/models"
)

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	// Create creates a new employee
	Create(employee *models.Employee) error

	// FindByID finds an employee by ID
	FindByID(id uint64) (*models.Employee, error)

	// FindByEmail finds an employee by email
	FindByEmail(email string) (*models.Employee, error)

	// FindByPhone finds an employee by phone
	FindByPhone(phone string) (*models.Employee, error)

	// List retrieves all employees ordered by id ascending
	List() ([]models.Employee, error)

	// Update persists changes to an employee
	Update(employee *models.Employee) error

	// Delete removes an employee, cascading to their tasks and those tasks'
	// edit logs, while nulling the editor reference on logs they authored
	// elsewhere
	Delete(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	// Status narrows the list to an exact status match
	Status *models.TaskStatus

	// Search applies a substring match over the status column
	Search string
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// List retrieves tasks ordered by creation time descending
	List(filter TaskFilter) ([]models.Task, error)

	// UpdateWithLog persists the task and appends the edit-log snapshot in
	// one transaction
	UpdateWithLog(task *models.Task, log *models.TaskEditLog) error

	// Delete removes the task and all of its edit logs
	Delete(id uint64) error

	// ListEditLogs returns a task's edit history, newest first
	ListEditLogs(taskID uint64) ([]models.TaskEditLog, error)
}

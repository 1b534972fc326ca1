package models

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	EmployeeID  uint64     `gorm:"not null;index" json:"employee_id"`
	Description string     `gorm:"type:text" json:"description"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Employee Employee      `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"employee,omitempty"`
	EditLogs []TaskEditLog `gorm:"foreignKey:TaskID" json:"edit_logs,omitempty"`
}

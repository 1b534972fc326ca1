package models

import "time"

// TaskEditLog is an append-only snapshot of a task's fields immediately
// before an update. Rows are never mutated; they are removed only when the
// parent task is deleted. The editor reference is nulled if that employee
// is later deleted, keeping the history itself intact.
type TaskEditLog struct {
	ID             uint64     `gorm:"primarykey" json:"id"`
	TaskID         uint64     `gorm:"not null;index" json:"task_id"`
	EditedByID     *uint64    `gorm:"index" json:"edited_by_id"`
	OldDescription string     `gorm:"type:text" json:"old_description"`
	OldStatus      TaskStatus `gorm:"type:varchar(20)" json:"old_status"`
	EditedAt       time.Time  `gorm:"autoCreateTime" json:"edited_at"`

	// Relations
	Task     Task      `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"-"`
	EditedBy *Employee `gorm:"foreignKey:EditedByID;constraint:OnDelete:SET NULL" json:"edited_by,omitempty"`
}

package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tasktracker/internal/models"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// List retrieves tasks ordered by creation time descending
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	query := r.db.Model(&models.Task{})

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("tasks.status LIKE ?", "%"+filter.Search+"%")
	}

	var tasks []models.Task
	if err := query.Order("tasks.created_at DESC").Preload("Employee").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateWithLog saves the task and appends the pre-update snapshot in a
// single transaction, so a log row exists for exactly the state the update
// replaced.
func (r *GormTaskRepository) UpdateWithLog(task *models.Task, log *models.TaskEditLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}

		log.TaskID = task.ID
		return tx.Create(log).Error
	})
}

// Delete removes the task together with its edit logs
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskEditLog{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Task{}, id).Error
	})
}

// ListEditLogs returns a task's edit history, newest first
func (r *GormTaskRepository) ListEditLogs(taskID uint64) ([]models.TaskEditLog, error) {
	var logs []models.TaskEditLog
	if err := r.db.Where("task_id = ?", taskID).
		Order("edited_at DESC").
		Preload("EditedBy").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

package repository

import (
	"gorm.io/gorm"

	"tasktracker/internal/models"
)

// GormEmployeeRepository is a GORM implementation of EmployeeRepository
type GormEmployeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new EmployeeRepository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &GormEmployeeRepository{db: db}
}

// Create creates a new employee
func (r *GormEmployeeRepository) Create(employee *models.Employee) error {
	return r.db.Create(employee).Error
}

// FindByID finds an employee by ID
func (r *GormEmployeeRepository) FindByID(id uint64) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.First(&employee, id).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByEmail finds an employee by email
func (r *GormEmployeeRepository) FindByEmail(email string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByPhone finds an employee by phone
func (r *GormEmployeeRepository) FindByPhone(phone string) (*models.Employee, error) {
	var employee models.Employee
	if err := r.db.Where("phone = ?", phone).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// List retrieves all employees ordered by id ascending
func (r *GormEmployeeRepository) List() ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.Order("id ASC").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

// Update persists changes to an employee
func (r *GormEmployeeRepository) Update(employee *models.Employee) error {
	return r.db.Save(employee).Error
}

// Delete removes an employee and cascades explicitly so that behaviour does
// not depend on database-level foreign key enforcement. Edit logs the
// employee authored on surviving tasks keep their row but lose the editor
// reference; logs of the employee's own tasks go with the tasks.
func (r *GormEmployeeRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TaskEditLog{}).
			Where("edited_by_id = ?", id).
			Update("edited_by_id", nil).Error; err != nil {
			return err
		}

		ownedTasks := tx.Model(&models.Task{}).
			Select("id").
			Where("employee_id = ?", id)
		if err := tx.Where("task_id IN (?)", ownedTasks).
			Delete(&models.TaskEditLog{}).Error; err != nil {
			return err
		}

		if err := tx.Where("employee_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Employee{}, id).Error
	})
}

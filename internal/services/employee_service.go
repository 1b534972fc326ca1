package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrDuplicateEmail   = errors.New("an employee with this email already exists")
	ErrDuplicatePhone   = errors.New("an employee with this phone already exists")
	ErrSuperadminRole   = errors.New("cannot change role of superadmin")
	ErrMissingField     = errors.New("name, email and phone are required")
)

// EmployeeService handles employee lifecycle business logic. Authorization
// is the caller's concern; the service assumes the actor has already been
// cleared by policy.
type EmployeeService struct {
	employeeRepo repository.EmployeeRepository
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo repository.EmployeeRepository) *EmployeeService {
	return &EmployeeService{
		employeeRepo: employeeRepo,
	}
}

// CreateEmployeeInput represents the fields accepted when provisioning an
// employee. Role is always employee and the credential stays unset until
// registration.
type CreateEmployeeInput struct {
	Name  string
	Email string
	Phone string
}

// Create provisions a new employee record.
func (s *EmployeeService) Create(input CreateEmployeeInput) (*models.Employee, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || email == "" || phone == "" {
		return nil, ErrMissingField
	}

	if err := s.checkUnique(email, phone, 0); err != nil {
		return nil, err
	}

	employee := &models.Employee{
		Name:     name,
		Email:    email,
		Phone:    phone,
		Role:     models.RoleEmployee,
		IsActive: true,
	}
	if err := s.employeeRepo.Create(employee); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return employee, nil
}

// List returns all employees ordered by id ascending.
func (s *EmployeeService) List() ([]models.Employee, error) {
	return s.employeeRepo.List()
}

// Get retrieves an employee by ID.
func (s *EmployeeService) Get(id uint64) (*models.Employee, error) {
	employee, err := s.employeeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}
	return employee, nil
}

// UpdateEmployeeInput carries a partial update; nil fields are left
// unchanged. ID and role are deliberately absent: they are never editable
// through this path.
type UpdateEmployeeInput struct {
	Name     *string
	Email    *string
	Phone    *string
	IsActive *bool
}

// Update applies a partial update to the employee.
func (s *EmployeeService) Update(employee *models.Employee, input UpdateEmployeeInput) (*models.Employee, error) {
	email := employee.Email
	phone := employee.Phone
	if input.Email != nil {
		email = strings.TrimSpace(*input.Email)
	}
	if input.Phone != nil {
		phone = strings.TrimSpace(*input.Phone)
	}
	if err := s.checkUnique(email, phone, employee.ID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		employee.Name = strings.TrimSpace(*input.Name)
	}
	employee.Email = email
	employee.Phone = phone
	if input.IsActive != nil {
		employee.IsActive = *input.IsActive
	}

	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return employee, nil
}

// Delete removes the employee along with their tasks and those tasks' logs.
func (s *EmployeeService) Delete(employee *models.Employee) error {
	if err := s.employeeRepo.Delete(employee.ID); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

// Promote raises the target to admin. Promoting an existing admin is a
// no-op success; touching the superadmin is rejected.
func (s *EmployeeService) Promote(employee *models.Employee) error {
	if employee.Role == models.RoleSuperadmin {
		return ErrSuperadminRole
	}

	employee.Role = models.RoleAdmin
	if err := s.employeeRepo.Update(employee); err != nil {
		return fmt.Errorf("failed to promote employee: %w", err)
	}
	return nil
}

// checkUnique rejects email/phone values already held by another employee.
// The database carries unique indexes as well; checking here turns the
// common case into a clean conflict error instead of a driver error.
func (s *EmployeeService) checkUnique(email, phone string, selfID uint64) error {
	if existing, err := s.employeeRepo.FindByEmail(email); err == nil {
		if existing.ID != selfID {
			return ErrDuplicateEmail
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check email: %w", err)
	}

	if existing, err := s.employeeRepo.FindByPhone(phone); err == nil {
		if existing.ID != selfID {
			return ErrDuplicatePhone
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check phone: %w", err)
	}

	return nil
}

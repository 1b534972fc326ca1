package dto

import (
	"time"

	"tasktracker/internal/models"
)

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID       uint64      `json:"id"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Role     models.Role `json:"role"`
	IsActive bool        `json:"is_active"`
	JoinedAt time.Time   `json:"joined_at"`
}

// ToEmployeeDTO converts an Employee model to EmployeeDTO
func ToEmployeeDTO(employee models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:       employee.ID,
		Name:     employee.Name,
		Email:    employee.Email,
		Phone:    employee.Phone,
		Role:     employee.Role,
		IsActive: employee.IsActive,
		JoinedAt: employee.JoinedAt,
	}
}

// ToEmployeeDTOs converts a slice of employees.
func ToEmployeeDTOs(employees []models.Employee) []EmployeeDTO {
	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = ToEmployeeDTO(e)
	}
	return dtos
}

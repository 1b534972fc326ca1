package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/dto"
	apierrors "tasktracker/internal/errors"
	"tasktracker/internal/middleware"
	"tasktracker/internal/policy"
	"tasktracker/internal/services"
)

// EmployeeHandler coordinates employee management endpoints.
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{
		employeeService: employeeService,
	}
}

// Create provisions a new employee without a credential; the employee
// activates the account later through registration.
func (h *EmployeeHandler) Create(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if ok, reason := policy.CanCreateEmployee(actor); !ok {
		apierrors.Forbidden(c, reason)
		return
	}

	type CreateEmployeeRequest struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
		Phone string `json:"phone" binding:"required"`
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.employeeService.Create(services.CreateEmployeeInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

// List returns all employees ordered by id ascending.
func (h *EmployeeHandler) List(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if ok, reason := policy.CanViewEmployees(actor); !ok {
		apierrors.Forbidden(c, reason)
		return
	}

	employees, err := h.employeeService.List()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch employees")
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTOs(employees))
}

// Get returns one employee.
func (h *EmployeeHandler) Get(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if ok, reason := policy.CanViewEmployees(actor); !ok {
		apierrors.Forbidden(c, reason)
		return
	}

	id, err := parseID(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	employee, err := h.employeeService.Get(id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*employee))
}

// Update applies a partial update. The id and role fields are never
// accepted through this path; role changes go through Promote only.
func (h *EmployeeHandler) Update(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := parseID(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	target, err := h.employeeService.Get(id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	if ok, reason := policy.CanModifyEmployee(actor, target); !ok {
		apierrors.Forbidden(c, reason)
		return
	}

	// Binding to this struct drops id/role from the payload unconditionally.
	type UpdateEmployeeRequest struct {
		Name     *string `json:"name"`
		Email    *string `json:"email" binding:"omitempty,email"`
		Phone    *string `json:"phone"`
		IsActive *bool   `json:"is_active"`
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.employeeService.Update(target, services.UpdateEmployeeInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		IsActive: req.IsActive,
	})
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEmployeeDTO(*updated))
}

// Delete removes an employee and cascades to their tasks.
func (h *EmployeeHandler) Delete(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	id, err := parseID(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	target, err := h.employeeService.Get(id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	if ok, reason := policy.CanDeleteEmployee(actor, target); !ok {
		apierrors.Forbidden(c, reason)
		return
	}

	if err := h.employeeService.Delete(target); err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Promote raises an employee to admin. Superadmin-only; promoting an
// existing admin succeeds with no effect.
func (h *EmployeeHandler) Promote(c *gin.Context) {
	actor, exists := middleware.GetActor(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}
	if ok, reason := policy.CanPromote(actor); !ok {
		apierrors.Forbidden(c, reason)
		return
	}

	id, err := parseID(c)
	if err != nil {
		apierrors.BadRequest(c, "Invalid employee ID")
		return
	}

	target, err := h.employeeService.Get(id)
	if err != nil {
		respondEmployeeError(c, err)
		return
	}

	if err := h.employeeService.Promote(target); err != nil {
		respondEmployeeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"detail": fmt.Sprintf("Employee %s promoted to admin.", target.Email),
	})
}

func parseID(c *gin.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}

func respondEmployeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDuplicateEmail),
		errors.Is(err, services.ErrDuplicatePhone):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrSuperadminRole),
		errors.Is(err, services.ErrMissingField):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

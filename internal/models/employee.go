package models

import "time"

type Role string

const (
	RoleEmployee   Role = "employee"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Level maps a role onto the hierarchy employee < admin < superadmin.
func (r Role) Level() int {
	switch r {
	case RoleSuperadmin:
		return 2
	case RoleAdmin:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether r sits at or above other in the hierarchy.
func (r Role) AtLeast(other Role) bool {
	return r.Level() >= other.Level()
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

type Employee struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(150);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	PasswordHash string    `gorm:"type:varchar(255)" json:"-"`
	JoinedAt     time.Time `gorm:"autoCreateTime" json:"joined_at"`

	// Relations
	Tasks []Task `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

// HasUsablePassword reports whether the registration step has set a credential.
// Employees are provisioned without one and cannot log in until they register.
func (e *Employee) HasUsablePassword() bool {
	return e.PasswordHash != ""
}

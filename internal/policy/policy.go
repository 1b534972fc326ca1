// Package policy holds the authorization rules as pure predicates over the
// actor's and target's roles. Each predicate returns whether the operation is
// allowed plus a human-readable reason on denial; callers translate a denial
// into a 403 response.
package policy

import "tasktracker/internal/models"

// CanViewEmployees allows any authenticated actor to read employee records.
func CanViewEmployees(actor *models.Employee) (bool, string) {
	if actor == nil {
		return false, "authentication required"
	}
	return true, ""
}

// CanCreateEmployee allows admins and the superadmin to provision employees.
func CanCreateEmployee(actor *models.Employee) (bool, string) {
	if actor == nil || !actor.Role.AtLeast(models.RoleAdmin) {
		return false, "only admins can create employees"
	}
	return true, ""
}

// CanModifyEmployee governs updates to an employee record. Admins may only
// touch plain employees; the superadmin may touch anyone.
func CanModifyEmployee(actor, target *models.Employee) (bool, string) {
	if actor == nil || !actor.Role.AtLeast(models.RoleAdmin) {
		return false, "only admins can modify employees"
	}
	if actor.Role == models.RoleAdmin && target.Role != models.RoleEmployee {
		return false, "admin can only modify employees (not admins or superadmin)"
	}
	return true, ""
}

// CanDeleteEmployee applies the modify rules plus the superadmin immunity:
// a superadmin record is never deletable, regardless of who asks.
func CanDeleteEmployee(actor, target *models.Employee) (bool, string) {
	if target.Role == models.RoleSuperadmin {
		return false, "superadmin cannot be deleted"
	}
	return CanModifyEmployee(actor, target)
}

// CanPromote restricts the employee-to-admin promotion to the superadmin.
func CanPromote(actor *models.Employee) (bool, string) {
	if actor == nil || actor.Role != models.RoleSuperadmin {
		return false, "only the superadmin can promote employees"
	}
	return true, ""
}

// CanManageTasks gates the entire task surface: plain employees cannot view
// or mutate tasks.
func CanManageTasks(actor *models.Employee) (bool, string) {
	if actor == nil || !actor.Role.AtLeast(models.RoleAdmin) {
		return false, "only admins can manage tasks"
	}
	return true, ""
}

package constants

// Context keys shared between middleware and handlers.
const (
	ContextKeyEmployeeID = "employee_id"
	ContextKeyActor      = "actor"
)

// MinPasswordLength is enforced at the registration boundary.
const MinPasswordLength = 6

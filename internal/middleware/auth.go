package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"tasktracker/internal/constants"
	apierrors "tasktracker/internal/errors"
	"tasktracker/internal/models"
	"tasktracker/internal/repository"
	"tasktracker/internal/token"
)

// RequireAuth validates the bearer access token and resolves the acting
// employee from the database, so role checks always see the current role
// rather than the one captured in the token at login.
func RequireAuth(tokens *token.Manager, employeeRepo repository.EmployeeRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			apierrors.Unauthorized(c, "missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			apierrors.Unauthorized(c, "invalid authorization header")
			c.Abort()
			return
		}

		claims, err := tokens.ParseAccess(parts[1])
		if err != nil {
			apierrors.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		actor, err := employeeRepo.FindByID(claims.EmployeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.Unauthorized(c, "invalid token")
			} else {
				apierrors.InternalError(c, "")
			}
			c.Abort()
			return
		}
		if !actor.IsActive {
			apierrors.Unauthorized(c, "account is inactive")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyEmployeeID, actor.ID)
		c.Set(constants.ContextKeyActor, actor)
		c.Next()
	}
}

// GetActor retrieves the authenticated employee from context
func GetActor(c *gin.Context) (*models.Employee, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return nil, false
	}

	actor, ok := value.(*models.Employee)
	if !ok {
		return nil, false
	}
	return actor, true
}

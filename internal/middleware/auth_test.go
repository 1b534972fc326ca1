package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
	"tasktracker/internal/token"
)

func setupAuthMiddleware(t *testing.T) (*gorm.DB, *token.Manager, *gin.Engine) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Employee{}, &models.Task{}, &models.TaskEditLog{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	tokens := token.NewManager("test-secret", time.Minute, time.Hour, token.NewMemoryStore())

	r := gin.New()
	r.GET("/protected", RequireAuth(tokens, repository.NewEmployeeRepository(db)), func(c *gin.Context) {
		actor, ok := GetActor(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"role": actor.Role})
	})

	return db, tokens, r
}

func createActiveEmployee(t *testing.T, db *gorm.DB, role models.Role) *models.Employee {
	t.Helper()
	employee := &models.Employee{
		Name:     "Test",
		Email:    string(role) + "@x.com",
		Phone:    string(role),
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(employee).Error)
	return employee
}

func performGet(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_ValidToken(t *testing.T) {
	db, tokens, r := setupAuthMiddleware(t)
	employee := createActiveEmployee(t, db, models.RoleEmployee)

	pair, err := tokens.IssuePair(context.Background(), employee)
	require.NoError(t, err)

	w := performGet(r, "Bearer "+pair.Access)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_HeaderShapes(t *testing.T) {
	_, _, r := setupAuthMiddleware(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no scheme", "just-a-token"},
		{"wrong scheme", "Basic abc123"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performGet(r, tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	db, tokens, r := setupAuthMiddleware(t)
	employee := createActiveEmployee(t, db, models.RoleEmployee)

	pair, err := tokens.IssuePair(context.Background(), employee)
	require.NoError(t, err)

	// A refresh token is not valid for API access
	w := performGet(r, "Bearer "+pair.Refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_DeletedEmployee(t *testing.T) {
	db, tokens, r := setupAuthMiddleware(t)
	employee := createActiveEmployee(t, db, models.RoleEmployee)

	pair, err := tokens.IssuePair(context.Background(), employee)
	require.NoError(t, err)

	require.NoError(t, db.Delete(employee).Error)

	w := performGet(r, "Bearer "+pair.Access)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_InactiveEmployee(t *testing.T) {
	db, tokens, r := setupAuthMiddleware(t)
	employee := createActiveEmployee(t, db, models.RoleEmployee)

	pair, err := tokens.IssuePair(context.Background(), employee)
	require.NoError(t, err)

	require.NoError(t, db.Model(employee).Update("is_active", false).Error)

	w := performGet(r, "Bearer "+pair.Access)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_SeesCurrentRole(t *testing.T) {
	db, tokens, r := setupAuthMiddleware(t)
	employee := createActiveEmployee(t, db, models.RoleEmployee)

	pair, err := tokens.IssuePair(context.Background(), employee)
	require.NoError(t, err)

	// Promotion takes effect on the very next request, old token and all
	require.NoError(t, db.Model(employee).Update("role", models.RoleAdmin).Error)

	w := performGet(r, "Bearer "+pair.Access)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(models.RoleAdmin))
}

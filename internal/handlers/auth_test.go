package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
	"tasktracker/internal/services"
	"tasktracker/internal/token"
)

type authTestEnv struct {
	db      *gorm.DB
	handler *AuthHandler
	tokens  *token.Manager
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Employee{},
		&models.Task{},
		&models.TaskEditLog{},
	)
	require.NoError(t, err)

	employeeRepo := repository.NewEmployeeRepository(db)
	tokens := token.NewManager("test-secret", time.Minute, time.Hour, token.NewMemoryStore())
	authService := services.NewAuthService(employeeRepo, tokens)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:      db,
		handler: handler,
		tokens:  tokens,
	}
}

func (env authTestEnv) createEmployee(t *testing.T, email, password string, active bool) *models.Employee {
	t.Helper()

	employee := &models.Employee{
		Name:     "Test Employee",
		Email:    email,
		Phone:    email, // unique per test employee
		Role:     models.RoleEmployee,
		IsActive: active,
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		require.NoError(t, err)
		employee.PasswordHash = string(hash)
	}
	require.NoError(t, env.db.Create(employee).Error)
	if !active {
		// The column has default:true, so gorm drops the zero-value
		// false on insert; persist it explicitly.
		require.NoError(t, env.db.Model(employee).Update("is_active", false).Error)
	}
	return employee
}

func performJSON(t *testing.T, handler gin.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return w
}

func TestAuthHandler_Token(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createEmployee(t, "alice@example.com", "secret123", true)

	w := performJSON(t, env.handler.Token, gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var pair token.Pair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	claims, err := env.tokens.ParseAccess(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, claims.Role)
}

func TestAuthHandler_Token_BadCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createEmployee(t, "alice@example.com", "secret123", true)

	tests := []struct {
		name string
		body gin.H
	}{
		{"wrong password", gin.H{"email": "alice@example.com", "password": "wrong"}},
		{"unknown email", gin.H{"email": "nobody@example.com", "password": "secret123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performJSON(t, env.handler.Token, tt.body)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthHandler_Token_UnregisteredOrInactive(t *testing.T) {
	env := setupAuthTestEnv(t)
	// Provisioned but never registered: no credential yet
	env.createEmployee(t, "new@example.com", "", true)
	// Registered but deactivated
	env.createEmployee(t, "gone@example.com", "secret123", false)

	w := performJSON(t, env.handler.Token, gin.H{"email": "new@example.com", "password": "anything"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performJSON(t, env.handler.Token, gin.H{"email": "gone@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createEmployee(t, "alice@example.com", "secret123", true)

	w := performJSON(t, env.handler.Token, gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var pair token.Pair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))

	w = performJSON(t, env.handler.Refresh, gin.H{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	claims, err := env.tokens.ParseAccess(resp["access"])
	require.NoError(t, err)
	assert.Equal(t, token.TypeAccess, claims.TokenType)
}

func TestAuthHandler_Refresh_InvalidToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := performJSON(t, env.handler.Refresh, gin.H{"refresh": "not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh_ReflectsPromotion(t *testing.T) {
	env := setupAuthTestEnv(t)
	employee := env.createEmployee(t, "alice@example.com", "secret123", true)

	w := performJSON(t, env.handler.Token, gin.H{
		"email":    "alice@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var pair token.Pair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))

	// Promote between login and refresh
	require.NoError(t, env.db.Model(employee).Update("role", models.RoleAdmin).Error)

	w = performJSON(t, env.handler.Refresh, gin.H{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	claims, err := env.tokens.ParseAccess(resp["access"])
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createEmployee(t, "new@example.com", "", true)

	w := performJSON(t, env.handler.Register, gin.H{
		"email":    "new@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Registration enables authentication
	w = performJSON(t, env.handler.Token, gin.H{
		"email":    "new@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Register_UnknownEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := performJSON(t, env.handler.Register, gin.H{
		"email":    "nobody@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Register_PasswordTooShort(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createEmployee(t, "new@example.com", "", true)

	w := performJSON(t, env.handler.Register, gin.H{
		"email":    "new@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Credential must remain unset after the failed attempt
	var employee models.Employee
	require.NoError(t, env.db.Where("email = ?", "new@example.com").First(&employee).Error)
	assert.False(t, employee.HasUsablePassword())
}

package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tasktracker/internal/constants"
	"tasktracker/internal/dto"
	apierrors "tasktracker/internal/errors"
	"tasktracker/internal/services"
)

// AuthHandler coordinates token issuance and registration.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Token exchanges email+password for an access/refresh token pair.
func (h *AuthHandler) Token(c *gin.Context) {
	type TokenRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, pair)
}

// Refresh exchanges a refresh token for a new access token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	type RefreshRequest struct {
		Refresh string `json:"refresh" binding:"required"`
	}

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	access, err := h.authService.Refresh(c.Request.Context(), req.Refresh)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access": access})
}

// Register sets the credential for a pre-provisioned employee, keyed by
// email. Open to unauthenticated callers; unknown emails are rejected.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	employee, err := h.authService.Register(req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEmployeeDTO(*employee))
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidRefreshToken):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrUnknownEmail):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}

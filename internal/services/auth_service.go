package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"tasktracker/internal/constants"
	"tasktracker/internal/models"
	"tasktracker/internal/repository"
	"tasktracker/internal/token"
)

var (
	ErrInvalidCredentials   = errors.New("no active account found with the given credentials")
	ErrInvalidRefreshToken  = errors.New("refresh token is invalid or expired")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUnknownEmail         = errors.New("no employee found with this email, contact admin")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles the credential exchange, token refresh and the
// two-phase registration flow.
type AuthService struct {
	employeeRepo repository.EmployeeRepository
	tokens       *token.Manager
}

// NewAuthService creates a new AuthService.
func NewAuthService(employeeRepo repository.EmployeeRepository, tokens *token.Manager) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		tokens:       tokens,
	}
}

// Login verifies credentials and returns an access/refresh token pair.
// Employees that are inactive or have not registered a credential yet are
// indistinguishable from bad credentials to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (token.Pair, error) {
	employee, err := s.employeeRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return token.Pair{}, ErrInvalidCredentials
		}
		return token.Pair{}, fmt.Errorf("failed to find employee: %w", err)
	}

	if !employee.IsActive || !employee.HasUsablePassword() {
		return token.Pair{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		return token.Pair{}, ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(ctx, employee)
	if err != nil {
		return token.Pair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The access
// token reflects the employee's current role, so a promotion between login
// and refresh is picked up here.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.tokens.ParseRefresh(ctx, refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	employee, err := s.employeeRepo.FindByID(claims.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidRefreshToken
		}
		return "", fmt.Errorf("failed to find employee: %w", err)
	}
	if !employee.IsActive {
		return "", ErrInvalidRefreshToken
	}

	access, err := s.tokens.IssueAccess(employee)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}
	return access, nil
}

// Register sets the credential for a pre-provisioned employee. This is the
// only way to activate an account; there is no open self-signup.
func (s *AuthService) Register(email, password string) (*models.Employee, error) {
	if len(password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	employee, err := s.employeeRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	employee.PasswordHash = string(hash)
	if err := s.employeeRepo.Update(employee); err != nil {
		return nil, fmt.Errorf("failed to save credential: %w", err)
	}

	return employee, nil
}

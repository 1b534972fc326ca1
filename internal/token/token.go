// Package token issues and validates the JWT access/refresh token pair.
// Access tokens are short-lived and stateless; refresh tokens carry a random
// jti that must still be present in the RefreshStore to be honoured.
package token

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tasktracker/internal/models"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongType     = errors.New("unexpected token type")
	ErrRefreshReused = errors.New("refresh token expired or revoked")
)

// Claims are the JWT claims carried by both token types. Role is only a
// login-time snapshot; authorization always re-reads the employee row.
type Claims struct {
	EmployeeID uint64      `json:"employee_id"`
	Role       models.Role `json:"role,omitempty"`
	TokenType  string      `json:"token_type"`
	jwt.RegisteredClaims
}

// Pair is the response of a successful credential exchange.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	store      RefreshStore
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration, store RefreshStore) *Manager {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		store:      store,
	}
}

// IssuePair creates an access/refresh pair for the employee and records the
// refresh jti in the store for later validation.
func (m *Manager) IssuePair(ctx context.Context, employee *models.Employee) (Pair, error) {
	access, err := m.IssueAccess(employee)
	if err != nil {
		return Pair{}, err
	}

	jti, err := randomID()
	if err != nil {
		return Pair{}, fmt.Errorf("failed to generate token id: %w", err)
	}

	now := time.Now()
	refreshClaims := Claims{
		EmployeeID: employee.ID,
		TokenType:  TypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).SignedString(m.secret)
	if err != nil {
		return Pair{}, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	if err := m.store.Save(ctx, jti, m.refreshTTL); err != nil {
		return Pair{}, fmt.Errorf("failed to record refresh token: %w", err)
	}

	return Pair{Access: access, Refresh: refresh}, nil
}

// IssueAccess creates a stateless access token for the employee.
func (m *Manager) IssueAccess(employee *models.Employee) (string, error) {
	now := time.Now()
	claims := Claims{
		EmployeeID: employee.ID,
		Role:       employee.Role,
		TokenType:  TypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// ParseAccess validates an access token and returns its claims.
func (m *Manager) ParseAccess(tokenString string) (*Claims, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TypeAccess {
		return nil, ErrWrongType
	}
	return claims, nil
}

// ParseRefresh validates a refresh token, including store membership of its
// jti, and returns its claims.
func (m *Manager) ParseRefresh(ctx context.Context, tokenString string) (*Claims, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TypeRefresh {
		return nil, ErrWrongType
	}

	ok, err := m.store.Exists(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !ok {
		return nil, ErrRefreshReused
	}
	return claims, nil
}

func (m *Manager) parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func randomID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmarkhas/salonbook/internal/domain"
)

func TestGenerateJWT(t *testing.T) {
	jwtService := NewJWTService("test-secret")

	tests := []struct {
		name           string
		userID         int64
		role           domain.Role
		expirationTime time.Time
		expectError    bool
	}{
		{
			name:           "Valid customer token",
			userID:         123,
			role:           domain.RoleCustomer,
			expirationTime: time.Now().Add(time.Hour),
			expectError:    false,
		},
		{
			name:           "Valid admin token",
			userID:         1,
			role:           domain.RoleAdmin,
			expirationTime: time.Now().Add(time.Hour),
			expectError:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwtService.GenerateJWT(tt.userID, tt.role, tt.expirationTime)

			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	jwtService := NewJWTService("test-secret")

	tests := []struct {
		name        string
		setup       func() string
		expectError bool
		expectRole  domain.Role
	}{
		{
			name: "Valid token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT(123, domain.RoleVendor, time.Now().Add(time.Hour))
				return token
			},
			expectError: false,
			expectRole:  domain.RoleVendor,
		},
		{
			name:        "Invalid token",
			setup:       func() string { return "invalid.token.string" },
			expectError: true,
		},
		{
			name: "Expired token",
			setup: func() string {
				token, _ := jwtService.GenerateJWT(123, domain.RoleCustomer, time.Now().Add(-time.Hour))
				return token
			},
			expectError: true,
		},
		{
			name: "Wrong secret",
			setup: func() string {
				other := NewJWTService("other-secret")
				token, _ := other.GenerateJWT(123, domain.RoleCustomer, time.Now().Add(time.Hour))
				return token
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := jwtService.ValidateToken(tt.setup())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, claims)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(123), claims.UserID)
				assert.Equal(t, tt.expectRole, claims.Role)
			}
		})
	}
}

package userrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarkhas/salonbook/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestRepository_FindByLogin(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta("SELECT id, login, password_hash, role FROM users WHERE login = $1")

	tests := []struct {
		name      string
		login     string
		mockSetup func()
		expected  *domain.User
		expectErr bool
	}{
		{
			name:  "User found",
			login: "testuser",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("testuser").
					WillReturnRows(pgxmock.NewRows([]string{"id", "login", "password_hash", "role"}).
						AddRow(int64(1), "testuser", "hashedpassword", domain.RoleCustomer))
			},
			expected: &domain.User{ID: 1, Login: "testuser", PasswordHash: "hashedpassword", Role: domain.RoleCustomer},
		},
		{
			name:  "User not found",
			login: "missing",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("missing").
					WillReturnError(pgx.ErrNoRows)
			},
			expected: nil,
		},
		{
			name:  "Database error",
			login: "testuser",
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("testuser").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			user, err := repo.FindByLogin(context.Background(), tt.login)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, user)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)

	query := regexp.QuoteMeta("INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id")

	tests := []struct {
		name      string
		user      *domain.User
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Creates a user",
			user: &domain.User{Login: "testuser", PasswordHash: "hashedpassword", Role: domain.RoleVendor},
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("testuser", "hashedpassword", domain.RoleVendor).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(5)))
			},
		},
		{
			name: "Database error",
			user: &domain.User{Login: "testuser", PasswordHash: "hashedpassword", Role: domain.RoleCustomer},
			mockSetup: func() {
				mock.ExpectQuery(query).
					WithArgs("testuser", "hashedpassword", domain.RoleCustomer).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			created, err := repo.Create(context.Background(), tt.user)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(5), created.ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

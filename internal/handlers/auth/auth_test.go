package auth

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/service/authservice"
)

func NewMock(t *testing.T) (*AuthHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestRegisterHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful customer registration",
			body: `{"login":"testuser","password":"testpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "testuser", "testpassword", domain.RoleCustomer).
					Return(&domain.User{ID: 1, Login: "testuser", Role: domain.RoleCustomer}, nil)
				service.EXPECT().
					GenerateToken(int64(1), domain.RoleCustomer).
					Return("token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Vendor registration",
			body: `{"login":"salonowner","password":"testpassword","role":"vendor"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "salonowner", "testpassword", domain.RoleVendor).
					Return(&domain.User{ID: 2, Login: "salonowner", Role: domain.RoleVendor}, nil)
				service.EXPECT().
					GenerateToken(int64(2), domain.RoleVendor).
					Return("token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid request body",
			body:          `{"login":invalid}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Admin role rejected",
			body: `{"login":"testuser","password":"testpassword","role":"admin"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "testuser", "testpassword", domain.RoleAdmin).
					Return(nil, authservice.ErrInvalidRole)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Login already taken",
			body: `{"login":"testuser","password":"testpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "testuser", "testpassword", domain.RoleCustomer).
					Return(nil, authservice.ErrLoginTaken)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Internal server error",
			body: `{"login":"testuser","password":"testpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "testuser", "testpassword", domain.RoleCustomer).
					Return(nil, errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
		{
			name: "Error generating token",
			body: `{"login":"testuser","password":"testpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Register(gomock.Any(), "testuser", "testpassword", domain.RoleCustomer).
					Return(&domain.User{ID: 1, Login: "testuser", Role: domain.RoleCustomer}, nil)
				service.EXPECT().
					GenerateToken(int64(1), domain.RoleCustomer).
					Return("", errors.New("error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Error generating token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Register(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, "Bearer token", w.Header().Get("Authorization"))
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful authentication",
			body: `{"login":"testuser","password":"testpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(gomock.Any(), "testuser", "testpassword").
					Return(&domain.User{ID: 1, Login: "testuser", Role: domain.RoleCustomer}, nil)
				service.EXPECT().
					GenerateToken(int64(1), domain.RoleCustomer).
					Return("token", nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid request body",
			body:          `{"login":invalid}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "Invalid credentials",
			body: `{"login":"testuser","password":"wrongpassword"}`,
			prepareMock: func() {
				service.EXPECT().
					Authenticate(gomock.Any(), "testuser", "wrongpassword").
					Return(nil, authservice.ErrInvalidCredentials)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Login(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, "Bearer token", w.Header().Get("Authorization"))
			}
		})
	}
}

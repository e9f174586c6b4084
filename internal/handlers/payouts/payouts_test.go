package payouts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/dto"
	"github.com/dmarkhas/salonbook/internal/service/payoutservice"
	"github.com/dmarkhas/salonbook/pkg/auth"
)

func NewMock(t *testing.T) (*PayoutHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authContext(userID int64, role domain.Role) context.Context {
	ctx := context.WithValue(context.Background(), auth.UserIDKey, userID)
	return context.WithValue(ctx, auth.RoleKey, role)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestRequestHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful request",
			body: `{"salon_id":2,"amount":300,"bank_details":"IBAN DE00 0000"}`,
			prepareMock: func() {
				service.EXPECT().
					Request(gomock.Any(), int64(2), int64(20), int64(300), "IBAN DE00 0000").
					Return(&domain.PayoutRequest{ID: 300, SalonID: 2, WalletID: 7, Amount: 300, Status: domain.PayoutPending}, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "Invalid request body",
			body:         `{"salon_id":}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Not the salon owner",
			body: `{"salon_id":2,"amount":300,"bank_details":"IBAN DE00 0000"}`,
			prepareMock: func() {
				service.EXPECT().
					Request(gomock.Any(), int64(2), int64(20), int64(300), "IBAN DE00 0000").
					Return(nil, payoutservice.ErrPermissionDenied)
			},
			expectedCode: http.StatusForbidden,
		},
		{
			name: "Invalid amount",
			body: `{"salon_id":2,"amount":0,"bank_details":"IBAN DE00 0000"}`,
			prepareMock: func() {
				service.EXPECT().
					Request(gomock.Any(), int64(2), int64(20), int64(0), "IBAN DE00 0000").
					Return(nil, payoutservice.ErrInvalidAmount)
			},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/payouts", bytes.NewBufferString(tt.body))
			r = r.WithContext(authContext(20, domain.RoleVendor))
			w := httptest.NewRecorder()

			handler.Request(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusCreated {
				var body dto.PayoutResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, "pending", body.Status)
			}
		})
	}
}

func TestProcessHandler(t *testing.T) {
	handler, service := NewMock(t)
	notes := "ok"

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Approves the request",
			body: `{"decision":"approved","notes":"ok"}`,
			prepareMock: func() {
				service.EXPECT().
					Process(gomock.Any(), int64(300), domain.PayoutApproved, int64(1), &notes).
					Return(&domain.PayoutRequest{ID: 300, Status: domain.PayoutApproved}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Already processed",
			body: `{"decision":"approved"}`,
			prepareMock: func() {
				service.EXPECT().
					Process(gomock.Any(), int64(300), domain.PayoutApproved, int64(1), gomock.Nil()).
					Return(nil, payoutservice.ErrAlreadyProcessed)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Unknown payout",
			body: `{"decision":"rejected"}`,
			prepareMock: func() {
				service.EXPECT().
					Process(gomock.Any(), int64(300), domain.PayoutRejected, int64(1), gomock.Nil()).
					Return(nil, payoutservice.ErrPayoutNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Invalid decision",
			body: `{"decision":"maybe"}`,
			prepareMock: func() {
				service.EXPECT().
					Process(gomock.Any(), int64(300), domain.PayoutStatus("maybe"), int64(1), gomock.Nil()).
					Return(nil, payoutservice.ErrInvalidDecision)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Internal server error",
			body: `{"decision":"approved"}`,
			prepareMock: func() {
				service.EXPECT().
					Process(gomock.Any(), int64(300), domain.PayoutApproved, int64(1), gomock.Nil()).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/payouts/300/process", bytes.NewBufferString(tt.body))
			r = r.WithContext(authContext(1, domain.RoleAdmin))
			r = withURLParam(r, "id", "300")
			w := httptest.NewRecorder()

			handler.Process(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestListHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		target       string
		userID       int64
		role         domain.Role
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name:   "Salon requests for the owner",
			target: "/api/payouts?salon_id=2",
			userID: 20,
			role:   domain.RoleVendor,
			prepareMock: func() {
				service.EXPECT().
					ListBySalon(gomock.Any(), int64(2), int64(20), domain.RoleVendor).
					Return([]domain.PayoutRequest{{ID: 300, SalonID: 2}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:   "Admin lists all pending",
			target: "/api/payouts",
			userID: 1,
			role:   domain.RoleAdmin,
			prepareMock: func() {
				service.EXPECT().
					ListPending(gomock.Any()).
					Return([]domain.PayoutRequest{{ID: 300}, {ID: 301}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  2,
		},
		{
			name:         "Vendor without salon_id is rejected",
			target:       "/api/payouts",
			userID:       20,
			role:         domain.RoleVendor,
			prepareMock:  func() {},
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "Invalid salon id",
			target:       "/api/payouts?salon_id=abc",
			userID:       20,
			role:         domain.RoleVendor,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			r = r.WithContext(authContext(tt.userID, tt.role))
			w := httptest.NewRecorder()

			handler.List(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.PayoutResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}

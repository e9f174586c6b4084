package bookings

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/dto"
	"github.com/dmarkhas/salonbook/internal/service/bookingservice"
	"github.com/dmarkhas/salonbook/pkg/auth"
)

func NewMock(t *testing.T) (*BookingHandler, *MockService) {
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

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:                 55,
		CustomerID:         10,
		SalonID:            2,
		StaffID:            3,
		ServiceID:          4,
		Date:               time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		Range:              domain.TimeRange{StartMin: 840, EndMin: 900},
		Status:             domain.BookingPending,
		TotalAmount:        10000,
		PlatformCommission: 1500,
		VendorPayout:       8500,
		PaymentMethod:      domain.PaymentOnline,
		PaymentStatus:      domain.PaymentPaidStatus,
	}
}

func TestCreateHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful creation",
			body: `{"salon_id":2,"staff_id":3,"service_id":4,"date":"2026-09-14","start_min":840,"duration_min":60,"total_amount":10000,"payment_method":"online"}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), bookingservice.CreateParams{
						CustomerID:    10,
						SalonID:       2,
						StaffID:       3,
						ServiceID:     4,
						Date:          time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
						StartMin:      840,
						DurationMin:   60,
						TotalAmount:   10000,
						PaymentMethod: domain.PaymentOnline,
					}).
					Return(sampleBooking(), nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "Invalid request body",
			body:          `{"salon_id":invalid}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid request body",
		},
		{
			name:          "Invalid date",
			body:          `{"salon_id":2,"staff_id":3,"date":"14.09.2026","start_min":840,"duration_min":60}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "invalid date",
		},
		{
			name: "Slot conflict",
			body: `{"salon_id":2,"staff_id":3,"service_id":4,"date":"2026-09-14","start_min":840,"duration_min":60,"total_amount":10000,"payment_method":"online"}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(nil, &bookingservice.ConflictError{ConflictingBookingID: 44})
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Unknown salon",
			body: `{"salon_id":99,"staff_id":3,"service_id":4,"date":"2026-09-14","start_min":840,"duration_min":60,"total_amount":10000,"payment_method":"online"}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(nil, bookingservice.ErrSalonNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Internal server error",
			body: `{"salon_id":2,"staff_id":3,"service_id":4,"date":"2026-09-14","start_min":840,"duration_min":60,"total_amount":10000,"payment_method":"online"}`,
			prepareMock: func() {
				service.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewBufferString(tt.body))
			r = r.WithContext(authContext(10, domain.RoleCustomer))
			w := httptest.NewRecorder()

			handler.Create(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedError != "" {
				assert.Contains(t, w.Body.String(), tt.expectedError)
			}
			if tt.expectedCode == http.StatusCreated {
				var body dto.BookingResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, int64(55), body.ID)
				assert.Equal(t, "2026-09-14", body.Date)
				assert.Equal(t, int64(1500), body.PlatformCommission)
			}
			if tt.expectedCode == http.StatusConflict {
				var body dto.ConflictResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Equal(t, "conflict", body.Kind)
				assert.Equal(t, int64(44), body.ConflictingBookingID)
			}
		})
	}
}

func TestGetHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		id           string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Booking found",
			id:   "55",
			prepareMock: func() {
				service.EXPECT().GetByID(gomock.Any(), int64(55)).Return(sampleBooking(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid id",
			id:           "abc",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Booking not found",
			id:   "99",
			prepareMock: func() {
				service.EXPECT().GetByID(gomock.Any(), int64(99)).Return(nil, bookingservice.ErrBookingNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, "/api/bookings/"+tt.id, nil)
			r = r.WithContext(authContext(10, domain.RoleCustomer))
			r = withURLParam(r, "id", tt.id)
			w := httptest.NewRecorder()

			handler.Get(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestListHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		target       string
		role         domain.Role
		prepareMock  func()
		expectedCode int
		expectedLen  int
	}{
		{
			name:   "Customer's own bookings",
			target: "/api/bookings",
			role:   domain.RoleCustomer,
			prepareMock: func() {
				service.EXPECT().ListForCustomer(gomock.Any(), int64(10)).
					Return([]domain.Booking{*sampleBooking()}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:   "Salon bookings for the owner",
			target: "/api/bookings?salon_id=2",
			role:   domain.RoleVendor,
			prepareMock: func() {
				service.EXPECT().ListForSalon(gomock.Any(), int64(2), int64(10), domain.RoleVendor).
					Return([]domain.Booking{*sampleBooking()}, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:         "Invalid salon id",
			target:       "/api/bookings?salon_id=abc",
			role:         domain.RoleVendor,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Stranger is rejected",
			target: "/api/bookings?salon_id=2",
			role:   domain.RoleVendor,
			prepareMock: func() {
				service.EXPECT().ListForSalon(gomock.Any(), int64(2), int64(10), domain.RoleVendor).
					Return(nil, bookingservice.ErrPermissionDenied)
			},
			expectedCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			r = r.WithContext(authContext(10, tt.role))
			w := httptest.NewRecorder()

			handler.List(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var body []dto.BookingResponseDTO
				_ = json.NewDecoder(w.Body).Decode(&body)
				assert.Len(t, body, tt.expectedLen)
			}
		})
	}
}

func TestTransitionHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Vendor confirms",
			body: `{"status":"confirmed"}`,
			prepareMock: func() {
				confirmed := sampleBooking()
				confirmed.Status = domain.BookingConfirmed
				service.EXPECT().
					Transition(gomock.Any(), int64(55), domain.BookingConfirmed, int64(10), domain.RoleVendor).
					Return(confirmed, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Transition not allowed",
			body: `{"status":"completed"}`,
			prepareMock: func() {
				service.EXPECT().
					Transition(gomock.Any(), int64(55), domain.BookingCompleted, int64(10), domain.RoleVendor).
					Return(nil, &bookingservice.InvalidTransitionError{From: domain.BookingPending, To: domain.BookingCompleted})
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Cancellation cutoff passed",
			body: `{"status":"cancelled"}`,
			prepareMock: func() {
				service.EXPECT().
					Transition(gomock.Any(), int64(55), domain.BookingCancelled, int64(10), domain.RoleVendor).
					Return(nil, bookingservice.ErrTooLateToCancel)
			},
			expectedCode: http.StatusUnprocessableEntity,
		},
		{
			name:         "Invalid request body",
			body:         `{"status":}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/bookings/55/status", bytes.NewBufferString(tt.body))
			r = r.WithContext(authContext(10, domain.RoleVendor))
			r = withURLParam(r, "id", "55")
			w := httptest.NewRecorder()

			handler.Transition(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestRescheduleHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful reschedule",
			body: `{"date":"2026-09-15","start_min":600,"duration_min":60}`,
			prepareMock: func() {
				service.EXPECT().
					Reschedule(gomock.Any(), bookingservice.RescheduleParams{
						BookingID:   55,
						Date:        time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
						StartMin:    600,
						DurationMin: 60,
					}, int64(10), domain.RoleCustomer).
					Return(sampleBooking(), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "New slot taken",
			body: `{"date":"2026-09-15","start_min":600,"duration_min":60}`,
			prepareMock: func() {
				service.EXPECT().
					Reschedule(gomock.Any(), gomock.Any(), int64(10), domain.RoleCustomer).
					Return(nil, &bookingservice.ConflictError{ConflictingBookingID: 77})
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "Invalid date",
			body:         `{"date":"tomorrow","start_min":600,"duration_min":60}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodPost, "/api/bookings/55/reschedule", bytes.NewBufferString(tt.body))
			r = r.WithContext(authContext(10, domain.RoleCustomer))
			r = withURLParam(r, "id", "55")
			w := httptest.NewRecorder()

			handler.Reschedule(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestAvailabilityHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		target       string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Slot is free",
			target: "/api/bookings/availability?staff_id=3&salon_id=2&date=2026-09-14&start_min=840&duration_min=60",
			prepareMock: func() {
				service.EXPECT().
					CheckAvailability(gomock.Any(), int64(3), int64(2),
						time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
						domain.TimeRange{StartMin: 840, EndMin: 900}, int64(0)).
					Return(nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "Slot is taken",
			target: "/api/bookings/availability?staff_id=3&salon_id=2&date=2026-09-14&start_min=840&duration_min=60",
			prepareMock: func() {
				service.EXPECT().
					CheckAvailability(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&bookingservice.ConflictError{ConflictingBookingID: 44})
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "Missing parameters",
			target:       "/api/bookings/availability?staff_id=3",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Range past midnight",
			target:       "/api/bookings/availability?staff_id=3&salon_id=2&date=2026-09-14&start_min=1400&duration_min=60",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			r = r.WithContext(authContext(10, domain.RoleCustomer))
			w := httptest.NewRecorder()

			handler.Availability(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

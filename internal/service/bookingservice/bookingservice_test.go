package bookingservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/pg"
	"github.com/dmarkhas/salonbook/internal/service/walletservice"
)

var testDate = time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

func testConfig() Config {
	return Config{
		DefaultCommissionRate: decimal.NewFromInt(15),
		CancellationCutoff:    2 * time.Hour,
		PlatformAccountID:     1,
	}
}

func newMocks(t *testing.T) (*MockRepo, *MockSalonRepo, *MockLedger, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	return NewMockRepo(ctrl), NewMockSalonRepo(ctrl), NewMockLedger(ctrl), pg.NewMockTXManager(ctrl)
}

func passthroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().
		Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		}).
		AnyTimes()
}

func mustRange(t *testing.T, startMin, endMin int) domain.TimeRange {
	rng, err := domain.NewTimeRange(startMin, endMin)
	require.NoError(t, err)
	return rng
}

func TestCheckAvailability(t *testing.T) {
	tests := []struct {
		name            string
		existing        []domain.Booking
		candidate       domain.TimeRange
		exclude         int64
		expectedConflict int64
	}{
		{
			name:      "empty schedule",
			existing:  nil,
			candidate: domain.TimeRange{StartMin: 840, EndMin: 900},
		},
		{
			name: "overlap with an active booking",
			existing: []domain.Booking{
				{ID: 5, Range: domain.TimeRange{StartMin: 840, EndMin: 900}},
			},
			candidate:        domain.TimeRange{StartMin: 870, EndMin: 930},
			expectedConflict: 5,
		},
		{
			name: "back to back slots do not conflict",
			existing: []domain.Booking{
				{ID: 5, Range: domain.TimeRange{StartMin: 840, EndMin: 900}},
			},
			candidate: domain.TimeRange{StartMin: 900, EndMin: 960},
		},
		{
			name: "excluded booking is skipped",
			existing: []domain.Booking{
				{ID: 5, Range: domain.TimeRange{StartMin: 840, EndMin: 900}},
			},
			candidate: domain.TimeRange{StartMin: 850, EndMin: 910},
			exclude:   5,
		},
		{
			name: "first conflicting booking wins",
			existing: []domain.Booking{
				{ID: 5, Range: domain.TimeRange{StartMin: 600, EndMin: 660}},
				{ID: 6, Range: domain.TimeRange{StartMin: 650, EndMin: 700}},
			},
			candidate:        domain.TimeRange{StartMin: 640, EndMin: 680},
			expectedConflict: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, salonRepo, ledger, txManager := newMocks(t)
			repo.EXPECT().
				FindActiveForSchedule(gomock.Any(), int64(3), int64(2), testDate).
				Return(tt.existing, nil)

			service := New(repo, salonRepo, ledger, txManager, testConfig())
			err := service.CheckAvailability(context.Background(), 3, 2, testDate, tt.candidate, tt.exclude)
			if tt.expectedConflict != 0 {
				var conflict *ConflictError
				require.ErrorAs(t, err, &conflict)
				assert.Equal(t, tt.expectedConflict, conflict.ConflictingBookingID)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	baseParams := CreateParams{
		CustomerID:    10,
		SalonID:       2,
		StaffID:       3,
		ServiceID:     4,
		Date:          testDate,
		StartMin:      840,
		DurationMin:   60,
		TotalAmount:   10000,
		PaymentMethod: domain.PaymentCash,
	}

	tests := []struct {
		name               string
		params             func() CreateParams
		prepareMock        func(repo *MockRepo, salonRepo *MockSalonRepo)
		expectedCommission int64
		expectedPayout     int64
		expectedError      error
		expectConflict     bool
	}{
		{
			name:   "books a free slot with the default rate",
			params: func() CreateParams { return baseParams },
			prepareMock: func(repo *MockRepo, salonRepo *MockSalonRepo) {
				salonRepo.EXPECT().FindByID(gomock.Any(), int64(2)).
					Return(&domain.Salon{ID: 2, OwnerID: 20}, nil)
				repo.EXPECT().LockSchedule(gomock.Any(), int64(3), int64(2), testDate).Return(nil)
				repo.EXPECT().FindActiveForSchedule(gomock.Any(), int64(3), int64(2), testDate).
					Return(nil, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, booking *domain.Booking) error {
						booking.ID = 100
						return nil
					})
			},
			expectedCommission: 1500,
			expectedPayout:     8500,
		},
		{
			name:   "salon override rate wins",
			params: func() CreateParams { return baseParams },
			prepareMock: func(repo *MockRepo, salonRepo *MockSalonRepo) {
				rate := decimal.NewFromInt(20)
				salonRepo.EXPECT().FindByID(gomock.Any(), int64(2)).
					Return(&domain.Salon{ID: 2, OwnerID: 20, CommissionRate: &rate}, nil)
				repo.EXPECT().LockSchedule(gomock.Any(), int64(3), int64(2), testDate).Return(nil)
				repo.EXPECT().FindActiveForSchedule(gomock.Any(), int64(3), int64(2), testDate).
					Return(nil, nil)
				repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
			},
			expectedCommission: 2000,
			expectedPayout:     8000,
		},
		{
			name:   "taken slot reports the conflicting booking",
			params: func() CreateParams { return baseParams },
			prepareMock: func(repo *MockRepo, salonRepo *MockSalonRepo) {
				salonRepo.EXPECT().FindByID(gomock.Any(), int64(2)).
					Return(&domain.Salon{ID: 2, OwnerID: 20}, nil)
				repo.EXPECT().LockSchedule(gomock.Any(), int64(3), int64(2), testDate).Return(nil)
				repo.EXPECT().FindActiveForSchedule(gomock.Any(), int64(3), int64(2), testDate).
					Return([]domain.Booking{
						{ID: 55, Range: domain.TimeRange{StartMin: 870, EndMin: 930}},
					}, nil)
			},
			expectConflict: true,
		},
		{
			name: "unknown salon",
			params: func() CreateParams {
				p := baseParams
				p.SalonID = 99
				return p
			},
			prepareMock: func(repo *MockRepo, salonRepo *MockSalonRepo) {
				salonRepo.EXPECT().FindByID(gomock.Any(), int64(99)).Return(nil, nil)
			},
			expectedError: ErrSalonNotFound,
		},
		{
			name: "invalid range",
			params: func() CreateParams {
				p := baseParams
				p.DurationMin = 0
				return p
			},
			prepareMock:   func(repo *MockRepo, salonRepo *MockSalonRepo) {},
			expectedError: domain.ErrInvalidRange,
		},
		{
			name: "negative amount",
			params: func() CreateParams {
				p := baseParams
				p.TotalAmount = -5
				return p
			},
			prepareMock:   func(repo *MockRepo, salonRepo *MockSalonRepo) {},
			expectedError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, salonRepo, ledger, txManager := newMocks(t)
			passthroughTx(txManager)
			tt.prepareMock(repo, salonRepo)

			service := New(repo, salonRepo, ledger, txManager, testConfig())
			booking, err := service.Create(context.Background(), tt.params())
			switch {
			case tt.expectConflict:
				var conflict *ConflictError
				require.ErrorAs(t, err, &conflict)
				assert.Equal(t, int64(55), conflict.ConflictingBookingID)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
			default:
				require.NoError(t, err)
				assert.Equal(t, domain.BookingPending, booking.Status)
				assert.Equal(t, tt.expectedCommission, booking.PlatformCommission)
				assert.Equal(t, tt.expectedPayout, booking.VendorPayout)
				assert.Equal(t, booking.TotalAmount, booking.PlatformCommission+booking.VendorPayout)
			}
		})
	}
}

func TestTransition(t *testing.T) {
	inProgress := func() *domain.Booking {
		return &domain.Booking{
			ID:                 100,
			CustomerID:         10,
			SalonID:            2,
			StaffID:            3,
			Date:               testDate,
			Range:              domain.TimeRange{StartMin: 840, EndMin: 900},
			Status:             domain.BookingInProgress,
			TotalAmount:        10000,
			PlatformCommission: 1500,
			VendorPayout:       8500,
		}
	}

	t.Run("vendor completes and the ledger is credited once", func(t *testing.T) {
		repo, salonRepo, ledger, txManager := newMocks(t)
		passthroughTx(txManager)

		repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(inProgress(), nil)
		salonRepo.EXPECT().FindByID(gomock.Any(), int64(2)).
			Return(&domain.Salon{ID: 2, OwnerID: 20}, nil).
			Times(2) // actor check, then ledger resolution
		repo.EXPECT().
			UpdateStatusFrom(gomock.Any(), int64(100), domain.BookingInProgress, domain.BookingCompleted).
			Return(true, nil)
		ledger.EXPECT().
			Adjust(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, params walletservice.AdjustParams) (*domain.WalletTransaction, error) {
				assert.Equal(t, int64(20), params.OwnerID)
				assert.Equal(t, int64(8500), params.Amount)
				assert.Equal(t, domain.TxCommission, params.Type)
				assert.True(t, params.BypassFreeze)
				return &domain.WalletTransaction{}, nil
			})
		ledger.EXPECT().
			Adjust(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, params walletservice.AdjustParams) (*domain.WalletTransaction, error) {
				assert.Equal(t, int64(1), params.OwnerID)
				assert.Equal(t, int64(1500), params.Amount)
				return &domain.WalletTransaction{}, nil
			})

		service := New(repo, salonRepo, ledger, txManager, testConfig())
		booking, err := service.Transition(context.Background(), 100, domain.BookingCompleted, 20, domain.RoleVendor)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingCompleted, booking.Status)
	})

	t.Run("completing a completed booking is a no-op", func(t *testing.T) {
		repo, salonRepo, ledger, txManager := newMocks(t)

		done := inProgress()
		done.Status = domain.BookingCompleted
		repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(done, nil)

		service := New(repo, salonRepo, ledger, txManager, testConfig())
		booking, err := service.Transition(context.Background(), 100, domain.BookingCompleted, 20, domain.RoleVendor)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingCompleted, booking.Status)
	})

	t.Run("losing the completion race still succeeds", func(t *testing.T) {
		repo, salonRepo, ledger, txManager := newMocks(t)
		passthroughTx(txManager)

		repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(inProgress(), nil)
		salonRepo.EXPECT().FindByID(gomock.Any(), int64(2)).
			Return(&domain.Salon{ID: 2, OwnerID: 20}, nil)
		repo.EXPECT().
			UpdateStatusFrom(gomock.Any(), int64(100), domain.BookingInProgress, domain.BookingCompleted).
			Return(false, nil)
		raced := inProgress()
		raced.Status = domain.BookingCompleted
		repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(raced, nil)

		service := New(repo, salonRepo, ledger, txManager, testConfig())
		booking, err := service.Transition(context.Background(), 100, domain.BookingCompleted, 20, domain.RoleVendor)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingCompleted, booking.Status)
	})

	t.Run("skipping states is rejected", func(t *testing.T) {
		repo, salonRepo, ledger, txManager := newMocks(t)

		pending := inProgress()
		pending.Status = domain.BookingPending
		repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(pending, nil)

		service := New(repo, salonRepo, ledger, txManager, testConfig())
		_, err := service.Transition(context.Background(), 100, domain.BookingCompleted, 20, domain.RoleVendor)
		var invalid *InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, domain.BookingPending, invalid.From)
	})

	t.Run("customer may not confirm", func(t *testing.T) {
		repo, salonRepo, ledger, txManager := newMocks(t)

		pending := inProgress()
		pending.Status = domain.BookingPending
		repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(pending, nil)

		service := New(repo, salonRepo, ledger, txManager, testConfig())
		_, err := service.Transition(context.Background(), 100, domain.BookingConfirmed, 10, domain.RoleCustomer)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("cancellation inside the cutoff is rejected", func(t *testing.T) {
		repo, salonRepo, ledger, txManager := newMocks(t)

		pending := inProgress()
		pending.Status = domain.BookingPending
		repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(pending, nil)

		service := New(repo, salonRepo, ledger, txManager, testConfig())
		// 90 minutes before the 14:00 start, inside the 2h cutoff.
		service.now = func() time.Time { return testDate.Add(12*time.Hour + 30*time.Minute) }

		_, err := service.Transition(context.Background(), 100, domain.BookingCancelled, 10, domain.RoleCustomer)
		assert.ErrorIs(t, err, ErrTooLateToCancel)
	})

	t.Run("admin cancels inside the cutoff", func(t *testing.T) {
		repo, salonRepo, ledger, txManager := newMocks(t)
		passthroughTx(txManager)

		pending := inProgress()
		pending.Status = domain.BookingPending
		repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(pending, nil)
		repo.EXPECT().
			UpdateStatusFrom(gomock.Any(), int64(100), domain.BookingPending, domain.BookingCancelled).
			Return(true, nil)

		service := New(repo, salonRepo, ledger, txManager, testConfig())
		service.now = func() time.Time { return testDate.Add(12*time.Hour + 30*time.Minute) }

		booking, err := service.Transition(context.Background(), 100, domain.BookingCancelled, 1, domain.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, booking.Status)
	})

	t.Run("customer cancels ahead of the cutoff", func(t *testing.T) {
		repo, salonRepo, ledger, txManager := newMocks(t)
		passthroughTx(txManager)

		pending := inProgress()
		pending.Status = domain.BookingPending
		repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(pending, nil)
		repo.EXPECT().
			UpdateStatusFrom(gomock.Any(), int64(100), domain.BookingPending, domain.BookingCancelled).
			Return(true, nil)

		service := New(repo, salonRepo, ledger, txManager, testConfig())
		service.now = func() time.Time { return testDate.Add(9 * time.Hour) }

		booking, err := service.Transition(context.Background(), 100, domain.BookingCancelled, 10, domain.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, booking.Status)
	})

	t.Run("unknown booking", func(t *testing.T) {
		repo, salonRepo, ledger, txManager := newMocks(t)
		repo.EXPECT().FindByID(gomock.Any(), int64(404)).Return(nil, nil)

		service := New(repo, salonRepo, ledger, txManager, testConfig())
		_, err := service.Transition(context.Background(), 404, domain.BookingConfirmed, 20, domain.RoleVendor)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestReschedule(t *testing.T) {
	pending := func() *domain.Booking {
		return &domain.Booking{
			ID:         100,
			CustomerID: 10,
			SalonID:    2,
			StaffID:    3,
			Date:       testDate,
			Range:      domain.TimeRange{StartMin: 840, EndMin: 900},
			Status:     domain.BookingPending,
		}
	}
	newDate := testDate.AddDate(0, 0, 1)

	t.Run("moves to a free slot excluding itself", func(t *testing.T) {
		repo, salonRepo, ledger, txManager := newMocks(t)
		passthroughTx(txManager)

		repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(pending(), nil)
		repo.EXPECT().LockSchedule(gomock.Any(), int64(3), int64(2), newDate).Return(nil)
		repo.EXPECT().FindActiveForSchedule(gomock.Any(), int64(3), int64(2), newDate).
			Return([]domain.Booking{
				{ID: 100, Range: domain.TimeRange{StartMin: 840, EndMin: 900}},
			}, nil)
		repo.EXPECT().
			UpdateSchedule(gomock.Any(), int64(100), newDate, mustRange(t, 850, 910)).
			Return(true, nil)

		service := New(repo, salonRepo, ledger, txManager, testConfig())
		booking, err := service.Reschedule(context.Background(), RescheduleParams{
			BookingID:   100,
			Date:        newDate,
			StartMin:    850,
			DurationMin: 60,
		}, 10, domain.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, 850, booking.Range.StartMin)
		assert.Equal(t, newDate, booking.Date)
	})

	t.Run("conflicting target slot", func(t *testing.T) {
		repo, salonRepo, ledger, txManager := newMocks(t)
		passthroughTx(txManager)

		repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(pending(), nil)
		repo.EXPECT().LockSchedule(gomock.Any(), int64(3), int64(2), newDate).Return(nil)
		repo.EXPECT().FindActiveForSchedule(gomock.Any(), int64(3), int64(2), newDate).
			Return([]domain.Booking{
				{ID: 77, Range: domain.TimeRange{StartMin: 840, EndMin: 900}},
			}, nil)

		service := New(repo, salonRepo, ledger, txManager, testConfig())
		_, err := service.Reschedule(context.Background(), RescheduleParams{
			BookingID:   100,
			Date:        newDate,
			StartMin:    850,
			DurationMin: 60,
		}, 10, domain.RoleCustomer)
		var conflict *ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, int64(77), conflict.ConflictingBookingID)
	})

	t.Run("booking settled while waiting for the schedule lock", func(t *testing.T) {
		repo, salonRepo, ledger, txManager := newMocks(t)
		passthroughTx(txManager)

		repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(pending(), nil)
		repo.EXPECT().LockSchedule(gomock.Any(), int64(3), int64(2), newDate).Return(nil)
		repo.EXPECT().FindActiveForSchedule(gomock.Any(), int64(3), int64(2), newDate).
			Return(nil, nil)
		repo.EXPECT().
			UpdateSchedule(gomock.Any(), int64(100), newDate, mustRange(t, 850, 910)).
			Return(false, nil)

		service := New(repo, salonRepo, ledger, txManager, testConfig())
		_, err := service.Reschedule(context.Background(), RescheduleParams{
			BookingID:   100,
			Date:        newDate,
			StartMin:    850,
			DurationMin: 60,
		}, 10, domain.RoleCustomer)
		var invalid *InvalidTransitionError
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("only pending and confirmed can move", func(t *testing.T) {
		repo, salonRepo, ledger, txManager := newMocks(t)

		done := pending()
		done.Status = domain.BookingCompleted
		repo.EXPECT().FindByID(gomock.Any(), int64(100)).Return(done, nil)

		service := New(repo, salonRepo, ledger, txManager, testConfig())
		_, err := service.Reschedule(context.Background(), RescheduleParams{
			BookingID:   100,
			Date:        newDate,
			StartMin:    850,
			DurationMin: 60,
		}, 10, domain.RoleCustomer)
		var invalid *InvalidTransitionError
		assert.ErrorAs(t, err, &invalid)
	})
}

func TestListForSalon(t *testing.T) {
	tests := []struct {
		name          string
		actorID       int64
		actorRole     domain.Role
		prepareMock   func(repo *MockRepo, salonRepo *MockSalonRepo)
		expectedError error
	}{
		{
			name:      "owner lists own salon",
			actorID:   20,
			actorRole: domain.RoleVendor,
			prepareMock: func(repo *MockRepo, salonRepo *MockSalonRepo) {
				salonRepo.EXPECT().FindByID(gomock.Any(), int64(2)).
					Return(&domain.Salon{ID: 2, OwnerID: 20}, nil)
				repo.EXPECT().FindBySalon(gomock.Any(), int64(2)).
					Return([]domain.Booking{{ID: 1}}, nil)
			},
		},
		{
			name:      "admin skips the ownership check",
			actorID:   1,
			actorRole: domain.RoleAdmin,
			prepareMock: func(repo *MockRepo, salonRepo *MockSalonRepo) {
				repo.EXPECT().FindBySalon(gomock.Any(), int64(2)).
					Return([]domain.Booking{{ID: 1}}, nil)
			},
		},
		{
			name:      "stranger is rejected",
			actorID:   99,
			actorRole: domain.RoleVendor,
			prepareMock: func(repo *MockRepo, salonRepo *MockSalonRepo) {
				salonRepo.EXPECT().FindByID(gomock.Any(), int64(2)).
					Return(&domain.Salon{ID: 2, OwnerID: 20}, nil)
			},
			expectedError: ErrPermissionDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, salonRepo, ledger, txManager := newMocks(t)
			tt.prepareMock(repo, salonRepo)

			service := New(repo, salonRepo, ledger, txManager, testConfig())
			bookings, err := service.ListForSalon(context.Background(), 2, tt.actorID, tt.actorRole)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Len(t, bookings, 1)
			}
		})
	}
}

func TestGetByID(t *testing.T) {
	repo, salonRepo, ledger, txManager := newMocks(t)
	service := New(repo, salonRepo, ledger, txManager, testConfig())

	repo.EXPECT().FindByID(gomock.Any(), int64(100)).
		Return(&domain.Booking{ID: 100}, nil)
	booking, err := service.GetByID(context.Background(), 100)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), booking.ID)

	repo.EXPECT().FindByID(gomock.Any(), int64(404)).Return(nil, nil)
	_, err = service.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	repo.EXPECT().FindByID(gomock.Any(), int64(100)).
		Return(nil, errors.New("database error"))
	_, err = service.GetByID(context.Background(), 100)
	assert.Error(t, err)
}

package bookingservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/metrics"
	"github.com/dmarkhas/salonbook/internal/pg"
	"github.com/dmarkhas/salonbook/internal/service/walletservice"
)

type Repo interface {
	LockSchedule(ctx context.Context, staffID, salonID int64, date time.Time) error
	FindActiveForSchedule(ctx context.Context, staffID, salonID int64, date time.Time) ([]domain.Booking, error)
	Save(ctx context.Context, booking *domain.Booking) error
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error)
	UpdateSchedule(ctx context.Context, id int64, date time.Time, rng domain.TimeRange) (bool, error)
	FindByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error)
	FindBySalon(ctx context.Context, salonID int64) ([]domain.Booking, error)
	FindForSettlement(ctx context.Context, now time.Time, limit uint32) ([]domain.Booking, error)
}

type SalonRepo interface {
	FindByID(ctx context.Context, salonID int64) (*domain.Salon, error)
}

type Ledger interface {
	Adjust(ctx context.Context, params walletservice.AdjustParams) (*domain.WalletTransaction, error)
}

type Config struct {
	DefaultCommissionRate decimal.Decimal
	CancellationCutoff    time.Duration
	PlatformAccountID     int64
}

type Service struct {
	repo      Repo
	salonRepo SalonRepo
	ledger    Ledger
	txManager pg.TXManager
	cfg       Config
	now       func() time.Time
}

func New(repo Repo, salonRepo SalonRepo, ledger Ledger, txManager pg.TXManager, cfg Config) *Service {
	return &Service{
		repo:      repo,
		salonRepo: salonRepo,
		ledger:    ledger,
		txManager: txManager,
		cfg:       cfg,
		now:       time.Now,
	}
}

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrSalonNotFound    = errors.New("salon not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrTooLateToCancel  = errors.New("too late to cancel")
)

// ConflictError reports the booking that already occupies the requested slot.
type ConflictError struct {
	ConflictingBookingID int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot conflicts with booking %d", e.ConflictingBookingID)
}

type InvalidTransitionError struct {
	From domain.BookingStatus
	To   domain.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

type transitionKey struct {
	from domain.BookingStatus
	to   domain.BookingStatus
}

var transitionRoles = map[transitionKey][]domain.Role{
	{domain.BookingPending, domain.BookingConfirmed}:    {domain.RoleVendor, domain.RoleAdmin},
	{domain.BookingPending, domain.BookingCancelled}:    {domain.RoleCustomer, domain.RoleVendor, domain.RoleAdmin},
	{domain.BookingConfirmed, domain.BookingCancelled}:  {domain.RoleCustomer, domain.RoleVendor, domain.RoleAdmin},
	{domain.BookingConfirmed, domain.BookingInProgress}: {domain.RoleVendor, domain.RoleAdmin},
	{domain.BookingInProgress, domain.BookingCompleted}: {domain.RoleVendor, domain.RoleAdmin},
}

// CheckAvailability reports whether the candidate range is free for the
// staff member on that date. excludeBookingID skips the booking being
// rescheduled so it does not conflict with itself; pass 0 for new bookings.
//
// The read is only race-free against concurrent inserts when the caller
// holds the schedule lock, which Create and Reschedule do.
func (s *Service) CheckAvailability(ctx context.Context, staffID, salonID int64, date time.Time, candidate domain.TimeRange, excludeBookingID int64) error {
	bookings, err := s.repo.FindActiveForSchedule(ctx, staffID, salonID, date)
	if err != nil {
		zap.L().Error("failed to fetch active bookings", zap.Error(err))
		return err
	}

	for _, booking := range bookings {
		if booking.ID == excludeBookingID {
			continue
		}
		if booking.Range.Overlaps(candidate) {
			return &ConflictError{ConflictingBookingID: booking.ID}
		}
	}
	return nil
}

type CreateParams struct {
	CustomerID    int64
	SalonID       int64
	StaffID       int64
	ServiceID     int64
	Date          time.Time
	StartMin      int
	DurationMin   int
	TotalAmount   int64
	PaymentMethod domain.PaymentMethod
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*domain.Booking, error) {
	rng, err := domain.TimeRangeFromDuration(params.StartMin, params.DurationMin)
	if err != nil {
		return nil, err
	}
	if params.TotalAmount < 0 {
		return nil, ErrInvalidAmount
	}
	if params.PaymentMethod != domain.PaymentCash && params.PaymentMethod != domain.PaymentOnline {
		return nil, fmt.Errorf("unknown payment method: %s", params.PaymentMethod)
	}

	salon, err := s.salonRepo.FindByID(ctx, params.SalonID)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, ErrSalonNotFound
	}

	rate := s.cfg.DefaultCommissionRate
	if salon.CommissionRate != nil {
		rate = *salon.CommissionRate
	}
	commission, payout, err := SplitAmount(params.TotalAmount, rate)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		CustomerID:         params.CustomerID,
		SalonID:            params.SalonID,
		StaffID:            params.StaffID,
		ServiceID:          params.ServiceID,
		Date:               params.Date,
		Range:              rng,
		Status:             domain.BookingPending,
		TotalAmount:        params.TotalAmount,
		PlatformCommission: commission,
		VendorPayout:       payout,
		PaymentMethod:      params.PaymentMethod,
		PaymentStatus:      domain.PaymentPendingStatus,
	}

	// Check and insert run as one critical section per (staff, salon, date):
	// the schedule lock closes the race where two requests both see a free
	// slot and both insert.
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.repo.LockSchedule(ctx, params.StaffID, params.SalonID, params.Date); err != nil {
			return err
		}
		if err := s.CheckAvailability(ctx, params.StaffID, params.SalonID, params.Date, rng, 0); err != nil {
			return err
		}
		return s.repo.Save(ctx, booking)
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			metrics.BookingConflicts.Inc()
		}
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	zap.L().Info("booking created",
		zap.Int64("bookingID", booking.ID),
		zap.Int64("staffID", booking.StaffID),
		zap.String("range", booking.Range.String()),
	)
	return booking, nil
}

// Transition moves a booking through its lifecycle. Completing an already
// completed booking is a no-op success so duplicate completion requests
// cannot double-fire the commission ledger entries.
func (s *Service) Transition(ctx context.Context, bookingID int64, target domain.BookingStatus, actorID int64, actorRole domain.Role) (*domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	if target == domain.BookingCompleted && booking.Status == domain.BookingCompleted {
		return booking, nil
	}

	roles, ok := transitionRoles[transitionKey{from: booking.Status, to: target}]
	if !ok {
		return nil, &InvalidTransitionError{From: booking.Status, To: target}
	}
	if err := s.checkActor(ctx, booking, actorID, actorRole, roles); err != nil {
		return nil, err
	}

	if target == domain.BookingCancelled && actorRole != domain.RoleAdmin {
		if s.withinCancellationCutoff(booking) {
			return nil, ErrTooLateToCancel
		}
	}

	from := booking.Status
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		moved, err := s.repo.UpdateStatusFrom(ctx, bookingID, from, target)
		if err != nil {
			return err
		}
		if !moved {
			// Lost a race with a concurrent transition. Re-read to decide
			// between idempotent completion and a genuine rejection.
			current, err := s.repo.FindByID(ctx, bookingID)
			if err != nil {
				return err
			}
			if current != nil && target == domain.BookingCompleted && current.Status == domain.BookingCompleted {
				booking = current
				return nil
			}
			status := domain.BookingStatus("unknown")
			if current != nil {
				status = current.Status
			}
			return &InvalidTransitionError{From: status, To: target}
		}

		booking.Status = target
		if target == domain.BookingCompleted {
			return s.recordCompletionLedger(ctx, booking)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingTransitions.WithLabelValues(string(target)).Inc()
	zap.L().Info("booking transitioned",
		zap.Int64("bookingID", bookingID),
		zap.String("from", string(from)),
		zap.String("to", string(target)),
	)
	return booking, nil
}

// recordCompletionLedger credits the vendor and the platform with their
// shares of the booking total. Runs in the same transaction as the status
// flip, and the conditional flip guarantees it runs at most once.
func (s *Service) recordCompletionLedger(ctx context.Context, booking *domain.Booking) error {
	salon, err := s.salonRepo.FindByID(ctx, booking.SalonID)
	if err != nil {
		return err
	}
	if salon == nil {
		return ErrSalonNotFound
	}

	ref := fmt.Sprintf("booking:%d", booking.ID)
	if booking.VendorPayout > 0 {
		_, err = s.ledger.Adjust(ctx, walletservice.AdjustParams{
			OwnerID:      salon.OwnerID,
			Amount:       booking.VendorPayout,
			Type:         domain.TxCommission,
			Description:  fmt.Sprintf("vendor share for booking %d", booking.ID),
			ReferenceID:  &ref,
			BypassFreeze: true,
		})
		if err != nil {
			return err
		}
	}
	if booking.PlatformCommission > 0 {
		_, err = s.ledger.Adjust(ctx, walletservice.AdjustParams{
			OwnerID:      s.cfg.PlatformAccountID,
			Amount:       booking.PlatformCommission,
			Type:         domain.TxCommission,
			Description:  fmt.Sprintf("platform commission for booking %d", booking.ID),
			ReferenceID:  &ref,
			BypassFreeze: true,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) withinCancellationCutoff(booking *domain.Booking) bool {
	if s.cfg.CancellationCutoff <= 0 {
		return false
	}
	start := booking.Date.Add(time.Duration(booking.Range.StartMin) * time.Minute)
	return s.now().Add(s.cfg.CancellationCutoff).After(start)
}

func (s *Service) checkActor(ctx context.Context, booking *domain.Booking, actorID int64, actorRole domain.Role, allowed []domain.Role) error {
	permitted := false
	for _, role := range allowed {
		if role == actorRole {
			permitted = true
			break
		}
	}
	if !permitted {
		return ErrPermissionDenied
	}

	switch actorRole {
	case domain.RoleCustomer:
		if booking.CustomerID != actorID {
			return ErrPermissionDenied
		}
	case domain.RoleVendor:
		salon, err := s.salonRepo.FindByID(ctx, booking.SalonID)
		if err != nil {
			return err
		}
		if salon == nil || salon.OwnerID != actorID {
			return ErrPermissionDenied
		}
	}
	return nil
}

type RescheduleParams struct {
	BookingID   int64
	Date        time.Time
	StartMin    int
	DurationMin int
}

// Reschedule moves a pending or confirmed booking to a new slot, re-running
// the availability check with the booking itself excluded.
func (s *Service) Reschedule(ctx context.Context, params RescheduleParams, actorID int64, actorRole domain.Role) (*domain.Booking, error) {
	rng, err := domain.TimeRangeFromDuration(params.StartMin, params.DurationMin)
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.FindByID(ctx, params.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.Status != domain.BookingPending && booking.Status != domain.BookingConfirmed {
		return nil, &InvalidTransitionError{From: booking.Status, To: booking.Status}
	}
	if err := s.checkActor(ctx, booking, actorID, actorRole, []domain.Role{domain.RoleCustomer, domain.RoleVendor, domain.RoleAdmin}); err != nil {
		return nil, err
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.repo.LockSchedule(ctx, booking.StaffID, booking.SalonID, params.Date); err != nil {
			return err
		}
		if err := s.CheckAvailability(ctx, booking.StaffID, booking.SalonID, params.Date, rng, booking.ID); err != nil {
			return err
		}
		moved, err := s.repo.UpdateSchedule(ctx, booking.ID, params.Date, rng)
		if err != nil {
			return err
		}
		// The status pre-check ran outside the transaction; a concurrent
		// cancellation or settlement may have won the race.
		if !moved {
			return &InvalidTransitionError{From: booking.Status, To: booking.Status}
		}
		return nil
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			metrics.BookingConflicts.Inc()
		}
		return nil, err
	}

	booking.Date = params.Date
	booking.Range = rng
	zap.L().Info("booking rescheduled", zap.Int64("bookingID", booking.ID), zap.String("range", rng.String()))
	return booking, nil
}

func (s *Service) ListForCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	bookings, err := s.repo.FindByCustomer(ctx, customerID)
	if err != nil {
		zap.L().Error("failed to get customer bookings", zap.Error(err))
		return nil, err
	}
	return bookings, nil
}

func (s *Service) ListForSalon(ctx context.Context, salonID, actorID int64, actorRole domain.Role) ([]domain.Booking, error) {
	if actorRole != domain.RoleAdmin {
		salon, err := s.salonRepo.FindByID(ctx, salonID)
		if err != nil {
			return nil, err
		}
		if salon == nil {
			return nil, ErrSalonNotFound
		}
		if salon.OwnerID != actorID {
			return nil, ErrPermissionDenied
		}
	}
	bookings, err := s.repo.FindBySalon(ctx, salonID)
	if err != nil {
		zap.L().Error("failed to get salon bookings", zap.Error(err))
		return nil, err
	}
	return bookings, nil
}

func (s *Service) GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	booking, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

// FindForSettlement exposes overdue in-progress bookings to the settlement
// worker.
func (s *Service) FindForSettlement(ctx context.Context, now time.Time, limit uint32) ([]domain.Booking, error) {
	return s.repo.FindForSettlement(ctx, now, limit)
}

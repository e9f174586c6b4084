package settlement

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dmarkhas/salonbook/internal/config"
	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/pkg/clients"
)

const (
	maxNotifyRetries = 3
	retryInterval    = time.Second * 1
)

var settlingBookings sync.Map

type BookingService interface {
	FindForSettlement(ctx context.Context, now time.Time, limit uint32) ([]domain.Booking, error)
	Transition(ctx context.Context, bookingID int64, target domain.BookingStatus, actorID int64, actorRole domain.Role) (*domain.Booking, error)
}

// Notification is posted to the notify endpoint after a booking is settled.
type Notification struct {
	BookingID    int64  `json:"booking_id"`
	SalonID      int64  `json:"salon_id"`
	Status       string `json:"status"`
	VendorPayout int64  `json:"vendor_payout"`
}

// Service sweeps in-progress bookings whose end time has passed and
// completes them on behalf of the platform, which credits the vendor and
// platform wallets through the usual completion path.
type Service struct {
	bookingService    BookingService
	client            clients.HTTPClientI
	notifyURL         string
	platformAccountID int64
	limit             uint32
	workerPool        WorkerPoolI
	sweepInterval     time.Duration
}

func New(cfg *config.Config, bookingService BookingService, client clients.HTTPClientI) *Service {
	return &Service{
		bookingService:    bookingService,
		client:            client,
		notifyURL:         cfg.NotifyAddress,
		platformAccountID: cfg.PlatformAccountID,
		limit:             1000,
		workerPool:        NewWorkerPool(10),
		sweepInterval:     time.Second * 30,
	}
}

func (s *Service) Start(ctx context.Context) {
	zap.L().Info("Settlement service started")
	go s.run(ctx)
}

func (s *Service) run(ctx context.Context) {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			zap.L().Info("Context canceled, stopping settlement service")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Service) sweep(ctx context.Context) {
	bookings, err := s.bookingService.FindForSettlement(ctx, time.Now().UTC(), atomic.LoadUint32(&s.limit))
	if err != nil {
		zap.L().Error("Failed to fetch bookings for settlement", zap.Error(err))
		return
	}

	var g errgroup.Group
	for _, booking := range bookings {
		booking := booking

		if _, loaded := settlingBookings.LoadOrStore(booking.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer settlingBookings.Delete(booking.ID)
				return s.settle(ctx, booking)
			})
			if err != nil {
				settlingBookings.Delete(booking.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("Error settling bookings", zap.Error(err))
	}
}

func (s *Service) settle(ctx context.Context, booking domain.Booking) error {
	settled, err := s.bookingService.Transition(ctx, booking.ID, domain.BookingCompleted, s.platformAccountID, domain.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to settle booking %d: %w", booking.ID, err)
	}

	zap.L().Info("Booking settled",
		zap.Int64("bookingID", settled.ID),
		zap.Int64("salonID", settled.SalonID),
		zap.Int64("vendorPayout", settled.VendorPayout),
	)

	if s.notifyURL == "" {
		return nil
	}
	return s.notify(ctx, settled)
}

func (s *Service) notify(ctx context.Context, booking *domain.Booking) error {
	payload, err := json.Marshal(Notification{
		BookingID:    booking.ID,
		SalonID:      booking.SalonID,
		Status:       string(booking.Status),
		VendorPayout: booking.VendorPayout,
	})
	if err != nil {
		return fmt.Errorf("failed to encode settlement notification: %w", err)
	}

	url := s.notifyURL + "/api/notifications/settlements"
	for attempt := 1; attempt <= maxNotifyRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			statusCode, _, err := s.client.Post(url, payload, nil)
			if err == nil && statusCode < 500 {
				return nil
			}
			if attempt < maxNotifyRetries {
				time.Sleep(retryInterval * time.Duration(attempt))
				continue
			}
			if err != nil {
				return fmt.Errorf("failed to notify settlement of booking %d after %d retries: %w", booking.ID, maxNotifyRetries, err)
			}
			zap.L().Warn("Settlement notification rejected",
				zap.Int64("bookingID", booking.ID),
				zap.Int("status", statusCode),
			)
			return nil
		}
	}
	return nil
}

package bookingrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/pg"
)

const bookingColumns = `
	id, customer_id, salon_id, staff_id, service_id, date, start_min, end_min,
	status, total_amount, platform_commission, vendor_payout,
	payment_method, payment_status, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// LockSchedule takes a transaction-scoped advisory lock on the
// (staff, salon, date) schedule key. Availability check and insert run
// under this lock so two concurrent requests cannot both pass the check.
// Must be called inside a transaction.
func (r *Repository) LockSchedule(ctx context.Context, staffID, salonID int64, date time.Time) error {
	query := `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`
	key := scheduleKey(staffID, salonID, date)
	if _, err := r.db.Exec(ctx, query, key); err != nil {
		zap.L().Error("can't lock schedule", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func scheduleKey(staffID, salonID int64, date time.Time) string {
	return fmt.Sprintf("schedule:%d:%d:%s", staffID, salonID, date.Format("2006-01-02"))
}

func (r *Repository) FindActiveForSchedule(ctx context.Context, staffID, salonID int64, date time.Time) ([]domain.Booking, error) {
	query := `
        SELECT` + bookingColumns + `
        FROM bookings
        WHERE staff_id = $1 AND salon_id = $2 AND date = $3
          AND status IN ('pending', 'confirmed', 'in_progress')
        ORDER BY start_min ASC
    `
	rows, err := r.db.Query(ctx, query, staffID, salonID, date)
	if err != nil {
		zap.L().Error("can't get active bookings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *Repository) Save(ctx context.Context, booking *domain.Booking) error {
	query := `
        INSERT INTO bookings (
            customer_id, salon_id, staff_id, service_id, date, start_min, end_min,
            status, total_amount, platform_commission, vendor_payout,
            payment_method, payment_status
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		booking.CustomerID, booking.SalonID, booking.StaffID, booking.ServiceID,
		booking.Date, booking.Range.StartMin, booking.Range.EndMin,
		booking.Status, booking.TotalAmount, booking.PlatformCommission, booking.VendorPayout,
		booking.PaymentMethod, booking.PaymentStatus,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save booking", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `
        SELECT` + bookingColumns + `
        FROM bookings
        WHERE id = $1
    `
	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find booking", zap.Error(err))
		return nil, err
	}
	return booking, nil
}

// UpdateStatusFrom flips the booking status only when the current status
// matches from. Returns false when no row matched, which callers use for
// idempotence and exactly-once guards.
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) (bool, error) {
	query := `
        UPDATE bookings
        SET status = $1, updated_at = now()
        WHERE id = $2 AND status = $3
    `
	tag, err := r.db.Exec(ctx, query, to, id, from)
	if err != nil {
		zap.L().Error("can't update booking status", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateSchedule moves the booking only while it is still pending or
// confirmed. Returns false when the booking reached another status in the
// meantime, so a settled or cancelled booking can never be moved.
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, date time.Time, rng domain.TimeRange) (bool, error) {
	query := `
        UPDATE bookings
        SET date = $1, start_min = $2, end_min = $3, updated_at = now()
        WHERE id = $4 AND status IN ('pending', 'confirmed')
    `
	tag, err := r.db.Exec(ctx, query, date, rng.StartMin, rng.EndMin, id)
	if err != nil {
		zap.L().Error("can't update booking schedule", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) FindByCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error) {
	query := `
        SELECT` + bookingColumns + `
        FROM bookings
        WHERE customer_id = $1
        ORDER BY date DESC, start_min DESC
    `
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		zap.L().Error("can't get customer bookings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func (r *Repository) FindBySalon(ctx context.Context, salonID int64) ([]domain.Booking, error) {
	query := `
        SELECT` + bookingColumns + `
        FROM bookings
        WHERE salon_id = $1
        ORDER BY date DESC, start_min DESC
    `
	rows, err := r.db.Query(ctx, query, salonID)
	if err != nil {
		zap.L().Error("can't get salon bookings", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

// FindForSettlement returns in_progress bookings whose end time has passed.
func (r *Repository) FindForSettlement(ctx context.Context, now time.Time, limit uint32) ([]domain.Booking, error) {
	query := `
        SELECT` + bookingColumns + `
        FROM bookings
        WHERE status = 'in_progress'
          AND (date + make_interval(mins => end_min)) <= $1
        ORDER BY date ASC, end_min ASC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, now, int(limit))
	if err != nil {
		zap.L().Error("can't get bookings for settlement", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanBookings(rows)
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.CustomerID, &b.SalonID, &b.StaffID, &b.ServiceID,
		&b.Date, &b.Range.StartMin, &b.Range.EndMin,
		&b.Status, &b.TotalAmount, &b.PlatformCommission, &b.VendorPayout,
		&b.PaymentMethod, &b.PaymentStatus, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			zap.L().Error("can't scan booking row", zap.Error(err))
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

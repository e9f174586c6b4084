package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleCustomer Role = "customer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           int64     `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

// Salon carries only what the booking core needs: the owning vendor and
// an optional commission rate override. A nil rate means the platform
// default applies.
type Salon struct {
	ID             int64            `db:"id"`
	OwnerID        int64            `db:"owner_id"`
	Name           string           `db:"name"`
	CommissionRate *decimal.Decimal `db:"commission_rate"`
	CreatedAt      time.Time        `db:"created_at"`
}

type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

// ActiveBookingStatuses are the statuses that occupy a slot.
// Completed and cancelled bookings never block availability.
var ActiveBookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingInProgress}

type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentOnline PaymentMethod = "online"
)

type PaymentStatus string

const (
	PaymentPendingStatus  PaymentStatus = "pending"
	PaymentPaidStatus     PaymentStatus = "paid"
	PaymentFailedStatus   PaymentStatus = "failed"
	PaymentRefundedStatus PaymentStatus = "refunded"
)

// Booking amounts are integer minor currency units.
// PlatformCommission + VendorPayout always equals TotalAmount.
type Booking struct {
	ID                 int64         `db:"id"`
	CustomerID         int64         `db:"customer_id"`
	SalonID            int64         `db:"salon_id"`
	StaffID            int64         `db:"staff_id"`
	ServiceID          int64         `db:"service_id"`
	Date               time.Time     `db:"date"`
	Range              TimeRange     `db:"-"`
	Status             BookingStatus `db:"status"`
	TotalAmount        int64         `db:"total_amount"`
	PlatformCommission int64         `db:"platform_commission"`
	VendorPayout       int64         `db:"vendor_payout"`
	PaymentMethod      PaymentMethod `db:"payment_method"`
	PaymentStatus      PaymentStatus `db:"payment_status"`
	CreatedAt          time.Time     `db:"created_at"`
	UpdatedAt          time.Time     `db:"updated_at"`
}

// DefaultCurrency is the currency new wallets are denominated in.
const DefaultCurrency = "USD"

type Wallet struct {
	ID        int64     `db:"id"`
	OwnerID   int64     `db:"owner_id"`
	Balance   int64     `db:"balance"`
	Currency  string    `db:"currency"`
	IsFrozen  bool      `db:"is_frozen"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type TransactionType string

const (
	TxCredit     TransactionType = "credit"
	TxDebit      TransactionType = "debit"
	TxRefund     TransactionType = "refund"
	TxCommission TransactionType = "commission"
	TxPayout     TransactionType = "payout"
	TxAdjustment TransactionType = "adjustment"
)

// IsDebit reports whether the type moves money out of the wallet.
func (t TransactionType) IsDebit() bool {
	return t == TxDebit || t == TxPayout
}

// WalletTransaction is an append-only ledger entry. Amount is always a
// positive magnitude; the type determines the sign of the movement.
type WalletTransaction struct {
	ID            string          `db:"id"`
	WalletID      int64           `db:"wallet_id"`
	Type          TransactionType `db:"type"`
	Amount        int64           `db:"amount"`
	BalanceBefore int64           `db:"balance_before"`
	BalanceAfter  int64           `db:"balance_after"`
	Description   string          `db:"description"`
	ReferenceID   *string         `db:"reference_id"`
	CreatedBy     *int64          `db:"created_by"`
	CreatedAt     time.Time       `db:"created_at"`
}

type PayoutStatus string

const (
	PayoutPending  PayoutStatus = "pending"
	PayoutApproved PayoutStatus = "approved"
	PayoutRejected PayoutStatus = "rejected"
)

type PayoutRequest struct {
	ID          int64        `db:"id"`
	SalonID     int64        `db:"salon_id"`
	WalletID    int64        `db:"wallet_id"`
	Amount      int64        `db:"amount"`
	Status      PayoutStatus `db:"status"`
	BankDetails string       `db:"bank_details"`
	ProcessedBy *int64       `db:"processed_by"`
	ProcessedAt *time.Time   `db:"processed_at"`
	Notes       *string      `db:"notes"`
	CreatedAt   time.Time    `db:"created_at"`
}

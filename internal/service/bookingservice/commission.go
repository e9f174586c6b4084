package bookingservice

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRate   = errors.New("commission rate must be within [0, 100]")
	ErrInvalidAmount = errors.New("amount must not be negative")
)

var oneHundred = decimal.NewFromInt(100)

// SplitAmount divides a booking total between the platform and the vendor.
// The commission is rounded half up to the minor unit; the vendor payout is
// the remainder, never rounded on its own, so the two always sum back to
// the total exactly.
func SplitAmount(totalAmount int64, rate decimal.Decimal) (commission, payout int64, err error) {
	if totalAmount < 0 {
		return 0, 0, ErrInvalidAmount
	}
	if rate.IsNegative() || rate.GreaterThan(oneHundred) {
		return 0, 0, ErrInvalidRate
	}

	commission = decimal.NewFromInt(totalAmount).
		Mul(rate).
		Div(oneHundred).
		Round(0).
		IntPart()
	payout = totalAmount - commission
	return commission, payout, nil
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salonbook_bookings_created_total",
		Help: "Number of bookings accepted by the availability engine.",
	})

	BookingConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "salonbook_booking_conflicts_total",
		Help: "Number of booking requests rejected because the slot was taken.",
	})

	BookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salonbook_booking_transitions_total",
		Help: "Number of booking status transitions, by target status.",
	}, []string{"to"})

	LedgerTransactions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salonbook_ledger_transactions_total",
		Help: "Number of wallet ledger transactions, by type.",
	}, []string{"type"})

	PayoutsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "salonbook_payouts_processed_total",
		Help: "Number of processed payout requests, by decision.",
	}, []string{"decision"})
)

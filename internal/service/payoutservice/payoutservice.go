package payoutservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/metrics"
	"github.com/dmarkhas/salonbook/internal/pg"
	"github.com/dmarkhas/salonbook/internal/service/walletservice"
)

type Repo interface {
	Create(ctx context.Context, payout *domain.PayoutRequest) error
	FindByID(ctx context.Context, id int64) (*domain.PayoutRequest, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*domain.PayoutRequest, error)
	MarkProcessed(ctx context.Context, id int64, status domain.PayoutStatus, processedBy int64, processedAt time.Time, notes *string) (bool, error)
	ListBySalon(ctx context.Context, salonID int64) ([]domain.PayoutRequest, error)
	ListPending(ctx context.Context) ([]domain.PayoutRequest, error)
}

type SalonRepo interface {
	FindByID(ctx context.Context, salonID int64) (*domain.Salon, error)
}

type Ledger interface {
	GetByID(ctx context.Context, walletID int64) (*domain.Wallet, error)
	GetOrCreate(ctx context.Context, ownerID int64) (*domain.Wallet, error)
	Adjust(ctx context.Context, params walletservice.AdjustParams) (*domain.WalletTransaction, error)
}

type Service struct {
	repo      Repo
	salonRepo SalonRepo
	ledger    Ledger
	txManager pg.TXManager
	now       func() time.Time
}

func New(repo Repo, salonRepo SalonRepo, ledger Ledger, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		salonRepo: salonRepo,
		ledger:    ledger,
		txManager: txManager,
		now:       time.Now,
	}
}

var (
	ErrPayoutNotFound   = errors.New("payout request not found")
	ErrAlreadyProcessed = errors.New("payout request already processed")
	ErrInvalidAmount    = errors.New("payout amount must be positive")
	ErrInvalidDecision  = errors.New("decision must be approved or rejected")
	ErrSalonNotFound    = errors.New("salon not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// Request creates a pending payout request against the salon owner's
// wallet. Balance sufficiency is deliberately not checked here: the balance
// may change before an admin acts, so it is enforced at approval time.
func (s *Service) Request(ctx context.Context, salonID, actorID, amount int64, bankDetails string) (*domain.PayoutRequest, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

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

	wallet, err := s.ledger.GetOrCreate(ctx, salon.OwnerID)
	if err != nil {
		return nil, err
	}

	payout := &domain.PayoutRequest{
		SalonID:     salonID,
		WalletID:    wallet.ID,
		Amount:      amount,
		Status:      domain.PayoutPending,
		BankDetails: bankDetails,
	}
	if err := s.repo.Create(ctx, payout); err != nil {
		return nil, err
	}

	zap.L().Info("payout requested",
		zap.Int64("payoutID", payout.ID),
		zap.Int64("salonID", salonID),
		zap.Int64("amount", amount),
	)
	return payout, nil
}

// Process applies an admin decision exactly once. Approval debits the
// wallet in the same transaction as the status change; if the wallet no
// longer covers the amount, the payout is auto-rejected with a system note
// instead of staying wedged in pending.
func (s *Service) Process(ctx context.Context, payoutID int64, decision domain.PayoutStatus, processedBy int64, notes *string) (*domain.PayoutRequest, error) {
	if decision != domain.PayoutApproved && decision != domain.PayoutRejected {
		return nil, ErrInvalidDecision
	}

	var processed *domain.PayoutRequest
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		payout, err := s.repo.FindByIDForUpdate(ctx, payoutID)
		if err != nil {
			return err
		}
		if payout == nil {
			return ErrPayoutNotFound
		}
		if payout.Status != domain.PayoutPending {
			return ErrAlreadyProcessed
		}

		outcome := decision
		outcomeNotes := notes
		if decision == domain.PayoutApproved {
			outcome, outcomeNotes, err = s.approve(ctx, payout, processedBy, notes)
			if err != nil {
				return err
			}
		}

		now := s.now()
		moved, err := s.repo.MarkProcessed(ctx, payoutID, outcome, processedBy, now, outcomeNotes)
		if err != nil {
			return err
		}
		if !moved {
			// The row is locked and was pending; a no-op update here means
			// the concurrency control is broken.
			zap.L().Error("payout claim failed despite row lock", zap.Int64("payoutID", payoutID))
			return fmt.Errorf("payout %d: inconsistent processing state", payoutID)
		}

		payout.Status = outcome
		payout.ProcessedBy = &processedBy
		payout.ProcessedAt = &now
		payout.Notes = outcomeNotes
		processed = payout
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PayoutsProcessed.WithLabelValues(string(processed.Status)).Inc()
	zap.L().Info("payout processed",
		zap.Int64("payoutID", payoutID),
		zap.String("decision", string(processed.Status)),
	)
	return processed, nil
}

// approve attempts the ledger debit and downgrades the decision to a
// rejection when funds ran out between request and approval.
func (s *Service) approve(ctx context.Context, payout *domain.PayoutRequest, processedBy int64, notes *string) (domain.PayoutStatus, *string, error) {
	wallet, err := s.ledger.GetByID(ctx, payout.WalletID)
	if err != nil {
		return "", nil, err
	}

	ref := fmt.Sprintf("payout:%d", payout.ID)
	_, err = s.ledger.Adjust(ctx, walletservice.AdjustParams{
		OwnerID:     wallet.OwnerID,
		Amount:      payout.Amount,
		Type:        domain.TxPayout,
		Description: fmt.Sprintf("payout for salon %d", payout.SalonID),
		ReferenceID: &ref,
		CreatedBy:   &processedBy,
	})
	if errors.Is(err, walletservice.ErrInsufficientFunds) {
		note := "auto-rejected: insufficient wallet balance at approval time"
		if notes != nil && *notes != "" {
			note = *notes + "; " + note
		}
		zap.L().Info("payout auto-rejected", zap.Int64("payoutID", payout.ID))
		return domain.PayoutRejected, &note, nil
	}
	if err != nil {
		return "", nil, err
	}
	return domain.PayoutApproved, notes, nil
}

func (s *Service) ListBySalon(ctx context.Context, salonID, actorID int64, actorRole domain.Role) ([]domain.PayoutRequest, error) {
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
	payouts, err := s.repo.ListBySalon(ctx, salonID)
	if err != nil {
		zap.L().Error("failed to fetch salon payouts", zap.Error(err))
		return nil, err
	}
	return payouts, nil
}

func (s *Service) ListPending(ctx context.Context) ([]domain.PayoutRequest, error) {
	payouts, err := s.repo.ListPending(ctx)
	if err != nil {
		zap.L().Error("failed to fetch pending payouts", zap.Error(err))
		return nil, err
	}
	return payouts, nil
}

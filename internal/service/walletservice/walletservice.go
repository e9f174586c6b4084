package walletservice

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/metrics"
	"github.com/dmarkhas/salonbook/internal/pg"
)

type Repo interface {
	GetByOwner(ctx context.Context, ownerID int64) (*domain.Wallet, error)
	GetByID(ctx context.Context, walletID int64) (*domain.Wallet, error)
	GetOrCreateForUpdate(ctx context.Context, ownerID int64) (*domain.Wallet, error)
	AppendTransaction(ctx context.Context, tx *domain.WalletTransaction) error
	UpdateBalance(ctx context.Context, walletID, newBalance int64) error
	SetFrozen(ctx context.Context, walletID int64, frozen bool) error
	GetTransactions(ctx context.Context, walletID int64) ([]domain.WalletTransaction, error)
}

// Service is the only writer of wallet balances. Every balance change goes
// through Adjust, which appends a ledger entry and refreshes the cached
// balance in one transaction.
type Service struct {
	repo      Repo
	txManager pg.TXManager
}

func New(repo Repo, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

var (
	ErrWalletNotFound    = errors.New("wallet not found")
	ErrWalletFrozen      = errors.New("wallet is frozen")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

// AdjustParams describes a single ledger movement. Amount is a positive
// magnitude; Type determines the direction, except for adjustments where
// Debit picks it.
type AdjustParams struct {
	OwnerID     int64
	Amount      int64
	Type        domain.TransactionType
	Debit       bool
	Description string
	ReferenceID *string
	CreatedBy   *int64
	// BypassFreeze is the privileged path for admin adjustments and
	// system-recorded movements; the entry is still written to the ledger.
	BypassFreeze bool
}

func (p AdjustParams) isDebit() bool {
	if p.Type == domain.TxAdjustment {
		return p.Debit
	}
	return p.Type.IsDebit()
}

func (s *Service) Adjust(ctx context.Context, params AdjustParams) (*domain.WalletTransaction, error) {
	if params.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	var created *domain.WalletTransaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		wallet, err := s.repo.GetOrCreateForUpdate(ctx, params.OwnerID)
		if err != nil {
			return err
		}

		if wallet.IsFrozen && !params.BypassFreeze {
			return ErrWalletFrozen
		}

		balanceBefore := wallet.Balance
		balanceAfter := balanceBefore + params.Amount
		if params.isDebit() {
			balanceAfter = balanceBefore - params.Amount
		}
		if balanceAfter < 0 && params.Type != domain.TxAdjustment {
			return ErrInsufficientFunds
		}

		tx := &domain.WalletTransaction{
			ID:            uuid.NewString(),
			WalletID:      wallet.ID,
			Type:          params.Type,
			Amount:        params.Amount,
			BalanceBefore: balanceBefore,
			BalanceAfter:  balanceAfter,
			Description:   params.Description,
			ReferenceID:   params.ReferenceID,
			CreatedBy:     params.CreatedBy,
		}
		if err := s.repo.AppendTransaction(ctx, tx); err != nil {
			return err
		}
		if err := s.repo.UpdateBalance(ctx, wallet.ID, balanceAfter); err != nil {
			return err
		}

		created = tx
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.LedgerTransactions.WithLabelValues(string(params.Type)).Inc()
	zap.L().Info("wallet adjusted",
		zap.Int64("ownerID", params.OwnerID),
		zap.String("type", string(params.Type)),
		zap.Int64("amount", params.Amount),
		zap.Int64("balanceAfter", created.BalanceAfter),
	)
	return created, nil
}

// ToggleFreeze flips the freeze flag. Asking for the current state is a
// no-op, not an error.
func (s *Service) ToggleFreeze(ctx context.Context, walletID int64, frozen bool) error {
	wallet, err := s.repo.GetByID(ctx, walletID)
	if err != nil {
		return err
	}
	if wallet == nil {
		return ErrWalletNotFound
	}
	if wallet.IsFrozen == frozen {
		return nil
	}
	if err := s.repo.SetFrozen(ctx, walletID, frozen); err != nil {
		return err
	}
	zap.L().Info("wallet freeze toggled", zap.Int64("walletID", walletID), zap.Bool("frozen", frozen))
	return nil
}

func (s *Service) History(ctx context.Context, walletID int64) ([]domain.WalletTransaction, error) {
	wallet, err := s.repo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}
	transactions, err := s.repo.GetTransactions(ctx, walletID)
	if err != nil {
		zap.L().Error("failed to fetch wallet transactions", zap.Error(err))
		return nil, err
	}
	return transactions, nil
}

func (s *Service) GetByOwner(ctx context.Context, ownerID int64) (*domain.Wallet, error) {
	wallet, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		zap.L().Error("failed to get wallet", zap.Error(err))
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}
	return wallet, nil
}

func (s *Service) GetByID(ctx context.Context, walletID int64) (*domain.Wallet, error) {
	wallet, err := s.repo.GetByID(ctx, walletID)
	if err != nil {
		zap.L().Error("failed to get wallet", zap.Error(err))
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}
	return wallet, nil
}

// GetOrCreate resolves the owner's wallet, creating an empty one on first
// use. Payout requests need the wallet row to exist before any money moves.
func (s *Service) GetOrCreate(ctx context.Context, ownerID int64) (*domain.Wallet, error) {
	var wallet *domain.Wallet
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		wallet, err = s.repo.GetOrCreateForUpdate(ctx, ownerID)
		return err
	})
	if err != nil {
		zap.L().Error("failed to get or create wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

package walletrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/pg"
)

const walletColumns = `id, owner_id, balance, currency, is_frozen, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByOwner(ctx context.Context, ownerID int64) (*domain.Wallet, error) {
	query := `
        SELECT ` + walletColumns + `
        FROM wallets
        WHERE owner_id = $1
    `
	wallet, err := scanWallet(r.db.QueryRow(ctx, query, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't get wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

func (r *Repository) GetByID(ctx context.Context, walletID int64) (*domain.Wallet, error) {
	query := `
        SELECT ` + walletColumns + `
        FROM wallets
        WHERE id = $1
    `
	wallet, err := scanWallet(r.db.QueryRow(ctx, query, walletID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't get wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

// GetOrCreateForUpdate resolves the owner's wallet under a row lock,
// lazily creating it with a zero balance on first use. Must be called
// inside a transaction; the lock serializes concurrent adjustments.
func (r *Repository) GetOrCreateForUpdate(ctx context.Context, ownerID int64) (*domain.Wallet, error) {
	insert := `
        INSERT INTO wallets (owner_id)
        VALUES ($1)
        ON CONFLICT (owner_id) DO NOTHING
    `
	if _, err := r.db.Exec(ctx, insert, ownerID); err != nil {
		zap.L().Error("can't create wallet", zap.Error(err))
		return nil, err
	}

	query := `
        SELECT ` + walletColumns + `
        FROM wallets
        WHERE owner_id = $1
        FOR UPDATE
    `
	wallet, err := scanWallet(r.db.QueryRow(ctx, query, ownerID))
	if err != nil {
		zap.L().Error("can't lock wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

// GetByIDForUpdate locks an existing wallet row. Must be called inside a
// transaction.
func (r *Repository) GetByIDForUpdate(ctx context.Context, walletID int64) (*domain.Wallet, error) {
	query := `
        SELECT ` + walletColumns + `
        FROM wallets
        WHERE id = $1
        FOR UPDATE
    `
	wallet, err := scanWallet(r.db.QueryRow(ctx, query, walletID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

func (r *Repository) AppendTransaction(ctx context.Context, tx *domain.WalletTransaction) error {
	query := `
        INSERT INTO wallet_transactions (
            id, wallet_id, type, amount, balance_before, balance_after,
            description, reference_id, created_by
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at
    `
	err := r.db.QueryRow(ctx, query,
		tx.ID, tx.WalletID, tx.Type, tx.Amount, tx.BalanceBefore, tx.BalanceAfter,
		tx.Description, tx.ReferenceID, tx.CreatedBy,
	).Scan(&tx.CreatedAt)
	if err != nil {
		zap.L().Error("can't append wallet transaction", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) UpdateBalance(ctx context.Context, walletID, newBalance int64) error {
	query := `
        UPDATE wallets
        SET balance = $1, updated_at = now()
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, newBalance, walletID); err != nil {
		zap.L().Error("can't update wallet balance", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) SetFrozen(ctx context.Context, walletID int64, frozen bool) error {
	query := `
        UPDATE wallets
        SET is_frozen = $1, updated_at = now()
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, frozen, walletID); err != nil {
		zap.L().Error("can't update wallet freeze flag", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) GetTransactions(ctx context.Context, walletID int64) ([]domain.WalletTransaction, error) {
	query := `
        SELECT id, wallet_id, type, amount, balance_before, balance_after,
               description, reference_id, created_by, created_at
        FROM wallet_transactions
        WHERE wallet_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, walletID)
	if err != nil {
		zap.L().Error("can't get wallet transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var transactions []domain.WalletTransaction
	for rows.Next() {
		var tx domain.WalletTransaction
		err := rows.Scan(
			&tx.ID, &tx.WalletID, &tx.Type, &tx.Amount, &tx.BalanceBefore, &tx.BalanceAfter,
			&tx.Description, &tx.ReferenceID, &tx.CreatedBy, &tx.CreatedAt,
		)
		if err != nil {
			zap.L().Error("can't scan wallet transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet
	err := row.Scan(&w.ID, &w.OwnerID, &w.Balance, &w.Currency, &w.IsFrozen, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

package payoutrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/pg"
)

const payoutColumns = `
	id, salon_id, wallet_id, amount, status, bank_details,
	processed_by, processed_at, notes, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, payout *domain.PayoutRequest) error {
	query := `
        INSERT INTO payout_requests (salon_id, wallet_id, amount, status, bank_details)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		payout.SalonID, payout.WalletID, payout.Amount, payout.Status, payout.BankDetails,
	).Scan(&payout.ID, &payout.CreatedAt)
	if err != nil {
		zap.L().Error("can't save payout request", zap.Error(err))
		return err
	}
	return nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.PayoutRequest, error) {
	query := `
        SELECT` + payoutColumns + `
        FROM payout_requests
        WHERE id = $1
    `
	payout, err := scanPayout(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find payout request", zap.Error(err))
		return nil, err
	}
	return payout, nil
}

// FindByIDForUpdate locks the payout row for the duration of the enclosing
// transaction, serializing concurrent processing attempts.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id int64) (*domain.PayoutRequest, error) {
	query := `
        SELECT` + payoutColumns + `
        FROM payout_requests
        WHERE id = $1
        FOR UPDATE
    `
	payout, err := scanPayout(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't lock payout request", zap.Error(err))
		return nil, err
	}
	return payout, nil
}

// MarkProcessed records the decision; only a pending payout can be
// processed. Returns false when the payout was already processed.
func (r *Repository) MarkProcessed(ctx context.Context, id int64, status domain.PayoutStatus, processedBy int64, processedAt time.Time, notes *string) (bool, error) {
	query := `
        UPDATE payout_requests
        SET status = $1, processed_by = $2, processed_at = $3, notes = $4
        WHERE id = $5 AND status = 'pending'
    `
	tag, err := r.db.Exec(ctx, query, status, processedBy, processedAt, notes, id)
	if err != nil {
		zap.L().Error("can't mark payout processed", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) ListBySalon(ctx context.Context, salonID int64) ([]domain.PayoutRequest, error) {
	query := `
        SELECT` + payoutColumns + `
        FROM payout_requests
        WHERE salon_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, salonID)
	if err != nil {
		zap.L().Error("can't get salon payout requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanPayouts(rows)
}

func (r *Repository) ListPending(ctx context.Context) ([]domain.PayoutRequest, error) {
	query := `
        SELECT` + payoutColumns + `
        FROM payout_requests
        WHERE status = 'pending'
        ORDER BY created_at ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get pending payout requests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return scanPayouts(rows)
}

func scanPayout(row pgx.Row) (*domain.PayoutRequest, error) {
	var p domain.PayoutRequest
	err := row.Scan(
		&p.ID, &p.SalonID, &p.WalletID, &p.Amount, &p.Status, &p.BankDetails,
		&p.ProcessedBy, &p.ProcessedAt, &p.Notes, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanPayouts(rows pgx.Rows) ([]domain.PayoutRequest, error) {
	var payouts []domain.PayoutRequest
	for rows.Next() {
		p, err := scanPayout(rows)
		if err != nil {
			zap.L().Error("can't scan payout row", zap.Error(err))
			return nil, err
		}
		payouts = append(payouts, *p)
	}
	return payouts, nil
}

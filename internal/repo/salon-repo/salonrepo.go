package salonrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindByID(ctx context.Context, salonID int64) (*domain.Salon, error) {
	query := `
        SELECT id, owner_id, name, commission_rate, created_at
        FROM salons
        WHERE id = $1
    `
	var salon domain.Salon
	err := r.db.QueryRow(ctx, query, salonID).
		Scan(&salon.ID, &salon.OwnerID, &salon.Name, &salon.CommissionRate, &salon.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find salon", zap.Error(err))
		return nil, err
	}
	return &salon, nil
}

func (r *Repository) Create(ctx context.Context, salon *domain.Salon) error {
	query := `
        INSERT INTO salons (owner_id, name, commission_rate)
        VALUES ($1, $2, $3)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query, salon.OwnerID, salon.Name, salon.CommissionRate).
		Scan(&salon.ID, &salon.CreatedAt)
	if err != nil {
		zap.L().Error("can't save salon", zap.Error(err))
		return err
	}
	return nil
}

// UpdateCommissionRate sets the salon's override rate; nil restores the
// platform default.
func (r *Repository) UpdateCommissionRate(ctx context.Context, salonID int64, rate *decimal.Decimal) error {
	query := `
        UPDATE salons
        SET commission_rate = $1
        WHERE id = $2
    `
	if _, err := r.db.Exec(ctx, query, rate, salonID); err != nil {
		zap.L().Error("can't update salon commission rate", zap.Error(err))
		return err
	}
	return nil
}

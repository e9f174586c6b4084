package salonservice

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/dmarkhas/salonbook/internal/domain"
)

type Repo interface {
	FindByID(ctx context.Context, salonID int64) (*domain.Salon, error)
	Create(ctx context.Context, salon *domain.Salon) error
	UpdateCommissionRate(ctx context.Context, salonID int64, rate *decimal.Decimal) error
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

var (
	ErrSalonNotFound = errors.New("salon not found")
	ErrInvalidRate   = errors.New("commission rate must be within [0, 100]")
	ErrEmptyName     = errors.New("salon name must not be empty")
)

var oneHundred = decimal.NewFromInt(100)

func (s *Service) Create(ctx context.Context, ownerID int64, name string) (*domain.Salon, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	salon := &domain.Salon{
		OwnerID: ownerID,
		Name:    name,
	}
	if err := s.repo.Create(ctx, salon); err != nil {
		return nil, err
	}
	zap.L().Info("salon created", zap.Int64("salonID", salon.ID), zap.Int64("ownerID", ownerID))
	return salon, nil
}

func (s *Service) GetByID(ctx context.Context, salonID int64) (*domain.Salon, error) {
	salon, err := s.repo.FindByID(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, ErrSalonNotFound
	}
	return salon, nil
}

// SetCommissionRate sets a salon-specific override; nil restores the
// platform default.
func (s *Service) SetCommissionRate(ctx context.Context, salonID int64, rate *decimal.Decimal) error {
	if rate != nil && (rate.IsNegative() || rate.GreaterThan(oneHundred)) {
		return ErrInvalidRate
	}
	salon, err := s.repo.FindByID(ctx, salonID)
	if err != nil {
		return err
	}
	if salon == nil {
		return ErrSalonNotFound
	}
	if err := s.repo.UpdateCommissionRate(ctx, salonID, rate); err != nil {
		return err
	}
	zap.L().Info("salon commission rate updated", zap.Int64("salonID", salonID))
	return nil
}

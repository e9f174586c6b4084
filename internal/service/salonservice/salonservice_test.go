package salonservice

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/dmarkhas/salonbook/internal/domain"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name          string
		ownerID       int64
		salonName     string
		prepareMock   func(repo *MockRepo)
		expectedError error
	}{
		{
			name:      "creates a salon",
			ownerID:   20,
			salonName: "Glow Studio",
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, salon *domain.Salon) error {
						salon.ID = 2
						return nil
					})
			},
		},
		{
			name:          "empty name is rejected",
			ownerID:       20,
			salonName:     "",
			prepareMock:   func(repo *MockRepo) {},
			expectedError: ErrEmptyName,
		},
		{
			name:      "repo failure",
			ownerID:   20,
			salonName: "Glow Studio",
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tt.prepareMock(repo)

			service := New(repo)
			salon, err := service.Create(context.Background(), tt.ownerID, tt.salonName)
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(2), salon.ID)
				assert.Equal(t, tt.ownerID, salon.OwnerID)
				assert.Nil(t, salon.CommissionRate)
			}
		})
	}
}

func TestGetByID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := NewMockRepo(ctrl)
	service := New(repo)

	repo.EXPECT().FindByID(gomock.Any(), int64(2)).
		Return(&domain.Salon{ID: 2, OwnerID: 20, Name: "Glow Studio"}, nil)
	salon, err := service.GetByID(context.Background(), 2)
	assert.NoError(t, err)
	assert.Equal(t, "Glow Studio", salon.Name)

	repo.EXPECT().FindByID(gomock.Any(), int64(99)).Return(nil, nil)
	_, err = service.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestSetCommissionRate(t *testing.T) {
	tests := []struct {
		name          string
		rate          *decimal.Decimal
		prepareMock   func(repo *MockRepo)
		expectedError error
	}{
		{
			name: "sets an override",
			rate: decimalPtr("12.5"),
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().FindByID(gomock.Any(), int64(2)).
					Return(&domain.Salon{ID: 2}, nil)
				repo.EXPECT().UpdateCommissionRate(gomock.Any(), int64(2), decimalPtr("12.5")).
					Return(nil)
			},
		},
		{
			name: "nil restores the platform default",
			rate: nil,
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().FindByID(gomock.Any(), int64(2)).
					Return(&domain.Salon{ID: 2}, nil)
				repo.EXPECT().UpdateCommissionRate(gomock.Any(), int64(2), gomock.Nil()).
					Return(nil)
			},
		},
		{
			name: "boundary rates are accepted",
			rate: decimalPtr("100"),
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().FindByID(gomock.Any(), int64(2)).
					Return(&domain.Salon{ID: 2}, nil)
				repo.EXPECT().UpdateCommissionRate(gomock.Any(), int64(2), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:          "negative rate is rejected",
			rate:          decimalPtr("-0.01"),
			prepareMock:   func(repo *MockRepo) {},
			expectedError: ErrInvalidRate,
		},
		{
			name:          "rate above 100 is rejected",
			rate:          decimalPtr("100.01"),
			prepareMock:   func(repo *MockRepo) {},
			expectedError: ErrInvalidRate,
		},
		{
			name: "unknown salon",
			rate: decimalPtr("15"),
			prepareMock: func(repo *MockRepo) {
				repo.EXPECT().FindByID(gomock.Any(), int64(2)).Return(nil, nil)
			},
			expectedError: ErrSalonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := NewMockRepo(ctrl)
			tt.prepareMock(repo)

			service := New(repo)
			err := service.SetCommissionRate(context.Background(), 2, tt.rate)
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

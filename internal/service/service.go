package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmarkhas/salonbook/internal/config"
	authhandlers "github.com/dmarkhas/salonbook/internal/handlers/auth"
	payouthandlers "github.com/dmarkhas/salonbook/internal/handlers/payouts"
	salonhandlers "github.com/dmarkhas/salonbook/internal/handlers/salons"
	wallethandlers "github.com/dmarkhas/salonbook/internal/handlers/wallets"
	"github.com/dmarkhas/salonbook/internal/pg"
	"github.com/dmarkhas/salonbook/internal/repo"
	"github.com/dmarkhas/salonbook/internal/service/authservice"
	"github.com/dmarkhas/salonbook/internal/service/bookingservice"
	"github.com/dmarkhas/salonbook/internal/service/payoutservice"
	"github.com/dmarkhas/salonbook/internal/service/salonservice"
	"github.com/dmarkhas/salonbook/internal/service/walletservice"
	pkgauth "github.com/dmarkhas/salonbook/pkg/auth"
)

type Services struct {
	AuthService   authhandlers.Service
	SalonService  salonhandlers.Service
	WalletService wallethandlers.Service
	PayoutService payouthandlers.Service

	// Concrete: the settlement worker and the booking handlers both need it.
	BookingService *bookingservice.Service
}

func New(r *repo.Repositories, txManager pg.TXManager, cfg *config.Config, jwtService pkgauth.JWTServiceInterface) *Services {
	walletService := walletservice.New(r.WalletRepo, txManager)
	bookingService := bookingservice.New(r.BookingRepo, r.SalonRepo, walletService, txManager, bookingservice.Config{
		DefaultCommissionRate: decimal.NewFromFloat(cfg.DefaultCommissionRate),
		CancellationCutoff:    time.Duration(cfg.CancellationCutoffHours) * time.Hour,
		PlatformAccountID:     cfg.PlatformAccountID,
	})
	payoutService := payoutservice.New(r.PayoutRepo, r.SalonRepo, walletService, txManager)
	authService := authservice.New(r.UserRepo, &pkgauth.HashService{}, jwtService)
	salonService := salonservice.New(r.SalonRepo)

	return &Services{
		AuthService:    authService,
		SalonService:   salonService,
		WalletService:  walletService,
		PayoutService:  payoutService,
		BookingService: bookingService,
	}
}

package repo

import (
	"github.com/dmarkhas/salonbook/internal/pg"
	bookingrepo "github.com/dmarkhas/salonbook/internal/repo/booking-repo"
	payoutrepo "github.com/dmarkhas/salonbook/internal/repo/payout-repo"
	salonrepo "github.com/dmarkhas/salonbook/internal/repo/salon-repo"
	userrepo "github.com/dmarkhas/salonbook/internal/repo/user-repo"
	walletrepo "github.com/dmarkhas/salonbook/internal/repo/wallet-repo"
	"github.com/dmarkhas/salonbook/internal/service/authservice"
	"github.com/dmarkhas/salonbook/internal/service/bookingservice"
	"github.com/dmarkhas/salonbook/internal/service/payoutservice"
	"github.com/dmarkhas/salonbook/internal/service/salonservice"
	"github.com/dmarkhas/salonbook/internal/service/walletservice"
)

type Repositories struct {
	UserRepo    authservice.Repo
	SalonRepo   salonservice.Repo
	BookingRepo bookingservice.Repo
	WalletRepo  walletservice.Repo
	PayoutRepo  payoutservice.Repo
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:    userrepo.New(conn),
		SalonRepo:   salonrepo.New(conn),
		BookingRepo: bookingrepo.New(conn),
		WalletRepo:  walletrepo.New(conn),
		PayoutRepo:  payoutrepo.New(conn),
	}
}

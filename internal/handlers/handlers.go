package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/dmarkhas/salonbook/docs"
	"github.com/dmarkhas/salonbook/internal/domain"
	authhandlers "github.com/dmarkhas/salonbook/internal/handlers/auth"
	bookinghandlers "github.com/dmarkhas/salonbook/internal/handlers/bookings"
	payouthandlers "github.com/dmarkhas/salonbook/internal/handlers/payouts"
	salonhandlers "github.com/dmarkhas/salonbook/internal/handlers/salons"
	wallethandlers "github.com/dmarkhas/salonbook/internal/handlers/wallets"
	"github.com/dmarkhas/salonbook/internal/service"
	"github.com/dmarkhas/salonbook/pkg/auth"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
}

type BookingHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Transition(w http.ResponseWriter, r *http.Request)
	Reschedule(w http.ResponseWriter, r *http.Request)
	Availability(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	Get(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Adjust(w http.ResponseWriter, r *http.Request)
	Freeze(w http.ResponseWriter, r *http.Request)
}

type PayoutHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Process(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type SalonHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	SetRate(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler    AuthHandler
	BookingHandler BookingHandler
	WalletHandler  WalletHandler
	PayoutHandler  PayoutHandler
	SalonHandler   SalonHandler
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.AuthService),
		BookingHandler: bookinghandlers.New(s.BookingService),
		WalletHandler:  wallethandlers.New(s.WalletService),
		PayoutHandler:  payouthandlers.New(s.PayoutService),
		SalonHandler:   salonhandlers.New(s.SalonService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router, authMiddleware *auth.Middleware) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/bookings", func(r chi.Router) {
				r.Post("/", h.BookingHandler.Create)
				r.Get("/", h.BookingHandler.List)
				r.Get("/availability", h.BookingHandler.Availability)
				r.Get("/{id}", h.BookingHandler.Get)
				r.Post("/{id}/status", h.BookingHandler.Transition)
				r.Post("/{id}/reschedule", h.BookingHandler.Reschedule)
			})

			r.Route("/wallet", func(r chi.Router) {
				r.Get("/", h.WalletHandler.Get)
				r.Get("/history", h.WalletHandler.History)

				r.Group(func(r chi.Router) {
					r.Use(authMiddleware.RequireRole(domain.RoleAdmin))
					r.Post("/adjust", h.WalletHandler.Adjust)
					r.Post("/{id}/freeze", h.WalletHandler.Freeze)
				})
			})

			r.Route("/payouts", func(r chi.Router) {
				r.Get("/", h.PayoutHandler.List)

				r.With(authMiddleware.RequireRole(domain.RoleVendor)).
					Post("/", h.PayoutHandler.Request)
				r.With(authMiddleware.RequireRole(domain.RoleAdmin)).
					Post("/{id}/process", h.PayoutHandler.Process)
			})

			r.Route("/salons", func(r chi.Router) {
				r.Get("/{id}", h.SalonHandler.Get)

				r.With(authMiddleware.RequireRole(domain.RoleVendor, domain.RoleAdmin)).
					Post("/", h.SalonHandler.Create)
				r.With(authMiddleware.RequireRole(domain.RoleAdmin)).
					Post("/{id}/rate", h.SalonHandler.SetRate)
			})
		})
	})

	return r
}

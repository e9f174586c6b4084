package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/dto"
	"github.com/dmarkhas/salonbook/internal/service/bookingservice"
	"github.com/dmarkhas/salonbook/pkg/auth"
	"github.com/dmarkhas/salonbook/pkg/utils"
)

const dateLayout = "2006-01-02"

type Service interface {
	Create(ctx context.Context, params bookingservice.CreateParams) (*domain.Booking, error)
	GetByID(ctx context.Context, bookingID int64) (*domain.Booking, error)
	Transition(ctx context.Context, bookingID int64, target domain.BookingStatus, actorID int64, actorRole domain.Role) (*domain.Booking, error)
	Reschedule(ctx context.Context, params bookingservice.RescheduleParams, actorID int64, actorRole domain.Role) (*domain.Booking, error)
	CheckAvailability(ctx context.Context, staffID, salonID int64, date time.Time, candidate domain.TimeRange, excludeBookingID int64) error
	ListForCustomer(ctx context.Context, customerID int64) ([]domain.Booking, error)
	ListForSalon(ctx context.Context, salonID, actorID int64, actorRole domain.Role) ([]domain.Booking, error)
}

type BookingHandler struct {
	bookingService Service
}

func New(bookingService Service) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// Create godoc
//
//	@Summary		Create a booking
//	@Description	Book a slot for a staff member; the slot is checked for conflicts and the commission split is computed server-side
//	@Tags			Bookings
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateBookingRequestDTO	true	"Booking request payload"
//	@Success		201		{object}	dto.BookingResponseDTO
//	@Failure		400		{object}	utils.Response			"Invalid request"
//	@Failure		404		{object}	utils.Response			"Salon not found"
//	@Failure		409		{object}	dto.ConflictResponseDTO	"Slot already taken"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/bookings [post]
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	customerID := auth.UserIDFromContext(r.Context())

	var req dto.CreateBookingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	booking, err := h.bookingService.Create(r.Context(), bookingservice.CreateParams{
		CustomerID:    customerID,
		SalonID:       req.SalonID,
		StaffID:       req.StaffID,
		ServiceID:     req.ServiceID,
		Date:          date,
		StartMin:      req.StartMin,
		DurationMin:   req.DurationMin,
		TotalAmount:   req.TotalAmount,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		respondBookingError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toBookingDTO(booking))
}

// Get godoc
//
//	@Summary	Get a booking by id
//	@Tags		Bookings
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Booking ID"
//	@Success	200	{object}	dto.BookingResponseDTO
//	@Failure	404	{object}	utils.Response	"Booking not found"
//	@Router		/api/bookings/{id} [get]
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid booking id")
		return
	}
	booking, err := h.bookingService.GetByID(r.Context(), id)
	if err != nil {
		respondBookingError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toBookingDTO(booking))
}

// List godoc
//
//	@Summary		List bookings
//	@Description	Without salon_id, returns the caller's bookings; with salon_id, returns the salon's bookings (owner or admin only)
//	@Tags			Bookings
//	@Security		BearerAuth
//	@Produce		json
//	@Param			salon_id	query		int	false	"Salon ID"
//	@Success		200			{array}		dto.BookingResponseDTO
//	@Failure		403			{object}	utils.Response	"Not the salon owner"
//	@Router			/api/bookings [get]
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID := auth.UserIDFromContext(r.Context())
	actorRole := auth.RoleFromContext(r.Context())

	var bookings []domain.Booking
	var err error
	if salonParam := r.URL.Query().Get("salon_id"); salonParam != "" {
		salonID, parseErr := strconv.ParseInt(salonParam, 10, 64)
		if parseErr != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid salon id")
			return
		}
		bookings, err = h.bookingService.ListForSalon(r.Context(), salonID, actorID, actorRole)
	} else {
		bookings, err = h.bookingService.ListForCustomer(r.Context(), actorID)
	}
	if err != nil {
		respondBookingError(w, err)
		return
	}

	response := make([]dto.BookingResponseDTO, len(bookings))
	for i := range bookings {
		response[i] = toBookingDTO(&bookings[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Transition godoc
//
//	@Summary		Change booking status
//	@Description	Move the booking through its lifecycle; completing an already completed booking is a no-op
//	@Tags			Bookings
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Booking ID"
//	@Param			request	body		dto.TransitionBookingRequestDTO	true	"Target status"
//	@Success		200		{object}	dto.BookingResponseDTO
//	@Failure		403		{object}	utils.Response	"Actor may not perform this transition"
//	@Failure		409		{object}	utils.Response	"Transition not allowed from current status"
//	@Failure		422		{object}	utils.Response	"Cancellation cutoff passed"
//	@Router			/api/bookings/{id}/status [post]
func (h *BookingHandler) Transition(w http.ResponseWriter, r *http.Request) {
	actorID := auth.UserIDFromContext(r.Context())
	actorRole := auth.RoleFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid booking id")
		return
	}
	var req dto.TransitionBookingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	booking, err := h.bookingService.Transition(r.Context(), id, domain.BookingStatus(req.Status), actorID, actorRole)
	if err != nil {
		respondBookingError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toBookingDTO(booking))
}

// Reschedule godoc
//
//	@Summary		Reschedule a booking
//	@Description	Move a pending or confirmed booking to a new slot, re-checking availability
//	@Tags			Bookings
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int								true	"Booking ID"
//	@Param			request	body		dto.RescheduleBookingRequestDTO	true	"New slot"
//	@Success		200		{object}	dto.BookingResponseDTO
//	@Failure		409		{object}	dto.ConflictResponseDTO	"New slot already taken"
//	@Router			/api/bookings/{id}/reschedule [post]
func (h *BookingHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	actorID := auth.UserIDFromContext(r.Context())
	actorRole := auth.RoleFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid booking id")
		return
	}
	var req dto.RescheduleBookingRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	booking, err := h.bookingService.Reschedule(r.Context(), bookingservice.RescheduleParams{
		BookingID:   id,
		Date:        date,
		StartMin:    req.StartMin,
		DurationMin: req.DurationMin,
	}, actorID, actorRole)
	if err != nil {
		respondBookingError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toBookingDTO(booking))
}

// Availability godoc
//
//	@Summary		Check slot availability
//	@Description	Reports whether the requested slot is free for the staff member on that date
//	@Tags			Bookings
//	@Security		BearerAuth
//	@Produce		json
//	@Param			staff_id		query		int		true	"Staff ID"
//	@Param			salon_id		query		int		true	"Salon ID"
//	@Param			date			query		string	true	"Date (YYYY-MM-DD)"
//	@Param			start_min		query		int		true	"Start minute of day"
//	@Param			duration_min	query		int		true	"Duration in minutes"
//	@Success		200				{object}	utils.Response
//	@Failure		409				{object}	dto.ConflictResponseDTO	"Slot already taken"
//	@Router			/api/bookings/availability [get]
func (h *BookingHandler) Availability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	staffID, err1 := strconv.ParseInt(q.Get("staff_id"), 10, 64)
	salonID, err2 := strconv.ParseInt(q.Get("salon_id"), 10, 64)
	startMin, err3 := strconv.Atoi(q.Get("start_min"))
	durationMin, err4 := strconv.Atoi(q.Get("duration_min"))
	date, err5 := time.Parse(dateLayout, q.Get("date"))
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid query parameters")
		return
	}
	rng, err := domain.TimeRangeFromDuration(startMin, durationMin)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.bookingService.CheckAvailability(r.Context(), staffID, salonID, date, rng, 0); err != nil {
		respondBookingError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "slot is available"})
}

func respondBookingError(w http.ResponseWriter, err error) {
	var conflict *bookingservice.ConflictError
	var invalidTransition *bookingservice.InvalidTransitionError
	switch {
	case errors.As(err, &conflict):
		utils.RespondWithJSON(w, http.StatusConflict, dto.ConflictResponseDTO{
			Kind:                 "conflict",
			ConflictingBookingID: conflict.ConflictingBookingID,
		})
	case errors.As(err, &invalidTransition):
		utils.RespondWithError(w, http.StatusConflict, invalidTransition.Error())
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, bookingservice.ErrInvalidAmount),
		errors.Is(err, bookingservice.ErrInvalidRate):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, bookingservice.ErrBookingNotFound),
		errors.Is(err, bookingservice.ErrSalonNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, bookingservice.ErrPermissionDenied):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, bookingservice.ErrTooLateToCancel):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toBookingDTO(b *domain.Booking) dto.BookingResponseDTO {
	return dto.BookingResponseDTO{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		SalonID:            b.SalonID,
		StaffID:            b.StaffID,
		ServiceID:          b.ServiceID,
		Date:               b.Date.Format(dateLayout),
		StartMin:           b.Range.StartMin,
		EndMin:             b.Range.EndMin,
		Status:             string(b.Status),
		TotalAmount:        b.TotalAmount,
		PlatformCommission: b.PlatformCommission,
		VendorPayout:       b.VendorPayout,
		PaymentMethod:      string(b.PaymentMethod),
		PaymentStatus:      string(b.PaymentStatus),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

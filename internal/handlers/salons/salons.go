package salons

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/dto"
	"github.com/dmarkhas/salonbook/internal/service/salonservice"
	"github.com/dmarkhas/salonbook/pkg/auth"
	"github.com/dmarkhas/salonbook/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, ownerID int64, name string) (*domain.Salon, error)
	GetByID(ctx context.Context, salonID int64) (*domain.Salon, error)
	SetCommissionRate(ctx context.Context, salonID int64, rate *decimal.Decimal) error
}

type SalonHandler struct {
	salonService Service
}

func New(salonService Service) *SalonHandler {
	return &SalonHandler{
		salonService: salonService,
	}
}

// Create godoc
//
//	@Summary	Create a salon
//	@Tags		Salons
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		dto.CreateSalonRequestDTO	true	"Salon payload"
//	@Success	201		{object}	dto.SalonResponseDTO
//	@Failure	400		{object}	utils.Response	"Invalid request"
//	@Router		/api/salons [post]
func (h *SalonHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())

	var req dto.CreateSalonRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	salon, err := h.salonService.Create(r.Context(), ownerID, req.Name)
	if err != nil {
		respondSalonError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toSalonDTO(salon))
}

// Get godoc
//
//	@Summary	Get a salon by id
//	@Tags		Salons
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		int	true	"Salon ID"
//	@Success	200	{object}	dto.SalonResponseDTO
//	@Failure	404	{object}	utils.Response	"Salon not found"
//	@Router		/api/salons/{id} [get]
func (h *SalonHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid salon id")
		return
	}
	salon, err := h.salonService.GetByID(r.Context(), id)
	if err != nil {
		respondSalonError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toSalonDTO(salon))
}

// SetRate godoc
//
//	@Summary		Set a salon commission rate
//	@Description	Admin-only override in percent; null restores the platform default
//	@Tags			Salons
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id		path	int								true	"Salon ID"
//	@Param			request	body	dto.SetCommissionRateRequestDTO	true	"Rate payload"
//	@Success		204
//	@Failure		400	{object}	utils.Response	"Rate outside [0, 100]"
//	@Failure		404	{object}	utils.Response	"Salon not found"
//	@Router			/api/salons/{id}/rate [post]
func (h *SalonHandler) SetRate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid salon id")
		return
	}
	var req dto.SetCommissionRateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var rate *decimal.Decimal
	if req.Rate != nil {
		parsed, err := decimal.NewFromString(*req.Rate)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid rate")
			return
		}
		rate = &parsed
	}

	if err := h.salonService.SetCommissionRate(r.Context(), id, rate); err != nil {
		respondSalonError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondSalonError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, salonservice.ErrEmptyName),
		errors.Is(err, salonservice.ErrInvalidRate):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, salonservice.ErrSalonNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toSalonDTO(salon *domain.Salon) dto.SalonResponseDTO {
	var rate *string
	if salon.CommissionRate != nil {
		s := salon.CommissionRate.String()
		rate = &s
	}
	return dto.SalonResponseDTO{
		ID:             salon.ID,
		OwnerID:        salon.OwnerID,
		Name:           salon.Name,
		CommissionRate: rate,
	}
}

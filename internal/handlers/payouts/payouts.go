package payouts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/dto"
	"github.com/dmarkhas/salonbook/internal/service/payoutservice"
	"github.com/dmarkhas/salonbook/pkg/auth"
	"github.com/dmarkhas/salonbook/pkg/utils"
)

type Service interface {
	Request(ctx context.Context, salonID, actorID, amount int64, bankDetails string) (*domain.PayoutRequest, error)
	Process(ctx context.Context, payoutID int64, decision domain.PayoutStatus, processedBy int64, notes *string) (*domain.PayoutRequest, error)
	ListBySalon(ctx context.Context, salonID, actorID int64, actorRole domain.Role) ([]domain.PayoutRequest, error)
	ListPending(ctx context.Context) ([]domain.PayoutRequest, error)
}

type PayoutHandler struct {
	payoutService Service
}

func New(payoutService Service) *PayoutHandler {
	return &PayoutHandler{
		payoutService: payoutService,
	}
}

// Request godoc
//
//	@Summary		Request a payout
//	@Description	Salon owner asks to withdraw earnings; the request stays pending until an admin decides
//	@Tags			Payouts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RequestPayoutRequestDTO	true	"Payout request payload"
//	@Success		201		{object}	dto.PayoutResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		403		{object}	utils.Response	"Not the salon owner"
//	@Failure		404		{object}	utils.Response	"Salon not found"
//	@Router			/api/payouts [post]
func (h *PayoutHandler) Request(w http.ResponseWriter, r *http.Request) {
	actorID := auth.UserIDFromContext(r.Context())

	var req dto.RequestPayoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payout, err := h.payoutService.Request(r.Context(), req.SalonID, actorID, req.Amount, req.BankDetails)
	if err != nil {
		respondPayoutError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toPayoutDTO(payout))
}

// Process godoc
//
//	@Summary		Process a payout request
//	@Description	Admin approves or rejects a pending request; approval debits the owner's wallet in the same transaction
//	@Tags			Payouts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int							true	"Payout request ID"
//	@Param			request	body		dto.ProcessPayoutRequestDTO	true	"Decision payload"
//	@Success		200		{object}	dto.PayoutResponseDTO
//	@Failure		404		{object}	utils.Response	"Payout request not found"
//	@Failure		409		{object}	utils.Response	"Request already processed"
//	@Router			/api/payouts/{id}/process [post]
func (h *PayoutHandler) Process(w http.ResponseWriter, r *http.Request) {
	adminID := auth.UserIDFromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payout id")
		return
	}
	var req dto.ProcessPayoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	payout, err := h.payoutService.Process(r.Context(), id, domain.PayoutStatus(req.Decision), adminID, req.Notes)
	if err != nil {
		respondPayoutError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toPayoutDTO(payout))
}

// List godoc
//
//	@Summary		List payout requests
//	@Description	With salon_id, returns that salon's requests (owner or admin); without it, admins get all pending requests
//	@Tags			Payouts
//	@Security		BearerAuth
//	@Produce		json
//	@Param			salon_id	query		int	false	"Salon ID"
//	@Success		200			{array}		dto.PayoutResponseDTO
//	@Failure		403			{object}	utils.Response	"Not the salon owner"
//	@Router			/api/payouts [get]
func (h *PayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID := auth.UserIDFromContext(r.Context())
	actorRole := auth.RoleFromContext(r.Context())

	var payouts []domain.PayoutRequest
	var err error
	if salonParam := r.URL.Query().Get("salon_id"); salonParam != "" {
		salonID, parseErr := strconv.ParseInt(salonParam, 10, 64)
		if parseErr != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid salon id")
			return
		}
		payouts, err = h.payoutService.ListBySalon(r.Context(), salonID, actorID, actorRole)
	} else {
		if actorRole != domain.RoleAdmin {
			utils.RespondWithError(w, http.StatusForbidden, "salon_id is required")
			return
		}
		payouts, err = h.payoutService.ListPending(r.Context())
	}
	if err != nil {
		respondPayoutError(w, err)
		return
	}

	response := make([]dto.PayoutResponseDTO, len(payouts))
	for i := range payouts {
		response[i] = toPayoutDTO(&payouts[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func respondPayoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, payoutservice.ErrInvalidAmount),
		errors.Is(err, payoutservice.ErrInvalidDecision):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, payoutservice.ErrPayoutNotFound),
		errors.Is(err, payoutservice.ErrSalonNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, payoutservice.ErrPermissionDenied):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, payoutservice.ErrAlreadyProcessed):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toPayoutDTO(p *domain.PayoutRequest) dto.PayoutResponseDTO {
	return dto.PayoutResponseDTO{
		ID:          p.ID,
		SalonID:     p.SalonID,
		WalletID:    p.WalletID,
		Amount:      p.Amount,
		Status:      string(p.Status),
		BankDetails: p.BankDetails,
		ProcessedBy: p.ProcessedBy,
		ProcessedAt: p.ProcessedAt,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}

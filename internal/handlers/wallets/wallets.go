package wallets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmarkhas/salonbook/internal/domain"
	"github.com/dmarkhas/salonbook/internal/dto"
	"github.com/dmarkhas/salonbook/internal/service/walletservice"
	"github.com/dmarkhas/salonbook/pkg/auth"
	"github.com/dmarkhas/salonbook/pkg/utils"
)

type Service interface {
	GetByOwner(ctx context.Context, ownerID int64) (*domain.Wallet, error)
	History(ctx context.Context, walletID int64) ([]domain.WalletTransaction, error)
	Adjust(ctx context.Context, params walletservice.AdjustParams) (*domain.WalletTransaction, error)
	ToggleFreeze(ctx context.Context, walletID int64, frozen bool) error
}

type WalletHandler struct {
	walletService Service
}

func New(walletService Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// Get godoc
//
//	@Summary		Get own wallet
//	@Description	Return the caller's wallet; a zero balance is reported before any money has moved
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.WalletResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet [get]
func (h *WalletHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())

	wallet, err := h.walletService.GetByOwner(r.Context(), ownerID)
	if errors.Is(err, walletservice.ErrWalletNotFound) {
		// Wallet rows appear on the first monetary event; a pure read
		// reports an empty wallet without creating one.
		utils.RespondWithJSON(w, http.StatusOK, dto.WalletResponseDTO{
			OwnerID:  ownerID,
			Currency: domain.DefaultCurrency,
		})
		return
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toWalletDTO(wallet))
}

// History godoc
//
//	@Summary		Get wallet transaction history
//	@Description	Return the caller's ledger entries, newest first
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.WalletTransactionResponseDTO
//	@Failure		404	{object}	utils.Response	"Wallet not found"
//	@Router			/api/wallet/history [get]
func (h *WalletHandler) History(w http.ResponseWriter, r *http.Request) {
	ownerID := auth.UserIDFromContext(r.Context())

	wallet, err := h.walletService.GetByOwner(r.Context(), ownerID)
	if err != nil {
		respondWalletError(w, err)
		return
	}
	transactions, err := h.walletService.History(r.Context(), wallet.ID)
	if err != nil {
		respondWalletError(w, err)
		return
	}

	response := make([]dto.WalletTransactionResponseDTO, len(transactions))
	for i, tx := range transactions {
		response[i] = dto.WalletTransactionResponseDTO{
			ID:            tx.ID,
			WalletID:      tx.WalletID,
			Type:          string(tx.Type),
			Amount:        tx.Amount,
			BalanceBefore: tx.BalanceBefore,
			BalanceAfter:  tx.BalanceAfter,
			Description:   tx.Description,
			ReferenceID:   tx.ReferenceID,
			CreatedAt:     tx.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Adjust godoc
//
//	@Summary		Adjust a wallet balance
//	@Description	Admin-only manual ledger entry; debits may overdraw the wallet
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.WalletAdjustRequestDTO	true	"Adjustment payload"
//	@Success		200		{object}	dto.WalletTransactionResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount or type"
//	@Failure		402		{object}	utils.Response	"Insufficient funds"
//	@Failure		422		{object}	utils.Response	"Wallet is frozen"
//	@Router			/api/wallet/adjust [post]
func (h *WalletHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	adminID := auth.UserIDFromContext(r.Context())

	var req dto.WalletAdjustRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	txType := domain.TransactionType(req.Type)
	if txType == "" {
		txType = domain.TxAdjustment
	}
	switch txType {
	case domain.TxCredit, domain.TxDebit, domain.TxRefund, domain.TxAdjustment:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "unsupported transaction type")
		return
	}

	tx, err := h.walletService.Adjust(r.Context(), walletservice.AdjustParams{
		OwnerID:      req.OwnerID,
		Amount:       req.Amount,
		Type:         txType,
		Debit:        req.Debit,
		Description:  req.Description,
		CreatedBy:    &adminID,
		BypassFreeze: true,
	})
	if err != nil {
		respondWalletError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.WalletTransactionResponseDTO{
		ID:            tx.ID,
		WalletID:      tx.WalletID,
		Type:          string(tx.Type),
		Amount:        tx.Amount,
		BalanceBefore: tx.BalanceBefore,
		BalanceAfter:  tx.BalanceAfter,
		Description:   tx.Description,
		ReferenceID:   tx.ReferenceID,
		CreatedAt:     tx.CreatedAt,
	})
}

// Freeze godoc
//
//	@Summary		Freeze or unfreeze a wallet
//	@Description	Admin-only; setting the current state again is a no-op
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Param			id		path	int							true	"Wallet ID"
//	@Param			request	body	dto.WalletFreezeRequestDTO	true	"Target freeze state"
//	@Success		204
//	@Failure		404	{object}	utils.Response	"Wallet not found"
//	@Router			/api/wallet/{id}/freeze [post]
func (h *WalletHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	walletID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid wallet id")
		return
	}
	var req dto.WalletFreezeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.walletService.ToggleFreeze(r.Context(), walletID, req.Frozen); err != nil {
		respondWalletError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondWalletError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, walletservice.ErrWalletNotFound):
		utils.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, walletservice.ErrInvalidAmount):
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, walletservice.ErrInsufficientFunds):
		utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
	case errors.Is(err, walletservice.ErrWalletFrozen):
		utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toWalletDTO(wallet *domain.Wallet) dto.WalletResponseDTO {
	return dto.WalletResponseDTO{
		ID:       wallet.ID,
		OwnerID:  wallet.OwnerID,
		Balance:  wallet.Balance,
		Currency: wallet.Currency,
		IsFrozen: wallet.IsFrozen,
	}
}

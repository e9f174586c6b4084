package dto

import "time"

type WalletResponseDTO struct {
	ID       int64  `json:"id"`
	OwnerID  int64  `json:"owner_id"`
	Balance  int64  `json:"balance" example:"5000"`
	Currency string `json:"currency" example:"USD"`
	IsFrozen bool   `json:"is_frozen"`
}

type WalletAdjustRequestDTO struct {
	OwnerID     int64  `json:"owner_id" example:"42"`
	Amount      int64  `json:"amount" example:"1000"`
	Type        string `json:"type" example:"adjustment"`
	Debit       bool   `json:"debit"`
	Description string `json:"description" example:"manual correction"`
}

type WalletTransactionResponseDTO struct {
	ID            string    `json:"id"`
	WalletID      int64     `json:"wallet_id"`
	Type          string    `json:"type"`
	Amount        int64     `json:"amount"`
	BalanceBefore int64     `json:"balance_before"`
	BalanceAfter  int64     `json:"balance_after"`
	Description   string    `json:"description"`
	ReferenceID   *string   `json:"reference_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type WalletFreezeRequestDTO struct {
	Frozen bool `json:"frozen"`
}

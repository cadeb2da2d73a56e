package dto

type BalanceResponse struct {
	UserID       string `json:"userId"`
	BalanceCents int64  `json:"balance_cents"`
}

type AllowanceResponse struct {
	HolderID       string `json:"holderId"`
	SpenderID      string `json:"spenderId"`
	AllowanceCents int64  `json:"allowance_cents"`
}

type TransferResponse struct {
	TransferID string `json:"transfer_id"`
	Status     string `json:"status"` // COMPLETED
}

package dto

type MintRequest struct {
	UserID      string `json:"userId"`
	AmountCents int64  `json:"amount_cents"`
	ExternalRef string `json:"external_ref,omitempty"` // opcional p/ auditoria
}

type ApproveRequest struct {
	HolderID    string `json:"holderId"`
	SpenderID   string `json:"spenderId"`
	AmountCents int64  `json:"amount_cents"`
}

type TransferRequest struct {
	FromUserID  string `json:"fromUserId"`
	ToUserID    string `json:"toUserId"`
	AmountCents int64  `json:"amount_cents"`
}

type TransferFromRequest struct {
	SpenderID   string `json:"spenderId"`
	FromUserID  string `json:"fromUserId"`
	ToUserID    string `json:"toUserId"`
	AmountCents int64  `json:"amount_cents"`
}

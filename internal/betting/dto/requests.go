package dto

// Operações administrativas carregam callerId; o engine valida contra o
// operador fixado no deploy.

type AddTeamRequest struct {
	CallerID string `json:"callerId"`
	Name     string `json:"name"`
}

type TeamStatusRequest struct {
	CallerID string `json:"callerId"`
}

type CreateBetRequest struct {
	CallerID      string `json:"callerId"`
	TeamAID       uint64 `json:"teamAId"`
	TeamBID       uint64 `json:"teamBId"`
	MinStakeCents int64  `json:"min_stake_cents"`
}

type BetStatusRequest struct {
	CallerID string `json:"callerId"`
}

type SettleBetRequest struct {
	CallerID     string `json:"callerId"`
	WinnerTeamID uint64 `json:"winnerTeamId"`
}

type PledgeRequest struct {
	UserID      string `json:"userId"`
	TeamID      uint64 `json:"teamId"`
	AmountCents int64  `json:"amount_cents"`
}

type ClaimRequest struct {
	UserID string `json:"userId"`
}

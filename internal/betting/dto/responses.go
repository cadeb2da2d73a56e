package dto

type CreateTeamResponse struct {
	TeamID uint64 `json:"teamId"`
}

type TeamResponse struct {
	TeamID uint64 `json:"teamId"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

type TeamListResponse struct {
	TeamCount uint64         `json:"teamCount"`
	Teams     []TeamResponse `json:"teams"`
}

type CreateBetResponse struct {
	BetID uint64 `json:"betId"`
}

type BetResponse struct {
	BetID         uint64 `json:"betId"`
	TeamAID       uint64 `json:"teamAId"`
	TeamBID       uint64 `json:"teamBId"`
	MinStakeCents int64  `json:"min_stake_cents"`
	Status        string `json:"status"` // INACTIVE | ACTIVE | COMPLETED
	WinnerTeamID  uint64 `json:"winnerTeamId,omitempty"`
	TotalACents   int64  `json:"total_a_cents"`
	TotalBCents   int64  `json:"total_b_cents"`
}

// BetListResponse cobre tanto a contagem global quanto a consulta por
// bettor (?userId=)
type BetListResponse struct {
	BetCount uint64   `json:"betCount"`
	BetIDs   []uint64 `json:"betIds,omitempty"`
}

type StakeResponse struct {
	BetID       uint64 `json:"betId"`
	UserID      string `json:"userId"`
	TeamID      uint64 `json:"teamId"` // 0 = nunca apostou nessa aposta
	AmountCents int64  `json:"amount_cents"`
	Claimed     bool   `json:"claimed"`
}

type BettorsResponse struct {
	BetID   uint64   `json:"betId"`
	TeamID  uint64   `json:"teamId"`
	Bettors []string `json:"bettors"`
}

type TotalPledgedResponse struct {
	BetID      uint64 `json:"betId"`
	TotalCents int64  `json:"total_cents"`
}

type ClaimResponse struct {
	BetID       uint64 `json:"betId"`
	UserID      string `json:"userId"`
	PayoutCents int64  `json:"payout_cents"`
}

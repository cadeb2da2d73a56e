package events

// Tipos de evento do ledger de apostas.
const (
	TypeTeamAdded    = "TEAM_ADDED"
	TypeTeamActive   = "TEAM_ACTIVE"
	TypeTeamInactive = "TEAM_INACTIVE"
	TypeBetCreated   = "BET_CREATED"
	TypeBetActive    = "BET_ACTIVE"
	TypeBetInactive  = "BET_INACTIVE"
	TypeBetCompleted = "BET_COMPLETED"
	TypeStakePledged = "STAKE_PLEDGED"
	TypePayoutIssued = "PAYOUT_ISSUED"
)

// LedgerEvent é o contrato único publicado em ledger_events.
// Campos não usados por um tipo ficam zerados/omitidos.
type LedgerEvent struct {
	Type         string `json:"type"`
	TeamID       uint64 `json:"team_id,omitempty"`
	TeamName     string `json:"team_name,omitempty"`
	BetID        uint64 `json:"bet_id"`
	TeamAID      uint64 `json:"team_a_id,omitempty"`
	TeamBID      uint64 `json:"team_b_id,omitempty"`
	MinStake     int64  `json:"min_stake_cents,omitempty"`
	WinnerTeamID uint64 `json:"winner_team_id,omitempty"`
	Bettor       string `json:"bettor,omitempty"`
	AmountCents  int64  `json:"amount_cents,omitempty"`
	TsUnixMs     int64  `json:"ts_unix_ms"`
}

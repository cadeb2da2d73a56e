package engine

import "errors"

// Erros sentinela do ledger. As mensagens são contrato estável da API
// (testes de conformidade comparam o texto exato).
var (
	ErrNotOwner = errors.New("Not owner")

	// registro de times
	ErrInvalidTeamID   = errors.New("Invalid team-id")
	ErrAlreadyInactive = errors.New("already inactive")
	ErrAlreadyActive   = errors.New("already active")

	// criação e ciclo de vida de apostas
	ErrSameTeams            = errors.New("same teams")
	ErrInvalidTeamAID       = errors.New("Invalid teamAId")
	ErrInvalidTeamBID       = errors.New("Invalid teamBId")
	ErrTeamsInactive        = errors.New("team's inactive")
	ErrInvalidAmount        = errors.New("Invalid amount")
	ErrInvalidBetID         = errors.New("invalid bet id")
	ErrBetAlreadyInactive   = errors.New("bet already inactive")
	ErrBettorsAlreadyBetted = errors.New("bettors already betted")

	// pledge
	ErrBetInactive      = errors.New("bet inactive")
	ErrInvalidBetAmount = errors.New("invalid bet amount")
	ErrInvalidBetTeam   = errors.New("invalid team-id")

	// settlement
	ErrInvalidWinningTeam = errors.New("invalid teamId")
	ErrTeamAlreadyWon     = errors.New("team already won")

	// claim (modo pull)
	ErrBetNotCompleted = errors.New("bet not completed")
	ErrNothingToClaim  = errors.New("nothing to claim")
	ErrAlreadyClaimed  = errors.New("already claimed")
)

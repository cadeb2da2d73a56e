package repository

import (
	"context"
	"database/sql"

	"github.com/radieske/betting-protocol-poc/pkg/contracts/events"
)

// PostgresRepo persiste o fluxo de eventos do ledger para reconstrução
// de histórico sem replay de queries
type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// InsertEvent grava um evento na tabela ledger_history (append-only)
func (r *PostgresRepo) InsertEvent(ctx context.Context, e events.LedgerEvent) error {
	const q = `
		INSERT INTO ledger_history
		  (event_type, team_id, team_name, bet_id, team_a_id, team_b_id,
		   min_stake_cents, winner_team_id, bettor, amount_cents, ts_unix_ms)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`
	_, err := r.DB.ExecContext(ctx, q,
		e.Type, e.TeamID, e.TeamName, e.BetID, e.TeamAID, e.TeamBID,
		e.MinStake, e.WinnerTeamID, e.Bettor, e.AmountCents, e.TsUnixMs,
	)
	return err
}

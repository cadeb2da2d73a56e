package engine

import "context"

// Events recebe notificações após cada mutação confirmada do ledger.
// Falha de publicação não desfaz a operação; o ledger ignora o retorno.
type Events interface {
	TeamAdded(ctx context.Context, teamID uint64, name string) error
	TeamActive(ctx context.Context, teamID uint64) error
	TeamInactive(ctx context.Context, teamID uint64) error
	BetCreated(ctx context.Context, bet Bet) error
	BetActive(ctx context.Context, betID uint64) error
	BetInactive(ctx context.Context, betID uint64) error
	BetCompleted(ctx context.Context, betID, winnerTeamID uint64) error
	StakePledged(ctx context.Context, betID, teamID uint64, bettor string, amountCents int64) error
	PayoutIssued(ctx context.Context, betID uint64, bettor string, amountCents int64) error
}

// NopEvents descarta todas as notificações (útil em testes e tooling)
type NopEvents struct{}

func (NopEvents) TeamAdded(context.Context, uint64, string) error { return nil }
func (NopEvents) TeamActive(context.Context, uint64) error        { return nil }
func (NopEvents) TeamInactive(context.Context, uint64) error      { return nil }
func (NopEvents) BetCreated(context.Context, Bet) error           { return nil }
func (NopEvents) BetActive(context.Context, uint64) error         { return nil }
func (NopEvents) BetInactive(context.Context, uint64) error       { return nil }
func (NopEvents) BetCompleted(context.Context, uint64, uint64) error {
	return nil
}
func (NopEvents) StakePledged(context.Context, uint64, uint64, string, int64) error {
	return nil
}
func (NopEvents) PayoutIssued(context.Context, uint64, string, int64) error {
	return nil
}

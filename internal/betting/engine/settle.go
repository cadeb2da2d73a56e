package engine

import (
	"context"
	"fmt"
)

// Settle declara o vencedor e torna a aposta terminal. O status
// Completed é gravado antes de qualquer transfer (checks-effects-
// interactions): uma chamada reentrante via payout enxerga a aposta já
// encerrada e cai no guard de replay.
//
// Em modo push os payouts saem aqui mesmo; em modo pull (claim) o
// settle só registra o resultado e cada vencedor chama Claim.
func (l *Ledger) Settle(ctx context.Context, caller string, betID, winningTeamID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireOperator(caller); err != nil {
		return err
	}
	if !l.validBetID(betID) {
		return ErrInvalidBetID
	}
	bet := &l.bets[betID]
	switch bet.Status {
	case BetStatusInactive:
		return ErrBetInactive
	case BetStatusCompleted:
		return ErrTeamAlreadyWon
	}
	if winningTeamID != bet.TeamAID && winningTeamID != bet.TeamBID {
		return ErrInvalidWinningTeam
	}

	bet.WinnerTeamID = winningTeamID
	bet.Status = BetStatusCompleted
	_ = l.events.BetCompleted(ctx, betID, winningTeamID)

	if l.pullPayouts {
		return nil
	}
	return l.payOutWinners(ctx, betID)
}

// payOutWinners distribui o pool para o lado vencedor, pro-rata ao
// stake de cada um. Divisão inteira trunca; o resíduo fica em custódia
// (nunca se paga mais do que o pool). Um transfer que falha deixa o
// stake daquele bettor disponível para Claim posterior.
func (l *Ledger) payOutWinners(ctx context.Context, betID uint64) error {
	bet := &l.bets[betID]

	winningTotal, losingTotal := l.poolSplit(bet)
	if winningTotal == 0 {
		// ninguém apostou no vencedor; o pool perdedor permanece em custódia
		return nil
	}

	for _, bettor := range l.sideBettors[betID][bet.WinnerTeamID] {
		st := l.stakes[betID][bettor]
		if st.Claimed {
			continue
		}
		amount := payout(st.Amount, winningTotal, losingTotal)
		st.Claimed = true
		if err := l.token.Transfer(ctx, bettor, amount); err != nil {
			st.Claimed = false
			return fmt.Errorf("payout to %s: %w", bettor, err)
		}
		_ = l.events.PayoutIssued(ctx, betID, bettor, amount)
	}
	return nil
}

// Claim paga a parte de um único bettor vencedor após o settlement
// (modo pull, ou fallback de um payout push que falhou). Retorna o
// valor pago.
func (l *Ledger) Claim(ctx context.Context, bettor string, betID uint64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.validBetID(betID) {
		return 0, ErrInvalidBetID
	}
	bet := &l.bets[betID]
	if bet.Status != BetStatusCompleted {
		return 0, ErrBetNotCompleted
	}
	st := l.stakes[betID][bettor]
	if st == nil || st.TeamID != bet.WinnerTeamID {
		return 0, ErrNothingToClaim
	}
	if st.Claimed {
		return 0, ErrAlreadyClaimed
	}

	winningTotal, losingTotal := l.poolSplit(bet)
	amount := payout(st.Amount, winningTotal, losingTotal)

	st.Claimed = true
	if err := l.token.Transfer(ctx, bettor, amount); err != nil {
		st.Claimed = false
		return 0, fmt.Errorf("payout to %s: %w", bettor, err)
	}

	_ = l.events.PayoutIssued(ctx, betID, bettor, amount)
	return amount, nil
}

// poolSplit separa os totais da aposta em (vencedor, perdedor)
func (l *Ledger) poolSplit(bet *Bet) (winningTotal, losingTotal int64) {
	if bet.WinnerTeamID == bet.TeamAID {
		return bet.TotalA, bet.TotalB
	}
	return bet.TotalB, bet.TotalA
}

// payout = stake + losingTotal*stake/winningTotal (divisão inteira)
func payout(stake, winningTotal, losingTotal int64) int64 {
	return stake + losingTotal*stake/winningTotal
}

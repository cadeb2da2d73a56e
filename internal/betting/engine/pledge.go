package engine

import (
	"context"
	"fmt"
)

// Pledge compromete fundos de um bettor em um dos lados de uma aposta
// aberta. Aberto a qualquer caller. O pull no token precisa suceder
// antes de qualquer escrita no ledger — falha externa não deixa estado
// parcial.
func (l *Ledger) Pledge(ctx context.Context, bettor string, amountCents int64, betID, teamID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.validBetID(betID) {
		return ErrInvalidBetID
	}
	bet := &l.bets[betID]
	if bet.Status != BetStatusActive {
		return ErrBetInactive
	}
	if amountCents < bet.MinStake {
		return ErrInvalidBetAmount
	}
	if teamID == 0 || (teamID != bet.TeamAID && teamID != bet.TeamBID) {
		return ErrInvalidBetTeam
	}

	st := l.stakes[betID][bettor]
	if st != nil && st.TeamID != teamID {
		// lado fixado no primeiro pledge; trocar de time é rejeitado
		return ErrInvalidBetTeam
	}

	if err := l.token.TransferFrom(ctx, bettor, l.custody, amountCents); err != nil {
		return fmt.Errorf("token pull: %w", err)
	}

	if st == nil {
		st = &Stake{TeamID: teamID}
		if l.stakes[betID] == nil {
			l.stakes[betID] = make(map[string]*Stake)
		}
		l.stakes[betID][bettor] = st

		if l.sideBettors[betID] == nil {
			l.sideBettors[betID] = make(map[uint64][]string)
		}
		l.sideBettors[betID][teamID] = append(l.sideBettors[betID][teamID], bettor)

		l.betsByBettor[bettor] = append(l.betsByBettor[bettor], betID)
	}

	st.Amount += amountCents
	if teamID == bet.TeamAID {
		bet.TotalA += amountCents
	} else {
		bet.TotalB += amountCents
	}

	_ = l.events.StakePledged(ctx, betID, teamID, bettor, amountCents)
	return nil
}

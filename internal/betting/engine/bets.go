package engine

import "context"

// CreateBet cria uma aposta entre dois times ativos, ainda inativa.
// Validações na ordem do protocolo original: times distintos, ids
// válidos, ambos ativos, minStake positivo.
func (l *Ledger) CreateBet(ctx context.Context, caller string, teamAID, teamBID uint64, minStake int64) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireOperator(caller); err != nil {
		return 0, err
	}
	if teamAID == teamBID {
		return 0, ErrSameTeams
	}
	if !l.validTeamID(teamAID) {
		return 0, ErrInvalidTeamAID
	}
	if !l.validTeamID(teamBID) {
		return 0, ErrInvalidTeamBID
	}
	if !l.teams[teamAID-1].Active || !l.teams[teamBID-1].Active {
		return 0, ErrTeamsInactive
	}
	if minStake <= 0 {
		return 0, ErrInvalidAmount
	}

	id := uint64(len(l.bets))
	bet := Bet{
		ID:       id,
		TeamAID:  teamAID,
		TeamBID:  teamBID,
		MinStake: minStake,
		Status:   BetStatusInactive,
	}
	l.bets = append(l.bets, bet)

	_ = l.events.BetCreated(ctx, bet)
	return id, nil
}

// ActivateBet abre a aposta para pledges (Inactive -> Active)
func (l *Ledger) ActivateBet(ctx context.Context, caller string, betID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireOperator(caller); err != nil {
		return err
	}
	if !l.validBetID(betID) {
		return ErrInvalidBetID
	}
	bet := &l.bets[betID]
	if bet.Status == BetStatusActive {
		return ErrAlreadyActive
	}
	if bet.Status == BetStatusCompleted {
		return ErrTeamAlreadyWon
	}

	bet.Status = BetStatusActive
	_ = l.events.BetActive(ctx, betID)
	return nil
}

// DeactivateBet retira uma aposta aberta (Active -> Inactive).
// Recusada se já existe stake registrado: desativar deixaria fundos
// órfãos em custódia.
func (l *Ledger) DeactivateBet(ctx context.Context, caller string, betID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireOperator(caller); err != nil {
		return err
	}
	if !l.validBetID(betID) {
		return ErrInvalidBetID
	}
	bet := &l.bets[betID]
	if bet.Status != BetStatusActive {
		return ErrBetAlreadyInactive
	}
	if bet.TotalA+bet.TotalB > 0 {
		return ErrBettorsAlreadyBetted
	}

	bet.Status = BetStatusInactive
	_ = l.events.BetInactive(ctx, betID)
	return nil
}

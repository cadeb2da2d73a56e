package engine

import "context"

// AddTeam registra um novo time ativo e retorna o id atribuído.
// Somente o operador.
func (l *Ledger) AddTeam(ctx context.Context, caller, name string) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireOperator(caller); err != nil {
		return 0, err
	}

	id := uint64(len(l.teams)) + 1
	l.teams = append(l.teams, Team{ID: id, Name: name, Active: true})

	_ = l.events.TeamAdded(ctx, id, name)
	return id, nil
}

// SetTeamInactive desativa um time. Não afeta apostas já criadas que o
// referenciam.
func (l *Ledger) SetTeamInactive(ctx context.Context, caller string, teamID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireOperator(caller); err != nil {
		return err
	}
	if !l.validTeamID(teamID) {
		return ErrInvalidTeamID
	}
	t := &l.teams[teamID-1]
	if !t.Active {
		return ErrAlreadyInactive
	}

	t.Active = false
	_ = l.events.TeamInactive(ctx, teamID)
	return nil
}

// SetTeamActive reativa um time desativado
func (l *Ledger) SetTeamActive(ctx context.Context, caller string, teamID uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.requireOperator(caller); err != nil {
		return err
	}
	if !l.validTeamID(teamID) {
		return ErrInvalidTeamID
	}
	t := &l.teams[teamID-1]
	if t.Active {
		return ErrAlreadyActive
	}

	t.Active = true
	_ = l.events.TeamActive(ctx, teamID)
	return nil
}

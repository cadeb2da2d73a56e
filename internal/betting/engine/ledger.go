package engine

import "sync"

// BetStatus é o estado do ciclo de vida de uma aposta
type BetStatus int

const (
	BetStatusInactive BetStatus = iota
	BetStatusActive
	BetStatusCompleted
)

func (s BetStatus) String() string {
	switch s {
	case BetStatusInactive:
		return "INACTIVE"
	case BetStatusActive:
		return "ACTIVE"
	case BetStatusCompleted:
		return "COMPLETED"
	}
	return "UNKNOWN"
}

// Team é um competidor registrado. Ids são sequenciais a partir de 1;
// o id 0 é sentinela de "sem time" e nunca é atribuído.
type Team struct {
	ID     uint64
	Name   string
	Active bool
}

// Bet é uma aposta casada entre dois times. Ids sequenciais a partir de 0.
type Bet struct {
	ID           uint64
	TeamAID      uint64
	TeamBID      uint64
	MinStake     int64 // aposta mínima, em cents do token
	Status       BetStatus
	WinnerTeamID uint64 // 0 até o settlement
	TotalA       int64
	TotalB       int64
}

// Stake é o acumulado de um bettor em uma aposta. O lado é fixado no
// primeiro pledge e não muda mais.
type Stake struct {
	TeamID  uint64
	Amount  int64
	Claimed bool
}

// Ledger é o núcleo custodial: times, apostas, stakes e settlement.
// Toda operação roda serializada sob um único mutex — ou completa todas
// as escritas, ou não escreve nada (validações antes de qualquer efeito).
type Ledger struct {
	mu sync.Mutex

	operator string // único autorizado a mutações administrativas
	custody  string // conta do token que guarda os fundos pledgeados
	token    Token
	events   Events

	// "claim" adia os payouts para chamadas individuais de Claim
	pullPayouts bool

	teams []Team // teams[i].ID == i+1
	bets  []Bet  // bets[i].ID == i

	stakes       map[uint64]map[string]*Stake  // betID -> bettor
	sideBettors  map[uint64]map[uint64][]string // betID -> teamID, em ordem de chegada
	betsByBettor map[string][]uint64
}

// New cria o ledger com operador e conta de custódia fixados.
// events pode ser nil (sem notificações).
func New(operator, custody string, token Token, events Events, pullPayouts bool) *Ledger {
	if events == nil {
		events = NopEvents{}
	}
	return &Ledger{
		operator:     operator,
		custody:      custody,
		token:        token,
		events:       events,
		pullPayouts:  pullPayouts,
		stakes:       make(map[uint64]map[string]*Stake),
		sideBettors:  make(map[uint64]map[uint64][]string),
		betsByBettor: make(map[string][]uint64),
	}
}

// Operator retorna a identidade do operador fixada na construção
func (l *Ledger) Operator() string { return l.operator }

func (l *Ledger) requireOperator(caller string) error {
	if caller != l.operator {
		return ErrNotOwner
	}
	return nil
}

// validTeamID: ids atribuídos são 1..len(teams); 0 é sempre inválido
func (l *Ledger) validTeamID(id uint64) bool {
	return id >= 1 && id <= uint64(len(l.teams))
}

func (l *Ledger) validBetID(id uint64) bool {
	return id < uint64(len(l.bets))
}

// TeamCount retorna o total de times registrados
func (l *Ledger) TeamCount() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return uint64(len(l.teams))
}

// BetCount retorna o total de apostas criadas
func (l *Ledger) BetCount() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return uint64(len(l.bets))
}

// Team retorna os detalhes de um time
func (l *Ledger) Team(id uint64) (Team, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.validTeamID(id) {
		return Team{}, ErrInvalidTeamID
	}
	return l.teams[id-1], nil
}

// AllTeams retorna uma cópia da lista de times
func (l *Ledger) AllTeams() []Team {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Team, len(l.teams))
	copy(out, l.teams)
	return out
}

// Bet retorna os detalhes de uma aposta, incluindo totais e status
func (l *Ledger) Bet(id uint64) (Bet, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.validBetID(id) {
		return Bet{}, ErrInvalidBetID
	}
	return l.bets[id], nil
}

// TotalPledged retorna o pool total (os dois lados) de uma aposta
func (l *Ledger) TotalPledged(betID uint64) (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.validBetID(betID) {
		return 0, ErrInvalidBetID
	}
	b := l.bets[betID]
	return b.TotalA + b.TotalB, nil
}

// BettorStake retorna lado e valor acumulado de um bettor em uma aposta.
// Stake zero (TeamID 0) significa que o bettor nunca apostou nela.
func (l *Ledger) BettorStake(betID uint64, bettor string) (Stake, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.validBetID(betID) {
		return Stake{}, ErrInvalidBetID
	}
	if st, ok := l.stakes[betID][bettor]; ok {
		return *st, nil
	}
	return Stake{}, nil
}

// BettorsOnTeam retorna os bettors de um lado, em ordem de primeiro pledge
func (l *Ledger) BettorsOnTeam(betID, teamID uint64) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.validBetID(betID) {
		return nil, ErrInvalidBetID
	}
	side := l.sideBettors[betID][teamID]
	out := make([]string, len(side))
	copy(out, side)
	return out, nil
}

// BetsByBettor retorna os ids das apostas em que o bettor já pledgeou
func (l *Ledger) BetsByBettor(bettor string) []uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := l.betsByBettor[bettor]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out
}

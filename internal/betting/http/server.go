package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/radieske/betting-protocol-poc/internal/betting/cache"
	"github.com/radieske/betting-protocol-poc/internal/betting/dto"
	"github.com/radieske/betting-protocol-poc/internal/betting/engine"
)

// Server expõe o ledger de apostas por HTTP. Operações administrativas
// carregam callerId; pledge/claim carregam userId.
type Server struct {
	log    *zap.Logger
	ledger *engine.Ledger
	cache  *cache.BetCache // opcional; snapshot por aposta no Redis

	// callbacks de métricas (counter++), opcionais
	OnPledge func()
	OnSettle func()
	OnClaim  func()
}

func NewServer(log *zap.Logger, l *engine.Ledger, c *cache.BetCache) *Server {
	return &Server{log: log, ledger: l, cache: c}
}

// Router retorna o mux HTTP com as rotas da API do ledger
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /teams", s.addTeam)
	mux.HandleFunc("GET /teams", s.listTeams)
	mux.HandleFunc("GET /teams/{id}", s.getTeam)
	mux.HandleFunc("POST /teams/{id}/activate", s.setTeamActive)
	mux.HandleFunc("POST /teams/{id}/deactivate", s.setTeamInactive)

	mux.HandleFunc("POST /bets", s.createBet)
	mux.HandleFunc("GET /bets", s.listBets)
	mux.HandleFunc("GET /bets/{id}", s.getBet)
	mux.HandleFunc("POST /bets/{id}/activate", s.activateBet)
	mux.HandleFunc("POST /bets/{id}/deactivate", s.deactivateBet)
	mux.HandleFunc("POST /bets/{id}/settle", s.settleBet)
	mux.HandleFunc("POST /bets/{id}/pledge", s.pledge)
	mux.HandleFunc("POST /bets/{id}/claim", s.claim)
	mux.HandleFunc("GET /bets/{id}/total", s.totalPledged)
	mux.HandleFunc("GET /bets/{id}/bettors", s.bettorsOnTeam)
	mux.HandleFunc("GET /bets/{id}/stake", s.bettorStake)

	return mux
}

// statusFor mapeia os erros sentinela do engine para HTTP
func statusFor(err error) int {
	switch {
	case errors.Is(err, engine.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, engine.ErrInvalidBetID),
		errors.Is(err, engine.ErrInvalidTeamID):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrSameTeams),
		errors.Is(err, engine.ErrInvalidTeamAID),
		errors.Is(err, engine.ErrInvalidTeamBID),
		errors.Is(err, engine.ErrInvalidAmount),
		errors.Is(err, engine.ErrInvalidBetAmount),
		errors.Is(err, engine.ErrInvalidBetTeam),
		errors.Is(err, engine.ErrInvalidWinningTeam):
		return http.StatusBadRequest
	default:
		// conflitos de estado e falhas do token
		return http.StatusConflict
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), statusFor(err))
}

// pathID extrai o {id} numérico da rota
func pathID(r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func (s *Server) addTeam(w http.ResponseWriter, r *http.Request) {
	var req dto.AddTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.CallerID == "" || req.Name == "" {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	id, err := s.ledger.AddTeam(r.Context(), req.CallerID, req.Name)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.log.Info("team added", zap.Uint64("teamId", id), zap.String("name", req.Name))
	writeJSON(w, dto.CreateTeamResponse{TeamID: id})
}

func (s *Server) listTeams(w http.ResponseWriter, r *http.Request) {
	teams := s.ledger.AllTeams()
	out := dto.TeamListResponse{
		TeamCount: uint64(len(teams)),
		Teams:     make([]dto.TeamResponse, 0, len(teams)),
	}
	for _, t := range teams {
		out.Teams = append(out.Teams, dto.TeamResponse{TeamID: t.ID, Name: t.Name, Active: t.Active})
	}
	writeJSON(w, out)
}

func (s *Server) getTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid team id", http.StatusBadRequest)
		return
	}
	team, err := s.ledger.Team(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, dto.TeamResponse{TeamID: team.ID, Name: team.Name, Active: team.Active})
}

func (s *Server) setTeamActive(w http.ResponseWriter, r *http.Request) {
	s.teamStatus(w, r, s.ledger.SetTeamActive)
}

func (s *Server) setTeamInactive(w http.ResponseWriter, r *http.Request) {
	s.teamStatus(w, r, s.ledger.SetTeamInactive)
}

func (s *Server) teamStatus(w http.ResponseWriter, r *http.Request, op func(context.Context, string, uint64) error) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid team id", http.StatusBadRequest)
		return
	}
	var req dto.TeamStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if err := op(r.Context(), req.CallerID, id); err != nil {
		s.fail(w, err)
		return
	}
	team, err := s.ledger.Team(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, dto.TeamResponse{TeamID: team.ID, Name: team.Name, Active: team.Active})
}

func (s *Server) createBet(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	id, err := s.ledger.CreateBet(r.Context(), req.CallerID, req.TeamAID, req.TeamBID, req.MinStakeCents)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.log.Info("bet created",
		zap.Uint64("betId", id),
		zap.Uint64("teamAId", req.TeamAID),
		zap.Uint64("teamBId", req.TeamBID),
	)
	s.refreshCache(r.Context(), id)
	writeJSON(w, dto.CreateBetResponse{BetID: id})
}

// listBets responde a contagem global ou, com ?userId=, as apostas do
// bettor
func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	if userID := r.URL.Query().Get("userId"); userID != "" {
		ids := s.ledger.BetsByBettor(userID)
		writeJSON(w, dto.BetListResponse{BetCount: uint64(len(ids)), BetIDs: ids})
		return
	}
	writeJSON(w, dto.BetListResponse{BetCount: s.ledger.BetCount()})
}

func (s *Server) getBet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid bet id", http.StatusBadRequest)
		return
	}
	bet, err := s.ledger.Bet(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, betResponse(bet))
}

func (s *Server) activateBet(w http.ResponseWriter, r *http.Request) {
	s.betStatus(w, r, s.ledger.ActivateBet)
}

func (s *Server) deactivateBet(w http.ResponseWriter, r *http.Request) {
	s.betStatus(w, r, s.ledger.DeactivateBet)
}

func (s *Server) betStatus(w http.ResponseWriter, r *http.Request, op func(context.Context, string, uint64) error) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid bet id", http.StatusBadRequest)
		return
	}
	var req dto.BetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if err := op(r.Context(), req.CallerID, id); err != nil {
		s.fail(w, err)
		return
	}
	s.refreshCache(r.Context(), id)
	bet, err := s.ledger.Bet(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, betResponse(bet))
}

func (s *Server) settleBet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid bet id", http.StatusBadRequest)
		return
	}
	var req dto.SettleBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	err := s.ledger.Settle(r.Context(), req.CallerID, id, req.WinnerTeamID)
	// o status terminal pode ter sido commitado mesmo com payout falho
	s.refreshCache(r.Context(), id)
	if err != nil {
		s.log.Warn("settle", zap.Uint64("betId", id), zap.Error(err))
		s.fail(w, err)
		return
	}
	if s.OnSettle != nil {
		s.OnSettle()
	}
	s.log.Info("bet settled", zap.Uint64("betId", id), zap.Uint64("winnerTeamId", req.WinnerTeamID))

	bet, err := s.ledger.Bet(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, betResponse(bet))
}

func (s *Server) pledge(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid bet id", http.StatusBadRequest)
		return
	}
	var req dto.PledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "userId required", http.StatusBadRequest)
		return
	}

	if err := s.ledger.Pledge(r.Context(), req.UserID, req.AmountCents, id, req.TeamID); err != nil {
		s.fail(w, err)
		return
	}
	if s.OnPledge != nil {
		s.OnPledge()
	}
	s.refreshCache(r.Context(), id)

	st, err := s.ledger.BettorStake(id, req.UserID)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, dto.StakeResponse{
		BetID:       id,
		UserID:      req.UserID,
		TeamID:      st.TeamID,
		AmountCents: st.Amount,
	})
}

func (s *Server) claim(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid bet id", http.StatusBadRequest)
		return
	}
	var req dto.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "userId required", http.StatusBadRequest)
		return
	}

	amount, err := s.ledger.Claim(r.Context(), req.UserID, id)
	if err != nil {
		s.fail(w, err)
		return
	}
	if s.OnClaim != nil {
		s.OnClaim()
	}
	writeJSON(w, dto.ClaimResponse{BetID: id, UserID: req.UserID, PayoutCents: amount})
}

func (s *Server) totalPledged(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid bet id", http.StatusBadRequest)
		return
	}
	total, err := s.ledger.TotalPledged(id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, dto.TotalPledgedResponse{BetID: id, TotalCents: total})
}

func (s *Server) bettorsOnTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid bet id", http.StatusBadRequest)
		return
	}
	teamID, err := strconv.ParseUint(r.URL.Query().Get("teamId"), 10, 64)
	if err != nil {
		http.Error(w, "teamId required", http.StatusBadRequest)
		return
	}
	bettors, lerr := s.ledger.BettorsOnTeam(id, teamID)
	if lerr != nil {
		s.fail(w, lerr)
		return
	}
	writeJSON(w, dto.BettorsResponse{BetID: id, TeamID: teamID, Bettors: bettors})
}

func (s *Server) bettorStake(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.Error(w, "invalid bet id", http.StatusBadRequest)
		return
	}
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId required", http.StatusBadRequest)
		return
	}
	st, err := s.ledger.BettorStake(id, userID)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, dto.StakeResponse{
		BetID:       id,
		UserID:      userID,
		TeamID:      st.TeamID,
		AmountCents: st.Amount,
		Claimed:     st.Claimed,
	})
}

// refreshCache atualiza o snapshot Redis da aposta; best-effort
func (s *Server) refreshCache(ctx context.Context, betID uint64) {
	if s.cache == nil {
		return
	}
	bet, err := s.ledger.Bet(betID)
	if err != nil {
		return
	}
	if err := s.cache.SetCurrent(ctx, bet); err != nil {
		s.log.Warn("bet cache set failed", zap.Uint64("betId", betID), zap.Error(err))
	}
}

func betResponse(bet engine.Bet) dto.BetResponse {
	return dto.BetResponse{
		BetID:         bet.ID,
		TeamAID:       bet.TeamAID,
		TeamBID:       bet.TeamBID,
		MinStakeCents: bet.MinStake,
		Status:        bet.Status.String(),
		WinnerTeamID:  bet.WinnerTeamID,
		TotalACents:   bet.TotalA,
		TotalBCents:   bet.TotalB,
	}
}

// writeJSON serializa e envia resposta JSON
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

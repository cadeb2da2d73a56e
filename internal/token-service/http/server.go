package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/radieske/betting-protocol-poc/internal/token-service/dto"
	"github.com/radieske/betting-protocol-poc/internal/token-service/repo"
)

// Repo define as operações de token usadas pelo handler HTTP
type Repo interface {
	GetOrCreateAccount(ctx context.Context, userID string) (balance int64, err error)
	Mint(ctx context.Context, userID string, amount int64, externalRef string) (newBalance int64, err error)
	Approve(ctx context.Context, holderID, spenderID string, amount int64) error
	Allowance(ctx context.Context, holderID, spenderID string) (int64, error)
	Transfer(ctx context.Context, fromID, toID string, amount int64) (transferID string, err error)
	TransferFrom(ctx context.Context, spenderID, fromID, toID string, amount int64) (transferID string, err error)
}

// Server expõe a API HTTP do token fungível
type Server struct {
	log  *zap.Logger
	repo Repo
}

func NewServer(log *zap.Logger, repo Repo) *Server { return &Server{log: log, repo: repo} }

// Router retorna o mux HTTP com as rotas da API do token
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /token/balance", s.balance)       // ?userId=...
	mux.HandleFunc("GET /token/allowance", s.allowance)   // ?holderId=&spenderId=
	mux.HandleFunc("POST /token/mint", s.mint)
	mux.HandleFunc("POST /token/approve", s.approve)
	mux.HandleFunc("POST /token/transfer", s.transfer)
	mux.HandleFunc("POST /token/transfer-from", s.transferFrom)
	return mux
}

func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		http.Error(w, "userId required", http.StatusBadRequest)
		return
	}
	bal, err := s.repo.GetOrCreateAccount(r.Context(), userID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, dto.BalanceResponse{UserID: userID, BalanceCents: bal})
}

func (s *Server) allowance(w http.ResponseWriter, r *http.Request) {
	holderID := r.URL.Query().Get("holderId")
	spenderID := r.URL.Query().Get("spenderId")
	if holderID == "" || spenderID == "" {
		http.Error(w, "holderId and spenderId required", http.StatusBadRequest)
		return
	}
	amount, err := s.repo.Allowance(r.Context(), holderID, spenderID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, dto.AllowanceResponse{HolderID: holderID, SpenderID: spenderID, AllowanceCents: amount})
}

func (s *Server) mint(w http.ResponseWriter, r *http.Request) {
	var req dto.MintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.AmountCents <= 0 {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	bal, err := s.repo.Mint(r.Context(), req.UserID, req.AmountCents, req.ExternalRef)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, dto.BalanceResponse{UserID: req.UserID, BalanceCents: bal})
}

func (s *Server) approve(w http.ResponseWriter, r *http.Request) {
	var req dto.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.HolderID == "" || req.SpenderID == "" || req.AmountCents < 0 {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if err := s.repo.Approve(r.Context(), req.HolderID, req.SpenderID, req.AmountCents); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, dto.AllowanceResponse{HolderID: req.HolderID, SpenderID: req.SpenderID, AllowanceCents: req.AmountCents})
}

func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.FromUserID == "" || req.ToUserID == "" || req.AmountCents <= 0 {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	id, err := s.repo.Transfer(r.Context(), req.FromUserID, req.ToUserID, req.AmountCents)
	if err != nil {
		s.failTransfer(w, err)
		return
	}
	writeJSON(w, dto.TransferResponse{TransferID: id, Status: "COMPLETED"})
}

func (s *Server) transferFrom(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferFromRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if req.SpenderID == "" || req.FromUserID == "" || req.ToUserID == "" || req.AmountCents <= 0 {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	id, err := s.repo.TransferFrom(r.Context(), req.SpenderID, req.FromUserID, req.ToUserID, req.AmountCents)
	if err != nil {
		s.failTransfer(w, err)
		return
	}
	writeJSON(w, dto.TransferResponse{TransferID: id, Status: "COMPLETED"})
}

// failTransfer mapeia os erros do repositório para HTTP
func (s *Server) failTransfer(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repo.ErrInsufficientFunds), errors.Is(err, repo.ErrInsufficientAllowance):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// writeJSON serializa e envia resposta JSON
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

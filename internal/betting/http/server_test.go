package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/betting-protocol-poc/internal/betting/dto"
	"github.com/radieske/betting-protocol-poc/internal/betting/engine"
)

const operator = "operator"

// stubToken aprova qualquer transferência (o engine tem testes próprios
// de falha de token)
type stubToken struct{ fail bool }

func (s *stubToken) TransferFrom(context.Context, string, string, int64) error {
	if s.fail {
		return errors.New("token down")
	}
	return nil
}
func (s *stubToken) Transfer(context.Context, string, int64) error {
	if s.fail {
		return errors.New("token down")
	}
	return nil
}
func (s *stubToken) BalanceOf(context.Context, string) (int64, error) { return 0, nil }

func newTestServer(t *testing.T) (*Server, *stubToken) {
	t.Helper()
	tok := &stubToken{}
	ledger := engine.New(operator, "custody", tok, nil, false)
	return NewServer(zap.NewNop(), ledger, nil), tok
}

func doJSON(t *testing.T, h http.Handler, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// sobe o cenário base: dois times, aposta 0 ativa com minStake 10
func setupActiveBet(t *testing.T, h http.Handler) {
	t.Helper()
	for _, name := range []string{"Team 1", "Team 2"} {
		rr := doJSON(t, h, http.MethodPost, "/teams", dto.AddTeamRequest{CallerID: operator, Name: name})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	}
	rr := doJSON(t, h, http.MethodPost, "/bets", dto.CreateBetRequest{
		CallerID: operator, TeamAID: 1, TeamBID: 2, MinStakeCents: 10,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = doJSON(t, h, http.MethodPost, "/bets/0/activate", dto.BetStatusRequest{CallerID: operator})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
}

func TestAddTeamEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	rr := doJSON(t, h, http.MethodPost, "/teams", dto.AddTeamRequest{CallerID: operator, Name: "Team 1"})
	require.Equal(t, http.StatusOK, rr.Code)

	var out dto.CreateTeamResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	assert.Equal(t, uint64(1), out.TeamID)
}

func TestOperatorOnlyEndpointsReturnForbidden(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()

	rr := doJSON(t, h, http.MethodPost, "/teams", dto.AddTeamRequest{CallerID: "bettor1", Name: "Team 1"})
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "Not owner", strings.TrimSpace(rr.Body.String()))
}

func TestPledgeFlow(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()
	setupActiveBet(t, h)

	var pledges int
	srv.OnPledge = func() { pledges++ }

	rr := doJSON(t, h, http.MethodPost, "/bets/0/pledge", dto.PledgeRequest{
		UserID: "bettor1", TeamID: 1, AmountCents: 10,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var st dto.StakeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &st))
	assert.Equal(t, uint64(1), st.TeamID)
	assert.Equal(t, int64(10), st.AmountCents)
	assert.Equal(t, 1, pledges)

	rr = doJSON(t, h, http.MethodGet, "/bets/0", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var bet dto.BetResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bet))
	assert.Equal(t, int64(10), bet.TotalACents)
	assert.Equal(t, "ACTIVE", bet.Status)
}

func TestPledgeValidationErrors(t *testing.T) {
	srv, tok := newTestServer(t)
	h := srv.Router()
	setupActiveBet(t, h)

	t.Run("undersized amount", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodPost, "/bets/0/pledge", dto.PledgeRequest{
			UserID: "bettor1", TeamID: 1, AmountCents: 5,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "invalid bet amount", strings.TrimSpace(rr.Body.String()))
	})

	t.Run("unknown bet", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodPost, "/bets/9/pledge", dto.PledgeRequest{
			UserID: "bettor1", TeamID: 1, AmountCents: 10,
		})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("token failure maps to conflict", func(t *testing.T) {
		tok.fail = true
		defer func() { tok.fail = false }()
		rr := doJSON(t, h, http.MethodPost, "/bets/0/pledge", dto.PledgeRequest{
			UserID: "bettor1", TeamID: 1, AmountCents: 10,
		})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestSettleEndpointAndReplay(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()
	setupActiveBet(t, h)

	rr := doJSON(t, h, http.MethodPost, "/bets/0/pledge", dto.PledgeRequest{UserID: "bettorX", TeamID: 1, AmountCents: 10})
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doJSON(t, h, http.MethodPost, "/bets/0/pledge", dto.PledgeRequest{UserID: "bettorY", TeamID: 2, AmountCents: 10})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, h, http.MethodPost, "/bets/0/settle", dto.SettleBetRequest{CallerID: operator, WinnerTeamID: 1})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var bet dto.BetResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &bet))
	assert.Equal(t, "COMPLETED", bet.Status)
	assert.Equal(t, uint64(1), bet.WinnerTeamID)

	// replay
	rr = doJSON(t, h, http.MethodPost, "/bets/0/settle", dto.SettleBetRequest{CallerID: operator, WinnerTeamID: 1})
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "team already won", strings.TrimSpace(rr.Body.String()))
}

func TestReadSurface(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Router()
	setupActiveBet(t, h)

	rr := doJSON(t, h, http.MethodPost, "/bets/0/pledge", dto.PledgeRequest{UserID: "bettor1", TeamID: 1, AmountCents: 25})
	require.Equal(t, http.StatusOK, rr.Code)

	t.Run("teams list", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodGet, "/teams", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var out dto.TeamListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, uint64(2), out.TeamCount)
	})

	t.Run("total pledged", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodGet, "/bets/0/total", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var out dto.TotalPledgedResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, int64(25), out.TotalCents)
	})

	t.Run("bettors on team", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodGet, "/bets/0/bettors?teamId=1", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var out dto.BettorsResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, []string{"bettor1"}, out.Bettors)
	})

	t.Run("stake by bettor", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodGet, "/bets/0/stake?userId=bettor1", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var out dto.StakeResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, int64(25), out.AmountCents)
	})

	t.Run("bets by bettor", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodGet, "/bets?userId=bettor1", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var out dto.BetListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, []uint64{0}, out.BetIDs)
	})

	t.Run("bet count", func(t *testing.T) {
		rr := doJSON(t, h, http.MethodGet, "/bets", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var out dto.BetListResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
		assert.Equal(t, uint64(1), out.BetCount)
	})
}

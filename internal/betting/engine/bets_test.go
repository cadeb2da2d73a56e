package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBetValidation(t *testing.T) {
	l, _, _ := newTestLedger(t)
	ctx := context.Background()
	teamA, teamB := addTwoTeams(t, l)

	t.Run("requires operator", func(t *testing.T) {
		_, err := l.CreateBet(ctx, "bettor1", teamA, teamB, 10)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("rejects same teams before assigning an id", func(t *testing.T) {
		_, err := l.CreateBet(ctx, testOperator, teamA, teamA, 10)
		assert.ErrorIs(t, err, ErrSameTeams)
		assert.Zero(t, l.BetCount())
	})

	t.Run("rejects invalid team ids", func(t *testing.T) {
		_, err := l.CreateBet(ctx, testOperator, l.TeamCount()+2, teamB, 10)
		assert.ErrorIs(t, err, ErrInvalidTeamAID)

		_, err = l.CreateBet(ctx, testOperator, teamA, l.TeamCount()+2, 10)
		assert.ErrorIs(t, err, ErrInvalidTeamBID)
	})

	t.Run("rejects inactive teams on either side", func(t *testing.T) {
		require.NoError(t, l.SetTeamInactive(ctx, testOperator, teamA))
		_, err := l.CreateBet(ctx, testOperator, teamA, teamB, 10)
		assert.ErrorIs(t, err, ErrTeamsInactive)

		require.NoError(t, l.SetTeamInactive(ctx, testOperator, teamB))
		_, err = l.CreateBet(ctx, testOperator, teamA, teamB, 10)
		assert.ErrorIs(t, err, ErrTeamsInactive)

		require.NoError(t, l.SetTeamActive(ctx, testOperator, teamA))
		require.NoError(t, l.SetTeamActive(ctx, testOperator, teamB))
	})

	t.Run("rejects non-positive min stake", func(t *testing.T) {
		_, err := l.CreateBet(ctx, testOperator, teamA, teamB, 0)
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = l.CreateBet(ctx, testOperator, teamA, teamB, -5)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestCreateBetAssignsSequentialIDsFromZero(t *testing.T) {
	l, _, rec := newTestLedger(t)
	ctx := context.Background()
	teamA, teamB := addTwoTeams(t, l)

	id0, err := l.CreateBet(ctx, testOperator, teamA, teamB, 10)
	require.NoError(t, err)
	id1, err := l.CreateBet(ctx, testOperator, teamA, teamB, 25)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), id0)
	assert.Equal(t, uint64(1), id1)
	assert.Equal(t, uint64(2), l.BetCount())

	bet, err := l.Bet(id0)
	require.NoError(t, err)
	assert.Equal(t, teamA, bet.TeamAID)
	assert.Equal(t, teamB, bet.TeamBID)
	assert.Equal(t, int64(10), bet.MinStake)
	assert.Equal(t, BetStatusInactive, bet.Status)
	assert.Zero(t, bet.TotalA)
	assert.Zero(t, bet.TotalB)
	assert.Zero(t, bet.WinnerTeamID)

	assert.Contains(t, rec.emitted, "BET_CREATED 0")
	assert.Contains(t, rec.emitted, "BET_CREATED 1")
}

func TestActivateBet(t *testing.T) {
	l, _, rec := newTestLedger(t)
	ctx := context.Background()
	betID, _, _ := createBet(t, l)

	t.Run("requires operator", func(t *testing.T) {
		assert.ErrorIs(t, l.ActivateBet(ctx, "bettor1", betID), ErrNotOwner)
	})

	t.Run("rejects invalid bet id", func(t *testing.T) {
		assert.ErrorIs(t, l.ActivateBet(ctx, testOperator, betID+1), ErrInvalidBetID)
	})

	t.Run("opens the bet and notifies", func(t *testing.T) {
		require.NoError(t, l.ActivateBet(ctx, testOperator, betID))

		bet, err := l.Bet(betID)
		require.NoError(t, err)
		assert.Equal(t, BetStatusActive, bet.Status)
		assert.Contains(t, rec.emitted, "BET_ACTIVE 0")
	})

	t.Run("rejects when already active", func(t *testing.T) {
		assert.ErrorIs(t, l.ActivateBet(ctx, testOperator, betID), ErrAlreadyActive)
	})
}

func TestActivateBetNeverLeavesCompleted(t *testing.T) {
	l, tok, _ := newTestLedger(t)
	ctx := context.Background()
	betID, teamA, _ := createActiveBet(t, l)

	tok.mintAndApprove("bettor1", 10)
	require.NoError(t, l.Pledge(ctx, "bettor1", 10, betID, teamA))
	require.NoError(t, l.Settle(ctx, testOperator, betID, teamA))

	assert.ErrorIs(t, l.ActivateBet(ctx, testOperator, betID), ErrTeamAlreadyWon)
}

func TestDeactivateBet(t *testing.T) {
	l, tok, rec := newTestLedger(t)
	ctx := context.Background()
	betID, teamA, _ := createBet(t, l)

	t.Run("requires operator", func(t *testing.T) {
		assert.ErrorIs(t, l.DeactivateBet(ctx, "bettor1", betID), ErrNotOwner)
	})

	t.Run("rejects invalid bet id", func(t *testing.T) {
		assert.ErrorIs(t, l.DeactivateBet(ctx, testOperator, betID+1), ErrInvalidBetID)
	})

	t.Run("only an active bet can be withdrawn", func(t *testing.T) {
		assert.ErrorIs(t, l.DeactivateBet(ctx, testOperator, betID), ErrBetAlreadyInactive)
	})

	t.Run("closes an active bet without stakes", func(t *testing.T) {
		require.NoError(t, l.ActivateBet(ctx, testOperator, betID))
		require.NoError(t, l.DeactivateBet(ctx, testOperator, betID))

		bet, err := l.Bet(betID)
		require.NoError(t, err)
		assert.Equal(t, BetStatusInactive, bet.Status)
		assert.Contains(t, rec.emitted, "BET_INACTIVE 0")
	})

	t.Run("rejects once any stake is recorded", func(t *testing.T) {
		require.NoError(t, l.ActivateBet(ctx, testOperator, betID))
		tok.mintAndApprove("bettor1", 10)
		require.NoError(t, l.Pledge(ctx, "bettor1", 10, betID, teamA))

		assert.ErrorIs(t, l.DeactivateBet(ctx, testOperator, betID), ErrBettorsAlreadyBetted)

		// aposta continua aberta
		bet, err := l.Bet(betID)
		require.NoError(t, err)
		assert.Equal(t, BetStatusActive, bet.Status)
	})
}

func TestTeamDeactivationDoesNotInvalidateExistingBet(t *testing.T) {
	l, tok, _ := newTestLedger(t)
	ctx := context.Background()
	betID, teamA, _ := createActiveBet(t, l)

	// desativar o time depois da criação não afeta a aposta já aberta
	require.NoError(t, l.SetTeamInactive(ctx, testOperator, teamA))

	tok.mintAndApprove("bettor1", 10)
	require.NoError(t, l.Pledge(ctx, "bettor1", 10, betID, teamA))

	bet, err := l.Bet(betID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), bet.TotalA)
}

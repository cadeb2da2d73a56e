package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/betting-protocol-poc/internal/betting/engine"
)

// BetCache mantém no Redis um snapshot do estado corrente de cada
// aposta, para leitura barata por outros serviços.
type BetCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewBetCache(c *redis.Client, ttl time.Duration) *BetCache {
	return &BetCache{Client: c, TTL: ttl}
}

// Snapshot é o payload cacheado por aposta
type Snapshot struct {
	BetID         uint64 `json:"betId"`
	TeamAID       uint64 `json:"teamAId"`
	TeamBID       uint64 `json:"teamBId"`
	MinStakeCents int64  `json:"min_stake_cents"`
	Status        string `json:"status"`
	WinnerTeamID  uint64 `json:"winnerTeamId,omitempty"`
	TotalACents   int64  `json:"total_a_cents"`
	TotalBCents   int64  `json:"total_b_cents"`
}

func key(betID uint64) string { return fmt.Sprintf("bet:current:%d", betID) }

// SetCurrent grava o snapshot corrente de uma aposta com TTL definido
func (c *BetCache) SetCurrent(ctx context.Context, bet engine.Bet) error {
	snap := Snapshot{
		BetID:         bet.ID,
		TeamAID:       bet.TeamAID,
		TeamBID:       bet.TeamBID,
		MinStakeCents: bet.MinStake,
		Status:        bet.Status.String(),
		WinnerTeamID:  bet.WinnerTeamID,
		TotalACents:   bet.TotalA,
		TotalBCents:   bet.TotalB,
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key(bet.ID), b, c.TTL).Err()
}

// GetCurrent lê o snapshot de uma aposta; redis.Nil quando ausente
func (c *BetCache) GetCurrent(ctx context.Context, betID uint64) (Snapshot, error) {
	var snap Snapshot
	b, err := c.Client.Get(ctx, key(betID)).Bytes()
	if err != nil {
		return snap, err
	}
	err = json.Unmarshal(b, &snap)
	return snap, err
}

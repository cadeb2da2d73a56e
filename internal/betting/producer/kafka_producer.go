package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/radieske/betting-protocol-poc/internal/betting/engine"
	"github.com/radieske/betting-protocol-poc/pkg/contracts/events"
)

// KafkaPublisher publica as notificações do ledger no tópico
// ledger_events. Implementa engine.Events; o engine ignora erros de
// publicação (a mutação já foi commitada).
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

// publish serializa e envia; chave por entidade preserva ordenação por
// partição
func (p *KafkaPublisher) publish(ctx context.Context, key string, e events.LedgerEvent) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return p.Writer.WriteMessages(ctx, kafka.Message{Key: []byte(key), Value: b})
}

func betKey(betID uint64) string   { return fmt.Sprintf("bet-%d", betID) }
func teamKey(teamID uint64) string { return fmt.Sprintf("team-%d", teamID) }

func (p *KafkaPublisher) TeamAdded(ctx context.Context, teamID uint64, name string) error {
	return p.publish(ctx, teamKey(teamID), events.LedgerEvent{
		Type: events.TypeTeamAdded, TeamID: teamID, TeamName: name,
	})
}

func (p *KafkaPublisher) TeamActive(ctx context.Context, teamID uint64) error {
	return p.publish(ctx, teamKey(teamID), events.LedgerEvent{
		Type: events.TypeTeamActive, TeamID: teamID,
	})
}

func (p *KafkaPublisher) TeamInactive(ctx context.Context, teamID uint64) error {
	return p.publish(ctx, teamKey(teamID), events.LedgerEvent{
		Type: events.TypeTeamInactive, TeamID: teamID,
	})
}

func (p *KafkaPublisher) BetCreated(ctx context.Context, bet engine.Bet) error {
	return p.publish(ctx, betKey(bet.ID), events.LedgerEvent{
		Type:     events.TypeBetCreated,
		BetID:    bet.ID,
		TeamAID:  bet.TeamAID,
		TeamBID:  bet.TeamBID,
		MinStake: bet.MinStake,
	})
}

func (p *KafkaPublisher) BetActive(ctx context.Context, betID uint64) error {
	return p.publish(ctx, betKey(betID), events.LedgerEvent{
		Type: events.TypeBetActive, BetID: betID,
	})
}

func (p *KafkaPublisher) BetInactive(ctx context.Context, betID uint64) error {
	return p.publish(ctx, betKey(betID), events.LedgerEvent{
		Type: events.TypeBetInactive, BetID: betID,
	})
}

func (p *KafkaPublisher) BetCompleted(ctx context.Context, betID, winnerTeamID uint64) error {
	return p.publish(ctx, betKey(betID), events.LedgerEvent{
		Type: events.TypeBetCompleted, BetID: betID, WinnerTeamID: winnerTeamID,
	})
}

func (p *KafkaPublisher) StakePledged(ctx context.Context, betID, teamID uint64, bettor string, amountCents int64) error {
	return p.publish(ctx, betKey(betID), events.LedgerEvent{
		Type:        events.TypeStakePledged,
		BetID:       betID,
		TeamID:      teamID,
		Bettor:      bettor,
		AmountCents: amountCents,
	})
}

func (p *KafkaPublisher) PayoutIssued(ctx context.Context, betID uint64, bettor string, amountCents int64) error {
	return p.publish(ctx, betKey(betID), events.LedgerEvent{
		Type:        events.TypePayoutIssued,
		BetID:       betID,
		Bettor:      bettor,
		AmountCents: amountCents,
	})
}

package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/betting-protocol-poc/pkg/contracts/events"
)

// Store persiste eventos do ledger
type Store interface {
	InsertEvent(ctx context.Context, e events.LedgerEvent) error
}

// Broadcaster repassa eventos persistidos (ex: Redis Pub/Sub)
type Broadcaster interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// DLQWriter recebe mensagens que não puderam ser decodificadas.
// *kafka.Writer satisfaz a interface.
type DLQWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Processor consome ledger_events, persiste o histórico e rebroadcasta.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa.
type Processor struct {
	Log       *zap.Logger
	Reader    *kafka.Reader
	Store     Store
	Broadcast Broadcaster
	Channel   string
	DLQ       DLQWriter

	OnConsumed  func()       // métricas (counter++)
	OnPersisted func()       // métricas
	OnBroadcast func()       // métricas
	OnError     func(string) // métricas por fase
}

// Run inicia o loop principal de consumo e processamento
func (p *Processor) Run(ctx context.Context) error {
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			p.fail("read")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed()
		}

		p.Handle(ctx, m)
	}
}

// Handle processa uma única mensagem: decode -> persist -> broadcast
func (p *Processor) Handle(ctx context.Context, m kafka.Message) {
	var ev events.LedgerEvent
	if err := json.Unmarshal(m.Value, &ev); err != nil || ev.Type == "" {
		p.Log.Warn("invalid ledger event", zap.Error(err))
		p.fail("decode")
		if p.DLQ != nil {
			_ = p.DLQ.WriteMessages(ctx, kafka.Message{Key: m.Key, Value: m.Value})
		}
		return
	}

	if err := p.Store.InsertEvent(ctx, ev); err != nil {
		p.Log.Warn("history insert failed", zap.String("type", ev.Type), zap.Error(err))
		p.fail("db_insert")
		return
	}
	if p.OnPersisted != nil {
		p.OnPersisted()
	}

	// broadcast é best-effort; falha não bloqueia o consumo
	if p.Broadcast != nil {
		b, _ := json.Marshal(ev)
		bctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		defer cancel()
		if err := p.Broadcast.Publish(bctx, p.Channel, b); err != nil {
			p.Log.Warn("broadcast publish failed", zap.Error(err))
			p.fail("broadcast")
		} else if p.OnBroadcast != nil {
			p.OnBroadcast()
		}
	}
}

func (p *Processor) fail(stage string) {
	if p.OnError != nil {
		p.OnError(stage)
	}
}

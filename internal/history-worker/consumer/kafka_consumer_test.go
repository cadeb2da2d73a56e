package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/betting-protocol-poc/pkg/contracts/events"
)

type fakeStore struct {
	inserted []events.LedgerEvent
	err      error
}

func (f *fakeStore) InsertEvent(_ context.Context, e events.LedgerEvent) error {
	if f.err != nil {
		return f.err
	}
	f.inserted = append(f.inserted, e)
	return nil
}

type fakeBroadcaster struct {
	published [][]byte
	channels  []string
}

func (f *fakeBroadcaster) Publish(_ context.Context, channel string, payload []byte) error {
	f.channels = append(f.channels, channel)
	f.published = append(f.published, payload)
	return nil
}

type fakeDLQ struct {
	messages []kafka.Message
}

func (f *fakeDLQ) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.messages = append(f.messages, msgs...)
	return nil
}

func msgFor(t *testing.T, e events.LedgerEvent) kafka.Message {
	t.Helper()
	b, err := json.Marshal(e)
	require.NoError(t, err)
	return kafka.Message{Key: []byte("bet-0"), Value: b}
}

func TestHandlePersistsAndBroadcasts(t *testing.T) {
	store := &fakeStore{}
	bc := &fakeBroadcaster{}
	stages := map[string]int{}

	p := &Processor{
		Log:       zap.NewNop(),
		Store:     store,
		Broadcast: bc,
		Channel:   "ledger_events_broadcast",
		OnError:   func(s string) { stages[s]++ },
	}

	ev := events.LedgerEvent{Type: events.TypeStakePledged, BetID: 0, TeamID: 1, Bettor: "bettor1", AmountCents: 10}
	p.Handle(context.Background(), msgFor(t, ev))

	require.Len(t, store.inserted, 1)
	assert.Equal(t, ev, store.inserted[0])

	require.Len(t, bc.published, 1)
	assert.Equal(t, "ledger_events_broadcast", bc.channels[0])
	var out events.LedgerEvent
	require.NoError(t, json.Unmarshal(bc.published[0], &out))
	assert.Equal(t, ev, out)

	assert.Empty(t, stages)
}

func TestHandleSendsUndecodableMessageToDLQ(t *testing.T) {
	store := &fakeStore{}
	dlq := &fakeDLQ{}
	stages := map[string]int{}

	p := &Processor{
		Log:     zap.NewNop(),
		Store:   store,
		DLQ:     dlq,
		OnError: func(s string) { stages[s]++ },
	}

	p.Handle(context.Background(), kafka.Message{Value: []byte("not json")})
	// evento sem type também é inválido
	p.Handle(context.Background(), kafka.Message{Value: []byte(`{"bet_id":1}`)})

	assert.Empty(t, store.inserted)
	assert.Len(t, dlq.messages, 2)
	assert.Equal(t, 2, stages["decode"])
}

func TestHandleStoreFailureSkipsBroadcast(t *testing.T) {
	store := &fakeStore{err: errors.New("db down")}
	bc := &fakeBroadcaster{}
	stages := map[string]int{}

	p := &Processor{
		Log:       zap.NewNop(),
		Store:     store,
		Broadcast: bc,
		Channel:   "ledger_events_broadcast",
		OnError:   func(s string) { stages[s]++ },
	}

	p.Handle(context.Background(), msgFor(t, events.LedgerEvent{Type: events.TypeBetCreated, BetID: 3}))

	assert.Empty(t, bc.published)
	assert.Equal(t, 1, stages["db_insert"])
}

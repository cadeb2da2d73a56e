package topics

const (
	// Fluxo de eventos do ledger (times, apostas, pledges, payouts)
	LedgerEvents = "ledger_events"

	// DLQ do ledger-history-worker
	LedgerEventsDLQ = "ledger_events_dlq"
)

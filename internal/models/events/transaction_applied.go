package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionApplied is published after the engine accepts a record.
// Amount is zero for dispute-family records, which carry none of their own.
type TransactionApplied struct {
	EventID    string          `json:"event_id"`
	Kind       string          `json:"kind"`
	TxID       uint32          `json:"tx_id"`
	ClientID   uint16          `json:"client_id"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt time.Time       `json:"occurred_at"`
}

package models

import "github.com/shopspring/decimal"

// EntryStatus tracks where a ledger entry stands in the dispute
// lifecycle. Transitions only ever advance Normal -> Disputed and
// Disputed -> {Normal, ChargedBack}; ChargedBack is terminal.
type EntryStatus uint8

const (
	StatusNormal EntryStatus = iota
	StatusDisputed
	StatusChargedBack
)

func (s EntryStatus) String() string {
	switch s {
	case StatusNormal:
		return "normal"
	case StatusDisputed:
		return "disputed"
	case StatusChargedBack:
		return "charged_back"
	default:
		return "invalid"
	}
}

// LedgerEntry is the engine's memory of one past deposit or withdrawal,
// keyed by transaction id. Later dispute, resolve and chargeback records
// are validated against it. Entries are never deleted.
type LedgerEntry struct {
	TxID     uint32
	ClientID uint16
	Kind     RecordKind // KindDeposit or KindWithdrawal
	Amount   decimal.Decimal
	Status   EntryStatus
}

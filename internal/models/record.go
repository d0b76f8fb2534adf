package models

import "github.com/shopspring/decimal"

// RecordKind identifies one of the five transaction instructions.
type RecordKind uint8

const (
	KindUnknown RecordKind = iota
	KindDeposit
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

// KindFromString maps the wire name of a record kind to its constant.
// Unknown names map to KindUnknown.
func KindFromString(s string) RecordKind {
	switch s {
	case "deposit":
		return KindDeposit
	case "withdrawal":
		return KindWithdrawal
	case "dispute":
		return KindDispute
	case "resolve":
		return KindResolve
	case "chargeback":
		return KindChargeback
	default:
		return KindUnknown
	}
}

func (k RecordKind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// HasAmount reports whether records of this kind carry an amount field.
// Dispute, resolve and chargeback reference an earlier transaction and
// carry no amount of their own.
func (k RecordKind) HasAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Record is one decoded transaction instruction addressed to a client
// account. Immutable once decoded.
type Record struct {
	Kind     RecordKind
	TxID     uint32
	ClientID uint16
	Amount   decimal.Decimal // meaningful only when Kind.HasAmount()
}

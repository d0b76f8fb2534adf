package engine

import "errors"

// Engine-level rejection reasons. Every one of these is local to the
// offending record: the engine state is unchanged and the caller is
// expected to count or log the rejection and keep going.
var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrDuplicateTx       = errors.New("transaction id already recorded")
	ErrUnknownAccount    = errors.New("no account exists for client")
	ErrInsufficientFunds = errors.New("insufficient available funds")
	ErrAccountLocked     = errors.New("account is locked")
	ErrTxNotFound        = errors.New("referenced transaction not found")
	ErrClientMismatch    = errors.New("referenced transaction belongs to another client")
	ErrStatusMismatch    = errors.New("referenced transaction is not in the required status")
	ErrUnknownKind       = errors.New("unknown record kind")
)

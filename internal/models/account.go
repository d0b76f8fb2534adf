package models

import "github.com/shopspring/decimal"

// AccountSnapshot is a point-in-time copy of one client account as the
// engine saw it. Total is always Available + Held.
type AccountSnapshot struct {
	ClientID  uint16          `json:"client_id"`
	Available decimal.Decimal `json:"available"`
	Held      decimal.Decimal `json:"held"`
	Total     decimal.Decimal `json:"total"`
	Locked    bool            `json:"locked"`
}

package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Evento emitido pelo ledger-service após liquidar uma aposta pendente.
type BetResolved struct {
	BetID         string              `json:"betId"`
	Channel       string              `json:"channel"`
	Status        string              `json:"status"` // "won" | "lost"
	Profit        decimal.Decimal     `json:"profit"`
	TipsterProfit decimal.NullDecimal `json:"tipster_profit,omitempty"`
	Ts            time.Time           `json:"ts"`
}

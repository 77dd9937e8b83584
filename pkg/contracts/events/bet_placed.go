package events

import "github.com/shopspring/decimal"

// Evento publicado quando uma aposta é registrada no ledger.
type BetPlaced struct {
	BetID       string          `json:"bet_id"`
	Channel     string          `json:"channel"`
	BetType     string          `json:"bet_type"` // "single" | "double"
	Category    string          `json:"category"`
	Selection   string          `json:"selection"`
	Odds        float64         `json:"odds"`
	StakeNorm   int             `json:"stake_norm"` // 0 = tracking, sem capital em risco
	StakeAmount decimal.Decimal `json:"stake_amount"`
	TsUnixMs    int64           `json:"ts_unix_ms"`
}

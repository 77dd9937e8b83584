package dto

import "github.com/shopspring/decimal"

type PlaceBetRequest struct {
	Date     string `json:"bet_date"` // "YYYY-MM-DD"; vazio = hoje
	BetType  string `json:"bet_type"` // "single" | "double"
	Category string `json:"category"`

	Selection   string `json:"selection"`
	Description string `json:"description,omitempty"`

	// Segunda perna de uma aposta dupla; as cuotas já vêm combinadas em Odds
	Leg2Selection   string `json:"leg2_selection,omitempty"`
	Leg2Description string `json:"leg2_description,omitempty"`

	Odds      float64 `json:"odds"`
	StakeNorm int     `json:"stake_norm,omitempty"` // 0 = deixar o serviço sugerir
	Channel   string  `json:"channel,omitempty"`

	// Dados reportados pelo tipster (escala própria dele)
	TipsterAmount decimal.NullDecimal `json:"tipster_amount,omitempty"`
	TipsterStake  float64             `json:"tipster_stake,omitempty"`
	TipsterScale  float64             `json:"tipster_scale,omitempty"`

	// Tracking: registra sem comprometer capital (stake vira 0)
	Tracking bool `json:"tracking,omitempty"`
}

type ResolveBetRequest struct {
	Outcome string `json:"outcome"` // "won" | "lost"
}

type SaveProfileRequest struct {
	StartingBankroll decimal.Decimal `json:"starting_bankroll"`
	CurrentBankroll  decimal.Decimal `json:"current_bankroll"`
	StakeUnitPercent decimal.Decimal `json:"stake10_percent"`
	UseCompounding   bool            `json:"use_compounding"`
}

type SaveChannelRequest struct {
	StartingBankroll decimal.Decimal `json:"starting_bankroll"`
	CurrentBankroll  decimal.Decimal `json:"current_bankroll"`
}

type SaveMonthlyConfigRequest struct {
	StartingBankroll decimal.Decimal `json:"starting_bankroll"`
}

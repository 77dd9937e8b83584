package dto

import (
	"github.com/shopspring/decimal"

	"github.com/radieske/bet-ledger/internal/ledger-service/report"
)

type Bet struct {
	ID            string              `json:"id"`
	Date          string              `json:"bet_date"`
	BetType       string              `json:"bet_type"`
	Category      string              `json:"category"`
	Selection     string              `json:"selection"`
	Description   string              `json:"description,omitempty"`
	Odds          float64             `json:"odds"`
	StakeNorm     int                 `json:"stake_norm"`
	StakeAmount   decimal.Decimal     `json:"stake_amount"`
	Channel       string              `json:"channel"`
	TipsterAmount decimal.NullDecimal `json:"tipster_amount,omitempty"`
	Status        string              `json:"status"`
	Profit        decimal.NullDecimal `json:"profit,omitempty"`
	TipsterProfit decimal.NullDecimal `json:"tipster_profit,omitempty"`
}

type PlaceBetResponse struct {
	BetID       string          `json:"betId"`
	Status      string          `json:"status"` // sempre "pending" na criação
	StakeNorm   int             `json:"stake_norm"`
	StakeAmount decimal.Decimal `json:"stake_amount"`
}

type ResolveBetResponse struct {
	BetID           string              `json:"betId"`
	Status          string              `json:"status"`
	Profit          decimal.Decimal     `json:"profit"`
	TipsterProfit   decimal.NullDecimal `json:"tipster_profit,omitempty"`
	CurrentBankroll decimal.Decimal     `json:"current_bankroll"`
}

type ProfileResponse struct {
	ID               string          `json:"id"`
	StartingBankroll decimal.Decimal `json:"starting_bankroll"`
	CurrentBankroll  decimal.Decimal `json:"current_bankroll"`
	StakeUnitPercent decimal.Decimal `json:"stake10_percent"`
	UseCompounding   bool            `json:"use_compounding"`
}

type ChannelResponse struct {
	ChannelName      string          `json:"channel_name"`
	StartingBankroll decimal.Decimal `json:"starting_bankroll"`
	CurrentBankroll  decimal.Decimal `json:"current_bankroll"`
}

type MonthlyConfigResponse struct {
	Month            string          `json:"month"`
	StartingBankroll decimal.Decimal `json:"starting_bankroll"`
}

type DashboardResponse struct {
	Channel string `json:"channel"`
	Month   string `json:"month,omitempty"`
	report.Result
}

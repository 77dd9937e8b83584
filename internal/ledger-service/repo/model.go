package repo

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status possíveis de uma aposta no ledger.
const (
	StatusPending = "pending"
	StatusWon     = "won"
	StatusLost    = "lost"
)

// DefaultChannel é o rótulo usado quando a aposta não informa canal.
const DefaultChannel = "Personal"

// BankrollProfile é o perfil global de banca (linha única em bankroll_profiles).
// StakeUnitPercent corresponde à coluna histórica stake10_percent: a fração da
// banca que uma unidade cheia de stake representa.
type BankrollProfile struct {
	ID               string
	StartingBankroll decimal.Decimal
	CurrentBankroll  decimal.Decimal
	StakeUnitPercent decimal.Decimal
	UseCompounding   bool
}

// ChannelBankroll é a banca isolada de um canal (tipster), chaveada por nome.
type ChannelBankroll struct {
	ID               string
	ChannelName      string
	StartingBankroll decimal.Decimal
	CurrentBankroll  decimal.Decimal
}

// MonthlyConfig é o checkpoint manual de rollover: banca inicial explícita
// de um mês ("YYYY-MM"), usada só na visão de todos os canais.
type MonthlyConfig struct {
	ID               string
	Month            string
	StartingBankroll decimal.Decimal
}

// Bet é o registro imutável do log de apostas (manual_bets).
// StakeAmount é congelado na criação; Profit/TipsterProfit ficam nulos até a
// liquidação e são escritos exatamente uma vez.
type Bet struct {
	ID            string
	Date          time.Time
	Type          string // "single" | "double" (odds já combinadas nas duplas)
	Category      string
	Selection     string
	Description   string
	Odds          float64
	StakeNorm     int // 0..10 (0..11 no canal premium); 0 = tracking
	StakeAmount   decimal.Decimal
	Channel       string
	TipsterAmount decimal.NullDecimal
	Status        string
	Profit        decimal.NullDecimal
	TipsterProfit decimal.NullDecimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ChannelOrDefault devolve o canal da aposta, caindo no rótulo padrão.
func (b *Bet) ChannelOrDefault() string {
	if b.Channel == "" {
		return DefaultChannel
	}
	return b.Channel
}

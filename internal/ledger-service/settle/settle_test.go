package settle_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/radieske/bet-ledger/internal/ledger-service/settle"
	"github.com/radieske/bet-ledger/internal/ledger-service/stake"
)

func TestValidOutcome(t *testing.T) {
	if !settle.ValidOutcome(settle.Won) || !settle.ValidOutcome(settle.Lost) {
		t.Fatal("won/lost must be valid outcomes")
	}
	if settle.ValidOutcome("pending") || settle.ValidOutcome("void") || settle.ValidOutcome("") {
		t.Fatal("only won/lost are terminal outcomes")
	}
}

func TestProfit(t *testing.T) {
	tests := []struct {
		name    string
		stake   string
		odds    float64
		outcome settle.Outcome
		want    string
	}{
		{"won doubles", "25", 2.0, settle.Won, "25"},
		{"won low odds", "10", 1.5, settle.Won, "5"},
		{"lost loses stake", "25", 2.0, settle.Lost, "-25"},
		{"lost ignores odds", "25", 9.99, settle.Lost, "-25"},
		{"tracking stake", "0", 2.0, settle.Won, "0"},
		{"tracking lost", "0", 2.0, settle.Lost, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := settle.Profit(decimal.RequireFromString(tt.stake), tt.odds, tt.outcome)
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Fatalf("Profit(%s, %v, %s) = %s, want %s", tt.stake, tt.odds, tt.outcome, got, tt.want)
			}
		})
	}
}

func TestTipsterProfit(t *testing.T) {
	// tipster sem valor reportado: permanece nulo, nunca vira zero
	got := settle.TipsterProfit(decimal.NullDecimal{}, 2.0, settle.Won)
	if got.Valid {
		t.Fatalf("null tipster amount must stay null, got %s", got.Decimal)
	}

	amount := decimal.NullDecimal{Decimal: decimal.NewFromInt(1000), Valid: true}

	got = settle.TipsterProfit(amount, 2.0, settle.Won)
	if !got.Valid || !got.Decimal.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("tipster won = %v %s, want 1000", got.Valid, got.Decimal)
	}

	got = settle.TipsterProfit(amount, 2.0, settle.Lost)
	if !got.Valid || !got.Decimal.Equal(decimal.NewFromInt(-1000)) {
		t.Fatalf("tipster lost = %v %s, want -1000", got.Valid, got.Decimal)
	}
}

// Simula o ciclo completo da banca: criar, liquidar e apagar pendentes.
// O invariante do ledger tem que fechar no final:
//
//	banca atual == banca inicial + soma dos lucros liquidados
//
// tanto na banca global quanto em cada canal.
func TestBankrollInvariant(t *testing.T) {
	starting := decimal.NewFromInt(1000)
	pct := decimal.RequireFromString("0.05")

	type pending struct {
		channel string
		amount  decimal.Decimal
		odds    float64
	}

	current := starting
	channels := map[string]decimal.Decimal{}
	var sumProfit decimal.Decimal
	channelProfit := map[string]decimal.Decimal{}
	var open []pending

	place := func(channel string, norm int, odds float64) {
		amount := stake.Valuate(norm, channel, current, pct)
		open = append(open, pending{channel, amount, odds})
	}
	resolve := func(i int, o settle.Outcome) {
		p := open[i]
		profit := settle.Profit(p.amount, p.odds, o)
		current = current.Add(profit)
		channels[p.channel] = channels[p.channel].Add(profit)
		sumProfit = sumProfit.Add(profit)
		channelProfit[p.channel] = channelProfit[p.channel].Add(profit)
		open = append(open[:i], open[i+1:]...)
	}

	place("Personal", 5, 2.0)
	place("Betting Secrets", 10, 1.8)
	place(stake.ChannelPremium, 11, 2.2)
	resolve(0, settle.Won)
	place("Personal", 3, 3.0)
	resolve(0, settle.Lost) // Betting Secrets
	resolve(1, settle.Lost) // Personal norm 3
	// a premium segue pendente e é apagada: não pode tocar em saldo nenhum
	open = open[:0]

	if want := starting.Add(sumProfit); !current.Equal(want) {
		t.Fatalf("current bankroll %s != starting + resolved profit %s", current, want)
	}
	for ch, bal := range channels {
		if !bal.Equal(channelProfit[ch]) {
			t.Fatalf("channel %q balance %s != resolved profit %s", ch, bal, channelProfit[ch])
		}
	}
	if _, touched := channels[stake.ChannelPremium]; touched {
		t.Fatal("deleted pending bet must not touch channel balances")
	}
}

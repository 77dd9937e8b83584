package report_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/bet-ledger/internal/ledger-service/report"
	"github.com/radieske/bet-ledger/internal/ledger-service/repo"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func num(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func null() decimal.NullDecimal { return decimal.NullDecimal{} }

func val(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: num(s), Valid: true}
}

func bet(date, channel, status, stakeAmount string, profit, tipsterProfit decimal.NullDecimal) repo.Bet {
	return repo.Bet{
		Date:          day(date),
		Channel:       channel,
		Status:        status,
		StakeAmount:   num(stakeAmount),
		Profit:        profit,
		TipsterProfit: tipsterProfit,
	}
}

func baseline(s string) report.Baseline {
	return report.Baseline{Start: num(s)}
}

func TestAggregateEmpty(t *testing.T) {
	got := report.Aggregate(nil, baseline("1000"), report.Filter{})

	if !got.StartingCapital.Equal(num("1000")) {
		t.Fatalf("starting capital = %s, want 1000", got.StartingCapital)
	}
	if len(got.Curve) != 1 {
		t.Fatalf("curve len = %d, want only the synthetic start point", len(got.Curve))
	}
	if got.Curve[0].Date != report.StartLabel || !got.Curve[0].Bankroll.Equal(num("1000")) {
		t.Fatalf("start point = %+v", got.Curve[0])
	}
	if got.Summary.WinRate != 0.0 {
		t.Fatalf("win rate without resolved bets = %v, want 0.0", got.Summary.WinRate)
	}
	if !got.Summary.Turnover.Equal(decimal.Zero) {
		t.Fatalf("turnover = %s, want 0", got.Summary.Turnover)
	}
}

func TestAggregateCurve(t *testing.T) {
	// Ordem de chegada descendente por data, como o fetch devolve.
	bets := []repo.Bet{
		bet("2026-08-12", "Personal", repo.StatusPending, "30", null(), null()),
		bet("2026-08-10", "Personal", repo.StatusLost, "10", val("-10"), val("-500")),
		bet("2026-08-05", "Personal", repo.StatusWon, "25", val("25"), val("1000")),
	}

	got := report.Aggregate(bets, baseline("1000"), report.Filter{})

	// start + duas liquidadas; a pendente não gera ponto
	if len(got.Curve) != 3 {
		t.Fatalf("curve len = %d, want 3", len(got.Curve))
	}
	wantBank := []string{"1000", "1025", "1015"}
	wantTipster := []string{"0", "1000", "500"}
	for i, p := range got.Curve {
		if !p.Bankroll.Equal(num(wantBank[i])) {
			t.Fatalf("curve[%d].Bankroll = %s, want %s", i, p.Bankroll, wantBank[i])
		}
		if !p.TipsterBankroll.Equal(num(wantTipster[i])) {
			t.Fatalf("curve[%d].TipsterBankroll = %s, want %s", i, p.TipsterBankroll, wantTipster[i])
		}
	}
	if got.Curve[1].Date != "2026-08-05" || got.Curve[2].Date != "2026-08-10" {
		t.Fatalf("curve must be chronological ascending: %+v", got.Curve)
	}

	s := got.Summary
	if s.Won != 1 || s.Lost != 1 || s.Pending != 1 {
		t.Fatalf("counts = %d/%d/%d, want 1/1/1", s.Won, s.Lost, s.Pending)
	}
	if !s.TotalProfit.Equal(num("15")) {
		t.Fatalf("total profit = %s, want 15", s.TotalProfit)
	}
	if !s.TotalTipsterProfit.Equal(num("500")) {
		t.Fatalf("total tipster profit = %s, want 500", s.TotalTipsterProfit)
	}
	if s.WinRate != 50.0 {
		t.Fatalf("win rate = %v, want 50.0", s.WinRate)
	}
	// turnover exclui a pendente de $30
	if !s.Turnover.Equal(num("35")) {
		t.Fatalf("turnover = %s, want 35", s.Turnover)
	}
}

// A agregação é uma projeção pura: rodar duas vezes dá o mesmo resultado.
func TestAggregateIdempotent(t *testing.T) {
	bets := []repo.Bet{
		bet("2026-08-10", "Personal", repo.StatusLost, "10", val("-10"), null()),
		bet("2026-08-05", "Personal", repo.StatusWon, "25", val("25"), null()),
		bet("2026-07-20", "Betting Secrets", repo.StatusWon, "50", val("40"), val("800")),
	}

	f := report.Filter{Channel: report.AllChannels, Month: "2026-08"}
	first := report.Aggregate(bets, baseline("1000"), f)
	second := report.Aggregate(bets, baseline("1000"), f)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation is not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestWinRate(t *testing.T) {
	tests := []struct {
		name string
		won  int
		lost int
		want float64
	}{
		{"all won", 3, 0, 100.0},
		{"all lost", 0, 4, 0.0},
		{"one third", 1, 2, 33.3},
		{"two thirds", 2, 1, 66.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var bets []repo.Bet
			for i := 0; i < tt.won; i++ {
				bets = append(bets, bet("2026-08-01", "", repo.StatusWon, "10", val("10"), null()))
			}
			for i := 0; i < tt.lost; i++ {
				bets = append(bets, bet("2026-08-01", "", repo.StatusLost, "10", val("-10"), null()))
			}
			got := report.Aggregate(bets, baseline("100"), report.Filter{})
			if got.Summary.WinRate != tt.want {
				t.Fatalf("win rate = %v, want %v", got.Summary.WinRate, tt.want)
			}
		})
	}
}

func TestMonthlyRollover(t *testing.T) {
	bets := []repo.Bet{
		bet("2026-08-10", "Personal", repo.StatusWon, "20", val("20"), null()),
		bet("2026-07-15", "Personal", repo.StatusWon, "25", val("50"), null()),
		bet("2026-07-01", "Personal", repo.StatusLost, "10", val("-10"), null()),
	}

	// Sem checkpoint: baseline de agosto = inicial + lucros anteriores ao mês.
	got := report.Aggregate(bets, baseline("1000"), report.Filter{Month: "2026-08"})
	if !got.StartingCapital.Equal(num("1040")) {
		t.Fatalf("august baseline = %s, want 1040", got.StartingCapital)
	}
	// a curva de agosto só carrega a aposta de agosto
	if len(got.Curve) != 2 || !got.Curve[1].Bankroll.Equal(num("1060")) {
		t.Fatalf("august curve = %+v", got.Curve)
	}
	if got.Summary.Won != 1 || got.Summary.Lost != 0 {
		t.Fatalf("august counts = %d/%d, want 1/0", got.Summary.Won, got.Summary.Lost)
	}

	// Checkpoint manual substitui o baseline por inteiro na visão geral.
	b := baseline("1000")
	b.MonthlyOverride = val("2000")
	got = report.Aggregate(bets, b, report.Filter{Month: "2026-08"})
	if !got.StartingCapital.Equal(num("2000")) {
		t.Fatalf("overridden baseline = %s, want 2000", got.StartingCapital)
	}

	// Com filtro de canal o checkpoint não se aplica: rollover calculado.
	got = report.Aggregate(bets, b, report.Filter{Channel: "Personal", Month: "2026-08"})
	if !got.StartingCapital.Equal(num("1040")) {
		t.Fatalf("channel baseline = %s, want 1040 (override must be ignored)", got.StartingCapital)
	}
}

func TestChannelFilter(t *testing.T) {
	bets := []repo.Bet{
		bet("2026-08-03", "Betting Secrets", repo.StatusWon, "50", val("40"), val("800")),
		bet("2026-08-02", "", repo.StatusLost, "10", val("-10"), null()),
		bet("2026-08-01", "Personal", repo.StatusWon, "25", val("25"), null()),
	}

	// Canal vazio no registro conta como "Personal".
	got := report.Aggregate(bets, baseline("500"), report.Filter{Channel: "Personal"})
	if got.Summary.Won != 1 || got.Summary.Lost != 1 {
		t.Fatalf("personal counts = %d/%d, want 1/1", got.Summary.Won, got.Summary.Lost)
	}
	if !got.Summary.TotalProfit.Equal(num("15")) {
		t.Fatalf("personal profit = %s, want 15", got.Summary.TotalProfit)
	}

	got = report.Aggregate(bets, baseline("300"), report.Filter{Channel: "Betting Secrets"})
	if got.Summary.Won != 1 || got.Summary.Lost != 0 {
		t.Fatalf("channel counts = %d/%d, want 1/0", got.Summary.Won, got.Summary.Lost)
	}
	if !got.Summary.TotalTipsterProfit.Equal(num("800")) {
		t.Fatalf("channel tipster profit = %s, want 800", got.Summary.TotalTipsterProfit)
	}

	// "All" e vazio são equivalentes.
	all := report.Aggregate(bets, baseline("500"), report.Filter{Channel: report.AllChannels})
	empty := report.Aggregate(bets, baseline("500"), report.Filter{})
	if !reflect.DeepEqual(all, empty) {
		t.Fatal(`filter "All" must match the empty filter`)
	}
}

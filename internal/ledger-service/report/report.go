// Package report reconstrói curvas de banca e estatísticas a partir do log
// imutável de apostas. Projeção pura: mesma entrada, mesma saída, sem efeitos
// colaterais — é seguro reexecutar a cada notificação de mudança.
package report

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/radieske/bet-ledger/internal/ledger-service/repo"
)

// AllChannels é o valor de filtro que significa "todos os canais".
const AllChannels = "All"

// StartLabel identifica o ponto sintético inicial da curva.
const StartLabel = "start"

// Filter restringe a agregação por canal e/ou mês ("YYYY-MM").
// Canal vazio ou "All" significa todos os canais; mês vazio, todo o período.
type Filter struct {
	Channel string
	Month   string
}

func (f Filter) allChannels() bool {
	return f.Channel == "" || f.Channel == AllChannels
}

// Baseline é o capital de referência do período.
// Start é a banca inicial do canal (ou global); MonthlyOverride, quando
// presente, substitui o baseline calculado na visão de todos os canais com
// filtro de mês (checkpoint manual de rollover).
type Baseline struct {
	Start           decimal.Decimal
	MonthlyOverride decimal.NullDecimal
}

// Point é um ponto da curva de evolução: um por aposta liquidada, mais o
// ponto inicial sintético no baseline.
type Point struct {
	Date            string          `json:"date"`
	Bankroll        decimal.Decimal `json:"bankroll"`
	TipsterBankroll decimal.Decimal `json:"tipster_bankroll"`
	Profit          decimal.Decimal `json:"profit"`
}

// Summary são as estatísticas do conjunto filtrado.
type Summary struct {
	TotalProfit        decimal.Decimal `json:"total_profit"`
	TotalTipsterProfit decimal.Decimal `json:"total_tipster_profit"`
	Won                int             `json:"won"`
	Lost               int             `json:"lost"`
	Pending            int             `json:"pending"`
	WinRate            float64         `json:"win_rate"` // percentual, 0.0 sem apostas liquidadas
	Turnover           decimal.Decimal `json:"turnover"` // soma do stake das apostas não pendentes
}

// Result é a saída completa da agregação.
type Result struct {
	StartingCapital decimal.Decimal `json:"starting_capital"`
	Curve           []Point         `json:"curve"`
	Summary         Summary         `json:"summary"`
}

// monthKey reduz a data da aposta à chave mensal "YYYY-MM".
func monthKey(b repo.Bet) string { return b.Date.Format("2006-01") }

// Aggregate produz o capital inicial do período, a curva de evolução e as
// estatísticas para o filtro dado.
//
// Rollover automático: com filtro de mês, o baseline vira a banca inicial
// mais a soma dos lucros de todas as apostas anteriores ao mês — a menos que
// exista um MonthlyConfig explícito para a visão de todos os canais, que
// substitui o valor calculado por inteiro.
func Aggregate(bets []repo.Bet, baseline Baseline, f Filter) Result {
	// Recorte por canal (todas as datas), preservando a ordem de chegada.
	var channelBets []repo.Bet
	for _, b := range bets {
		if f.allChannels() || b.ChannelOrDefault() == f.Channel {
			channelBets = append(channelBets, b)
		}
	}

	start := baseline.Start
	if f.Month != "" {
		if f.allChannels() && baseline.MonthlyOverride.Valid {
			start = baseline.MonthlyOverride.Decimal
		} else {
			// Capital carregado dos meses anteriores.
			carried := decimal.Zero
			for _, b := range channelBets {
				if b.Profit.Valid && monthKey(b) < f.Month {
					carried = carried.Add(b.Profit.Decimal)
				}
			}
			start = start.Add(carried)
		}
	}

	// Recorte final pelo mês.
	filtered := channelBets
	if f.Month != "" {
		filtered = nil
		for _, b := range channelBets {
			if monthKey(b) == f.Month {
				filtered = append(filtered, b)
			}
		}
	}

	// Cronológico ascendente; empates mantêm a ordem original do fetch.
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})

	curve := []Point{{
		Date:            StartLabel,
		Bankroll:        start,
		TipsterBankroll: decimal.Zero,
		Profit:          decimal.Zero,
	}}

	bank := start
	tipsterBank := decimal.Zero
	for _, b := range filtered {
		if b.Status == repo.StatusPending {
			continue
		}
		profit := decimal.Zero
		if b.Profit.Valid {
			profit = b.Profit.Decimal
		}
		bank = bank.Add(profit)
		if b.TipsterProfit.Valid {
			tipsterBank = tipsterBank.Add(b.TipsterProfit.Decimal)
		}
		curve = append(curve, Point{
			Date:            b.Date.Format("2006-01-02"),
			Bankroll:        bank,
			TipsterBankroll: tipsterBank,
			Profit:          profit,
		})
	}

	return Result{
		StartingCapital: start,
		Curve:           curve,
		Summary:         summarize(filtered),
	}
}

// summarize calcula totais, contagens e win rate do conjunto filtrado.
func summarize(bets []repo.Bet) Summary {
	s := Summary{
		TotalProfit:        decimal.Zero,
		TotalTipsterProfit: decimal.Zero,
		Turnover:           decimal.Zero,
	}
	for _, b := range bets {
		switch b.Status {
		case repo.StatusWon:
			s.Won++
		case repo.StatusLost:
			s.Lost++
		default:
			s.Pending++
		}
		if b.Profit.Valid {
			s.TotalProfit = s.TotalProfit.Add(b.Profit.Decimal)
		}
		if b.TipsterProfit.Valid {
			s.TotalTipsterProfit = s.TotalTipsterProfit.Add(b.TipsterProfit.Decimal)
		}
		if b.Status != repo.StatusPending {
			s.Turnover = s.Turnover.Add(b.StakeAmount)
		}
	}

	// Win rate em percentual com uma casa; 0.0 (nunca NaN) sem liquidadas.
	if resolved := s.Won + s.Lost; resolved > 0 {
		s.WinRate = math.Round(float64(s.Won)/float64(resolved)*1000) / 10
	}
	return s
}

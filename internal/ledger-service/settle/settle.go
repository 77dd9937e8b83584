// Package settle calcula o resultado financeiro da liquidação de uma aposta
// pendente, tanto para a banca própria quanto para o espelho do tipster.
package settle

import "github.com/shopspring/decimal"

// Outcome é a decisão de liquidação de uma aposta pendente.
type Outcome string

const (
	Won  Outcome = "won"
	Lost Outcome = "lost"
)

// ValidOutcome aceita apenas os dois desfechos terminais.
func ValidOutcome(o Outcome) bool {
	return o == Won || o == Lost
}

// Profit calcula o lucro da banca própria:
//
//	won:  stake*odds - stake
//	lost: -stake
//
// Função pura e determinística de (stakeAmount, odds, outcome).
func Profit(stakeAmount decimal.Decimal, odds float64, o Outcome) decimal.Decimal {
	if o == Won {
		return stakeAmount.Mul(decimal.NewFromFloat(odds)).Sub(stakeAmount)
	}
	return stakeAmount.Neg()
}

// TipsterProfit espelha o cálculo sobre o valor nominal arriscado pelo
// tipster. Quando o tipster não reportou valor, o resultado permanece nulo —
// nenhum saldo de tipster é acumulado em lugar algum, a visão do tipster é
// sempre recomputada a partir do log.
func TipsterProfit(tipsterAmount decimal.NullDecimal, odds float64, o Outcome) decimal.NullDecimal {
	if !tipsterAmount.Valid {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: Profit(tipsterAmount.Decimal, odds, o),
		Valid:   true,
	}
}

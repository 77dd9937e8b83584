// Package stake converte unidades de stake entre escalas e calcula o valor
// monetário arriscado em cada aposta.
package stake

import (
	"math"

	"github.com/shopspring/decimal"
)

// ChannelPremium usa a escala estendida 1–11 e não recebe stake do tipster.
const ChannelPremium = "Sport Apuestas Premium"

const (
	scaleStandard = 10
	scalePremium  = 11
)

// ScaleMax retorna o topo da escala de stake do canal.
func ScaleMax(channel string) int {
	if channel == ChannelPremium {
		return scalePremium
	}
	return scaleStandard
}

// PremiumNorm é a unidade fixa atribuída a apostas do canal premium,
// que não reporta stake próprio.
const PremiumNorm = scalePremium

// Normalize converte o stake reportado pelo tipster (na escala dele) para a
// escala padrão 1–10: round((value/scale)*10), com clamp em [1,10].
// Retorna false quando as entradas não permitem sugestão (valores não positivos).
func Normalize(value, scale float64) (int, bool) {
	if value <= 0 || scale <= 0 {
		return 0, false
	}
	n := int(math.Round((value / scale) * float64(scaleStandard)))
	if n < 1 {
		n = 1
	}
	if n > scaleStandard {
		n = scaleStandard
	}
	return n, true
}

// ValidNorm informa se a unidade está dentro da escala do canal (0 = tracking).
func ValidNorm(norm int, channel string) bool {
	return norm >= 0 && norm <= ScaleMax(channel)
}

// Valuate calcula o valor monetário de uma unidade de stake:
//
//	maxStakeAmount = baseBankroll * unitPercent
//	amount         = (norm / scaleMax) * maxStakeAmount
//
// O resultado é congelado na aposta no momento da criação; mudanças
// posteriores de configuração de banca não alteram apostas históricas.
// norm = 0 (tracking) resulta em valor zero.
func Valuate(norm int, channel string, baseBankroll, unitPercent decimal.Decimal) decimal.Decimal {
	if norm <= 0 {
		return decimal.Zero
	}
	maxStake := baseBankroll.Mul(unitPercent)
	return maxStake.Mul(decimal.NewFromInt(int64(norm))).Div(decimal.NewFromInt(int64(ScaleMax(channel))))
}

package stake_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/radieske/bet-ledger/internal/ledger-service/stake"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		scale  float64
		want   int
		wantOK bool
	}{
		{"full stake", 10, 10, 10, true},
		{"half stake", 5, 10, 5, true},
		{"wider scale", 50, 100, 5, true},
		{"rounds up", 2.6, 10, 3, true},
		{"clamps low", 0.1, 100, 1, true},
		{"clamps high", 150, 100, 10, true},
		{"zero value", 0, 10, 0, false},
		{"zero scale", 5, 0, 0, false},
		{"negative scale", 5, -10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := stake.Normalize(tt.value, tt.scale)
			if ok != tt.wantOK {
				t.Fatalf("Normalize(%v, %v) ok = %v, want %v", tt.value, tt.scale, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Fatalf("Normalize(%v, %v) = %d, want %d", tt.value, tt.scale, got, tt.want)
			}
		})
	}
}

func TestScaleMax(t *testing.T) {
	if got := stake.ScaleMax("Sport Apuestas"); got != 10 {
		t.Fatalf("standard scale = %d, want 10", got)
	}
	if got := stake.ScaleMax(stake.ChannelPremium); got != 11 {
		t.Fatalf("premium scale = %d, want 11", got)
	}
	if got := stake.ScaleMax(""); got != 10 {
		t.Fatalf("empty channel scale = %d, want 10", got)
	}
}

func TestValidNorm(t *testing.T) {
	if !stake.ValidNorm(0, "Sport Apuestas") {
		t.Fatal("norm 0 (tracking) must be valid")
	}
	if !stake.ValidNorm(10, "Sport Apuestas") {
		t.Fatal("norm 10 must be valid on the standard scale")
	}
	if stake.ValidNorm(11, "Sport Apuestas") {
		t.Fatal("norm 11 must be invalid on the standard scale")
	}
	if !stake.ValidNorm(11, stake.ChannelPremium) {
		t.Fatal("norm 11 must be valid on the premium scale")
	}
	if stake.ValidNorm(-1, "Sport Apuestas") {
		t.Fatal("negative norm must be invalid")
	}
}

func TestValuate(t *testing.T) {
	bankroll := decimal.NewFromInt(1000)
	pct := decimal.RequireFromString("0.05")

	// banca $1000, 5% por unidade cheia, stake 5/10 => $25
	got := stake.Valuate(5, "Sport Apuestas", bankroll, pct)
	if !got.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("Valuate(5, standard) = %s, want 25", got)
	}

	// unidade cheia na escala padrão => $50
	got = stake.Valuate(10, "Sport Apuestas", bankroll, pct)
	if !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("Valuate(10, standard) = %s, want 50", got)
	}

	// unidade cheia premium (11/11) => mesmo teto de $50
	got = stake.Valuate(11, stake.ChannelPremium, bankroll, pct)
	if !got.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("Valuate(11, premium) = %s, want 50", got)
	}

	// tracking: nada em risco
	got = stake.Valuate(0, "Sport Apuestas", bankroll, pct)
	if !got.Equal(decimal.Zero) {
		t.Fatalf("Valuate(0) = %s, want 0", got)
	}
}

// A fórmula (norm/scaleMax) * bankroll * unitPercent vale pra toda a escala.
func TestValuateFormula(t *testing.T) {
	bankroll := decimal.RequireFromString("1234.56")
	pct := decimal.RequireFromString("0.025")

	for _, channel := range []string{"Sport Apuestas", stake.ChannelPremium} {
		scaleMax := stake.ScaleMax(channel)
		for norm := 0; norm <= scaleMax; norm++ {
			want := bankroll.Mul(pct).
				Mul(decimal.NewFromInt(int64(norm))).
				Div(decimal.NewFromInt(int64(scaleMax)))
			if norm == 0 {
				want = decimal.Zero
			}
			got := stake.Valuate(norm, channel, bankroll, pct)
			if !got.Equal(want) {
				t.Fatalf("Valuate(%d, %q) = %s, want %s", norm, channel, got, want)
			}
		}
	}
}

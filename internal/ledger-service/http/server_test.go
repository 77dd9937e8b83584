package httpapi

import (
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// Os caminhos de validação rejeitam a requisição antes de qualquer acesso a
// storage, então dá pra exercitá-los com um Server sem dependências.
func newBareServer() *Server {
	return &Server{log: zap.NewNop()}
}

func TestPlaceBetValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"unknown bet type", `{"bet_type":"treble","category":"soccer","selection":"x","odds":2.0}`},
		{"missing selection", `{"category":"soccer","odds":2.0}`},
		{"missing category", `{"selection":"x","odds":2.0}`},
		{"double without leg2", `{"bet_type":"double","category":"soccer","selection":"x","odds":2.0}`},
		{"odds below minimum", `{"category":"soccer","selection":"x","odds":1.0}`},
		{"stake norm above scale", `{"category":"soccer","selection":"x","odds":2.0,"stake_norm":11}`},
		{"negative stake norm", `{"category":"soccer","selection":"x","odds":2.0,"stake_norm":-1}`},
		{"bad bet date", `{"category":"soccer","selection":"x","odds":2.0,"stake_norm":5,"bet_date":"12/08/2026"}`},
	}

	s := newBareServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/v1/bets", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.placeBet(rec, req)
			if rec.Code != 400 {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestResolveBetValidation(t *testing.T) {
	s := newBareServer()
	for _, body := range []string{`{`, `{"outcome":"void"}`, `{"outcome":""}`} {
		req := httptest.NewRequest("POST", "/v1/bets/abc/resolve", strings.NewReader(body))
		rec := httptest.NewRecorder()
		s.resolveBet(rec, req)
		if rec.Code != 400 {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestValidMonth(t *testing.T) {
	for _, ok := range []string{"2026-08", "1999-01", "2026-12"} {
		if !validMonth(ok) {
			t.Fatalf("validMonth(%q) = false, want true", ok)
		}
	}
	for _, bad := range []string{"", "2026", "2026-13", "2026-8", "08-2026", "2026-08-01"} {
		if validMonth(bad) {
			t.Fatalf("validMonth(%q) = true, want false", bad)
		}
	}
}

func TestChannelLabel(t *testing.T) {
	if channelLabel("") != "All" || channelLabel("All") != "All" {
		t.Fatal(`empty filter must map to the "All" label`)
	}
	if channelLabel("Betting Secrets") != "Betting Secrets" {
		t.Fatal("explicit channel must pass through")
	}
}

package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	lcache "github.com/radieske/bet-ledger/internal/ledger-service/cache"
	"github.com/radieske/bet-ledger/internal/ledger-service/dto"
	"github.com/radieske/bet-ledger/internal/ledger-service/report"
	"github.com/radieske/bet-ledger/internal/ledger-service/repo"
	"github.com/radieske/bet-ledger/internal/ledger-service/settle"
	"github.com/radieske/bet-ledger/internal/ledger-service/stake"
	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

// Publisher publica os eventos de ciclo de vida das apostas
type Publisher interface {
	PublishBetPlaced(ctx context.Context, e events.BetPlaced) error
	PublishBetResolved(ctx context.Context, e events.BetResolved) error
}

// Server expõe a API REST do ledger: log de apostas, liquidação,
// configuração de banca e dashboard agregado
type Server struct {
	log  *zap.Logger
	repo *repo.Postgres
	dash *lcache.Dashboard
	publ Publisher
}

// NewServer instancia o servidor HTTP do ledger
func NewServer(log *zap.Logger, r *repo.Postgres, d *lcache.Dashboard, p Publisher) *Server {
	return &Server{log: log, repo: r, dash: d, publ: p}
}

// Router retorna o roteador HTTP com os endpoints da API
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/v1/bets", s.listBets)
	r.Post("/v1/bets", s.placeBet)
	r.Get("/v1/bets/{id}", s.getBet)
	r.Post("/v1/bets/{id}/resolve", s.resolveBet)
	r.Delete("/v1/bets/{id}", s.deleteBet)

	r.Get("/v1/profile", s.getProfile)
	r.Put("/v1/profile", s.saveProfile)
	r.Get("/v1/channels", s.listChannels)
	r.Put("/v1/channels/{name}", s.saveChannel)
	r.Get("/v1/months/{month}", s.getMonthlyConfig)
	r.Put("/v1/months/{month}", s.saveMonthlyConfig)

	r.Get("/v1/dashboard", s.dashboard)

	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// placeBet registra uma nova aposta pendente.
// O valor monetário do stake é calculado aqui, uma única vez, e congelado.
func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	if req.BetType == "" {
		req.BetType = "single"
	}
	if req.BetType != "single" && req.BetType != "double" {
		writeError(w, http.StatusBadRequest, "bet_type must be single or double")
		return
	}
	if req.Selection == "" || req.Category == "" {
		writeError(w, http.StatusBadRequest, "selection and category are required")
		return
	}
	if req.BetType == "double" && req.Leg2Selection == "" {
		writeError(w, http.StatusBadRequest, "leg2_selection is required for double bets")
		return
	}
	if req.Odds < 1.01 {
		writeError(w, http.StatusBadRequest, "odds must be >= 1.01")
		return
	}
	if !stake.ValidNorm(req.StakeNorm, req.Channel) {
		writeError(w, http.StatusBadRequest, "stake_norm out of range for channel")
		return
	}

	betDate := time.Now().UTC()
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bet_date must be YYYY-MM-DD")
			return
		}
		betDate = d
	}

	// Nenhuma aposta pode ser criada sem o perfil de banca configurado
	profile, err := s.repo.GetProfile(r.Context())
	if err != nil {
		if errors.Is(err, repo.ErrNoProfile) {
			writeError(w, http.StatusBadRequest, repo.ErrNoProfile.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	norm := req.StakeNorm
	switch {
	case req.Tracking:
		// Tracking: sem capital em risco, independente do slider
		norm = 0
	case norm == 0 && req.Channel == stake.ChannelPremium:
		// Premium não reporta stake do tipster; unidade máxima fixa
		norm = stake.PremiumNorm
	case norm == 0:
		suggested, ok := stake.Normalize(req.TipsterStake, req.TipsterScale)
		if !ok {
			writeError(w, http.StatusBadRequest, "stake_norm or tipster stake/scale required")
			return
		}
		norm = suggested
	}

	// Banca base: a do canal quando configurada; senão a do perfil global
	base := profile.StartingBankroll
	if profile.UseCompounding {
		base = profile.CurrentBankroll
	}
	if cb, err := s.repo.GetChannel(r.Context(), req.Channel); err == nil {
		base = cb.StartingBankroll
	} else if !errors.Is(err, repo.ErrNotFound) {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	amount := stake.Valuate(norm, req.Channel, base, profile.StakeUnitPercent)

	selection := req.Selection
	description := req.Description
	if req.BetType == "double" {
		selection = req.Selection + " + " + req.Leg2Selection
		description = req.Description + " | " + req.Leg2Description
	}

	tipsterAmount := req.TipsterAmount
	if tipsterAmount.Valid && !tipsterAmount.Decimal.IsPositive() {
		tipsterAmount.Valid = false
	}

	betID, err := s.repo.CreatePending(r.Context(), &repo.Bet{
		Date:          betDate,
		Type:          req.BetType,
		Category:      req.Category,
		Selection:     selection,
		Description:   description,
		Odds:          req.Odds,
		StakeNorm:     norm,
		StakeAmount:   amount,
		Channel:       req.Channel,
		TipsterAmount: tipsterAmount,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	_ = s.publ.PublishBetPlaced(r.Context(), events.BetPlaced{
		BetID:       betID,
		Channel:     req.Channel,
		BetType:     req.BetType,
		Category:    req.Category,
		Selection:   selection,
		Odds:        req.Odds,
		StakeNorm:   norm,
		StakeAmount: amount,
	})

	writeJSON(w, http.StatusCreated, dto.PlaceBetResponse{
		BetID:       betID,
		Status:      repo.StatusPending,
		StakeNorm:   norm,
		StakeAmount: amount,
	})
}

// resolveBet liquida uma aposta pendente como won/lost e propaga o lucro
// para a banca global e a do canal
func (s *Server) resolveBet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ResolveBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	outcome := settle.Outcome(req.Outcome)
	if !settle.ValidOutcome(outcome) {
		writeError(w, http.StatusBadRequest, "outcome must be won or lost")
		return
	}

	b, err := s.repo.GetBet(r.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	profit := settle.Profit(b.StakeAmount, b.Odds, outcome)
	tipsterProfit := settle.TipsterProfit(b.TipsterAmount, b.Odds, outcome)

	err = s.repo.ResolveBet(r.Context(), id, b.ChannelOrDefault(), string(outcome), profit, tipsterProfit)
	if err != nil {
		if errors.Is(err, repo.ErrAlreadyResolved) {
			writeError(w, http.StatusConflict, repo.ErrAlreadyResolved.Error())
			return
		}
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	_ = s.publ.PublishBetResolved(r.Context(), events.BetResolved{
		BetID:         id,
		Channel:       b.ChannelOrDefault(),
		Status:        string(outcome),
		Profit:        profit,
		TipsterProfit: tipsterProfit,
	})

	resp := dto.ResolveBetResponse{
		BetID:         id,
		Status:        string(outcome),
		Profit:        profit,
		TipsterProfit: tipsterProfit,
	}
	if profile, perr := s.repo.GetProfile(r.Context()); perr == nil {
		resp.CurrentBankroll = profile.CurrentBankroll
	}
	writeJSON(w, http.StatusOK, resp)
}

// deleteBet remove uma aposta — permitido apenas enquanto pendente
func (s *Server) deleteBet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	err := s.repo.DeletePending(r.Context(), id)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, repo.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, repo.ErrNotPending):
		writeError(w, http.StatusConflict, "deleting a resolved bet is not allowed")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Server) getBet(w http.ResponseWriter, r *http.Request) {
	b, err := s.repo.GetBet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toBetDTO(b))
}

func (s *Server) listBets(w http.ResponseWriter, r *http.Request) {
	bets, err := s.repo.ListBets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]dto.Bet, 0, len(bets))
	for i := range bets {
		out = append(out, toBetDTO(&bets[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.repo.GetProfile(r.Context())
	if err != nil {
		if errors.Is(err, repo.ErrNoProfile) {
			writeError(w, http.StatusNotFound, repo.ErrNoProfile.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.ProfileResponse{
		ID:               profile.ID,
		StartingBankroll: profile.StartingBankroll,
		CurrentBankroll:  profile.CurrentBankroll,
		StakeUnitPercent: profile.StakeUnitPercent,
		UseCompounding:   profile.UseCompounding,
	})
}

func (s *Server) saveProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.StartingBankroll.IsNegative() || req.CurrentBankroll.IsNegative() || !req.StakeUnitPercent.IsPositive() {
		writeError(w, http.StatusBadRequest, "invalid bankroll configuration")
		return
	}

	id, err := s.repo.SaveProfile(r.Context(), &repo.BankrollProfile{
		StartingBankroll: req.StartingBankroll,
		CurrentBankroll:  req.CurrentBankroll,
		StakeUnitPercent: req.StakeUnitPercent,
		UseCompounding:   req.UseCompounding,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.ProfileResponse{
		ID:               id,
		StartingBankroll: req.StartingBankroll,
		CurrentBankroll:  req.CurrentBankroll,
		StakeUnitPercent: req.StakeUnitPercent,
		UseCompounding:   req.UseCompounding,
	})
}

func (s *Server) listChannels(w http.ResponseWriter, r *http.Request) {
	channels, err := s.repo.ListChannels(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]dto.ChannelResponse, 0, len(channels))
	for _, cb := range channels {
		out = append(out, dto.ChannelResponse{
			ChannelName:      cb.ChannelName,
			StartingBankroll: cb.StartingBankroll,
			CurrentBankroll:  cb.CurrentBankroll,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) saveChannel(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "channel name required")
		return
	}
	var req dto.SaveChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.StartingBankroll.IsNegative() {
		writeError(w, http.StatusBadRequest, "invalid bankroll")
		return
	}
	if err := s.repo.UpsertChannel(r.Context(), name, req.StartingBankroll, req.CurrentBankroll); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.ChannelResponse{
		ChannelName:      name,
		StartingBankroll: req.StartingBankroll,
		CurrentBankroll:  req.CurrentBankroll,
	})
}

func (s *Server) getMonthlyConfig(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	if !validMonth(month) {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	mc, err := s.repo.GetMonthlyConfig(r.Context(), month)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.MonthlyConfigResponse{Month: mc.Month, StartingBankroll: mc.StartingBankroll})
}

func (s *Server) saveMonthlyConfig(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")
	if !validMonth(month) {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	var req dto.SaveMonthlyConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}
	if req.StartingBankroll.IsNegative() {
		writeError(w, http.StatusBadRequest, "invalid bankroll")
		return
	}
	if err := s.repo.UpsertMonthlyConfig(r.Context(), month, req.StartingBankroll); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, dto.MonthlyConfigResponse{Month: month, StartingBankroll: req.StartingBankroll})
}

// dashboard devolve a agregação (curva + estatísticas) para o filtro pedido,
// preferencialmente do cache. A agregação é idempotente, então reprocessar a
// cada notificação de mudança é seguro.
func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	month := r.URL.Query().Get("month")
	if month != "" && !validMonth(month) {
		writeError(w, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}

	var cached dto.DashboardResponse
	if ok, _ := s.dash.Get(r.Context(), channel, month, &cached); ok {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	profile, err := s.repo.GetProfile(r.Context())
	if err != nil {
		if errors.Is(err, repo.ErrNoProfile) {
			writeError(w, http.StatusNotFound, repo.ErrNoProfile.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	bets, err := s.repo.ListBets(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	filter := report.Filter{Channel: channel, Month: month}
	baseline := report.Baseline{Start: profile.StartingBankroll}

	if !filterAllChannels(channel) {
		if cb, cerr := s.repo.GetChannel(r.Context(), channel); cerr == nil {
			baseline.Start = cb.StartingBankroll
		} else if !errors.Is(cerr, repo.ErrNotFound) {
			writeError(w, http.StatusInternalServerError, cerr.Error())
			return
		}
	} else if month != "" {
		// Checkpoint manual de rollover só vale na visão de todos os canais
		if mc, merr := s.repo.GetMonthlyConfig(r.Context(), month); merr == nil {
			baseline.MonthlyOverride.Decimal = mc.StartingBankroll
			baseline.MonthlyOverride.Valid = true
		} else if !errors.Is(merr, repo.ErrNotFound) {
			writeError(w, http.StatusInternalServerError, merr.Error())
			return
		}
	}

	resp := dto.DashboardResponse{
		Channel: channelLabel(channel),
		Month:   month,
		Result:  report.Aggregate(bets, baseline, filter),
	}

	_ = s.dash.Set(r.Context(), channel, month, resp)
	writeJSON(w, http.StatusOK, resp)
}

func filterAllChannels(channel string) bool {
	return channel == "" || channel == report.AllChannels
}

func channelLabel(channel string) string {
	if filterAllChannels(channel) {
		return report.AllChannels
	}
	return channel
}

// validMonth aceita apenas "YYYY-MM"
func validMonth(month string) bool {
	_, err := time.Parse("2006-01", month)
	return err == nil
}

func toBetDTO(b *repo.Bet) dto.Bet {
	return dto.Bet{
		ID:            b.ID,
		Date:          b.Date.Format("2006-01-02"),
		BetType:       b.Type,
		Category:      b.Category,
		Selection:     b.Selection,
		Description:   b.Description,
		Odds:          b.Odds,
		StakeNorm:     b.StakeNorm,
		StakeAmount:   b.StakeAmount,
		Channel:       b.ChannelOrDefault(),
		TipsterAmount: b.TipsterAmount,
		Status:        b.Status,
		Profit:        b.Profit,
		TipsterProfit: b.TipsterProfit,
	}
}

package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Postgres implementa a persistência do ledger (log de apostas e saldos)
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório do ledger
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

var (
	ErrNotFound        = errors.New("not found")
	ErrNoProfile       = errors.New("bankroll profile not configured")
	ErrAlreadyResolved = errors.New("bet already resolved")
	ErrNotPending      = errors.New("bet is not pending")
)

const betColumns = `id, bet_date, bet_type, category, selection, description, odds,
	stake_norm, stake_amount, channel, tipster_amount, status, profit, tipster_profit,
	created_at, updated_at`

// CreatePending insere uma nova aposta com status pending.
// StakeAmount já vem calculado e é congelado aqui.
func (p *Postgres) CreatePending(ctx context.Context, b *Bet) (string, error) {
	id := uuid.NewString()
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO manual_bets
		  (id, bet_date, bet_type, category, selection, description, odds,
		   stake_norm, stake_amount, channel, tipster_amount, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,'pending')`,
		id, b.Date, b.Type, b.Category, b.Selection, b.Description, b.Odds,
		b.StakeNorm, b.StakeAmount, b.Channel, b.TipsterAmount,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetBet retorna uma aposta pelo id
func (p *Postgres) GetBet(ctx context.Context, id string) (*Bet, error) {
	row := p.db.QueryRowContext(ctx, `SELECT `+betColumns+` FROM manual_bets WHERE id=$1`, id)
	b, err := scanBet(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBets retorna o log completo, mais recentes primeiro (ordem de fetch
// original; a agregação reordena cronologicamente de forma estável)
func (p *Postgres) ListBets(ctx context.Context) ([]Bet, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+betColumns+`
		FROM manual_bets
		ORDER BY bet_date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// DeletePending remove uma aposta, permitido apenas enquanto pendente.
// Apostas liquidadas já mutaram os saldos de forma incremental e não podem
// ser desfeitas com segurança sem recomputar tudo — a remoção é rejeitada.
func (p *Postgres) DeletePending(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx,
		`DELETE FROM manual_bets WHERE id=$1 AND status='pending'`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	// Nada removido: distingue inexistente de não-pendente
	var status string
	err = p.db.QueryRowContext(ctx, `SELECT status FROM manual_bets WHERE id=$1`, id).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrNotPending
}

// ResolveBet aplica a transição única pending -> won|lost e propaga o lucro
// para os saldos correntes, tudo numa transação só:
//  1. escreve status/profit/tipster_profit na aposta (guardado por status='pending')
//  2. soma profit na banca global (bankroll_profiles.current_bankroll)
//  3. soma profit na banca do canal, criando o bucket implícito se preciso
//
// O lucro do tipster nunca toca saldo persistido — a visão do tipster é
// recomputada do log a cada leitura.
func (p *Postgres) ResolveBet(ctx context.Context, betID, channel, status string, profit decimal.Decimal, tipsterProfit decimal.NullDecimal) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE manual_bets
		SET status=$1, profit=$2, tipster_profit=$3, updated_at=NOW()
		WHERE id=$4 AND status='pending'`,
		status, profit, tipsterProfit, betID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Transição já aconteceu (ou aposta não existe)
		var cur string
		if qerr := tx.QueryRowContext(ctx, `SELECT status FROM manual_bets WHERE id=$1`, betID).Scan(&cur); qerr == sql.ErrNoRows {
			return ErrNotFound
		} else if qerr != nil {
			return qerr
		}
		return ErrAlreadyResolved
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE bankroll_profiles SET current_bankroll = current_bankroll + $1`, profit); err != nil {
		return err
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO channel_bankrolls (id, channel_name, starting_bankroll, current_bankroll)
		VALUES ($1, $2, 0, $3)
		ON CONFLICT (channel_name) DO UPDATE
		SET current_bankroll = channel_bankrolls.current_bankroll + EXCLUDED.current_bankroll`,
		uuid.NewString(), channel, profit); err != nil {
		return err
	}

	return tx.Commit()
}

// scanner cobre sql.Row e sql.Rows
type scanner interface{ Scan(dest ...any) error }

func scanBet(s scanner) (*Bet, error) {
	var b Bet
	var description sql.NullString
	var channel sql.NullString
	err := s.Scan(
		&b.ID, &b.Date, &b.Type, &b.Category, &b.Selection, &description, &b.Odds,
		&b.StakeNorm, &b.StakeAmount, &channel, &b.TipsterAmount, &b.Status,
		&b.Profit, &b.TipsterProfit, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Description = description.String
	b.Channel = channel.String
	return &b, nil
}

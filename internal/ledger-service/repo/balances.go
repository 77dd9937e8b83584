package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GetProfile retorna o perfil global de banca (linha única).
// Sem perfil configurado, nenhuma aposta pode ser criada.
func (p *Postgres) GetProfile(ctx context.Context) (*BankrollProfile, error) {
	var bp BankrollProfile
	err := p.db.QueryRowContext(ctx, `
		SELECT id, starting_bankroll, current_bankroll, stake10_percent, use_compounding
		FROM bankroll_profiles
		LIMIT 1`).Scan(&bp.ID, &bp.StartingBankroll, &bp.CurrentBankroll, &bp.StakeUnitPercent, &bp.UseCompounding)
	if err == sql.ErrNoRows {
		return nil, ErrNoProfile
	}
	if err != nil {
		return nil, err
	}
	return &bp, nil
}

// SaveProfile grava a configuração global de banca. Cria a linha única no
// onboarding e sobrescreve os campos nas edições (last-write-wins).
func (p *Postgres) SaveProfile(ctx context.Context, bp *BankrollProfile) (string, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM bankroll_profiles LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		id = uuid.NewString()
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO bankroll_profiles
			  (id, starting_bankroll, current_bankroll, stake10_percent, use_compounding)
			VALUES ($1,$2,$3,$4,$5)`,
			id, bp.StartingBankroll, bp.CurrentBankroll, bp.StakeUnitPercent, bp.UseCompounding); err != nil {
			return "", err
		}
	} else if err != nil {
		return "", err
	} else {
		if _, err = tx.ExecContext(ctx, `
			UPDATE bankroll_profiles
			SET starting_bankroll=$1, current_bankroll=$2, stake10_percent=$3, use_compounding=$4
			WHERE id=$5`,
			bp.StartingBankroll, bp.CurrentBankroll, bp.StakeUnitPercent, bp.UseCompounding, id); err != nil {
			return "", err
		}
	}

	if err = tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// GetChannel retorna a banca de um canal pelo nome
func (p *Postgres) GetChannel(ctx context.Context, name string) (*ChannelBankroll, error) {
	var cb ChannelBankroll
	err := p.db.QueryRowContext(ctx, `
		SELECT id, channel_name, starting_bankroll, current_bankroll
		FROM channel_bankrolls
		WHERE channel_name=$1`, name).
		Scan(&cb.ID, &cb.ChannelName, &cb.StartingBankroll, &cb.CurrentBankroll)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cb, nil
}

// ListChannels retorna todas as bancas de canal
func (p *Postgres) ListChannels(ctx context.Context) ([]ChannelBankroll, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, channel_name, starting_bankroll, current_bankroll
		FROM channel_bankrolls
		ORDER BY channel_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ChannelBankroll
	for rows.Next() {
		var cb ChannelBankroll
		if err := rows.Scan(&cb.ID, &cb.ChannelName, &cb.StartingBankroll, &cb.CurrentBankroll); err != nil {
			return nil, err
		}
		out = append(out, cb)
	}
	return out, rows.Err()
}

// UpsertChannel cria ou sobrescreve a banca de um canal (last-write-wins)
func (p *Postgres) UpsertChannel(ctx context.Context, name string, starting, current decimal.Decimal) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO channel_bankrolls (id, channel_name, starting_bankroll, current_bankroll)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (channel_name) DO UPDATE
		SET starting_bankroll = EXCLUDED.starting_bankroll,
		    current_bankroll  = EXCLUDED.current_bankroll`,
		uuid.NewString(), name, starting, current)
	return err
}

// GetMonthlyConfig retorna o checkpoint de rollover de um mês ("YYYY-MM")
func (p *Postgres) GetMonthlyConfig(ctx context.Context, month string) (*MonthlyConfig, error) {
	var mc MonthlyConfig
	err := p.db.QueryRowContext(ctx, `
		SELECT id, month, starting_bankroll
		FROM monthly_configs
		WHERE month=$1`, month).Scan(&mc.ID, &mc.Month, &mc.StartingBankroll)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mc, nil
}

// UpsertMonthlyConfig cria ou sobrescreve o checkpoint de um mês
func (p *Postgres) UpsertMonthlyConfig(ctx context.Context, month string, starting decimal.Decimal) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO monthly_configs (id, month, starting_bankroll)
		VALUES ($1,$2,$3)
		ON CONFLICT (month) DO UPDATE
		SET starting_bankroll = EXCLUDED.starting_bankroll`,
		uuid.NewString(), month, starting)
	return err
}

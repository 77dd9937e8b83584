// Package cache guarda no Redis o resultado agregado do dashboard por filtro
// (canal + mês). O worker de notificação invalida as chaves afetadas a cada
// aposta liquidada.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dashboard:"

type Dashboard struct {
	R   *redis.Client
	TTL time.Duration
}

func New(r *redis.Client, ttl time.Duration) *Dashboard {
	return &Dashboard{R: r, TTL: ttl}
}

// key gera a chave para um filtro; vazio vira "all"
func key(channel, month string) string {
	if channel == "" {
		channel = "all"
	}
	if month == "" {
		month = "all"
	}
	return keyPrefix + channel + ":" + month
}

func (c *Dashboard) Get(ctx context.Context, channel, month string, dst any) (bool, error) {
	b, err := c.R.Get(ctx, key(channel, month)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *Dashboard) Set(ctx context.Context, channel, month string, v any) error {
	b, _ := json.Marshal(v)
	return c.R.Set(ctx, key(channel, month), b, c.TTL).Err()
}

// Invalidate remove as entradas afetadas por uma mudança no canal dado:
// todos os meses do próprio canal e da visão "all"
func (c *Dashboard) Invalidate(ctx context.Context, channel string) error {
	patterns := []string{keyPrefix + "all:*"}
	if channel != "" {
		patterns = append(patterns, keyPrefix+channel+":*")
	}
	for _, pattern := range patterns {
		iter := c.R.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			if err := c.R.Del(ctx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	return nil
}

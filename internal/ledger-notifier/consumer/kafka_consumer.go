package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/bet-ledger/internal/ledger-notifier/pubsub"
	lcache "github.com/radieske/bet-ledger/internal/ledger-service/cache"
	"github.com/radieske/bet-ledger/pkg/contracts/events"
)

// Processor consome eventos bet_resolved do Kafka, invalida o cache do
// dashboard e publica a notificação de mudança no Redis Pub/Sub para o WS.
// A leitura do dashboard apenas reexecuta a agregação (idempotente), então a
// notificação não carrega estado — só aponta qual canal mudou.
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Processor struct {
	Log         *zap.Logger
	Reader      *kafka.Reader
	Cache       *lcache.Dashboard
	Broadcaster *pubsub.RedisBroadcaster
	DLQ         *kafka.Writer // opcional: mensagens indecodificáveis

	OnConsumed    func()       // métricas (counter++)
	OnInvalidated func()       // métricas
	OnBroadcast   func()       // métricas
	OnError       func(string) // métricas por fase
}

// Run inicia o loop principal de consumo e processamento das mensagens Kafka
func (p *Processor) Run(ctx context.Context) error {
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed() // callback de métrica: mensagem consumida
		}

		var ev events.BetResolved
		if err := json.Unmarshal(m.Value, &ev); err != nil {
			p.Log.Warn("invalid message", zap.Error(err))
			if p.OnError != nil {
				p.OnError("decode")
			}
			// Mensagem venenosa vai pra DLQ em vez de travar o grupo
			if p.DLQ != nil {
				_ = p.DLQ.WriteMessages(ctx, kafka.Message{Key: m.Key, Value: m.Value})
			}
			continue
		}

		// Derruba as entradas de dashboard afetadas pelo canal da aposta
		if err := p.Cache.Invalidate(ctx, ev.Channel); err != nil {
			p.Log.Warn("cache invalidate failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("cache")
			}
			// não bloqueia o broadcast se falhar a invalidação
		} else if p.OnInvalidated != nil {
			p.OnInvalidated() // callback de métrica: cache invalidado
		}

		// Notifica os clientes WS via Redis Pub/Sub
		msg := pubsub.WSUpdate{Channel: ev.Channel, Payload: ev}
		b, _ := json.Marshal(msg)

		pctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		err = p.Broadcaster.Publish(pctx, pubsub.ChannelLedgerBroadcast, b)
		cancel()
		if err != nil {
			p.Log.Warn("ws broadcast publish failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("broadcast")
			}
			continue
		}
		if p.OnBroadcast != nil {
			p.OnBroadcast() // callback de métrica: broadcast publicado
		}
	}
}

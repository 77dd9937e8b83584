package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/radieske/bet-ledger/internal/ledger-notifier/consumer"
	"github.com/radieske/bet-ledger/internal/ledger-notifier/pubsub"
	lcache "github.com/radieske/bet-ledger/internal/ledger-service/cache"
	sharedcache "github.com/radieske/bet-ledger/internal/shared/cache"
	"github.com/radieske/bet-ledger/internal/shared/config"
	"github.com/radieske/bet-ledger/internal/shared/kafka"
	"github.com/radieske/bet-ledger/internal/shared/logger"
	"github.com/radieske/bet-ledger/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Redis: invalidação do cache do dashboard + canal de broadcast pro WS
	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	dash := lcache.New(redisClient, cfg.DashboardCacheTTL)
	broadcaster := pubsub.NewRedisBroadcaster(redisClient)

	// Kafka consumer: eventos de liquidação de apostas
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicBetResolved, "ledger-notifier")
	defer reader.Close()

	// DLQ para mensagens indecodificáveis
	var dlqWriter *kafka.Writer
	if cfg.TopicBetResolvedDLQ != "" {
		dlqWriter = kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetResolvedDLQ)
		defer dlqWriter.Close()
	}

	// Métricas Prometheus para monitoramento do processamento
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "ledger_notif_messages_consumed_total", Help: "mensagens consumidas"})
	invalidated := prometheus.NewCounter(prometheus.CounterOpts{Name: "ledger_notif_cache_invalidations_total", Help: "invalidações de cache"})
	broadcasts := prometheus.NewCounter(prometheus.CounterOpts{Name: "ledger_notif_broadcasts_total", Help: "broadcasts publicados"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ledger_notif_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, invalidated, broadcasts, errorsBy)

	proc := &consumer.Processor{
		Log:         log,
		Reader:      reader,
		Cache:       dash,
		Broadcaster: broadcaster,
		DLQ:         dlqWriter,

		OnConsumed:    func() { consumed.Inc() },
		OnInvalidated: func() { invalidated.Inc() },
		OnBroadcast:   func() { broadcasts.Inc() },
		OnError:       func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	// Servidor de métricas e health check em porta separada
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	})

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("ledger-notifier started",
		zap.String("consume", cfg.TopicBetResolved),
		zap.String("broadcast", cfg.RedisPubSubChannel),
	)
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("notifier stopped with error", zap.Error(err))
	}
	log.Info("ledger-notifier stopped")
}

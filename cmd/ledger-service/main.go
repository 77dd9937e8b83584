package main

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	lcache "github.com/radieske/bet-ledger/internal/ledger-service/cache"
	lhttp "github.com/radieske/bet-ledger/internal/ledger-service/http"
	kpub "github.com/radieske/bet-ledger/internal/ledger-service/producer"
	"github.com/radieske/bet-ledger/internal/ledger-service/repo"
	"github.com/radieske/bet-ledger/internal/ledger-service/ws"
	"github.com/radieske/bet-ledger/internal/shared/cache"
	"github.com/radieske/bet-ledger/internal/shared/config"
	"github.com/radieske/bet-ledger/internal/shared/db"
	"github.com/radieske/bet-ledger/internal/shared/kafka"
	"github.com/radieske/bet-ledger/internal/shared/logger"
	"github.com/radieske/bet-ledger/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New("ledger-service", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("starting service", zap.String("service", "ledger-service"), zap.String("env", cfg.Env))

	// Postgres: log de apostas e saldos
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	// Redis: cache do dashboard + pub/sub de notificações
	redisClient, err := cache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Kafka writers (bet_placed / bet_resolved)
	placedWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetPlaced)
	defer placedWriter.Close()
	resolvedWriter := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetResolved)
	defer resolvedWriter.Close()

	// deps
	repository := repo.NewPostgres(pg)
	dash := lcache.New(redisClient, cfg.DashboardCacheTTL)
	publ := kpub.NewKafkaPublisher(placedWriter, resolvedWriter)

	// Hub WebSocket: clientes do dashboard recebem notificações de mudança
	// repassadas do Redis Pub/Sub (publicadas pelo notifier worker)
	hub := ws.NewHub(func(r *http.Request) bool { return true })
	ws.StartRedisSubscriber(context.Background(), redisClient, hub)

	// HTTP público: API REST + WS
	api := lhttp.NewServer(log, repository, dash, publ)
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.HandleWS)
	mux.Handle("/", api.Router())

	apiSrv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler: mux,
	}

	// metrics/health em porta separada
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	log.Info("ledger-service listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}

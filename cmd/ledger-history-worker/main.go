package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/radieske/betting-protocol-poc/internal/history-worker/consumer"
	"github.com/radieske/betting-protocol-poc/internal/history-worker/pubsub"
	"github.com/radieske/betting-protocol-poc/internal/history-worker/repository"
	sharedcache "github.com/radieske/betting-protocol-poc/internal/shared/cache"
	"github.com/radieske/betting-protocol-poc/internal/shared/config"
	"github.com/radieske/betting-protocol-poc/internal/shared/db"
	sharedkafka "github.com/radieske/betting-protocol-poc/internal/shared/kafka"
	"github.com/radieske/betting-protocol-poc/internal/shared/logger"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Inicializa dependências: Postgres e Redis
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Repositório de histórico (append-only) e broadcaster Pub/Sub
	repo := repository.NewPostgresRepo(pg)
	broadcaster := pubsub.NewRedisBroadcaster(redisClient)

	// Consumer Kafka (consumer group ledger-history) + writer da DLQ
	reader := sharedkafka.NewReader(cfg.KafkaBrokers, cfg.TopicLedgerEvents, "ledger-history")
	defer reader.Close()

	dlq := sharedkafka.NewWriter(cfg.KafkaBrokers, cfg.TopicLedgerEventsDLQ)
	defer dlq.Close()

	// Métricas Prometheus para monitoramento do processamento
	consumed := prometheus.NewCounter(prometheus.CounterOpts{Name: "ledger_hist_messages_consumed_total", Help: "mensagens consumidas"})
	persisted := prometheus.NewCounter(prometheus.CounterOpts{Name: "ledger_hist_db_writes_total", Help: "eventos gravados no histórico"})
	broadcast := prometheus.NewCounter(prometheus.CounterOpts{Name: "ledger_hist_broadcasts_total", Help: "eventos rebroadcastados"})
	errorsBy := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "ledger_hist_errors_total", Help: "erros por estágio"}, []string{"stage"})
	prometheus.MustRegister(consumed, persisted, broadcast, errorsBy)

	// Instancia o processor, conectando callbacks de métricas
	proc := &consumer.Processor{
		Log:       log,
		Reader:    reader,
		Store:     repo,
		Broadcast: broadcaster,
		Channel:   cfg.RedisPubSubChannel,
		DLQ:       dlq,

		OnConsumed:  func() { consumed.Inc() },
		OnPersisted: func() { persisted.Inc() },
		OnBroadcast: func() { broadcast.Inc() },
		OnError:     func(stage string) { errorsBy.WithLabelValues(stage).Inc() },
	}

	// Servidor HTTP para métricas e health check
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := pg.PingContext(ctx); err != nil {
				http.Error(w, "pg", http.StatusServiceUnavailable)
				return
			}
			if err := redisClient.Ping(ctx).Err(); err != nil {
				http.Error(w, "redis", http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		addr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("metrics/health listening", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, mux)
	}()

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("ledger-history-worker started")
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("processor stopped with error", zap.Error(err))
	}
	log.Info("ledger-history-worker stopped")
}

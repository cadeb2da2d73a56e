package main

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	bcache "github.com/radieske/betting-protocol-poc/internal/betting/cache"
	"github.com/radieske/betting-protocol-poc/internal/betting/engine"
	bhttp "github.com/radieske/betting-protocol-poc/internal/betting/http"
	kpub "github.com/radieske/betting-protocol-poc/internal/betting/producer"
	"github.com/radieske/betting-protocol-poc/internal/betting/token"
	sharedcache "github.com/radieske/betting-protocol-poc/internal/shared/cache"
	"github.com/radieske/betting-protocol-poc/internal/shared/config"
	sharedkafka "github.com/radieske/betting-protocol-poc/internal/shared/kafka"
	"github.com/radieske/betting-protocol-poc/internal/shared/logger"
	"github.com/radieske/betting-protocol-poc/internal/shared/metrics"
)

func main() {
	cfg := config.Load()
	log, err := logger.New("betting-service", cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	log.Info("starting service",
		zap.String("operator", cfg.OperatorID),
		zap.String("custody", cfg.CustodyAccountID),
		zap.String("payoutMode", cfg.PayoutMode),
	)

	// Redis para snapshots de apostas
	rdb, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer rdb.Close()

	// Kafka writer (ledger_events)
	writer := sharedkafka.NewWriter(cfg.KafkaBrokers, cfg.TopicLedgerEvents)
	defer writer.Close()

	// deps do ledger: token externo, publisher de eventos, cache
	publ := kpub.NewKafkaPublisher(writer)
	tok := token.New(cfg.TokenURL, cfg.CustodyAccountID)
	ledger := engine.New(cfg.OperatorID, cfg.CustodyAccountID, tok, publ, cfg.PayoutMode == "claim")
	snapshots := bcache.NewBetCache(rdb, 5*time.Minute)

	api := bhttp.NewServer(log, ledger, snapshots)

	// Métricas de domínio
	pledges := prometheus.NewCounter(prometheus.CounterOpts{Name: "betting_pledges_total", Help: "pledges aceitos"})
	settlements := prometheus.NewCounter(prometheus.CounterOpts{Name: "betting_settlements_total", Help: "apostas encerradas"})
	claims := prometheus.NewCounter(prometheus.CounterOpts{Name: "betting_claims_total", Help: "claims pagos"})
	prometheus.MustRegister(pledges, settlements, claims)
	api.OnPledge = func() { pledges.Inc() }
	api.OnSettle = func() { settlements.Inc() }
	api.OnClaim = func() { claims.Inc() }

	// metrics/health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		// token-service acessível = pledges/payouts viáveis
		_, err := tok.BalanceOf(ctx, cfg.CustodyAccountID)
		return err
	})
	log.Info("metrics/health listening", zap.String("addr", metricsSrv.Addr))

	apiSrv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}

	log.Info("betting-service listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("api", zap.Error(err))
	}
}

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/airservice/config"
	"github.com/Domenick1991/airservice/internal/bootstrap"
	"github.com/Domenick1991/airservice/internal/cache"
	"github.com/Domenick1991/airservice/internal/kafka"
	"github.com/Domenick1991/airservice/internal/logger"
	"github.com/Domenick1991/airservice/internal/repository"
	"github.com/Domenick1991/airservice/internal/service/auth"
	"github.com/Domenick1991/airservice/internal/service/flights"
	"github.com/Domenick1991/airservice/internal/service/orders"
	"github.com/Domenick1991/airservice/internal/service/reference"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Path, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := repository.NewPool(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		zlog.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			zlog.Fatal("apply schema", zap.Error(err))
		}
		zlog.Info("schema applied")
	}

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Flights.CacheTTL())
	defer redisCache.Close()
	if err := redisCache.Ping(ctx); err != nil {
		zlog.Warn("redis unavailable, flight listings will not be cached", zap.Error(err))
	}

	producer := kafka.NewProducer(cfg.Kafka.Brokers, zlog)
	defer producer.Close()
	if err := producer.CheckConnection(ctx); err != nil {
		zlog.Warn("kafka unavailable, order events may be dropped", zap.Error(err))
	}

	store := repository.NewStore(pool)

	authService := auth.NewAuthService(store.Users(), cfg.Auth.JWTSecret, cfg.Auth.TokenTTL(),
		auth.WithBcryptCost(cfg.Auth.BcryptCost),
		auth.WithStaffEmails(cfg.Auth.StaffEmails),
		auth.WithLogger(zlog),
	)
	flightService := flights.NewFlightService(store.Flights(), redisCache, zlog)
	orderService := orders.NewOrderService(store, store,
		orders.WithCache(redisCache),
		orders.WithProducer(producer, cfg.Kafka.OrderEventsTopic),
		orders.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		orders.WithLogger(zlog),
	)
	referenceService := reference.NewReferenceService(store, store,
		reference.WithCache(redisCache),
		reference.WithLogger(zlog),
	)

	services := bootstrap.Services{
		Auth:      authService,
		Orders:    orderService,
		Flights:   flightService,
		Reference: referenceService,
	}
	health := func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		if err := redisCache.Ping(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	}
	if err := bootstrap.Run(ctx, cfg, zlog, services, health); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}

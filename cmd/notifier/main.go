package main

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boolshop/storefront/internal/notification/application"
	notifkafka "github.com/boolshop/storefront/internal/notification/infrastructure/kafka"
	"github.com/boolshop/storefront/pkg/idempotency"
	"github.com/boolshop/storefront/pkg/logging"
	"github.com/boolshop/storefront/pkg/shutdown"
	"github.com/boolshop/storefront/pkg/tracing"
)

func main() {
	log := logging.New()
	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	kafkaAddr := env("KAFKA_ADDR", "localhost:9092")
	otlpEndpoint := env("OTLP_ENDPOINT", "http://localhost:4318/v1/traces")
	redisAddr := env("REDIS_ADDR", "localhost:6379")
	inTopic := env("IN_TOPIC", "storefront.orders")

	tp, err := tracing.Init(ctx, "notifier", otlpEndpoint, log)
	if err != nil {
		log.Error("otel init failed", "err", err)
		os.Exit(1)
	}
	defer func() { _ = tp.Shutdown(ctx) }()

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	defer rdb.Close()
	idem := idempotency.NewStore(rdb, 24*time.Hour)

	svc := application.NewService(log)
	consumer := notifkafka.NewConsumer(log, []string{kafkaAddr}, inTopic, "notifier", svc, idem)

	go func() {
		if err := consumer.Run(ctx); err != nil {
			log.Error("consumer stopped", "err", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("notifier shutdown")
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

package kafka

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/boolshop/storefront/internal/checkout/domain"
	"github.com/boolshop/storefront/internal/notification/application"
	"github.com/boolshop/storefront/pkg/idempotency"
	"github.com/boolshop/storefront/pkg/tracing"
)

const eventOrderPlaced = "OrderPlaced"

type Consumer struct {
	log    *slog.Logger
	reader *kafka.Reader
	svc    *application.Service
	idem   *idempotency.Store
	tracer trace.Tracer
}

func NewConsumer(log *slog.Logger, brokers []string, topic, group string, svc *application.Service, idem *idempotency.Store) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: group,
	})
	return &Consumer{
		log:    log,
		reader: r,
		svc:    svc,
		idem:   idem,
		tracer: otel.Tracer("notification-consumer"),
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}

		key := c.idem.Key(msg.Topic, msg.Partition, msg.Offset)
		seen, err := c.idem.Seen(ctx, key)
		if err != nil {
			c.log.Error("idempotency check failed", "err", err)
			continue
		}
		if seen {
			c.log.Info("duplicate message skipped", "key", key)
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		if et := headerValue(msg.Headers, "event_type"); et != eventOrderPlaced {
			c.log.Debug("ignoring event", "type", et)
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
		msgCtx, span := c.tracer.Start(msgCtx, "ConsumeOrderPlaced")

		var ev domain.OrderPlaced
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			c.log.Error("unmarshal failed", "err", err)
			span.End()
			_ = c.reader.CommitMessages(ctx, msg)
			continue
		}

		if err := c.svc.SendOrderConfirmation(msgCtx, ev); err != nil {
			c.log.Error("confirmation failed", "order_id", ev.OrderID, "err", err)
		}
		span.End()
		_ = c.reader.CommitMessages(ctx, msg)
	}
}

func headerValue(h []kafka.Header, key string) string {
	for _, hh := range h {
		if hh.Key == key {
			return string(hh.Value)
		}
	}
	return ""
}

package consumer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/md-rashed-zaman/advobook/libs/kafkax"
	"github.com/md-rashed-zaman/advobook/services/notifier-service/internal/inbox"
)

// Handler processes one deduplicated message. Returning an error leaves
// the offset uncommitted so the message is redelivered.
type Handler func(ctx context.Context, meta kafkax.EventMeta, payload []byte) error

// Consumer reads one topic, dedupes through the inbox and hands payloads
// to the handler. Offsets are committed only after a successful handle
// (or a duplicate), so delivery is at-least-once with inbox-level
// idempotency.
type Consumer struct {
	reader  *kafka.Reader
	inbox   *inbox.Repository
	handler Handler
	logger  *slog.Logger
}

type Config struct {
	Brokers string
	GroupID string
	Topic   string
}

func New(cfg Config, ib *inbox.Repository, handler Handler, logger *slog.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        kafkax.SplitBrokers(cfg.Brokers),
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       1 << 20,
		CommitInterval: 0, // explicit commits only
	})
	return &Consumer{reader: reader, inbox: ib, handler: handler, logger: logger}
}

func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if err := c.handleMessage(ctx, msg); err != nil {
			c.logger.Error("message handling failed", "topic", msg.Topic, "offset", msg.Offset, "err", err)
			// no commit: the message comes back on the next fetch
			time.Sleep(time.Second)
			continue
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("offset commit failed", "topic", msg.Topic, "offset", msg.Offset, "err", err)
		}
	}
}

func (c *Consumer) handleMessage(ctx context.Context, msg kafka.Message) error {
	ctx = kafkax.ExtractTraceContext(ctx, msg)
	tracer := otel.Tracer("notifier-service/consumer")
	ctx, span := tracer.Start(ctx, "kafka.consume", trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", msg.Topic),
		))
	defer span.End()

	meta := kafkax.ExtractEventMeta(msg)
	fresh, err := c.inbox.Record(ctx, meta.EventID, meta.EventType)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if !fresh {
		c.logger.Debug("duplicate event skipped", "event_id", meta.EventID)
		return nil
	}

	if err := c.handler(ctx, meta, msg.Value); err != nil {
		// release the inbox claim so redelivery gets a second try
		if ferr := c.inbox.Forget(ctx, meta.EventID); ferr != nil {
			c.logger.Error("inbox release failed", "event_id", meta.EventID, "err", ferr)
		}
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/hfsdouglas/microsservicos-escalaveis/internal/invoices/application"
	orderdomain "github.com/hfsdouglas/microsservicos-escalaveis/internal/orders/domain"
	"github.com/hfsdouglas/microsservicos-escalaveis/pkg/tracing"
)

const (
	retryBackoff    = 100 * time.Millisecond
	maxRetryBackoff = 5 * time.Second
)

// Reader is the slice of *kafka.Reader the consumer uses, narrowed so the
// loop can be driven without a broker.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// DedupCache is the advisory fast path in front of the durable ledger.
type DedupCache interface {
	Seen(ctx context.Context, orderID string) (bool, error)
	MarkProcessed(ctx context.Context, orderID string) error
}

type Consumer struct {
	log    *slog.Logger
	reader Reader
	svc    *application.Service
	idem   DedupCache
	tracer trace.Tracer
}

func NewConsumer(log *slog.Logger, brokers []string, group string, svc *application.Service, idem DedupCache) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   orderdomain.TopicOrderCreated,
		GroupID: group,
	})
	return &Consumer{
		log:    log,
		reader: r,
		svc:    svc,
		idem:   idem,
		tracer: otel.Tracer("invoices-consumer"),
	}
}

// Run is the subscriber loop. Each message is driven to a committed state
// before the next one is fetched; restart needs no local state beyond the
// consumer group offset and the ledger.
func (c *Consumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return err
		}
		if err := c.handle(ctx, msg); err != nil {
			return err
		}
	}
}

// handle processes one message until it can be acknowledged. The commit is a
// per-partition watermark: committing any later offset would acknowledge
// every earlier one, so a failed message must never be skipped — it is
// retried in place (the ledger makes reprocessing safe) until it succeeds or
// the context is canceled. An undecodable payload therefore parks its
// partition; dropping it would silently lose an order.
func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	backoff := retryBackoff
	for {
		err := c.processOne(ctx, msg)
		if err == nil {
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				// Redelivery after a restart is safe, the ledger absorbs it.
				c.log.Error("commit failed", "offset", msg.Offset, "err", err)
			}
			return nil
		}
		c.log.Error("message processing failed, retrying in place",
			"offset", msg.Offset, "err", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxRetryBackoff {
			backoff = maxRetryBackoff
		}
	}
}

func (c *Consumer) processOne(ctx context.Context, msg kafka.Message) error {
	event, err := orderdomain.DecodeOrderCreated(msg.Value)
	if err != nil {
		return err
	}

	// Fast path: Redis remembers orders processed after the ledger commit.
	// Errors fall through to the ledger check inside Process.
	seen, err := c.idem.Seen(ctx, event.OrderID)
	if err != nil {
		c.log.Warn("idempotency cache check failed", "order_id", event.OrderID, "err", err)
	}
	if seen {
		c.log.Info("duplicate delivery skipped", "order_id", event.OrderID)
		return nil
	}

	msgCtx := tracing.ExtractKafkaHeaders(ctx, msg.Headers)
	msgCtx, span := c.tracer.Start(msgCtx, "ProcessOrderCreated")
	defer span.End()

	if _, err := c.svc.Process(msgCtx, event); err != nil {
		return err
	}

	if err := c.idem.MarkProcessed(msgCtx, event.OrderID); err != nil {
		c.log.Warn("idempotency cache write failed", "order_id", event.OrderID, "err", err)
	}
	return nil
}

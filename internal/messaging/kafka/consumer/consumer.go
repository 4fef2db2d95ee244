package consumer

import (
	"context"
	"errors"
	"time"

	"go-payroll/internal/pipeline"
	"go-payroll/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Reader is the part of *kafkago.Reader a stage consumer needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type Handler func(ctx context.Context, msg kafkago.Message) error

// Typed adapts a handler over a decoded payload.
func Typed[T any](fn func(ctx context.Context, event T) error) Handler {
	return func(ctx context.Context, msg kafkago.Message) error {
		event, err := pipeline.Decode[T](msg.Value)
		if err != nil {
			return err
		}
		return fn(ctx, event)
	}
}

type options struct {
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

type Option func(*options)

func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

func WithBackoff(initial, max time.Duration) Option {
	return func(o *options) {
		if initial > 0 {
			o.initialBackoff = initial
		}
		if max >= initial {
			o.maxBackoff = max
		}
	}
}

// Run consumes reader until ctx is done.
//
// Success, skipped and permanent outcomes commit the message. Transient
// failures are retried with exponential backoff; once attempts run out the
// message is committed too, since the stage recomputes from current state
// on its next trigger.
func Run(
	ctx context.Context,
	name string,
	reader Reader,
	handle Handler,
	logger *zap.Logger,
	opts ...Option,
) {
	o := options{maxAttempts: 5, initialBackoff: 500 * time.Millisecond, maxBackoff: 10 * time.Second}
	for _, opt := range opts {
		opt(&o)
	}

	log := logger.Named("kafka.consumer." + name)
	log.Info("stage consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("stage consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			if !sleep(ctx, o.initialBackoff) {
				log.Info("stage consumer stopped")
				return
			}
			continue
		}

		msgLog := log.With(
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.String("key", string(msg.Key)),
		)

		if !process(ctx, msg, handle, msgLog, o) {
			log.Info("stage consumer stopped")
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				log.Info("stage consumer stopped")
				return
			}
			msgLog.Error("commit message failed", zap.Error(err))
		}
	}
}

// process reports false when ctx ended before an outcome was reached; the
// message is then left uncommitted for redelivery.
func process(ctx context.Context, msg kafkago.Message, handle Handler, log *zap.Logger, o options) bool {
	backoff := o.initialBackoff
	stageCtx := contextutil.WithLogger(ctx, log)

	for attempt := 1; ; attempt++ {
		err := handle(stageCtx, msg)
		switch {
		case err == nil:
			log.Debug("message handled")
			return true
		case pipeline.IsSkipped(err):
			log.Warn("stage skipped", zap.Error(err))
			return true
		case pipeline.IsPermanent(err):
			log.Error("dropping message", zap.Error(err))
			return true
		case errors.Is(err, context.Canceled) && ctx.Err() != nil:
			return false
		}

		if attempt >= o.maxAttempts {
			log.Error("stage failed after retries, giving up",
				zap.Int("attempts", attempt),
				zap.Error(err),
			)
			return true
		}

		log.Warn("stage failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		if !sleep(ctx, backoff) {
			return false
		}
		backoff *= 2
		if backoff > o.maxBackoff {
			backoff = o.maxBackoff
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

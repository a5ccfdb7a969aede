package mirror

import (
	"context"
	"errors"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Reader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Consumer tails the orders mirror topic into a Snapshot. Applying a record
// is a map write, so a single fetch loop is enough; offsets are committed
// only after the record landed in the snapshot.
type Consumer struct {
	reader Reader
	snap   *Snapshot
	logger *zap.Logger
}

func NewConsumer(reader Reader, snap *Snapshot, logger *zap.Logger) *Consumer {
	return &Consumer{
		reader: reader,
		snap:   snap,
		logger: logger,
	}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			if isBenignFetchTimeout(err) {
				c.logger.Debug("fetch timeout (idle), backing off", zap.Error(err))
				sleepWithContext(ctx, 10*time.Second)
				continue
			}
			// Temporary errors during rebalancing/coordinator moves: wait and go on.
			c.logger.Warn("FetchMessage error, backing off", zap.Error(err))
			sleepWithContext(ctx, 500*time.Millisecond)
			continue
		}

		if err := c.snap.Apply(string(msg.Key), msg.Value); err != nil {
			c.logger.Error("bad mirror record, skipping",
				zap.Error(err),
				zap.String("key", string(msg.Key)),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Warn("commit failed",
				zap.Error(err),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
			sleepWithContext(ctx, 200*time.Millisecond)
			continue
		}

		c.logger.Debug("mirror record applied",
			zap.String("key", string(msg.Key)),
			zap.Bool("tombstone", len(msg.Value) == 0),
			zap.Int64("offset", msg.Offset),
		)
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func isBenignFetchTimeout(err error) bool {
	s := err.Error()
	return strings.Contains(s, "Request Timed Out") ||
		strings.Contains(s, "no messages received from kafka within the allocated time")
}

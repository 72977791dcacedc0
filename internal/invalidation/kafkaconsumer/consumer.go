// Package kafkaconsumer consumes map-data refresh events and drops the
// affected cache entries.
package kafkaconsumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"github.com/Ruilesser/HackTheChange2025/internal/core/observability"
	"github.com/Ruilesser/HackTheChange2025/internal/invalidation"
)

// Store is the slice of the redis client the consumer needs.
type Store interface {
	Del(ctx context.Context, keys ...string) error
	DelPrefix(ctx context.Context, prefix string) (int, error)
}

type Consumer struct {
	cfg    Config
	logger *slog.Logger
	store  Store
}

func New(cfg Config, logger *slog.Logger, store Store) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{cfg: cfg, logger: logger, store: store}
}

// Start consumes refresh events until the context is canceled.
func (c *Consumer) Start(ctx context.Context) error {
	if c.store == nil {
		return errors.New("kafkaconsumer: missing store")
	}

	cfg := sarama.NewConfig()
	cfg.Version = sarama.V2_1_0_0
	cfg.Consumer.Group.Session.Timeout = c.cfg.SessionTimeout
	cfg.Consumer.Group.Heartbeat.Interval = c.cfg.Heartbeat
	cfg.Consumer.Group.Rebalance.Timeout = c.cfg.RebalanceTimeout
	if c.cfg.InitialOffsetOldest {
		cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	}
	cfg.Consumer.Offsets.AutoCommit.Enable = true

	group, err := sarama.NewConsumerGroup(c.cfg.Brokers, c.cfg.GroupID, cfg)
	if err != nil {
		return fmt.Errorf("create consumer group: %w", err)
	}
	defer func() { _ = group.Close() }()

	handler := &groupHandler{process: c.ProcessOne}

	c.logger.Info("invalidation consumer starting",
		"brokers", c.cfg.Brokers, "topic", c.cfg.Topic, "group", c.cfg.GroupID)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("invalidation consumer shutting down")
			return nil
		default:
			if err := group.Consume(ctx, []string{c.cfg.Topic}, handler); err != nil {
				c.logger.Error("consumer error", "err", err)
				time.Sleep(2 * time.Second)
			}
		}
	}
}

// ProcessOne handles a single refresh event message.
func (c *Consumer) ProcessOne(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var ev invalidation.Event
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		observability.IncInvalidation("decode_error")
		c.logger.Error("event decode failed",
			"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "err", err)
		return fmt.Errorf("json decode: %w", err)
	}
	if err := ev.Validate(); err != nil {
		observability.IncInvalidation("invalid")
		c.logger.Warn("invalid refresh event (skipping)", "err", err)
		return nil
	}

	if ks := ev.Keys(); len(ks) > 0 {
		if err := c.store.Del(ctx, ks...); err != nil {
			observability.IncInvalidation("del_error")
			return fmt.Errorf("delete %d keys: %w", len(ks), err)
		}
	}
	dropped := 0
	for _, prefix := range ev.Prefixes() {
		n, err := c.store.DelPrefix(ctx, prefix)
		if err != nil {
			observability.IncInvalidation("del_error")
			return fmt.Errorf("delete prefix %q: %w", prefix, err)
		}
		dropped += n
	}

	observability.IncInvalidation("ok")
	c.logger.Debug("refresh event applied",
		"kind", ev.Kind, "cells", len(ev.Cells), "tiles_dropped", dropped)
	return nil
}

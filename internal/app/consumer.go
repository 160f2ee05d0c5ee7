package app

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-butterflies-checkout/internal/analytics"
	"go-butterflies-checkout/internal/config"
)

// RunConsumer tails the checkout events topic and keeps running funnel
// tallies per action, logging a snapshot on every order outcome. It is the
// read side of the analytics emitter.
func RunConsumer(cfg config.Config, logger *zap.Logger) error {
	logger = logger.Named("consumer")
	logger.Info("starting checkout events consumer")

	if err := connectKafkaWithRetry(cfg.KafkaBroker, 5, logger); err != nil {
		return err
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{cfg.KafkaBroker},
		Topic:   EventsTopic,
		GroupID: "checkout-analytics-group",
	})
	defer reader.Close()
	logger.Info("kafka reader initialized", zap.String("topic", EventsTopic))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tally := newFunnelTally()
	go consumeEvents(ctx, reader, tally, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()
	return nil
}

// funnelTally counts events per action since startup.
type funnelTally struct {
	mu     sync.Mutex
	counts map[string]int64
}

func newFunnelTally() *funnelTally {
	return &funnelTally{counts: make(map[string]int64)}
}

func (t *funnelTally) record(action string) map[string]int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[action]++

	snapshot := make(map[string]int64, len(t.counts))
	for k, v := range t.counts {
		snapshot[k] = v
	}
	return snapshot
}

func consumeEvents(ctx context.Context, reader *kafka.Reader, tally *funnelTally, logger *zap.Logger) {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Warn("fetch failed", zap.Error(err))
			continue
		}

		action := eventHeader(msg.Headers, "event_type")
		if action == "" {
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		counts := tally.record(action)

		// Order outcomes get the detailed treatment; step events are only
		// tallied.
		switch action {
		case analytics.ActionOrderSubmitted, analytics.ActionOrderFailed:
			var event struct {
				Value int64                     `json:"value"`
				Props analytics.OrderEventProps `json:"props"`
			}
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				logger.Warn("bad event payload", zap.String("action", action), zap.Error(err))
			} else {
				logger.Info("order outcome",
					zap.String("action", action),
					zap.String("order_number", event.Props.OrderNumber),
					zap.Float64("cart_value", event.Props.CartValue),
					zap.Int("item_count", event.Props.ItemCount),
					zap.Int64("submitted_total", counts[analytics.ActionOrderSubmitted]),
					zap.Int64("failed_total", counts[analytics.ActionOrderFailed]),
				)
			}
		default:
			logger.Debug("step event",
				zap.String("action", action),
				zap.Int64("count", counts[action]),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Warn("commit failed", zap.Error(err))
		}
	}
}

func eventHeader(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

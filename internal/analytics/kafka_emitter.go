package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter is the slice of kafka.Writer we use; tests substitute a fake.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaEmitter publishes events to the checkout events topic. Writes are
// asynchronous and errors are only logged; the emitter is a side channel and
// must never block or fail a checkout transition.
type KafkaEmitter struct {
	writer messageWriter
	logger *zap.Logger
}

// NewKafkaWriter builds the async writer for the given broker and topic.
func NewKafkaWriter(broker, topic string, logger *zap.Logger) *kafka.Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &kafka.Writer{
		Addr:     kafka.TCP(broker),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
		Async:    true,
	}
	w.Completion = func(messages []kafka.Message, err error) {
		if err != nil {
			logger.Warn("analytics publish failed",
				zap.Int("batch", len(messages)),
				zap.Error(err),
			)
		}
	}
	return w
}

func NewKafkaEmitter(writer *kafka.Writer, logger *zap.Logger) *KafkaEmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaEmitter{writer: writer, logger: logger.Named("analytics.kafka")}
}

func newKafkaEmitterWithWriter(writer messageWriter, logger *zap.Logger) *KafkaEmitter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaEmitter{writer: writer, logger: logger}
}

func (e *KafkaEmitter) Track(ctx context.Context, category, action string, props any, value int64) {
	payload, err := json.Marshal(envelope{
		Category:  category,
		Action:    action,
		Value:     value,
		Props:     props,
		EmittedAt: time.Now().UTC(),
	})
	if err != nil {
		e.logger.Warn("analytics event marshal failed",
			zap.String("action", action),
			zap.Error(err),
		)
		return
	}

	msg := kafka.Message{
		Key:   []byte(category),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(action)},
		},
	}
	if err := e.writer.WriteMessages(ctx, msg); err != nil {
		e.logger.Warn("analytics event dropped",
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

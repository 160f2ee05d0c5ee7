package app

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-butterflies-checkout/internal/analytics"
	"go-butterflies-checkout/internal/config"
	"go-butterflies-checkout/internal/draft"
)

// EventsTopic carries the checkout analytics stream.
const EventsTopic = "checkout.events"

// BuildApp wires infrastructure and modules onto the router. Redis and Kafka
// are optional: without them the app degrades to an in-memory draft store and
// a nop analytics emitter, which is how local development and tests run.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) error {
	var drafts draft.Store = draft.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb, err := connectRedisWithRetry(cfg.RedisAddr, 5, logger)
		if err != nil {
			return err
		}
		drafts = draft.NewRedisStore(rdb, cfg.DraftTTL, logger)
	}

	var emitter analytics.Emitter = analytics.Nop{}
	if cfg.KafkaBroker != "" {
		if err := connectKafkaWithRetry(cfg.KafkaBroker, 5, logger); err != nil {
			return err
		}
		writer := analytics.NewKafkaWriter(cfg.KafkaBroker, EventsTopic, logger)
		emitter = analytics.NewKafkaEmitter(writer, logger)
	}

	return registerModules(router, cfg, emitter, drafts, logger)
}

package main

import (
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-butterflies-checkout/internal/app"
	"go-butterflies-checkout/internal/config"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	if cfg.KafkaBroker == "" {
		logger.Fatal("KAFKA_BROKER is required for the consumer")
	}

	if err := app.RunConsumer(cfg, logger); err != nil {
		logger.Fatal("consumer failed", zap.Error(err))
	}
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Config carries every tunable the checkout core reads from the environment.
// Everything has a sane default so the API runs with zero configuration;
// Redis and Kafka stay optional (empty address means in-memory / nop).
type Config struct {
	Port string

	// Pricing knobs.
	ShippingThreshold decimal.Decimal
	ShippingRate      decimal.Decimal
	TaxRate           decimal.Decimal

	// Validation timing.
	SettleDelay   time.Duration
	DebounceDelay time.Duration

	// Simulated external latencies.
	PromoLookupDelay  time.Duration
	PostalLookupDelay time.Duration
	SubmitDelay       time.Duration

	// Gesture navigation tuning. Units are px and px/ms; these are tuning
	// values, not invariants.
	GestureDistance    float64
	GestureMinDistance float64
	GestureVelocity    float64

	SessionTTL time.Duration

	// DraftTTL outlives SessionTTL so a returning visitor still finds their
	// half-filled form.
	DraftTTL time.Duration

	RedisAddr   string
	KafkaBroker string
	JWTSecret   string
}

func Load() Config {
	return Config{
		Port: envString("PORT", "3000"),

		ShippingThreshold: envDecimal("SHIPPING_THRESHOLD", "200"),
		ShippingRate:      envDecimal("SHIPPING_RATE", "15"),
		TaxRate:           envDecimal("TAX_RATE", "0.15"),

		SettleDelay:   envMillis("SETTLE_MS", 300),
		DebounceDelay: envMillis("DEBOUNCE_MS", 500),

		PromoLookupDelay:  envMillis("PROMO_LOOKUP_MS", 400),
		PostalLookupDelay: envMillis("POSTAL_LOOKUP_MS", 150),
		SubmitDelay:       envMillis("SUBMIT_MS", 1500),

		GestureDistance:    envFloat("GESTURE_DISTANCE", 100),
		GestureMinDistance: envFloat("GESTURE_MIN_DISTANCE", 50),
		GestureVelocity:    envFloat("GESTURE_VELOCITY", 0.5),

		SessionTTL: envMinutes("SESSION_TTL_MIN", 30),
		DraftTTL:   envMinutes("DRAFT_TTL_MIN", 24*60),

		RedisAddr:   os.Getenv("REDIS_ADDR"),
		KafkaBroker: os.Getenv("KAFKA_BROKER"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDecimal(key, fallback string) decimal.Decimal {
	raw := envString(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.RequireFromString(fallback)
	}
	return d
}

func envMillis(key string, fallback int64) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallback) * time.Millisecond
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Duration(fallback) * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}

func envMinutes(key string, fallback int64) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallback) * time.Minute
	}
	m, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Duration(fallback) * time.Minute
	}
	return time.Duration(m) * time.Minute
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return f
}

package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-butterflies-checkout/internal/analytics"
	"go-butterflies-checkout/internal/cart"
	"go-butterflies-checkout/internal/checkout"
	"go-butterflies-checkout/internal/config"
	"go-butterflies-checkout/internal/draft"
	"go-butterflies-checkout/internal/middleware"
	"go-butterflies-checkout/internal/pricing"
	"go-butterflies-checkout/internal/promo"
	"go-butterflies-checkout/internal/validation"
)

func registerModules(router *gin.Engine, cfg config.Config, emitter analytics.Emitter, drafts draft.Store, logger *zap.Logger) error {
	// --- Core engines ---
	pricingEngine := pricing.NewEngine(pricing.Config{
		ShippingThreshold: cfg.ShippingThreshold,
		ShippingRate:      cfg.ShippingRate,
		TaxRate:           cfg.TaxRate,
	})

	shippingEngine, err := validation.NewEngine(
		checkout.ShippingRules(cfg.PostalLookupDelay),
		validation.WithSettleDelay(cfg.SettleDelay),
		validation.WithDebounceDelay(cfg.DebounceDelay),
		validation.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	paymentEngine, err := validation.NewEngine(
		checkout.PaymentRules(time.Now),
		validation.WithSettleDelay(cfg.SettleDelay),
		validation.WithDebounceDelay(cfg.DebounceDelay),
		validation.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	// --- Services ---
	promoService := promo.NewService(cfg.PromoLookupDelay, logger)

	cartService := cart.NewService(cart.Deps{
		Store:    cart.NewStore(),
		PromoSvc: promoService,
		Engine:   pricingEngine,
		Logger:   logger,
	})

	checkoutService := checkout.NewService(checkout.Deps{
		CartSvc:        cartService,
		Emitter:        emitter,
		Drafts:         drafts,
		ShippingEngine: shippingEngine,
		PaymentEngine:  paymentEngine,
		Config: checkout.Config{
			Gesture: checkout.GestureConfig{
				Distance:    cfg.GestureDistance,
				MinDistance: cfg.GestureMinDistance,
				Velocity:    cfg.GestureVelocity,
			},
			SubmitDelay: cfg.SubmitDelay,
			SessionTTL:  cfg.SessionTTL,
		},
		Logger: logger,
	})

	// --- Handlers ---
	promoHandler := promo.NewHandler(promoService)
	cartHandler := cart.NewHandler(cartService, logger)
	checkoutHandler := checkout.NewHandler(checkoutService, logger)

	// --- Routes Registration ---
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SessionMiddleware())

	api := router.Group("/api/v1")
	{
		promo.RegisterRoutes(api, promoHandler)

		session := api.Group("", middleware.RequireSession())
		cart.RegisterRoutes(session, cartHandler)
		checkout.RegisterRoutes(session, checkoutHandler)
	}

	return nil
}

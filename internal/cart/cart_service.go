package cart

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-butterflies-checkout/internal/pricing"
	"go-butterflies-checkout/internal/promo"
)

//go:generate mockgen -source=cart_service.go -destination=../mock/cart/cart_service_mock.go -package=mock
type Service interface {
	Snapshot(ctx context.Context, sessionID string) (Snapshot, error)
	Count(ctx context.Context, sessionID string) (int, error)
	Detail(ctx context.Context, sessionID string) (CartDetailResponse, error)

	AddItem(ctx context.Context, sessionID string, req AddItemRequest) error
	UpdateQty(ctx context.Context, sessionID, productID string, req UpdateQtyRequest) error
	Increment(ctx context.Context, sessionID, productID string) error
	Decrement(ctx context.Context, sessionID, productID string) error
	RemoveItem(ctx context.Context, sessionID, productID string) error
	Clear(ctx context.Context, sessionID string) error

	ApplyPromo(ctx context.Context, sessionID, code string) (*promo.Code, error)
	RemovePromo(ctx context.Context, sessionID string) error

	// Totals recomputes the full breakdown from the current snapshot on
	// every call; nothing is cached across mutations.
	Totals(ctx context.Context, sessionID string) (pricing.Totals, error)
}

type service struct {
	store    *Store
	promoSvc promo.Service
	engine   *pricing.Engine
	validate *validator.Validate
	logger   *zap.Logger
}

type Deps struct {
	Store    *Store
	PromoSvc promo.Service
	Engine   *pricing.Engine
	Logger   *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Store == nil {
		panic("cart store cannot be nil")
	}
	if deps.PromoSvc == nil {
		panic("promo service cannot be nil")
	}
	if deps.Engine == nil {
		panic("pricing engine cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	// Reuse the binding tags so service-level checks match what gin enforces
	// at the edge.
	validate := validator.New()
	validate.SetTagName("binding")

	return &service{
		store:    deps.Store,
		promoSvc: deps.PromoSvc,
		engine:   deps.Engine,
		validate: validate,
		logger:   deps.Logger.Named("cart.service"),
	}
}

func (s *service) Snapshot(ctx context.Context, sessionID string) (Snapshot, error) {
	return s.store.snapshot(sessionID), nil
}

func (s *service) Count(ctx context.Context, sessionID string) (int, error) {
	snap := s.store.snapshot(sessionID)
	count := 0
	for _, item := range snap.Items {
		count += item.Quantity
	}
	return count, nil
}

func (s *service) Detail(ctx context.Context, sessionID string) (CartDetailResponse, error) {
	snap := s.store.snapshot(sessionID)
	totals := s.computeTotals(snap)

	items := make([]CartItemResponse, 0, len(snap.Items))
	for _, item := range snap.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		res := CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice.InexactFloat64(),
			Qty:       item.Quantity,
			LineTotal: lineTotal.InexactFloat64(),
		}
		if item.OriginalPrice != nil {
			op := item.OriginalPrice.InexactFloat64()
			res.OriginalPrice = &op
		}
		items = append(items, res)
	}

	detail := CartDetailResponse{
		Items:  items,
		Totals: mapTotals(totals),
	}
	if snap.Promo != nil {
		detail.PromoCode = snap.Promo.Code
	}
	return detail, nil
}

func (s *service) AddItem(ctx context.Context, sessionID string, req AddItemRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return MapValidationError(err)
	}

	item := LineItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: decimal.NewFromFloat(req.UnitPrice),
		Quantity:  req.Qty,
	}
	if req.OriginalPrice != nil {
		op := decimal.NewFromFloat(*req.OriginalPrice)
		item.OriginalPrice = &op
	}

	s.store.addItem(sessionID, item)
	s.logger.Debug("item added",
		zap.String("session_id", sessionID),
		zap.String("product_id", req.ProductID),
		zap.Int("qty", req.Qty),
	)
	return nil
}

func (s *service) UpdateQty(ctx context.Context, sessionID, productID string, req UpdateQtyRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return MapValidationError(err)
	}
	if req.Qty < 1 {
		return ErrInvalidQty
	}
	if !s.store.updateQty(sessionID, productID, req.Qty) {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *service) Increment(ctx context.Context, sessionID, productID string) error {
	if _, ok := s.store.adjustQty(sessionID, productID, 1); !ok {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *service) Decrement(ctx context.Context, sessionID, productID string) error {
	if _, ok := s.store.adjustQty(sessionID, productID, -1); !ok {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID, productID string) error {
	if !s.store.removeItem(sessionID, productID) {
		return ErrCartItemNotFound
	}
	return nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	s.store.clear(sessionID)
	return nil
}

// ApplyPromo resolves the code through the promo validator and pins it to the
// cart. A lookup miss surfaces as ErrPromoInvalid; a subtotal under the
// code's minimum is rejected at apply time rather than silently zeroing the
// discount later.
func (s *service) ApplyPromo(ctx context.Context, sessionID, code string) (*promo.Code, error) {
	resolved, err := s.promoSvc.Validate(ctx, code)
	if err != nil {
		return nil, err
	}
	if resolved == nil {
		return nil, ErrPromoInvalid
	}

	snap := s.store.snapshot(sessionID)
	subtotal := s.engine.Subtotal(toPricingItems(snap.Items))
	if !resolved.MeetsMinOrder(subtotal) {
		return nil, ErrPromoMinOrder
	}

	s.store.setPromo(sessionID, resolved)
	s.logger.Info("promo applied",
		zap.String("session_id", sessionID),
		zap.String("code", resolved.Code),
	)
	return resolved, nil
}

func (s *service) RemovePromo(ctx context.Context, sessionID string) error {
	snap := s.store.snapshot(sessionID)
	if snap.Promo == nil {
		return ErrNoPromoApplied
	}
	s.store.setPromo(sessionID, nil)
	return nil
}

func (s *service) Totals(ctx context.Context, sessionID string) (pricing.Totals, error) {
	return s.computeTotals(s.store.snapshot(sessionID)), nil
}

func (s *service) computeTotals(snap Snapshot) pricing.Totals {
	return s.engine.Compute(toPricingItems(snap.Items), snap.Promo)
}

func toPricingItems(items []LineItem) []pricing.LineItem {
	out := make([]pricing.LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, pricing.LineItem{
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return out
}

func mapTotals(t pricing.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal: t.Subtotal.InexactFloat64(),
		Shipping: t.Shipping.InexactFloat64(),
		Tax:      t.Tax.InexactFloat64(),
		Discount: t.Discount.InexactFloat64(),
		Total:    t.Total.InexactFloat64(),
	}
}

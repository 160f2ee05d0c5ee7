package checkout

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"go-butterflies-checkout/internal/analytics"
	"go-butterflies-checkout/internal/cart"
	"go-butterflies-checkout/internal/draft"
	"go-butterflies-checkout/internal/pricing"
	"go-butterflies-checkout/internal/validation"
)

//go:generate mockgen -source=checkout_service.go -destination=../mock/checkout/checkout_service_mock.go -package=mock
type Service interface {
	Start(ctx context.Context, sessionID string) (SessionResponse, error)
	Get(ctx context.Context, sessionID string) (SessionResponse, error)

	SetField(ctx context.Context, sessionID string, req SetFieldRequest) (FieldFeedbackResponse, error)
	SetFocus(ctx context.Context, sessionID string, focused bool) error

	Advance(ctx context.Context, sessionID string) (TransitionResponse, error)
	Retreat(ctx context.Context, sessionID string) (TransitionResponse, error)
	JumpTo(ctx context.Context, sessionID string, step Step) (TransitionResponse, error)
	Gesture(ctx context.Context, sessionID string, input GestureInput) (TransitionResponse, error)

	Submit(ctx context.Context, sessionID string) (SubmissionResponse, error)
}

// Config carries the checkout flow tunables.
type Config struct {
	Gesture     GestureConfig
	SubmitDelay time.Duration
	SessionTTL  time.Duration
}

type service struct {
	sessions *sessionStore

	cartSvc cart.Service
	emitter analytics.Emitter
	drafts  draft.Store

	shippingEngine *validation.Engine
	paymentEngine  *validation.Engine

	cfg        Config
	now        func() time.Time
	failSubmit func() bool
	logger     *zap.Logger
}

type Deps struct {
	CartSvc cart.Service
	Emitter analytics.Emitter
	Drafts  draft.Store

	// Engines are optional; nil builds the default shipping/payment rule
	// sets.
	ShippingEngine *validation.Engine
	PaymentEngine  *validation.Engine

	Config Config
	Logger *zap.Logger

	// Now and FailSubmit are injectable for tests. FailSubmit decides
	// whether a simulated submission attempt fails.
	Now        func() time.Time
	FailSubmit func() bool
}

func NewService(deps Deps) Service {
	if deps.CartSvc == nil {
		panic("cart service cannot be nil")
	}
	if deps.Emitter == nil {
		deps.Emitter = analytics.Nop{}
	}
	if deps.Drafts == nil {
		deps.Drafts = draft.NewMemoryStore()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.FailSubmit == nil {
		deps.FailSubmit = func() bool { return rand.Float64() < 0.1 }
	}
	if deps.Config.Gesture == (GestureConfig{}) {
		deps.Config.Gesture = DefaultGestureConfig()
	}
	if deps.Config.SubmitDelay == 0 {
		deps.Config.SubmitDelay = 1500 * time.Millisecond
	}
	if deps.Config.SessionTTL == 0 {
		deps.Config.SessionTTL = 30 * time.Minute
	}

	if deps.ShippingEngine == nil {
		engine, err := validation.NewEngine(ShippingRules(150 * time.Millisecond))
		if err != nil {
			panic(fmt.Sprintf("shipping rules: %v", err))
		}
		deps.ShippingEngine = engine
	}
	if deps.PaymentEngine == nil {
		engine, err := validation.NewEngine(PaymentRules(deps.Now))
		if err != nil {
			panic(fmt.Sprintf("payment rules: %v", err))
		}
		deps.PaymentEngine = engine
	}

	return &service{
		sessions:       newSessionStore(deps.Config.SessionTTL, deps.Now),
		cartSvc:        deps.CartSvc,
		emitter:        deps.Emitter,
		drafts:         deps.Drafts,
		shippingEngine: deps.ShippingEngine,
		paymentEngine:  deps.PaymentEngine,
		cfg:            deps.Config,
		now:            deps.Now,
		failSubmit:     deps.FailSubmit,
		logger:         deps.Logger.Named("checkout.service"),
	}
}

func (s *service) Start(ctx context.Context, sessionID string) (SessionResponse, error) {
	sess, created := s.sessions.getOrCreate(sessionID)

	if created {
		// Restore any cached draft; values are prefilled but stay
		// untouched and unvalidated until the user interacts.
		fields, err := s.drafts.Load(ctx, sessionID)
		if err != nil {
			s.logger.Warn("draft restore failed", zap.String("session_id", sessionID), zap.Error(err))
		}
		if len(fields) > 0 {
			sess.mu.Lock()
			for name, value := range fields {
				sess.fields[name] = value
			}
			sess.mu.Unlock()
		}
		s.logger.Info("checkout started", zap.String("session_id", sessionID))
	}

	return s.sessionResponse(ctx, sess)
}

func (s *service) Get(ctx context.Context, sessionID string) (SessionResponse, error) {
	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return SessionResponse{}, ErrSessionNotFound
	}
	return s.sessionResponse(ctx, sess)
}

// SetField stores a form value and validates it progressively: the result
// only applies if no newer edit for the same field superseded this one.
func (s *service) SetField(ctx context.Context, sessionID string, req SetFieldRequest) (FieldFeedbackResponse, error) {
	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return FieldFeedbackResponse{}, ErrSessionNotFound
	}

	if req.Field == FieldPaymentMethod {
		sess.mu.Lock()
		sess.fields[FieldPaymentMethod] = req.Value
		sess.mu.Unlock()
		s.saveDraft(ctx, sess)
		return FieldFeedbackResponse{Field: req.Field, IsValid: true}, nil
	}

	engine, ok := s.engineForField(req.Field)
	if !ok {
		return FieldFeedbackResponse{}, ErrUnknownField
	}

	sess.mu.Lock()
	sess.fields[req.Field] = req.Value
	sess.tracker.Touch(req.Field)
	sess.mu.Unlock()

	s.saveDraft(ctx, sess)

	mode := validation.ModeProgressive
	if req.Immediate {
		mode = validation.ModeImmediate
	}

	result, err := engine.ValidateFieldWithFeedback(ctx, req.Field, req.Value, mode)
	if errors.Is(err, validation.ErrSuperseded) {
		// A newer keystroke owns this field now; report nothing.
		return FieldFeedbackResponse{Field: req.Field, Superseded: true}, nil
	}
	if err != nil {
		return FieldFeedbackResponse{}, err
	}

	sess.mu.Lock()
	// Discard the verdict if the field changed while we validated; a stale
	// result must never overwrite a newer value's state.
	if sess.fields[req.Field] == req.Value {
		if result.Error != "" {
			sess.fieldErrors[req.Field] = result.Error
		} else {
			delete(sess.fieldErrors, req.Field)
		}
	}
	show := sess.tracker.ShouldShow(req.Field, result.Error != "")
	sess.mu.Unlock()

	return FieldFeedbackResponse{
		Field:      req.Field,
		IsValid:    result.IsValid,
		Error:      result.Error,
		Warning:    result.Warning,
		Suggestion: result.Suggestion,
		ShowError:  show,
	}, nil
}

func (s *service) SetFocus(ctx context.Context, sessionID string, focused bool) error {
	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	sess.mu.Lock()
	sess.formFocused = focused
	sess.mu.Unlock()
	return nil
}

func (s *service) Advance(ctx context.Context, sessionID string) (TransitionResponse, error) {
	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return TransitionResponse{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.advanceLocked(ctx, sess, analytics.ActionStepCompleted)
}

// advanceLocked validates the current step and moves forward on success.
// Callers hold the session lock. A failed validation is a no-op plus field
// errors plus one analytics failure event, never a Go error.
func (s *service) advanceLocked(ctx context.Context, sess *Session, successAction string) (TransitionResponse, error) {
	from := sess.step
	next, ok := from.next()
	if !ok {
		return TransitionResponse{
			Moved: false, From: string(from), Step: string(from), StepIndex: from.Index(),
			Message: "already at the last step",
		}, nil
	}

	totals := s.totals(ctx, sess.ID)

	engine := s.engineForStep(sess)
	if engine != nil {
		form, err := engine.ValidateForm(ctx, sess.fields)
		if err != nil {
			return TransitionResponse{}, err
		}
		if !form.Valid {
			// Submission-path exception: all fields count as touched so
			// errors on never-focused fields become visible.
			sess.tracker.TouchAll()
			for name, msg := range form.Errors {
				sess.fieldErrors[name] = msg
			}

			s.emitStep(ctx, analytics.ActionStepFailed, sess, totals, sortedKeys(form.Errors))
			s.logger.Debug("step validation failed",
				zap.String("session_id", sess.ID),
				zap.String("step", string(from)),
				zap.Int("errors", len(form.Errors)),
			)

			return TransitionResponse{
				Moved: false, From: string(from), Step: string(from), StepIndex: from.Index(),
				Errors:  sess.visibleErrors(),
				Message: form.Message,
			}, nil
		}

		// The step passed; its stale errors go away.
		for name := range engine.Rules() {
			delete(sess.fieldErrors, name)
		}
	} else if from == StepPayment {
		// A non-card method skips card validation, so card errors recorded
		// under an earlier method selection no longer apply.
		for name := range s.paymentEngine.Rules() {
			delete(sess.fieldErrors, name)
		}
	}

	s.emitStep(ctx, successAction, sess, totals, nil)

	sess.completed[from] = true
	sess.enterStep(next, s.now())

	return TransitionResponse{
		Moved: true, From: string(from), Step: string(next), StepIndex: next.Index(),
	}, nil
}

func (s *service) Retreat(ctx context.Context, sessionID string) (TransitionResponse, error) {
	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return TransitionResponse{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.retreatLocked(ctx, sess, analytics.ActionStepBack)
}

// retreatLocked moves one step back. Backward navigation never re-validates
// and never clears completion marks. Callers hold the session lock.
func (s *service) retreatLocked(ctx context.Context, sess *Session, action string) (TransitionResponse, error) {
	from := sess.step
	prev, ok := from.prev()
	if !ok {
		return TransitionResponse{
			Moved: false, From: string(from), Step: string(from), StepIndex: from.Index(),
			Message: "already at the first step",
		}, nil
	}

	s.emitStep(ctx, action, sess, s.totals(ctx, sess.ID), nil)
	sess.enterStep(prev, s.now())

	return TransitionResponse{
		Moved: true, From: string(from), Step: string(prev), StepIndex: prev.Index(),
	}, nil
}

// JumpTo navigates directly to a step. Backward jumps (the "edit" action from
// review) are unconditional; forward jumps require every earlier step to be
// completed already.
func (s *service) JumpTo(ctx context.Context, sessionID string, step Step) (TransitionResponse, error) {
	if step.Index() < 0 {
		return TransitionResponse{}, ErrUnknownStep
	}

	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return TransitionResponse{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	from := sess.step
	if step == from {
		return TransitionResponse{
			Moved: false, From: string(from), Step: string(from), StepIndex: from.Index(),
		}, nil
	}

	totals := s.totals(ctx, sess.ID)

	action := analytics.ActionStepBack
	if step.Index() > from.Index() {
		for _, earlier := range stepOrder[:step.Index()] {
			if !sess.completed[earlier] {
				s.emitStep(ctx, analytics.ActionStepFailed, sess, totals, nil)
				return TransitionResponse{}, ErrForwardJump
			}
		}
		action = analytics.ActionStepJump
	}

	s.emitStep(ctx, action, sess, totals, nil)
	sess.enterStep(step, s.now())

	return TransitionResponse{
		Moved: true, From: string(from), Step: string(step), StepIndex: step.Index(),
	}, nil
}

// Gesture maps a completed swipe onto a forward or backward transition. Input
// is dropped entirely while any form field holds focus, and a successful
// navigation requests a haptic pulse unless reduced motion is set.
func (s *service) Gesture(ctx context.Context, sessionID string, input GestureInput) (TransitionResponse, error) {
	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return TransitionResponse{}, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if sess.formFocused {
		return TransitionResponse{
			Moved: false, Ignored: true,
			From: string(sess.step), Step: string(sess.step), StepIndex: sess.step.Index(),
		}, nil
	}

	var res TransitionResponse
	var err error
	switch s.cfg.Gesture.detect(input) {
	case gestureForward:
		res, err = s.advanceLocked(ctx, sess, analytics.ActionGestureNavigation)
	case gestureBackward:
		res, err = s.retreatLocked(ctx, sess, analytics.ActionGestureNavigation)
	default:
		return TransitionResponse{
			Moved: false,
			From:  string(sess.step), Step: string(sess.step), StepIndex: sess.step.Index(),
		}, nil
	}
	if err != nil {
		return TransitionResponse{}, err
	}

	res.Haptic = res.Moved && !input.ReducedMotion
	return res, nil
}

// Submit places the order from the review step. Submission is re-entrancy
// guarded and, once the simulated processing starts, deliberately not
// cancellable: a cancelled request must not risk a double charge.
func (s *service) Submit(ctx context.Context, sessionID string) (SubmissionResponse, error) {
	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return SubmissionResponse{}, ErrSessionNotFound
	}

	snap, err := s.cartSvc.Snapshot(ctx, sessionID)
	if err != nil {
		return SubmissionResponse{}, err
	}

	sess.mu.Lock()
	switch {
	case sess.submitted:
		sess.mu.Unlock()
		return SubmissionResponse{}, ErrAlreadySubmitted
	case sess.submitting.Load():
		sess.mu.Unlock()
		return SubmissionResponse{}, ErrSubmissionInFlight
	case sess.step != StepReview:
		sess.mu.Unlock()
		return SubmissionResponse{}, ErrNotAtReview
	case !sess.completed[StepShipping] || !sess.completed[StepPayment]:
		sess.mu.Unlock()
		return SubmissionResponse{}, ErrStepsIncomplete
	case len(snap.Items) == 0:
		sess.mu.Unlock()
		return SubmissionResponse{}, ErrCartEmpty
	}
	sess.submitting.Store(true)
	sess.formError = ""
	sess.mu.Unlock()

	totals := s.totals(ctx, sessionID)

	// Simulated payment processing. Plain sleep on purpose: once initiated
	// the submission runs to completion regardless of the caller's context.
	if s.cfg.SubmitDelay > 0 {
		time.Sleep(s.cfg.SubmitDelay)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.submitting.Store(false)

	itemCount := 0
	for _, item := range snap.Items {
		itemCount += item.Quantity
	}
	promoCode := ""
	if snap.Promo != nil {
		promoCode = snap.Promo.Code
	}

	if s.failSubmit() {
		sess.formError = submissionFailureMessage
		s.emitter.Track(ctx, analytics.CategoryCheckout, analytics.ActionOrderFailed, analytics.OrderEventProps{
			CartValue: totals.Total.InexactFloat64(),
			ItemCount: itemCount,
			PromoCode: promoCode,
			Reason:    "payment_processing_failed",
		}, totalCents(totals))

		s.logger.Warn("order submission failed",
			zap.String("session_id", sessionID),
		)
		return SubmissionResponse{
			Success: false,
			Message: submissionFailureMessage,
			Totals:  mapCartTotals(totals),
		}, nil
	}

	orderNumber := fmt.Sprintf("NBF-%d-%s", s.now().Unix(), strings.ToUpper(uuid.New().String()[:4]))

	if err := s.cartSvc.Clear(ctx, sessionID); err != nil {
		s.logger.Warn("cart clear after submission failed", zap.Error(err))
	}
	if err := s.drafts.Delete(ctx, sessionID); err != nil {
		s.logger.Warn("draft delete after submission failed", zap.Error(err))
	}

	sess.submitted = true
	sess.orderNumber = orderNumber
	sess.enterStep(StepConfirmation, s.now())

	s.emitter.Track(ctx, analytics.CategoryCheckout, analytics.ActionOrderSubmitted, analytics.OrderEventProps{
		OrderNumber: orderNumber,
		CartValue:   totals.Total.InexactFloat64(),
		ItemCount:   itemCount,
		PromoCode:   promoCode,
	}, totalCents(totals))

	s.logger.Info("order submitted",
		zap.String("session_id", sessionID),
		zap.String("order_number", orderNumber),
	)

	return SubmissionResponse{
		Success:     true,
		OrderNumber: orderNumber,
		Totals:      mapCartTotals(totals),
	}, nil
}

// ==================== helpers ====================

// engineForStep picks the validator gating the session's current step. The
// review step has no form, and non-card payment methods validate trivially.
func (s *service) engineForStep(sess *Session) *validation.Engine {
	switch sess.step {
	case StepShipping:
		return s.shippingEngine
	case StepPayment:
		method, ok := sess.fields[FieldPaymentMethod]
		if ok && method != PaymentMethodCreditCard {
			return nil
		}
		return s.paymentEngine
	default:
		return nil
	}
}

func (s *service) engineForField(name string) (*validation.Engine, bool) {
	if _, ok := s.shippingEngine.Rules()[name]; ok {
		return s.shippingEngine, true
	}
	if _, ok := s.paymentEngine.Rules()[name]; ok {
		return s.paymentEngine, true
	}
	return nil, false
}

func (s *service) totals(ctx context.Context, sessionID string) pricing.Totals {
	totals, err := s.cartSvc.Totals(ctx, sessionID)
	if err != nil {
		s.logger.Warn("totals unavailable", zap.String("session_id", sessionID), zap.Error(err))
		return pricing.Totals{}
	}
	return totals
}

func (s *service) emitStep(ctx context.Context, action string, sess *Session, totals pricing.Totals, failedFields []string) {
	s.emitter.Track(ctx, analytics.CategoryCheckout, action, analytics.StepEventProps{
		Step:         string(sess.step),
		StepIndex:    sess.step.Index(),
		TimeInStepMs: sess.timeInStep(s.now()),
		CartValue:    totals.Total.InexactFloat64(),
		FailedFields: failedFields,
	}, totalCents(totals))
}

func (s *service) saveDraft(ctx context.Context, sess *Session) {
	sess.mu.Lock()
	fields := make(map[string]string, len(sess.fields))
	for k, v := range sess.fields {
		fields[k] = v
	}
	sess.mu.Unlock()

	if err := s.drafts.Save(ctx, sess.ID, fields); err != nil {
		s.logger.Warn("draft save failed", zap.String("session_id", sess.ID), zap.Error(err))
	}
}

func (s *service) sessionResponse(ctx context.Context, sess *Session) (SessionResponse, error) {
	totals := s.totals(ctx, sess.ID)

	sess.mu.Lock()
	defer sess.mu.Unlock()

	fields := make(map[string]string, len(sess.fields))
	for k, v := range sess.fields {
		fields[k] = v
	}
	method := sess.fields[FieldPaymentMethod]
	if method == "" {
		method = PaymentMethodCreditCard
	}

	return SessionResponse{
		SessionID:      sess.ID,
		Step:           string(sess.step),
		StepIndex:      sess.step.Index(),
		CompletedSteps: sess.completedSteps(),
		Fields:         fields,
		Errors:         sess.visibleErrors(),
		FormError:      sess.formError,
		PaymentMethod:  method,
		Submitted:      sess.submitted,
		OrderNumber:    sess.orderNumber,
		Totals:         mapCartTotals(totals),
	}, nil
}

func mapCartTotals(t pricing.Totals) cart.TotalsResponse {
	return cart.TotalsResponse{
		Subtotal: t.Subtotal.InexactFloat64(),
		Shipping: t.Shipping.InexactFloat64(),
		Tax:      t.Tax.InexactFloat64(),
		Discount: t.Discount.InexactFloat64(),
		Total:    t.Total.InexactFloat64(),
	}
}

var decimalHundred = decimal.NewFromInt(100)

func totalCents(t pricing.Totals) int64 {
	return t.Total.Mul(decimalHundred).IntPart()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// Deterministic ordering keeps analytics payloads and tests stable.
	sort.Strings(keys)
	return keys
}

package checkout

import "go-butterflies-checkout/internal/cart"

// ==================== REQUEST STRUCTS ====================

type SetFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
	// Immediate skips the progressive settle/debounce, for blur events.
	Immediate bool `json:"immediate"`
}

type SetFocusRequest struct {
	Focused bool `json:"focused"`
}

type JumpRequest struct {
	Step string `json:"step" binding:"required"`
}

// GestureRequest carries a completed swipe. DeltaX has no required tag on
// purpose: zero is a legitimate drag that classifies as a no-op.
type GestureRequest struct {
	DeltaX        float64 `json:"deltaX"`
	DurationMs    float64 `json:"durationMs"`
	ReducedMotion bool    `json:"reducedMotion"`
}

// ==================== RESPONSE STRUCTS ====================

type SessionResponse struct {
	SessionID      string              `json:"sessionId"`
	Step           string              `json:"step"`
	StepIndex      int                 `json:"stepIndex"`
	CompletedSteps []string            `json:"completedSteps"`
	Fields         map[string]string   `json:"fields"`
	Errors         map[string]string   `json:"errors"`
	FormError      string              `json:"formError,omitempty"`
	PaymentMethod  string              `json:"paymentMethod"`
	Submitted      bool                `json:"submitted"`
	OrderNumber    string              `json:"orderNumber,omitempty"`
	Totals         cart.TotalsResponse `json:"totals"`
}

type FieldFeedbackResponse struct {
	Field      string `json:"field"`
	Superseded bool   `json:"superseded,omitempty"`
	IsValid    bool   `json:"isValid"`
	Error      string `json:"error,omitempty"`
	Warning    string `json:"warning,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	// ShowError gates inline display: errors only surface for touched
	// fields.
	ShowError bool `json:"showError"`
}

type TransitionResponse struct {
	Moved     bool   `json:"moved"`
	From      string `json:"from"`
	Step      string `json:"step"`
	StepIndex int    `json:"stepIndex"`
	// Ignored marks gesture input dropped while a field held focus.
	Ignored bool `json:"ignored,omitempty"`
	// Haptic asks the client for a haptic pulse after a successful gesture
	// transition; suppressed under reduced motion.
	Haptic  bool              `json:"haptic,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Message string            `json:"message,omitempty"`
}

type SubmissionResponse struct {
	Success     bool                `json:"success"`
	OrderNumber string              `json:"orderNumber,omitempty"`
	Message     string              `json:"message,omitempty"`
	Totals      cart.TotalsResponse `json:"totals"`
}

package analytics

import "time"

// Event categories and actions emitted by the checkout flow.
const (
	CategoryCheckout = "checkout"

	ActionStepCompleted     = "step_completed"
	ActionStepFailed        = "step_failed"
	ActionStepBack          = "step_back"
	ActionStepJump          = "step_jump"
	ActionGestureNavigation = "gesture_navigation"
	ActionOrderSubmitted    = "order_submitted"
	ActionOrderFailed       = "order_failed"
)

// StepEventProps is the payload for every step transition attempt, success
// or failure. FailedFields is only populated on failures.
type StepEventProps struct {
	Step         string   `json:"step"`
	StepIndex    int      `json:"stepIndex"`
	TimeInStepMs int64    `json:"timeInStepMs"`
	CartValue    float64  `json:"cartValue"`
	FailedFields []string `json:"failedFields,omitempty"`
}

// OrderEventProps is the payload for submission outcomes.
type OrderEventProps struct {
	OrderNumber string  `json:"orderNumber,omitempty"`
	CartValue   float64 `json:"cartValue"`
	ItemCount   int     `json:"itemCount"`
	PromoCode   string  `json:"promoCode,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}

// envelope is the wire shape written to the events topic.
type envelope struct {
	Category  string    `json:"category"`
	Action    string    `json:"action"`
	Value     int64     `json:"value"`
	Props     any       `json:"props"`
	EmittedAt time.Time `json:"emittedAt"`
}

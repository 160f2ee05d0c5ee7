package checkout

// Step is one stage of the checkout flow. The three form steps are strictly
// ordered; confirmation is the post-submission state outside the sequence.
type Step string

const (
	StepShipping     Step = "shipping"
	StepPayment      Step = "payment"
	StepReview       Step = "review"
	StepConfirmation Step = "confirmation"
)

var stepOrder = []Step{StepShipping, StepPayment, StepReview}

// Index returns the step's position in the flow, or -1 for steps outside the
// ordered sequence.
func (s Step) Index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

func (s Step) next() (Step, bool) {
	i := s.Index()
	if i < 0 || i+1 >= len(stepOrder) {
		return s, false
	}
	return stepOrder[i+1], true
}

func (s Step) prev() (Step, bool) {
	i := s.Index()
	if i <= 0 {
		return s, false
	}
	return stepOrder[i-1], true
}

// ParseStep resolves a client-provided step name.
func ParseStep(raw string) (Step, bool) {
	for _, step := range stepOrder {
		if string(step) == raw {
			return step, true
		}
	}
	return "", false
}

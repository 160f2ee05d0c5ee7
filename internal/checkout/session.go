package checkout

import (
	"sync"
	"sync/atomic"
	"time"

	"go-butterflies-checkout/internal/validation"
)

// Session is one customer's checkout flow state. The flow-start and
// step-entry timestamps are explicit session state, threaded through from
// creation; nothing ambient or global.
type Session struct {
	ID string

	mu          sync.Mutex
	step        Step
	completed   map[Step]bool
	fields      map[string]string
	fieldErrors map[string]string
	tracker     *validation.Tracker

	// formFocused suppresses gesture navigation while any field has focus;
	// the two input channels are mutually exclusive by policy.
	formFocused bool

	// submitting is atomic: the store sweep reads it under the store mutex,
	// not the session mutex.
	submitting atomic.Bool

	submitted   bool
	orderNumber string
	formError   string

	startedAt   time.Time
	stepEntered time.Time
	lastTouched time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:          id,
		step:        StepShipping,
		completed:   make(map[Step]bool),
		fields:      make(map[string]string),
		fieldErrors: make(map[string]string),
		tracker:     validation.NewTracker(),
		startedAt:   now,
		stepEntered: now,
		lastTouched: now,
	}
}

// enterStep makes a step current and resets its entry timestamp. The timer
// resets on every entry, backward navigation included.
func (s *Session) enterStep(step Step, now time.Time) {
	s.step = step
	s.stepEntered = now
}

func (s *Session) timeInStep(now time.Time) int64 {
	return now.Sub(s.stepEntered).Milliseconds()
}

// visibleErrors filters recorded field errors down to the ones the user
// should see: touched fields only, unless the whole form was submitted.
func (s *Session) visibleErrors() map[string]string {
	visible := make(map[string]string)
	for name, msg := range s.fieldErrors {
		if s.tracker.ShouldShow(name, msg != "") {
			visible[name] = msg
		}
	}
	return visible
}

func (s *Session) completedSteps() []string {
	steps := make([]string, 0, len(s.completed))
	for _, step := range stepOrder {
		if s.completed[step] {
			steps = append(steps, string(step))
		}
	}
	return steps
}

// sessionStore owns checkout sessions in memory, keyed by the storefront
// session id. Expired sessions are swept lazily on access.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func newSessionStore(ttl time.Duration, now func() time.Time) *sessionStore {
	return &sessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      now,
	}
}

func (st *sessionStore) get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if ok {
		sess.lastTouched = st.now()
	}
	return sess, ok
}

func (st *sessionStore) getOrCreate(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sweepLocked()

	if sess, ok := st.sessions[id]; ok {
		sess.lastTouched = st.now()
		return sess, false
	}
	sess := newSession(id, st.now())
	st.sessions[id] = sess
	return sess, true
}

func (st *sessionStore) sweepLocked() {
	if st.ttl <= 0 {
		return
	}
	cutoff := st.now().Add(-st.ttl)
	for id, sess := range st.sessions {
		if sess.lastTouched.Before(cutoff) && !sess.submitting.Load() {
			delete(st.sessions, id)
		}
	}
}

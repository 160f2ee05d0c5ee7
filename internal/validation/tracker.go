package validation

import "sync"

// Tracker records which fields the user has interacted with. Errors are only
// surfaced for touched fields, except after TouchAll (the whole-form
// submission path, where a user may never have focused a failing field).
type Tracker struct {
	mu      sync.Mutex
	touched map[string]bool
	all     bool
}

func NewTracker() *Tracker {
	return &Tracker{touched: make(map[string]bool)}
}

func (t *Tracker) Touch(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touched[name] = true
}

func (t *Tracker) TouchAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.all = true
}

func (t *Tracker) IsTouched(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.all || t.touched[name]
}

// ShouldShow gates error visibility: a field's error is user-visible only
// when the field actually has an error and has been touched.
func (t *Tracker) ShouldShow(name string, hasError bool) bool {
	return hasError && t.IsTouched(name)
}

// Reset clears all interaction state, for a fresh form.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touched = make(map[string]bool)
	t.all = false
}

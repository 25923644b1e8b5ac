package validation

// FieldState tracks the per-field validation lifecycle: fields start
// untouched, become touched on blur, and are re-validated on every change
// once touched. Submit always validates the whole form regardless of state.
type FieldState int

const (
	Untouched FieldState = iota
	Touched
	Validated
)

// TouchTracker holds the field states for one form instance.
type TouchTracker struct {
	states map[string]FieldState
}

// NewTouchTracker returns a tracker with every field untouched.
func NewTouchTracker() *TouchTracker {
	return &TouchTracker{states: make(map[string]FieldState)}
}

// Blur marks a field as touched. Already-validated fields stay validated.
func (t *TouchTracker) Blur(field string) {
	if t.states[field] == Untouched {
		t.states[field] = Touched
	}
}

// Change records an edit; a touched field moves to validated, meaning its
// error should be recomputed on each subsequent change.
func (t *TouchTracker) Change(field string) {
	if t.states[field] != Untouched {
		t.states[field] = Validated
	}
}

// ShouldValidate reports whether live validation applies to the field.
// Untouched fields stay quiet until blur so half-typed values don't flag.
func (t *TouchTracker) ShouldValidate(field string) bool {
	return t.states[field] != Untouched
}

// State returns the current state of a field.
func (t *TouchTracker) State(field string) FieldState {
	return t.states[field]
}

package internal

// Tracker holds the currently computing consumer for one cooperative thread.
// Exactly one consumer may be mid-computation at a time; nested computations
// save and restore the slot around the inner run.
type Tracker struct {
	tracking bool

	current consumer
}

func NewTracker() *Tracker {
	return &Tracker{
		tracking: true,
	}
}

// RunWithConsumer installs c as the active consumer for the duration of fn,
// restoring the previous consumer on every exit path. Passing nil runs fn
// with no active consumer (reads track nothing, writes are unrestricted).
func (t *Tracker) RunWithConsumer(c consumer, fn func()) {
	prev := t.current
	prevTracking := t.tracking

	t.current = c
	t.tracking = true

	defer func() {
		t.current = prev
		t.tracking = prevTracking
	}()

	fn()
}

// RunUntracked disables dependency registration for the duration of fn. The
// active consumer stays installed, so write restrictions still apply.
func (t *Tracker) RunUntracked(fn func()) {
	prev := t.tracking
	t.tracking = false
	defer func() { t.tracking = prev }()

	fn()
}

func (t *Tracker) ShouldTrack() bool {
	return t.current != nil && t.tracking
}

package internal

// Batcher defers effect dispatch while a batch is open so that a group of
// writes produces at most one re-run per effect.
type Batcher struct {
	// each nested batch increases the depth by 1
	// if depth > 0, effect dispatch is queued until the outermost batch completes
	depth int

	pending []*Effect
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth: 0,
	}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 && onComplete != nil {
			onComplete()
		}
	}()

	fn()
}

func (b *Batcher) enqueue(e *Effect) {
	b.pending = append(b.pending, e)
}

func (b *Batcher) drain() []*Effect {
	pending := b.pending
	b.pending = nil
	return pending
}

func (r *Runtime) NewBatch(fn func()) {
	r.batcher.Batch(fn, r.flushEffects)
}

// flushEffects dispatches every effect invalidated during the batch. Effects
// invalidated by their own dispatch run immediately (the batch is closed).
//
// A panicking dispatch propagates to the batch caller, but must not strand
// the effects still queued behind it: their scheduled latch is released so
// the next write reschedules them.
func (r *Runtime) flushEffects() {
	for {
		pending := r.batcher.drain()
		if len(pending) == 0 {
			return
		}

		next := 0
		func() {
			defer func() {
				if p := recover(); p != nil {
					for _, e := range pending[next+1:] {
						e.scheduled.Store(false)
					}
					for _, e := range r.batcher.drain() {
						e.scheduled.Store(false)
					}
					panic(p)
				}
			}()

			for ; next < len(pending); next++ {
				pending[next].dispatch()
			}
		}()
	}
}

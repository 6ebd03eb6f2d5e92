package app

// ReadySignal is a one-shot latch. It becomes resolved at most once; handles
// taken before resolution complete when Resolve is called, and handles taken
// afterwards complete immediately.
//
// ReadySignal must be driven from the loop goroutine. The returned channels
// may be awaited from anywhere.
type ReadySignal struct {
	resolved bool
	waiters  []chan struct{}
}

// NewReadySignal creates an unresolved signal.
func NewReadySignal() *ReadySignal {
	return &ReadySignal{}
}

// Resolved reports whether the signal has fired.
func (s *ReadySignal) Resolved() bool {
	return s.resolved
}

// Resolve fires the signal, releasing every pending handle. Only the first
// call has any effect.
func (s *ReadySignal) Resolve() {
	if s.resolved {
		return
	}
	s.resolved = true
	for _, w := range s.waiters {
		close(w)
	}
	s.waiters = nil
}

// Handle returns a channel that is closed when the signal resolves. When the
// signal has already resolved the channel is closed before return, so a
// receive completes on the next scheduling opportunity.
func (s *ReadySignal) Handle() <-chan struct{} {
	ch := make(chan struct{})
	if s.resolved {
		close(ch)
		return ch
	}
	s.waiters = append(s.waiters, ch)
	return ch
}

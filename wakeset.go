package spin

import "sync"

// A WakeSet collects the wakers of suspended tasks so that an event
// source can wake them all at once. It is the bridge between the
// executor's single-threaded drive path and event sources living on
// other goroutines.
//
// The zero WakeSet is ready to use. Add and Wake are safe for
// concurrent use. A WakeSet is itself a [Waker].
type WakeSet struct {
	mu     sync.Mutex
	wakers []Waker
}

// Add registers w to be woken on the next Wake. Registrations are
// one-shot; a task that suspends again must re-register.
func (s *WakeSet) Add(w Waker) {
	s.mu.Lock()
	s.wakers = append(s.wakers, w)
	s.mu.Unlock()
}

// Wake wakes every registered waker and empties the set.
func (s *WakeSet) Wake() {
	s.mu.Lock()
	wakers := s.wakers
	s.wakers = nil
	s.mu.Unlock()

	for _, w := range wakers {
		w.Wake()
	}
}

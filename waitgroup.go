package spin

// A WaitGroup is a counter gate for tasks: the job returned by Wait
// completes once the counter reaches zero.
//
// Unlike sync.WaitGroup, the counter is not synchronized; Add and Done
// belong to the goroutine driving the Core. Only the wakes a WaitGroup
// issues cross goroutine boundaries safely.
type WaitGroup struct {
	n       int
	waiters WakeSet
}

// Add adds delta, which may be negative, to the counter. If the counter
// becomes zero, every waiter is woken. If the counter goes negative,
// Add panics.
func (wg *WaitGroup) Add(delta int) {
	wg.n += delta
	if wg.n < 0 {
		panic("spin: negative WaitGroup counter")
	}
	if wg.n == 0 && delta != 0 {
		wg.waiters.Wake()
	}
}

// Done decrements the counter by one.
func (wg *WaitGroup) Done() {
	wg.Add(-1)
}

// Wait returns a [Job] that completes once the counter is zero.
func (wg *WaitGroup) Wait() JobFunc {
	return func(w Waker) bool {
		if wg.n != 0 {
			wg.waiters.Add(w)
			return false
		}
		return true
	}
}

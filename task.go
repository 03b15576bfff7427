package spin

// A Waker wakes a suspended task, scheduling it for another poll.
//
// A task receives a Waker every time it is polled. If the task cannot
// complete yet, it must hand the Waker to whatever will know when the
// task can make progress, possibly on another goroutine.
//
// Wake is safe for concurrent use. Waking a task whose slot has already
// been freed is a no-op. Multiple wakes between two polls coalesce: the
// task is guaranteed at least one subsequent poll, not one per wake.
type Waker interface {
	Wake()
}

// A Task is a unit of cooperative work that eventually resolves to
// a value of type T or an error.
//
// Poll runs the task until it either suspends or resolves. It returns
// done == false when the task is not ready yet; the task must then
// arrange for w to be triggered later. Once done is true, the task has
// resolved to v or err and must not be polled again.
type Task[T any] interface {
	Poll(w Waker) (v T, done bool, err error)
}

// A Job is a background task. It resolves to no value and cannot fail.
//
// Poll runs the job until it either suspends or completes, and reports
// whether the job has completed. Any real result a job computes must
// leave through other means, typically a [DropOff] cell.
type Job interface {
	Poll(w Waker) (done bool)
}

// A Cleanup is implemented by jobs that need to release resources when
// they are dropped without completing: when their [Core] is closed, or
// when they are spawned through a [Handle] whose Core is already gone.
//
// Cleanup is never called for a job that completed normally.
type Cleanup interface {
	Cleanup()
}

// TaskFunc is an adapter to allow the use of ordinary functions as tasks.
type TaskFunc[T any] func(w Waker) (T, bool, error)

// Poll calls f(w).
func (f TaskFunc[T]) Poll(w Waker) (T, bool, error) { return f(w) }

// JobFunc is an adapter to allow the use of ordinary functions as jobs.
type JobFunc func(w Waker) bool

// Poll calls f(w).
func (f JobFunc) Poll(w Waker) bool { return f(w) }

// Completed returns a [Task] that resolves to v the first time it is
// polled.
func Completed[T any](v T) Task[T] {
	return TaskFunc[T](func(Waker) (T, bool, error) {
		return v, true, nil
	})
}

// Failed returns a [Task] that resolves to err the first time it is
// polled.
func Failed[T any](err error) Task[T] {
	return TaskFunc[T](func(Waker) (T, bool, error) {
		var zero T
		return zero, true, err
	})
}

// Do returns a [Job] that calls f once, and then completes.
func Do(f func()) Job {
	return JobFunc(func(Waker) bool {
		f()
		return true
	})
}

// Never returns a [Job] that never completes and never wakes.
// It suspends forever after its initial poll.
func Never() Job {
	return JobFunc(func(Waker) bool {
		return false
	})
}

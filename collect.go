package spin

import (
	"errors"

	"github.com/ygrebnov/errorc"
)

// outcome carries a resolved task's value or error through a drop-off
// cell.
type outcome[T any] struct {
	value T
	err   error
}

const (
	futureStarting = iota
	futureWaiting
	futureInvalid
)

// A Future is a pollable object yielding the eventual result of a task
// that runs in the background. See [Collect].
//
// A Future may only be polled by the goroutine driving the Core it was
// collected on. Once it resolves, it must not be polled again.
type Future[T any] struct {
	state  int
	handle Handle
	task   Task[T]
	recv   *Receiver[outcome[T]]
}

// Collect wraps t for background execution on h's Core and returns a
// [Future] that resolves to t's eventual result.
//
// The first poll of the Future spawns t, wrapped in a collector job,
// through h. When t resolves, the collector drops the outcome off for
// the Future and wakes it. If h's Core is already gone, the spawn is
// discarded; the Future then observes permanent absence and panics,
// see [Future.Poll].
func Collect[T any](h Handle, t Task[T]) *Future[T] {
	return &Future[T]{state: futureStarting, handle: h, task: t}
}

// Poll implements [Task].
//
// Poll panics with an error wrapping [ErrCollectorLost] if the
// collector job was dropped before delivering an outcome, e.g. because
// the Core was closed while the Future was still waiting. This means a
// broken invariant, not a task failure; the current operation must be
// aborted, not retried.
func (f *Future[T]) Poll(w Waker) (T, bool, error) {
	var zero T
	switch f.state {
	case futureStarting:
		f.state = futureInvalid
		sender, recv := DropOff[outcome[T]]()
		f.handle.Spawn(&collector[T]{task: f.task, sender: sender, waker: w})
		f.task = nil
		f.recv = recv
		f.state = futureWaiting
		return zero, false, nil

	case futureWaiting:
		f.state = futureInvalid
		res, err := f.recv.Take()
		switch {
		case err == nil:
			// Terminal. The state stays invalid so that a poll
			// after resolution fails loudly.
			f.recv = nil
			return res.value, true, res.err
		case errors.Is(err, ErrEmpty):
			f.state = futureWaiting // spurious wake
			return zero, false, nil
		default:
			panic(errorc.With(ErrCollectorLost, errorc.String("state", "waiting")))
		}

	default:
		panic("spin: Future polled in invalid state")
	}
}

// A collector runs a collected task as a background job, satisfying the
// [Job] contract: it completes with no value and cannot fail. The
// wrapped task's outcome leaves through the drop-off cell instead.
type collector[T any] struct {
	task   Task[T]
	sender *Sender[outcome[T]]
	waker  Waker
}

func (c *collector[T]) Poll(w Waker) bool {
	s := c.sender
	if s == nil {
		panic("spin: collector polled after completion")
	}
	v, done, err := c.task.Poll(w)
	if !done {
		return false
	}
	c.sender = nil
	c.task = nil
	// A failed delivery means the collecting side stopped caring.
	_ = s.Send(outcome[T]{value: v, err: err})
	c.waker.Wake()
	return true
}

// Cleanup closes the sender when the collector is dropped before
// completing, so a waiting Future observes permanent absence instead of
// waiting forever.
func (c *collector[T]) Cleanup() {
	if s := c.sender; s != nil {
		c.sender = nil
		s.Close()
	}
}

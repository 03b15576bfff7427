package spin

import (
	"math"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// Task identifiers are non-negative integers: 0 is the main task bound
// by a [Runner]; n > 0 is the spawned job in arena slot n-1.
const mainID = 0

type spawned struct {
	job Job
	tk  *ticket
}

// A Core is the task executor. It owns a ready queue of task
// identifiers and a slot store of spawned jobs, and makes progress only
// when driven, through [Core.Turn], [Run], a [Runner], or by being
// polled as a [Job] inside another Core.
//
// The zero Core is an empty executor ready to use. A Core must not be
// copied after first use.
//
// A Core may only be driven by one goroutine at a time. Driving from
// two goroutines at once is a bug; the Core detects it and panics.
type Core struct {
	rq     readyQueue
	jobs   arena[*spawned]
	driver atomic.Int64
	closed bool
}

// Handle returns a [Handle] to c, which can be used to spawn jobs.
func (c *Core) Handle() Handle {
	return Handle{c}
}

// enterDrive asserts that no other goroutine is currently driving c.
// It reports whether this call claimed the drive path; the claim is not
// repeated when the calling goroutine already holds it further up the
// stack.
func (c *Core) enterDrive() bool {
	gid := goid.Get()
	if c.driver.CompareAndSwap(0, gid) {
		return true
	}
	if c.driver.Load() != gid {
		panic("spin: Core driven by multiple goroutines at once")
	}
	return false
}

func (c *Core) leaveDrive(claimed bool) {
	if claimed {
		c.driver.Store(0)
	}
}

type stepOutcome int

const (
	stepNoProgress stepOutcome = iota // queue empty; nothing to poll this turn
	stepIdle                          // queue empty, no jobs, no main: fully done
	stepPolled                        // serviced one queued entry
	stepMainDone                      // the bound main task resolved
)

// step performs one scheduling step. pollMain polls the bound main task
// and reports its completion; it is nil when no main task is bound.
func (c *Core) step(pollMain func() bool) stepOutcome {
	claimed := c.enterDrive()
	defer c.leaveDrive(claimed)

	id, ok := c.rq.pop()
	if !ok {
		if pollMain == nil && c.jobs.Len() == 0 {
			return stepIdle
		}
		return stepNoProgress
	}

	if id == mainID {
		if pollMain == nil {
			// A stale entry left behind by an abandoned Runner.
			// Drop it.
			return stepPolled
		}
		if pollMain() {
			return stepMainDone
		}
		return stepPolled
	}

	slot := id - 1

	sp, ok := c.jobs.Take(slot)
	if !ok || sp == nil {
		// Nothing occupies this slot anymore; drop the entry.
		return stepPolled
	}

	// The slot stays allocated but empty while the job runs, so the
	// job cannot observe or mutate its own slot through a reentrant
	// spawn or wake.
	if sp.job.Poll(sp.tk) {
		sp.tk.deactivate()
		c.jobs.Remove(slot)
	} else {
		c.jobs.Put(slot, sp)
	}
	return stepPolled
}

// TurnResult reports the outcome of a single turn.
type TurnResult int

const (
	// NoProgress means the ready queue was empty and nothing was
	// polled, while work still remains: a suspended job, or the bound
	// main task, is waiting on a wake.
	NoProgress TurnResult = iota

	// Polled means one queued entry was serviced. Servicing includes
	// dropping a stale entry; a Polled turn does not imply any task
	// advanced.
	Polled

	// Done means the drive is finished: for [Core.Turn], the Core is
	// idle (empty queue and no jobs remain); for [Runner.Turn], the
	// main task resolved.
	Done
)

// Turn performs one bare scheduling step, driving background jobs only.
// It returns Done once the ready queue is empty and no jobs remain.
func (c *Core) Turn() TurnResult {
	switch c.step(nil) {
	case stepIdle:
		return Done
	case stepNoProgress:
		return NoProgress
	default:
		return Polled
	}
}

// Poll implements [Job], allowing a Core to be spawned into another
// Core. Each poll performs one bare turn; a turn that does not finish
// the Core re-triggers w, so a nested Core busy-waits instead of
// leaving its outer executor permanently blocked.
func (c *Core) Poll(w Waker) bool {
	if c.Turn() == Done {
		return true
	}
	w.Wake()
	return false
}

// Close drops every job c still holds, without waking anyone, retracts
// their queued entries, and turns all outstanding handles into no-ops.
// Jobs implementing [Cleanup] get their Cleanup called. Close is
// idempotent.
func (c *Core) Close() {
	if c.closed {
		return
	}

	claimed := c.enterDrive()
	defer c.leaveDrive(claimed)

	c.closed = true

	for slot, sp := range c.jobs.All() {
		if sp != nil {
			sp.tk.deactivate()
			if cl, ok := sp.job.(Cleanup); ok {
				cl.Cleanup()
			}
		}
		c.jobs.Remove(slot)
	}

	c.rq.mu.Lock()
	c.rq.q = indexqueue{}
	c.rq.mu.Unlock()
}

// A Handle is a cloneable, non-owning reference to a [Core], used to
// spawn jobs from anywhere on the drive goroutine, including from
// within a poll of another task on the same Core.
//
// Handles are values; copies refer to the same Core. A Handle is not
// safe for concurrent use: spawning belongs to the drive goroutine.
// Crossing goroutines is what [Waker] and [WakeSet] are for.
type Handle struct {
	core *Core
}

// Spawn adds j to the referenced Core and schedules it for an initial
// poll. If the Core is gone, j is silently discarded and never polled;
// this is not an error. A discarded job implementing [Cleanup] gets its
// Cleanup called.
//
// Spawning from within a poll is allowed; the new job becomes visible
// to subsequent dequeues, possibly within the same run loop.
func (h Handle) Spawn(j Job) {
	c := h.core
	if c == nil || c.closed {
		if cl, ok := j.(Cleanup); ok {
			cl.Cleanup()
		}
		return
	}

	slot := c.jobs.Reserve()
	if slot >= math.MaxInt-1 {
		panic("spin: too many spawned jobs")
	}

	// The ticket construction triggers the initial wake before the
	// slot is populated; nothing dequeues in between because spawning
	// happens on the drive goroutine.
	c.jobs.Put(slot, &spawned{job: j, tk: newTicket(slot+1, &c.rq)})
}

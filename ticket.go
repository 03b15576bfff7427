package spin

import "sync"

// readyQueue is the shared, mutex-guarded ready queue of a Core.
// Tickets reference it directly, so a wake arriving from another
// goroutine never touches the rest of the Core.
type readyQueue struct {
	mu sync.Mutex
	q  indexqueue
}

func (rq *readyQueue) push(id int) {
	rq.mu.Lock()
	rq.q.Push(id)
	rq.mu.Unlock()
}

func (rq *readyQueue) pop() (int, bool) {
	rq.mu.Lock()
	id, ok := rq.q.Pop()
	rq.mu.Unlock()
	return id, ok
}

func (rq *readyQueue) remove(id int) {
	rq.mu.Lock()
	rq.q.Remove(id)
	rq.mu.Unlock()
}

// A ticket is a task's handle for re-entering the ready queue: it is
// the [Waker] every poll on this executor receives. Wake may be called
// from any goroutine.
//
// Lock order is ticket state before queue state. The drive path only
// ever takes the queue lock.
type ticket struct {
	mu sync.Mutex
	id int
	rq *readyQueue // nil once deactivated
}

// newTicket creates a ticket for id and triggers it, guaranteeing the
// owning task an initial poll.
func newTicket(id int, rq *readyQueue) *ticket {
	t := &ticket{id: id, rq: rq}
	t.Wake()
	return t
}

// Wake enqueues the owning identifier. Wakes coalesce: while the
// identifier is already queued, Wake is a no-op. Waking a deactivated
// ticket is a no-op, too.
func (t *ticket) Wake() {
	t.mu.Lock()
	if rq := t.rq; rq != nil {
		rq.push(t.id)
	}
	t.mu.Unlock()
}

// deactivate retracts any queued entry for the owning identifier and
// makes the ticket permanently inert. It is called at the moment the
// owning slot is freed, so a recycled slot can never be reached through
// an old ticket.
func (t *ticket) deactivate() {
	t.mu.Lock()
	if rq := t.rq; rq != nil {
		t.rq = nil
		rq.remove(t.id)
	}
	t.mu.Unlock()
}

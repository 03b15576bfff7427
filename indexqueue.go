package spin

// An indexqueue is a FIFO of small non-negative integers with set
// semantics: pushing an integer already in the queue is a no-op, so an
// integer occurs at most once at any instant.
//
// The queue is a doubly-linked list threaded through a slice indexed by
// the integers themselves, which makes Push, Pop and Remove all O(1).
// Links store index+1 so that the zero indexqueue is ready to use.
type indexqueue struct {
	head, tail int // index+1; 0 when the queue is empty
	links      []iqlink
}

type iqlink struct {
	prev, next int // index+1; 0 at either end
	queued     bool
}

func (q *indexqueue) Empty() bool {
	return q.head == 0
}

func (q *indexqueue) Has(i int) bool {
	return i < len(q.links) && q.links[i].queued
}

// Push appends i to the back of the queue. If i is already queued,
// Push is a no-op; i keeps its position.
func (q *indexqueue) Push(i int) {
	for len(q.links) <= i {
		q.links = append(q.links, iqlink{})
	}

	l := &q.links[i]
	if l.queued {
		return
	}
	l.queued = true
	l.next = 0
	l.prev = q.tail

	if q.tail != 0 {
		q.links[q.tail-1].next = i + 1
	} else {
		q.head = i + 1
	}
	q.tail = i + 1
}

// Pop removes and returns the front of the queue.
func (q *indexqueue) Pop() (int, bool) {
	if q.head == 0 {
		return 0, false
	}
	i := q.head - 1
	q.unlink(i)
	return i, true
}

// Remove removes i from the queue, wherever it is. If i is not queued,
// Remove is a no-op.
func (q *indexqueue) Remove(i int) {
	if !q.Has(i) {
		return
	}
	q.unlink(i)
}

func (q *indexqueue) unlink(i int) {
	l := q.links[i]

	if l.prev != 0 {
		q.links[l.prev-1].next = l.next
	} else {
		q.head = l.next
	}

	if l.next != 0 {
		q.links[l.next-1].prev = l.prev
	} else {
		q.tail = l.prev
	}

	q.links[i] = iqlink{}
}

package spin

// cell is the value slot a drop-off pair shares.
type cell[T any] struct {
	value      T
	full       bool
	senderGone bool
	recvGone   bool
}

// A Sender is the sending half of a drop-off cell. It holds a
// non-owning reference to the cell: if the receiving half is closed
// first, Send fails and the value stays with the caller.
type Sender[T any] struct {
	c *cell[T]
}

// A Receiver is the receiving half, and the sole owner, of a drop-off
// cell.
type Receiver[T any] struct {
	c *cell[T]
}

// DropOff creates a single-use, single-value cell for moving a result
// between two tasks on the same executor, and returns its two halves.
//
// A drop-off cell is not safe for concurrent use; it assumes a single
// scheduling goroutine.
func DropOff[T any]() (*Sender[T], *Receiver[T]) {
	c := new(cell[T])
	return &Sender[T]{c}, &Receiver[T]{c}
}

// Send stores v in the cell and reports whether it was accepted. If the
// receiving half has already been closed, Send reports false and the
// value stays with the caller, unconsumed; it is never silently
// dropped.
//
// Send consumes the Sender. Sending on a spent or closed Sender panics.
func (s *Sender[T]) Send(v T) bool {
	c := s.c
	if c == nil {
		panic("spin: send on a spent Sender")
	}
	s.c = nil
	c.senderGone = true
	if c.recvGone {
		return false
	}
	c.value, c.full = v, true
	return true
}

// Close destroys the sending half without sending, making a later Take
// on the receiving half report [ErrSenderGone]. Closing a spent Sender
// is a no-op.
func (s *Sender[T]) Close() {
	if c := s.c; c != nil {
		s.c = nil
		c.senderGone = true
	}
}

// Take attempts to take the value out of the cell.
//
// On success the value is returned with a nil error and the Receiver is
// consumed; the value can never be observed a second time. With no
// value present, Take reports [ErrEmpty] while the sender is still
// alive — the Receiver stays usable for a later retry — or
// [ErrSenderGone] once the sender was destroyed without sending, which
// is permanent and consumes the Receiver.
//
// Taking from a consumed or closed Receiver panics.
func (r *Receiver[T]) Take() (T, error) {
	var zero T
	c := r.c
	if c == nil {
		panic("spin: take on a spent Receiver")
	}
	if c.full {
		v := c.value
		c.value, c.full = zero, false
		c.recvGone = true
		r.c = nil
		return v, nil
	}
	if c.senderGone {
		r.c = nil
		return zero, ErrSenderGone
	}
	return zero, ErrEmpty
}

// Close destroys the receiving half, making a later Send return the
// value to its caller. Closing a spent Receiver is a no-op.
func (r *Receiver[T]) Close() {
	if c := r.c; c != nil {
		r.c = nil
		c.recvGone = true
	}
}

package spin

import "errors"

const namespace = "spin"

var (
	// ErrEmpty is reported by [Receiver.Take] when no value has been
	// sent yet but the sender is still alive. The receiver remains
	// usable; taking again later may succeed.
	ErrEmpty = errors.New(namespace + ": no value sent yet")

	// ErrSenderGone is reported by [Receiver.Take] when the sender was
	// destroyed without sending. No value can ever arrive; the receiver
	// is consumed.
	ErrSenderGone = errors.New(namespace + ": sender gone without sending")

	// ErrCollectorLost reports that the background job backing a
	// [Future] was dropped before it could deliver an outcome, e.g.
	// because its Core was closed. This is an internal-invariant
	// failure; [Future.Poll] panics with an error wrapping it.
	ErrCollectorLost = errors.New(namespace + ": collector job dropped before completing")
)

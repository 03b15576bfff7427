package spin

import "iter"

// An arena is a slot store with index recycling. Slots are allocated
// empty, filled, temporarily emptied again for the duration of a poll,
// and eventually freed for reuse by a later allocation.
type arena[E any] struct {
	slots []arenaSlot[E]
	free  []int
	count int
}

type arenaSlot[E any] struct {
	value E
	used  bool
}

// Reserve allocates a slot and returns its index. The slot counts as
// occupied from now until Remove; its value is the zero value until Put.
func (a *arena[E]) Reserve() int {
	a.count++
	if n := len(a.free); n != 0 {
		i := a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[i].used = true
		return i
	}
	a.slots = append(a.slots, arenaSlot[E]{used: true})
	return len(a.slots) - 1
}

// Put stores v in slot i.
func (a *arena[E]) Put(i int, v E) {
	a.slots[i].value = v
}

// Take removes and returns the value of slot i, leaving the slot
// occupied but empty. ok is false if i does not address an occupied
// slot.
func (a *arena[E]) Take(i int) (v E, ok bool) {
	if i >= len(a.slots) || !a.slots[i].used {
		return v, false
	}
	s := &a.slots[i]
	var zero E
	v, s.value = s.value, zero
	return v, true
}

// Remove frees slot i for reuse by a later Reserve. Removing a vacant
// slot is a no-op.
func (a *arena[E]) Remove(i int) {
	if i >= len(a.slots) || !a.slots[i].used {
		return
	}
	a.slots[i] = arenaSlot[E]{}
	a.free = append(a.free, i)
	a.count--
}

// Len returns the number of occupied slots.
func (a *arena[E]) Len() int {
	return a.count
}

// All iterates over the occupied slots. Removing the yielded slot
// during iteration is allowed.
func (a *arena[E]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		for i := range a.slots {
			if a.slots[i].used && !yield(i, a.slots[i].value) {
				return
			}
		}
	}
}

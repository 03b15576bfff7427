package spin_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b97tsk/spin"
)

// mailbox delivers string messages between tasks. A receiver that finds
// it empty registers its waker; put wakes all registered receivers.
// Safe for concurrent use, so messages may arrive from other goroutines.
type mailbox struct {
	mu   sync.Mutex
	msgs []string
	ws   spin.WakeSet
}

func (m *mailbox) put(msg string) {
	m.mu.Lock()
	m.msgs = append(m.msgs, msg)
	m.mu.Unlock()
	m.ws.Wake()
}

func (m *mailbox) get(w spin.Waker) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.msgs) == 0 {
		m.ws.Add(w)
		return "", false
	}
	msg := m.msgs[0]
	m.msgs = m.msgs[1:]
	return msg, true
}

func TestIdleCompletion(t *testing.T) {
	var c spin.Core
	assert.Equal(t, spin.Done, c.Turn())
	assert.Equal(t, spin.Done, c.Turn())
}

func TestSpawnGetsInitialPoll(t *testing.T) {
	var c spin.Core

	polled := false
	c.Handle().Spawn(spin.Do(func() { polled = true }))

	assert.Equal(t, spin.Polled, c.Turn())
	assert.True(t, polled)
	assert.Equal(t, spin.Done, c.Turn())
}

func TestWakeCoalescing(t *testing.T) {
	var c spin.Core

	var w spin.Waker
	polls := 0
	c.Handle().Spawn(spin.JobFunc(func(wk spin.Waker) bool {
		polls++
		w = wk
		return false
	}))

	require.Equal(t, spin.Polled, c.Turn())
	require.Equal(t, 1, polls)

	// Two wakes between polls coalesce into one queued entry.
	w.Wake()
	w.Wake()

	assert.Equal(t, spin.Polled, c.Turn())
	assert.Equal(t, spin.NoProgress, c.Turn())
	assert.Equal(t, 2, polls)
}

func TestRunPropagatesError(t *testing.T) {
	errBoom := errors.New("boom")

	var c spin.Core
	_, err := spin.Run(&c, spin.Failed[int](errBoom))
	assert.ErrorIs(t, err, errBoom)
}

func TestRunOutlivesBackgroundJob(t *testing.T) {
	var c spin.Core
	c.Handle().Spawn(spin.Never())

	v, err := spin.Run(&c, spin.Completed(42))
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	// The job is still parked; only closing the Core drops it.
	assert.Equal(t, spin.NoProgress, c.Turn())
	c.Close()
	assert.Equal(t, spin.Done, c.Turn())
}

func TestSpawnOnDeadCore(t *testing.T) {
	t.Run("closed core", func(t *testing.T) {
		var c spin.Core
		h := c.Handle()
		c.Close()

		polled := false
		h.Spawn(spin.Do(func() { polled = true }))

		assert.Equal(t, spin.Done, c.Turn())
		assert.False(t, polled)
	})

	t.Run("zero handle", func(t *testing.T) {
		var h spin.Handle
		assert.NotPanics(t, func() { h.Spawn(spin.Never()) })
	})
}

type trackedJob struct {
	cleaned *bool
}

func (j trackedJob) Poll(spin.Waker) bool { return false }

func (j trackedJob) Cleanup() { *j.cleaned = true }

func TestCleanupOnClose(t *testing.T) {
	var c spin.Core

	cleaned := false
	c.Handle().Spawn(trackedJob{&cleaned})
	require.Equal(t, spin.Polled, c.Turn())

	c.Close()
	assert.True(t, cleaned)
}

func TestCleanupOnDeadSpawn(t *testing.T) {
	var c spin.Core
	h := c.Handle()
	c.Close()

	cleaned := false
	h.Spawn(trackedJob{&cleaned})
	assert.True(t, cleaned)
}

func TestReentrantSpawn(t *testing.T) {
	var c spin.Core
	h := c.Handle()

	ran := false
	h.Spawn(spin.JobFunc(func(spin.Waker) bool {
		h.Spawn(spin.Do(func() { ran = true }))
		return true
	}))

	for c.Turn() != spin.Done {
	}
	assert.True(t, ran)
}

func TestCrossTaskRoundTrip(t *testing.T) {
	mainBox, auxBox := new(mailbox), new(mailbox)

	var c spin.Core
	c.Handle().Spawn(&chatJob{in: auxBox, out: mainBox})

	step := 0
	main := spin.TaskFunc[string](func(w spin.Waker) (string, bool, error) {
		for {
			switch step {
			case 0:
				auxBox.put("hello")
				step = 1
			case 1:
				msg, ok := mainBox.get(w)
				if !ok {
					return "", false, nil
				}
				if msg != "hi" {
					return "", true, fmt.Errorf("got %q, want %q", msg, "hi")
				}
				auxBox.put("goodbye")
				step = 2
			case 2:
				msg, ok := mainBox.get(w)
				if !ok {
					return "", false, nil
				}
				return msg, true, nil
			}
		}
	})

	v, err := spin.Run(&c, main)
	require.NoError(t, err)
	assert.Equal(t, "bye", v)
}

// chatJob answers "hello" with "hi", then "goodbye" with "bye", and
// completes.
type chatJob struct {
	in, out *mailbox
	step    int
}

func (j *chatJob) Poll(w spin.Waker) bool {
	for {
		msg, ok := j.in.get(w)
		if !ok {
			return false
		}
		switch {
		case j.step == 0 && msg == "hello":
			j.out.put("hi")
			j.step = 1
		case j.step == 1 && msg == "goodbye":
			j.out.put("bye")
			return true
		}
	}
}

func TestCrossGoroutineWake(t *testing.T) {
	box := new(mailbox)

	go func() {
		time.Sleep(10 * time.Millisecond)
		box.put("ping")
	}()

	var c spin.Core
	v, err := spin.Run(&c, spin.TaskFunc[string](func(w spin.Waker) (string, bool, error) {
		msg, ok := box.get(w)
		if !ok {
			return "", false, nil
		}
		return msg, true, nil
	}))
	require.NoError(t, err)
	assert.Equal(t, "ping", v)
}

func TestNestedCore(t *testing.T) {
	var inner spin.Core
	ran := false
	inner.Handle().Spawn(spin.Do(func() { ran = true }))

	var outer spin.Core
	outer.Handle().Spawn(&inner)

	for outer.Turn() != spin.Done {
	}
	assert.True(t, ran)
}

func TestConcurrentDrivePanics(t *testing.T) {
	var c spin.Core

	c.Handle().Spawn(spin.JobFunc(func(spin.Waker) bool {
		// The drive path is held by this poll; a second goroutine
		// turning the same Core must fail fast.
		done := make(chan any, 1)
		go func() {
			defer func() { done <- recover() }()
			c.Turn()
		}()
		assert.NotNil(t, <-done)
		return true
	}))

	for c.Turn() != spin.Done {
	}
}

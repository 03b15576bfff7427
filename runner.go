package spin

// A Runner pairs a [Core] with a bound main task, exposing the drive
// loop one turn at a time. See [Bind].
type Runner[T any] struct {
	core  *Core
	task  Task[T]
	tk    *ticket
	value T
	err   error
	done  bool
}

// Bind pairs c with main, returning a [Runner] for driving it.
//
// Any stale queue entry left at the main identifier by a previously
// abandoned Runner is retracted before the fresh main ticket is armed,
// so a new run never starts behind an orphaned entry.
func Bind[T any](c *Core, main Task[T]) *Runner[T] {
	c.rq.remove(mainID)
	return &Runner[T]{core: c, task: main, tk: newTicket(mainID, &c.rq)}
}

// Run drives main on c until it resolves, returning its value or
// propagating its error verbatim. Jobs spawned on c are run as well,
// but may or may not complete before Run returns.
func Run[T any](c *Core, main Task[T]) (T, error) {
	return Bind(c, main).Run()
}

func (r *Runner[T]) pollMain() bool {
	v, done, err := r.task.Poll(r.tk)
	if !done {
		return false
	}
	r.tk.deactivate()
	r.value, r.err, r.done = v, err, true
	r.task = nil
	return true
}

// Turn performs one scheduling step with r's main task bound. It
// returns Done with the main task's outcome once the task resolves;
// r must not be turned again after that.
func (r *Runner[T]) Turn() (T, TurnResult, error) {
	var zero T
	if r.done {
		panic("spin: Runner turned after completion")
	}
	switch r.core.step(r.pollMain) {
	case stepMainDone:
		return r.value, Done, r.err
	case stepNoProgress:
		return zero, NoProgress, nil
	default:
		return zero, Polled, nil
	}
}

// Run loops Turn until the main task resolves. The loop busy-waits:
// a no-progress turn spins instead of blocking, so a wake arriving from
// another goroutine is picked up on a later iteration.
func (r *Runner[T]) Run() (T, error) {
	for {
		if v, res, err := r.Turn(); res == Done {
			return v, err
		}
	}
}

// Poll implements [Task], allowing an executor-plus-main-task pair to
// be embedded as a task inside another Core. Each poll performs one
// turn; a turn that does not resolve the main task re-triggers w, so
// the nested pair busy-waits like a bare [Core] does.
func (r *Runner[T]) Poll(w Waker) (T, bool, error) {
	v, res, err := r.Turn()
	if res == Done {
		return v, true, err
	}
	w.Wake()
	return v, false, nil
}

// Package spin implements a single-threaded busy-wait executor for
// poll-based tasks.
//
// All tasks run cooperatively on the goroutine that drives a [Core];
// no I/O polling is done and no work is distributed across goroutines.
// Progress happens only when the executor is explicitly driven, one turn
// at a time.
//
// # Tasks and Jobs
//
// A [Task] is a unit of cooperative work exposing a repeatable Poll
// operation. Polling either produces the task's final outcome or reports
// that the task is not ready yet. A task that is not ready must arrange
// for the [Waker] it was polled with to be triggered once it can make
// progress; until then, the executor does not poll it again.
//
// A [Job] is a background task. It produces no value and its Poll method
// has no error result, so a job is statically incapable of failing.
// Anything a job computes must leave through a drop-off cell (see
// [DropOff]) or the [Collect] adapter.
//
// # Driving
//
// A [Core] owns a deduplicated FIFO of ready task identifiers and a slot
// store for spawned jobs. [Handle.Spawn] adds a job and guarantees it at
// least one poll. [Run] drives a main task to completion; [Bind] produces
// a [Runner] for driving one turn at a time; [Core.Turn] performs a bare
// turn for background work only.
//
// Driving is busy-wait: an empty ready queue yields a
// no-progress turn instead of blocking, and a Core or Runner embedded as
// a task in another Core re-triggers its own wake on every turn that does
// not complete it. This keeps a nested executor from ever blocking its
// outer drive loop.
//
// # Threads
//
// Exactly one goroutine may drive a Core at a time. The only operations
// that are safe for concurrent use are the wake path ([Waker.Wake] on a
// ticket handed out during a poll) and [WakeSet]: an event source on
// another goroutine may wake a suspended task at any time. Multiple wakes
// of the same task between polls coalesce into a single queued entry.
//
// # No back pressure, no cancellation
//
// Spawning never blocks and nothing bounds the number of spawned jobs.
// There are no timers and no cancellation tokens; closing a Core simply
// drops the jobs it still holds without waking anyone. A job that needs
// to release resources when dropped this way can implement [Cleanup].
package spin

// Package queue implements a multi-producer/multi-consumer work queue: an
// unbounded FIFO with a blocking dequeue and a sentinel-based shutdown
// protocol, since the queue itself exposes no close primitive.
package queue

import (
	"sync"
	"time"

	"github.com/DOCTOR-ANR/ndnperf/internal/wire"
)

// Interest is the opaque handle the Face hands the core: the core only
// ever reads its Name.
type Interest interface {
	Name() wire.Name
}

// Entry pairs an Interest with the monotonic instant it was enqueued. A
// zero-value Entry (Interest == nil) is the shutdown sentinel.
type Entry struct {
	Interest    Interest
	EnqueueTime time.Time
}

// IsSentinel reports whether e is a shutdown sentinel rather than real work.
func (e Entry) IsSentinel() bool {
	return e.Interest == nil
}

// Sentinel is the minimum wake-up the queue can deliver without a native
// close primitive; its name is unused.
var Sentinel = Entry{}

// WorkQueue is an unbounded MPMC FIFO with a blocking dequeue, implemented
// over a mutex-guarded slice and a condition variable rather than a
// fixed-capacity channel: enqueue must always succeed without blocking the
// producer, which a bounded channel cannot guarantee under backpressure.
type WorkQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	entries []Entry
}

func New() *WorkQueue {
	q := &WorkQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Enqueue appends entry and wakes one waiting consumer. Never blocks.
func (q *WorkQueue) Enqueue(entry Entry) {
	q.mu.Lock()
	q.entries = append(q.entries, entry)
	q.mu.Unlock()
	q.cond.Signal()
}

// WaitDequeue blocks until an entry is available, then returns the oldest
// one (FIFO with respect to a single producer).
func (q *WorkQueue) WaitDequeue() Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.entries) == 0 {
		q.cond.Wait()
	}
	entry := q.entries[0]
	q.entries = q.entries[1:]
	return entry
}

// Len returns the current number of queued entries. Diagnostic only; the
// worker protocol never branches on it.
func (q *WorkQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

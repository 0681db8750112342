// Package worker implements the per-packet pipeline: dequeue, build, sign,
// emit, account.
package worker

import (
	"sync/atomic"
	"time"

	"github.com/DOCTOR-ANR/ndnperf/internal/common"
	"github.com/DOCTOR-ANR/ndnperf/internal/face"
	"github.com/DOCTOR-ANR/ndnperf/internal/queue"
	"github.com/DOCTOR-ANR/ndnperf/internal/sign"
	"github.com/DOCTOR-ANR/ndnperf/internal/wire"
)

// Worker owns one Counters and runs the dequeue/build/sign/emit loop until
// it observes the shutdown sentinel with cont == false.
type Worker struct {
	ID int

	queue   *queue.WorkQueue
	cont    *atomic.Bool
	face    face.Face
	signer  *sign.Signer
	content *wire.ContentBlock

	freshnessMillis uint32

	Counters Counters
}

func New(id int, q *queue.WorkQueue, cont *atomic.Bool, f face.Face, signer *sign.Signer, content *wire.ContentBlock, freshnessMillis uint32) *Worker {
	return &Worker{
		ID:              id,
		queue:           q,
		cont:            cont,
		face:            f,
		signer:          signer,
		content:         content,
		freshnessMillis: freshnessMillis,
	}
}

// Run is the worker's main loop. It returns once it dequeues the shutdown
// sentinel with cont observed false.
func (w *Worker) Run() {
	for {
		entry := w.queue.WaitDequeue()
		tDeq := time.Now()

		if !entry.IsSentinel() {
			queued := tDeq.Sub(entry.EnqueueTime).Microseconds()
			w.Counters.QueueMicrosecondsAccum.Add(clampUint32(queued))
		}

		if !w.cont.Load() {
			return
		}
		if entry.IsSentinel() {
			// Woke up for a sentinel that arrived before cont flipped;
			// recheck on the next iteration rather than treating it as work.
			continue
		}

		w.handle(entry, tDeq)
	}
}

func (w *Worker) handle(entry queue.Entry, tDeq time.Time) {
	d := &wire.Data{
		Name:            entry.Interest.Name(),
		FreshnessMillis: w.freshnessMillis,
		Content:         w.content,
	}

	raw, err := w.signer.SignInto(d)
	if err != nil {
		common.Logger.Errorf("worker %d: sign failed for %s: %v", w.ID, d.Name, err)
		w.Counters.ErrorCount.Add(1)
		return
	}

	if err := w.face.Put(d, raw); err != nil {
		common.Logger.Errorf("worker %d: face.Put failed for %s: %v", w.ID, d.Name, err)
		w.Counters.ErrorCount.Add(1)
		return
	}

	w.Counters.BytesSent.Add(clampUint32(int64(w.content.Len())))
	w.Counters.PacketsSent.Add(1)
	w.Counters.ProcessMicrosecondsAccum.Add(clampUint32(time.Since(tDeq).Microseconds()))
}

// clampUint32 saturates negative or overflowing deltas to fit the 32-bit
// accumulator rather than wrapping unpredictably; the Reporter's averaging
// window is short enough that clamping, not wraparound, is the safe failure
// mode for a pathologically delayed packet.
func clampUint32(v int64) uint32 {
	if v < 0 {
		return 0
	}
	if v > int64(^uint32(0)) {
		return ^uint32(0)
	}
	return uint32(v)
}

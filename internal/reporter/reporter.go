// Package reporter periodically snapshots every worker's counters and
// reduces them to a human-readable throughput/latency line.
package reporter

import (
	"fmt"
	"io"
	"time"

	"github.com/DOCTOR-ANR/ndnperf/internal/worker"
)

// DefaultInterval is the default wall-clock tick between report lines.
const DefaultInterval = 2 * time.Second

// Reporter periodically aggregates PerWorkerCounters across all workers and
// emits one report line per tick.
type Reporter struct {
	counters []*worker.Counters
	interval time.Duration
	out      io.Writer

	prev []worker.Snapshot
}

// New builds a Reporter over counters, ticking every interval (0 or
// negative selects DefaultInterval). Lines are written to out.
func New(counters []*worker.Counters, interval time.Duration, out io.Writer) *Reporter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reporter{
		counters: counters,
		interval: interval,
		out:      out,
		prev:     make([]worker.Snapshot, len(counters)),
	}
}

// Run ticks until stop is closed, matching the worker/Reporter join
// lifecycle ServerCore drives at shutdown.
func (r *Reporter) Run(stop <-chan struct{}) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case now := <-ticker.C:
			r.tick(now)
		}
	}
}

// tick computes one report line from the delta between this snapshot and
// the previous one, then prints it.
func (r *Reporter) tick(now time.Time) {
	var bytesDelta, packetsDelta, queueDelta, processDelta uint64

	for i, c := range r.counters {
		cur := c.Load()
		bytesDelta += delta(r.prev[i].BytesSent, cur.BytesSent)
		packetsDelta += delta(r.prev[i].PacketsSent, cur.PacketsSent)
		queueDelta += delta(r.prev[i].QueueMicrosecondsAccum, cur.QueueMicrosecondsAccum)
		processDelta += delta(r.prev[i].ProcessMicrosecondsAccum, cur.ProcessMicrosecondsAccum)
		r.prev[i] = cur
	}

	seconds := r.interval.Seconds()
	kbps := float64(bytesDelta) * 8 / 1024 / seconds
	pktRate := float64(packetsDelta) / seconds

	var qtime, ptime int64 = -1, -1
	if packetsDelta != 0 {
		qtime = int64(queueDelta / packetsDelta)
		ptime = int64(processDelta / packetsDelta)
	}

	fmt.Fprintf(r.out, "%s %.1f Kbps( %.1f pkt/s) - qtime= %d us, ptime= %d us\n",
		now.Format("15:04:05"), kbps, pktRate, qtime, ptime)
}

// delta returns cur-prev, tolerating the rare wraparound of a 32-bit
// accumulator as 0 rather than a huge spurious spike: the counters are
// read without barriers and a torn read across a wrap is expected to
// self-correct on the next tick.
func delta(prev, cur uint32) uint64 {
	if cur < prev {
		return 0
	}
	return uint64(cur - prev)
}

package worker

import "sync/atomic"

// cacheLineSize is the padding target; false sharing between adjacent
// workers' counters would otherwise show up as throughput loss under high
// packet rates.
const cacheLineSize = 64

// Counters is one worker's accounting: five relaxed atomic counters,
// written only by the owning worker and read by the Reporter without
// further synchronisation.
type Counters struct {
	BytesSent                atomic.Uint32
	PacketsSent              atomic.Uint32
	QueueMicrosecondsAccum   atomic.Uint32
	ProcessMicrosecondsAccum atomic.Uint32
	ErrorCount               atomic.Uint32

	// _pad keeps consecutive Counters in a []Counters slice on separate
	// cache lines.
	_pad [cacheLineSize - 5*4]byte
}

// Snapshot is a point-in-time read of all counters, used by the Reporter to
// compute deltas between two ticks.
type Snapshot struct {
	BytesSent                uint32
	PacketsSent              uint32
	QueueMicrosecondsAccum   uint32
	ProcessMicrosecondsAccum uint32
	ErrorCount               uint32
}

func (c *Counters) Load() Snapshot {
	return Snapshot{
		BytesSent:                c.BytesSent.Load(),
		PacketsSent:              c.PacketsSent.Load(),
		QueueMicrosecondsAccum:   c.QueueMicrosecondsAccum.Load(),
		ProcessMicrosecondsAccum: c.ProcessMicrosecondsAccum.Load(),
		ErrorCount:               c.ErrorCount.Load(),
	}
}

package face

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/DOCTOR-ANR/ndnperf/internal/wire"
)

// PutRecord captures one Data emission observed by LoopbackFace.
type PutRecord struct {
	Data *wire.Data
	Raw  []byte
}

// LoopbackFace is an in-process Face implementation with no forwarder
// socket: Express simulates an incoming Interest, Put records what the core
// emits. It exists to exercise the FaceAdapter boundary end-to-end in tests
// and in the demo binary, without reaching outside the process.
type LoopbackFace struct {
	mu sync.Mutex

	registeredPrefix wire.Name
	onInterest       OnInterest
	onRegisterFailed OnRegisterFailed

	puts []PutRecord

	done chan struct{}
}

func NewLoopbackFace() *LoopbackFace {
	return &LoopbackFace{done: make(chan struct{})}
}

func (f *LoopbackFace) SetInterestFilter(prefix wire.Name, onInterest OnInterest, onRegisterFailed OnRegisterFailed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if onInterest == nil {
		return errors.New("face: onInterest callback must not be nil")
	}
	f.registeredPrefix = prefix
	f.onInterest = onInterest
	f.onRegisterFailed = onRegisterFailed
	return nil
}

func (f *LoopbackFace) Put(data *wire.Data, raw []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts = append(f.puts, PutRecord{Data: data, Raw: raw})
	return nil
}

// ProcessEvents blocks until Close is called, mirroring a real Face's event
// loop running on the calling thread.
func (f *LoopbackFace) ProcessEvents() {
	<-f.done
}

// Close unblocks ProcessEvents, simulating the Face thread returning after
// shutdown. A real socket-backed Face can fail to close cleanly, so Close
// returns an error even though this in-process implementation never does.
func (f *LoopbackFace) Close() error {
	select {
	case <-f.done:
	default:
		close(f.done)
	}
	return nil
}

// Express simulates an incoming Interest for name, invoking the registered
// handler synchronously on the calling goroutine (as a real Face would
// invoke it on its own event-loop thread).
func (f *LoopbackFace) Express(name wire.Name) {
	f.mu.Lock()
	handler := f.onInterest
	f.mu.Unlock()
	if handler != nil {
		handler(NewInterest(name))
	}
}

// FailRegistration simulates the forwarder rejecting prefix registration.
func (f *LoopbackFace) FailRegistration(err error) {
	f.mu.Lock()
	handler := f.onRegisterFailed
	f.mu.Unlock()
	if handler != nil {
		handler(err)
	}
}

// Puts returns a snapshot of every Data emitted through this face so far.
func (f *LoopbackFace) Puts() []PutRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]PutRecord, len(f.puts))
	copy(out, f.puts)
	return out
}

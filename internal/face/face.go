// Package face defines the abstract connection to an NDN forwarder: prefix
// registration, per-Interest callback delivery, and Data emission. Real
// socket transport to a forwarder is out of scope; this package only has the
// interface plus an in-process LoopbackFace that makes the boundary
// exercisable in tests and in the demo binary.
package face

import (
	"github.com/DOCTOR-ANR/ndnperf/internal/wire"
)

// Interest is the concrete opaque Interest handle the core is handed by the
// Face: it carries only a Name.
type Interest struct {
	name wire.Name
}

func NewInterest(name wire.Name) Interest {
	return Interest{name: name}
}

// Name satisfies queue.Interest.
func (i Interest) Name() wire.Name {
	return i.name
}

// OnInterest is the callback the Face invokes per matching Interest.
type OnInterest func(Interest)

// OnRegisterFailed is invoked if prefix registration with the forwarder
// fails.
type OnRegisterFailed func(error)

// Face is the external collaborator boundary: prefix registration,
// per-Interest callback delivery, and Data emission.
type Face interface {
	// SetInterestFilter installs a callback and a registration-failure
	// handler for prefix.
	SetInterestFilter(prefix wire.Name, onInterest OnInterest, onRegisterFailed OnRegisterFailed) error

	// Put hands off a fully-signed Data packet. data is the structured form
	// (inspectable by tests/mocks); raw is its wire encoding, for
	// implementations that only deal in bytes. Non-blocking acceptable.
	Put(data *wire.Data, raw []byte) error

	// ProcessEvents runs the event loop on the calling thread until the
	// Face is closed.
	ProcessEvents()
}

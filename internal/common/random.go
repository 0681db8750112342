package common

import (
	"crypto/rand"

	"github.com/pkg/errors"
)

// printableASCII is the character set used for the synthetic payload; it
// matches what a human tailing the wire would expect to see if they dumped
// a Content block, without needing full byte-range entropy.
const printableASCII = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// MustGetRandomASCII panics if it is unable to gather entropy from
// rand.Reader. The content block is built once at startup; a failure here
// is initialisation-fatal, so panicking and letting the caller turn that
// into a fatal log line is the right shape.
func MustGetRandomASCII(n int) []byte {
	if n < 0 {
		panic(errors.Errorf("MustGetRandomASCII: n must be >= 0, got %d", n))
	}
	out := make([]byte, n)
	idx := make([]byte, n)
	if n > 0 {
		if _, err := rand.Read(idx); err != nil {
			panic(errors.Wrap(err, "rand.Read failure in MustGetRandomASCII"))
		}
	}
	for i, b := range idx {
		out[i] = printableASCII[int(b)%len(printableASCII)]
	}
	return out
}

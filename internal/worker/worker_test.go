package worker

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DOCTOR-ANR/ndnperf/internal/face"
	"github.com/DOCTOR-ANR/ndnperf/internal/keychain"
	"github.com/DOCTOR-ANR/ndnperf/internal/queue"
	"github.com/DOCTOR-ANR/ndnperf/internal/sign"
	"github.com/DOCTOR-ANR/ndnperf/internal/wire"
)

// failingFace always rejects Put, used to exercise the worker's
// error-counting path without touching a real Face implementation.
type failingFace struct {
	*face.LoopbackFace
}

func (f *failingFace) Put(d *wire.Data, raw []byte) error {
	return assert.AnError
}

func newTestWorker(t *testing.T, freshness uint32, contentLen int) (*Worker, *queue.WorkQueue, *face.LoopbackFace, *atomic.Bool) {
	t.Helper()
	kc := keychain.New()
	m := kc.GenerateDigest()
	info := &wire.SignatureInfo{Type: wire.SignatureTypeDigestSha256}
	signer := sign.New(m, info)
	content := wire.NewContentBlock(make([]byte, contentLen))

	q := queue.New()
	var cont atomic.Bool
	cont.Store(true)
	f := face.NewLoopbackFace()

	w := New(1, q, &cont, f, signer, content, freshness)
	return w, q, f, &cont
}

func TestWorker_EmitsDataMatchingInterest(t *testing.T) {
	w, q, f, cont := newTestWorker(t, 1000, 16)
	go w.Run()

	q.Enqueue(queue.Entry{Interest: face.NewInterest(wire.ParseName("/throughput/a")), EnqueueTime: time.Now()})

	require.Eventually(t, func() bool { return len(f.Puts()) == 1 }, time.Second, time.Millisecond)

	puts := f.Puts()
	require.Equal(t, "/throughput/a", puts[0].Data.Name.String())
	require.Equal(t, uint32(1000), puts[0].Data.FreshnessMillis)
	require.Equal(t, 16, puts[0].Data.Content.Len())

	require.EqualValues(t, 1, w.Counters.PacketsSent.Load())
	require.EqualValues(t, 16, w.Counters.BytesSent.Load())

	cont.Store(false)
	q.Enqueue(queue.Sentinel)
}

func TestWorker_ExitsOnSentinelAfterContFalse(t *testing.T) {
	w, q, _, cont := newTestWorker(t, 0, 8)
	done := make(chan struct{})
	go func() {
		w.Run()
		close(done)
	}()

	cont.Store(false)
	q.Enqueue(queue.Sentinel)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not exit after cont=false sentinel")
	}
}

func TestWorker_PutFailureIncrementsErrorCount(t *testing.T) {
	kc := keychain.New()
	m := kc.GenerateDigest()
	info := &wire.SignatureInfo{Type: wire.SignatureTypeDigestSha256}
	signer := sign.New(m, info)
	content := wire.NewContentBlock(make([]byte, 8))

	q := queue.New()
	var cont atomic.Bool
	cont.Store(true)
	f := &failingFace{LoopbackFace: face.NewLoopbackFace()}

	w := New(1, q, &cont, f, signer, content, 0)
	go w.Run()

	q.Enqueue(queue.Entry{Interest: face.NewInterest(wire.ParseName("/throughput/bad")), EnqueueTime: time.Now()})
	require.Eventually(t, func() bool { return w.Counters.ErrorCount.Load() == 1 }, time.Second, time.Millisecond)

	require.EqualValues(t, 0, w.Counters.PacketsSent.Load())
	require.EqualValues(t, 0, w.Counters.BytesSent.Load())

	cont.Store(false)
	q.Enqueue(queue.Sentinel)
}

func TestWorker_ZeroLengthContentStillSigns(t *testing.T) {
	w, q, f, cont := newTestWorker(t, 0, 0)
	go w.Run()

	q.Enqueue(queue.Entry{Interest: face.NewInterest(wire.ParseName("/throughput/empty")), EnqueueTime: time.Now()})
	require.Eventually(t, func() bool { return len(f.Puts()) == 1 }, time.Second, time.Millisecond)
	require.Equal(t, 0, f.Puts()[0].Data.Content.Len())

	cont.Store(false)
	q.Enqueue(queue.Sentinel)
}

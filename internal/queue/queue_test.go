package queue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DOCTOR-ANR/ndnperf/internal/wire"
)

type fakeInterest wire.Name

func (f fakeInterest) Name() wire.Name { return wire.Name(f) }

func TestFIFOOrderSingleProducer(t *testing.T) {
	q := New()
	t1 := time.Now()
	q.Enqueue(Entry{Interest: fakeInterest(wire.ParseName("/a")), EnqueueTime: t1})
	t2 := t1.Add(time.Millisecond)
	q.Enqueue(Entry{Interest: fakeInterest(wire.ParseName("/b")), EnqueueTime: t2})

	first := q.WaitDequeue()
	second := q.WaitDequeue()
	require.Equal(t, "/a", first.Interest.Name().String())
	require.Equal(t, "/b", second.Interest.Name().String())
}

func TestWaitDequeueBlocksUntilEnqueue(t *testing.T) {
	q := New()
	done := make(chan Entry, 1)
	go func() { done <- q.WaitDequeue() }()

	select {
	case <-done:
		t.Fatal("WaitDequeue returned before any entry was enqueued")
	case <-time.After(20 * time.Millisecond):
	}

	q.Enqueue(Entry{Interest: fakeInterest(wire.ParseName("/a"))})
	select {
	case e := <-done:
		require.False(t, e.IsSentinel())
	case <-time.After(time.Second):
		t.Fatal("WaitDequeue did not wake up after enqueue")
	}
}

func TestSentinelIsRecognised(t *testing.T) {
	q := New()
	q.Enqueue(Sentinel)
	e := q.WaitDequeue()
	require.True(t, e.IsSentinel())
}

func TestConcurrentProducersAllDelivered(t *testing.T) {
	q := New()
	const n = 500
	for i := 0; i < n; i++ {
		go q.Enqueue(Entry{Interest: fakeInterest(wire.ParseName("/x"))})
	}
	seen := 0
	for seen < n {
		e := q.WaitDequeue()
		require.False(t, e.IsSentinel())
		seen++
	}
}

package server

import (
	"crypto/sha256"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DOCTOR-ANR/ndnperf/internal/face"
	"github.com/DOCTOR-ANR/ndnperf/internal/keychain"
	"github.com/DOCTOR-ANR/ndnperf/internal/sign"
	"github.com/DOCTOR-ANR/ndnperf/internal/wire"
)

// Digest mode, one Interest: the simplest signing path end-to-end.
func TestScenarioS1_DigestSingleInterest(t *testing.T) {
	f := face.NewLoopbackFace()
	kc := keychain.New()
	sc := New(Config{
		Prefix:          "/throughput",
		SignatureMode:   wire.SignatureTypeDigestSha256,
		WorkerCount:     2,
		PayloadSize:     16,
		FreshnessMillis: 1000,
		ReportInterval:  time.Hour,
	}, f, kc, nil)

	require.NoError(t, sc.Start())
	go sc.Run()

	f.Express(wire.ParseName("/throughput/a"))
	require.Eventually(t, func() bool { return len(f.Puts()) == 1 }, time.Second, time.Millisecond)

	put := f.Puts()[0]
	require.Equal(t, "/throughput/a", put.Data.Name.String())
	require.Equal(t, uint32(1000), put.Data.FreshnessMillis)
	require.Equal(t, 16, put.Data.Content.Len())
	require.Equal(t, wire.SignatureTypeDigestSha256, put.Data.SigInfo.Type)

	expected := sha256.Sum256(put.Data.EncodeSignedPortion())
	require.Equal(t, expected[:], put.Data.SigValue)

	require.NoError(t, sc.Shutdown())
}

// SIGINT-equivalent shutdown after a burst; all generated key material
// must be gone afterward.
func TestScenarioS4_ShutdownClearsKeyChain(t *testing.T) {
	f := face.NewLoopbackFace()
	kc := keychain.New()
	sc := New(Config{
		Prefix:        "/throughput",
		SignatureMode: wire.SignatureTypeSha256WithEcdsa,
		KeyBits:       256,
		WorkerCount:   4,
		PayloadSize:   64,
	}, f, kc, nil)

	require.NoError(t, sc.Start())
	go sc.Run()

	for i := 0; i < 50; i++ {
		f.Express(wire.ParseName("/throughput/burst"))
	}
	require.Eventually(t, func() bool { return len(f.Puts()) == 50 }, time.Second, time.Millisecond)
	require.Equal(t, 1, kc.Len())

	require.NoError(t, sc.Shutdown())
	require.Equal(t, 0, kc.Len())
}

// S5: registration failure must not leave workers behind and must signal
// Fatal so the caller exits 1.
func TestScenarioS5_RegisterFailedSignalsFatal(t *testing.T) {
	f := face.NewLoopbackFace()
	kc := keychain.New()
	sc := New(Config{
		Prefix:        "/throughput",
		SignatureMode: wire.SignatureTypeSha256WithRsa,
		KeyBits:       2048,
		WorkerCount:   2,
		PayloadSize:   16,
	}, f, kc, nil)

	require.NoError(t, sc.Start())
	go sc.Run()

	f.FailRegistration(assert.AnError)

	select {
	case <-sc.Fatal():
	case <-time.After(time.Second):
		t.Fatal("Fatal() did not fire after registration failure")
	}
	require.Equal(t, 0, kc.Len())
}

// -t 1 must still complete all Interests with a single worker.
func TestBoundary_SingleWorkerNoDeadlock(t *testing.T) {
	f := face.NewLoopbackFace()
	kc := keychain.New()
	sc := New(Config{
		Prefix:        "/throughput",
		SignatureMode: wire.SignatureTypeDigestSha256,
		WorkerCount:   1,
		PayloadSize:   16,
	}, f, kc, nil)

	require.NoError(t, sc.Start())
	go sc.Run()

	for i := 0; i < 20; i++ {
		f.Express(wire.ParseName("/throughput/single"))
	}
	require.Eventually(t, func() bool { return len(f.Puts()) == 20 }, time.Second, time.Millisecond)
	require.NoError(t, sc.Shutdown())
}

// -t 0 falls back to hardware parallelism.
func TestBoundary_ZeroWorkersFallsBackToGOMAXPROCS(t *testing.T) {
	cfg := Config{WorkerCount: 0}
	require.Greater(t, cfg.resolvedWorkerCount(), 0)
}

// -c 0 produces a zero-length content block that still signs and verifies.
func TestBoundary_ZeroLengthContentSignsAndVerifies(t *testing.T) {
	f := face.NewLoopbackFace()
	kc := keychain.New()
	sc := New(Config{
		Prefix:        "/throughput",
		SignatureMode: wire.SignatureTypeSha256WithRsa,
		KeyBits:       1024,
		WorkerCount:   1,
		PayloadSize:   0,
	}, f, kc, nil)

	require.NoError(t, sc.Start())
	go sc.Run()

	f.Express(wire.ParseName("/throughput/zero"))
	require.Eventually(t, func() bool { return len(f.Puts()) == 1 }, time.Second, time.Millisecond)

	put := f.Puts()[0]
	require.Equal(t, 0, put.Data.Content.Len())
	require.NoError(t, sign.Verify(sc.material, put.Data.EncodeSignedPortion(), put.Data.SigValue))

	require.NoError(t, sc.Shutdown())
}

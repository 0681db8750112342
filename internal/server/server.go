// Package server implements ServerCore: lifecycle orchestration of key
// material, the signing pipeline and the Reporter around whatever Face
// implementation the caller supplies.
package server

import (
	"io"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/DOCTOR-ANR/ndnperf/internal/common"
	"github.com/DOCTOR-ANR/ndnperf/internal/face"
	"github.com/DOCTOR-ANR/ndnperf/internal/keychain"
	"github.com/DOCTOR-ANR/ndnperf/internal/queue"
	"github.com/DOCTOR-ANR/ndnperf/internal/reporter"
	"github.com/DOCTOR-ANR/ndnperf/internal/sign"
	"github.com/DOCTOR-ANR/ndnperf/internal/wire"
	"github.com/DOCTOR-ANR/ndnperf/internal/worker"
)

// Config is the resolved form of the CLI surface.
type Config struct {
	Prefix          string
	SignatureMode   wire.SignatureType
	KeyBits         int
	WorkerCount     int
	PayloadSize     int
	FreshnessMillis uint32
	ReportInterval  time.Duration
}

// resolvedWorkerCount falls back to hardware parallelism when WorkerCount
// is <= 0.
func (c Config) resolvedWorkerCount() int {
	if c.WorkerCount > 0 {
		return c.WorkerCount
	}
	return runtime.GOMAXPROCS(0)
}

// ServerCore orchestrates the signing pipeline's lifecycle: key material and
// SignatureInfo setup, prefix registration, worker/Reporter spawn, and
// teardown.
type ServerCore struct {
	cfg       Config
	face      face.Face
	kc        *keychain.KeyChain
	reportOut io.Writer

	material *keychain.Material
	content  *wire.ContentBlock
	sigInfo  *wire.SignatureInfo

	q    *queue.WorkQueue
	cont atomic.Bool

	workers []*worker.Worker
	wg      sync.WaitGroup

	rep     *reporter.Reporter
	repStop chan struct{}

	shutdownOnce sync.Once
	fatal        chan struct{}
	fatalOnce    sync.Once
}

// New builds a ServerCore bound to f and kc. Call Start to run the
// initialisation sequence.
func New(cfg Config, f face.Face, kc *keychain.KeyChain, reportOut io.Writer) *ServerCore {
	if reportOut == nil {
		reportOut = io.Discard
	}
	sc := &ServerCore{
		cfg:       cfg,
		face:      f,
		kc:        kc,
		reportOut: reportOut,
		q:         queue.New(),
		repStop:   make(chan struct{}),
		fatal:     make(chan struct{}),
	}
	sc.cont.Store(true)
	return sc
}

// Start runs the initialisation order: key material, then SignatureInfo,
// then the ContentBlock, then prefix registration, then worker/Reporter
// spawn.
func (sc *ServerCore) Start() error {
	if err := sc.generateKeyMaterial(); err != nil {
		return errors.Wrap(err, "server: key material generation failed")
	}
	sc.sigInfo = &wire.SignatureInfo{
		Type:           sc.material.Type,
		KeyLocatorName: sc.material.CertName.Prefix(),
	}
	sc.content = wire.NewContentBlock(common.MustGetRandomASCII(sc.cfg.PayloadSize))

	prefix := wire.ParseName(sc.cfg.Prefix)
	if err := sc.face.SetInterestFilter(prefix, sc.onInterest, sc.onRegisterFailed); err != nil {
		return errors.Wrap(err, "server: prefix registration failed")
	}

	sc.spawn()
	return nil
}

func (sc *ServerCore) generateKeyMaterial() error {
	switch sc.cfg.SignatureMode {
	case wire.SignatureTypeDigestSha256:
		sc.material = sc.kc.GenerateDigest()
		return nil
	case wire.SignatureTypeSha256WithRsa:
		m, err := sc.kc.GenerateRSA(sc.cfg.Prefix, sc.cfg.KeyBits)
		sc.material = m
		return err
	case wire.SignatureTypeSha256WithEcdsa:
		m, err := sc.kc.GenerateECDSA(sc.cfg.Prefix, sc.cfg.KeyBits)
		sc.material = m
		return err
	default:
		return errors.Errorf("server: unknown signature mode %d", sc.cfg.SignatureMode)
	}
}

// onInterest is the Face callback: it enqueues the work, nothing more — all
// real work happens on a worker goroutine.
func (sc *ServerCore) onInterest(i face.Interest) {
	sc.q.Enqueue(queue.Entry{Interest: i, EnqueueTime: time.Now()})
}

// onRegisterFailed tears down whatever was already spawned (a no-op if
// nothing was), then signals Fatal so the caller can exit(1) without
// spawning further work.
func (sc *ServerCore) onRegisterFailed(err error) {
	common.Logger.Errorf("prefix registration failed: %v", err)
	sc.Shutdown()
	sc.fatalOnce.Do(func() { close(sc.fatal) })
}

// Fatal is closed if prefix registration fails; the caller should treat
// this as exit code 1.
func (sc *ServerCore) Fatal() <-chan struct{} {
	return sc.fatal
}

func (sc *ServerCore) spawn() {
	n := sc.cfg.resolvedWorkerCount()
	sc.workers = make([]*worker.Worker, n)
	counters := make([]*worker.Counters, n)

	for i := 0; i < n; i++ {
		signer := sign.New(sc.material, sc.sigInfo)
		w := worker.New(i, sc.q, &sc.cont, sc.face, signer, sc.content, sc.cfg.FreshnessMillis)
		sc.workers[i] = w
		counters[i] = &w.Counters
		sc.wg.Add(1)
		go func() {
			defer sc.wg.Done()
			w.Run()
		}()
	}

	sc.rep = reporter.New(counters, sc.cfg.ReportInterval, sc.reportOut)
	sc.wg.Add(1)
	go func() {
		defer sc.wg.Done()
		sc.rep.Run(sc.repStop)
	}()
}

// Run runs the Face event loop on the calling thread, as a real main()
// would after Start succeeds.
func (sc *ServerCore) Run() {
	sc.face.ProcessEvents()
}

// Shutdown flips cont, wakes every worker with a sentinel, joins workers
// and the Reporter, then deletes generated key material. Safe to call more
// than once and safe to call before Start has spawned anything.
func (sc *ServerCore) Shutdown() error {
	var result error
	sc.shutdownOnce.Do(func() {
		sc.cont.Store(false)
		for range sc.workers {
			sc.q.Enqueue(queue.Sentinel)
		}
		close(sc.repStop)

		sc.wg.Wait()

		if sc.kc != nil && sc.material != nil {
			sc.kc.Delete(sc.material)
		}

		if c, ok := sc.face.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				result = multierror.Append(result, errors.Wrap(err, "server: face close failed"))
			}
		}
	})
	return result
}

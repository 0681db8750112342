// Command ndnperf is the throughput-responder binary: it wires ServerCore to
// a concrete Face and runs until interrupted.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/DOCTOR-ANR/ndnperf/internal/common"
	"github.com/DOCTOR-ANR/ndnperf/internal/face"
	"github.com/DOCTOR-ANR/ndnperf/internal/keychain"
	"github.com/DOCTOR-ANR/ndnperf/internal/reporter"
	"github.com/DOCTOR-ANR/ndnperf/internal/server"
	"github.com/DOCTOR-ANR/ndnperf/internal/wire"
)

var (
	prefix        string
	signatureMode uint64
	keyBits       int
	workerCount   int
	payloadSize   int
	freshness     uint32
	reportEvery   time.Duration
	quiet         bool
	logLevel      string
)

var rootCmd = &cobra.Command{
	Use:   "ndnperf",
	Short: "NDN content-responder throughput benchmark",
	Long: `ndnperf answers every Interest under a prefix with a freshly signed
Data packet built from a fixed in-memory payload, and periodically reports
throughput and per-packet latency.`,
	RunE:         run,
	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVarP(&prefix, "prefix", "p", "/throughput", "name prefix to register and respond under")
	rootCmd.Flags().Uint64VarP(&signatureMode, "signature", "s", 1, "signature type: 0=digest, 1=RSA, 3=ECDSA")
	rootCmd.Flags().IntVarP(&keyBits, "key-bits", "k", 2048, "key size in bits (RSA >=1024; ECDSA 256 or 384)")
	rootCmd.Flags().IntVarP(&workerCount, "threads", "t", 0, "worker count (0 = hardware parallelism)")
	rootCmd.Flags().IntVarP(&payloadSize, "content-size", "c", 8192, "Content payload size in bytes")
	rootCmd.Flags().Uint32VarP(&freshness, "freshness", "f", 0, "FreshnessPeriod in milliseconds (0 = omitted)")
	rootCmd.Flags().DurationVarP(&reportEvery, "report-interval", "d", reporter.DefaultInterval, "Reporter tick interval")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the startup banner")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if err := common.SetLogLevel(logLevel); err != nil {
		return err
	}

	// -k defaults to 2048, which is a valid RSA size but not a valid ECDSA
	// curve selector; fall back to the ECDSA default unless the caller set
	// -k explicitly.
	if wire.SignatureType(signatureMode) == wire.SignatureTypeSha256WithEcdsa && !cmd.Flags().Changed("key-bits") {
		keyBits = 256
	}

	cfg := server.Config{
		Prefix:          prefix,
		SignatureMode:   wire.SignatureType(signatureMode),
		KeyBits:         keyBits,
		WorkerCount:     workerCount,
		PayloadSize:     payloadSize,
		FreshnessMillis: freshness,
		ReportInterval:  reportEvery,
	}

	if !quiet {
		fmt.Printf("ndnperf: prefix=%s signature=%d threads=%d content=%dB freshness=%dms\n",
			cfg.Prefix, cfg.SignatureMode, workerCount, cfg.PayloadSize, cfg.FreshnessMillis)
	}

	f := face.NewLoopbackFace()
	kc := keychain.New()
	sc := server.New(cfg, f, kc, os.Stdout)

	if err := sc.Start(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		sc.Run()
		close(done)
	}()

	select {
	case <-sc.Fatal():
		return fmt.Errorf("ndnperf: prefix registration failed, exiting")
	case <-sigCh:
		common.Logger.Infof("shutdown requested")
	case <-done:
	}

	if err := sc.Shutdown(); err != nil {
		return err
	}
	return nil
}

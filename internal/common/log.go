package common

import (
	golog "github.com/ipfs/go-log"
)

// Logger is the package-wide structured logger, used throughout as
// common.Logger.Infof/Errorf/Debugf.
var Logger = golog.Logger("ndnperf")

// SetLogLevel adjusts the verbosity of Logger. level is one of the strings
// accepted by go-log: "debug", "info", "warn", "error", "fatal", "panic".
func SetLogLevel(level string) error {
	return golog.SetLogLevel("ndnperf", level)
}

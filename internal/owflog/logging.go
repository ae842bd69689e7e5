// Package owflog sets up the package-level logger the daemon and the
// transport adapters log through (the owfcat CLI prints its diagnostics
// to stderr directly and does not use it). The core
// codec and owf packages stay logging-free and report everything through
// codec.Error instead, the way the teacher's protocol/krypto packages never
// import the log package directly.
package owflog

import (
	stdlog "log"
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("owf")

var syslogFormat = logging.MustStringFormatter(
	`%{time:15:04:05.000} %{level:.6s} ▶ %{message}`,
)
var stderrFormat = logging.MustStringFormatter(
	`%{color}owf ▶ %{message}%{color:reset}`,
)

// Setup configures the package logger: it tries a syslog backend first
// when trySyslog is set (unix platforms only, wired in logging_syslog.go),
// falling back to a colorized stderr backend. The level defaults to
// defaultLevel unless OWF_LOG_LEVEL names one of the standard level names.
func Setup(prefix string, defaultLevel logging.Level, trySyslog bool) *logging.Logger {
	var backend logging.Backend
	if trySyslog {
		backend = trySyslogBackend(prefix)
	}
	if backend == nil {
		backend = logging.NewLogBackend(os.Stderr, prefix, 0)
		logging.SetFormatter(stderrFormat)
	}

	leveled := logging.AddModuleLevel(backend)
	switch os.Getenv("OWF_LOG_LEVEL") {
	case "CRITICAL":
		leveled.SetLevel(logging.CRITICAL, log.Module)
	case "ERROR":
		leveled.SetLevel(logging.ERROR, log.Module)
	case "WARNING":
		leveled.SetLevel(logging.WARNING, log.Module)
	case "NOTICE":
		leveled.SetLevel(logging.NOTICE, log.Module)
	case "INFO":
		leveled.SetLevel(logging.INFO, log.Module)
	case "DEBUG":
		leveled.SetLevel(logging.DEBUG, log.Module)
	default:
		leveled.SetLevel(defaultLevel, log.Module)
	}

	logging.SetBackend(leveled)
	return log
}

// Log returns the shared package logger; callers that don't need to
// control setup (internal/transport adapters) just use this directly.
func Log() *logging.Logger { return log }

func init() {
	// A sane default so a caller that never calls Setup still gets stderr
	// output at NOTICE rather than a silent no-op backend.
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetFormatter(stderrFormat)
	leveled := logging.AddModuleLevel(backend)
	leveled.SetLevel(logging.NOTICE, "owf")
	logging.SetBackend(leveled)
	stdlog.SetOutput(os.Stderr)
}

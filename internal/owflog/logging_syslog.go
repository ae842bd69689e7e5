// +build !windows

package owflog

import (
	stdlog "log"
	"log/syslog"

	"github.com/op/go-logging"
)

// trySyslogBackend attempts a syslog backend on unix platforms, returning
// nil if syslog isn't reachable (e.g. no syslogd, sandboxed container).
func trySyslogBackend(prefix string) logging.Backend {
	backend, err := logging.NewSyslogBackendPriority(prefix, syslog.LOG_NOTICE)
	if err != nil {
		return nil
	}
	logging.SetFormatter(syslogFormat)
	if syslogBackend, ok := backend.(*logging.SyslogBackend); ok {
		stdlog.SetOutput(syslogBackend.Writer)
	}
	return backend
}

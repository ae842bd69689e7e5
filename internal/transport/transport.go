// Package transport adapts codec.Source/codec.Sink to real byte channels: a
// unix-socket (or Windows named-pipe) listener and dialer, and an
// optional S3 object byte-sink/source for archiving whole packets,
// mirroring the teacher's socket.go / aws.go collaborators.
package transport

import (
	"fmt"
	"net"
	"os"

	"github.com/numinit/open-waveform-format/internal/owfconfig"
	"github.com/numinit/open-waveform-format/internal/owflog"
)

var log = owflog.Log()

// Listen opens the OWF daemon's listener at the resolved socket path,
// removing a stale socket file left behind by an unclean shutdown, the
// same defensive unlink socket.go's DaemonListen performs before
// net.Listen.
func Listen() (listener net.Listener, path string, err error) {
	path, err = owfconfig.SockPath()
	if err != nil {
		return
	}
	return listenAt(path)
}

func listenAtUnixPath(path string) (listener net.Listener, err error) {
	_ = os.Remove(path)
	listener, err = net.Listen("unix", path)
	if err != nil {
		err = fmt.Errorf("listening on %s: %w", path, err)
		return
	}
	log.Noticef("listening on unix socket %s", path)
	return
}

// Dial connects to a running owfd at the resolved socket path.
func Dial() (conn net.Conn, err error) {
	path, err := owfconfig.SockPath()
	if err != nil {
		return
	}
	return dialAt(path)
}

// +build windows

package transport

import (
	"net"

	"github.com/Microsoft/go-winio"
)

// pipeName returns the fixed named pipe path \\.\pipe\owfd; the
// unix-socket-style path argument is ignored. The Windows analogue of
// socket_windows.go's hardcoded AGENT_PIPE constant.
func pipeName(path string) string {
	return `\\.\pipe\owfd`
}

func listenAt(path string) (net.Listener, error) {
	listener, err := winio.ListenPipe(pipeName(path), nil)
	if err != nil {
		return nil, err
	}
	log.Noticef("listening on named pipe %s", pipeName(path))
	return listener, nil
}

func dialAt(path string) (net.Conn, error) {
	return winio.DialPipe(pipeName(path), nil)
}

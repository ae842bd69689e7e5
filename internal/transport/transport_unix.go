// +build !windows

package transport

import (
	"net"

	"golang.org/x/sys/unix"
)

func listenAt(path string) (net.Listener, error) {
	listener, err := listenAtUnixPath(path)
	if err != nil {
		return nil, err
	}
	tuneListenerBacklog(listener)
	return listener, nil
}

func dialAt(path string) (net.Conn, error) {
	return net.Dial("unix", path)
}

// tuneListenerBacklog bumps SO_RCVBUF on the listening socket via
// golang.org/x/sys/unix, the Go analogue of the per-OS socket-option
// tuning the teacher splits across socket_unix.go/socket_darwin.go; a
// failure here is non-fatal since the kernel default is always usable.
func tuneListenerBacklog(listener net.Listener) {
	unixListener, ok := listener.(*net.UnixListener)
	if !ok {
		return
	}
	sysConn, err := unixListener.SyscallConn()
	if err != nil {
		return
	}
	_ = sysConn.Control(func(fd uintptr) {
		_ = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, 1<<20)
	})
}

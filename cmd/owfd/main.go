// Command owfd is a TCP/UDP echo daemon: it accepts an OWF packet,
// decodes it (logging how many nodes it discovered), and writes the
// re-encoded bytes back to the same connection. It is the Go analogue of
// original_source/c/server/server.c's owf_server_loop_tcp/udp, built the
// way the teacher's krd daemon is built: no CLI framework, signal-driven
// graceful shutdown, a single package-level logger from SetupLogging.
package main

import (
	"bytes"
	"flag"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/op/go-logging"

	"github.com/numinit/open-waveform-format/codec"
	"github.com/numinit/open-waveform-format/internal/owflog"
	"github.com/numinit/open-waveform-format/owfalloc"
)

var log *logging.Logger

// bufPool is the allocator every decode the daemon runs goes through,
// shared across the per-connection goroutines runTCP spawns. The decoder
// never calls Free on the buffers it allocates, so the pool holds no
// buffers and every Alloc falls through to the wrapped Default allocator.
var bufPool = owfalloc.NewPool(owfalloc.NewDefault())

func sourceFrom(r interface{ Read([]byte) (int, error) }) codec.Source {
	return func(dst []byte) bool {
		n := 0
		for n < len(dst) {
			k, err := r.Read(dst[n:])
			n += k
			if err != nil {
				return false
			}
		}
		return true
	}
}

func sinkTo(w interface{ Write([]byte) (int, error) }) codec.Sink {
	return func(src []byte) bool {
		_, err := w.Write(src)
		return err == nil
	}
}

// echo decodes one packet from conn and writes it straight back, logging
// the node count the way owf_server_loop_tcp logs the packet size on
// each side of the exchange.
func echo(conn net.Conn) {
	defer conn.Close()

	dec := codec.NewDecoder(sourceFrom(conn), codec.WithAllocator(bufPool))
	nodes := 0
	pkg, err := dec.DecodeDOM(func(n codec.Node) bool {
		nodes++
		return true
	})
	if err != nil {
		log.Errorf("<= error materializing packet from %s: %v", conn.RemoteAddr(), err)
		return
	}
	log.Noticef("<= got a packet from %s (%d nodes)", conn.RemoteAddr(), nodes)

	enc := codec.NewEncoder(sinkTo(conn))
	if err := enc.Encode(pkg); err != nil {
		log.Errorf("=> error writing packet to %s: %v", conn.RemoteAddr(), err)
		return
	}
	log.Noticef("=> wrote a packet back to %s", conn.RemoteAddr())
}

func runTCP(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Noticef("bound to tcp://%s", listener.Addr())

	var wg sync.WaitGroup
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		<-stop
		log.Notice("stopping")
		close(done)
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-done:
				wg.Wait()
				return nil
			default:
				return err
			}
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			echo(conn)
		}()
	}
}

const udpBufferSize = 1 << 20

func runUDP(addr string) error {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Noticef("bound to udp://%s", conn.LocalAddr())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM)
	go func() {
		<-stop
		log.Notice("stopping")
		conn.Close()
	}()

	buf := make([]byte, udpBufferSize)
	for {
		n, clientAddr, err := conn.ReadFromUDP(buf)
		if err != nil {
			return nil
		}

		reader := bytes.NewReader(buf[:n])
		dec := codec.NewDecoder(sourceFrom(reader), codec.WithAllocator(bufPool))
		pkg, err := dec.DecodeDOM(nil)
		if err != nil {
			log.Errorf("<= error materializing packet from %s: %v", clientAddr, err)
			continue
		}

		var out bytes.Buffer
		enc := codec.NewEncoder(sinkTo(&out))
		if err := enc.Encode(pkg); err != nil {
			log.Errorf("=> error writing packet to %s: %v", clientAddr, err)
			continue
		}
		if _, err := conn.WriteToUDP(out.Bytes(), clientAddr); err != nil {
			log.Errorf("=> error sending reply to %s: %v", clientAddr, err)
		}
	}
}

func main() {
	protocol := flag.String("proto", "tcp", "tcp or udp")
	addr := flag.String("addr", "127.0.0.1:0", "address to listen on")
	flag.Parse()

	log = owflog.Setup("owfd", logging.NOTICE, true)

	var err error
	switch *protocol {
	case "tcp":
		err = runTCP(*addr)
	case "udp":
		err = runUDP(*addr)
	default:
		log.Fatalf("invalid protocol %q; we support tcp and udp", *protocol)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// Package owfbench builds synthetic OWF packets for encode/decode
// throughput testing, grounded on original_source/c/bench/bench.c's
// owf_benchmark_init_package. The timing loop itself is *not*
// reimplemented here: Go's testing.B already is the rolling-average timer
// bench.c hand-rolls (owf_bench_rolling_avg_t), so the benchmark functions
// in bench_test.go drive this package's Config/Build directly.
package owfbench

import (
	"fmt"
	"math"

	"github.com/numinit/open-waveform-format/owf"
)

// Config mirrors owf_bench_config_t: the shape of a synthetic package.
type Config struct {
	ChannelsPerMessage    int
	NamespacesPerChannel  int
	SignalsPerNamespace   int
	EventsPerNamespace    int
	AlarmsPerNamespace    int
	SamplesPerSignal      int
}

// Small is a config producing a modest packet, useful for quick sanity
// benchmarks; Large stresses sample-array throughput.
var Small = Config{ChannelsPerMessage: 2, NamespacesPerChannel: 2, SignalsPerNamespace: 4, EventsPerNamespace: 2, AlarmsPerNamespace: 1, SamplesPerSignal: 64}
var Large = Config{ChannelsPerMessage: 4, NamespacesPerChannel: 8, SignalsPerNamespace: 16, EventsPerNamespace: 4, AlarmsPerNamespace: 2, SamplesPerSignal: 4096}

// waveTable fills n samples with a sine wave, the same synthetic signal
// source owf_benchmark_init_package uses instead of real sensor data.
func waveTable(n int) []float64 {
	if n == 0 {
		return nil
	}
	table := make([]float64, n)
	k := 1 / float64(n)
	for i := range table {
		table[i] = math.Sin(k * float64(i) * 2 * math.Pi)
	}
	return table
}

// Build constructs a synthetic Package from cfg, covering [startTime,
// startTime+10_000_000) time units (matching bench.c's one-second window
// in its 100ns owf_time_t ticks), with every event/alarm anchored at the
// halfway point.
func Build(cfg Config, startTime int64) *owf.Package {
	const duration = 10_000_000
	endTime := startTime + duration
	halfTime := startTime + duration/2

	wave := waveTable(cfg.SamplesPerSignal)
	pkg := owf.NewPackage()

	for i := 0; i < cfg.ChannelsPerMessage; i++ {
		ch := owf.NewChannel(fmt.Sprintf("C%d", i))
		for j := 0; j < cfg.NamespacesPerChannel; j++ {
			ns := owf.NewNamespace(fmt.Sprintf("C%d_N%d", i, j), startTime, uint64(endTime-startTime))

			for k := 0; k < cfg.SignalsPerNamespace; k++ {
				sig := owf.NewSignal(fmt.Sprintf("C%d_N%d_S%d", i, j, k), "unit")
				sig.PushSamples(wave)
				ns.PushSignal(sig)
			}
			for k := 0; k < cfg.EventsPerNamespace; k++ {
				ev := owf.NewEvent(halfTime, fmt.Sprintf("C%d_N%d_E%d", i, j, k))
				_ = ns.PushEvent(ev)
			}
			for k := 0; k < cfg.AlarmsPerNamespace; k++ {
				al := owf.NewAlarm(halfTime, halfTime-startTime, 0x00, 0xff, fmt.Sprintf("C%d_N%d_A%d", i, j, k), "42")
				_ = ns.PushAlarm(al)
			}

			ch.PushNamespace(ns)
		}
		pkg.PushChannel(ch)
	}

	return pkg
}

// NumSignals and NumSamples mirror bench.c's summary counters, useful for
// reporting bytes/op alongside ns/op in a benchmark.
func NumSignals(cfg Config) int {
	return cfg.ChannelsPerMessage * cfg.NamespacesPerChannel * cfg.SignalsPerNamespace
}

func NumSamples(cfg Config) int {
	return NumSignals(cfg) * cfg.SamplesPerSignal
}

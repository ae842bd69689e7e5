package owfbench

import (
	"bytes"
	"testing"

	"github.com/numinit/open-waveform-format/codec"
)

func runEncode(b *testing.B, cfg Config) {
	pkg := Build(cfg, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		enc := codec.NewEncoder(func(src []byte) bool {
			buf.Write(src)
			return true
		})
		if err := enc.Encode(pkg); err != nil {
			b.Fatalf("encode: %v", err)
		}
		b.SetBytes(int64(buf.Len()))
	}
}

func runDecode(b *testing.B, cfg Config) {
	pkg := Build(cfg, 0)
	var buf bytes.Buffer
	enc := codec.NewEncoder(func(src []byte) bool {
		buf.Write(src)
		return true
	})
	if err := enc.Encode(pkg); err != nil {
		b.Fatalf("encode: %v", err)
	}
	wire := buf.Bytes()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos := 0
		dec := codec.NewDecoder(func(dst []byte) bool {
			if pos+len(dst) > len(wire) {
				return false
			}
			copy(dst, wire[pos:pos+len(dst)])
			pos += len(dst)
			return true
		})
		if _, err := dec.DecodeDOM(nil); err != nil {
			b.Fatalf("decode: %v", err)
		}
		b.SetBytes(int64(len(wire)))
	}
}

func BenchmarkEncodeSmall(b *testing.B) { runEncode(b, Small) }
func BenchmarkDecodeSmall(b *testing.B) { runDecode(b, Small) }
func BenchmarkEncodeLarge(b *testing.B) { runEncode(b, Large) }
func BenchmarkDecodeLarge(b *testing.B) { runDecode(b, Large) }

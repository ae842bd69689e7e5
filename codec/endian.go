package codec

import (
	"encoding/binary"
	"math"
)

// The wire format is always big-endian regardless of host byte order.
// These helpers are the only place that knowledge lives; everything else
// in this package works in host-native integer and float values. This is
// the pure-function byteswap contract the spec asks for in place of the
// reference's compiler byteswap intrinsics (see spec.md "Big-endian
// portability").

func u32ToBE(v uint32) [4]byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b
}

func beToU32(b []byte) uint32 {
	return binary.BigEndian.Uint32(b)
}

func u64ToBE(v uint64) [8]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b
}

func beToU64(b []byte) uint64 {
	return binary.BigEndian.Uint64(b)
}

// f64ToBEBits reinterprets f bit-for-bit as a uint64 (no numeric
// conversion) and serializes it big-endian, matching the reference's
// union-based reinterpretation of doubles for OWF_HOST64.
func f64ToBEBits(f float64) [8]byte {
	return u64ToBE(math.Float64bits(f))
}

func beBitsToF64(b []byte) float64 {
	return math.Float64frombits(beToU64(b))
}

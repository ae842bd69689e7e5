package owf

import (
	"bytes"

	"github.com/numinit/open-waveform-format/arith"
)

// ByteString is the wire string type: a byte sequence with no interior
// NUL, carrying no Unicode interpretation of its own (the codec only
// guarantees NUL termination on ingress, per spec).
type ByteString struct {
	data []byte
	size memoize
}

// NewByteString wraps b as a ByteString. b must not contain an interior
// NUL; this is not checked here since construction from trusted in-memory
// data is not a wire boundary (decode-time NUL checking happens in the
// codec package, against untrusted bytes).
func NewByteString(b []byte) ByteString {
	bs := ByteString{data: b}
	bs.size.invalidate()
	return bs
}

// Bytes returns the logical byte content (no NUL, no padding).
func (s ByteString) Bytes() []byte { return s.data }

// String returns the logical byte content as a string.
func (s ByteString) String() string { return string(s.data) }

// Set replaces the logical content and invalidates the cached wire size.
func (s *ByteString) Set(b []byte) {
	s.data = b
	s.size.invalidate()
}

// Len returns the logical length in bytes (not including NUL or padding).
func (s ByteString) Len() int { return len(s.data) }

// Size returns the wire size of the string: 4 (header) plus, for a
// non-empty string, the body plus a NUL terminator plus zero-padding to a
// 4-byte multiple. An empty string's wire size is just the 4-byte header.
// The result is memoized; subsequent calls on an unmutated string return
// the cached value.
func (s *ByteString) Size() (uint32, error) {
	if !s.size.stale() {
		return s.size.fetch(), nil
	}

	length := uint32(len(s.data))
	if length > 0 {
		var err error
		length, err = arith.AddU32(length, 1) // NUL terminator
		if err != nil {
			return 0, err
		}
		length, err = arith.AddU32(length, arith.Padding(length))
		if err != nil {
			return 0, err
		}
	}

	total, err := arith.AddU32(length, 4) // length header
	if err != nil {
		return 0, err
	}

	return s.size.cache(total), nil
}

// Compare implements the byte-string total order: a lexicographic
// byte-wise compare, mirroring owf_str_binary_compare.
func (s ByteString) Compare(other ByteString) int {
	return bytes.Compare(s.data, other.data)
}

func (s ByteString) Equal(other ByteString) bool {
	return bytes.Equal(s.data, other.data)
}

// Package codec implements the OWF binary decoder and encoder: the
// length-prefixed segment walker, the alignment/padding discipline, and
// the visitor-driven traversal that can skip subtrees.
package codec

import (
	"fmt"

	uuid "github.com/satori/go.uuid"
)

// Kind enumerates the closed set of error conditions the codec can
// report, matching the reference's owf_error kinds one for one.
type Kind int

const (
	BadMagic Kind = iota
	AlignmentError
	OutOfBounds
	TrailingBytes
	StringNotNullTerminated
	CoverageViolation
	BadSampleLength
	ArithOverflow
	ArithUnderflow
	AllocZero
	AllocTooLarge
	AllocFailed
	IndexOutOfBounds
	IOFailed
	MisalignedSize
	NegativeDuration
)

func (k Kind) String() string {
	switch k {
	case BadMagic:
		return "BadMagic"
	case AlignmentError:
		return "AlignmentError"
	case OutOfBounds:
		return "OutOfBounds"
	case TrailingBytes:
		return "TrailingBytes"
	case StringNotNullTerminated:
		return "StringNotNullTerminated"
	case CoverageViolation:
		return "CoverageViolation"
	case BadSampleLength:
		return "BadSampleLength"
	case ArithOverflow:
		return "ArithOverflow"
	case ArithUnderflow:
		return "ArithUnderflow"
	case AllocZero:
		return "AllocZero"
	case AllocTooLarge:
		return "AllocTooLarge"
	case AllocFailed:
		return "AllocFailed"
	case IndexOutOfBounds:
		return "IndexOutOfBounds"
	case IOFailed:
		return "IOFailed"
	case MisalignedSize:
		return "MisalignedSize"
	case NegativeDuration:
		return "NegativeDuration"
	default:
		return "Unknown"
	}
}

// Error is the single error type every codec failure surfaces as. It
// carries enough context (byte offset, expected/actual lengths, namespace
// id) for a human to diagnose the failure without re-running the decode
// under a debugger, the way the reference's owf_error_t formats a message
// in place.
//
// Every Error is stamped with a TraceID, a random UUID generated the same
// way PairingSecret.DeriveUUID derives a correlation id in the teacher
// codebase; a caller logging decode failures across many connections can
// group log lines by TraceID instead of by best-effort context matching.
type Error struct {
	Kind        Kind
	Message     string
	Offset      uint64
	Expected    uint64
	Actual      uint64
	NamespaceID string
	TraceID     uuid.UUID
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.NamespaceID != "" {
		msg += fmt.Sprintf(" (namespace %q)", e.NamespaceID)
	}
	return msg
}

// newError builds an Error with a fresh trace id.
func newError(kind Kind, format string, args ...interface{}) *Error {
	traceID, err := uuid.NewV4()
	if err != nil {
		// The system CSPRNG failing is not a condition a decode/encode
		// caller can act on; fall back to the nil UUID rather than bubble
		// a second error out of an error constructor.
		traceID = uuid.UUID{}
	}
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		TraceID: traceID,
	}
}

package dcmerr

import (
	"errors"
	"fmt"

	"github.com/dcmforge/dicom/vr"
)

// Kind classifies a DataError per the public error taxonomy.
type Kind uint8

const (
	// TagNotPresent is returned for a dataset lookup of a tag that is not present.
	TagNotPresent Kind = iota + 1
	// ValueNotPresent is returned by a typed accessor when the VR is incompatible
	// with the requested type.
	ValueNotPresent
	// MultiplicityMismatch is returned by a single-value accessor when more than
	// one value is present.
	MultiplicityMismatch
	// ValueInvalid is returned when bytes cannot be decoded for the VR.
	ValueInvalid
	// ValueLengthInvalid is returned when a byte length violates VR constraints.
	ValueLengthInvalid
	// DataInvalid is returned for structural violations during parsing.
	DataInvalid
	// P10Error is returned for stream-level parse/write failures.
	P10Error
	// PixelDataInvalid classifies a failure to partition pixel data into
	// frames. The pixel package does not construct it; see DataError.
	PixelDataInvalid
)

func (k Kind) String() string {
	switch k {
	case TagNotPresent:
		return "TagNotPresent"
	case ValueNotPresent:
		return "ValueNotPresent"
	case MultiplicityMismatch:
		return "MultiplicityMismatch"
	case ValueInvalid:
		return "ValueInvalid"
	case ValueLengthInvalid:
		return "ValueLengthInvalid"
	case DataInvalid:
		return "DataInvalid"
	case P10Error:
		return "P10Error"
	case PixelDataInvalid:
		return "PixelDataInvalid"
	default:
		return "Unknown"
	}
}

// DataError is the structured error type returned by the value model and the
// P10 codec. It carries a Kind, an optional locating Path, and optional
// VR/length/offset detail. The pixel package does not return DataError: its
// framer and Extract report failures as pixel.PixelDataError and
// pixel.MissingAttributeError.
//
// DICOM Standard Reference: see spec's error taxonomy (Part 5/Part 10 do not
// define error handling; this is a library-level convention).
type DataError struct {
	Kind   Kind
	Path   Path
	VR     vr.VR
	Length uint32
	Offset int64
	Detail string
	Cause  error
}

func (e *DataError) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if !e.Path.Empty() {
		msg += fmt.Sprintf(" (at %s)", e.Path.String())
	}
	if e.Kind == ValueLengthInvalid {
		msg += fmt.Sprintf(" [vr=%s length=%d]", e.VR.String(), e.Length)
	}
	if e.Kind == P10Error {
		msg += fmt.Sprintf(" [offset=%d]", e.Offset)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *DataError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a *DataError with the same Kind, so callers
// can do errors.Is(err, &DataError{Kind: TagNotPresent}).
func (e *DataError) Is(target error) bool {
	var other *DataError
	if !errors.As(target, &other) {
		return false
	}
	return e.Kind == other.Kind
}

// New builds a DataError of the given kind with a formatted detail message.
func New(kind Kind, format string, args ...interface{}) *DataError {
	return &DataError{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// NewAt is like New but attaches a locating path.
func NewAt(kind Kind, path Path, format string, args ...interface{}) *DataError {
	return &DataError{Kind: kind, Path: path, Detail: fmt.Sprintf(format, args...)}
}

// NewLengthInvalid builds a ValueLengthInvalid error describing why the
// byte length of the given VR is unacceptable.
func NewLengthInvalid(vrv vr.VR, length uint32, detail string) *DataError {
	return &DataError{Kind: ValueLengthInvalid, VR: vrv, Length: length, Detail: detail}
}

// NewP10 builds a P10Error at the given stream byte offset.
func NewP10(offset int64, format string, args ...interface{}) *DataError {
	return &DataError{Kind: P10Error, Offset: offset, Detail: fmt.Sprintf(format, args...)}
}

// Wrap attaches a causal error to a DataError, preserving Unwrap.
func (e *DataError) Wrap(cause error) *DataError {
	e.Cause = cause
	return e
}

// ErrNeedMoreData is a sentinel (not a DataError) signaling that the P10
// parser's internal buffer does not yet hold enough bytes to produce the
// next part. It is a recoverable condition, not a parse failure.
var ErrNeedMoreData = errors.New("dcmerr: need more data")

// ErrParserFailed is a sentinel returned by a parser that has already
// surfaced a structural error and must be discarded by the caller.
var ErrParserFailed = errors.New("dcmerr: parser is in a failed state")

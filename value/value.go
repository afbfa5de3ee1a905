// Package value provides DICOM element value representations and operations.
//
// Values in DICOM can be strings, bytes, integers, floats, sequences, or the
// two special-cased shapes the standard carries alongside them: the Lookup
// Table Descriptor (whose middle word's signedness depends on context, not
// on its own VR) and encapsulated pixel data (an ordered list of opaque
// codec fragments rather than a flat byte buffer). Every VR-shaped payload
// is represented as one of these variants and is immutable once constructed.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_6.2
package value

import (
	"github.com/dcmforge/dicom/dcmerr"
	"github.com/dcmforge/dicom/vr"
)

// Value represents a DICOM element value. Every VR maps to exactly one of
// the three concrete implementations in this package: Binary (the common
// case - any VR stored as its on-wire byte buffer, decoded lazily by typed
// accessors), LookupTableDescriptor (the one VR-independent special case
// the standard requires), or EncapsulatedPixelData (fragmented compressed
// pixel data). Sequence values are defined in the root dicom package
// because they recursively contain DataSets, which this leaf package
// cannot import without a cycle; they still satisfy this interface.
type Value interface {
	// VR returns the Value Representation of this value.
	VR() vr.VR

	// Bytes returns the on-wire byte payload of this value. Sequence and
	// EncapsulatedPixelData values have no flat byte payload and return a
	// ValueInvalid DataError.
	Bytes() ([]byte, error)

	// FormatString renders a single-line human-readable form of the value,
	// truncated with "…" past maxWidth. A maxWidth <= 0 means unlimited.
	FormatString(maxWidth int) string

	// ValidateLength reports whether the value's byte payload satisfies its
	// VR's length and alignment constraints.
	ValidateLength() error
}

// Binary is the on-wire byte buffer backing every scalar VR: string VRs,
// numeric binary VRs, bulk binary VRs, and AT. Decode is deferred to the
// typed accessors in accessors.go; the raw bytes are always retained.
type Binary struct {
	valueVR vr.VR
	data    []byte
}

var _ Value = (*Binary)(nil)

// NewBinaryUnchecked wraps data as a Binary value without running any
// validation. Used by the P10 parser, which has already bounded the
// payload length by the element header and does not want to pay for (or
// fail on) redundant validation of bytes it is about to hand to the caller
// verbatim.
func NewBinaryUnchecked(v vr.VR, data []byte) *Binary {
	return &Binary{valueVR: v, data: data}
}

// VR returns the Value Representation of this value.
func (b *Binary) VR() vr.VR { return b.valueVR }

// Bytes returns the raw on-wire payload.
func (b *Binary) Bytes() ([]byte, error) {
	return b.data, nil
}

// ValidateLength reports a ValueLengthInvalid error if the payload violates
// the VR's alignment or maximum-length constraints.
func (b *Binary) ValidateLength() error {
	return validateLength(b.valueVR, b.data)
}

func validateLength(v vr.VR, data []byte) error {
	n := len(data)
	if align := v.Alignment(); align > 1 && n%align != 0 {
		return dcmerr.NewLengthInvalid(v, uint32(n), "length is not a multiple of the required alignment")
	}
	if max := v.MaxPayloadLength(); uint32(n) > max {
		return dcmerr.NewLengthInvalid(v, uint32(n), "length exceeds the VR's maximum payload length")
	}
	return nil
}

// padToEven appends the VR's padding byte if data has odd length.
func padToEven(v vr.VR, data []byte) []byte {
	if len(data)%2 == 0 {
		return data
	}
	padded := make([]byte, len(data)+1)
	copy(padded, data)
	padded[len(data)] = v.PaddingByte()
	return padded
}

// LookupTableDescriptor represents the (0028,3002)/(0028,1101-1103)-family
// Lookup Table Descriptor value: exactly 6 bytes, where the first and third
// u16 are always unsigned but the middle u16's signedness depends on the
// *context VR* (SignedShort for signed pixel data, UnsignedShort otherwise)
// rather than on the element's own declared VR. This is a required special
// case per DICOM Part 3, Section C.11.1.1.1.
type LookupTableDescriptor struct {
	valueVR vr.VR
	data    [6]byte
}

var _ Value = (*LookupTableDescriptor)(nil)

// NewLookupTableDescriptor validates that data is exactly 6 bytes and that
// v is one of the VRs legally used to carry a descriptor (US or SS - the
// declared VR only ever affects how the *first and third* words read;
// GetInts takes the context VR as an explicit parameter for the middle word).
func NewLookupTableDescriptor(v vr.VR, data []byte) (*LookupTableDescriptor, error) {
	if v != vr.UnsignedShort && v != vr.SignedShort {
		return nil, dcmerr.New(dcmerr.ValueInvalid, "Lookup Table Descriptor VR must be US or SS, got %s", v.String())
	}
	if len(data) != 6 {
		return nil, dcmerr.NewLengthInvalid(v, uint32(len(data)), "Lookup Table Descriptor must be exactly 6 bytes")
	}
	ld := &LookupTableDescriptor{valueVR: v}
	copy(ld.data[:], data)
	return ld, nil
}

// VR returns the Value Representation of this value.
func (l *LookupTableDescriptor) VR() vr.VR { return l.valueVR }

// Bytes returns the raw 6-byte descriptor payload.
func (l *LookupTableDescriptor) Bytes() ([]byte, error) {
	return append([]byte(nil), l.data[:]...), nil
}

// ValidateLength always succeeds: the 6-byte length is enforced at
// construction time and cannot drift afterward (the type is immutable).
func (l *LookupTableDescriptor) ValidateLength() error {
	return nil
}

// EncapsulatedPixelData represents the (7FE0,0010) element when pixel data
// is fragmented and transfer-syntax-specific (VR OB or OW, undefined
// length). Items is the ordered list of opaque item byte buffers *not*
// including the Basic Offset Table, which callers access separately via
// BasicOffsetTable - the framer is what threads BOT + items into frames.
type EncapsulatedPixelData struct {
	valueVR          vr.VR
	basicOffsetTable []byte
	items            [][]byte
}

var _ Value = (*EncapsulatedPixelData)(nil)

// NewEncapsulatedPixelData builds an EncapsulatedPixelData value. bot is the
// raw Basic Offset Table item bytes (may be empty but not nil to
// distinguish "BOT item present but empty" from "no BOT item at all" - both
// are legal per the standard, and the pixel framer treats them the same
// way, but round-tripping through the Writer needs the distinction).
func NewEncapsulatedPixelData(v vr.VR, bot []byte, items [][]byte) (*EncapsulatedPixelData, error) {
	if v != vr.OtherByte && v != vr.OtherWord {
		return nil, dcmerr.New(dcmerr.ValueInvalid, "encapsulated pixel data VR must be OB or OW, got %s", v.String())
	}
	return &EncapsulatedPixelData{valueVR: v, basicOffsetTable: bot, items: items}, nil
}

// VR returns the Value Representation of this value (OB or OW).
func (e *EncapsulatedPixelData) VR() vr.VR { return e.valueVR }

// Bytes is undefined for encapsulated pixel data: it is framed as a
// sequence of items at the P10 level, not as a flat buffer.
func (e *EncapsulatedPixelData) Bytes() ([]byte, error) {
	return nil, dcmerr.New(dcmerr.ValueInvalid, "encapsulated pixel data has no flat byte payload")
}

// ValidateLength always succeeds: item lengths are validated individually
// during parsing, and the aggregate has no VR-level length constraint.
func (e *EncapsulatedPixelData) ValidateLength() error {
	return nil
}

// BasicOffsetTable returns the raw Basic Offset Table item bytes (may be
// empty).
func (e *EncapsulatedPixelData) BasicOffsetTable() []byte {
	return e.basicOffsetTable
}

// Items returns the ordered list of fragment item byte buffers, excluding
// the Basic Offset Table.
func (e *EncapsulatedPixelData) Items() [][]byte {
	return e.items
}

// ItemCount returns the number of fragments (excluding the BOT).
func (e *EncapsulatedPixelData) ItemCount() int {
	return len(e.items)
}

// TotalItemBytes returns the sum of all fragment lengths (excluding the BOT).
func (e *EncapsulatedPixelData) TotalItemBytes() int {
	total := 0
	for _, it := range e.items {
		total += len(it)
	}
	return total
}

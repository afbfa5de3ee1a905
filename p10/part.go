// Package p10 implements the DICOM Part 10 file-format codec as a pair of
// pull-driven state machines: Parser turns a byte stream into a sequence of
// Parts, Writer turns a sequence of Parts back into bytes. Neither type
// blocks on I/O; callers push bytes in and pull parts out (or push parts in
// and pull bytes out) at their own pace.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html
package p10

import (
	"github.com/dcmforge/dicom/element"
	"github.com/dcmforge/dicom/tag"
	"github.com/dcmforge/dicom/vr"
)

// Kind identifies the shape of a Part.
type Kind int

const (
	// FileMetaInformation carries the complete (0002,xxxx) group, decoded as
	// flat elements (group 0002 never contains sequences).
	FileMetaInformation Kind = iota
	// DataElementHeader announces a non-sequence, non-encapsulated element.
	// Its value follows as one or more DataElementValueBytes parts.
	DataElementHeader
	// DataElementValueBytes carries a chunk of the value announced by the
	// preceding DataElementHeader or PixelDataItem. Last is true for the
	// final chunk of that value.
	DataElementValueBytes
	// SequenceStart announces the start of a sequence element (VR SQ).
	SequenceStart
	// SequenceItemStart announces the start of one item within the
	// innermost open sequence.
	SequenceItemStart
	// SequenceItemEnd closes the innermost open item.
	SequenceItemEnd
	// SequenceEnd closes the innermost open sequence.
	SequenceEnd
	// PixelDataItem announces one fragment item of encapsulated pixel data
	// (including the Basic Offset Table, which is always item 0). Its bytes
	// follow as DataElementValueBytes parts.
	PixelDataItem
	// End marks legal stream termination.
	End
)

func (k Kind) String() string {
	switch k {
	case FileMetaInformation:
		return "FileMetaInformation"
	case DataElementHeader:
		return "DataElementHeader"
	case DataElementValueBytes:
		return "DataElementValueBytes"
	case SequenceStart:
		return "SequenceStart"
	case SequenceItemStart:
		return "SequenceItemStart"
	case SequenceItemEnd:
		return "SequenceItemEnd"
	case SequenceEnd:
		return "SequenceEnd"
	case PixelDataItem:
		return "PixelDataItem"
	case End:
		return "End"
	default:
		return "Unknown"
	}
}

// Part is one unit yielded by Parser.NextPart or consumed by Writer.Write.
// Only the fields relevant to Kind are populated; the zero value of the
// others is meaningless for a given Kind.
type Part struct {
	Kind Kind

	// FileMetaInformation
	MetaElements []*element.Element

	// DataElementHeader
	Tag    tag.Tag
	VR     vr.VR
	Length uint32 // 0xFFFFFFFF means undefined/indefinite length

	// DataElementValueBytes, PixelDataItem
	Bytes []byte
	Last  bool

	// SequenceStart, SequenceItemStart: Length as above (item length for item start)
}

// NewFileMetaInformation builds a FileMetaInformation part.
func NewFileMetaInformation(elems []*element.Element) Part {
	return Part{Kind: FileMetaInformation, MetaElements: elems}
}

// NewDataElementHeader builds a DataElementHeader part.
func NewDataElementHeader(t tag.Tag, v vr.VR, length uint32) Part {
	return Part{Kind: DataElementHeader, Tag: t, VR: v, Length: length}
}

// NewDataElementValueBytes builds a DataElementValueBytes part.
func NewDataElementValueBytes(b []byte, last bool) Part {
	return Part{Kind: DataElementValueBytes, Bytes: b, Last: last}
}

// NewSequenceStart builds a SequenceStart part.
func NewSequenceStart(t tag.Tag, v vr.VR) Part {
	return Part{Kind: SequenceStart, Tag: t, VR: v}
}

// NewSequenceItemStart builds a SequenceItemStart part with the item's
// declared length (0xFFFFFFFF for indefinite).
func NewSequenceItemStart(length uint32) Part {
	return Part{Kind: SequenceItemStart, Length: length}
}

// NewSequenceItemEnd builds a SequenceItemEnd part.
func NewSequenceItemEnd() Part {
	return Part{Kind: SequenceItemEnd}
}

// NewSequenceEnd builds a SequenceEnd part.
func NewSequenceEnd() Part {
	return Part{Kind: SequenceEnd}
}

// NewPixelDataItem builds a PixelDataItem part with the item's declared
// length (never indefinite - only the enclosing pixel data element's length
// is indefinite).
func NewPixelDataItem(length uint32) Part {
	return Part{Kind: PixelDataItem, Length: length}
}

// NewEnd builds an End part.
func NewEnd() Part {
	return Part{Kind: End}
}

// UndefinedLength is the sentinel length value marking an indefinite-length
// sequence, item, or encapsulated pixel data element.
const UndefinedLength uint32 = 0xFFFFFFFF

package p10

import (
	"encoding/binary"

	"github.com/dcmforge/dicom/dcmerr"
	"github.com/dcmforge/dicom/element"
	"github.com/dcmforge/dicom/tag"
	"github.com/dcmforge/dicom/vr"
)

type wstage int

const (
	wstageAwaitingFileMeta wstage = iota
	wstageDataSet
	wstageClosed
)

type wframeKind int

const (
	wframeSequence wframeKind = iota
	wframeItem
	wframeEncapsulated
)

type wframe struct {
	kind wframeKind
}

// Writer is the inverse of Parser: it accepts a stream of Parts and
// accumulates the corresponding Part 10 bytes, which callers pull with
// Take. Like Parser it never blocks; WritePart validates structure
// synchronously and fails fast on a malformed sequence of parts.
//
// Writer always encodes sequences, items, and encapsulated pixel data with
// indefinite length and explicit delimiters: a true streaming writer cannot
// know a nested structure's encoded length before it has finished writing
// the structure's contents, so buffering for a definite-length encoding
// would defeat the point of a pull writer. Declared lengths are therefore
// only meaningful for scalar elements and pixel data fragments, both of
// which Writer receives pre-computed from the caller.
type Writer struct {
	opts WriterOptions
	ts   TransferSyntax

	expectPreamble bool
	stage          wstage
	stack          []wframe

	pendingTag     tag.Tag
	pendingVR      vr.VR
	pendingLength  uint32
	pendingWritten uint32
	havePending    bool

	out []byte
}

// NewWriter constructs a Writer that emits the 128-byte preamble and "DICM"
// magic before File Meta Information, as in a standalone .dcm file.
func NewWriter(opts WriterOptions) (*Writer, error) {
	return newWriter(opts, true)
}

// NewWriterNoPreamble constructs a Writer for producing a raw dataset
// fragment with no Part 10 preamble or magic.
func NewWriterNoPreamble(opts WriterOptions) (*Writer, error) {
	return newWriter(opts, false)
}

func newWriter(opts WriterOptions, expectPreamble bool) (*Writer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Writer{opts: opts, expectPreamble: expectPreamble, stage: wstageAwaitingFileMeta}, nil
}

// Take returns and clears the bytes accumulated so far.
func (w *Writer) Take() []byte {
	b := w.out
	w.out = nil
	return b
}

// BeginDataSet puts the writer directly into the data set encoding phase
// with the given transfer syntax, bypassing the FileMetaInformation part
// that WritePart would otherwise require first. Used to produce a data set
// fragment destined for separate deflate compression.
func (w *Writer) BeginDataSet(ts TransferSyntax) {
	w.ts = ts
	w.stage = wstageDataSet
}

// CurrentTransferSyntax returns the transfer syntax the writer resolved
// from the TransferSyntaxUID element passed to its FileMetaInformation
// part (or from BeginDataSet).
func (w *Writer) CurrentTransferSyntax() TransferSyntax {
	return w.ts
}

func (w *Writer) topFrame() *wframe {
	if len(w.stack) == 0 {
		return nil
	}
	return &w.stack[len(w.stack)-1]
}

// WritePart validates and encodes one Part. Parts must arrive in the order
// a Parser would produce them: FileMetaInformation first, then a well
// formed sequence of data set parts, ending in End.
func (w *Writer) WritePart(p Part) error {
	if w.stage == wstageClosed {
		return dcmerr.New(dcmerr.P10Error, "writer is closed")
	}

	if w.stage == wstageAwaitingFileMeta {
		if p.Kind != FileMetaInformation {
			return dcmerr.New(dcmerr.P10Error, "first part must be FileMetaInformation, got %s", p.Kind)
		}
		return w.writeFileMeta(p.MetaElements)
	}

	if w.havePending && p.Kind != DataElementValueBytes {
		return dcmerr.New(dcmerr.P10Error, "expected DataElementValueBytes to complete %s, got %s", w.pendingTag, p.Kind)
	}

	switch p.Kind {
	case DataElementHeader:
		return w.writeDataElementHeader(p)
	case DataElementValueBytes:
		return w.writeValueBytes(p)
	case SequenceStart:
		top := w.topFrame()
		if top != nil && (top.kind == wframeEncapsulated) {
			return dcmerr.New(dcmerr.P10Error, "sequences cannot nest inside encapsulated pixel data")
		}
		w.appendHeaderBytes(p.Tag, p.VR, UndefinedLength)
		w.stack = append(w.stack, wframe{kind: wframeSequence})
		return nil
	case SequenceItemStart:
		top := w.topFrame()
		if top == nil || (top.kind != wframeSequence && top.kind != wframeEncapsulated) {
			return dcmerr.New(dcmerr.P10Error, "SequenceItemStart outside an open sequence")
		}
		if top.kind == wframeEncapsulated {
			return dcmerr.New(dcmerr.P10Error, "use PixelDataItem inside encapsulated pixel data, not SequenceItemStart")
		}
		w.appendDelimiter(itemTag, UndefinedLength)
		w.stack = append(w.stack, wframe{kind: wframeItem})
		return nil
	case SequenceItemEnd:
		top := w.topFrame()
		if top == nil || top.kind != wframeItem {
			return dcmerr.New(dcmerr.P10Error, "SequenceItemEnd outside an open item")
		}
		w.appendDelimiter(itemEndTag, 0)
		w.stack = w.stack[:len(w.stack)-1]
		return nil
	case SequenceEnd:
		top := w.topFrame()
		if top == nil || (top.kind != wframeSequence && top.kind != wframeEncapsulated) {
			return dcmerr.New(dcmerr.P10Error, "SequenceEnd outside an open sequence")
		}
		w.appendDelimiter(seqEndTag, 0)
		w.stack = w.stack[:len(w.stack)-1]
		return nil
	case PixelDataItem:
		top := w.topFrame()
		if top == nil || top.kind != wframeEncapsulated {
			return dcmerr.New(dcmerr.P10Error, "PixelDataItem outside encapsulated pixel data")
		}
		w.appendDelimiter(itemTag, p.Length+p.Length%2)
		if p.Length > 0 {
			w.pendingTag = itemTag
			w.pendingVR = vr.OtherByte
			w.pendingLength = p.Length
			w.pendingWritten = 0
			w.havePending = true
		}
		return nil
	case End:
		if len(w.stack) != 0 {
			return dcmerr.New(dcmerr.P10Error, "End with %d sequence/item frame(s) still open", len(w.stack))
		}
		w.stage = wstageClosed
		return nil
	default:
		return dcmerr.New(dcmerr.P10Error, "unexpected part kind %s in data set", p.Kind)
	}
}

func (w *Writer) writeDataElementHeader(p Part) error {
	if p.Tag == pixelDataTag && p.Length == UndefinedLength {
		w.appendHeaderBytes(p.Tag, p.VR, UndefinedLength)
		w.stack = append(w.stack, wframe{kind: wframeEncapsulated})
		return nil
	}
	if p.Length == UndefinedLength {
		return dcmerr.New(dcmerr.P10Error, "only sequences and encapsulated pixel data may use undefined length, got %s", p.Tag)
	}
	// An odd value gets a trailing pad byte in writeValueBytes, so the
	// header declares the padded, even length.
	w.appendHeaderBytes(p.Tag, p.VR, p.Length+p.Length%2)
	if p.Length > 0 {
		w.pendingTag = p.Tag
		w.pendingVR = p.VR
		w.pendingLength = p.Length
		w.pendingWritten = 0
		w.havePending = true
	}
	return nil
}

func (w *Writer) writeValueBytes(p Part) error {
	if !w.havePending {
		return dcmerr.New(dcmerr.P10Error, "DataElementValueBytes with no open element or pixel data item")
	}
	w.pendingWritten += uint32(len(p.Bytes))
	if w.pendingWritten > w.pendingLength {
		return dcmerr.New(dcmerr.ValueLengthInvalid, "%s: wrote %d bytes, declared length was %d", w.pendingTag, w.pendingWritten, w.pendingLength)
	}
	w.out = append(w.out, p.Bytes...)
	if p.Last {
		if w.pendingWritten != w.pendingLength {
			return dcmerr.New(dcmerr.ValueLengthInvalid, "%s: last chunk wrote %d bytes, declared length was %d", w.pendingTag, w.pendingWritten, w.pendingLength)
		}
		if w.pendingWritten%2 != 0 {
			w.out = append(w.out, w.pendingVR.PaddingByte())
		}
		w.havePending = false
	}
	return nil
}

// writeFileMeta serializes the preamble (if any), "DICM" magic, and the
// File Meta Information group in Explicit VR Little Endian, recomputing
// the group length element itself rather than trusting any (0002,0000)
// element the caller may have supplied.
func (w *Writer) writeFileMeta(elems []*element.Element) error {
	var tsUID string
	filtered := make([]*element.Element, 0, len(elems))
	for _, e := range elems {
		if e.Tag() == tag.New(0x0002, 0x0000) {
			continue
		}
		filtered = append(filtered, e)
		if e.Tag() == tag.New(0x0002, 0x0010) {
			s, err := e.Value().Bytes()
			if err != nil {
				return dcmerr.New(dcmerr.DataInvalid, "reading TransferSyntaxUID: %v", err)
			}
			tsUID = trimNulAndSpace(string(s))
		}
	}
	if tsUID == "" {
		return dcmerr.New(dcmerr.DataInvalid, "file meta information missing TransferSyntaxUID")
	}
	ts, err := ResolveTransferSyntax(tsUID)
	if err != nil {
		return err
	}
	w.ts = ts

	var body []byte
	for _, e := range filtered {
		body = appendExplicitElement(body, e.Tag(), e.VR(), mustBytes(e))
	}

	if w.expectPreamble {
		w.out = append(w.out, make([]byte, 128)...)
		w.out = append(w.out, "DICM"...)
	}
	groupLen := make([]byte, 4)
	binary.LittleEndian.PutUint32(groupLen, uint32(len(body)))
	w.out = appendExplicitElement(w.out, tag.New(0x0002, 0x0000), vr.UnsignedLong, groupLen)
	w.out = append(w.out, body...)

	w.stage = wstageDataSet
	return nil
}

func mustBytes(e *element.Element) []byte {
	b, err := e.Value().Bytes()
	if err != nil {
		return nil
	}
	return b
}

func trimNulAndSpace(s string) string {
	for len(s) > 0 && (s[len(s)-1] == 0x00 || s[len(s)-1] == 0x20) {
		s = s[:len(s)-1]
	}
	return s
}

// appendHeaderBytes writes one element header (tag, VR if explicit, length)
// under the main dataset's transfer syntax.
func (w *Writer) appendHeaderBytes(t tag.Tag, v vr.VR, length uint32) {
	if !w.ts.ExplicitVR {
		order := byteOrderFor(w.ts)
		buf := make([]byte, 8)
		order.PutUint16(buf[0:2], t.Group)
		order.PutUint16(buf[2:4], t.Element)
		order.PutUint32(buf[4:8], length)
		w.out = append(w.out, buf...)
		return
	}
	order := byteOrderFor(w.ts)
	if v.UsesExplicitLength32() {
		buf := make([]byte, 12)
		order.PutUint16(buf[0:2], t.Group)
		order.PutUint16(buf[2:4], t.Element)
		copy(buf[4:6], v.String())
		order.PutUint32(buf[8:12], length)
		w.out = append(w.out, buf...)
		return
	}
	buf := make([]byte, 8)
	order.PutUint16(buf[0:2], t.Group)
	order.PutUint16(buf[2:4], t.Element)
	copy(buf[4:6], v.String())
	order.PutUint16(buf[6:8], uint16(length))
	w.out = append(w.out, buf...)
}

// appendExplicitElement writes one element in Explicit VR Little Endian,
// used for File Meta Information regardless of the main dataset's
// transfer syntax.
func appendExplicitElement(dst []byte, t tag.Tag, v vr.VR, value []byte) []byte {
	if v.UsesExplicitLength32() {
		buf := make([]byte, 12)
		binary.LittleEndian.PutUint16(buf[0:2], t.Group)
		binary.LittleEndian.PutUint16(buf[2:4], t.Element)
		copy(buf[4:6], v.String())
		binary.LittleEndian.PutUint32(buf[8:12], uint32(len(value)))
		dst = append(dst, buf...)
		return append(dst, value...)
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint16(buf[0:2], t.Group)
	binary.LittleEndian.PutUint16(buf[2:4], t.Element)
	copy(buf[4:6], v.String())
	binary.LittleEndian.PutUint16(buf[6:8], uint16(len(value)))
	dst = append(dst, buf...)
	return append(dst, value...)
}

func (w *Writer) appendDelimiter(t tag.Tag, length uint32) {
	order := byteOrderFor(w.ts)
	buf := make([]byte, 8)
	order.PutUint16(buf[0:2], t.Group)
	order.PutUint16(buf[2:4], t.Element)
	order.PutUint32(buf[4:8], length)
	w.out = append(w.out, buf...)
}

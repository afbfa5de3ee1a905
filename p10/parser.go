package p10

import (
	"encoding/binary"

	"github.com/dcmforge/dicom/dcmerr"
	"github.com/dcmforge/dicom/dicomlog"
	"github.com/dcmforge/dicom/element"
	"github.com/dcmforge/dicom/tag"
	"github.com/dcmforge/dicom/value"
	"github.com/dcmforge/dicom/vr"
)

var (
	itemTag      = tag.New(0xFFFE, 0xE000)
	itemEndTag   = tag.New(0xFFFE, 0xE00D)
	seqEndTag    = tag.New(0xFFFE, 0xE0DD)
	pixelDataTag = tag.New(0x7FE0, 0x0010)
	groupLenTag  = tag.New(0x0002, 0x0000)
)

type phase int

const (
	phasePreamble phase = iota
	phaseFileMeta
	phaseDataSet
	phaseComplete
	phaseFailed
)

type frameKind int

const (
	frameSequence frameKind = iota
	frameItem
	frameEncapsulated
)

type frame struct {
	kind      frameKind
	definite  bool
	remaining uint32
}

// Parser is a pull-driven, single-threaded Part 10 decoder. Callers feed it
// bytes with Write as they arrive (from a socket, a file, anywhere) and pull
// decoded Parts out with NextPart. NextPart never blocks: when the buffered
// bytes don't yet hold a full part it returns dcmerr.ErrNeedMoreData, and the
// caller is expected to Write more and call NextPart again. Once the input
// is exhausted, the caller signals that with CloseInput so the parser can
// distinguish "need more" from "stream ended here".
//
// A Parser that returns a *dcmerr.DataError of Kind P10Error has failed
// permanently; every subsequent NextPart call returns dcmerr.ErrParserFailed
// and the Parser must be discarded.
type Parser struct {
	opts ParserOptions
	buf  byteBuf

	phase        phase
	expectPreamble bool
	streamPos    int64

	ts TransferSyntax

	fileMetaElems       []*element.Element
	fileMetaGroupLength uint32
	fileMetaGroupKnown  bool
	fileMetaConsumed    uint32

	stack []frame

	curRemaining uint32
	haveCur      bool

	inputClosed bool
	emittedEnd  bool

	pending []Part
}

// NewParser constructs a Parser that expects a 128-byte preamble and "DICM"
// magic before the File Meta Information group, as in a standalone .dcm
// file. Use NewParserNoPreamble for a raw dataset fragment (e.g. a DIMSE
// data set streamed without the Part 10 file wrapper).
func NewParser(opts ParserOptions) (*Parser, error) {
	return newParser(opts, true)
}

// NewParserNoPreamble constructs a Parser for input with no preamble and no
// magic: parsing starts directly at File Meta Information (which itself may
// be absent, in which case ts must be supplied via SetTransferSyntax before
// the first NextPart call).
func NewParserNoPreamble(opts ParserOptions) (*Parser, error) {
	return newParser(opts, false)
}

func newParser(opts ParserOptions, expectPreamble bool) (*Parser, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Parser{
		opts:           opts,
		expectPreamble: expectPreamble,
		phase:          phasePreamble,
		ts:             ExplicitVRLittleEndian,
	}, nil
}

// SetTransferSyntax overrides the transfer syntax used for the main dataset.
// Only meaningful before any dataset bytes have been parsed; intended for
// callers of NewParserNoPreamble whose input carries no File Meta
// Information group at all.
func (p *Parser) SetTransferSyntax(ts TransferSyntax) {
	p.ts = ts
}

// CurrentTransferSyntax returns the transfer syntax the parser is currently
// decoding the main dataset with. Meaningful once a FileMetaInformation part
// has been returned (or after SetTransferSyntax).
func (p *Parser) CurrentTransferSyntax() TransferSyntax {
	return p.ts
}

// RemainingBytes returns the bytes buffered but not yet consumed. Callers
// switching a deflated dataset to a fresh Parser after decompression use
// this to recover dataset bytes that were buffered ahead of the File Meta
// Information boundary.
func (p *Parser) RemainingBytes() []byte {
	b, _ := p.buf.Peek(p.buf.Len())
	return append([]byte(nil), b...)
}

// SkipToDataSet puts the parser directly into the data set decoding phase
// with the given transfer syntax, bypassing preamble and File Meta
// Information parsing entirely. Used to resume parsing a deflated data set
// from a fresh Parser fed with already-decompressed bytes.
func (p *Parser) SkipToDataSet(ts TransferSyntax) {
	p.ts = ts
	p.phase = phaseDataSet
}

// Write appends bytes to the parser's internal buffer. It never blocks and
// never parses; call NextPart to drive parsing forward. Bytes written after
// the stream has already reached End are discarded.
func (p *Parser) Write(b []byte) {
	if p.emittedEnd {
		if len(b) > 0 {
			dicomlog.WithField("bytes", len(b)).Warn("p10: discarding bytes written after End")
		}
		return
	}
	p.buf.Write(b)
}

// CloseInput signals that no further bytes will be written. Without this,
// a Parser sitting at a dataset boundary with an empty buffer has no way to
// distinguish "caller paused" from "stream is over" and will report
// ErrNeedMoreData forever.
func (p *Parser) CloseInput() {
	p.inputClosed = true
}

// NextPart returns the next decoded Part, or dcmerr.ErrNeedMoreData if the
// buffered bytes aren't yet enough to produce one. Once NextPart returns a
// Part of Kind End, subsequent calls keep returning the same End part; bytes
// written after that point are never consumed.
func (p *Parser) NextPart() (Part, error) {
	if p.phase == phaseFailed {
		return Part{}, dcmerr.ErrParserFailed
	}
	if len(p.pending) > 0 {
		part := p.pending[0]
		p.pending = p.pending[1:]
		return part, nil
	}
	if p.emittedEnd {
		return NewEnd(), nil
	}

	part, err := p.step()
	if err != nil {
		if _, ok := err.(*dcmerr.DataError); ok {
			p.phase = phaseFailed
		}
		return Part{}, err
	}
	if part.Kind == End {
		p.emittedEnd = true
	}
	return part, nil
}

func (p *Parser) step() (Part, error) {
	switch p.phase {
	case phasePreamble:
		return p.stepPreamble()
	case phaseFileMeta:
		return p.stepFileMeta()
	case phaseDataSet:
		return p.stepDataSet()
	default:
		return NewEnd(), nil
	}
}

func (p *Parser) stepPreamble() (Part, error) {
	if !p.expectPreamble {
		p.phase = phaseFileMeta
		return p.stepFileMeta()
	}
	data, ok := p.buf.Peek(132)
	if !ok {
		return Part{}, dcmerr.ErrNeedMoreData
	}
	if string(data[128:132]) != "DICM" {
		return Part{}, dcmerr.NewP10(p.streamPos+128, "missing DICM magic after preamble")
	}
	p.consume(132)
	p.phase = phaseFileMeta
	return p.stepFileMeta()
}

// stepFileMeta consumes whole (0002,xxxx) elements, in Explicit VR Little
// Endian per Part 10 Section 7.1, until the declared group length is
// exhausted or a non-0002 tag is peeked, then emits the accumulated group as
// a single FileMetaInformation part.
func (p *Parser) stepFileMeta() (Part, error) {
	for {
		data, ok := p.buf.Peek(4)
		if !ok {
			return Part{}, dcmerr.ErrNeedMoreData
		}
		group := binary.LittleEndian.Uint16(data[0:2])
		if group != 0x0002 {
			return p.finishFileMeta()
		}

		hdr, ok := peekHeaderExplicit(data, &p.buf, false)
		if !ok {
			return Part{}, dcmerr.ErrNeedMoreData
		}
		if hdr.length == UndefinedLength {
			return Part{}, dcmerr.New(dcmerr.DataInvalid, "file meta element %s has undefined length", hdr.tag)
		}
		full, ok := p.buf.Peek(hdr.size + int(hdr.length))
		if !ok {
			return Part{}, dcmerr.ErrNeedMoreData
		}
		valueBytes := append([]byte(nil), full[hdr.size:]...)
		p.consume(hdr.size + int(hdr.length))

		bin := value.NewBinaryUnchecked(hdr.vr, valueBytes)
		elem, err := element.NewElement(hdr.tag, hdr.vr, bin)
		if err != nil {
			return Part{}, dcmerr.New(dcmerr.DataInvalid, "building file meta element %s: %v", hdr.tag, err)
		}
		p.fileMetaElems = append(p.fileMetaElems, elem)

		if hdr.tag == groupLenTag {
			if len(valueBytes) != 4 {
				return Part{}, dcmerr.NewLengthInvalid(hdr.vr, uint32(len(valueBytes)), "file meta group length must be 4 bytes")
			}
			p.fileMetaGroupLength = binary.LittleEndian.Uint32(valueBytes)
			p.fileMetaGroupKnown = true
			p.fileMetaConsumed = 0
			continue
		}
		if p.fileMetaGroupKnown {
			p.fileMetaConsumed += uint32(hdr.size + int(hdr.length))
			if p.fileMetaConsumed >= p.fileMetaGroupLength {
				return p.finishFileMeta()
			}
		}
	}
}

func (p *Parser) finishFileMeta() (Part, error) {
	elems := p.fileMetaElems
	p.fileMetaElems = nil

	for _, e := range elems {
		if e.Tag() != tag.New(0x0002, 0x0010) {
			continue
		}
		s, err := e.Value().(*value.Binary).GetString()
		if err != nil {
			return Part{}, dcmerr.New(dcmerr.DataInvalid, "reading TransferSyntaxUID: %v", err)
		}
		ts, err := ResolveTransferSyntax(s)
		if err != nil {
			return Part{}, err
		}
		p.ts = ts
	}

	p.phase = phaseDataSet
	return NewFileMetaInformation(elems), nil
}

func (p *Parser) topFrame() *frame {
	if len(p.stack) == 0 {
		return nil
	}
	return &p.stack[len(p.stack)-1]
}

func (p *Parser) pushFrame(f frame) {
	p.stack = append(p.stack, f)
}

func closingPart(f frame) Part {
	if f.kind == frameItem {
		return NewSequenceItemEnd()
	}
	return NewSequenceEnd()
}

// consume advances the read cursor by n bytes and charges them against every
// enclosing definite-length frame's remaining budget, popping (and queueing
// the closing part for) any frame whose budget reaches zero as a result.
// Indefinite frames close only on their explicit delimiter, handled by the
// caller.
func (p *Parser) consume(n int) {
	p.buf.Advance(n)
	p.streamPos += int64(n)

	amt := uint32(n)
	for i := range p.stack {
		f := &p.stack[i]
		if !f.definite {
			continue
		}
		if amt >= f.remaining {
			f.remaining = 0
		} else {
			f.remaining -= amt
		}
	}
	for len(p.stack) > 0 {
		top := p.stack[len(p.stack)-1]
		if top.definite && top.remaining == 0 {
			p.stack = p.stack[:len(p.stack)-1]
			p.pending = append(p.pending, closingPart(top))
		} else {
			break
		}
	}
}

func (p *Parser) stepDataSet() (Part, error) {
	if p.haveCur {
		return p.emitValueChunk()
	}

	top := p.topFrame()

	data, ok := p.buf.Peek(4)
	if !ok {
		if top == nil && p.inputClosed {
			return NewEnd(), nil
		}
		if p.inputClosed {
			return Part{}, dcmerr.NewP10(p.streamPos, "input closed mid-element")
		}
		return Part{}, dcmerr.ErrNeedMoreData
	}

	order := byteOrderFor(p.ts)
	group := order.Uint16(data[0:2])
	elemNo := order.Uint16(data[2:4])
	t := tag.New(group, elemNo)

	if top != nil && top.kind == frameEncapsulated {
		switch t {
		case itemTag:
			length, ok := peekDelimiterLength(&p.buf, order)
			if !ok {
				return Part{}, dcmerr.ErrNeedMoreData
			}
			p.consume(8)
			p.curRemaining = length
			p.haveCur = length > 0
			if length == 0 {
				return NewPixelDataItem(0), nil
			}
			return NewPixelDataItem(length), nil
		case seqEndTag:
			if _, ok := peekDelimiterLength(&p.buf, order); !ok {
				return Part{}, dcmerr.ErrNeedMoreData
			}
			p.consume(8)
			p.stack = p.stack[:len(p.stack)-1]
			return NewSequenceEnd(), nil
		default:
			return Part{}, dcmerr.NewP10(p.streamPos, "expected pixel data item or sequence delimiter, got %s", t)
		}
	}

	if top != nil && top.kind == frameSequence {
		switch t {
		case itemTag:
			length, ok := peekDelimiterLength(&p.buf, order)
			if !ok {
				return Part{}, dcmerr.ErrNeedMoreData
			}
			p.consume(8)
			p.pushFrame(frame{kind: frameItem, definite: length != UndefinedLength, remaining: length})
			return NewSequenceItemStart(length), nil
		case seqEndTag:
			if _, ok := peekDelimiterLength(&p.buf, order); !ok {
				return Part{}, dcmerr.ErrNeedMoreData
			}
			p.consume(8)
			p.stack = p.stack[:len(p.stack)-1]
			return NewSequenceEnd(), nil
		default:
			return Part{}, dcmerr.NewP10(p.streamPos, "expected item or sequence delimiter, got %s", t)
		}
	}

	if top != nil && top.kind == frameItem && t == itemEndTag {
		if _, ok := peekDelimiterLength(&p.buf, order); !ok {
			return Part{}, dcmerr.ErrNeedMoreData
		}
		p.consume(8)
		p.stack = p.stack[:len(p.stack)-1]
		return NewSequenceItemEnd(), nil
	}

	if group == 0xFFFE {
		return Part{}, dcmerr.NewP10(p.streamPos, "unexpected delimiter %s", t)
	}

	hdr, ok := peekHeaderGeneric(data, &p.buf, p.ts)
	if !ok {
		return Part{}, dcmerr.ErrNeedMoreData
	}

	if hdr.length != UndefinedLength && hdr.length%2 != 0 {
		path, _ := dcmerr.NewPath().WithTag(hdr.tag)
		return Part{}, dcmerr.NewAt(dcmerr.DataInvalid, path, "element has odd length %d", hdr.length)
	}
	if hdr.length != UndefinedLength && hdr.length > p.opts.MaxElementLength {
		path, _ := dcmerr.NewPath().WithTag(hdr.tag)
		return Part{}, dcmerr.NewAt(dcmerr.DataInvalid, path, "element length %d exceeds configured maximum", hdr.length)
	}

	resolvedVR := hdr.vr
	if !p.ts.ExplicitVR {
		if info, err := tag.Find(hdr.tag); err == nil && len(info.VRs) > 0 {
			resolvedVR = info.VRs[0]
		} else {
			resolvedVR = vr.Unknown
		}
	}

	if hdr.tag == pixelDataTag && hdr.length == UndefinedLength {
		p.consume(hdr.size)
		p.pushFrame(frame{kind: frameEncapsulated})
		return NewDataElementHeader(hdr.tag, resolvedVR, hdr.length), nil
	}

	if resolvedVR == vr.SequenceOfItems {
		p.consume(hdr.size)
		p.pushFrame(frame{kind: frameSequence, definite: hdr.length != UndefinedLength, remaining: hdr.length})
		return NewSequenceStart(hdr.tag, resolvedVR), nil
	}

	if hdr.length == UndefinedLength {
		path, _ := dcmerr.NewPath().WithTag(hdr.tag)
		return Part{}, dcmerr.NewAt(dcmerr.DataInvalid, path, "only sequences and encapsulated pixel data may have undefined length")
	}

	p.consume(hdr.size)
	p.curRemaining = hdr.length
	p.haveCur = hdr.length > 0
	return NewDataElementHeader(hdr.tag, resolvedVR, hdr.length), nil
}

func (p *Parser) emitValueChunk() (Part, error) {
	want := p.curRemaining
	if uint32(p.opts.ChunkSize) < want {
		want = uint32(p.opts.ChunkSize)
	}
	avail := p.buf.Len()
	if avail == 0 {
		if p.inputClosed {
			return Part{}, dcmerr.NewP10(p.streamPos, "input closed with %d value bytes still expected", p.curRemaining)
		}
		return Part{}, dcmerr.ErrNeedMoreData
	}
	if uint32(avail) < want {
		want = uint32(avail)
	}
	data, ok := p.buf.Peek(int(want))
	if !ok || want == 0 {
		return Part{}, dcmerr.ErrNeedMoreData
	}
	chunk := append([]byte(nil), data...)
	p.consume(len(chunk))
	p.curRemaining -= uint32(len(chunk))
	last := p.curRemaining == 0
	if last {
		p.haveCur = false
	}
	return NewDataElementValueBytes(chunk, last), nil
}

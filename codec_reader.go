package dicom

import (
	"bytes"
	"compress/flate"
	"fmt"
	"io"
	"os"

	"github.com/dcmforge/dicom/element"
	"github.com/dcmforge/dicom/p10"
	"github.com/dcmforge/dicom/tag"
	"github.com/dcmforge/dicom/value"
	"github.com/dcmforge/dicom/vr"
)

// ParseFile reads and parses a DICOM file from the filesystem.
//
// This is the main entry point for parsing DICOM files. It handles:
//   - Reading the file preamble and validating the DICM prefix
//   - Parsing File Meta Information to determine transfer syntax
//   - Parsing the main dataset with the appropriate encoding, including
//     Deflated Explicit VR Little Endian
//
// Returns a DataSet containing all parsed DICOM elements (File Meta
// Information included), or an error if parsing fails.
//
// Example:
//
//	ds, err := dicom.ParseFile("image.dcm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Parsed %d elements\n", ds.Len())
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7
func ParseFile(path string) (*DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return ParseReader(f)
}

// ParseReader reads and parses a DICOM file from an io.Reader.
//
// This allows parsing DICOM data from any source (files, network, memory,
// etc). The reader must provide a complete DICOM file starting with the
// preamble.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part10.html#sect_7
func ParseReader(r io.Reader) (*DataSet, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	parser, err := p10.NewParser(p10.DefaultParserOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to construct parser: %w", err)
	}
	parser.Write(raw)
	parser.CloseInput()

	b := newDataSetBuilder()

	for {
		part, err := parser.NextPart()
		if err != nil {
			return nil, fmt.Errorf("parsing DICOM stream: %w", err)
		}

		switch part.Kind {
		case p10.FileMetaInformation:
			if err := b.addElements(part.MetaElements); err != nil {
				return nil, fmt.Errorf("adding file meta information: %w", err)
			}
			if parser.CurrentTransferSyntax().Deflated {
				parser, err = resumeDeflated(parser)
				if err != nil {
					return nil, err
				}
			}
		case p10.End:
			return b.finish()
		default:
			if err := b.feed(part); err != nil {
				return nil, err
			}
		}
	}
}

// resumeDeflated decompresses the remaining raw-DEFLATE encoded data set
// bytes (RFC 1951, not zlib per Part 5 Annex A) and hands them to a fresh
// no-preamble Parser primed to resume directly in the data set phase, since
// File Meta Information - already consumed from parser - is never
// compressed.
func resumeDeflated(parser *p10.Parser) (*p10.Parser, error) {
	compressed := parser.RemainingBytes()
	fr := flate.NewReader(bytes.NewReader(compressed))
	defer fr.Close()
	plain, err := io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("inflating deflated transfer syntax data set: %w", err)
	}

	next, err := p10.NewParserNoPreamble(p10.DefaultParserOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to construct inflated data set parser: %w", err)
	}
	next.SkipToDataSet(parser.CurrentTransferSyntax())
	next.Write(plain)
	next.CloseInput()
	return next, nil
}

// dataSetBuilder assembles a flat Part stream from p10.Parser into a nested
// *DataSet tree, tracking open sequences, items, and encapsulated pixel
// data with a frame stack that mirrors p10's own.
type dataSetBuilder struct {
	root *DataSet

	stack []builderFrame

	pendingTag     tag.Tag
	pendingVR      vr.VR
	pendingIsPixel bool
	pendingBytes   []byte
	havePending    bool
}

type builderFrameKind int

const (
	builderFrameSequence builderFrameKind = iota
	builderFrameItem
	builderFrameEncapsulated
)

type builderFrame struct {
	kind builderFrameKind

	// builderFrameSequence
	seqTag   tag.Tag
	seqItems []*DataSet

	// builderFrameItem
	elements []*element.Element

	// builderFrameEncapsulated
	pixelTag tag.Tag
	pixelVR  vr.VR
	bot      []byte
	gotBOT   bool
	items    [][]byte
}

func newDataSetBuilder() *dataSetBuilder {
	return &dataSetBuilder{root: NewDataSet()}
}

func (b *dataSetBuilder) top() *builderFrame {
	if len(b.stack) == 0 {
		return nil
	}
	return &b.stack[len(b.stack)-1]
}

func (b *dataSetBuilder) addElements(elems []*element.Element) error {
	for _, e := range elems {
		if err := b.root.Add(e); err != nil {
			return err
		}
	}
	return nil
}

// addElement files a completed element into whatever container is
// currently open: the item at the top of the stack, or the root data set
// if nothing is open.
func (b *dataSetBuilder) addElement(e *element.Element) error {
	top := b.top()
	if top == nil {
		return b.root.Add(e)
	}
	if top.kind != builderFrameItem {
		return fmt.Errorf("element %s encountered outside a sequence item", e.Tag())
	}
	top.elements = append(top.elements, e)
	return nil
}

func (b *dataSetBuilder) feed(part p10.Part) error {
	switch part.Kind {
	case p10.DataElementHeader:
		return b.handleHeader(part)
	case p10.DataElementValueBytes:
		return b.handleValueBytes(part)
	case p10.SequenceStart:
		b.stack = append(b.stack, builderFrame{kind: builderFrameSequence, seqTag: part.Tag})
		return nil
	case p10.SequenceItemStart:
		b.stack = append(b.stack, builderFrame{kind: builderFrameItem})
		return nil
	case p10.SequenceItemEnd:
		return b.closeItem()
	case p10.SequenceEnd:
		return b.closeSequenceOrEncapsulated()
	case p10.PixelDataItem:
		return b.handlePixelDataItem(part)
	default:
		return fmt.Errorf("unexpected part kind %s while building data set", part.Kind)
	}
}

func (b *dataSetBuilder) handleHeader(part p10.Part) error {
	if part.Length == p10.UndefinedLength {
		// Only encapsulated pixel data reaches here with undefined length;
		// sequences are announced via SequenceStart instead.
		b.stack = append(b.stack, builderFrame{kind: builderFrameEncapsulated, pixelTag: part.Tag, pixelVR: part.VR})
		return nil
	}
	b.pendingTag = part.Tag
	b.pendingVR = part.VR
	b.pendingIsPixel = false
	b.pendingBytes = nil
	b.havePending = true
	if part.Length == 0 {
		return b.finalizePending(nil)
	}
	return nil
}

func (b *dataSetBuilder) handlePixelDataItem(part p10.Part) error {
	top := b.top()
	if top == nil || top.kind != builderFrameEncapsulated {
		return fmt.Errorf("pixel data item outside encapsulated pixel data")
	}
	if part.Length == 0 {
		return b.finalizePixelItem(top, nil)
	}
	b.pendingIsPixel = true
	b.pendingBytes = nil
	b.havePending = true
	return nil
}

func (b *dataSetBuilder) handleValueBytes(part p10.Part) error {
	if !b.havePending {
		return fmt.Errorf("value bytes with no open element or pixel data item")
	}
	b.pendingBytes = append(b.pendingBytes, part.Bytes...)
	if !part.Last {
		return nil
	}
	if b.pendingIsPixel {
		top := b.top()
		if top == nil || top.kind != builderFrameEncapsulated {
			return fmt.Errorf("pixel data item value bytes outside encapsulated pixel data")
		}
		return b.finalizePixelItem(top, b.pendingBytes)
	}
	return b.finalizePending(b.pendingBytes)
}

func (b *dataSetBuilder) finalizePending(data []byte) error {
	bin := value.NewBinaryUnchecked(b.pendingVR, data)
	elem, err := element.NewElement(b.pendingTag, b.pendingVR, bin)
	if err != nil {
		return fmt.Errorf("building element %s: %w", b.pendingTag, err)
	}
	b.havePending = false
	b.pendingBytes = nil
	return b.addElement(elem)
}

func (b *dataSetBuilder) finalizePixelItem(top *builderFrame, data []byte) error {
	if !top.gotBOT {
		top.bot = data
		top.gotBOT = true
	} else {
		top.items = append(top.items, data)
	}
	b.havePending = false
	b.pendingBytes = nil
	return nil
}

func (b *dataSetBuilder) closeItem() error {
	top := b.top()
	if top == nil || top.kind != builderFrameItem {
		return fmt.Errorf("sequence item end outside an open item")
	}
	itemDS, err := NewDataSetWithElements(top.elements)
	if err != nil {
		return fmt.Errorf("building sequence item: %w", err)
	}
	b.stack = b.stack[:len(b.stack)-1]

	parent := b.top()
	if parent == nil || parent.kind != builderFrameSequence {
		return fmt.Errorf("sequence item closed outside an open sequence")
	}
	parent.seqItems = append(parent.seqItems, itemDS)
	return nil
}

func (b *dataSetBuilder) closeSequenceOrEncapsulated() error {
	top := b.top()
	if top == nil {
		return fmt.Errorf("sequence end with no open sequence")
	}
	b.stack = b.stack[:len(b.stack)-1]

	switch top.kind {
	case builderFrameSequence:
		seqVal := NewSequenceValue(top.seqItems)
		elem, err := element.NewElement(top.seqTag, seqVal.VR(), seqVal)
		if err != nil {
			return fmt.Errorf("building sequence %s: %w", top.seqTag, err)
		}
		return b.addElement(elem)
	case builderFrameEncapsulated:
		pixVal, err := value.NewEncapsulatedPixelData(top.pixelVR, top.bot, top.items)
		if err != nil {
			return fmt.Errorf("building encapsulated pixel data: %w", err)
		}
		elem, err := element.NewElement(top.pixelTag, pixVal.VR(), pixVal)
		if err != nil {
			return fmt.Errorf("building pixel data element: %w", err)
		}
		return b.addElement(elem)
	default:
		return fmt.Errorf("sequence end closing an item frame")
	}
}

func (b *dataSetBuilder) finish() (*DataSet, error) {
	if len(b.stack) != 0 {
		return nil, fmt.Errorf("stream ended with %d sequence/item frame(s) still open", len(b.stack))
	}
	return b.root, nil
}

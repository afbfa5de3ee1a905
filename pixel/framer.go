package pixel

import "fmt"

// jpegEOIMarker is the JPEG End-Of-Image marker. When encapsulated pixel
// data carries an empty Basic Offset Table and NumberOfFrames > 1, frame
// boundaries are recovered by scanning fragments for this marker: each
// fragment ending in it closes the frame currently being accumulated.
var jpegEOIMarker = []byte{0xFF, 0xD9}

// PixelInfo holds the subset of a PixelData element's sibling attributes
// needed to locate frame boundaries: Rows/Columns/BitsAllocated/
// SamplesPerPixel for native data, NumberOfFrames for both forms.
type PixelInfo struct {
	Rows                      uint16
	Columns                   uint16
	BitsAllocated             uint16
	BitsStored                uint16
	HighBit                   uint16
	PixelRepresentation       uint16
	SamplesPerPixel           uint16
	PhotometricInterpretation string
	PlanarConfiguration       uint16
	NumberOfFrames            int
	TransferSyntaxUID         string
}

// Framer partitions a PixelData element's raw bytes into per-frame byte
// slices without touching codec payloads - it never decodes JPEG, JPEG2000,
// or RLE streams; a frame's bytes remain exactly what the transfer syntax's
// codec expects to decode, whether compressed or not.
type Framer struct {
	info *PixelInfo
}

// NewFramer builds a Framer for the given pixel metadata.
func NewFramer(info *PixelInfo) *Framer {
	return &Framer{info: info}
}

// Frames splits raw into one byte slice per frame. For a native (uncompressed)
// transfer syntax, raw is the flat PixelData value and frames are split by
// BytesPerFrame; for 1-bit data every row is rounded up to whole bytes, and
// frames are cut only at byte boundaries, never at a bit offset. For an
// encapsulated transfer syntax, raw
// is the encapsulated item stream (Basic Offset Table + fragment items,
// no preceding sequence-delimiter header) and each returned slice is the
// concatenation of that frame's fragments, codec bytes untouched.
func (f *Framer) Frames(raw []byte, encapsulated bool) ([][]byte, error) {
	if encapsulated {
		return f.encapsulatedFrames(raw)
	}
	return f.nativeFrames(raw)
}

// BytesPerFrame returns the number of bytes one native frame occupies,
// including bit-packing for 1-bit pixel data (per DICOM PS3.5 Section
// 8.1.1, each row starts a new byte - rows are not bit-packed across row
// boundaries).
func (info *PixelInfo) BytesPerFrame() int {
	pixelsPerFrame := int(info.Rows) * int(info.Columns) * int(info.SamplesPerPixel)
	if info.BitsAllocated == 1 {
		bytesPerRow := (int(info.Columns)*int(info.SamplesPerPixel) + 7) / 8
		return bytesPerRow * int(info.Rows)
	}
	bytesPerPixel := int(info.BitsAllocated) / 8
	return pixelsPerFrame * bytesPerPixel
}

func (f *Framer) nativeFrames(raw []byte) ([][]byte, error) {
	numFrames := f.info.NumberOfFrames
	if numFrames <= 0 {
		numFrames = 1
	}
	bpf := f.info.BytesPerFrame()
	want := bpf * numFrames
	if len(raw) < want {
		return nil, &PixelDataError{
			Field:    "native pixel data length",
			Expected: fmt.Sprintf("%d bytes (%d frames x %d bytes/frame)", want, numFrames, bpf),
			Actual:   fmt.Sprintf("%d bytes", len(raw)),
		}
	}
	frames := make([][]byte, numFrames)
	for i := 0; i < numFrames; i++ {
		frames[i] = raw[i*bpf : (i+1)*bpf]
	}
	return frames, nil
}

// encapsulatedFrames resolves frame boundaries in encapsulated pixel data in
// priority order: a non-empty Basic Offset Table is authoritative; failing
// that, NumberOfFrames == 1 means every fragment belongs to the single
// frame; otherwise fragments are grouped by JPEG EOI marker.
func (f *Framer) encapsulatedFrames(raw []byte) ([][]byte, error) {
	encoded, err := ParseEncapsulatedPixelData(raw)
	if err != nil {
		return nil, &PixelDataError{
			Field:    "encapsulated pixel data",
			Expected: "well-formed item stream",
			Actual:   err.Error(),
		}
	}
	return f.framesFromEncapsulated(encoded)
}

// FramesFromItems splits already-decoded encapsulated pixel data - a Basic
// Offset Table plus fragment items, as produced by parsing a DICOM stream
// directly into a *value.EncapsulatedPixelData - into per-frame byte
// slices. Unlike Frames, it takes items already split out by the caller
// rather than the raw P10 item-stream wire format, so no re-serialization
// round trip is needed before frame resolution.
func (f *Framer) FramesFromItems(bot []byte, items [][]byte) ([][]byte, error) {
	offsetTable, err := parseBasicOffsetTable(bot)
	if err != nil {
		return nil, &PixelDataError{
			Field:    "basic offset table",
			Expected: "length a multiple of 4 bytes",
			Actual:   err.Error(),
		}
	}

	fragments := make([]Fragment, len(items))
	offset := 0
	for i, item := range items {
		fragments[i] = Fragment{Data: item, Offset: offset}
		// Count the 8-byte item header too, as Basic Offset Table entries do.
		offset += 8 + len(item)
	}

	return f.framesFromEncapsulated(&EncapsulatedPixelData{
		BasicOffsetTable: *offsetTable,
		Fragments:        fragments,
	})
}

func (f *Framer) framesFromEncapsulated(encoded *EncapsulatedPixelData) ([][]byte, error) {
	if len(encoded.BasicOffsetTable.Offsets) > 0 {
		numFrames := encoded.NumFrames()
		frames := make([][]byte, numFrames)
		for i := 0; i < numFrames; i++ {
			fragments, err := encoded.GetFrameFragments(i)
			if err != nil {
				return nil, &PixelDataError{
					Field:    fmt.Sprintf("frame %d fragments", i),
					Expected: "fragments located via Basic Offset Table",
					Actual:   err.Error(),
				}
			}
			frames[i] = ConcatenateFragments(fragments)
		}
		return frames, nil
	}

	if f.info.NumberOfFrames <= 1 {
		return [][]byte{ConcatenateFragments(encoded.Fragments)}, nil
	}

	return groupFragmentsByEOI(encoded.Fragments, f.info.NumberOfFrames)
}

// groupFragmentsByEOI accumulates fragments into a frame until one ends in
// the JPEG EOI marker, closing that frame and starting the next. Used only
// when the Basic Offset Table is empty and more than one frame is declared -
// the one case the standard leaves genuinely ambiguous without inspecting
// codec bytes.
func groupFragmentsByEOI(fragments []Fragment, expectedFrames int) ([][]byte, error) {
	frames := make([][]byte, 0, expectedFrames)
	var current []byte
	for _, frag := range fragments {
		current = append(current, frag.Data...)
		if endsWithEOI(frag.Data) {
			frames = append(frames, current)
			current = nil
		}
	}
	if len(current) > 0 {
		frames = append(frames, current)
	}
	if len(frames) != expectedFrames {
		return nil, &PixelDataError{
			Field:    "encapsulated frame count (EOI grouping)",
			Expected: fmt.Sprintf("%d frames", expectedFrames),
			Actual:   fmt.Sprintf("%d frames recovered from fragment EOI markers", len(frames)),
		}
	}
	return frames, nil
}

func endsWithEOI(data []byte) bool {
	if len(data) < 2 {
		return false
	}
	return data[len(data)-2] == jpegEOIMarker[0] && data[len(data)-1] == jpegEOIMarker[1]
}

// DropEndBytes returns data with its last n bytes removed, used to strip a
// codec's trailing padding byte (added to keep an odd-length fragment or
// frame's total even, per Part 5 Section 7.1.1) before handing frame bytes
// to a decoder that rejects trailing garbage. n must not exceed len(data).
func DropEndBytes(data []byte, n int) ([]byte, error) {
	if n < 0 || n > len(data) {
		return nil, fmt.Errorf("cannot drop %d bytes from %d-byte value", n, len(data))
	}
	return data[:len(data)-n], nil
}

package p10

import (
	"encoding/binary"

	"github.com/dcmforge/dicom/tag"
	"github.com/dcmforge/dicom/vr"
)

func byteOrderFor(ts TransferSyntax) binary.ByteOrder {
	if ts.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// header is a peeked, not-yet-consumed element header: size is the total
// number of header bytes (tag + VR + length fields), not including the
// value payload.
type header struct {
	tag    tag.Tag
	vr     vr.VR
	length uint32
	size   int
}

// peekHeaderExplicit peeks an Explicit VR element header (used for File
// Meta Information, which is always Explicit VR Little Endian regardless of
// the main dataset's transfer syntax). data must already hold at least 4
// bytes (the tag); buf is consulted for the remaining header bytes.
func peekHeaderExplicit(data []byte, buf *byteBuf, bigEndian bool) (header, bool) {
	order := binary.ByteOrder(binary.LittleEndian)
	if bigEndian {
		order = binary.BigEndian
	}
	group := order.Uint16(data[0:2])
	elem := order.Uint16(data[2:4])
	t := tag.New(group, elem)

	six, ok := buf.Peek(6)
	if !ok {
		return header{}, false
	}
	vrCode := string(six[4:6])
	v, err := vr.Parse(vrCode)
	if err != nil {
		v = vr.Unknown
	}
	if v.UsesExplicitLength32() {
		twelve, ok := buf.Peek(12)
		if !ok {
			return header{}, false
		}
		length := order.Uint32(twelve[8:12])
		return header{tag: t, vr: v, length: length, size: 12}, true
	}
	eight, ok := buf.Peek(8)
	if !ok {
		return header{}, false
	}
	length := uint32(order.Uint16(eight[6:8]))
	return header{tag: t, vr: v, length: length, size: 8}, true
}

// peekHeaderGeneric peeks the next element header under ts, handling both
// Implicit VR (tag + 4-byte length, VR resolved later from the dictionary)
// and Explicit VR (short and long forms) encodings.
func peekHeaderGeneric(data []byte, buf *byteBuf, ts TransferSyntax) (header, bool) {
	order := byteOrderFor(ts)
	group := order.Uint16(data[0:2])
	elem := order.Uint16(data[2:4])
	t := tag.New(group, elem)

	if !ts.ExplicitVR {
		eight, ok := buf.Peek(8)
		if !ok {
			return header{}, false
		}
		length := order.Uint32(eight[4:8])
		return header{tag: t, vr: vr.Unknown, length: length, size: 8}, true
	}

	if ts.BigEndian {
		return peekHeaderExplicit(data, buf, true)
	}
	return peekHeaderExplicit(data, buf, false)
}

// peekDelimiterLength peeks the 4-byte length field of an item or sequence
// delimiter (FFFE,E000 / FFFE,E00D / FFFE,E0DD), which carries no VR field.
// buf must already have had its first 4 bytes confirmed to be the
// delimiter's tag.
func peekDelimiterLength(buf *byteBuf, order binary.ByteOrder) (uint32, bool) {
	data, ok := buf.Peek(8)
	if !ok {
		return 0, false
	}
	return order.Uint32(data[4:8]), true
}

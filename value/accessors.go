package value

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dcmforge/dicom/datetime"
	"github.com/dcmforge/dicom/dcmerr"
	"github.com/dcmforge/dicom/tag"
	"github.com/dcmforge/dicom/vr"
)

// trimPadding strips every trailing space and NUL byte (including the pad
// byte left by even-length padding), without disturbing interior whitespace.
func trimPadding(s string) string {
	return strings.TrimRight(s, " \x00")
}

// GetStrings decodes a string-VR Binary value as its backslash-separated
// components. Returns ValueNotPresent if the VR is not a string type.
func (b *Binary) GetStrings() ([]string, error) {
	if !b.valueVR.IsStringType() {
		return nil, dcmerr.New(dcmerr.ValueNotPresent, "VR %s is not a string type", b.valueVR.String())
	}
	if !utf8.Valid(b.data) {
		return nil, dcmerr.New(dcmerr.ValueInvalid, "value bytes are not valid UTF-8")
	}
	raw := trimPadding(string(b.data))
	if raw == "" {
		return []string{}, nil
	}
	parts := strings.Split(raw, `\`)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts, nil
}

// GetString decodes a single-valued string VR. Returns
// MultiplicityMismatch if more than one value is present.
func (b *Binary) GetString() (string, error) {
	strs, err := b.GetStrings()
	if err != nil {
		return "", err
	}
	if len(strs) != 1 {
		return "", dcmerr.New(dcmerr.MultiplicityMismatch, "expected exactly one value, got %d", len(strs))
	}
	return strs[0], nil
}

// GetFloats decodes a DS (Decimal String) Binary as a slice of float64.
// Per DICOM Part 5 Section 6.2, leading/trailing spaces around each
// component are accepted; anything else is a ValueInvalid error.
func (b *Binary) GetFloats() ([]float64, error) {
	if b.valueVR != vr.DecimalString {
		return nil, dcmerr.New(dcmerr.ValueNotPresent, "VR %s is not DS", b.valueVR.String())
	}
	strs, err := b.GetStrings()
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(strs))
	for i, s := range strs {
		f, perr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if perr != nil {
			return nil, dcmerr.New(dcmerr.ValueInvalid, "invalid decimal string %q", s).Wrap(perr)
		}
		out[i] = f
	}
	return out, nil
}

// GetFloat decodes a single-valued DS.
func (b *Binary) GetFloat() (float64, error) {
	floats, err := b.GetFloats()
	if err != nil {
		return 0, err
	}
	if len(floats) != 1 {
		return 0, dcmerr.New(dcmerr.MultiplicityMismatch, "expected exactly one value, got %d", len(floats))
	}
	return floats[0], nil
}

// GetInts decodes IS (Integer String) as int64s, or a binary integer VR
// (SS, US, SL, UL, SV) as its little-endian elements. UV is not accepted
// here (ValueNotPresent); use GetUints.
func (b *Binary) GetInts() ([]int64, error) {
	switch b.valueVR {
	case vr.IntegerString:
		strs, err := b.GetStrings()
		if err != nil {
			return nil, err
		}
		out := make([]int64, len(strs))
		for i, s := range strs {
			n, perr := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if perr != nil {
				return nil, dcmerr.New(dcmerr.ValueInvalid, "invalid integer string %q", s).Wrap(perr)
			}
			out[i] = n
		}
		return out, nil
	case vr.SignedShort:
		return decodeInts(b.data, 2, func(u uint64) int64 { return int64(int16(u)) })
	case vr.UnsignedShort:
		return decodeInts(b.data, 2, func(u uint64) int64 { return int64(uint16(u)) })
	case vr.SignedLong:
		return decodeInts(b.data, 4, func(u uint64) int64 { return int64(int32(u)) })
	case vr.UnsignedLong:
		return decodeInts(b.data, 4, func(u uint64) int64 { return int64(uint32(u)) })
	case vr.SignedVeryLong:
		return decodeInts(b.data, 8, func(u uint64) int64 { return int64(u) })
	default:
		return nil, dcmerr.New(dcmerr.ValueNotPresent, "VR %s has no integer accessor", b.valueVR.String())
	}
}

// GetUints decodes UV (64-bit unsigned) elements. UV cannot round-trip
// through GetInts without risking silent truncation near math.MaxUint64,
// so it gets its own accessor returning uint64 natively (Go's uint64 is
// already the target language's 64-bit type - no big-integer type needed).
func (b *Binary) GetUints() ([]uint64, error) {
	if b.valueVR != vr.UnsignedVeryLong {
		return nil, dcmerr.New(dcmerr.ValueNotPresent, "VR %s is not UV", b.valueVR.String())
	}
	if len(b.data)%8 != 0 {
		return nil, dcmerr.New(dcmerr.ValueInvalid, "UV payload length %d is not a multiple of 8", len(b.data))
	}
	out := make([]uint64, len(b.data)/8)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(b.data[i*8:])
	}
	return out, nil
}

func decodeInts(data []byte, width int, conv func(uint64) int64) ([]int64, error) {
	if len(data)%width != 0 {
		return nil, dcmerr.New(dcmerr.ValueInvalid, "payload length %d is not a multiple of %d", len(data), width)
	}
	out := make([]int64, len(data)/width)
	for i := range out {
		var u uint64
		switch width {
		case 2:
			u = uint64(binary.LittleEndian.Uint16(data[i*2:]))
		case 4:
			u = uint64(binary.LittleEndian.Uint32(data[i*4:]))
		case 8:
			u = binary.LittleEndian.Uint64(data[i*8:])
		}
		out[i] = conv(u)
	}
	return out, nil
}

// GetInt decodes a single-valued integer VR.
func (b *Binary) GetInt() (int64, error) {
	ints, err := b.GetInts()
	if err != nil {
		return 0, err
	}
	if len(ints) != 1 {
		return 0, dcmerr.New(dcmerr.MultiplicityMismatch, "expected exactly one value, got %d", len(ints))
	}
	return ints[0], nil
}

// GetBinaryFloats decodes FL/FD elements as float64.
func (b *Binary) GetBinaryFloats() ([]float64, error) {
	switch b.valueVR {
	case vr.FloatingPointSingle:
		if len(b.data)%4 != 0 {
			return nil, dcmerr.New(dcmerr.ValueInvalid, "FL payload length %d is not a multiple of 4", len(b.data))
		}
		out := make([]float64, len(b.data)/4)
		for i := range out {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b.data[i*4:])))
		}
		return out, nil
	case vr.FloatingPointDouble:
		if len(b.data)%8 != 0 {
			return nil, dcmerr.New(dcmerr.ValueInvalid, "FD payload length %d is not a multiple of 8", len(b.data))
		}
		out := make([]float64, len(b.data)/8)
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b.data[i*8:]))
		}
		return out, nil
	default:
		return nil, dcmerr.New(dcmerr.ValueNotPresent, "VR %s has no binary float accessor", b.valueVR.String())
	}
}

// GetAttributeTags decodes an AT value as a slice of tag.Tag.
func (b *Binary) GetAttributeTags() ([]tag.Tag, error) {
	if b.valueVR != vr.AttributeTag {
		return nil, dcmerr.New(dcmerr.ValueNotPresent, "VR %s is not AT", b.valueVR.String())
	}
	if len(b.data)%4 != 0 {
		return nil, dcmerr.New(dcmerr.ValueInvalid, "AT payload length %d is not a multiple of 4", len(b.data))
	}
	out := make([]tag.Tag, len(b.data)/4)
	for i := range out {
		group := binary.LittleEndian.Uint16(b.data[i*4:])
		elem := binary.LittleEndian.Uint16(b.data[i*4+2:])
		out[i] = tag.New(group, elem)
	}
	return out, nil
}

// GetDate decodes a single-valued DA.
func (b *Binary) GetDate() (datetime.Date, error) {
	if b.valueVR != vr.Date {
		return datetime.Date{}, dcmerr.New(dcmerr.ValueNotPresent, "VR %s is not DA", b.valueVR.String())
	}
	s, err := b.GetString()
	if err != nil {
		return datetime.Date{}, err
	}
	d, perr := datetime.ParseDate(s)
	if perr != nil {
		return datetime.Date{}, dcmerr.New(dcmerr.ValueInvalid, "invalid date %q", s).Wrap(perr)
	}
	return d, nil
}

// GetTime decodes a single-valued TM.
func (b *Binary) GetTime() (datetime.Time, error) {
	if b.valueVR != vr.Time {
		return datetime.Time{}, dcmerr.New(dcmerr.ValueNotPresent, "VR %s is not TM", b.valueVR.String())
	}
	s, err := b.GetString()
	if err != nil {
		return datetime.Time{}, err
	}
	t, perr := datetime.ParseTime(s)
	if perr != nil {
		return datetime.Time{}, dcmerr.New(dcmerr.ValueInvalid, "invalid time %q", s).Wrap(perr)
	}
	return t, nil
}

// GetDateTime decodes a single-valued DT.
func (b *Binary) GetDateTime() (datetime.DateTime, error) {
	if b.valueVR != vr.DateTime {
		return datetime.DateTime{}, dcmerr.New(dcmerr.ValueNotPresent, "VR %s is not DT", b.valueVR.String())
	}
	s, err := b.GetString()
	if err != nil {
		return datetime.DateTime{}, err
	}
	dt, perr := datetime.ParseDateTime(s)
	if perr != nil {
		return datetime.DateTime{}, dcmerr.New(dcmerr.ValueInvalid, "invalid datetime %q", s).Wrap(perr)
	}
	return dt, nil
}

// GetAge decodes a single-valued AS.
func (b *Binary) GetAge() (datetime.Age, error) {
	if b.valueVR != vr.AgeString {
		return datetime.Age{}, dcmerr.New(dcmerr.ValueNotPresent, "VR %s is not AS", b.valueVR.String())
	}
	s, err := b.GetString()
	if err != nil {
		return datetime.Age{}, err
	}
	age, perr := datetime.ParseAge(s)
	if perr != nil {
		return datetime.Age{}, dcmerr.New(dcmerr.ValueInvalid, "invalid age string %q", s).Wrap(perr)
	}
	return age, nil
}

// GetPersonNames decodes a PN value as its backslash-separated list of raw
// name strings, each still in "alphabetic=ideographic=phonetic" form; see
// the charset package for decoding the individual component groups.
func (b *Binary) GetPersonNames() ([]string, error) {
	if b.valueVR != vr.PersonName {
		return nil, dcmerr.New(dcmerr.ValueNotPresent, "VR %s is not PN", b.valueVR.String())
	}
	raw := trimPadding(string(b.data))
	if raw == "" {
		return []string{}, nil
	}
	return strings.Split(raw, `\`), nil
}

// Ints decodes the Lookup Table Descriptor's three u16 words. contextVR
// selects the signedness of the middle word: vr.SignedShort decodes it as
// int16, anything else (conventionally vr.UnsignedShort) decodes it as
// uint16. The first and third words are always unsigned.
func (l *LookupTableDescriptor) Ints(contextVR vr.VR) ([]int64, error) {
	first := int64(binary.LittleEndian.Uint16(l.data[0:2]))
	var middle int64
	if contextVR == vr.SignedShort {
		middle = int64(int16(binary.LittleEndian.Uint16(l.data[2:4])))
	} else {
		middle = int64(binary.LittleEndian.Uint16(l.data[2:4]))
	}
	third := int64(binary.LittleEndian.Uint16(l.data[4:6]))
	return []int64{first, middle, third}, nil
}

package value

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"

	"github.com/dcmforge/dicom/dcmerr"
	"github.com/dcmforge/dicom/tag"
	"github.com/dcmforge/dicom/vr"
)

// maxComponentLengths gives the maximum character length of one item of a
// multi-valued string VR, per DICOM Part 5 Section 6.2. A VR not present
// here has no standard-defined maximum (UC, UR, UT).
var maxComponentLengths = map[vr.VR]int{
	vr.ApplicationEntity: 16,
	vr.AgeString:         4,
	vr.CodeString:        16,
	vr.Date:              8,
	vr.DecimalString:     16,
	vr.DateTime:          26,
	vr.IntegerString:     12,
	vr.LongString:        64,
	vr.LongText:          10240,
	vr.PersonName:        324,
	vr.ShortString:       16,
	vr.ShortText:         1024,
	vr.Time:              14,
	vr.UniqueIdentifier:  64,
}

// isCodeStringByte reports whether b is allowed in a Code String (CS) value:
// uppercase letters, digits, space, and underscore.
func isCodeStringByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b == ' ' || b == '_'
}

func joinAndPad(v vr.VR, items []string) []byte {
	joined := strings.Join(items, "\\")
	return padToEven(v, []byte(joined))
}

// validateStringItems checks the shared multi-valued string constraints:
// no embedded backslash (unless the VR allows it, i.e. PN's own internal
// structure uses backslash for multiple names - each Name is still checked
// for raw backslashes by the caller since PN needs its own rules) and the
// per-component maximum length.
func validateStringItems(v vr.VR, items []string) error {
	maxLen := maxComponentLengths[v]
	for _, item := range items {
		if !v.AllowsBackslash() && strings.Contains(item, `\`) {
			return dcmerr.New(dcmerr.ValueInvalid, "string list item contains backslashes")
		}
		if maxLen > 0 && len(item) > maxLen {
			return dcmerr.New(dcmerr.ValueInvalid, "string item %q exceeds maximum length %d for VR %s", item, maxLen, v.String())
		}
	}
	return nil
}

// NewStringValue builds a Binary value for a plain string VR (AE, CS, DA,
// DT, IS, LO, LT, SH, ST, TM, UC, UR, UT) by joining items with backslash
// and padding to even length with the VR's padding byte.
//
// DS, PN, and UI have their own constructors below because each carries
// additional rules (DS trims/validates numerics, PN has '='-separated
// component groups, UI zero-pads and is length-capped at 64).
func NewStringValue(v vr.VR, items []string) (*Binary, error) {
	if !v.IsStringType() {
		return nil, dcmerr.New(dcmerr.ValueInvalid, "VR %s is not a string type", v.String())
	}
	if v == vr.CodeString {
		for _, item := range items {
			for i := 0; i < len(item); i++ {
				if !isCodeStringByte(item[i]) {
					return nil, dcmerr.New(dcmerr.ValueInvalid, "code string item %q contains a disallowed character", item)
				}
			}
		}
	}
	if err := validateStringItems(v, items); err != nil {
		return nil, err
	}
	return &Binary{valueVR: v, data: joinAndPad(v, items)}, nil
}

// NewCodeString builds a CS value, trimming trailing spaces and validating
// the restricted [A-Z0-9 _] character set.
func NewCodeString(items []string) (*Binary, error) {
	trimmed := make([]string, len(items))
	for i, it := range items {
		trimmed[i] = strings.TrimRight(it, " ")
	}
	return NewStringValue(vr.CodeString, trimmed)
}

// NewUniqueIdentifier builds a UI value. Each component is validated against
// the 64-character limit and the buffer is zero-padded (not space-padded)
// to even length, per DICOM Part 5 Section 9.
func NewUniqueIdentifier(items []string) (*Binary, error) {
	if err := validateStringItems(vr.UniqueIdentifier, items); err != nil {
		return nil, err
	}
	return &Binary{valueVR: vr.UniqueIdentifier, data: joinAndPad(vr.UniqueIdentifier, items)}, nil
}

// NewDecimalString builds a DS value from float64s, formatting each with
// the shortest round-trippable decimal representation.
func NewDecimalString(values []float64) (*Binary, error) {
	items := make([]string, len(values))
	for i, f := range values {
		items[i] = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return NewStringValue(vr.DecimalString, items)
}

// NewIntegerString builds an IS value from int64s.
func NewIntegerString(values []int64) (*Binary, error) {
	items := make([]string, len(values))
	for i, n := range values {
		items[i] = strconv.FormatInt(n, 10)
	}
	return NewStringValue(vr.IntegerString, items)
}

// NewPersonName builds a PN value from one or more names, each already
// formatted with '^' component separators and optionally '=' group
// separators (alphabetic=ideographic=phonetic). Multiple names are
// separated by backslash.
func NewPersonName(names []string) (*Binary, error) {
	for _, n := range names {
		if strings.Contains(n, `\`) {
			return nil, dcmerr.New(dcmerr.ValueInvalid, "person name item contains backslashes")
		}
		if len(n) > maxComponentLengths[vr.PersonName] {
			return nil, dcmerr.New(dcmerr.ValueInvalid, "person name %q exceeds maximum length", n)
		}
	}
	return &Binary{valueVR: vr.PersonName, data: padToEven(vr.PersonName, []byte(strings.Join(names, `\`)))}, nil
}

// NewAttributeTag builds an AT value from a list of tags, encoded as
// little-endian group,element pairs.
func NewAttributeTag(tags []tag.Tag) (*Binary, error) {
	data := make([]byte, len(tags)*4)
	for i, t := range tags {
		binary.LittleEndian.PutUint16(data[i*4:], t.Group)
		binary.LittleEndian.PutUint16(data[i*4+2:], t.Element)
	}
	return &Binary{valueVR: vr.AttributeTag, data: data}, nil
}

func buildIntSlice(v vr.VR, width int, n int, put func(b []byte, i int)) *Binary {
	data := make([]byte, n*width)
	for i := 0; i < n; i++ {
		put(data, i)
	}
	return &Binary{valueVR: v, data: data}
}

// NewSignedShort builds an SS value. Values must fit in [-32768, 32767].
func NewSignedShort(values []int64) (*Binary, error) {
	for _, val := range values {
		if val < math.MinInt16 || val > math.MaxInt16 {
			return nil, dcmerr.New(dcmerr.ValueInvalid, "value %d out of range for SS", val)
		}
	}
	return buildIntSlice(vr.SignedShort, 2, len(values), func(b []byte, i int) {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(int16(values[i])))
	}), nil
}

// NewUnsignedShort builds a US value. Values must fit in [0, 65535].
func NewUnsignedShort(values []uint64) (*Binary, error) {
	for _, val := range values {
		if val > math.MaxUint16 {
			return nil, dcmerr.New(dcmerr.ValueInvalid, "value %d out of range for US", val)
		}
	}
	return buildIntSlice(vr.UnsignedShort, 2, len(values), func(b []byte, i int) {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(values[i]))
	}), nil
}

// NewSignedLong builds an SL value. Values must fit in [-2^31, 2^31-1].
func NewSignedLong(values []int64) (*Binary, error) {
	for _, val := range values {
		if val < math.MinInt32 || val > math.MaxInt32 {
			return nil, dcmerr.New(dcmerr.ValueInvalid, "value %d out of range for SL", val)
		}
	}
	return buildIntSlice(vr.SignedLong, 4, len(values), func(b []byte, i int) {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(int32(values[i])))
	}), nil
}

// NewUnsignedLong builds a UL value. Values must fit in [0, 2^32-1].
func NewUnsignedLong(values []uint64) (*Binary, error) {
	for _, val := range values {
		if val > math.MaxUint32 {
			return nil, dcmerr.New(dcmerr.ValueInvalid, "value %d out of range for UL", val)
		}
	}
	return buildIntSlice(vr.UnsignedLong, 4, len(values), func(b []byte, i int) {
		binary.LittleEndian.PutUint32(b[i*4:], uint32(values[i]))
	}), nil
}

// NewSignedVeryLong builds an SV value (64-bit signed integer).
func NewSignedVeryLong(values []int64) (*Binary, error) {
	return buildIntSlice(vr.SignedVeryLong, 8, len(values), func(b []byte, i int) {
		binary.LittleEndian.PutUint64(b[i*8:], uint64(values[i]))
	}), nil
}

// NewUnsignedVeryLong builds a UV value (64-bit unsigned integer).
func NewUnsignedVeryLong(values []uint64) (*Binary, error) {
	return buildIntSlice(vr.UnsignedVeryLong, 8, len(values), func(b []byte, i int) {
		binary.LittleEndian.PutUint64(b[i*8:], values[i])
	}), nil
}

// NewFloatSingle builds an FL value.
func NewFloatSingle(values []float64) (*Binary, error) {
	return buildIntSlice(vr.FloatingPointSingle, 4, len(values), func(b []byte, i int) {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(float32(values[i])))
	}), nil
}

// NewFloatDouble builds an FD value.
func NewFloatDouble(values []float64) (*Binary, error) {
	return buildIntSlice(vr.FloatingPointDouble, 8, len(values), func(b []byte, i int) {
		binary.LittleEndian.PutUint64(b[i*8:], math.Float64bits(values[i]))
	}), nil
}

// NewBulkBinary builds a bulk-binary VR value (OB, OW, OD, OF, OL, OV, UN)
// from a raw byte buffer, validating alignment and padding to even length.
func NewBulkBinary(v vr.VR, data []byte) (*Binary, error) {
	if !v.IsBulkType() {
		return nil, dcmerr.New(dcmerr.ValueInvalid, "VR %s is not a bulk binary type", v.String())
	}
	padded := padToEven(v, data)
	if err := validateLength(v, padded); err != nil {
		return nil, err
	}
	return &Binary{valueVR: v, data: padded}, nil
}

package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dcmforge/dicom/uid"
	"github.com/dcmforge/dicom/vr"
)

const hexPreviewBytes = 16

// AsString extracts a best-effort display string from v: the first string
// component for string-type Binary values, or the empty string for anything
// else (binary payloads, sequences, a failed decode). Callers that need the
// distinction between "empty value" and "decode error" should use
// Binary.GetString directly instead.
func AsString(v Value) string {
	b, ok := v.(*Binary)
	if !ok {
		return ""
	}
	s, err := b.GetString()
	if err != nil {
		return ""
	}
	return s
}

// truncate shortens s to maxWidth runes, appending an ellipsis. maxWidth <= 0
// means unlimited.
func truncate(s string, maxWidth int) string {
	runes := []rune(s)
	if maxWidth <= 0 || len(runes) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return "…"
	}
	return string(runes[:maxWidth-1]) + "…"
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func formatHexPreview(data []byte) string {
	n := len(data)
	truncated := n > hexPreviewBytes
	if truncated {
		data = data[:hexPreviewBytes]
	}
	hex := make([]string, len(data))
	for i, b := range data {
		hex[i] = fmt.Sprintf("%02X", b)
	}
	body := strings.Join(hex, " ")
	if truncated {
		body += " …"
	}
	return "[" + body + "]"
}

// FormatString renders b as a single line, truncated to maxWidth. It never
// panics or propagates a decode error: malformed bytes render as
// "<error converting to string>", and non-UTF-8 string bytes render with a
// "!!" prefix, per the Value contract.
func (b *Binary) FormatString(maxWidth int) string {
	return truncate(b.formatFull(), maxWidth)
}

func (b *Binary) formatFull() string {
	v := b.valueVR
	switch {
	case v == vr.AttributeTag:
		tags, err := b.GetAttributeTags()
		if err != nil {
			return "<error converting to string>"
		}
		parts := make([]string, len(tags))
		for i, t := range tags {
			parts[i] = t.String()
		}
		return strings.Join(parts, ", ")

	case v.IsStringType():
		strs, err := b.GetStrings()
		if err != nil {
			if strings.Contains(err.Error(), "UTF-8") {
				return "!! invalid UTF-8 in string value"
			}
			return "<error converting to string>"
		}
		quoted := make([]string, len(strs))
		for i, s := range strs {
			quoted[i] = strconv.Quote(s)
			if v == vr.UniqueIdentifier {
				if name := uid.Name(s); name != "" {
					quoted[i] += " (" + name + ")"
				}
			}
		}
		return strings.Join(quoted, ", ")

	case v == vr.FloatingPointSingle || v == vr.FloatingPointDouble:
		floats, err := b.GetBinaryFloats()
		if err != nil {
			return "<error converting to string>"
		}
		parts := make([]string, len(floats))
		for i, f := range floats {
			parts[i] = formatFloat(f)
		}
		return strings.Join(parts, ", ")

	case v.IsNumericType():
		ints, err := b.GetInts()
		if err != nil {
			if v == vr.UnsignedVeryLong {
				uints, uerr := b.GetUints()
				if uerr != nil {
					return "<error converting to string>"
				}
				parts := make([]string, len(uints))
				for i, u := range uints {
					parts[i] = strconv.FormatUint(u, 10)
				}
				return strings.Join(parts, ", ")
			}
			return "<error converting to string>"
		}
		parts := make([]string, len(ints))
		for i, n := range ints {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, ", ")

	default:
		return formatHexPreview(b.data)
	}
}

// FormatString renders the 6-byte descriptor as bracketed hex; it has no
// string or numeric interpretation independent of a context VR.
func (l *LookupTableDescriptor) FormatString(maxWidth int) string {
	return truncate(formatHexPreview(l.data[:]), maxWidth)
}

// FormatString renders encapsulated pixel data as "Items: N, bytes: M".
func (e *EncapsulatedPixelData) FormatString(maxWidth int) string {
	return truncate(fmt.Sprintf("Items: %d, bytes: %d", e.ItemCount(), e.TotalItemBytes()), maxWidth)
}

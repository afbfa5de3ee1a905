// Package charset decodes DICOM text VRs (PN, LO, SH, ST, LT, UT, etc.)
// using the Specific Character Set named by a dataset's (0008,0005)
// element. An absent or empty character set means 7-bit ASCII; an
// unrecognized defined term is a ValueInvalid error.
//
// DICOM Standard Reference: Part 3, Annex C.12.1.1.2; Part 5, Section 6.1.2.3.
package charset

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/dcmforge/dicom/dcmerr"
	"github.com/dcmforge/dicom/dicomlog"
)

// CodingSystem holds up to three decoders for a single Specific Character
// Set value: Alphabetic, Ideographic, and Phonetic components, as used by
// Person Name's three-component group encoding (Part 5, Section 6.2). Every
// VR other than PN only ever uses Ideographic. A nil decoder means 7-bit
// ASCII, the implicit default.
type CodingSystem struct {
	Alphabetic  *encoding.Decoder
	Ideographic *encoding.Decoder
	Phonetic    *encoding.Decoder
}

// ASCII is the default CodingSystem used when (0008,0005) is absent or
// empty.
var ASCII = CodingSystem{}

// dicomToHTMLName maps a DICOM defined term for Specific Character Set to
// the golang.org/x/text/encoding/htmlindex name that decodes it. An empty
// mapped name means 7-bit ASCII (no decoder needed).
var dicomToHTMLName = map[string]string{
	"ISO 2022 IR 6":   "",
	"ISO_IR 100":      "iso-8859-1",
	"ISO 2022 IR 100": "iso-8859-1",
	"ISO_IR 101":      "iso-8859-2",
	"ISO 2022 IR 101": "iso-8859-2",
	"ISO_IR 109":      "iso-8859-3",
	"ISO 2022 IR 109": "iso-8859-3",
	"ISO_IR 110":      "iso-8859-4",
	"ISO 2022 IR 110": "iso-8859-4",
	"ISO_IR 126":      "iso-ir-126",
	"ISO 2022 IR 126": "iso-ir-126",
	"ISO_IR 127":      "iso-ir-127",
	"ISO 2022 IR 127": "iso-ir-127",
	"ISO_IR 138":      "iso-ir-138",
	"ISO 2022 IR 138": "iso-ir-138",
	"ISO_IR 144":      "iso-ir-144",
	"ISO 2022 IR 144": "iso-ir-144",
	"ISO_IR 148":      "iso-ir-148",
	"ISO 2022 IR 148": "iso-ir-148",
	"ISO_IR 13":       "shift_jis",
	"ISO 2022 IR 13":  "shift_jis",
	"ISO 2022 IR 87":  "iso-2022-jp",
	"ISO 2022 IR 159": "iso-2022-jp",
	"ISO 2022 IR 149": "euc-kr",
	"ISO_IR 166":      "iso-ir-166",
	"ISO 2022 IR 166": "iso-ir-166",
	"ISO_IR 192":      "utf-8",
	"GB18030":         "gb18030",
}

// Parse resolves the (0008,0005) Specific Character Set value - zero, one,
// two, or three component terms - to a CodingSystem. Zero components means
// ASCII. One component is shared by all three groups. Two components are
// (Alphabetic, shared Ideographic/Phonetic) per the standard's group 2/3
// convention for Person Name. Three supply one decoder per group.
func Parse(terms []string) (CodingSystem, error) {
	var decoders []*encoding.Decoder
	for _, term := range terms {
		d, err := decoderFor(term)
		if err != nil {
			return CodingSystem{}, err
		}
		decoders = append(decoders, d)
	}

	switch len(decoders) {
	case 0:
		return ASCII, nil
	case 1:
		return CodingSystem{decoders[0], decoders[0], decoders[0]}, nil
	case 2:
		return CodingSystem{decoders[0], decoders[1], decoders[1]}, nil
	default:
		return CodingSystem{decoders[0], decoders[1], decoders[2]}, nil
	}
}

func decoderFor(term string) (*encoding.Decoder, error) {
	htmlName, known := dicomToHTMLName[term]
	if !known {
		return nil, dcmerr.New(dcmerr.ValueInvalid, "unrecognized Specific Character Set term %q", term)
	}
	if htmlName == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(htmlName)
	if err != nil {
		dicomlog.WithFields(map[string]interface{}{"term": term, "encoding": htmlName}).
			Warn("charset: registered mapping has no matching golang.org/x/text encoding")
		return nil, dcmerr.New(dcmerr.ValueInvalid, "encoding %q for term %q not available", htmlName, term).Wrap(err)
	}
	return enc.NewDecoder(), nil
}

// Decode converts raw bytes to a UTF-8 string using d, or returns raw
// unchanged as a string (already-ASCII bytes are valid UTF-8 as-is) when d
// is nil.
func Decode(d *encoding.Decoder, raw []byte) (string, error) {
	if d == nil {
		return string(raw), nil
	}
	out, err := d.Bytes(raw)
	if err != nil {
		return "", dcmerr.New(dcmerr.ValueInvalid, "decoding text value").Wrap(err)
	}
	return string(out), nil
}

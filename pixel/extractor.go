package pixel

import (
	"fmt"

	"github.com/dcmforge/dicom"
	"github.com/dcmforge/dicom/tag"
	"github.com/dcmforge/dicom/value"
)

// RawFrames holds a PixelData element's sibling attributes together with
// its content split into per-frame byte slices, exactly as it appears on
// the wire: still codec-compressed for an encapsulated transfer syntax,
// raw samples for a native one. Decoding the codec payload or converting
// between color spaces is left entirely to the caller - this package only
// delimits and delivers the bytes a decoder would need.
type RawFrames struct {
	Info   PixelInfo
	Frames [][]byte
}

// Extract reads pixel metadata from ds and splits its PixelData element
// (7FE0,0010) into per-frame byte slices via Framer, without decoding any
// compressed payload.
//
// Required DICOM attributes:
//   - (0028,0010) Rows
//   - (0028,0011) Columns
//   - (0028,0100) BitsAllocated
//   - (0028,0101) BitsStored
//   - (0028,0102) HighBit
//   - (0028,0103) PixelRepresentation
//   - (0028,0002) SamplesPerPixel
//   - (0028,0004) PhotometricInterpretation
//   - (7FE0,0010) PixelData
//   - (0002,0010) TransferSyntaxUID (from File Meta Information)
//
// Optional DICOM attributes:
//   - (0028,0006) PlanarConfiguration (defaults to 0)
//   - (0028,0008) NumberOfFrames (defaults to 1)
func Extract(ds *dicom.DataSet) (*RawFrames, error) {
	rows, err := getUint16(ds, tag.Rows, "Rows")
	if err != nil {
		return nil, err
	}

	columns, err := getUint16(ds, tag.Columns, "Columns")
	if err != nil {
		return nil, err
	}

	bitsAllocated, err := getUint16(ds, tag.BitsAllocated, "BitsAllocated")
	if err != nil {
		return nil, err
	}

	bitsStored, err := getUint16(ds, tag.BitsStored, "BitsStored")
	if err != nil {
		return nil, err
	}

	highBit, err := getUint16(ds, tag.HighBit, "HighBit")
	if err != nil {
		return nil, err
	}

	pixelRepresentation, err := getUint16(ds, tag.PixelRepresentation, "PixelRepresentation")
	if err != nil {
		return nil, err
	}

	samplesPerPixel, err := getUint16(ds, tag.SamplesPerPixel, "SamplesPerPixel")
	if err != nil {
		return nil, err
	}

	photometricInterpretation, err := getString(ds, tag.PhotometricInterpretation, "PhotometricInterpretation")
	if err != nil {
		return nil, err
	}

	planarConfiguration := getUint16WithDefault(ds, tag.PlanarConfiguration, 0)
	numberOfFrames := getIntWithDefault(ds, tag.NumberOfFrames, 1)

	transferSyntaxUID, err := getString(ds, tag.TransferSyntaxUID, "TransferSyntaxUID")
	if err != nil {
		return nil, err
	}

	pixelDataElem, err := ds.Get(tag.PixelData)
	if err != nil {
		return nil, &MissingAttributeError{
			AttributeName: "PixelData",
			Tag:           tag.PixelData.String(),
		}
	}

	info := PixelInfo{
		Rows:                      rows,
		Columns:                   columns,
		BitsAllocated:             bitsAllocated,
		BitsStored:                bitsStored,
		HighBit:                   highBit,
		PixelRepresentation:       pixelRepresentation,
		SamplesPerPixel:           samplesPerPixel,
		PhotometricInterpretation: photometricInterpretation,
		PlanarConfiguration:       planarConfiguration,
		NumberOfFrames:            numberOfFrames,
		TransferSyntaxUID:         transferSyntaxUID,
	}
	framer := NewFramer(&info)

	var frames [][]byte
	switch v := pixelDataElem.Value().(type) {
	case *value.EncapsulatedPixelData:
		frames, err = framer.FramesFromItems(v.BasicOffsetTable(), v.Items())
		if err != nil {
			return nil, err
		}
	case *value.Binary:
		data, err := v.Bytes()
		if err != nil {
			return nil, &PixelDataError{
				Field:    "PixelData bytes",
				Expected: "readable byte payload",
				Actual:   err.Error(),
			}
		}
		frames, err = framer.Frames(data, false)
		if err != nil {
			return nil, err
		}
	default:
		return nil, &PixelDataError{
			Field:    "PixelData value type",
			Expected: "*value.Binary or *value.EncapsulatedPixelData",
			Actual:   fmt.Sprintf("%T", pixelDataElem.Value()),
		}
	}

	return &RawFrames{Info: info, Frames: frames}, nil
}

// getUint16 extracts a uint16 value from a DICOM element.
func getUint16(ds *dicom.DataSet, t tag.Tag, name string) (uint16, error) {
	elem, err := ds.Get(t)
	if err != nil {
		return 0, &MissingAttributeError{
			AttributeName: name,
			Tag:           t.String(),
		}
	}

	binVal, ok := elem.Value().(*value.Binary)
	if !ok {
		return 0, &PixelDataError{
			Field:    fmt.Sprintf("%s value type", name),
			Expected: "*value.Binary",
			Actual:   fmt.Sprintf("%T", elem.Value()),
		}
	}

	ints, err := binVal.GetInts()
	if err != nil || len(ints) == 0 {
		return 0, &PixelDataError{
			Field:    fmt.Sprintf("%s value", name),
			Expected: "non-empty integer array",
			Actual:   "empty array",
		}
	}

	val := ints[0]
	if val < 0 || val > 65535 {
		return 0, &PixelDataError{
			Field:    fmt.Sprintf("%s value", name),
			Expected: "uint16 range [0, 65535]",
			Actual:   fmt.Sprintf("%d", val),
		}
	}

	return uint16(val), nil
}

// getUint16WithDefault extracts a uint16 value with a default if the element is missing.
func getUint16WithDefault(ds *dicom.DataSet, t tag.Tag, defaultVal uint16) uint16 {
	elem, err := ds.Get(t)
	if err != nil {
		return defaultVal
	}

	binVal, ok := elem.Value().(*value.Binary)
	if !ok {
		return defaultVal
	}

	ints, err := binVal.GetInts()
	if err != nil || len(ints) == 0 {
		return defaultVal
	}

	val := ints[0]
	if val < 0 || val > 65535 {
		return defaultVal
	}

	return uint16(val)
}

// getIntWithDefault extracts an int value with a default if the element is missing.
func getIntWithDefault(ds *dicom.DataSet, t tag.Tag, defaultVal int) int {
	elem, err := ds.Get(t)
	if err != nil {
		return defaultVal
	}

	// NumberOfFrames (IS - Integer String) is stored as a Binary value
	// regardless of VR; GetInts parses the IS text form directly.
	binVal, ok := elem.Value().(*value.Binary)
	if !ok {
		return defaultVal
	}
	ints, err := binVal.GetInts()
	if err != nil || len(ints) == 0 {
		return defaultVal
	}
	return int(ints[0])
}

// getString extracts a string value from a DICOM element.
func getString(ds *dicom.DataSet, t tag.Tag, name string) (string, error) {
	elem, err := ds.Get(t)
	if err != nil {
		return "", &MissingAttributeError{
			AttributeName: name,
			Tag:           t.String(),
		}
	}

	binVal, ok := elem.Value().(*value.Binary)
	if !ok {
		return "", &PixelDataError{
			Field:    fmt.Sprintf("%s value type", name),
			Expected: "*value.Binary",
			Actual:   fmt.Sprintf("%T", elem.Value()),
		}
	}

	strs, err := binVal.GetStrings()
	if err != nil || len(strs) == 0 {
		return "", &PixelDataError{
			Field:    fmt.Sprintf("%s value", name),
			Expected: "non-empty string array",
			Actual:   "empty array",
		}
	}

	return strs[0], nil
}

package pixel

import (
	"testing"

	"github.com/dcmforge/dicom"
	"github.com/dcmforge/dicom/element"
	"github.com/dcmforge/dicom/tag"
	"github.com/dcmforge/dicom/value"
	"github.com/dcmforge/dicom/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNewElement(t tag.Tag, v vr.VR, val value.Value) *element.Element {
	elem, err := element.NewElement(t, v, val)
	if err != nil {
		panic(err)
	}
	return elem
}

func mustUnsignedShort(values ...uint64) *value.Binary {
	v, err := value.NewUnsignedShort(values)
	if err != nil {
		panic(err)
	}
	return v
}

func mustIntegerString(values ...int64) *value.Binary {
	v, err := value.NewIntegerString(values)
	if err != nil {
		panic(err)
	}
	return v
}

func mustCodeString(values ...string) *value.Binary {
	v, err := value.NewCodeString(values)
	if err != nil {
		panic(err)
	}
	return v
}

func mustUniqueIdentifier(values ...string) *value.Binary {
	v, err := value.NewUniqueIdentifier(values)
	if err != nil {
		panic(err)
	}
	return v
}

// nativeImageDataSet builds a minimal single-frame native (uncompressed)
// dataset: 2x2 pixels, 16 bits allocated, monochrome.
func nativeImageDataSet(t *testing.T, pixels []byte) *dicom.DataSet {
	t.Helper()
	ds := dicom.NewDataSet()
	require.NoError(t, ds.Add(mustNewElement(tag.Rows, vr.UnsignedShort, mustUnsignedShort(2))))
	require.NoError(t, ds.Add(mustNewElement(tag.Columns, vr.UnsignedShort, mustUnsignedShort(2))))
	require.NoError(t, ds.Add(mustNewElement(tag.BitsAllocated, vr.UnsignedShort, mustUnsignedShort(16))))
	require.NoError(t, ds.Add(mustNewElement(tag.BitsStored, vr.UnsignedShort, mustUnsignedShort(16))))
	require.NoError(t, ds.Add(mustNewElement(tag.HighBit, vr.UnsignedShort, mustUnsignedShort(15))))
	require.NoError(t, ds.Add(mustNewElement(tag.PixelRepresentation, vr.UnsignedShort, mustUnsignedShort(0))))
	require.NoError(t, ds.Add(mustNewElement(tag.SamplesPerPixel, vr.UnsignedShort, mustUnsignedShort(1))))
	require.NoError(t, ds.Add(mustNewElement(tag.PhotometricInterpretation, vr.CodeString, mustCodeString("MONOCHROME2"))))
	require.NoError(t, ds.Add(mustNewElement(tag.TransferSyntaxUID, vr.UniqueIdentifier,
		mustUniqueIdentifier("1.2.840.10008.1.2.1"))))

	pixVal, err := value.NewBulkBinary(vr.OtherWord, pixels)
	require.NoError(t, err)
	require.NoError(t, ds.Add(mustNewElement(tag.PixelData, vr.OtherWord, pixVal)))
	return ds
}

func TestExtract_Native_SingleFrame(t *testing.T) {
	pixels := make([]byte, 2*2*2)
	for i := range pixels {
		pixels[i] = byte(i)
	}
	ds := nativeImageDataSet(t, pixels)

	raw, err := Extract(ds)
	require.NoError(t, err)
	require.Len(t, raw.Frames, 1)
	assert.Equal(t, pixels, raw.Frames[0])
	assert.Equal(t, uint16(2), raw.Info.Rows)
	assert.Equal(t, uint16(2), raw.Info.Columns)
	assert.Equal(t, 1, raw.Info.NumberOfFrames)
}

func TestExtract_Native_MultiFrame(t *testing.T) {
	bpf := 2 * 2 * 2
	pixels := make([]byte, bpf*3)
	for i := range pixels {
		pixels[i] = byte(i)
	}
	ds := nativeImageDataSet(t, pixels)
	require.NoError(t, ds.Add(mustNewElement(tag.NumberOfFrames, vr.IntegerString, mustIntegerString(3))))

	raw, err := Extract(ds)
	require.NoError(t, err)
	require.Len(t, raw.Frames, 3)
	for i, frame := range raw.Frames {
		assert.Equal(t, pixels[i*bpf:(i+1)*bpf], frame)
	}
}

func TestExtract_Encapsulated_WithOffsetTable(t *testing.T) {
	ds := nativeImageDataSet(t, nil)
	require.NoError(t, ds.Remove(tag.PixelData))
	require.NoError(t, ds.Add(mustNewElement(tag.NumberOfFrames, vr.IntegerString, mustIntegerString(2))))

	frame1 := []byte{0x01, 0x02, 0x03}
	frame2 := []byte{0x04, 0x05, 0x06, 0x07}
	// Frame 2 starts after frame 1's 8-byte item header and 3 data bytes.
	bot := []byte{0x00, 0x00, 0x00, 0x00, 0x0B, 0x00, 0x00, 0x00}
	pixVal, err := value.NewEncapsulatedPixelData(vr.OtherByte, bot, [][]byte{frame1, frame2})
	require.NoError(t, err)
	require.NoError(t, ds.Add(mustNewElement(tag.PixelData, vr.OtherByte, pixVal)))

	raw, err := Extract(ds)
	require.NoError(t, err)
	require.Len(t, raw.Frames, 2)
	assert.Equal(t, frame1, raw.Frames[0])
	assert.Equal(t, frame2, raw.Frames[1])
}

func TestExtract_MissingRequiredAttribute(t *testing.T) {
	ds := dicom.NewDataSet()
	_, err := Extract(ds)
	require.Error(t, err)
	var missing *MissingAttributeError
	assert.ErrorAs(t, err, &missing)
}

func TestExtract_UnsupportedPixelDataValueType(t *testing.T) {
	ds := nativeImageDataSet(t, nil)
	require.NoError(t, ds.Remove(tag.PixelData))
	seqVal := dicom.NewSequenceValue(nil)
	require.NoError(t, ds.Add(mustNewElement(tag.PixelData, vr.SequenceOfItems, seqVal)))

	_, err := Extract(ds)
	require.Error(t, err)
	var pixErr *PixelDataError
	assert.ErrorAs(t, err, &pixErr)
}

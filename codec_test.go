package dicom_test

import (
	"path/filepath"
	"testing"

	dicom "github.com/dcmforge/dicom"
	"github.com/dcmforge/dicom/element"
	"github.com/dcmforge/dicom/tag"
	"github.com/dcmforge/dicom/uid"
	"github.com/dcmforge/dicom/value"
	"github.com/dcmforge/dicom/vr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUniqueIdentifier(s string) *value.Binary {
	v, err := value.NewUniqueIdentifier([]string{s})
	if err != nil {
		panic(err)
	}
	return v
}

func baseTestDataSet(t *testing.T) *dicom.DataSet {
	t.Helper()
	ds := dicom.NewDataSet()
	require.NoError(t, ds.Add(mustNewElement(tag.New(0x0008, 0x0016), vr.UniqueIdentifier,
		mustUniqueIdentifier("1.2.840.10008.5.1.4.1.1.7"))))
	require.NoError(t, ds.Add(mustNewElement(tag.New(0x0008, 0x0018), vr.UniqueIdentifier,
		mustUniqueIdentifier("1.2.3.4.5.6.7"))))
	require.NoError(t, ds.Add(mustNewElement(tag.New(0x0010, 0x0010), vr.PersonName,
		mustNewStringValue(vr.PersonName, []string{"Doe^Jane"}))))
	require.NoError(t, ds.Add(mustNewElement(tag.New(0x0020, 0x0013), vr.IntegerString,
		mustNewStringValue(vr.IntegerString, []string{"3"}))))
	return ds
}

func TestCodec_RoundTripExplicitVRLittleEndian(t *testing.T) {
	ds := baseTestDataSet(t)
	path := filepath.Join(t.TempDir(), "plain.dcm")

	require.NoError(t, dicom.WriteFile(path, ds))

	got, err := dicom.ParseFile(path)
	require.NoError(t, err)

	elem, err := got.Get(tag.New(0x0010, 0x0010))
	require.NoError(t, err)
	assert.Equal(t, "Doe^Jane", value.AsString(elem.Value()))

	tsElem, err := got.Get(tag.New(0x0002, 0x0010))
	require.NoError(t, err)
	assert.Equal(t, uid.ExplicitVRLittleEndian.String(), value.AsString(tsElem.Value()))
}

func TestCodec_RoundTripDeflatedExplicitVRLittleEndian(t *testing.T) {
	ds := baseTestDataSet(t)
	path := filepath.Join(t.TempDir(), "deflated.dcm")

	deflated := uid.DeflatedExplicitVRLittleEndian
	err := dicom.WriteFileWithOptions(path, ds, dicom.WriteOptions{TransferSyntax: &deflated})
	require.NoError(t, err)

	got, err := dicom.ParseFile(path)
	require.NoError(t, err)

	elem, err := got.Get(tag.New(0x0010, 0x0010))
	require.NoError(t, err)
	assert.Equal(t, "Doe^Jane", value.AsString(elem.Value()))

	seriesElem, err := got.Get(tag.New(0x0020, 0x0013))
	require.NoError(t, err)
	assert.Equal(t, "3", value.AsString(seriesElem.Value()))
}

func TestCodec_RoundTripSequence(t *testing.T) {
	ds := baseTestDataSet(t)

	item1, err := dicom.NewDataSetWithElements([]*element.Element{
		mustNewElement(tag.New(0x0008, 0x0100), vr.ShortString,
			mustNewStringValue(vr.ShortString, []string{"CODE1"})),
	})
	require.NoError(t, err)
	item2, err := dicom.NewDataSetWithElements([]*element.Element{
		mustNewElement(tag.New(0x0008, 0x0100), vr.ShortString,
			mustNewStringValue(vr.ShortString, []string{"CODE2"})),
	})
	require.NoError(t, err)

	seqVal := dicom.NewSequenceValue([]*dicom.DataSet{item1, item2})
	seqElem, err := element.NewElement(tag.New(0x0040, 0xA043), vr.SequenceOfItems, seqVal)
	require.NoError(t, err)
	require.NoError(t, ds.Add(seqElem))

	path := filepath.Join(t.TempDir(), "sequence.dcm")
	require.NoError(t, dicom.WriteFile(path, ds))

	got, err := dicom.ParseFile(path)
	require.NoError(t, err)

	elem, err := got.Get(tag.New(0x0040, 0xA043))
	require.NoError(t, err)
	seq, ok := elem.Value().(*dicom.SequenceValue)
	require.True(t, ok)
	require.Equal(t, 2, seq.ItemCount())

	codeElem, err := seq.Items()[0].Get(tag.New(0x0008, 0x0100))
	require.NoError(t, err)
	assert.Equal(t, "CODE1", value.AsString(codeElem.Value()))
}

func TestCodec_RoundTripEncapsulatedPixelData(t *testing.T) {
	ds := baseTestDataSet(t)

	frame1 := []byte{0xFF, 0xD8, 0x01, 0x02, 0xFF, 0xD9}
	frame2 := []byte{0xFF, 0xD8, 0x03, 0xFF, 0xD9}
	pixVal, err := value.NewEncapsulatedPixelData(vr.OtherByte, nil, [][]byte{frame1, frame2})
	require.NoError(t, err)
	pixElem, err := element.NewElement(tag.New(0x7FE0, 0x0010), vr.OtherByte, pixVal)
	require.NoError(t, err)
	require.NoError(t, ds.Add(pixElem))

	path := filepath.Join(t.TempDir(), "encapsulated.dcm")
	require.NoError(t, dicom.WriteFile(path, ds))

	got, err := dicom.ParseFile(path)
	require.NoError(t, err)

	elem, err := got.Get(tag.New(0x7FE0, 0x0010))
	require.NoError(t, err)
	pix, ok := elem.Value().(*value.EncapsulatedPixelData)
	require.True(t, ok)
	require.Equal(t, 2, pix.ItemCount())
	assert.Equal(t, frame1, pix.Items()[0])
	assert.Equal(t, frame2, pix.Items()[1])
}

func TestCodec_ParseFile_MissingFile(t *testing.T) {
	_, err := dicom.ParseFile(filepath.Join(t.TempDir(), "does-not-exist.dcm"))
	assert.Error(t, err)
}

func TestCodec_WriteFile_MissingRequiredElements(t *testing.T) {
	ds := dicom.NewDataSet()
	path := filepath.Join(t.TempDir(), "incomplete.dcm")

	err := dicom.WriteFile(path, ds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SOPClassUID")
}

func TestCodec_WriteFile_NilDataSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nil.dcm")
	err := dicom.WriteFile(path, nil)
	assert.Error(t, err)
}

func TestCodec_WriteFile_RefusesOverwriteByDefault(t *testing.T) {
	ds := baseTestDataSet(t)
	path := filepath.Join(t.TempDir(), "exists.dcm")

	require.NoError(t, dicom.WriteFile(path, ds))
	err := dicom.WriteFile(path, ds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

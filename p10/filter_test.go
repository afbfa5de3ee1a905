package p10_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dcmforge/dicom/p10"
	"github.com/dcmforge/dicom/tag"
	"github.com/dcmforge/dicom/uid"
	"github.com/dcmforge/dicom/vr"
)

func TestPartFilter_DropsNonMatchingScalarElement(t *testing.T) {
	input := buildMinimalFileMeta(t, uid.ExplicitVRLittleEndian.String())
	input = append(input, explicitElement(t, 0x0010, 0x0010, vr.PersonName, []byte("Doe^John"))...)
	input = append(input, explicitElement(t, 0x0008, 0x0060, vr.CodeString, []byte("CT"))...)

	parser, err := p10.NewParser(p10.DefaultParserOptions())
	require.NoError(t, err)
	parser.Write(input)
	parser.CloseInput()

	filtered := p10.NewPartFilter(parser, p10.ByTags(tag.Modality))

	part, err := filtered.NextPart()
	require.NoError(t, err)
	require.Equal(t, p10.FileMetaInformation, part.Kind)

	part, err = filtered.NextPart()
	require.NoError(t, err)
	require.Equal(t, p10.DataElementHeader, part.Kind)
	require.Equal(t, tag.Modality, part.Tag)

	part, err = filtered.NextPart()
	require.NoError(t, err)
	require.Equal(t, p10.DataElementValueBytes, part.Kind)
	require.Equal(t, "CT", string(part.Bytes))
	require.True(t, part.Last)

	part, err = filtered.NextPart()
	require.NoError(t, err)
	require.Equal(t, p10.End, part.Kind)
}

func TestPartFilter_DropsEntireSequenceSubtree(t *testing.T) {
	itemElement := explicitElement(t, 0x0010, 0x0010, vr.PersonName, []byte("A^B "))
	var item []byte
	item = append(item, 0xFE, 0xFF, 0x00, 0xE0)
	itemLen := make([]byte, 4)
	binary.LittleEndian.PutUint32(itemLen, uint32(len(itemElement)))
	item = append(item, itemLen...)
	item = append(item, itemElement...)

	seqEnd := []byte{0xFE, 0xFF, 0xDD, 0xE0, 0, 0, 0, 0}

	seqHeader := make([]byte, 8)
	binary.LittleEndian.PutUint16(seqHeader[0:2], 0x0008)
	binary.LittleEndian.PutUint16(seqHeader[2:4], 0x1115)
	copy(seqHeader[4:6], "SQ")
	seqHeader = append(seqHeader, 0, 0, 0, 0)
	binary.LittleEndian.PutUint32(seqHeader[8:12], p10.UndefinedLength)

	input := buildMinimalFileMeta(t, uid.ExplicitVRLittleEndian.String())
	input = append(input, seqHeader...)
	input = append(input, item...)
	input = append(input, seqEnd...)
	input = append(input, explicitElement(t, 0x0008, 0x0060, vr.CodeString, []byte("CT"))...)

	parser, err := p10.NewParser(p10.DefaultParserOptions())
	require.NoError(t, err)
	parser.Write(input)
	parser.CloseInput()

	filtered := p10.NewPartFilter(parser, p10.ByTags(tag.Modality))

	_, err = filtered.NextPart() // FileMetaInformation
	require.NoError(t, err)

	part, err := filtered.NextPart()
	require.NoError(t, err)
	require.Equal(t, p10.DataElementHeader, part.Kind)
	require.Equal(t, tag.Modality, part.Tag)

	part, err = filtered.NextPart()
	require.NoError(t, err)
	require.Equal(t, p10.DataElementValueBytes, part.Kind)

	part, err = filtered.NextPart()
	require.NoError(t, err)
	require.Equal(t, p10.End, part.Kind)
}

func TestPartFilter_DropsEncapsulatedPixelData(t *testing.T) {
	var pixelHeader []byte
	pixelHeader = append(pixelHeader, 0xE0, 0x7F, 0x10, 0x00) // (7FE0,0010)
	pixelHeader = append(pixelHeader, 'O', 'B', 0, 0)
	pixelHeader = append(pixelHeader, 0xFF, 0xFF, 0xFF, 0xFF)

	botItem := []byte{0xFE, 0xFF, 0x00, 0xE0, 0, 0, 0, 0}
	fragData := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	fragItem := []byte{0xFE, 0xFF, 0x00, 0xE0, 4, 0, 0, 0}
	fragItem = append(fragItem, fragData...)
	seqEnd := []byte{0xFE, 0xFF, 0xDD, 0xE0, 0, 0, 0, 0}

	input := buildMinimalFileMeta(t, uid.ExplicitVRLittleEndian.String())
	input = append(input, pixelHeader...)
	input = append(input, botItem...)
	input = append(input, fragItem...)
	input = append(input, seqEnd...)
	input = append(input, explicitElement(t, 0x0008, 0x0060, vr.CodeString, []byte("CT"))...)

	parser, err := p10.NewParser(p10.DefaultParserOptions())
	require.NoError(t, err)
	parser.Write(input)
	parser.CloseInput()

	filtered := p10.NewPartFilter(parser, p10.Not(p10.ByTags(tag.PixelData)))

	_, err = filtered.NextPart() // FileMetaInformation
	require.NoError(t, err)

	part, err := filtered.NextPart()
	require.NoError(t, err)
	require.Equal(t, p10.DataElementHeader, part.Kind)
	require.Equal(t, tag.Modality, part.Tag)

	part, err = filtered.NextPart()
	require.NoError(t, err)
	require.Equal(t, p10.DataElementValueBytes, part.Kind)
	require.Equal(t, "CT", string(part.Bytes))

	part, err = filtered.NextPart()
	require.NoError(t, err)
	require.Equal(t, p10.End, part.Kind)
}

func TestByGroup(t *testing.T) {
	match := p10.ByGroup(0x0028)
	require.True(t, match(tag.Rows))
	require.False(t, match(tag.Modality))
}

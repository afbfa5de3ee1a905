package dicom

import (
	"bytes"
	"compress/flate"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dcmforge/dicom/element"
	"github.com/dcmforge/dicom/p10"
	"github.com/dcmforge/dicom/tag"
	"github.com/dcmforge/dicom/uid"
	"github.com/dcmforge/dicom/value"
	"github.com/dcmforge/dicom/vr"
)

// WriteOptions configures DICOM file writing behavior.
type WriteOptions struct {
	// TransferSyntax specifies the transfer syntax for encoding the dataset.
	// If nil, uses Explicit VR Little Endian (1.2.840.10008.1.2.1).
	TransferSyntax *uid.UID

	// Overwrite allows overwriting existing files.
	// Default: false (error if file exists)
	Overwrite bool

	// CreateDirs creates parent directories if they don't exist.
	// Default: false (the parent directory must already exist)
	CreateDirs bool

	// Atomic uses atomic write (temp file + rename) to prevent corruption on failure.
	// Default: false (the file is written in place)
	Atomic bool

	// ValidateAfterWrite re-parses the file after writing to verify integrity.
	// Default: false (for performance)
	ValidateAfterWrite bool
}

// WriteFile writes a DataSet to a DICOM file with proper Part 10 format.
//
// The function always generates the File Meta Information group itself; any
// (0002,xxxx) elements already in ds are not written. The generated group holds:
//   - (0002,0001) File Meta Information Version
//   - (0002,0002) Media Storage SOP Class UID (from dataset 0008,0016)
//   - (0002,0003) Media Storage SOP Instance UID (from dataset 0008,0018)
//   - (0002,0010) Transfer Syntax UID
//   - (0002,0012) Implementation Class UID
//   - (0002,0013) Implementation Version Name
//
// Example:
//
//	err := dicom.WriteFile("/path/output.dcm", dataset)
func WriteFile(path string, ds *DataSet) error {
	return WriteFileWithOptions(path, ds, WriteOptions{})
}

// WriteFileWithOptions writes a DataSet to a DICOM file with configurable options.
//
// Example:
//
//	opts := dicom.WriteOptions{
//	    TransferSyntax: &uid.ExplicitVRLittleEndian,
//	    Overwrite:      true,
//	}
//	err := dicom.WriteFileWithOptions("/path/output.dcm", dataset, opts)
func WriteFileWithOptions(path string, ds *DataSet, opts WriteOptions) error {
	if ds == nil {
		return fmt.Errorf("cannot write nil dataset")
	}
	opts = applyDefaultWriteOptions(opts)

	if err := validateRequiredElements(ds); err != nil {
		return err
	}

	if opts.CreateDirs {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create parent directories: %w", err)
		}
	}

	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("file already exists: %s (use Overwrite: true to replace)", path)
		}
	}

	if opts.Atomic {
		return writeFileAtomic(path, ds, opts)
	}
	return writeFileDirect(path, ds, opts)
}

func applyDefaultWriteOptions(opts WriteOptions) WriteOptions {
	if opts.TransferSyntax == nil {
		explicitVRLE := uid.ExplicitVRLittleEndian
		opts.TransferSyntax = &explicitVRLE
	}
	return opts
}

func validateRequiredElements(ds *DataSet) error {
	sopClassUIDElem, err := ds.Get(tag.New(0x0008, 0x0016))
	if err != nil {
		return fmt.Errorf("missing required element SOPClassUID (0008,0016): %w", err)
	}
	sopClassUID := value.AsString(sopClassUIDElem.Value())
	if sopClassUID == "" {
		return fmt.Errorf("SOPClassUID (0008,0016) is empty")
	}

	sopInstanceUIDElem, err := ds.Get(tag.New(0x0008, 0x0018))
	if err != nil {
		return fmt.Errorf("missing required element SOPInstanceUID (0008,0018): %w", err)
	}
	sopInstanceUID := value.AsString(sopInstanceUIDElem.Value())
	if sopInstanceUID == "" {
		return fmt.Errorf("SOPInstanceUID (0008,0018) is empty")
	}

	if !isValidUID(sopClassUID) {
		return fmt.Errorf("invalid SOPClassUID format: %s", sopClassUID)
	}
	if !isValidUID(sopInstanceUID) {
		return fmt.Errorf("invalid SOPInstanceUID format: %s", sopInstanceUID)
	}
	return nil
}

// isValidUID performs basic UID validation: digits and dots only, no
// leading or trailing dot.
func isValidUID(uidStr string) bool {
	if uidStr == "" || len(uidStr) > 64 {
		return false
	}
	for _, ch := range uidStr {
		if ch != '.' && (ch < '0' || ch > '9') {
			return false
		}
	}
	if uidStr[0] == '.' || uidStr[len(uidStr)-1] == '.' {
		return false
	}
	return true
}

func writeFileAtomic(path string, ds *DataSet, opts WriteOptions) error {
	dir := filepath.Dir(path)
	tempFile, err := os.CreateTemp(dir, ".dicom-tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	data, err := encodeDICOM(ds, opts)
	if err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to encode DICOM data: %w", err)
	}
	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write DICOM data: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	if opts.ValidateAfterWrite {
		if _, err := ParseFile(path); err != nil {
			return fmt.Errorf("validation failed after write: %w", err)
		}
	}
	return nil
}

func writeFileDirect(path string, ds *DataSet, opts WriteOptions) (err error) {
	data, err := encodeDICOM(ds, opts)
	if err != nil {
		return fmt.Errorf("failed to encode DICOM data: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close file: %w", closeErr)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("failed to write DICOM data: %w", err)
	}

	if opts.ValidateAfterWrite {
		if _, err := ParseFile(path); err != nil {
			return fmt.Errorf("validation failed after write: %w", err)
		}
	}
	return nil
}

// encodeDICOM builds the complete Part 10 byte stream for ds: preamble,
// "DICM" magic, File Meta Information in Explicit VR Little Endian, then
// the data set in opts.TransferSyntax. Deflated Explicit VR Little Endian
// compresses the data set body with raw DEFLATE (RFC 1951), leaving File
// Meta Information uncompressed, per Part 5 Annex A.5.
func encodeDICOM(ds *DataSet, opts WriteOptions) ([]byte, error) {
	metaDS, err := generateFileMetaInformation(ds, opts.TransferSyntax)
	if err != nil {
		return nil, fmt.Errorf("failed to generate file meta information: %w", err)
	}

	headerWriter, err := p10.NewWriter(p10.DefaultWriterOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to construct writer: %w", err)
	}
	if err := headerWriter.WritePart(p10.NewFileMetaInformation(metaDS.Elements())); err != nil {
		return nil, fmt.Errorf("failed to write file meta information: %w", err)
	}
	header := headerWriter.Take()
	ts := headerWriter.CurrentTransferSyntax()

	if ts.Deflated {
		bodyWriter, err := p10.NewWriterNoPreamble(p10.DefaultWriterOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to construct data set writer: %w", err)
		}
		bodyWriter.BeginDataSet(ts)
		if err := writeDataSetParts(bodyWriter, ds); err != nil {
			return nil, err
		}
		plain := bodyWriter.Take()

		var compressed bytes.Buffer
		fw, err := flate.NewWriter(&compressed, flate.DefaultCompression)
		if err != nil {
			return nil, fmt.Errorf("failed to construct deflate writer: %w", err)
		}
		if _, err := fw.Write(plain); err != nil {
			return nil, fmt.Errorf("deflating data set: %w", err)
		}
		if err := fw.Close(); err != nil {
			return nil, fmt.Errorf("closing deflate writer: %w", err)
		}
		return append(header, compressed.Bytes()...), nil
	}

	if err := writeDataSetParts(headerWriter, ds); err != nil {
		return nil, err
	}
	return append(header, headerWriter.Take()...), nil
}

// writeDataSetParts walks ds's non-file-meta elements in tag order, driving
// w with the Part sequence a p10.Parser would have produced for them, and
// closes with an End part.
func writeDataSetParts(w *p10.Writer, ds *DataSet) error {
	if err := writeElements(w, ds.Elements()); err != nil {
		return err
	}
	return w.WritePart(p10.NewEnd())
}

func writeElements(w *p10.Writer, elems []*element.Element) error {
	for _, e := range elems {
		if e.Tag().Group == 0x0002 {
			continue
		}
		if err := writeElementParts(w, e); err != nil {
			return fmt.Errorf("writing element %s: %w", e.Tag(), err)
		}
	}
	return nil
}

func writeElementParts(w *p10.Writer, e *element.Element) error {
	switch val := e.Value().(type) {
	case *SequenceValue:
		if err := w.WritePart(p10.NewSequenceStart(e.Tag(), e.VR())); err != nil {
			return err
		}
		for _, item := range val.Items() {
			if err := w.WritePart(p10.NewSequenceItemStart(p10.UndefinedLength)); err != nil {
				return err
			}
			if err := writeElements(w, item.Elements()); err != nil {
				return err
			}
			if err := w.WritePart(p10.NewSequenceItemEnd()); err != nil {
				return err
			}
		}
		return w.WritePart(p10.NewSequenceEnd())

	case *value.EncapsulatedPixelData:
		if err := w.WritePart(p10.NewDataElementHeader(e.Tag(), e.VR(), p10.UndefinedLength)); err != nil {
			return err
		}
		if err := writePixelItem(w, val.BasicOffsetTable()); err != nil {
			return err
		}
		for _, item := range val.Items() {
			if err := writePixelItem(w, item); err != nil {
				return err
			}
		}
		return w.WritePart(p10.NewSequenceEnd())

	default:
		data, err := val.Bytes()
		if err != nil {
			return fmt.Errorf("reading value bytes: %w", err)
		}
		if err := w.WritePart(p10.NewDataElementHeader(e.Tag(), e.VR(), uint32(len(data)))); err != nil {
			return err
		}
		if len(data) == 0 {
			return nil
		}
		return w.WritePart(p10.NewDataElementValueBytes(data, true))
	}
}

func writePixelItem(w *p10.Writer, data []byte) error {
	if err := w.WritePart(p10.NewPixelDataItem(uint32(len(data)))); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return w.WritePart(p10.NewDataElementValueBytes(data, true))
}

// generateFileMetaInformation builds the File Meta Information group (0002)
// for ds, deriving Media Storage SOP Class/Instance UID from the dataset's
// own (0008,0016)/(0008,0018) elements.
func generateFileMetaInformation(ds *DataSet, transferSyntax *uid.UID) (*DataSet, error) {
	metaInfo := NewDataSet()

	if err := addUniqueMetaElement(metaInfo, tag.New(0x0002, 0x0001), vr.OtherByte, []byte{0x00, 0x01}); err != nil {
		return nil, err
	}

	sopClassUIDElem, err := ds.Get(tag.New(0x0008, 0x0016))
	if err != nil {
		return nil, fmt.Errorf("missing SOPClassUID: %w", err)
	}
	if err := addUniqueMetaStringElement(metaInfo, tag.New(0x0002, 0x0002), vr.UniqueIdentifier, value.AsString(sopClassUIDElem.Value())); err != nil {
		return nil, err
	}

	sopInstanceUIDElem, err := ds.Get(tag.New(0x0008, 0x0018))
	if err != nil {
		return nil, fmt.Errorf("missing SOPInstanceUID: %w", err)
	}
	if err := addUniqueMetaStringElement(metaInfo, tag.New(0x0002, 0x0003), vr.UniqueIdentifier, value.AsString(sopInstanceUIDElem.Value())); err != nil {
		return nil, err
	}

	if err := addUniqueMetaStringElement(metaInfo, tag.New(0x0002, 0x0010), vr.UniqueIdentifier, transferSyntax.String()); err != nil {
		return nil, err
	}

	const implementationClassUID = "1.2.826.0.1.3680043.10.1451"
	if err := addUniqueMetaStringElement(metaInfo, tag.New(0x0002, 0x0012), vr.UniqueIdentifier, implementationClassUID); err != nil {
		return nil, err
	}

	const implementationVersionName = "DCMFORGE_1_0"
	if err := addUniqueMetaStringElement(metaInfo, tag.New(0x0002, 0x0013), vr.ShortString, implementationVersionName); err != nil {
		return nil, err
	}

	return metaInfo, nil
}

func addUniqueMetaElement(ds *DataSet, t tag.Tag, v vr.VR, data []byte) error {
	elem, err := element.NewElement(t, v, value.NewBinaryUnchecked(v, data))
	if err != nil {
		return fmt.Errorf("building meta element %s: %w", t, err)
	}
	return ds.Add(elem)
}

func addUniqueMetaStringElement(ds *DataSet, t tag.Tag, v vr.VR, s string) error {
	padded := s
	if len(padded)%2 != 0 {
		padded += string(v.PaddingByte())
	}
	return addUniqueMetaElement(ds, t, v, []byte(padded))
}

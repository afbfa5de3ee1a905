package dicom

import (
	"fmt"

	"github.com/dcmforge/dicom/dcmerr"
	"github.com/dcmforge/dicom/value"
	"github.com/dcmforge/dicom/vr"
)

// SequenceValue is the SQ variant of value.Value: an ordered list of nested
// DataSets. It lives in this package rather than the value package because
// it recursively contains *DataSet, and DataSet is built on element.Element,
// which is itself built on value.Value - value cannot import this package
// without a cycle. SequenceValue still satisfies value.Value structurally;
// Go does not require an interface's implementations to live alongside it.
type SequenceValue struct {
	items []*DataSet
}

var _ value.Value = (*SequenceValue)(nil)

// NewSequenceValue builds a Sequence value from an ordered list of item
// datasets. A nil items slice is treated as an empty sequence.
func NewSequenceValue(items []*DataSet) *SequenceValue {
	return &SequenceValue{items: items}
}

// VR always returns vr.SequenceOfItems.
func (s *SequenceValue) VR() vr.VR { return vr.SequenceOfItems }

// Bytes is undefined for sequences: items are framed as nested datasets at
// the P10 level, not as a flat buffer.
func (s *SequenceValue) Bytes() ([]byte, error) {
	return nil, dcmerr.New(dcmerr.ValueInvalid, "sequence values have no flat byte payload")
}

// ValidateLength always succeeds: a sequence has no byte-length constraint
// of its own, only its items do.
func (s *SequenceValue) ValidateLength() error {
	return nil
}

// FormatString renders as "Items: N".
func (s *SequenceValue) FormatString(maxWidth int) string {
	return truncateString(fmt.Sprintf("Items: %d", len(s.items)), maxWidth)
}

// Items returns the ordered item datasets. The returned slice is a copy of
// the header; the datasets themselves are shared, not deep-copied.
func (s *SequenceValue) Items() []*DataSet {
	out := make([]*DataSet, len(s.items))
	copy(out, s.items)
	return out
}

// ItemCount returns the number of item datasets.
func (s *SequenceValue) ItemCount() int {
	return len(s.items)
}

func truncateString(s string, maxWidth int) string {
	if maxWidth <= 0 || len(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return "…"
	}
	return s[:maxWidth-1] + "…"
}

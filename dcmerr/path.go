// Package dcmerr provides the structured error type and dataset-path
// addressing used to report failures across the DICOM value model, the
// P10 streaming codec, and the pixel data framer.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html
package dcmerr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dcmforge/dicom/tag"
)

// PathEntry is one step of a DataSetPath: either a Tag (an element within
// the current dataset) or an Index (a 0-based item within the sequence
// named by the preceding Tag entry).
type PathEntry struct {
	Tag     tag.Tag
	Index   int
	IsIndex bool
}

// TagEntry builds a PathEntry addressing an element by tag.
func TagEntry(t tag.Tag) PathEntry {
	return PathEntry{Tag: t}
}

// IndexEntry builds a PathEntry addressing the n-th item of the sequence
// named by the preceding tag entry.
func IndexEntry(n int) PathEntry {
	return PathEntry{Index: n, IsIndex: true}
}

func (e PathEntry) String() string {
	if e.IsIndex {
		return fmt.Sprintf("[%d]", e.Index)
	}
	return fmt.Sprintf("%04X%04X", e.Tag.Group, e.Tag.Element)
}

// Path is an ordered sequence of PathEntry values locating an element
// through nested sequences, e.g. "00081115/[0]/00080100". Consecutive
// entries must alternate kind: a Tag entry whose VR is SQ must be followed
// by an Index entry, and an Index entry must be followed by a Tag entry.
//
// DICOM Standard Reference:
// https://dicom.nema.org/medical/dicom/current/output/html/part05.html#sect_7.5
type Path struct {
	entries []PathEntry
}

// NewPath creates an empty DataSetPath.
func NewPath() Path {
	return Path{}
}

// ParsePath parses the textual form "GGGGEEEE/[n]/GGGGEEEE/..." produced by
// String. An empty string parses to the empty path.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return Path{}, nil
	}

	parts := strings.Split(s, "/")
	p := Path{}
	for _, part := range parts {
		if strings.HasPrefix(part, "[") && strings.HasSuffix(part, "]") {
			n, err := strconv.Atoi(part[1 : len(part)-1])
			if err != nil {
				return Path{}, fmt.Errorf("invalid data set path entry: %q", part)
			}
			if err := p.validateNext(true); err != nil {
				return Path{}, err
			}
			p.entries = append(p.entries, IndexEntry(n))
			continue
		}

		if len(part) != 8 {
			return Path{}, fmt.Errorf("invalid data set path entry: %q", part)
		}
		group, err1 := strconv.ParseUint(part[0:4], 16, 16)
		elem, err2 := strconv.ParseUint(part[4:8], 16, 16)
		if err1 != nil || err2 != nil {
			return Path{}, fmt.Errorf("invalid data set path entry: %q", part)
		}
		if err := p.validateNext(false); err != nil {
			return Path{}, err
		}
		p.entries = append(p.entries, TagEntry(tag.New(uint16(group), uint16(elem))))
	}
	return p, nil
}

// validateNext reports an error if appending an entry of the given kind
// (isIndex) would violate the Tag/Index alternation invariant.
func (p Path) validateNext(isIndex bool) error {
	if len(p.entries) == 0 {
		if isIndex {
			return fmt.Errorf("invalid data set path entry: path cannot start with an index")
		}
		return nil
	}
	last := p.entries[len(p.entries)-1]
	if last.IsIndex == isIndex {
		return fmt.Errorf("invalid data set path entry: consecutive %s entries", kindName(isIndex))
	}
	return nil
}

func kindName(isIndex bool) string {
	if isIndex {
		return "index"
	}
	return "tag"
}

// WithTag returns a new Path with t appended. Panics-free: returns an error
// if t would follow another Tag entry (callers append Index entries via
// WithIndex in between, as required when descending into a sequence).
func (p Path) WithTag(t tag.Tag) (Path, error) {
	if err := p.validateNext(false); err != nil {
		return p, err
	}
	next := make([]PathEntry, len(p.entries)+1)
	copy(next, p.entries)
	next[len(p.entries)] = TagEntry(t)
	return Path{entries: next}, nil
}

// WithIndex returns a new Path with sequence-item index n appended.
func (p Path) WithIndex(n int) (Path, error) {
	if err := p.validateNext(true); err != nil {
		return p, err
	}
	next := make([]PathEntry, len(p.entries)+1)
	copy(next, p.entries)
	next[len(p.entries)] = IndexEntry(n)
	return Path{entries: next}, nil
}

// Entries returns the path's entries in order. The returned slice is a copy.
func (p Path) Entries() []PathEntry {
	out := make([]PathEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Empty reports whether the path has no entries (the dataset root).
func (p Path) Empty() bool {
	return len(p.entries) == 0
}

// String renders the path as "GGGGEEEE/[n]/GGGGEEEE/...". The empty path
// renders as the empty string.
func (p Path) String() string {
	parts := make([]string, len(p.entries))
	for i, e := range p.entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, "/")
}

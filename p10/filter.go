package p10

import "github.com/dcmforge/dicom/tag"

// TagPredicate reports whether a tag passes a PartFilter. It is evaluated
// once per DataElementHeader and SequenceStart (once per top-level element);
// nested elements and the value bytes/items they carry inherit their
// ancestor's verdict rather than being evaluated individually.
type TagPredicate func(t tag.Tag) bool

// ByGroup matches every tag in the given group.
func ByGroup(group uint16) TagPredicate {
	return func(t tag.Tag) bool { return t.Group == group }
}

// ByTags matches any of the given tags exactly.
func ByTags(tags ...tag.Tag) TagPredicate {
	set := make(map[tag.Tag]bool, len(tags))
	for _, t := range tags {
		set[t] = true
	}
	return func(t tag.Tag) bool { return set[t] }
}

// Not inverts a predicate.
func Not(p TagPredicate) TagPredicate {
	return func(t tag.Tag) bool { return !p(t) }
}

// PartSource yields Parts one at a time, matching Parser.NextPart's signature
// so a PartFilter can sit directly in front of a Parser or another PartFilter.
type PartSource interface {
	NextPart() (Part, error)
}

// PartFilter wraps a PartSource and drops every top-level element - plain,
// sequence, or encapsulated-pixel-data - whose tag does not satisfy match,
// along with everything nested inside it (sequence items, their own
// elements, value byte chunks, pixel data fragment items). FileMetaInformation
// and End pass through unconditionally: file-meta has no per-attribute tag
// filtering in this model, and a dropped part stream must still terminate
// cleanly.
//
// This lets a caller thin a part stream before it reaches a DataSet builder
// or the Pixel Data Framer, e.g. to skip every private-group element:
//
//	parser, _ := p10.NewParser(p10.DefaultParserOptions())
//	filtered := p10.NewPartFilter(parser, p10.Not(func(t tag.Tag) bool { return t.IsPrivate() }))
//	for {
//	    part, err := filtered.NextPart()
//	    ...
//	}
type PartFilter struct {
	source PartSource
	match  TagPredicate

	// skipDepth counts nested SequenceStart/encapsulated-pixel-data opens
	// inside a subtree currently being dropped; it reaches zero on the
	// SequenceEnd that closes the top-level element that started the drop.
	// PixelData (7FE0,0010) can only appear at dataset top level per the
	// standard, so a DataElementHeader with undefined length is never
	// itself seen while skipDepth > 0.
	skipDepth int

	// skipScalar is set while draining the value chunks of a filtered-out
	// plain (definite-length) element.
	skipScalar bool
}

// NewPartFilter builds a PartFilter over source, passing through only parts
// belonging to a top-level element whose tag satisfies match.
func NewPartFilter(source PartSource, match TagPredicate) *PartFilter {
	return &PartFilter{source: source, match: match}
}

// NextPart returns the next part that survives the filter, or the first
// error/End from source.
func (f *PartFilter) NextPart() (Part, error) {
	for {
		part, err := f.source.NextPart()
		if err != nil {
			return Part{}, err
		}

		switch part.Kind {
		case FileMetaInformation, End:
			return part, nil

		case DataElementHeader:
			if f.skipDepth > 0 {
				continue
			}
			if f.match(part.Tag) {
				return part, nil
			}
			if part.Length == UndefinedLength {
				f.skipDepth = 1
			} else {
				f.skipScalar = true
			}
			continue

		case DataElementValueBytes:
			if f.skipDepth > 0 {
				continue
			}
			if f.skipScalar {
				if part.Last {
					f.skipScalar = false
				}
				continue
			}
			return part, nil

		case PixelDataItem:
			if f.skipDepth > 0 {
				continue
			}
			return part, nil

		case SequenceStart:
			if f.skipDepth > 0 {
				f.skipDepth++
				continue
			}
			if f.match(part.Tag) {
				return part, nil
			}
			f.skipDepth = 1
			continue

		case SequenceItemStart, SequenceItemEnd:
			if f.skipDepth > 0 {
				continue
			}
			return part, nil

		case SequenceEnd:
			if f.skipDepth > 0 {
				f.skipDepth--
				continue
			}
			return part, nil

		default:
			return part, nil
		}
	}
}

package dicom

import (
	"github.com/dcmforge/dicom/dcmerr"
	"github.com/dcmforge/dicom/element"
	"github.com/dcmforge/dicom/value"
)

// Visitor is called once per element encountered by Fold, in ascending tag
// order at each level, with path locating the element from the dataset
// root. Returning a non-nil error stops the traversal and is returned by
// Fold unchanged.
type Visitor func(path dcmerr.Path, elem *element.Element) error

// Fold recursively visits every element in the dataset tree, descending
// into Sequence values' items in order. The path passed to visit alternates
// Tag and Index entries: a Sequence element's own path ends in its Tag; each
// of its items is visited with that Tag path extended by the item's Index.
func (ds *DataSet) Fold(visit Visitor) error {
	return ds.foldAt(dcmerr.NewPath(), visit)
}

func (ds *DataSet) foldAt(base dcmerr.Path, visit Visitor) error {
	for _, t := range ds.Tags() {
		elem := ds.elements[t]
		path, err := base.WithTag(t)
		if err != nil {
			return err
		}
		if err := visit(path, elem); err != nil {
			return err
		}

		seq, ok := elem.Value().(*SequenceValue)
		if !ok {
			continue
		}
		for i, item := range seq.Items() {
			itemPath, err := path.WithIndex(i)
			if err != nil {
				return err
			}
			if err := item.foldAt(itemPath, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

// Partition splits the dataset's top-level elements into two datasets by
// predicate: elements for which predicate returns true go to matched,
// the rest to unmatched. Both preserve ascending tag order; nested sequence
// items are not examined or split (the predicate only ever sees top-level
// elements).
func (ds *DataSet) Partition(predicate func(*element.Element) bool) (matched, unmatched *DataSet) {
	matched = NewDataSet()
	unmatched = NewDataSet()
	for _, t := range ds.Tags() {
		elem := ds.elements[t]
		if predicate(elem) {
			matched.elements[t] = elem
		} else {
			unmatched.elements[t] = elem
		}
	}
	return matched, unmatched
}

// GetValueAtPath descends through sequences and items following path,
// returning the value of the element at the final Tag entry. It fails with
// TagNotPresent at the first missing tag or out-of-range index. An empty
// path or a path not ending in a Tag entry is a DataInvalid error.
func (ds *DataSet) GetValueAtPath(path dcmerr.Path) (value.Value, error) {
	entries := path.Entries()
	if len(entries) == 0 {
		return nil, dcmerr.New(dcmerr.DataInvalid, "path must not be empty")
	}
	if entries[len(entries)-1].IsIndex {
		return nil, dcmerr.New(dcmerr.DataInvalid, "path must end in a tag entry")
	}

	current := ds
	var val value.Value
	for i := 0; i < len(entries); i++ {
		e := entries[i]
		if e.IsIndex {
			seq, ok := val.(*SequenceValue)
			if !ok {
				return nil, dcmerr.NewAt(dcmerr.TagNotPresent, prefixPath(entries, i), "preceding element is not a sequence")
			}
			items := seq.Items()
			if e.Index < 0 || e.Index >= len(items) {
				return nil, dcmerr.NewAt(dcmerr.TagNotPresent, prefixPath(entries, i), "sequence item index %d out of range", e.Index)
			}
			current = items[e.Index]
			val = nil
			continue
		}

		elem, exists := current.elements[e.Tag]
		if !exists {
			return nil, dcmerr.NewAt(dcmerr.TagNotPresent, prefixPath(entries, i), "tag %s not present in dataset", e.Tag)
		}
		val = elem.Value()
	}
	return val, nil
}

func prefixPath(entries []dcmerr.PathEntry, uptoInclusive int) dcmerr.Path {
	p := dcmerr.NewPath()
	for i := 0; i <= uptoInclusive && i < len(entries); i++ {
		e := entries[i]
		if e.IsIndex {
			p, _ = p.WithIndex(e.Index)
		} else {
			p, _ = p.WithTag(e.Tag)
		}
	}
	return p
}

package engine

import (
	"fmt"

	"github.com/thywilljoshua/pdf-toolkit/internal/pagespec"
)

// AllIndices returns 0..n-1.
func AllIndices(doc Document) []int {
	out := make([]int, doc.PageCount())
	for i := range out {
		out[i] = i
	}
	return out
}

// Project builds a new document holding the pages of doc at indices, in that
// order. Duplicates produce repeated pages. Any index outside the document
// rejects the whole request.
func Project(codec Codec, doc Document, indices []int) (Document, error) {
	if len(indices) == 0 {
		return nil, ErrEmptySelection
	}
	n := doc.PageCount()
	for _, i := range indices {
		if i < 0 || i >= n {
			return nil, fmt.Errorf("page %d of %d: %w", i+1, n, ErrPageOutOfRange)
		}
	}
	out := codec.NewDocument()
	if err := codec.CopyPages(out, doc, indices); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete projects doc onto the pages not in del, keeping their original order.
func Delete(codec Codec, doc Document, del pagespec.Set) (Document, error) {
	if err := del.Validate(doc.PageCount()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageOutOfRange, err)
	}
	var keep []int
	for _, i := range AllIndices(doc) {
		if !del.Has(i) {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, ErrNoPagesLeft
	}
	return Project(codec, doc, keep)
}

// Reorder projects doc onto order exactly as given.
func Reorder(codec Codec, doc Document, order pagespec.Sequence) (Document, error) {
	return Project(codec, doc, order)
}

// Split returns one single page document per page of doc.
func Split(codec Codec, doc Document) ([]Document, error) {
	out := make([]Document, 0, doc.PageCount())
	for _, i := range AllIndices(doc) {
		page, err := Project(codec, doc, []int{i})
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
		out = append(out, page)
	}
	return out, nil
}

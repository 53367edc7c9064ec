package engine

import "fmt"

// Compose concatenates all pages of docs, in the order given, into a new
// document. The sources are only read.
func Compose(codec Codec, docs []Document) (Document, error) {
	if len(docs) == 0 {
		return nil, ErrNoInput
	}
	out := codec.NewDocument()
	for k, doc := range docs {
		if doc.PageCount() == 0 {
			continue
		}
		if err := codec.CopyPages(out, doc, AllIndices(doc)); err != nil {
			return nil, fmt.Errorf("document %d: %w", k+1, err)
		}
	}
	if out.PageCount() == 0 {
		return nil, ErrEmptySelection
	}
	return out, nil
}

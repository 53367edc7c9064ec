package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakePage stands in for a PDF page; ID identifies its content.
type fakePage struct {
	ID       string
	Size     Size
	Rotation int
	Marks    []string
}

type fakeDoc struct {
	Pages []fakePage
}

func (d *fakeDoc) PageCount() int { return len(d.Pages) }

func (d *fakeDoc) page(i int) (*fakePage, error) {
	if i < 0 || i >= len(d.Pages) {
		return nil, fmt.Errorf("no page %d", i)
	}
	return &d.Pages[i], nil
}

func (d *fakeDoc) PageSize(i int) (Size, error) {
	p, err := d.page(i)
	if err != nil {
		return Size{}, err
	}
	return p.Size, nil
}

func (d *fakeDoc) Rotation(i int) (int, error) {
	p, err := d.page(i)
	if err != nil {
		return 0, err
	}
	return p.Rotation, nil
}

func (d *fakeDoc) SetRotation(i, deg int) error {
	p, err := d.page(i)
	if err != nil {
		return err
	}
	p.Rotation = deg
	return nil
}

func (d *fakeDoc) DrawRect(i int, r Rect, c Color, op float64) error {
	p, err := d.page(i)
	if err != nil {
		return err
	}
	p.Marks = append(p.Marks, fmt.Sprintf("rect %g %g %g %g %v %g", r.X, r.Y, r.Width, r.Height, c, op))
	return nil
}

func (d *fakeDoc) DrawText(i int, t Text) error {
	p, err := d.page(i)
	if err != nil {
		return err
	}
	p.Marks = append(p.Marks, fmt.Sprintf("text %q %g %g %g %g %g", t.S, t.X, t.Y, t.Size, t.Opacity, t.Rotation))
	return nil
}

func (d *fakeDoc) ids() []string {
	out := make([]string, len(d.Pages))
	for i, p := range d.Pages {
		out[i] = p.ID
	}
	return out
}

// fakeCodec serializes documents as JSON and counts calls.
type fakeCodec struct {
	inits int
	loads int
	saves int
}

func (c *fakeCodec) Init(ctx context.Context) error {
	c.inits++
	return nil
}

func (c *fakeCodec) Load(data []byte) (Document, error) {
	c.loads++
	var d fakeDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return &d, nil
}

func (c *fakeCodec) NewDocument() Document { return &fakeDoc{} }

func (c *fakeCodec) CopyPages(dst, src Document, indices []int) error {
	d, s := dst.(*fakeDoc), src.(*fakeDoc)
	for _, i := range indices {
		p, err := s.page(i)
		if err != nil {
			return err
		}
		cp := *p
		cp.Marks = append([]string(nil), p.Marks...)
		d.Pages = append(d.Pages, cp)
	}
	return nil
}

func (c *fakeCodec) ImageDocument(img Image, size Size) (Document, error) {
	return &fakeDoc{Pages: []fakePage{{
		ID:    "image/" + img.Format,
		Size:  size,
		Marks: []string{fmt.Sprintf("image 0 0 %g %g", size.Width, size.Height)},
	}}}, nil
}

func (c *fakeCodec) TextDocument(size Size, lines []Text) (Document, error) {
	p := fakePage{ID: "text", Size: size}
	for _, t := range lines {
		p.Marks = append(p.Marks, fmt.Sprintf("line %q %g %g %g", t.S, t.X, t.Y, t.Size))
	}
	return &fakeDoc{Pages: []fakePage{p}}, nil
}

func (c *fakeCodec) Save(doc Document, opts SaveOptions) ([]byte, error) {
	c.saves++
	return json.Marshal(doc.(*fakeDoc))
}

var letterSize = Size{Width: 612, Height: 792}

// newDoc returns a document whose pages are named prefix1..prefixN.
func newDoc(prefix string, n int) *fakeDoc {
	d := &fakeDoc{}
	for i := 1; i <= n; i++ {
		d.Pages = append(d.Pages, fakePage{ID: fmt.Sprintf("%s%d", prefix, i), Size: letterSize})
	}
	return d
}

func docBytes(t *testing.T, d *fakeDoc) []byte {
	t.Helper()
	b, err := json.Marshal(d)
	require.NoError(t, err)
	return b
}

func decode(t *testing.T, data []byte) *fakeDoc {
	t.Helper()
	var d fakeDoc
	require.NoError(t, json.Unmarshal(data, &d))
	return &d
}

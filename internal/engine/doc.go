package engine

import "context"

// Size is a page size in PDF points.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Color is an RGB color with components in [0,1].
type Color struct {
	R, G, B float64
}

// Rect is an axis aligned rectangle in page space, origin at the lower left
// corner of the visible page box.
type Rect struct {
	X, Y, Width, Height float64
}

// Text is a single line of text placed on a page. X and Y locate the baseline
// start in page space; Rotation is counter-clockwise in degrees.
type Text struct {
	S        string
	X, Y     float64
	Size     float64
	Color    Color
	Opacity  float64
	Rotation float64
}

// Document is a decoded PDF. Page indices are zero-based.
type Document interface {
	PageCount() int
	PageSize(i int) (Size, error)
	Rotation(i int) (int, error)
	SetRotation(i int, degrees int) error
	DrawRect(i int, r Rect, fill Color, opacity float64) error
	DrawText(i int, t Text) error
}

// SaveOptions tune serialization.
type SaveOptions struct {
	// Compact writes object and xref streams.
	Compact bool
}

// Codec is the PDF binary layer the engine drives.
type Codec interface {
	Init(ctx context.Context) error
	Load(data []byte) (Document, error)
	NewDocument() Document
	// CopyPages appends copies of src's pages at indices to dst, in order.
	CopyPages(dst, src Document, indices []int) error
	// ImageDocument returns a one page document of the given size with img
	// filling the page.
	ImageDocument(img Image, size Size) (Document, error)
	// TextDocument returns a one page document of the given size holding lines.
	TextDocument(size Size, lines []Text) (Document, error)
	Save(doc Document, opts SaveOptions) ([]byte, error)
}

// Info is the document information reported by the info command.
type Info struct {
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Creator  string `json:"creator,omitempty"`
	Producer string `json:"producer,omitempty"`
	Pages    int    `json:"pages"`
}

// Inspector reads text and document information without building a Document.
type Inspector interface {
	ExtractText(ctx context.Context, data []byte) ([]string, error)
	Info(data []byte) (Info, error)
}

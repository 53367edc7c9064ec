package engine

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a raster image ready to be placed on a page. Format is one of
// "png", "jpeg" or "gif"; other inputs are transcoded to png.
type Image struct {
	Format string
	Width  int
	Height int
	Data   []byte
}

// DecodeImage sniffs data and returns its native pixel dimensions.
func DecodeImage(data []byte) (Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: image: %w", ErrDecode, err)
	}
	img := Image{Format: format, Width: cfg.Width, Height: cfg.Height, Data: data}
	switch format {
	case "png", "jpeg", "gif":
		return img, nil
	}
	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %s image: %w", ErrDecode, format, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, m); err != nil {
		return Image{}, err
	}
	img.Format = "png"
	img.Data = buf.Bytes()
	return img, nil
}

// AppendImage adds a page exactly the size of img, in points, with img
// covering it.
func AppendImage(codec Codec, dst Document, img Image) error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("%w: image has no pixels", ErrDecode)
	}
	page, err := codec.ImageDocument(img, Size{Width: float64(img.Width), Height: float64(img.Height)})
	if err != nil {
		return err
	}
	return codec.CopyPages(dst, page, []int{0})
}

// PageSize names a text page format.
type PageSize string

const (
	PageA4     PageSize = "a4"
	PageLetter PageSize = "letter"
	PageCustom PageSize = "custom"
)

var pageSizes = map[PageSize]Size{
	PageA4:     {Width: 595, Height: 842},
	PageLetter: {Width: 612, Height: 792},
}

// ResolvePageSize returns the dimensions for name. custom is only valid with
// a positive custom size.
func ResolvePageSize(name PageSize, custom Size) (Size, error) {
	name = PageSize(strings.ToLower(string(name)))
	if name == "" {
		name = PageA4
	}
	if name == PageCustom {
		if custom.Width <= 0 || custom.Height <= 0 {
			return Size{}, fmt.Errorf("custom page size %gx%g: %w", custom.Width, custom.Height, ErrNoOption)
		}
		return custom, nil
	}
	sz, ok := pageSizes[name]
	if !ok {
		return Size{}, fmt.Errorf("page size %q: %w", name, ErrNoOption)
	}
	return sz, nil
}

// TextBlock is text placed on a single page without wrapping.
type TextBlock struct {
	Title     string
	Body      string
	Page      PageSize
	Custom    Size
	FontSize  float64
	TitleSize float64
}

const (
	DefaultFontSize  = 14
	DefaultTitleSize = 20

	textMarginLeft = 40
	titleBaseline  = 50 // below the top edge
	bodyBaseline   = 82 // below the top edge
	lineSpacing    = 1.2
)

// LayoutText positions the lines of block on a page of size sz. Lines past
// the bottom edge are kept; the page simply clips them.
func LayoutText(block TextBlock, sz Size) []Text {
	fontSize := block.FontSize
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	titleSize := block.TitleSize
	if titleSize <= 0 {
		titleSize = DefaultTitleSize
	}
	var lines []Text
	if t := strings.TrimSpace(block.Title); t != "" {
		lines = append(lines, Text{S: t, X: textMarginLeft, Y: sz.Height - titleBaseline, Size: titleSize, Opacity: 1})
	}
	body := strings.ReplaceAll(block.Body, "\r\n", "\n")
	y := sz.Height - bodyBaseline
	for _, ln := range strings.Split(body, "\n") {
		if ln != "" {
			lines = append(lines, Text{S: ln, X: textMarginLeft, Y: y, Size: fontSize, Opacity: 1})
		}
		y -= fontSize * lineSpacing
	}
	return lines
}

// AppendText adds one page holding block to dst.
func AppendText(codec Codec, dst Document, block TextBlock) error {
	if strings.TrimSpace(block.Body) == "" {
		return ErrEmptyText
	}
	sz, err := ResolvePageSize(block.Page, block.Custom)
	if err != nil {
		return err
	}
	page, err := codec.TextDocument(sz, LayoutText(block, sz))
	if err != nil {
		return err
	}
	return codec.CopyPages(dst, page, []int{0})
}

// Package pdfcodec implements the engine's Codec on top of pdfcpu, with fpdf
// building the pages that hold images and plain text.
package pdfcodec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"codeberg.org/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/thywilljoshua/pdf-toolkit/internal/engine"
)

var errNoPages = errors.New("document has no pages")

type Codec struct {
	once sync.Once
}

func New() *Codec {
	return &Codec{}
}

// Init keeps pdfcpu from creating its configuration directory; every run
// uses an in-memory default configuration.
func (c *Codec) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.once.Do(api.DisableConfigDir)
	return nil
}

func (c *Codec) config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func (c *Codec) read(data []byte) (*model.Context, error) {
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), c.config())
	if err != nil {
		if errors.Is(err, pdfcpu.ErrWrongPassword) {
			return nil, fmt.Errorf("%w: %w", engine.ErrEncrypted, err)
		}
		return nil, fmt.Errorf("%w: %w", engine.ErrDecode, err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrDecode, err)
	}
	return ctx, nil
}

func (c *Codec) Load(data []byte) (engine.Document, error) {
	ctx, err := c.read(data)
	if err != nil {
		return nil, err
	}
	return &Document{codec: c, ctx: ctx}, nil
}

func (c *Codec) NewDocument() engine.Document {
	return &Document{codec: c}
}

func (c *Codec) CopyPages(dst, src engine.Document, indices []int) error {
	d, ok := dst.(*Document)
	if !ok {
		return fmt.Errorf("pdfcodec: foreign document %T", dst)
	}
	s, ok := src.(*Document)
	if !ok {
		return fmt.Errorf("pdfcodec: foreign document %T", src)
	}
	sctx, err := s.context()
	if err != nil {
		return err
	}
	nrs := make([]int, len(indices))
	for k, i := range indices {
		if i < 0 || i >= sctx.PageCount {
			return fmt.Errorf("page %d of %d: %w", i+1, sctx.PageCount, engine.ErrPageOutOfRange)
		}
		nrs[k] = i + 1
	}
	if d.ctx != nil {
		d.parts = []part{{ctx: d.ctx, pageNrs: pageNrs(d.ctx.PageCount)}}
		d.ctx = nil
	}
	d.parts = append(d.parts, part{ctx: sctx, pageNrs: nrs})
	return nil
}

func (c *Codec) Save(doc engine.Document, opts engine.SaveOptions) ([]byte, error) {
	d, ok := doc.(*Document)
	if !ok {
		return nil, fmt.Errorf("pdfcodec: foreign document %T", doc)
	}
	ctx, err := d.context()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, err
	}
	if !opts.Compact {
		return buf.Bytes(), nil
	}
	conf := c.config()
	conf.WriteObjectStream = true
	conf.WriteXRefStream = true
	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(buf.Bytes()), &out, conf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func (c *Codec) ImageDocument(img engine.Image, size engine.Size) (engine.Document, error) {
	pdf := newPage(size)
	opts := fpdf.ImageOptions{ImageType: imageType(img.Format)}
	pdf.RegisterImageOptionsReader("asset", opts, bytes.NewReader(img.Data))
	pdf.ImageOptions("asset", 0, 0, size.Width, size.Height, false, opts, 0, "")
	return c.render(pdf)
}

func (c *Codec) TextDocument(size engine.Size, lines []engine.Text) (engine.Document, error) {
	pdf := newPage(size)
	for _, ln := range lines {
		pdf.SetFont("Helvetica", "", ln.Size)
		pdf.SetTextColor(channel(ln.Color.R), channel(ln.Color.G), channel(ln.Color.B))
		pdf.Text(ln.X, size.Height-ln.Y, string(winAnsi(ln.S)))
	}
	return c.render(pdf)
}

// newPage starts a document with one page of size points. The page is added
// with an explicit format so it carries its own MediaBox.
func newPage(size engine.Size) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: size.Width, Ht: size.Height})
	return pdf
}

func (c *Codec) render(pdf *fpdf.Fpdf) (engine.Document, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return c.Load(buf.Bytes())
}

func imageType(format string) string {
	switch format {
	case "jpeg":
		return "JPG"
	case "gif":
		return "GIF"
	}
	return "PNG"
}

func channel(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return int(v*255 + 0.5)
}

func pageNrs(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// merge writes each part as its own file and joins them with pdfcpu's merge.
func (c *Codec) merge(parts []part) (*model.Context, error) {
	srcs := make([][]byte, 0, len(parts))
	for _, p := range parts {
		sub, err := pdfcpu.ExtractPages(p.ctx, p.pageNrs, false)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := api.WriteContext(sub, &buf); err != nil {
			return nil, err
		}
		srcs = append(srcs, buf.Bytes())
	}
	data := srcs[0]
	if len(srcs) > 1 {
		rs := make([]io.ReadSeeker, len(srcs))
		for i, b := range srcs {
			rs[i] = bytes.NewReader(b)
		}
		var buf bytes.Buffer
		if err := api.MergeRaw(rs, &buf, false, c.config()); err != nil {
			return nil, err
		}
		data = buf.Bytes()
	}
	return c.read(data)
}

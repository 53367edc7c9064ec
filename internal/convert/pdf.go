// Package convert reads text and document information out of PDF files.
package convert

import (
	"bytes"
	"context"
	"fmt"

	rpdf "rsc.io/pdf"

	"github.com/thywilljoshua/pdf-toolkit/internal/engine"
	"github.com/thywilljoshua/pdf-toolkit/internal/pdfcodec"
)

// Reader implements engine.Inspector with rsc.io/pdf. Before text is read
// the document is flattened by the pdfcpu codec, since rsc.io/pdf only
// interprets a single content stream per page.
type Reader struct {
	codec *pdfcodec.Codec
}

func NewReader() Reader {
	return Reader{codec: pdfcodec.New()}
}

func open(data []byte) (r *rpdf.Reader, err error) {
	// rsc.io/pdf panics on some malformed objects.
	defer func() {
		if p := recover(); p != nil {
			r, err = nil, fmt.Errorf("%w: %v", engine.ErrDecode, p)
		}
	}()
	r, err = rpdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", engine.ErrDecode, err)
	}
	return r, nil
}

// ExtractText returns the text of every page, one string per page. A page
// whose content cannot be parsed yields an empty string.
func (r Reader) ExtractText(ctx context.Context, data []byte) ([]string, error) {
	if err := r.codec.Init(ctx); err != nil {
		return nil, err
	}
	// Input pdfcpu cannot read is left to rsc.io/pdf as is.
	if flat, err := r.codec.Flatten(data); err == nil {
		data = flat
	}
	doc, err := open(data)
	if err != nil {
		return nil, err
	}
	n := doc.NumPage()
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages = append(pages, pageText(doc, i))
	}
	return pages, nil
}

func pageText(doc *rpdf.Reader, i int) (s string) {
	defer func() {
		if recover() != nil {
			s = ""
		}
	}()
	p := doc.Page(i)
	if p.V.IsNull() {
		return ""
	}
	return joinLines(p.Content().Text)
}

// Info reads the document information dictionary and the page count.
func (Reader) Info(data []byte) (info engine.Info, err error) {
	doc, err := open(data)
	if err != nil {
		return engine.Info{}, err
	}
	defer func() {
		if p := recover(); p != nil {
			info, err = engine.Info{}, fmt.Errorf("%w: %v", engine.ErrDecode, p)
		}
	}()
	meta := doc.Trailer().Key("Info")
	return engine.Info{
		Title:    meta.Key("Title").Text(),
		Author:   meta.Key("Author").Text(),
		Subject:  meta.Key("Subject").Text(),
		Creator:  meta.Key("Creator").Text(),
		Producer: meta.Key("Producer").Text(),
		Pages:    doc.NumPage(),
	}, nil
}

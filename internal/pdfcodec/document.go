package pdfcodec

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/thywilljoshua/pdf-toolkit/internal/engine"
)

// part is a run of pages, one-based, copied from a decoded source.
type part struct {
	ctx     *model.Context
	pageNrs []int
}

// Document is either a decoded pdfcpu context or, while pages are being
// copied into it, a list of parts that are merged on first use.
type Document struct {
	codec *Codec
	ctx   *model.Context
	parts []part
}

func (d *Document) PageCount() int {
	if d.ctx != nil {
		return d.ctx.PageCount
	}
	n := 0
	for _, p := range d.parts {
		n += len(p.pageNrs)
	}
	return n
}

func (d *Document) context() (*model.Context, error) {
	if d.ctx != nil {
		return d.ctx, nil
	}
	if len(d.parts) == 0 {
		return nil, errNoPages
	}
	ctx, err := d.codec.merge(d.parts)
	if err != nil {
		return nil, err
	}
	d.ctx, d.parts = ctx, nil
	return ctx, nil
}

func (d *Document) page(i int) (*model.Context, types.Dict, *model.InheritedPageAttrs, error) {
	ctx, err := d.context()
	if err != nil {
		return nil, nil, nil, err
	}
	if i < 0 || i >= ctx.PageCount {
		return nil, nil, nil, fmt.Errorf("page %d of %d: %w", i+1, ctx.PageCount, engine.ErrPageOutOfRange)
	}
	pageDict, _, inh, err := ctx.PageDict(i+1, false)
	if err != nil {
		return nil, nil, nil, err
	}
	if pageDict == nil || inh == nil {
		return nil, nil, nil, fmt.Errorf("page %d: missing page dict", i+1)
	}
	return ctx, pageDict, inh, nil
}

// visibleBox is the crop box, falling back to the media box.
func visibleBox(inh *model.InheritedPageAttrs) (*types.Rectangle, error) {
	if inh.CropBox != nil {
		return inh.CropBox, nil
	}
	if inh.MediaBox != nil {
		return inh.MediaBox, nil
	}
	return nil, fmt.Errorf("page has no media box")
}

func (d *Document) PageSize(i int) (engine.Size, error) {
	_, _, inh, err := d.page(i)
	if err != nil {
		return engine.Size{}, err
	}
	box, err := visibleBox(inh)
	if err != nil {
		return engine.Size{}, err
	}
	return engine.Size{Width: box.Width(), Height: box.Height()}, nil
}

func (d *Document) Rotation(i int) (int, error) {
	_, _, inh, err := d.page(i)
	if err != nil {
		return 0, err
	}
	return engine.NormalizeRotation(inh.Rotate), nil
}

func (d *Document) SetRotation(i int, degrees int) error {
	_, pageDict, _, err := d.page(i)
	if err != nil {
		return err
	}
	pageDict["Rotate"] = types.Integer(engine.NormalizeRotation(degrees))
	return nil
}

func (d *Document) DrawRect(i int, r engine.Rect, fill engine.Color, opacity float64) error {
	return d.stamp(i, opacity, false, func(box *types.Rectangle, gs, _ string) []byte {
		return rectOp(box, r, fill, gs)
	})
}

func (d *Document) DrawText(i int, t engine.Text) error {
	return d.stamp(i, t.Opacity, true, func(box *types.Rectangle, gs, font string) []byte {
		return textOp(box, t, gs, font)
	})
}

// stamp appends the operators built by draw to page i, wrapping the existing
// content in q/Q so its graphics state cannot leak into the overlay.
func (d *Document) stamp(i int, opacity float64, withFont bool, draw func(box *types.Rectangle, gs, font string) []byte) error {
	ctx, pageDict, inh, err := d.page(i)
	if err != nil {
		return err
	}
	box, err := visibleBox(inh)
	if err != nil {
		return err
	}
	res, err := pageResources(ctx, pageDict, inh)
	if err != nil {
		return err
	}
	gs, err := addResource(ctx, res, "ExtGState", "GSov", alphaState(opacity))
	if err != nil {
		return err
	}
	var font string
	if withFont {
		if font, err = addResource(ctx, res, "Font", "Fov", helvetica()); err != nil {
			return err
		}
	}
	pageDict["Resources"] = res
	return appendContent(ctx, pageDict, draw(box, gs, font))
}

func pageResources(ctx *model.Context, pageDict types.Dict, inh *model.InheritedPageAttrs) (types.Dict, error) {
	src := inh.Resources
	if o, found := pageDict.Find("Resources"); found {
		own, err := ctx.DereferenceDict(o)
		if err != nil {
			return nil, err
		}
		src = own
	}
	res := types.Dict{}
	for k, v := range src {
		res[k] = v
	}
	return res, nil
}

// addResource registers obj under a fresh name in the res[category] dict.
func addResource(ctx *model.Context, res types.Dict, category, prefix string, obj types.Dict) (string, error) {
	sub := types.Dict{}
	if o, found := res.Find(category); found {
		existing, err := ctx.DereferenceDict(o)
		if err != nil {
			return "", err
		}
		for k, v := range existing {
			sub[k] = v
		}
	}
	var name string
	for n := 1; ; n++ {
		name = fmt.Sprintf("%s%d", prefix, n)
		if _, taken := sub[name]; !taken {
			break
		}
	}
	ref, err := ctx.IndRefForNewObject(obj)
	if err != nil {
		return "", err
	}
	sub[name] = *ref
	res[category] = sub
	return name, nil
}

func appendContent(ctx *model.Context, pageDict types.Dict, ops []byte) error {
	var existing types.Array
	if o, found := pageDict.Find("Contents"); found && o != nil {
		v, err := ctx.Dereference(o)
		if err != nil {
			return err
		}
		switch v := v.(type) {
		case types.Array:
			existing = v
		case types.StreamDict:
			existing = types.Array{o}
		}
	}
	pre, err := newStream(ctx, []byte("q\n"))
	if err != nil {
		return err
	}
	post, err := newStream(ctx, append([]byte("Q\n"), ops...))
	if err != nil {
		return err
	}
	contents := types.Array{*pre}
	contents = append(contents, existing...)
	contents = append(contents, *post)
	pageDict["Contents"] = contents
	return nil
}

func newStream(ctx *model.Context, buf []byte) (*types.IndirectRef, error) {
	sd, err := ctx.NewStreamDictForBuf(buf)
	if err != nil {
		return nil, err
	}
	if err := sd.Encode(); err != nil {
		return nil, err
	}
	return ctx.IndRefForNewObject(*sd)
}

func alphaState(opacity float64) types.Dict {
	return types.Dict{
		"Type": types.Name("ExtGState"),
		"ca":   types.Float(opacity),
		"CA":   types.Float(opacity),
	}
}

func helvetica() types.Dict {
	return types.Dict{
		"Type":     types.Name("Font"),
		"Subtype":  types.Name("Type1"),
		"BaseFont": types.Name("Helvetica"),
		"Encoding": types.Name("WinAnsiEncoding"),
	}
}

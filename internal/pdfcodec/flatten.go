package pdfcodec

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/font"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Flatten rewrites data for simple content readers: every page gets a
// single content stream, and standard 14 fonts without a Widths array get
// one from the built-in metrics so glyph positions advance. Data that needs
// neither change is returned as is.
func (c *Codec) Flatten(data []byte) ([]byte, error) {
	ctx, err := c.read(data)
	if err != nil {
		return nil, err
	}
	changed := false
	for nr := 1; nr <= ctx.PageCount; nr++ {
		pageDict, _, inh, err := ctx.PageDict(nr, false)
		if err != nil {
			return nil, err
		}
		if pageDict == nil {
			continue
		}
		joined, err := joinContents(ctx, pageDict)
		if err != nil {
			return nil, err
		}
		filled, err := fillWidths(ctx, pageDict, inh)
		if err != nil {
			return nil, err
		}
		changed = changed || joined || filled
	}
	if !changed {
		return data, nil
	}
	var buf bytes.Buffer
	if err := api.WriteContext(ctx, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// joinContents replaces a Contents array with one stream holding the
// decoded parts in order.
func joinContents(ctx *model.Context, pageDict types.Dict) (bool, error) {
	o, found := pageDict.Find("Contents")
	if !found || o == nil {
		return false, nil
	}
	v, err := ctx.Dereference(o)
	if err != nil {
		return false, err
	}
	arr, ok := v.(types.Array)
	if !ok {
		return false, nil
	}
	var buf bytes.Buffer
	for _, el := range arr {
		sd, _, err := ctx.DereferenceStreamDict(el)
		if err != nil {
			return false, err
		}
		if sd == nil {
			continue
		}
		if err := sd.Decode(); err != nil {
			return false, err
		}
		buf.Write(sd.Content)
		buf.WriteByte('\n')
	}
	ref, err := newStream(ctx, buf.Bytes())
	if err != nil {
		return false, err
	}
	pageDict["Contents"] = *ref
	return true, nil
}

func fillWidths(ctx *model.Context, pageDict types.Dict, inh *model.InheritedPageAttrs) (bool, error) {
	var resources []types.Dict
	if inh != nil && inh.Resources != nil {
		resources = append(resources, inh.Resources)
	}
	if o, found := pageDict.Find("Resources"); found {
		own, err := ctx.DereferenceDict(o)
		if err != nil {
			return false, err
		}
		if own != nil {
			resources = append(resources, own)
		}
	}
	filled := false
	for _, res := range resources {
		o, found := res.Find("Font")
		if !found {
			continue
		}
		fonts, err := ctx.DereferenceDict(o)
		if err != nil {
			return false, err
		}
		for _, fo := range fonts {
			fd, err := ctx.DereferenceDict(fo)
			if err != nil {
				return false, err
			}
			if fd == nil {
				continue
			}
			if _, ok := fd.Find("Widths"); ok {
				continue
			}
			base := fd.NameEntry("BaseFont")
			if base == nil || !font.IsCoreFont(*base) {
				continue
			}
			widths := make(types.Array, 0, 256-32)
			for code := 32; code < 256; code++ {
				widths = append(widths, types.Integer(font.CharWidth(*base, rune(code))))
			}
			fd["FirstChar"] = types.Integer(32)
			fd["LastChar"] = types.Integer(255)
			fd["Widths"] = widths
			filled = true
		}
	}
	return filled, nil
}

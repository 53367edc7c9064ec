package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thywilljoshua/pdf-toolkit/internal/pagespec"
)

type fakeInspector struct {
	pages []string
	info  Info
}

func (f fakeInspector) ExtractText(ctx context.Context, data []byte) ([]string, error) {
	return f.pages, nil
}

func (f fakeInspector) Info(data []byte) (Info, error) { return f.info, nil }

func newEngine(t *testing.T, codec *fakeCodec, opts ...Option) *Engine {
	t.Helper()
	e := New(codec, opts...)
	require.NoError(t, e.Init(context.Background()))
	return e
}

func in(t *testing.T, name string, d *fakeDoc) Input {
	return Input{Name: name, Data: docBytes(t, d)}
}

func TestRunRequiresInit(t *testing.T) {
	codec := &fakeCodec{}
	e := New(codec)
	_, err := e.Run(context.Background(), SplitRequest{})
	assert.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, e.Init(context.Background()))
	require.NoError(t, e.Init(context.Background()))
	assert.Equal(t, 1, codec.inits)
}

func TestRunMergeScenario(t *testing.T) {
	codec := &fakeCodec{}
	e := newEngine(t, codec)
	res, err := e.Run(context.Background(), MergeRequest{Inputs: []Input{
		in(t, "a.pdf", newDoc("a", 1)),
		in(t, "b.pdf", newDoc("b", 1)),
		in(t, "c.pdf", newDoc("c", 1)),
	}})
	require.NoError(t, err)
	require.Len(t, res.Outputs, 1)
	assert.Equal(t, "merged.pdf", res.Outputs[0].Name)
	assert.Equal(t, MIMEPDF, res.Outputs[0].MIME)
	assert.Equal(t, []string{"a1", "b1", "c1"}, decode(t, res.Outputs[0].Data).ids())
}

func TestRunMergeAbortsOnBadSource(t *testing.T) {
	codec := &fakeCodec{}
	e := newEngine(t, codec)
	res, err := e.Run(context.Background(), MergeRequest{Inputs: []Input{
		in(t, "a.pdf", newDoc("a", 1)),
		{Name: "broken.pdf", Data: []byte("%PDF-garbage")},
		in(t, "c.pdf", newDoc("c", 1)),
	}})
	assert.ErrorIs(t, err, ErrDecode)
	assert.Contains(t, err.Error(), "broken.pdf")
	assert.Empty(t, res.Outputs)
	assert.Equal(t, 0, codec.saves)
}

func TestRunDeleteScenario(t *testing.T) {
	codec := &fakeCodec{}
	e := newEngine(t, codec)
	res, err := e.Run(context.Background(), DeleteRequest{Input: in(t, "six.pdf", newDoc("p", 6)), Pages: "2-3,5"})
	require.NoError(t, err)
	require.Len(t, res.Outputs, 1)
	assert.Equal(t, "deleted_pages.pdf", res.Outputs[0].Name)
	assert.Equal(t, []string{"p1", "p4", "p6"}, decode(t, res.Outputs[0].Data).ids())
}

func TestRunReorderScenario(t *testing.T) {
	codec := &fakeCodec{}
	e := newEngine(t, codec)
	res, err := e.Run(context.Background(), ReorderRequest{Input: in(t, "four.pdf", newDoc("p", 4)), Order: "4,1,3,2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p4", "p1", "p3", "p2"}, decode(t, res.Outputs[0].Data).ids())
}

func TestRunImagesScenario(t *testing.T) {
	codec := &fakeCodec{}
	e := newEngine(t, codec)
	res, err := e.Run(context.Background(), ImagesToPDFRequest{Inputs: []Input{{Name: "a.png", Data: pngBytes(t, 800, 600)}}})
	require.NoError(t, err)
	require.Len(t, res.Outputs, 1)
	doc := decode(t, res.Outputs[0].Data)
	require.Equal(t, 1, doc.PageCount())
	assert.Equal(t, Size{Width: 800, Height: 600}, doc.Pages[0].Size)
}

func TestRunSplitNamesEachPage(t *testing.T) {
	codec := &fakeCodec{}
	e := newEngine(t, codec)
	res, err := e.Run(context.Background(), SplitRequest{Input: in(t, "three.pdf", newDoc("p", 3))})
	require.NoError(t, err)
	require.Len(t, res.Outputs, 3)
	for i, name := range []string{"page_1.pdf", "page_2.pdf", "page_3.pdf"} {
		assert.Equal(t, name, res.Outputs[i].Name)
		assert.Equal(t, 1, decode(t, res.Outputs[i].Data).PageCount())
	}
}

func TestRunRejectsInputBeforeDecoding(t *testing.T) {
	doc := newDoc("p", 2)
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"merge none", MergeRequest{}, ErrNoInput},
		{"split none", SplitRequest{}, ErrNoInput},
		{"delete empty spec", DeleteRequest{Input: in(t, "x", doc), Pages: " "}, ErrEmptySpec},
		{"reorder empty spec", ReorderRequest{Input: in(t, "x", doc)}, ErrEmptySpec},
		{"rotate 45", RotateRequest{Input: in(t, "x", doc), Degrees: 45}, ErrInvalidRotation},
		{"watermark no text", WatermarkRequest{Input: in(t, "x", doc)}, ErrEmptyText},
		{"background no color", BackgroundRequest{Input: in(t, "x", doc)}, ErrNoOption},
		{"background unknown", BackgroundRequest{Input: in(t, "x", doc), Color: "teal"}, ErrNoOption},
		{"background opacity", BackgroundRequest{Input: in(t, "x", doc), Color: "white", Opacity: 5}, ErrNoOption},
		{"watermark opacity", WatermarkRequest{Input: in(t, "x", doc), Watermark: Watermark{Text: "A", Opacity: 1.5}}, ErrNoOption},
		{"text empty", TextToPDFRequest{}, ErrEmptyText},
		{"protect", ProtectRequest{Input: in(t, "x", doc), Password: "pw"}, ErrUnsupported},
		{"unlock", UnlockRequest{Input: in(t, "x", doc)}, ErrUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec := &fakeCodec{}
			e := newEngine(t, codec)
			_, err := e.Run(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsUserError(err))
			assert.Equal(t, 0, codec.loads)
		})
	}
}

func TestRunMalformedSpecIsRejected(t *testing.T) {
	codec := &fakeCodec{}
	e := newEngine(t, codec)
	_, err := e.Run(context.Background(), DeleteRequest{Input: in(t, "x", newDoc("p", 3)), Pages: "1,two"})
	var se *pagespec.SyntaxError
	require.True(t, errors.As(err, &se))
	assert.True(t, IsUserError(err))
	assert.Equal(t, 0, codec.loads)

	_, err = e.Run(context.Background(), ReorderRequest{Input: in(t, "x", newDoc("p", 3)), Order: "3,4"})
	assert.ErrorIs(t, err, ErrPageOutOfRange)
	assert.True(t, IsUserError(err))
}

func TestRunOverlays(t *testing.T) {
	codec := &fakeCodec{}
	e := newEngine(t, codec)

	res, err := e.Run(context.Background(), RotateRequest{Input: in(t, "x", newDoc("p", 2)), Degrees: 90})
	require.NoError(t, err)
	assert.Equal(t, "rotated.pdf", res.Outputs[0].Name)
	for _, p := range decode(t, res.Outputs[0].Data).Pages {
		assert.Equal(t, 90, p.Rotation)
	}

	res, err = e.Run(context.Background(), BackgroundRequest{Input: in(t, "x", newDoc("p", 1)), Color: "yellow"})
	require.NoError(t, err)
	assert.Equal(t, "background_yellow.pdf", res.Outputs[0].Name)
	assert.Equal(t, []string{"rect 0 0 612 792 {1 0.96 0.5} 0.3"}, decode(t, res.Outputs[0].Data).Pages[0].Marks)

	res, err = e.Run(context.Background(), WatermarkRequest{Input: in(t, "x", newDoc("p", 1)), Watermark: Watermark{Text: "DRAFT"}})
	require.NoError(t, err)
	assert.Equal(t, "watermarked.pdf", res.Outputs[0].Name)
	assert.Equal(t, []string{`text "DRAFT" 206 396 40 0.4 45`}, decode(t, res.Outputs[0].Data).Pages[0].Marks)

	res, err = e.Run(context.Background(), WatermarkRequest{Input: in(t, "x", newDoc("p", 1)), Watermark: Watermark{Text: "DRAFT", Rotation: -30}})
	require.NoError(t, err)
	assert.Equal(t, []string{`text "DRAFT" 206 396 40 0.4 -30`}, decode(t, res.Outputs[0].Data).Pages[0].Marks)
}

func TestRunTextToPDFLimit(t *testing.T) {
	codec := &fakeCodec{}
	e := newEngine(t, codec)
	res, err := e.Run(context.Background(), TextToPDFRequest{Text: TextBlock{Body: "abcdef"}, Limit: 3, Output: "word_to_pdf.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "word_to_pdf.pdf", res.Outputs[0].Name)
	assert.Equal(t, []string{`line "abc" 40 760 14`}, decode(t, res.Outputs[0].Data).Pages[0].Marks)
}

func TestRunExtractTextAndInfo(t *testing.T) {
	codec := &fakeCodec{}
	e := newEngine(t, codec, WithInspector(fakeInspector{pages: []string{"first", "second"}, info: Info{Pages: 2}}))
	data := Input{Name: "x.pdf", Data: []byte("%PDF")}

	res, err := e.Run(context.Background(), ExtractTextRequest{Input: data})
	require.NoError(t, err)
	assert.Equal(t, Output{Name: "extracted_text.txt", MIME: MIMEText, Data: []byte("first\nsecond\n")}, res.Outputs[0])

	res, err = e.Run(context.Background(), ToWordRequest{Input: data})
	require.NoError(t, err)
	assert.Equal(t, "converted.doc", res.Outputs[0].Name)
	assert.Equal(t, MIMEWord, res.Outputs[0].MIME)

	res, err = e.Run(context.Background(), InfoRequest{Input: data})
	require.NoError(t, err)
	assert.Equal(t, "Title: No title", res.Notice)
	assert.Equal(t, 2, res.Info.Pages)
}

func TestRunCompress(t *testing.T) {
	codec := &fakeCodec{}
	e := newEngine(t, codec)
	res, err := e.Run(context.Background(), CompressRequest{Input: in(t, "x", newDoc("p", 2))})
	require.NoError(t, err)
	assert.Equal(t, "compressed.pdf", res.Outputs[0].Name)
	assert.Equal(t, 2, decode(t, res.Outputs[0].Data).PageCount())
}

func TestRunHonoursCancellation(t *testing.T) {
	codec := &fakeCodec{}
	e := newEngine(t, codec)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Run(ctx, MergeRequest{Inputs: []Input{in(t, "a", newDoc("a", 1))}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, codec.saves)
}

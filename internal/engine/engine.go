// Package engine implements page selection, projection, composition and
// overlay of PDF documents on top of a pluggable Codec.
package engine

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/thywilljoshua/pdf-toolkit/internal/pagespec"
)

// Engine routes requests to the page components. Each Run builds its own
// documents; nothing is kept between runs.
type Engine struct {
	codec     Codec
	inspector Inspector
	log       logrus.FieldLogger

	once    sync.Once
	initErr error
	ready   atomic.Bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for progress messages.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

// WithInspector sets the text and info reader.
func WithInspector(in Inspector) Option {
	return func(e *Engine) { e.inspector = in }
}

func New(codec Codec, opts ...Option) *Engine {
	e := &Engine{codec: codec}
	for _, o := range opts {
		o(e)
	}
	if e.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		e.log = l
	}
	return e
}

// Init prepares the codec. It runs once; later calls return the first result.
func (e *Engine) Init(ctx context.Context) error {
	e.once.Do(func() {
		e.initErr = e.codec.Init(ctx)
		if e.initErr == nil {
			e.ready.Store(true)
		}
	})
	return e.initErr
}

// Run performs req. User input problems are reported before any document is
// decoded.
func (e *Engine) Run(ctx context.Context, req Request) (Result, error) {
	if !e.ready.Load() {
		return Result{}, ErrNotInitialized
	}
	switch r := req.(type) {
	case MergeRequest:
		return e.merge(ctx, r)
	case SplitRequest:
		return e.split(ctx, r)
	case DeleteRequest:
		return e.deletePages(ctx, r)
	case ReorderRequest:
		return e.reorder(ctx, r)
	case RotateRequest:
		return e.overlay(ctx, r.Input, Rotate{Delta: r.Degrees}, "rotated.pdf", "rotating pages")
	case WatermarkRequest:
		return e.watermark(ctx, r)
	case BackgroundRequest:
		return e.background(ctx, r)
	case ImagesToPDFRequest:
		return e.imagesToPDF(ctx, r)
	case TextToPDFRequest:
		return e.textToPDF(ctx, r)
	case ExtractTextRequest:
		return e.extractText(ctx, r.Input, "extracted_text.txt", MIMEText)
	case ToWordRequest:
		return e.extractText(ctx, r.Input, "converted.doc", MIMEWord)
	case CompressRequest:
		return e.compress(ctx, r)
	case InfoRequest:
		return e.info(ctx, r)
	case ProtectRequest:
		return Result{}, fmt.Errorf("password protection: %w", ErrUnsupported)
	case UnlockRequest:
		return Result{}, fmt.Errorf("unlocking protected documents: %w", ErrUnsupported)
	}
	return Result{}, fmt.Errorf("%T: %w", req, ErrUnknownRequest)
}

func (e *Engine) load(in Input) (Document, error) {
	doc, err := e.codec.Load(in.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", in.Name, err)
	}
	return doc, nil
}

func (e *Engine) save(doc Document, name string, opts SaveOptions) (Output, error) {
	data, err := e.codec.Save(doc, opts)
	if err != nil {
		return Output{}, fmt.Errorf("%s: %w", name, err)
	}
	return Output{Name: name, MIME: MIMEPDF, Data: data}, nil
}

func (e *Engine) single(doc Document, name string) (Result, error) {
	out, err := e.save(doc, name, SaveOptions{})
	if err != nil {
		return Result{}, err
	}
	return Result{Outputs: []Output{out}}, nil
}

func requireInput(in Input) error {
	if len(in.Data) == 0 {
		return ErrNoInput
	}
	return nil
}

func requireInputs(ins []Input) error {
	if len(ins) == 0 {
		return ErrNoInput
	}
	for _, in := range ins {
		if err := requireInput(in); err != nil {
			return fmt.Errorf("%s: %w", in.Name, err)
		}
	}
	return nil
}

func (e *Engine) merge(ctx context.Context, r MergeRequest) (Result, error) {
	if err := requireInputs(r.Inputs); err != nil {
		return Result{}, err
	}
	e.log.WithField("files", len(r.Inputs)).Info("merging")

	// Every source must decode before anything is composed.
	docs := make([]Document, 0, len(r.Inputs))
	for _, in := range r.Inputs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		doc, err := e.load(in)
		if err != nil {
			return Result{}, err
		}
		docs = append(docs, doc)
	}
	out, err := Compose(e.codec, docs)
	if err != nil {
		return Result{}, err
	}
	res, err := e.single(out, "merged.pdf")
	if err != nil {
		return Result{}, err
	}
	e.log.WithField("pages", out.PageCount()).Info("merge completed")
	return res, nil
}

func (e *Engine) split(ctx context.Context, r SplitRequest) (Result, error) {
	if err := requireInput(r.Input); err != nil {
		return Result{}, err
	}
	e.log.WithField("file", r.Input.Name).Info("splitting pages")
	doc, err := e.load(r.Input)
	if err != nil {
		return Result{}, err
	}
	pages, err := Split(e.codec, doc)
	if err != nil {
		return Result{}, err
	}
	var res Result
	for i, p := range pages {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		out, err := e.save(p, fmt.Sprintf("page_%d.pdf", i+1), SaveOptions{})
		if err != nil {
			return Result{}, err
		}
		res.Outputs = append(res.Outputs, out)
	}
	e.log.WithField("pages", len(pages)).Info("split completed")
	return res, nil
}

func (e *Engine) deletePages(ctx context.Context, r DeleteRequest) (Result, error) {
	if err := requireInput(r.Input); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(r.Pages) == "" {
		return Result{}, ErrEmptySpec
	}
	del, err := pagespec.ParseSet(r.Pages)
	if err != nil {
		return Result{}, err
	}
	e.log.WithFields(logrus.Fields{"file": r.Input.Name, "pages": r.Pages}).Info("deleting pages")
	doc, err := e.load(r.Input)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	out, err := Delete(e.codec, doc, del)
	if err != nil {
		return Result{}, err
	}
	return e.single(out, "deleted_pages.pdf")
}

func (e *Engine) reorder(ctx context.Context, r ReorderRequest) (Result, error) {
	if err := requireInput(r.Input); err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(r.Order) == "" {
		return Result{}, ErrEmptySpec
	}
	order, err := pagespec.Parse(r.Order)
	if err != nil {
		return Result{}, err
	}
	e.log.WithFields(logrus.Fields{"file": r.Input.Name, "order": r.Order}).Info("reordering pages")
	doc, err := e.load(r.Input)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	out, err := Reorder(e.codec, doc, order)
	if err != nil {
		return Result{}, err
	}
	return e.single(out, "reordered.pdf")
}

func (e *Engine) overlay(ctx context.Context, in Input, op OverlayOp, name, msg string) (Result, error) {
	if err := requireInput(in); err != nil {
		return Result{}, err
	}
	if err := validateOverlay(op); err != nil {
		return Result{}, err
	}
	e.log.WithField("file", in.Name).Info(msg)
	doc, err := e.load(in)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := OverlayAll(doc, op); err != nil {
		return Result{}, err
	}
	return e.single(doc, name)
}

func (e *Engine) watermark(ctx context.Context, r WatermarkRequest) (Result, error) {
	wm := r.Watermark
	wm.Text = strings.TrimSpace(wm.Text)
	if wm.Size <= 0 {
		wm.Size = DefaultWatermarkSize
	}
	if wm.Opacity <= 0 {
		wm.Opacity = DefaultWatermarkOpacity
	}
	if wm.Color == (Color{}) {
		wm.Color = DefaultWatermarkColor
	}
	if wm.Rotation == 0 {
		wm.Rotation = DefaultWatermarkRotation
	}
	return e.overlay(ctx, r.Input, wm, "watermarked.pdf", "adding watermark")
}

func (e *Engine) background(ctx context.Context, r BackgroundRequest) (Result, error) {
	if strings.TrimSpace(r.Color) == "" {
		return Result{}, fmt.Errorf("background color: %w", ErrNoOption)
	}
	c, err := LookupBackground(r.Color)
	if err != nil {
		return Result{}, err
	}
	op := Background{Color: c, Opacity: r.Opacity}
	if op.Opacity <= 0 {
		op.Opacity = DefaultBackgroundOpacity
	}
	name := "background_" + strings.ToLower(strings.TrimSpace(r.Color)) + ".pdf"
	return e.overlay(ctx, r.Input, op, name, "applying background")
}

func (e *Engine) imagesToPDF(ctx context.Context, r ImagesToPDFRequest) (Result, error) {
	if err := requireInputs(r.Inputs); err != nil {
		return Result{}, err
	}
	e.log.WithField("images", len(r.Inputs)).Info("converting images")
	out := e.codec.NewDocument()
	for _, in := range r.Inputs {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		img, err := DecodeImage(in.Data)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", in.Name, err)
		}
		if err := AppendImage(e.codec, out, img); err != nil {
			return Result{}, fmt.Errorf("%s: %w", in.Name, err)
		}
	}
	return e.single(out, "images_to_pdf.pdf")
}

func (e *Engine) textToPDF(ctx context.Context, r TextToPDFRequest) (Result, error) {
	block := r.Text
	block.Body = strings.TrimSpace(block.Body)
	if block.Body == "" {
		return Result{}, ErrEmptyText
	}
	if r.Limit > 0 {
		if rs := []rune(block.Body); len(rs) > r.Limit {
			block.Body = string(rs[:r.Limit])
		}
	}
	e.log.WithField("chars", len(block.Body)).Info("generating text page")
	out := e.codec.NewDocument()
	if err := AppendText(e.codec, out, block); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	name := r.Output
	if name == "" {
		name = "text_to_pdf.pdf"
	}
	return e.single(out, name)
}

func (e *Engine) extractText(ctx context.Context, in Input, name, mime string) (Result, error) {
	if err := requireInput(in); err != nil {
		return Result{}, err
	}
	if e.inspector == nil {
		return Result{}, fmt.Errorf("text extraction: %w", ErrUnsupported)
	}
	e.log.WithField("file", in.Name).Info("extracting text")
	pages, err := e.inspector.ExtractText(ctx, in.Data)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", in.Name, err)
	}
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p)
		b.WriteString("\n")
	}
	return Result{Outputs: []Output{{Name: name, MIME: mime, Data: []byte(b.String())}}}, nil
}

func (e *Engine) compress(ctx context.Context, r CompressRequest) (Result, error) {
	if err := requireInput(r.Input); err != nil {
		return Result{}, err
	}
	e.log.WithField("file", r.Input.Name).Info("compressing")
	doc, err := e.load(r.Input)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	out, err := e.save(doc, "compressed.pdf", SaveOptions{Compact: true})
	if err != nil {
		return Result{}, err
	}
	return Result{Outputs: []Output{out}}, nil
}

func (e *Engine) info(ctx context.Context, r InfoRequest) (Result, error) {
	if err := requireInput(r.Input); err != nil {
		return Result{}, err
	}
	if e.inspector == nil {
		return Result{}, fmt.Errorf("document info: %w", ErrUnsupported)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	info, err := e.inspector.Info(r.Input.Data)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", r.Input.Name, err)
	}
	title := info.Title
	if title == "" {
		title = "No title"
	}
	return Result{Info: &info, Notice: "Title: " + title}, nil
}

package engine

import (
	"fmt"
	"sort"
	"strings"
)

// OverlayOp is a uniform change applied to every page of a document.
type OverlayOp interface {
	apply(doc Document, i int) error
}

// Background covers each page with a rectangle of Color at Opacity.
type Background struct {
	Color   Color
	Opacity float64
}

// Watermark draws Text across the middle of each page.
type Watermark struct {
	Text     string
	Size     float64
	Color    Color
	Opacity  float64
	Rotation float64
}

// Rotate adds Delta degrees to each page's rotation.
type Rotate struct {
	Delta int
}

const (
	DefaultBackgroundOpacity = 0.3
	DefaultWatermarkSize     = 40
	DefaultWatermarkOpacity  = 0.4
	DefaultWatermarkRotation = 45

	// watermarkShift moves the text start left of the page centre.
	watermarkShift = 100
)

// DefaultWatermarkColor is a light gray.
var DefaultWatermarkColor = Color{0.75, 0.75, 0.75}

// BackgroundColors are the named choices offered by the background command.
var BackgroundColors = map[string]Color{
	"white":  {1, 1, 1},
	"black":  {0, 0, 0},
	"yellow": {1, 0.96, 0.5},
}

// BackgroundColorNames returns the keys of BackgroundColors, sorted.
func BackgroundColorNames() []string {
	names := make([]string, 0, len(BackgroundColors))
	for n := range BackgroundColors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// LookupBackground resolves a named background color.
func LookupBackground(name string) (Color, error) {
	c, ok := BackgroundColors[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Color{}, fmt.Errorf("background color %q (choose %s): %w",
			name, strings.Join(BackgroundColorNames(), ", "), ErrNoOption)
	}
	return c, nil
}

// OverlayAll applies op to every page of doc in page order. Page count and
// order are unchanged.
func OverlayAll(doc Document, op OverlayOp) error {
	if err := validateOverlay(op); err != nil {
		return err
	}
	for i := 0; i < doc.PageCount(); i++ {
		if err := op.apply(doc, i); err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
	}
	return nil
}

func validateOverlay(op OverlayOp) error {
	switch op := op.(type) {
	case Rotate:
		if op.Delta == 0 || op.Delta%90 != 0 {
			return fmt.Errorf("%d: %w", op.Delta, ErrInvalidRotation)
		}
	case Watermark:
		if strings.TrimSpace(op.Text) == "" {
			return ErrEmptyText
		}
		return validateOpacity(op.Opacity)
	case Background:
		return validateOpacity(op.Opacity)
	}
	return nil
}

func validateOpacity(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("opacity %g is outside 0..1: %w", v, ErrNoOption)
	}
	return nil
}

func (b Background) apply(doc Document, i int) error {
	sz, err := doc.PageSize(i)
	if err != nil {
		return err
	}
	return doc.DrawRect(i, Rect{Width: sz.Width, Height: sz.Height}, b.Color, b.Opacity)
}

func (w Watermark) apply(doc Document, i int) error {
	sz, err := doc.PageSize(i)
	if err != nil {
		return err
	}
	return doc.DrawText(i, Text{
		S:        w.Text,
		X:        sz.Width/2 - watermarkShift,
		Y:        sz.Height / 2,
		Size:     w.Size,
		Color:    w.Color,
		Opacity:  w.Opacity,
		Rotation: w.Rotation,
	})
}

func (r Rotate) apply(doc Document, i int) error {
	cur, err := doc.Rotation(i)
	if err != nil {
		return err
	}
	return doc.SetRotation(i, NormalizeRotation(cur+r.Delta))
}

// NormalizeRotation maps deg into [0,360).
func NormalizeRotation(deg int) int {
	deg %= 360
	if deg < 0 {
		deg += 360
	}
	return deg
}

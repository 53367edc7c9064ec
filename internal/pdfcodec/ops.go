package pdfcodec

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/thywilljoshua/pdf-toolkit/internal/engine"
)

// num formats v for a content stream; PDF numbers have no exponent form.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func rgb(c engine.Color) string {
	return num(c.R) + " " + num(c.G) + " " + num(c.B)
}

func rectOp(box *types.Rectangle, r engine.Rect, fill engine.Color, gs string) []byte {
	var b bytes.Buffer
	fmt.Fprintf(&b, "q /%s gs %s rg %s %s %s %s re f Q\n",
		gs, rgb(fill), num(box.LL.X+r.X), num(box.LL.Y+r.Y), num(r.Width), num(r.Height))
	return b.Bytes()
}

func textOp(box *types.Rectangle, t engine.Text, gs, font string) []byte {
	rad := t.Rotation * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	var b bytes.Buffer
	fmt.Fprintf(&b, "q /%s gs %s rg BT /%s %s Tf %s %s %s %s %s %s Tm <%X> Tj ET Q\n",
		gs, rgb(t.Color), font, num(t.Size),
		num(cos), num(sin), num(-sin), num(cos), num(box.LL.X+t.X), num(box.LL.Y+t.Y),
		winAnsi(t.S))
	return b.Bytes()
}

// winAnsi encodes s for the standard Helvetica font. Characters outside
// Windows-1252 are replaced.
func winAnsi(s string) []byte {
	enc := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	out, err := enc.Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}

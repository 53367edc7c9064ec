package convert

import (
	"math"
	"sort"
	"strings"

	rpdf "rsc.io/pdf"
)

// lineTolerance is how far apart, in points, two glyph baselines may be and
// still count as the same line.
const lineTolerance = 2.0

type line struct {
	y     float64
	parts []rpdf.Text
}

// wordGap is the horizontal gap, as a fraction of the font size, that
// separates two words. rsc.io/pdf drops space glyphs, so a Helvetica space
// (0.278 em) only shows up as a gap.
const wordGap = 0.15

// joinLines groups glyphs by baseline, top of the page first. Glyphs keep
// content-stream order within a line; a space is inserted where the gap to
// the previous glyph is wider than wordGap.
func joinLines(glyphs []rpdf.Text) string {
	var lines []*line
	for _, g := range glyphs {
		var cur *line
		for _, l := range lines {
			if math.Abs(l.y-g.Y) <= lineTolerance {
				cur = l
				break
			}
		}
		if cur == nil {
			cur = &line{y: g.Y}
			lines = append(lines, cur)
		}
		cur.parts = append(cur.parts, g)
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		var b strings.Builder
		for k, g := range l.parts {
			if k > 0 {
				prev := l.parts[k-1]
				gap := g.X - (prev.X + prev.W)
				if gap > g.FontSize*wordGap && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(g.S, " ") {
					b.WriteByte(' ')
				}
			}
			b.WriteString(g.S)
		}
		if s := strings.TrimRight(b.String(), " "); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, "\n")
}

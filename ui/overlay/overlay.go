package overlay

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

// shadeChar is drawn along the right and bottom edge of a shadowed overlay
const shadeChar = "░"

// PlaceOverlay places fg on top of bg. With center set, x and y are ignored and fg is
// centered. With shadow set, a shade is drawn along fg's right and bottom edges.
func PlaceOverlay(x, y int, fg, bg string, shadow bool, center bool) string {
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)
	bgHeight := len(bgLines)

	if shadow {
		fgLines, fgWidth = addShadow(fgLines, fgWidth)
	}
	fgHeight := len(fgLines)

	if fgWidth >= bgWidth && fgHeight >= bgHeight {
		return strings.Join(fgLines, "\n")
	}

	if center {
		x = (bgWidth - fgWidth) / 2
		y = (bgHeight - fgHeight) / 2
	}
	x = clamp(x, 0, max(bgWidth-fgWidth, 0))
	y = clamp(y, 0, max(bgHeight-fgHeight, 0))

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+fgHeight {
			b.WriteString(bgLine)
			continue
		}

		pos := 0
		if x > 0 {
			left := truncate.String(bgLine, uint(x))
			pos = ansi.PrintableRuneWidth(left)
			b.WriteString(left)
			if pos < x {
				b.WriteString(strings.Repeat(" ", x-pos))
				pos = x
			}
		}

		fgLine := fgLines[i-y]
		b.WriteString(fgLine)
		pos += ansi.PrintableRuneWidth(fgLine)

		right := cutLeft(bgLine, pos)
		lineWidth := ansi.PrintableRuneWidth(bgLine)
		rightWidth := ansi.PrintableRuneWidth(right)
		if rightWidth <= lineWidth-pos {
			b.WriteString(strings.Repeat(" ", max(lineWidth-rightWidth-pos, 0)))
		}
		b.WriteString(right)
	}

	return b.String()
}

// addShadow appends a shade column to every line but the first and a shade row below.
func addShadow(lines []string, width int) ([]string, int) {
	shade := termenv.String(shadeChar).Faint().String()
	out := make([]string, 0, len(lines)+1)
	for i, line := range lines {
		pad := strings.Repeat(" ", max(width-ansi.PrintableRuneWidth(line), 0))
		if i == 0 {
			out = append(out, line+pad+" ")
			continue
		}
		out = append(out, line+pad+shade)
	}
	out = append(out, " "+strings.Repeat(shade, width))
	return out, width + 1
}

// cutLeft cuts printable characters from the left, keeping any escape sequence that
// is still in effect.
func cutLeft(s string, cutWidth int) string {
	var (
		pos    int
		isAnsi bool
		ab     bytes.Buffer // escape sequences seen so far
		b      bytes.Buffer
	)
	for _, c := range s {
		if c == ansi.Marker || isAnsi {
			isAnsi = true
			ab.WriteRune(c)
			if ansi.IsTerminator(c) {
				isAnsi = false
				if bytes.HasSuffix(ab.Bytes(), []byte("[0m")) {
					ab.Reset()
				}
			}
			if pos >= cutWidth && b.Len() > 0 {
				b.WriteRune(c)
			}
			continue
		}

		if pos >= cutWidth {
			if b.Len() == 0 {
				b.Write(ab.Bytes())
			}
			b.WriteRune(c)
		}
		pos += runewidth.RuneWidth(c)
	}
	return b.String()
}

func clamp(v, lower, upper int) int {
	return min(max(v, lower), upper)
}

func getLines(s string) (lines []string, widest int) {
	lines = strings.Split(s, "\n")
	for _, l := range lines {
		if w := ansi.PrintableRuneWidth(l); widest < w {
			widest = w
		}
	}
	return lines, widest
}

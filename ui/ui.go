package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/ansi"
)

// MinWidth is the narrowest terminal the views render in.
const MinWidth = 60

func getElementWidth(widthTotal int, count int) (int, int) {
	if count == 0 {
		return 0, 0
	}
	remainder := widthTotal % count
	width := int(math.Floor(float64(widthTotal) / float64(count)))

	return width, remainder
}

type TextAlign int

const (
	LeftAlign TextAlign = iota
	RightAlign
	CenterAlign
)

func (ta TextAlign) String() string {
	return [...]string{"LeftAlign", "RightAlign", "CenterAlign"}[ta]
}

type Cell struct {
	Text  string
	Width int
	Align TextAlign
}

// Line lays cells out on one row of the given width. Cells without a width
// share what the fixed cells leave over.
func Line(width int, cells ...Cell) string {

	widthFlex := width
	var widthFlexCells []*int

	for i, cell := range cells {
		if cell.Width <= 0 {
			widthFlexCells = append(widthFlexCells, &cells[i].Width)
			continue
		}
		widthFlex -= cell.Width
	}

	widthWithoutRemainder, remainder := getElementWidth(widthFlex, len(widthFlexCells))
	for i := range widthFlexCells {

		*widthFlexCells[i] = widthWithoutRemainder
		if i < remainder {
			*widthFlexCells[i] = widthWithoutRemainder + 1
		}
	}

	var gridLine string
	for _, cell := range cells {
		if cell.Width < 0 {
			cell.Width = 0
		}
		textWidth := ansi.PrintableRuneWidth(cell.Text)
		if textWidth > cell.Width {
			cell.Text = Truncate(cell.Text, cell.Width)
			textWidth = ansi.PrintableRuneWidth(cell.Text)
		}
		pad := cell.Width - textWidth

		switch cell.Align {
		case RightAlign:
			gridLine += strings.Repeat(" ", pad) + cell.Text
		case CenterAlign:
			gridLine += strings.Repeat(" ", pad/2) + cell.Text + strings.Repeat(" ", pad-pad/2)
		default:
			gridLine += cell.Text + strings.Repeat(" ", pad)
		}
	}
	return gridLine

}

// Truncate cuts old to at most n printable columns. ANSI sequences are
// dropped from a truncated result.
func Truncate(old string, n int) string {
	var (
		new       string
		newlength int
		isansi    bool
	)
	if n <= 0 {
		return new
	}
	if ansi.PrintableRuneWidth(old) <= n {
		return old
	}
	for _, c := range old {
		if c == ansi.Marker {
			isansi = true
		} else if isansi {
			if ansi.IsTerminator(c) {
				isansi = false
			}
		} else {
			w := runewidth.RuneWidth(c)
			if newlength+w > n {
				return new
			}
			new += string(c)
			newlength += w
		}
	}
	return new
}

// Center pads text on both sides to width.
func Center(width int, text string) string {
	return Line(width, Cell{Text: text, Align: CenterAlign})
}

func JoinLines(texts ...string) string {
	return strings.Join(
		texts,
		"\n",
	)
}

// Footer is the bottom bar shared by the views.
func Footer(width int, help string) string {
	if width < MinWidth {
		return StyleLogo(" lexis ")
	}

	t := time.Now()
	tstr := fmt.Sprintf("%s %02d:%02d", t.Weekday().String(), t.Hour(), t.Minute())

	return Line(
		width,
		Cell{
			Width: 9,
			Text:  StyleLogo(" lexis "),
		},
		Cell{
			Width: width - 9 - 16,
			Text:  StyleHelp(help),
		},
		Cell{
			Text:  StyleHelp(tstr),
			Align: RightAlign,
		},
	)
}

// TooNarrow is shown instead of a view when the terminal is too small.
func TooNarrow(width int) string {
	return fmt.Sprintf("Terminal window too narrow to render content\nResize to fix (%d/%d)", width, MinWidth)
}

package ui

import (
	te "github.com/muesli/termenv"
)

var (
	StyleLogo     = NewStyle("#ffc27d", "#f37329", true, false)
	StyleHelp     = NewStyle("#4e4e4e", "", true, false)
	StyleKey      = NewStyle("#ffc27d", "", true, false)
	StyleKeyHelp  = NewStyle("#B9BFCA", "", false, false)
	StyleHeading  = NewStyle("#66C2CD", "", true, false)
	StyleGroup    = NewStyle("#D290E4", "", true, false)
	StyleGreek    = NewStyle("#ffffff", "", true, false)
	StyleRussian  = NewStyle("#B9BFCA", "", false, false)
	StyleCount    = NewStyle("#4e4e4e", "", false, true)
	StyleSelected = NewStyle("#ff5faf", "", true, false)
	StyleMode     = NewStyle("#66C2CD", "", false, true)
	StyleEmpty    = NewStyle("#D290E4", "", false, true)
	StyleInfo     = NewStyle("#4e4e4e", "", false, false)
)

const (
	InputTextColor = "#ff5faf"
)

func NewStyle(fg string, bg string, bold bool, italic bool) func(string) string {
	s := te.Style{}.Foreground(te.ColorProfile().Color(fg)).Background(te.ColorProfile().Color(bg))
	if bold {
		s = s.Bold()
	}
	if italic {
		s = s.Italic()
	}
	return s.Styled
}

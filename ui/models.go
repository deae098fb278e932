package ui

import (
	"strings"
)

type HelpMsg struct {
}

// HelpModel renders a key reference. Keyhelp rows are {key, description}.
type HelpModel struct {
	Keyhelp [][]string
	Active  bool
}

func (m HelpModel) View() string {
	var text []string
	text = append(text, "")
	text = append(text, "")
	for _, info := range m.Keyhelp {
		k, help := info[0], info[1]
		text = append(text,
			Line(
				50,
				Cell{
					Width: 4,
				},
				Cell{
					Width: 10,
					Align: LeftAlign,
					Text:  StyleKey(k),
				},
				Cell{
					Align: LeftAlign,
					Text:  StyleKeyHelp(help),
				},
			))
	}
	return strings.Join(text, "\n")
}

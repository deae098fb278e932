package browse

import (
	"strings"

	"github.com/lai323/lexis/lessons"
	"github.com/lai323/lexis/ui"
)

// menuRow is a group header (item < 0) or a lesson entry.
type menuRow struct {
	group int
	item  int
}

type menuModel struct {
	groups   []lessons.Group
	expanded map[int]bool
	cursor   int
	Active   bool
}

func newMenu(c *lessons.Catalog) menuModel {
	return menuModel{groups: c.Menu(), expanded: map[int]bool{}}
}

// rows lists what is currently visible. Single-lesson groups show their
// lesson directly; collapsible groups show a header and, when expanded,
// their lessons.
func (m menuModel) rows() []menuRow {
	var rows []menuRow
	for gi, g := range m.groups {
		if !g.Collapsible {
			rows = append(rows, menuRow{group: gi, item: 0})
			continue
		}
		rows = append(rows, menuRow{group: gi, item: -1})
		if m.expanded[g.Number] {
			for ii := range g.Items {
				rows = append(rows, menuRow{group: gi, item: ii})
			}
		}
	}
	return rows
}

func (m *menuModel) move(delta int) {
	n := len(m.rows())
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

// activate toggles a group header or returns the dataset index of the
// selected lesson.
func (m *menuModel) activate() (int, bool) {
	rows := m.rows()
	if m.cursor >= len(rows) {
		return 0, false
	}
	r := rows[m.cursor]
	g := m.groups[r.group]
	if r.item < 0 {
		m.expanded[g.Number] = !m.expanded[g.Number]
		return 0, false
	}
	return g.Items[r.item].Index, true
}

func (m menuModel) View(width int) string {
	var lines []string
	for i, r := range m.rows() {
		g := m.groups[r.group]
		pointer := "  "
		if i == m.cursor {
			pointer = ui.StyleSelected("> ")
		}
		if r.item < 0 {
			arrow := "▸ "
			if m.expanded[g.Number] {
				arrow = "▾ "
			}
			lines = append(lines, pointer+ui.StyleGroup(arrow+g.Title))
			continue
		}
		item := g.Items[r.item]
		indent := ""
		if g.Collapsible {
			indent = "    "
		}
		lines = append(lines, ui.Line(
			width,
			ui.Cell{Width: 2, Text: pointer},
			ui.Cell{Text: indent + ui.StyleGreek(item.Title)},
			ui.Cell{Width: 12, Text: ui.StyleCount(item.Count), Align: ui.RightAlign},
		))
	}
	return strings.Join(lines, "\n")
}

package practice

import (
	"strings"

	"github.com/lai323/lexis/flashcard"
	"github.com/lai323/lexis/lessons"
	"github.com/lai323/lexis/ui"
)

// pickerModel chooses the lessons the quiz draws from.
type pickerModel struct {
	lessons  []lessons.Lesson
	selected map[float64]bool
	cursor   int
	Active   bool
}

func newPicker(c *lessons.Catalog) pickerModel {
	return pickerModel{lessons: c.Lessons(), selected: map[float64]bool{}}
}

// open resets the marks to sel.
func (p *pickerModel) open(sel flashcard.Selection) {
	p.selected = map[float64]bool{}
	for _, id := range sel.IDs {
		p.selected[id] = true
	}
	p.Active = true
}

func (p *pickerModel) move(delta int) {
	if len(p.lessons) == 0 {
		return
	}
	p.cursor = (p.cursor + delta + len(p.lessons)) % len(p.lessons)
}

func (p *pickerModel) toggle() {
	if len(p.lessons) == 0 {
		return
	}
	id := p.lessons[p.cursor].ID
	p.selected[id] = !p.selected[id]
}

func (p *pickerModel) clear() {
	p.selected = map[float64]bool{}
}

// selection returns the marked lessons in dataset order. Nothing marked
// or everything marked means all lessons.
func (p pickerModel) selection() flashcard.Selection {
	var ids []float64
	for _, l := range p.lessons {
		if p.selected[l.ID] {
			ids = append(ids, l.ID)
		}
	}
	if len(ids) == 0 || len(ids) == len(p.lessons) {
		return flashcard.All()
	}
	return flashcard.Lessons(ids...)
}

func (p pickerModel) View(width int) string {
	lines := []string{"", ui.StyleHeading("  Уроки для проверки"), ""}
	all := p.selection().IsAll()
	for i, l := range p.lessons {
		pointer := "  "
		if i == p.cursor {
			pointer = ui.StyleSelected("> ")
		}
		mark := "[ ]"
		if p.selected[l.ID] {
			mark = "[x]"
		} else if all {
			mark = "[·]"
		}
		lines = append(lines, ui.Line(
			width,
			ui.Cell{Width: 2, Text: pointer},
			ui.Cell{Width: 4, Text: mark},
			ui.Cell{Width: 6, Text: lessons.FormatID(l.ID)},
			ui.Cell{Text: l.MenuTitle()},
			ui.Cell{Width: 10, Text: ui.StyleCount(l.CountLabel()), Align: ui.RightAlign},
		))
	}
	lines = append(lines, "", ui.StyleHelp("  space:toggle | a:all | enter:apply | esc:cancel"))
	return strings.Join(lines, "\n")
}

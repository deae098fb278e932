// Package browse is the lesson browser: every lesson with its words, a
// live accent-insensitive search and a grouped lesson menu.
package browse

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lai323/lexis/flashcard"
	"github.com/lai323/lexis/lessons"
	"github.com/lai323/lexis/search"
	"github.com/lai323/lexis/ui"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"
)

const focusedPrompt = "/ "

type Options struct {
	Query   string
	Speaker flashcard.Pronouncer
	Lang    string
	Logger  *zap.Logger
}

type Model struct {
	catalog *lessons.Catalog
	speaker flashcard.Pronouncer
	lang    string
	log     *zap.Logger

	textInput textinput.Model
	viewport  viewport.Model
	ready     bool
	width     int
	helpmode  ui.HelpModel
	menu      menuModel

	query  string
	result search.Result
	hits   []search.Hit
	hitRow []int
	cursor int
}

func newModel(c *lessons.Catalog, opt Options) *Model {
	m := &Model{
		catalog: c,
		speaker: opt.Speaker,
		lang:    opt.Lang,
		log:     opt.Logger,
		menu:    newMenu(c),
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.lang == "" {
		m.lang = "el-GR"
	}
	m.textInput = textinput.NewModel()
	m.textInput.Placeholder = "поиск / αναζήτηση"
	m.textInput.Prompt = focusedPrompt
	m.textInput.TextColor = ui.InputTextColor
	m.textInput.CharLimit = 100
	m.textInput.Width = 40
	m.textInput.SetValue(opt.Query)
	m.textInput.SetCursor(len(opt.Query))
	if opt.Query == "" {
		m.textInput.Focus()
	}
	m.helpmode = ui.HelpModel{
		Keyhelp: [][]string{
			{"/ i", "search"},
			{"esc", "leave search"},
			{"j k", "next / previous word"},
			{"p", "pronounce the word"},
			{"tab", "lesson menu"},
			{"enter", "open group or lesson"},
			{"q", "exit"},
			{"?", "back"},
		},
	}
	m.setQuery(opt.Query)
	return m
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// setQuery refilters the lessons and keeps the cursor in range.
func (m *Model) setQuery(q string) {
	m.query = q
	m.result = search.Filter(q, m.catalog.Lessons())
	m.hits = m.result.Hits()
	m.cursor = 0
	m.log.Debug("search", zap.String("query", q), zap.Int("matched", m.result.Matched))
}

func (m *Model) moveCursor(delta int) {
	if len(m.hits) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.hits)) % len(m.hits)
}

// Selected returns the highlighted word.
func (m *Model) Selected() (search.Hit, bool) {
	if m.cursor >= len(m.hits) {
		return search.Hit{}, false
	}
	return m.hits[m.cursor], true
}

// jump moves the cursor to the first word of the lesson at index,
// clearing the search if it hides that lesson.
func (m *Model) jump(index int) {
	target := &m.catalog.Lessons()[index]
	if !m.result.Sections[index].Visible {
		m.textInput.SetValue("")
		m.setQuery("")
	}
	for i, h := range m.hits {
		if h.Lesson == target {
			m.cursor = i
			return
		}
	}
}

func (m *Model) pronounce() {
	h, ok := m.Selected()
	if !ok || m.speaker == nil {
		return
	}
	text := flashcard.StripAnnotations(h.Word.Greek)
	if text == "" {
		return
	}
	m.speaker.Pronounce(text, m.lang)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmds []tea.Cmd
		cmd  tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.textInput.Focused() {
			switch msg.String() {
			case "esc", "enter", "down", "tab":
				m.textInput.Blur()
				m.render()
				return m, nil
			}
			m.textInput, cmd = m.textInput.Update(msg)
			if v := m.textInput.Value(); v != m.query {
				m.setQuery(v)
				m.viewport.GotoTop()
			}
			m.render()
			return m, cmd
		}
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "/", "i":
			if !m.menu.Active && !m.helpmode.Active {
				m.textInput.Focus()
				return m, textinput.Blink
			}
		case "?":
			m.helpmode.Active = !m.helpmode.Active
		case "tab":
			m.menu.Active = !m.menu.Active
		case "esc":
			m.menu.Active = false
			m.helpmode.Active = false
		case "j", "down":
			if m.menu.Active {
				m.menu.move(1)
			} else {
				m.moveCursor(1)
			}
		case "k", "up":
			if m.menu.Active {
				m.menu.move(-1)
			} else {
				m.moveCursor(-1)
			}
		case "enter", " ", "space":
			if m.menu.Active {
				if index, ok := m.menu.activate(); ok {
					m.jump(index)
					m.menu.Active = false
				}
			}
		case "p", "v":
			m.pronounce()
		}
		m.render()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		viewportHeight := msg.Height - 3 // input, infobar and footer
		if !m.ready {
			m.viewport = viewport.Model{Width: msg.Width, Height: viewportHeight}
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.render()
	}

	m.textInput, cmd = m.textInput.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// render rebuilds the viewport content and scrolls the cursor into view.
func (m *Model) render() {
	if !m.ready {
		return
	}
	var content string
	switch {
	case m.helpmode.Active:
		content = m.helpmode.View()
	case m.menu.Active:
		content = m.menu.View(m.viewport.Width)
	default:
		content = m.wordsView()
	}
	m.viewport.SetContent(wordwrap.String(content, m.viewport.Width))

	if m.helpmode.Active || m.menu.Active {
		m.viewport.GotoTop()
		return
	}
	if m.cursor < len(m.hitRow) {
		row := m.hitRow[m.cursor]
		if row < m.viewport.YOffset {
			m.viewport.YOffset = row
		} else if row >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.YOffset = row - m.viewport.Height + 1
		}
	}
}

func (m *Model) wordsView() string {
	var lines []string
	m.hitRow = m.hitRow[:0]
	if len(m.hits) == 0 {
		lines = append(lines, "", ui.StyleEmpty("  Ничего не найдено"))
		return strings.Join(lines, "\n")
	}
	hit := 0
	half := m.viewport.Width / 2
	for _, sec := range m.result.Sections {
		if !sec.Visible {
			continue
		}
		lines = append(lines, "", ui.StyleHeading(sec.Lesson.DisplayTitle()))
		if sec.Lesson.Subtitle != "" {
			lines = append(lines, ui.StyleCount(sec.Lesson.Subtitle))
		}
		for j, ok := range sec.Matches {
			if !ok {
				continue
			}
			w := sec.Lesson.Words[j]
			pointer := "  "
			greek := ui.StyleGreek(w.Greek)
			if hit == m.cursor {
				pointer = ui.StyleSelected("> ")
				greek = ui.StyleSelected(w.Greek)
			}
			m.hitRow = append(m.hitRow, len(lines))
			lines = append(lines, ui.Line(
				m.viewport.Width,
				ui.Cell{Width: 2, Text: pointer},
				ui.Cell{Width: half - 2, Text: greek},
				ui.Cell{Text: ui.StyleRussian(w.Russian)},
			))
			hit++
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) infobar() string {
	text := fmt.Sprintf("%d слов · %d уроков", m.result.Matched, m.result.VisibleSections())
	position := ""
	if len(m.hits) > 0 {
		position = fmt.Sprintf("%d/%d", m.cursor+1, len(m.hits))
	}
	return ui.Line(
		m.viewport.Width,
		ui.Cell{Text: ui.StyleInfo(text)},
		ui.Cell{Width: 12, Text: ui.StyleInfo(position), Align: ui.RightAlign},
	)
}

func (m *Model) View() string {
	if !m.ready {
		return "\n  Initalizing..."
	}
	if m.width < ui.MinWidth {
		return ui.TooNarrow(m.width)
	}
	return strings.Join(
		[]string{
			m.textInput.View(), "\n",
			m.viewport.View(), "\n",
			m.infobar(), "\n",
			ui.Footer(m.viewport.Width, "q:exit | tab:menu | p:voice | ?:help"),
		},
		"",
	)
}

func Start(c *lessons.Catalog, opt Options) error {
	m := newModel(c, opt)
	if err := tea.NewProgram(m).Start(); err != nil {
		return fmt.Errorf("could not start program: %w", err)
	}
	return nil
}

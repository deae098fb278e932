// Package practice is the flashcard view: it drives a flashcard.Engine from
// key presses and renders the current card.
package practice

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lai323/lexis/flashcard"
	"github.com/lai323/lexis/lessons"
	"github.com/lai323/lexis/ui"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"
)

type PracModel struct {
	engine   *flashcard.Engine
	viewport viewport.Model
	width    int
	ready    bool
	helpmode ui.HelpModel
	picker   pickerModel
	log      *zap.Logger

	startSel  flashcard.Selection
	startMode flashcard.Mode
	card      flashcard.Card
	drawn     int
}

func initialModel(engine *flashcard.Engine, c *lessons.Catalog, sel flashcard.Selection, mode flashcard.Mode, log *zap.Logger) *PracModel {
	if log == nil {
		log = zap.NewNop()
	}
	m := &PracModel{
		engine:    engine,
		picker:    newPicker(c),
		log:       log,
		startSel:  sel,
		startMode: mode,
	}
	m.helpmode = ui.HelpModel{
		Keyhelp: [][]string{
			{"space", "flip the card"},
			{"n enter", "next word"},
			{"1 2 3", "audio / gr-ru / ru-gr"},
			{"l", "choose lessons"},
			{"p", "pronounce"},
			{"q esc", "exit"},
			{"?", "back"},
		},
	}
	return m
}

func (m *PracModel) Init() tea.Cmd {
	m.show(m.engine.EnterQuiz(m.startSel, m.startMode))
	return nil
}

// show takes a freshly drawn card. Audio cards are spoken right away.
func (m *PracModel) show(card flashcard.Card) {
	m.card = card
	if card.Empty {
		return
	}
	m.drawn++
	if card.Audio {
		m.engine.Pronounce()
	}
}

func (m *PracModel) exit() (tea.Model, tea.Cmd) {
	m.engine.ExitQuiz()
	return m, tea.Quit
}

func (m *PracModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.exit()
		}
		if m.picker.Active {
			m.updatePicker(msg)
			m.render()
			return m, nil
		}
		if m.helpmode.Active {
			if k := msg.String(); k == "?" || k == "esc" || k == "q" {
				m.helpmode.Active = false
			}
			m.render()
			return m, nil
		}
		switch k := msg.String(); k {
		case "q", "esc":
			return m.exit()
		case " ", "space", "f":
			m.card = m.engine.Flip()
		case "n", "enter", "right":
			m.show(m.engine.Next())
		case "1", "2", "3":
			i, _ := strconv.Atoi(k)
			mode := flashcard.Modes[i-1]
			if mode != m.engine.Mode() {
				m.card = m.engine.ChangeMode(mode)
				if m.card.Audio && !m.card.Empty {
					m.engine.Pronounce()
				}
			}
		case "l":
			if s, ok := m.engine.Session(); ok {
				m.picker.open(s.Selection)
			}
		case "p", "v":
			m.engine.Pronounce()
		case "?":
			m.helpmode.Active = true
		}
		m.render()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		viewportHeight := msg.Height - 3 // mode bar, infobar and footer
		if !m.ready {
			m.viewport = viewport.Model{Width: msg.Width, Height: viewportHeight}
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = viewportHeight
		}
		m.render()
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *PracModel) updatePicker(msg tea.KeyMsg) {
	switch msg.String() {
	case "j", "down":
		m.picker.move(1)
	case "k", "up":
		m.picker.move(-1)
	case " ", "space":
		m.picker.toggle()
	case "a":
		m.picker.clear()
	case "enter":
		m.picker.Active = false
		sel := m.picker.selection()
		m.log.Debug("lesson filter", zap.Int("lessons", len(sel.IDs)))
		m.show(m.engine.ChangeFilter(sel))
	case "esc", "q":
		m.picker.Active = false
	}
}

func (m *PracModel) render() {
	if !m.ready {
		return
	}
	var content string
	switch {
	case m.helpmode.Active:
		content = m.helpmode.View()
	case m.picker.Active:
		content = m.picker.View(m.viewport.Width)
	default:
		content = m.cardView()
	}
	m.viewport.SetContent(wordwrap.String(content, m.viewport.Width))
	m.viewport.GotoTop()
}

func (m *PracModel) cardView() string {
	width := m.viewport.Width
	pad := (m.viewport.Height - 7) / 2
	if pad < 1 {
		pad = 1
	}
	lines := make([]string, pad)

	if m.card.Empty {
		lines = append(lines, ui.Center(width, ui.StyleEmpty(m.card.Front)))
		lines = append(lines, "", ui.Center(width, ui.StyleHelp("l: выбрать уроки")))
		return strings.Join(lines, "\n")
	}

	rule := ui.Center(width, ui.StyleHelp(strings.Repeat("─", 30)))
	lines = append(lines, rule, "")
	if m.card.Audio {
		lines = append(lines, ui.Center(width, ui.StyleMode("♪  p: прослушать")), "")
	}
	lines = append(lines, ui.Center(width, ui.StyleGreek(m.card.Front)))
	if m.card.Face == flashcard.FaceUp {
		lines = append(lines, "", ui.Center(width, ui.StyleRussian(m.card.Back)))
	} else {
		lines = append(lines, "", ui.Center(width, ui.StyleHelp("space: показать ответ")))
	}
	lines = append(lines, "", rule)
	return strings.Join(lines, "\n")
}

func (m *PracModel) modebar() string {
	var cells []ui.Cell
	for i, mode := range flashcard.Modes {
		label := fmt.Sprintf("%d %s", i+1, mode.Label())
		text := ui.StyleHelp(label)
		if mode == m.engine.Mode() {
			text = ui.StyleSelected(label)
		}
		cells = append(cells, ui.Cell{Text: text, Align: ui.CenterAlign})
	}
	return ui.Line(m.viewport.Width, cells...)
}

func (m *PracModel) infobar() string {
	scope := "все уроки"
	if s, ok := m.engine.Session(); ok && !s.Selection.IsAll() {
		ids := make([]string, len(s.Selection.IDs))
		for i, id := range s.Selection.IDs {
			ids[i] = lessons.FormatID(id)
		}
		scope = "уроки " + strings.Join(ids, ", ")
	}
	counts := fmt.Sprintf("слов %d  осталось %d  показано %d", m.engine.PoolSize(), m.engine.QueueLen(), m.drawn)
	return ui.Line(
		m.viewport.Width,
		ui.Cell{Text: ui.StyleInfo(scope)},
		ui.Cell{Width: len([]rune(counts)) + 2, Text: ui.StyleInfo(counts), Align: ui.RightAlign},
	)
}

func (m *PracModel) View() string {
	if !m.ready {
		return "\n  Initalizing..."
	}
	if m.width < ui.MinWidth {
		return ui.TooNarrow(m.width)
	}
	return strings.Join(
		[]string{
			m.modebar(), "\n",
			m.viewport.View(), "\n",
			m.infobar(), "\n",
			ui.Footer(m.viewport.Width, "q:exit | space:flip | n:next | l:lessons | ?:help"),
		},
		"",
	)
}

// Start runs the quiz until the user leaves it.
func Start(engine *flashcard.Engine, c *lessons.Catalog, sel flashcard.Selection, mode flashcard.Mode, log *zap.Logger) error {
	m := initialModel(engine, c, sel, mode, log)
	defer engine.ExitQuiz()
	if err := tea.NewProgram(m).Start(); err != nil {
		return fmt.Errorf("could not start program: %w", err)
	}
	return nil
}

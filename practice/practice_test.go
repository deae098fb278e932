package practice

import (
	"math/rand"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lai323/lexis/flashcard"
	"github.com/lai323/lexis/lessons"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type speaker struct {
	texts      []string
	keepAlives int
	stops      int
}

func (s *speaker) Pronounce(text, lang string) { s.texts = append(s.texts, text) }
func (s *speaker) StartKeepAlive()             { s.keepAlives++ }
func (s *speaker) StopKeepAlive()              { s.stops++ }

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func start(t *testing.T, sel flashcard.Selection, mode flashcard.Mode) (*PracModel, *speaker, *lessons.Catalog) {
	t.Helper()
	c, err := lessons.Default()
	require.NoError(t, err)
	sp := &speaker{}
	e := flashcard.New(c,
		flashcard.WithRand(rand.New(rand.NewSource(3))),
		flashcard.WithPronouncer(sp, "el-GR"),
	)
	m := initialModel(e, c, sel, mode, nil)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, sp, c
}

func TestStart_DrawsFirstCard(t *testing.T) {
	m, sp, c := start(t, flashcard.All(), flashcard.ModeGreekRussian)
	assert.False(t, m.card.Empty)
	assert.Equal(t, flashcard.AwaitingInput, m.engine.State())
	assert.Equal(t, c.Count(), m.engine.PoolSize())
	assert.Equal(t, 1, sp.keepAlives)
	assert.Empty(t, sp.texts, "text modes stay quiet")
	assert.Contains(t, m.View(), m.card.Front)
}

func TestFlipAndNext(t *testing.T) {
	m, _, _ := start(t, flashcard.Lessons(1.2), flashcard.ModeRussianGreek)
	first := m.card

	m.Update(key(" "))
	assert.Equal(t, flashcard.Revealed, m.engine.State())
	assert.Contains(t, m.cardView(), first.Back)

	m.Update(key("n"))
	assert.Equal(t, flashcard.AwaitingInput, m.engine.State())
	assert.NotSame(t, first.Word, m.card.Word)
	assert.Equal(t, 2, m.drawn)
}

func TestAudioModeSpeaksEachCard(t *testing.T) {
	m, sp, _ := start(t, flashcard.Lessons(2), flashcard.ModeAudio)
	require.Len(t, sp.texts, 1)
	assert.Equal(t, flashcard.StripAnnotations(m.card.Word.Greek), sp.texts[0])

	m.Update(key("enter"))
	assert.Len(t, sp.texts, 2)
	m.Update(key("p"))
	assert.Len(t, sp.texts, 3)
	assert.NotContains(t, sp.texts, "ο πατέρας (αρσ.)")
}

func TestModeKeys(t *testing.T) {
	m, sp, _ := start(t, flashcard.All(), flashcard.ModeGreekRussian)
	word := m.card.Word
	queue := m.engine.QueueLen()

	m.Update(key("3"))
	assert.Equal(t, flashcard.ModeRussianGreek, m.engine.Mode())
	assert.Same(t, word, m.card.Word)
	assert.Equal(t, word.Russian, m.card.Front)
	assert.Equal(t, queue, m.engine.QueueLen())

	m.Update(key("1"))
	assert.True(t, m.card.Audio)
	assert.Len(t, sp.texts, 1, "switching to audio speaks the card")
}

func TestPicker_ChangesFilter(t *testing.T) {
	m, _, _ := start(t, flashcard.All(), flashcard.ModeGreekRussian)

	m.Update(key("l"))
	require.True(t, m.picker.Active)
	// lessons in order: 1.1, 1.2, 2, 3.1, ...
	m.Update(key("j"))
	m.Update(key(" "))
	m.Update(key("j"))
	m.Update(key(" "))
	m.Update(key("enter"))

	assert.False(t, m.picker.Active)
	s, ok := m.engine.Session()
	require.True(t, ok)
	assert.Equal(t, []float64{1.2, 2}, s.Selection.IDs)
	assert.Equal(t, 14, m.engine.PoolSize())
	assert.Contains(t, m.infobar(), "уроки 1.2, 2")

	m.Update(key("l"))
	m.Update(key("a"))
	m.Update(key("enter"))
	s, _ = m.engine.Session()
	assert.True(t, s.Selection.IsAll())
}

func TestPicker_Cancel(t *testing.T) {
	m, _, _ := start(t, flashcard.Lessons(4), flashcard.ModeGreekRussian)
	card := m.card
	m.Update(key("l"))
	m.Update(key(" "))
	m.Update(key("esc"))
	assert.False(t, m.picker.Active)
	assert.Same(t, card.Word, m.card.Word)
	assert.Equal(t, 5, m.engine.PoolSize())
}

func TestExit(t *testing.T) {
	m, sp, _ := start(t, flashcard.All(), flashcard.ModeAudio)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, flashcard.Idle, m.engine.State())
	assert.Equal(t, 1, sp.stops)

	m.engine.ExitQuiz()
	assert.Equal(t, 1, sp.stops)
}

func TestOptions(t *testing.T) {
	c, err := lessons.Default()
	require.NoError(t, err)

	sel, err := Options{}.Selection(c)
	require.NoError(t, err)
	assert.True(t, sel.IsAll())

	sel, err = Options{Lessons: []string{"1.1", " 3.2"}}.Selection(c)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.1, 3.2}, sel.IDs)

	sel, err = Options{Lessons: []string{"2", "all"}}.Selection(c)
	require.NoError(t, err)
	assert.True(t, sel.IsAll())

	_, err = Options{Lessons: []string{"7"}}.Selection(c)
	assert.EqualError(t, err, "unknown lesson 7")
	_, err = Options{Lessons: []string{"x"}}.Selection(c)
	assert.Error(t, err)

	mode, err := Options{}.QuizMode("ru-gr")
	require.NoError(t, err)
	assert.Equal(t, flashcard.ModeRussianGreek, mode)
	mode, err = Options{Mode: "audio"}.QuizMode("ru-gr")
	require.NoError(t, err)
	assert.Equal(t, flashcard.ModeAudio, mode)
}

package flashcard_test

import (
	"math/rand"
	"testing"

	"github.com/lai323/lexis/flashcard"
	"github.com/lai323/lexis/lessons"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeSpeaker struct {
	spoken     []string
	langs      []string
	keepAlives int
	stops      int
}

func (f *fakeSpeaker) Pronounce(text, lang string) {
	f.spoken = append(f.spoken, text)
	f.langs = append(f.langs, lang)
}

func (f *fakeSpeaker) StartKeepAlive() { f.keepAlives++ }
func (f *fakeSpeaker) StopKeepAlive()  { f.stops++ }

func catalog(t *testing.T) *lessons.Catalog {
	t.Helper()
	c, err := lessons.NewCatalog([]lessons.Lesson{
		{ID: 1, Words: []lessons.Word{
			{Greek: "γειά", Russian: "привет"},
			{Greek: "ναι", Russian: "да"},
		}},
		{ID: 1.1, Words: []lessons.Word{
			{Greek: "όχι", Russian: "нет"},
			{Greek: "ο πατέρας (αρσ.)", Russian: "отец"},
			{Greek: "η μητέρα", Russian: "мать"},
		}},
		{ID: 2},
	})
	require.NoError(t, err)
	return c
}

func newEngine(t *testing.T, c *lessons.Catalog, opts ...flashcard.Option) *flashcard.Engine {
	t.Helper()
	opts = append([]flashcard.Option{
		flashcard.WithRand(rand.New(rand.NewSource(7))),
		flashcard.WithLogger(zaptest.NewLogger(t)),
	}, opts...)
	return flashcard.New(c, opts...)
}

func TestEnterQuiz_AllSelectsEveryWord(t *testing.T) {
	c := catalog(t)
	e := newEngine(t, c)

	card := e.EnterQuiz(flashcard.All(), flashcard.ModeGreekRussian)

	assert.False(t, card.Empty)
	assert.Equal(t, flashcard.AwaitingInput, e.State())
	assert.Equal(t, c.Count(), e.PoolSize())
	assert.Equal(t, c.Count()-1, e.QueueLen(), "one word was drawn")
}

func TestEnterQuiz_QueueIsPermutationOfPool(t *testing.T) {
	c := catalog(t)
	for seed := int64(0); seed < 20; seed++ {
		e := flashcard.New(c, flashcard.WithRand(rand.New(rand.NewSource(seed))))
		first := e.EnterQuiz(flashcard.Lessons(1.1), flashcard.ModeGreekRussian)

		seen := map[*lessons.Word]int{first.Word: 1}
		for i := 1; i < e.PoolSize(); i++ {
			seen[e.Next().Word]++
		}
		want := map[*lessons.Word]int{}
		for _, w := range c.Words(1.1) {
			want[w] = 1
		}
		assert.Equal(t, want, seen, "seed %d", seed)
	}
}

func TestNext_EveryWordOncePerPass(t *testing.T) {
	c := catalog(t)
	e := newEngine(t, c)

	first := e.EnterQuiz(flashcard.All(), flashcard.ModeAudio)
	pool := e.PoolSize()
	seen := map[*lessons.Word]bool{first.Word: true}
	for i := 1; i < pool; i++ {
		card := e.Next()
		require.False(t, seen[card.Word], "word repeated before the pass ended")
		seen[card.Word] = true
	}
	assert.Len(t, seen, pool)
	assert.Equal(t, 0, e.QueueLen())

	// The next pass starts from a refilled queue.
	card := e.Next()
	assert.True(t, seen[card.Word])
	assert.Equal(t, pool-1, e.QueueLen())
}

func TestScenario_TwoWords(t *testing.T) {
	c, err := lessons.NewCatalog([]lessons.Lesson{{ID: 1, Words: []lessons.Word{
		{Greek: "γειά", Russian: "привет"},
		{Greek: "ναι", Russian: "да"},
	}}})
	require.NoError(t, err)
	e := newEngine(t, c)

	card := e.EnterQuiz(flashcard.All(), flashcard.ModeGreekRussian)
	assert.Contains(t, []string{"γειά", "ναι"}, card.Front, "front shows the Greek side")
	assert.Equal(t, card.Word.Greek, card.Shown())

	second := e.Next()
	third := e.Next()
	assert.NotSame(t, card.Word, second.Word, "both words shown once in the first pass")
	assert.Contains(t, []*lessons.Word{card.Word, second.Word}, third.Word, "third draw repeats one of them")
}

func TestScenario_EmptyLesson(t *testing.T) {
	e := newEngine(t, catalog(t))

	card := e.EnterQuiz(flashcard.Lessons(2), flashcard.ModeGreekRussian)
	assert.True(t, card.Empty)
	assert.Equal(t, flashcard.EmptyText, card.Front)

	card = e.Next()
	assert.True(t, card.Empty)
	assert.Nil(t, card.Word)

	card = e.Flip()
	assert.True(t, card.Empty)
	assert.Equal(t, flashcard.AwaitingInput, e.State(), "placeholder cannot be flipped")
}

func TestFlip(t *testing.T) {
	e := newEngine(t, catalog(t))
	e.EnterQuiz(flashcard.All(), flashcard.ModeRussianGreek)

	card := e.Flip()
	assert.Equal(t, flashcard.Revealed, e.State())
	assert.Equal(t, flashcard.FaceUp, card.Face)
	assert.Equal(t, card.Word.Greek, card.Shown(), "back of ru-gr is Greek")
	queue := e.QueueLen()

	card = e.Flip()
	assert.Equal(t, flashcard.AwaitingInput, e.State())
	assert.Equal(t, card.Word.Russian, card.Shown())
	assert.Equal(t, queue, e.QueueLen(), "flip does not draw")
}

func TestNext_ResetsFace(t *testing.T) {
	e := newEngine(t, catalog(t))
	e.EnterQuiz(flashcard.All(), flashcard.ModeGreekRussian)
	e.Flip()

	card := e.Next()
	assert.Equal(t, flashcard.FaceDown, card.Face)
	assert.Equal(t, flashcard.AwaitingInput, e.State())
}

func TestChangeMode_RelabelsCurrentWord(t *testing.T) {
	e := newEngine(t, catalog(t))
	before := e.EnterQuiz(flashcard.All(), flashcard.ModeGreekRussian)
	e.Flip()
	queue := e.QueueLen()

	after := e.ChangeMode(flashcard.ModeRussianGreek)
	assert.Same(t, before.Word, after.Word)
	assert.Equal(t, queue, e.QueueLen())
	assert.Equal(t, before.Word.Russian, after.Front)
	assert.Equal(t, before.Word.Greek, after.Back)
	assert.Equal(t, flashcard.AwaitingInput, e.State())
	assert.Equal(t, flashcard.FaceDown, after.Face)

	audio := e.ChangeMode(flashcard.ModeAudio)
	assert.True(t, audio.Audio)
	assert.Equal(t, before.Word.Greek, audio.Front)
}

func TestChangeFilter_RebuildsPoolKeepsMode(t *testing.T) {
	c := catalog(t)
	e := newEngine(t, c)
	e.EnterQuiz(flashcard.All(), flashcard.ModeRussianGreek)

	card := e.ChangeFilter(flashcard.Lessons(1))
	assert.Equal(t, 2, e.PoolSize())
	assert.Equal(t, 1, e.QueueLen())
	assert.Equal(t, flashcard.ModeRussianGreek, card.Mode)
	assert.Contains(t, c.Words(1), card.Word)

	s, ok := e.Session()
	require.True(t, ok)
	assert.Equal(t, []float64{1}, s.Selection.IDs)
}

func TestChangeFilter_FromIdleEntersQuiz(t *testing.T) {
	e := newEngine(t, catalog(t))
	e.ChangeMode(flashcard.ModeRussianGreek)
	assert.Equal(t, flashcard.Idle, e.State())

	card := e.ChangeFilter(flashcard.Lessons(1.1))
	assert.Equal(t, flashcard.AwaitingInput, e.State())
	assert.Equal(t, flashcard.ModeRussianGreek, card.Mode)
	assert.Equal(t, 3, e.PoolSize())
}

func TestExitQuiz(t *testing.T) {
	speaker := &fakeSpeaker{}
	e := newEngine(t, catalog(t), flashcard.WithPronouncer(speaker, "el-GR"))

	e.EnterQuiz(flashcard.All(), flashcard.ModeAudio)
	e.EnterQuiz(flashcard.Lessons(1), flashcard.ModeAudio)
	assert.Equal(t, 1, speaker.keepAlives, "re-entering an open quiz does not restart keep-alive")

	e.ExitQuiz()
	e.ExitQuiz()
	assert.Equal(t, 1, speaker.stops, "keep-alive stops exactly once")
	assert.Equal(t, flashcard.Idle, e.State())
	assert.Equal(t, 0, e.PoolSize())
	_, ok := e.Session()
	assert.False(t, ok)
	assert.True(t, e.Next().Empty)
}

func TestPronounce_StripsAnnotations(t *testing.T) {
	c, err := lessons.NewCatalog([]lessons.Lesson{{ID: 1, Words: []lessons.Word{
		{Greek: "ο πατέρας (αρσ.)", Russian: "отец"},
	}}})
	require.NoError(t, err)
	speaker := &fakeSpeaker{}
	e := newEngine(t, c, flashcard.WithPronouncer(speaker, "el-GR"))

	assert.False(t, e.Pronounce(), "nothing to say before the quiz starts")

	e.EnterQuiz(flashcard.All(), flashcard.ModeRussianGreek)
	require.True(t, e.Pronounce())
	assert.Equal(t, []string{"ο πατέρας"}, speaker.spoken)
	assert.Equal(t, []string{"el-GR"}, speaker.langs)
}

func TestStripAnnotations(t *testing.T) {
	assert.Equal(t, "ο πατέρας", flashcard.StripAnnotations("ο πατέρας (αρσ.)"))
	assert.Equal(t, "τα παιδιά μου", flashcard.StripAnnotations("τα (πληθ.) παιδιά  μου"))
	assert.Equal(t, "", flashcard.StripAnnotations("(м.р.)"))
	assert.Equal(t, "καφές", flashcard.StripAnnotations("καφές"))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want flashcard.Mode
	}{
		{"audio", flashcard.ModeAudio},
		{"GR-RU", flashcard.ModeGreekRussian},
		{"source-target", flashcard.ModeGreekRussian},
		{"ru-gr", flashcard.ModeRussianGreek},
		{" target-source ", flashcard.ModeRussianGreek},
	}
	for _, tt := range tests {
		m, err := flashcard.ParseMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, m)
		if tt.in == tt.want.String() {
			assert.Equal(t, tt.in, m.String())
		}
	}

	_, err := flashcard.ParseMode("greek")
	assert.Error(t, err)
}

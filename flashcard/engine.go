// Package flashcard is the self-check quiz: a word pool scoped to a lesson
// selection, a shuffled queue that shows every word once per pass, and the
// card state machine driven by the quiz view.
package flashcard

import (
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lai323/lexis/lessons"
	"go.uber.org/zap"
)

// EmptyText is shown instead of a word when the pool is empty.
const EmptyText = "Нет слов для выбранных уроков"

// Provider supplies the words of the selected lessons; no ids means all.
type Provider interface {
	Words(ids ...float64) []*lessons.Word
}

// Pronouncer speaks text in the given language. Calls must not block.
type Pronouncer interface {
	Pronounce(text, lang string)
}

// KeepAliver is implemented by pronouncers that keep the audio device awake
// while the quiz view is open.
type KeepAliver interface {
	StartKeepAlive()
	StopKeepAlive()
}

// Card is what the quiz view renders.
type Card struct {
	Word  *lessons.Word
	Front string
	Back  string
	Mode  Mode
	Face  Face
	Audio bool
	Empty bool
}

// Shown returns the text on the visible face.
func (c Card) Shown() string {
	if c.Face == FaceUp {
		return c.Back
	}
	return c.Front
}

// Session is the state of one quiz view visit.
type Session struct {
	ID        string
	Mode      Mode
	Selection Selection
	Current   *lessons.Word
	Face      Face
}

// Engine owns the pool, the queue and the session. It is driven from a
// single event loop and is not safe for concurrent use.
type Engine struct {
	provider Provider
	speaker  Pronouncer
	lang     string
	rnd      *rand.Rand
	base     *zap.Logger
	log      *zap.Logger

	state   State
	mode    Mode
	session *Session
	pool    []*lessons.Word
	queue   []*lessons.Word
}

type Option func(*Engine)

// WithRand sets the randomness source for shuffling.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rnd = r
	}
}

// WithPronouncer routes Pronounce calls to p with the given language tag.
func WithPronouncer(p Pronouncer, lang string) Option {
	return func(e *Engine) {
		e.speaker = p
		e.lang = lang
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.base = l
	}
}

func New(p Provider, opts ...Option) *Engine {
	e := &Engine{
		provider: p,
		base:     zap.NewNop(),
		lang:     "el-GR",
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.log = e.base
	return e
}

// EnterQuiz opens a session: it builds the pool for sel, shuffles a fresh
// queue and draws the first word.
func (e *Engine) EnterQuiz(sel Selection, mode Mode) Card {
	if e.state == Idle {
		id := uuid.NewString()
		e.session = &Session{ID: id}
		e.log = e.base.With(zap.String("session", id))
		if k, ok := e.speaker.(KeepAliver); ok {
			k.StartKeepAlive()
		}
	}
	e.mode = mode
	e.session.Mode = mode
	e.rebuild(sel)
	e.log.Debug("quiz entered",
		zap.Stringer("mode", mode),
		zap.Int("pool", len(e.pool)),
		zap.Bool("all", sel.IsAll()),
	)
	return e.draw()
}

// Flip turns the card over. The placeholder card has no back.
func (e *Engine) Flip() Card {
	switch {
	case e.session == nil || e.session.Current == nil:
	case e.state == AwaitingInput:
		e.state = Revealed
		e.session.Face = FaceUp
	case e.state == Revealed:
		e.state = AwaitingInput
		e.session.Face = FaceDown
	}
	return e.Card()
}

// Next draws the next word, refilling and reshuffling the queue from the
// pool once a pass is complete.
func (e *Engine) Next() Card {
	if e.state == Idle {
		return e.Card()
	}
	return e.draw()
}

// ChangeMode relabels the faces of the current word. The queue is not
// touched and no new word is drawn. In Idle the mode is kept for the next
// session.
func (e *Engine) ChangeMode(m Mode) Card {
	e.mode = m
	if e.state == Idle {
		return e.Card()
	}
	e.session.Mode = m
	e.session.Face = FaceDown
	e.state = AwaitingInput
	e.log.Debug("mode changed", zap.Stringer("mode", m))
	return e.Card()
}

// ChangeFilter rebuilds the pool for sel, discards the queue and draws a new
// word with the active mode.
func (e *Engine) ChangeFilter(sel Selection) Card {
	if e.state == Idle {
		return e.EnterQuiz(sel, e.mode)
	}
	e.rebuild(sel)
	e.log.Debug("filter changed", zap.Int("pool", len(e.pool)), zap.Bool("all", sel.IsAll()))
	return e.draw()
}

// ExitQuiz discards the session.
func (e *Engine) ExitQuiz() {
	if e.state == Idle {
		return
	}
	if k, ok := e.speaker.(KeepAliver); ok {
		k.StopKeepAlive()
	}
	e.log.Debug("quiz exited")
	e.state = Idle
	e.session = nil
	e.pool = nil
	e.queue = nil
	e.log = e.base
}

// Pronounce asks the pronouncer to speak the Greek side of the current word.
// It reports whether anything was sent.
func (e *Engine) Pronounce() bool {
	if e.speaker == nil || e.session == nil || e.session.Current == nil {
		return false
	}
	text := StripAnnotations(e.session.Current.Greek)
	if text == "" {
		return false
	}
	e.speaker.Pronounce(text, e.lang)
	return true
}

// Card renders the current session state.
func (e *Engine) Card() Card {
	if e.session == nil || e.session.Current == nil {
		return Card{Front: EmptyText, Mode: e.mode, Empty: true}
	}
	s := e.session
	w := s.Current
	c := Card{Word: w, Mode: s.Mode, Face: s.Face}
	switch s.Mode {
	case ModeRussianGreek:
		c.Front, c.Back = w.Russian, w.Greek
	case ModeAudio:
		c.Front, c.Back = w.Greek, w.Russian
		c.Audio = true
	default:
		c.Front, c.Back = w.Greek, w.Russian
	}
	return c
}

func (e *Engine) State() State {
	return e.state
}

func (e *Engine) Mode() Mode {
	return e.mode
}

// Session returns a copy of the active session, or false in Idle.
func (e *Engine) Session() (Session, bool) {
	if e.session == nil {
		return Session{}, false
	}
	return *e.session, true
}

func (e *Engine) PoolSize() int {
	return len(e.pool)
}

func (e *Engine) QueueLen() int {
	return len(e.queue)
}

func (e *Engine) rebuild(sel Selection) {
	e.session.Selection = sel
	e.pool = e.provider.Words(sel.IDs...)
	e.queue = e.shuffled(e.pool)
}

func (e *Engine) draw() Card {
	s := e.session
	s.Face = FaceDown
	e.state = AwaitingInput
	if len(e.queue) == 0 {
		if len(e.pool) == 0 {
			s.Current = nil
			return e.Card()
		}
		e.queue = e.shuffled(e.pool)
		e.log.Debug("queue refilled", zap.Int("size", len(e.queue)))
	}
	last := len(e.queue) - 1
	s.Current = e.queue[last]
	e.queue[last] = nil
	e.queue = e.queue[:last]
	return e.Card()
}

// shuffled returns a Fisher–Yates permutation of a copy of words.
func (e *Engine) shuffled(words []*lessons.Word) []*lessons.Word {
	q := make([]*lessons.Word, len(words))
	copy(q, words)
	for i := len(q) - 1; i > 0; i-- {
		j := e.rnd.Intn(i + 1)
		q[i], q[j] = q[j], q[i]
	}
	return q
}

var annotationRe = regexp.MustCompile(`\([^)]*\)`)

// StripAnnotations removes parenthesized tags such as "(αρσ.)" and tidies
// the remaining spaces.
func StripAnnotations(text string) string {
	return strings.Join(strings.Fields(annotationRe.ReplaceAllString(text, " ")), " ")
}

package speech

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	primeText     = "."
	keepAliveText = "."
)

// Narrator is the fire-and-forget front end of an Engine. It is safe for
// concurrent use.
type Narrator struct {
	engine  Engine
	catalog *VoiceCatalog
	log     *zap.Logger

	volume         float64
	prime          bool
	keepAliveEvery time.Duration

	mu        sync.Mutex
	cancel    context.CancelFunc
	keepAlive context.CancelFunc
	wg        sync.WaitGroup
}

type NarratorOption func(*Narrator)

func WithLogger(l *zap.Logger) NarratorOption {
	return func(n *Narrator) {
		n.log = l
	}
}

func WithVolume(v float64) NarratorOption {
	return func(n *Narrator) {
		n.volume = v
	}
}

// WithPriming sends a silent utterance before every real one. Some audio
// devices drop the start of the first sound after idling.
func WithPriming(prime bool) NarratorOption {
	return func(n *Narrator) {
		n.prime = prime
	}
}

// WithKeepAlive sets the keep-alive period. Zero disables keep-alive.
func WithKeepAlive(every time.Duration) NarratorOption {
	return func(n *Narrator) {
		n.keepAliveEvery = every
	}
}

// NewNarrator starts loading the engine's voices right away.
func NewNarrator(e Engine, opts ...NarratorOption) *Narrator {
	n := &Narrator{
		engine:         e,
		catalog:        NewVoiceCatalog(e),
		log:            zap.NewNop(),
		volume:         1,
		keepAliveEvery: 20 * time.Second,
	}
	for _, opt := range opts {
		opt(n)
	}
	n.catalog.Load()
	return n
}

// Pronounce speaks text asynchronously, cancelling whatever this narrator
// is still saying.
func (n *Narrator) Pronounce(text, lang string) {
	if text == "" {
		return
	}
	n.mu.Lock()
	if n.cancel != nil {
		n.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel
	n.wg.Add(1)
	n.mu.Unlock()

	go func() {
		defer n.wg.Done()
		defer cancel()
		n.speak(ctx, text, lang)
	}()
}

func (n *Narrator) speak(ctx context.Context, text, lang string) {
	log := n.log.With(zap.String("lang", lang))

	voices, err := n.catalog.Voices(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Warn("voices unavailable", zap.Error(err))
	}
	voice, ok := MatchVoice(voices, lang)
	if !ok {
		log.Warn("no voice for language, using default", zap.String("voice", voice.Name))
	}

	if n.prime {
		if err := n.engine.Speak(ctx, Utterance{Text: primeText, Lang: lang, Voice: voice}); err != nil {
			log.Debug("priming failed", zap.Error(err))
		}
	}

	u := Utterance{Text: text, Lang: lang, Voice: voice, Volume: n.volume}
	err = n.engine.Speak(ctx, u)
	if err != nil && !cancelled(ctx, err) {
		log.Debug("speak failed, retrying", zap.Error(err))
		err = n.engine.Speak(ctx, u)
	}
	switch {
	case err == nil:
		log.Debug("spoke", zap.String("text", text), zap.String("voice", voice.ID))
	case cancelled(ctx, err):
		log.Debug("speech cancelled", zap.String("text", text))
	default:
		log.Warn("speech dropped", zap.String("text", text), zap.Error(err))
	}
}

func cancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil || errors.Is(err, context.Canceled)
}

// StartKeepAlive periodically sends a silent utterance until
// StopKeepAlive. Calling it while running does nothing.
func (n *Narrator) StartKeepAlive() {
	if n.keepAliveEvery <= 0 {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.keepAlive != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	n.keepAlive = cancel
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ticker := time.NewTicker(n.keepAliveEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				err := n.engine.Speak(ctx, Utterance{Text: keepAliveText, Voice: DefaultVoice(n.loaded())})
				if err != nil && ctx.Err() == nil {
					n.log.Debug("keep-alive failed", zap.Error(err))
				}
			}
		}
	}()
	n.log.Debug("keep-alive started", zap.Duration("every", n.keepAliveEvery))
}

// StopKeepAlive stops the keep-alive loop. Extra calls do nothing.
func (n *Narrator) StopKeepAlive() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.keepAlive == nil {
		return
	}
	n.keepAlive()
	n.keepAlive = nil
	n.log.Debug("keep-alive stopped")
}

// loaded returns the voices if the catalog has resolved, without waiting.
func (n *Narrator) loaded() []Voice {
	select {
	case <-n.catalog.done:
		return n.catalog.voices
	default:
		return nil
	}
}

// Wait blocks until every pending utterance and the keep-alive loop have
// finished.
func (n *Narrator) Wait() {
	n.wg.Wait()
}

// Close cancels everything in flight and waits for it to unwind.
func (n *Narrator) Close() {
	n.StopKeepAlive()
	n.mu.Lock()
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.mu.Unlock()
	n.wg.Wait()
}

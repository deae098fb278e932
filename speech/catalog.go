package speech

import (
	"context"
	"sync"
	"time"
)

// VoiceCatalog loads the engine's voices once, in the background. Every
// caller awaits the same result.
type VoiceCatalog struct {
	engine  Engine
	timeout time.Duration

	once   sync.Once
	done   chan struct{}
	voices []Voice
	err    error
}

func NewVoiceCatalog(e Engine) *VoiceCatalog {
	return &VoiceCatalog{
		engine:  e,
		timeout: 10 * time.Second,
		done:    make(chan struct{}),
	}
}

// Load starts loading if it has not started yet and returns immediately.
func (c *VoiceCatalog) Load() {
	c.once.Do(func() {
		go func() {
			defer close(c.done)
			ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
			defer cancel()
			c.voices, c.err = c.engine.Voices(ctx)
		}()
	})
}

// Voices waits for the catalog to resolve or ctx to end.
func (c *VoiceCatalog) Voices(ctx context.Context) ([]Voice, error) {
	c.Load()
	select {
	case <-c.done:
		return c.voices, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

package audio

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	// PrewarmTimeout bounds the wait for the pre-warm task.
	PrewarmTimeout = 30 * time.Second
	// MaxParallelCache bounds the number of effects synthesized at once.
	MaxParallelCache = 3
)

var ErrPrewarmTimeout = errors.New("audio: pre-warm timed out")

// Prewarm is a running background cache fill.
type Prewarm struct {
	done   chan struct{}
	err    error
	cancel context.CancelFunc
}

// StartPrewarm synthesizes ids in the background. The game keeps running
// while it works; call Wait before effects are needed.
func (b *Bank) StartPrewarm(ctx context.Context, ids []Sfx) *Prewarm {
	ctx, cancel := context.WithCancel(ctx)
	p := &Prewarm{done: make(chan struct{}), cancel: cancel}
	go func() {
		defer close(p.done)
		defer cancel()
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(MaxParallelCache)
		for _, id := range ids {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				_, err := b.buffer(id)
				return err
			})
		}
		p.err = g.Wait()
	}()
	return p
}

// Wait joins the task. After timeout the task is cancelled and
// ErrPrewarmTimeout is returned.
func (p *Prewarm) Wait(timeout time.Duration) error {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-p.done:
		return p.err
	case <-timer.C:
		p.cancel()
		return ErrPrewarmTimeout
	}
}

// Done is closed when the task finished.
func (p *Prewarm) Done() <-chan struct{} {
	return p.done
}

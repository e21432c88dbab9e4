package browser

import (
	"context"
	"sync"

	"github.com/eringen/guidebook/prefs"
)

// Effect describes a side effect for the host environment to perform.
type Effect interface {
	isEffect()
}

type (
	// SetTitle sets the document title.
	SetTitle struct{ Title string }
	// ScrollTo scrolls the viewport.
	ScrollTo struct{ Top int }
	// ReplaceURL rewrites the address bar without adding a history entry.
	ReplaceURL struct{ Path string }
	// PersistConfig writes the preference record. Its failure is fatal for
	// the message that produced it.
	PersistConfig struct{ Config prefs.Config }
)

func (SetTitle) isEffect()      {}
func (ScrollTo) isEffect()      {}
func (ReplaceURL) isEffect()    {}
func (PersistConfig) isEffect() {}

// EffectRunner executes effects on behalf of a Program.
type EffectRunner interface {
	Run(ctx context.Context, eff Effect) error
}

// RunnerFunc adapts a function to EffectRunner.
type RunnerFunc func(ctx context.Context, eff Effect) error

func (f RunnerFunc) Run(ctx context.Context, eff Effect) error { return f(ctx, eff) }

// Recorder is an EffectRunner that keeps every effect it is given, then
// forwards it to Next when set.
type Recorder struct {
	Next EffectRunner

	mu      sync.Mutex
	effects []Effect
}

func (r *Recorder) Run(ctx context.Context, eff Effect) error {
	r.mu.Lock()
	r.effects = append(r.effects, eff)
	r.mu.Unlock()
	if r.Next != nil {
		return r.Next.Run(ctx, eff)
	}
	return nil
}

// Effects returns a copy of the recorded effects in execution order.
func (r *Recorder) Effects() []Effect {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Effect, len(r.effects))
	copy(out, r.effects)
	return out
}

// Reset drops the recorded effects.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.effects = nil
	r.mu.Unlock()
}

// Title returns the last recorded SetTitle, if any.
func (r *Recorder) Title() (string, bool) {
	effects := r.Effects()
	for i := len(effects) - 1; i >= 0; i-- {
		if t, ok := effects[i].(SetTitle); ok {
			return t.Title, true
		}
	}
	return "", false
}

// ReplacedURL returns the last recorded ReplaceURL path, if any.
func (r *Recorder) ReplacedURL() (string, bool) {
	effects := r.Effects()
	for i := len(effects) - 1; i >= 0; i-- {
		if u, ok := effects[i].(ReplaceURL); ok {
			return u.Path, true
		}
	}
	return "", false
}

// PersistTo returns a runner that saves PersistConfig effects to store and
// ignores every other effect.
func PersistTo(store *prefs.Store) EffectRunner {
	return RunnerFunc(func(ctx context.Context, eff Effect) error {
		if p, ok := eff.(PersistConfig); ok {
			return store.Save(ctx, p.Config)
		}
		return nil
	})
}

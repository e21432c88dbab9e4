package guidebook

import (
	"context"

	"github.com/eringen/guidebook/browser"
	"github.com/eringen/guidebook/prefs"
)

// liveSession is one running state machine bound to a visitor's preferences.
// Page requests use a session for a single render; live connections keep
// one for their whole lifetime.
type liveSession struct {
	visitor  string
	store    *prefs.Store
	recorder *browser.Recorder
	program  *browser.Program
}

// newSession initialises a model for route and drains the initial
// messages.
func (a *App) newSession(ctx context.Context, visitor string, route browser.Route, userAgent string) (*liveSession, error) {
	store := prefs.NewStore(a.Prefs.Scope(visitor), a.Logger)
	m, initial := browser.Init(browser.Flags{
		Route:          route,
		Guides:         a.Catalog.Guides(),
		Config:         store.Load(ctx),
		InPrerendering: browser.DetectPrerendering(userAgent),
		TitleSuffix:    a.Config.TitleSuffix,
	})
	rec := &browser.Recorder{Next: browser.PersistTo(store)}
	s := &liveSession{
		visitor:  visitor,
		store:    store,
		recorder: rec,
		program:  browser.NewProgram(m, rec, browser.WithLogger(a.Logger)),
	}
	return s, s.program.Send(ctx, initial...)
}

func (s *liveSession) model() *browser.Model { return s.program.Model() }

// send dispatches msgs and returns the effects they produced.
func (s *liveSession) send(ctx context.Context, msgs ...browser.Msg) ([]browser.Effect, error) {
	s.recorder.Reset()
	err := s.program.Send(ctx, msgs...)
	return s.recorder.Effects(), err
}

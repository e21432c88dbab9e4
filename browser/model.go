package browser

import (
	"github.com/eringen/guidebook/guide"
	"github.com/eringen/guidebook/prefs"
)

const (
	Version     = "0.6.0"
	VersionDate = "Feb 1, 2020"

	DefaultTitleSuffix = "Seed"

	// PrerenderUserAgent is the exact client identifier reported by the
	// pre-rendering crawler.
	PrerenderUserAgent = "ReactSnap"
)

// Visibility is the state of a collapsible panel.
type Visibility int

const (
	Hidden Visibility = iota
	Visible
)

// Toggled returns the opposite visibility.
func (v Visibility) Toggled() Visibility {
	if v == Visible {
		return Hidden
	}
	return Visible
}

func (v *Visibility) Toggle() { *v = v.Toggled() }

func (v Visibility) IsVisible() bool { return v == Visible }

func (v Visibility) String() string {
	if v == Visible {
		return "visible"
	}
	return "hidden"
}

// Model is the complete application state. It is owned by exactly one
// Program; nothing else mutates it.
type Model struct {
	Page                Page
	GuideListVisibility Visibility
	MenuVisibility      Visibility
	InPrerendering      bool
	Guides              []guide.Guide
	SearchQuery         string
	MatchedGuides       []guide.Guide
	Mode                prefs.Mode
	TitleSuffix         string
}

// Flags carry everything Init needs from the host environment.
type Flags struct {
	Route          Route
	Guides         []guide.Guide
	Config         prefs.Config
	InPrerendering bool
	TitleSuffix    string
}

// Init builds the initial model and the messages that must be dispatched
// before anything else.
func Init(flags Flags) (*Model, []Msg) {
	suffix := flags.TitleSuffix
	if suffix == "" {
		suffix = DefaultTitleSuffix
	}
	m := &Model{
		Page:                ResolvePage(flags.Route, flags.Guides),
		GuideListVisibility: Hidden,
		MenuVisibility:      Hidden,
		InPrerendering:      flags.InPrerendering,
		Guides:              flags.Guides,
		SearchQuery:         "",
		MatchedGuides:       []guide.Guide{},
		Mode:                flags.Config.Mode,
		TitleSuffix:         suffix,
	}
	return m, []Msg{RouteChanged{Route: flags.Route}, UpdatePageTitle{}}
}

// DetectPrerendering reports whether the user agent is the pre-rendering
// crawler.
func DetectPrerendering(userAgent string) bool {
	return userAgent == PrerenderUserAgent
}

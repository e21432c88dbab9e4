package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/guidebook/guide"
	"github.com/eringen/guidebook/prefs"
)

var (
	gIntro   = guide.Guide{Slug: "intro", MenuTitle: "Introduction", LowercaseText: "introduction\nhello world"}
	gRouting = guide.Guide{Slug: "routing", MenuTitle: "Routing", LowercaseText: "routing\nfoo bar"}
	gViews   = guide.Guide{Slug: "views", MenuTitle: "Views", LowercaseText: "views\nbar baz"}
	catalog  = []guide.Guide{gIntro, gRouting, gViews}
)

func TestParseRoute(t *testing.T) {
	tests := []struct {
		name     string
		segments []string
		want     Route
	}{
		{"empty", []string{}, RootRoute()},
		{"nil", nil, RootRoute()},
		{"guide", []string{"guide", "x"}, GuideRoute("x")},
		{"too deep", []string{"guide", "x", "y"}, UnknownRoute()},
		{"guide without slug", []string{"guide"}, UnknownRoute()},
		{"other", []string{"foo"}, UnknownRoute()},
		{"other pair", []string{"foo", "x"}, UnknownRoute()},
		{"case sensitive", []string{"Guide", "x"}, UnknownRoute()},
		{"404", []string{"404"}, UnknownRoute()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRoute(tt.segments))
		})
	}
}

func TestRouteFromPath(t *testing.T) {
	assert.Equal(t, RootRoute(), RouteFromPath("/"))
	assert.Equal(t, RootRoute(), RouteFromPath(""))
	assert.Equal(t, GuideRoute("intro"), RouteFromPath("/guide/intro"))
	assert.Equal(t, GuideRoute("intro"), RouteFromPath("/guide/intro/"))
	assert.Equal(t, GuideRoute("a b"), RouteFromPath("/guide/a%20b"))
	assert.Equal(t, UnknownRoute(), RouteFromPath("/guide/a/b"))
}

func TestRouteRoundTrip(t *testing.T) {
	for _, r := range []Route{RootRoute(), GuideRoute("intro"), GuideRoute("a b")} {
		assert.Equal(t, r, ParseRoute(r.Path()), "route %v", r)
		assert.Equal(t, r, RouteFromPath(r.String()), "href %s", r)
	}
	assert.Equal(t, []string{"404"}, UnknownRoute().Path())
	assert.Equal(t, "/404", UnknownRoute().String())
	assert.Equal(t, "/", RootRoute().String())
	assert.Equal(t, "/guide/intro", GuideRoute("intro").String())
}

func TestResolvePage(t *testing.T) {
	assert.Equal(t, NotFoundPage(), ResolvePage(RootRoute(), nil))
	assert.Equal(t, GuidePage(gIntro, true), ResolvePage(RootRoute(), []guide.Guide{gIntro, gRouting}))
	assert.Equal(t, GuidePage(gRouting, false), ResolvePage(GuideRoute("routing"), catalog))
	assert.Equal(t, NotFoundPage(), ResolvePage(GuideRoute("missing"), []guide.Guide{{Slug: "x"}}))
	assert.Equal(t, NotFoundPage(), ResolvePage(GuideRoute("Intro"), catalog))
	assert.Equal(t, NotFoundPage(), ResolvePage(UnknownRoute(), catalog))
}

func TestPageHrefAndTitle(t *testing.T) {
	p := GuidePage(gRouting, false)
	assert.Equal(t, "/guide/routing", p.Href())
	assert.Equal(t, "Routing - Seed", p.Title(""))
	assert.Equal(t, "Routing - Docs", p.Title("Docs"))
	assert.Equal(t, "/404", NotFoundPage().Href())
	assert.Equal(t, "404 - Seed", NotFoundPage().Title(DefaultTitleSuffix))

	var zero Page
	assert.True(t, zero.IsNotFound())
}

func TestSearch(t *testing.T) {
	assert.Empty(t, Search(catalog, ""))

	a := guide.Guide{Slug: "a", LowercaseText: "hello world"}
	assert.Equal(t, []guide.Guide{a}, Search([]guide.Guide{a}, "WORLD"))

	abc := guide.Guide{Slug: "abc", LowercaseText: "abc"}
	xyz := guide.Guide{Slug: "xyz", LowercaseText: "xyz"}
	assert.Empty(t, Search([]guide.Guide{abc, xyz}, "q"))

	assert.Equal(t, []guide.Guide{gRouting, gViews}, Search(catalog, "bar"))
	assert.Equal(t, Search(catalog, "bar"), Search(catalog, "bar"))
	assert.Empty(t, Search(nil, "bar"))
}

func TestVisibilityToggle(t *testing.T) {
	v := Hidden
	v.Toggle()
	assert.Equal(t, Visible, v)
	v.Toggle()
	assert.Equal(t, Hidden, v)
	assert.True(t, Hidden.Toggled().IsVisible())
}

func TestDetectPrerendering(t *testing.T) {
	assert.True(t, DetectPrerendering("ReactSnap"))
	assert.False(t, DetectPrerendering("Mozilla/5.0 ReactSnap"))
	assert.False(t, DetectPrerendering(""))
}

func TestInit(t *testing.T) {
	m, msgs := Init(Flags{
		Route:          GuideRoute("routing"),
		Guides:         catalog,
		Config:         prefs.Config{Mode: prefs.Dark},
		InPrerendering: true,
	})
	assert.Equal(t, GuidePage(gRouting, false), m.Page)
	assert.Equal(t, Hidden, m.GuideListVisibility)
	assert.Equal(t, Hidden, m.MenuVisibility)
	assert.Equal(t, "", m.SearchQuery)
	assert.Empty(t, m.MatchedGuides)
	assert.Equal(t, prefs.Dark, m.Mode)
	assert.True(t, m.InPrerendering)
	assert.Equal(t, DefaultTitleSuffix, m.TitleSuffix)
	assert.Equal(t, []Msg{RouteChanged{Route: GuideRoute("routing")}, UpdatePageTitle{}}, msgs)
}

func TestUpdateRouteChanged(t *testing.T) {
	m, _ := Init(Flags{Route: UnknownRoute(), Guides: catalog})

	var orders Orders
	Update(RouteChanged{Route: GuideRoute("intro")}, m, &orders)

	assert.Equal(t, GuidePage(gIntro, false), m.Page)
	assert.Equal(t, []Msg{ScrollToTop{}, UpdatePageTitle{}}, orders.Messages())
	assert.Empty(t, orders.Effects())
}

func TestUpdateRootReplacesURL(t *testing.T) {
	m, _ := Init(Flags{Route: UnknownRoute(), Guides: catalog})

	var orders Orders
	Update(RouteChanged{Route: RootRoute()}, m, &orders)

	assert.Equal(t, GuidePage(gIntro, true), m.Page)
	assert.Equal(t, []Effect{ReplaceURL{Path: "/guide/intro"}}, orders.Effects())
}

func TestUpdateRootEmptyCatalog(t *testing.T) {
	m, _ := Init(Flags{Route: RootRoute()})

	var orders Orders
	Update(RouteChanged{Route: RootRoute()}, m, &orders)

	assert.True(t, m.Page.IsNotFound())
	assert.Empty(t, orders.Effects())
}

func TestUpdateTitleAndScroll(t *testing.T) {
	m, _ := Init(Flags{Route: GuideRoute("views"), Guides: catalog})

	var orders Orders
	Update(UpdatePageTitle{}, m, &orders)
	Update(ScrollToTop{}, m, &orders)
	assert.Equal(t, []Effect{SetTitle{Title: "Views - Seed"}, ScrollTo{Top: 0}}, orders.Effects())
	assert.Empty(t, orders.Messages())

	m.Page = NotFoundPage()
	orders = Orders{}
	Update(UpdatePageTitle{}, m, &orders)
	assert.Equal(t, []Effect{SetTitle{Title: "404 - Seed"}}, orders.Effects())
}

func TestUpdateVisibilityIsOrthogonal(t *testing.T) {
	m, _ := Init(Flags{Guides: catalog})
	var orders Orders

	Update(ToggleGuideList{}, m, &orders)
	assert.Equal(t, Visible, m.GuideListVisibility)
	assert.Equal(t, Hidden, m.MenuVisibility)

	Update(ToggleMenu{}, m, &orders)
	assert.Equal(t, Visible, m.MenuVisibility)

	Update(HideGuideList{}, m, &orders)
	assert.Equal(t, Hidden, m.GuideListVisibility)
	assert.Equal(t, Visible, m.MenuVisibility)

	Update(HideMenu{}, m, &orders)
	Update(HideMenu{}, m, &orders)
	assert.Equal(t, Hidden, m.MenuVisibility)

	Update(ToggleGuideList{}, m, &orders)
	Update(ToggleGuideList{}, m, &orders)
	assert.Equal(t, Hidden, m.GuideListVisibility)
	assert.Empty(t, orders.Messages())
	assert.Empty(t, orders.Effects())
}

func TestUpdateSearch(t *testing.T) {
	m, _ := Init(Flags{Guides: catalog})
	var orders Orders

	Update(SearchQueryChanged{Query: "BAR"}, m, &orders)
	assert.Equal(t, "BAR", m.SearchQuery)
	assert.Equal(t, Search(catalog, "BAR"), m.MatchedGuides)

	Update(SearchQueryChanged{Query: ""}, m, &orders)
	assert.Equal(t, "", m.SearchQuery)
	assert.Empty(t, m.MatchedGuides)
}

func TestUpdateToggleMode(t *testing.T) {
	m, _ := Init(Flags{Guides: catalog})

	var orders Orders
	Update(ToggleMode{}, m, &orders)
	assert.Equal(t, prefs.Dark, m.Mode)
	assert.Equal(t, []Effect{PersistConfig{Config: prefs.Config{Mode: prefs.Dark}}}, orders.Effects())

	Update(ToggleMode{}, m, &orders)
	assert.Equal(t, prefs.Light, m.Mode)
}

func TestProgramRouteChangedOrder(t *testing.T) {
	m, _ := Init(Flags{Route: UnknownRoute(), Guides: catalog})
	rec := &Recorder{}
	p := NewProgram(m, rec)

	require.NoError(t, p.Send(context.Background(), RouteChanged{Route: GuideRoute("intro")}))

	assert.Equal(t, GuidePage(gIntro, false), p.Model().Page)
	assert.Equal(t, []Effect{ScrollTo{Top: 0}, SetTitle{Title: "Introduction - Seed"}}, rec.Effects())
}

func TestProgramFollowUpsGoToQueueTail(t *testing.T) {
	m, _ := Init(Flags{Route: UnknownRoute(), Guides: catalog})
	var seen []string
	p := NewProgram(m, RunnerFunc(func(_ context.Context, eff Effect) error {
		switch e := eff.(type) {
		case SetTitle:
			seen = append(seen, "title:"+e.Title)
		case ScrollTo:
			seen = append(seen, "scroll")
		case ReplaceURL:
			seen = append(seen, "replace:"+e.Path)
		}
		return nil
	}))

	// The explicit UpdatePageTitle was queued before RouteChanged's
	// follow-ups, so it runs first and already sees the new page.
	err := p.Send(context.Background(), RouteChanged{Route: RootRoute()}, UpdatePageTitle{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"replace:/guide/intro",
		"title:Introduction - Seed",
		"scroll",
		"title:Introduction - Seed",
	}, seen)
}

func TestProgramInitMessages(t *testing.T) {
	m, msgs := Init(Flags{Route: RootRoute(), Guides: catalog})
	rec := &Recorder{}
	require.NoError(t, NewProgram(m, rec).Send(context.Background(), msgs...))

	url, ok := rec.ReplacedURL()
	require.True(t, ok)
	assert.Equal(t, "/guide/intro", url)
	title, ok := rec.Title()
	require.True(t, ok)
	assert.Equal(t, "Introduction - Seed", title)
}

func TestProgramPersistsMode(t *testing.T) {
	ctx := context.Background()
	kv := prefs.NewMemoryKV()
	store := prefs.NewStore(kv, nil)

	m, _ := Init(Flags{Guides: catalog, Config: store.Load(ctx)})
	p := NewProgram(m, PersistTo(store))

	require.NoError(t, p.Send(ctx, ToggleMode{}))
	assert.Equal(t, prefs.Config{Mode: prefs.Dark}, store.Load(ctx))
	require.NoError(t, p.Send(ctx, ToggleMode{}))
	assert.Equal(t, prefs.Config{Mode: prefs.Light}, store.Load(ctx))
}

func TestProgramSurfacesPersistFailure(t *testing.T) {
	boom := errors.New("store unavailable")
	m, _ := Init(Flags{Guides: catalog})
	p := NewProgram(m, RunnerFunc(func(_ context.Context, eff Effect) error {
		if _, ok := eff.(PersistConfig); ok {
			return boom
		}
		return nil
	}))

	err := p.Send(context.Background(), ToggleMode{}, ToggleMenu{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	// The queue is still drained and the in-memory toggle stands.
	assert.Equal(t, prefs.Dark, p.Model().Mode)
	assert.Equal(t, Visible, p.Model().MenuVisibility)
}

func TestProgramIgnoresOtherEffectFailures(t *testing.T) {
	m, _ := Init(Flags{Guides: catalog})
	p := NewProgram(m, RunnerFunc(func(context.Context, Effect) error {
		return errors.New("no window")
	}))

	assert.NoError(t, p.Send(context.Background(), RouteChanged{Route: GuideRoute("views")}))
	assert.Equal(t, GuidePage(gViews, false), p.Model().Page)
}

func TestRecorderForwards(t *testing.T) {
	var forwarded []Effect
	rec := &Recorder{Next: RunnerFunc(func(_ context.Context, eff Effect) error {
		forwarded = append(forwarded, eff)
		return nil
	})}
	require.NoError(t, rec.Run(context.Background(), ScrollTo{}))
	assert.Equal(t, []Effect{ScrollTo{}}, forwarded)
	rec.Reset()
	assert.Empty(t, rec.Effects())
	_, ok := rec.Title()
	assert.False(t, ok)
}

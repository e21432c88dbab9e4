package browser

import "github.com/eringen/guidebook/prefs"

// Orders collects what a single Update produced: follow-up messages for the
// tail of the queue and effects to run right after the update.
type Orders struct {
	msgs    []Msg
	effects []Effect
}

// Send enqueues a follow-up message.
func (o *Orders) Send(msg Msg) *Orders {
	o.msgs = append(o.msgs, msg)
	return o
}

// Perform schedules an effect.
func (o *Orders) Perform(eff Effect) *Orders {
	o.effects = append(o.effects, eff)
	return o
}

func (o *Orders) Messages() []Msg { return o.msgs }

func (o *Orders) Effects() []Effect { return o.effects }

// Update applies msg to m. It never blocks and never fails; anything
// touching the outside world is returned through orders.
func Update(msg Msg, m *Model, orders *Orders) {
	switch msg := msg.(type) {
	case RouteChanged:
		m.Page = ResolvePage(msg.Route, m.Guides)
		if msg.Route.Kind == RouteRoot && m.Page.Kind == PageGuide {
			orders.Perform(ReplaceURL{Path: m.Page.Href()})
		}
		orders.Send(ScrollToTop{})
		orders.Send(UpdatePageTitle{})
	case UpdatePageTitle:
		orders.Perform(SetTitle{Title: m.Page.Title(m.TitleSuffix)})
	case ScrollToTop:
		orders.Perform(ScrollTo{Top: 0})
	case ToggleGuideList:
		m.GuideListVisibility.Toggle()
	case HideGuideList:
		m.GuideListVisibility = Hidden
	case ToggleMenu:
		m.MenuVisibility.Toggle()
	case HideMenu:
		m.MenuVisibility = Hidden
	case SearchQueryChanged:
		m.MatchedGuides = Search(m.Guides, msg.Query)
		m.SearchQuery = msg.Query
	case ToggleMode:
		m.Mode.Toggle()
		orders.Perform(PersistConfig{Config: prefs.Config{Mode: m.Mode}})
	}
}

package browser

// Msg is a request for a state transition. The set of messages is closed.
type Msg interface {
	isMsg()
}

type (
	RouteChanged       struct{ Route Route }
	UpdatePageTitle    struct{}
	ScrollToTop        struct{}
	ToggleGuideList    struct{}
	HideGuideList      struct{}
	ToggleMenu         struct{}
	HideMenu           struct{}
	SearchQueryChanged struct{ Query string }
	ToggleMode         struct{}
)

func (RouteChanged) isMsg()       {}
func (UpdatePageTitle) isMsg()    {}
func (ScrollToTop) isMsg()        {}
func (ToggleGuideList) isMsg()    {}
func (HideGuideList) isMsg()      {}
func (ToggleMenu) isMsg()         {}
func (HideMenu) isMsg()           {}
func (SearchQueryChanged) isMsg() {}
func (ToggleMode) isMsg()         {}

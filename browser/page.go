package browser

import (
	"fmt"

	"github.com/eringen/guidebook/guide"
)

// PageKind discriminates renderable pages. The zero value is PageNotFound.
type PageKind int

const (
	PageNotFound PageKind = iota
	PageGuide
)

// Page is the renderable state derived from a Route and the catalog.
// ShowIntro is set only when the guide was reached through the root route.
type Page struct {
	Kind      PageKind
	Guide     guide.Guide
	ShowIntro bool
}

func NotFoundPage() Page { return Page{Kind: PageNotFound} }

func GuidePage(g guide.Guide, showIntro bool) Page {
	return Page{Kind: PageGuide, Guide: g, ShowIntro: showIntro}
}

// ResolvePage is pure. Replacing the address bar after a root resolution
// is left to the caller (see Update).
func ResolvePage(route Route, guides []guide.Guide) Page {
	switch route.Kind {
	case RouteRoot:
		if len(guides) == 0 {
			return NotFoundPage()
		}
		return GuidePage(guides[0], true)
	case RouteGuide:
		for _, g := range guides {
			if g.Slug == route.Slug {
				return GuidePage(g, false)
			}
		}
		return NotFoundPage()
	default:
		return NotFoundPage()
	}
}

// Href returns the canonical URL of the page.
func (p Page) Href() string {
	if p.Kind == PageGuide {
		return GuideRoute(p.Guide.Slug).String()
	}
	return UnknownRoute().String()
}

// Title returns the document title, e.g. "Routing - Seed" or "404 - Seed".
func (p Page) Title(suffix string) string {
	if suffix == "" {
		suffix = DefaultTitleSuffix
	}
	if p.Kind == PageGuide {
		return fmt.Sprintf("%s - %s", p.Guide.MenuTitle, suffix)
	}
	return fmt.Sprintf("404 - %s", suffix)
}

func (p Page) IsNotFound() bool { return p.Kind == PageNotFound }

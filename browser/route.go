// Package browser is the application state machine of the guide browser:
// route and page resolution, guide search, and the message dispatch loop
// that owns the Model.
package browser

import (
	"net/url"
	"strings"
)

const guideSegment = "guide"

// RouteKind discriminates the closed set of logical routes.
type RouteKind int

const (
	RouteRoot RouteKind = iota
	RouteGuide
	RouteUnknown
)

func (k RouteKind) String() string {
	switch k {
	case RouteRoot:
		return "root"
	case RouteGuide:
		return "guide"
	default:
		return "unknown"
	}
}

// Route is the logical classification of a navigation path. Slug is only
// meaningful when Kind is RouteGuide.
type Route struct {
	Kind RouteKind
	Slug string
}

func RootRoute() Route { return Route{Kind: RouteRoot} }

func GuideRoute(slug string) Route { return Route{Kind: RouteGuide, Slug: slug} }

func UnknownRoute() Route { return Route{Kind: RouteUnknown} }

// ParseRoute maps path segments to a Route. It is total: every input
// yields exactly one of the three variants.
func ParseRoute(segments []string) Route {
	switch {
	case len(segments) == 0:
		return RootRoute()
	case len(segments) == 2 && segments[0] == guideSegment:
		return GuideRoute(segments[1])
	default:
		return UnknownRoute()
	}
}

// RouteFromPath parses a URL path such as "/guide/intro".
func RouteFromPath(p string) Route {
	return ParseRoute(PathSegments(p))
}

// PathSegments splits a URL path into its non-empty, unescaped segments.
// A segment that fails to unescape is kept as-is.
func PathSegments(p string) []string {
	parts := strings.Split(p, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if s, err := url.PathUnescape(part); err == nil {
			part = s
		}
		segments = append(segments, part)
	}
	return segments
}

// Path is the inverse of ParseRoute. Unknown maps to ["404"], which parses
// back to Unknown only because a single segment is never a guide route.
func (r Route) Path() []string {
	switch r.Kind {
	case RouteRoot:
		return []string{}
	case RouteGuide:
		return []string{guideSegment, r.Slug}
	default:
		return []string{"404"}
	}
}

// String returns the canonical href of the route.
func (r Route) String() string {
	path := r.Path()
	escaped := make([]string, len(path))
	for i, s := range path {
		escaped[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(escaped, "/")
}

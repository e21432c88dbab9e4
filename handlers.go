package guidebook

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/guidebook/browser"
	"github.com/eringen/guidebook/markdown"
	"github.com/eringen/guidebook/views"
)

// handlePage renders any path as a full document: the root, a guide, or
// the 404 page. A q parameter pre-fills the search. Segments are unescaped
// once, by the route parser.
func (a *App) handlePage(c echo.Context) error {
	route := browser.RouteFromPath(c.Request().URL.EscapedPath())
	return a.renderRoute(c, route)
}

func (a *App) renderRoute(c echo.Context, route browser.Route) error {
	ctx := c.Request().Context()
	s, err := a.newSession(ctx, VisitorID(c), route, c.Request().UserAgent())
	if err != nil {
		return err
	}
	if q := c.QueryParam("q"); q != "" {
		if _, err := s.send(ctx, browser.SearchQueryChanged{Query: q}); err != nil {
			return err
		}
	}

	m := s.model()
	opts := views.PageOptions{CSRFToken: CsrfToken(c)}
	opts.Title, _ = s.recorder.Title()
	opts.ReplaceURL, _ = s.recorder.ReplacedURL()

	status := http.StatusOK
	if m.Page.IsNotFound() {
		status = http.StatusNotFound
	}
	return RenderStatus(c, status, a.Views.Document(a.siteInfo(), m, opts))
}

// handleSearch returns the suggestion list fragment for q.
func (a *App) handleSearch(c echo.Context) error {
	if !a.searchLimiter.Allow(c.RealIP()) {
		c.Response().Header().Set("Retry-After", "1")
		return c.String(http.StatusTooManyRequests, "Too many searches, slow down.")
	}
	q := c.QueryParam("q")
	matched := browser.Search(a.Catalog.Guides(), q)
	return Render(c, a.Views.SearchResults(q, matched))
}

// handleMode flips the visitor's display mode and sends them back where
// they came from.
func (a *App) handleMode(c echo.Context) error {
	ctx := c.Request().Context()
	back := safeReferer(c.Request().Referer(), c.Request().Host)
	s, err := a.newSession(ctx, VisitorID(c), browser.RouteFromPath(back), c.Request().UserAgent())
	if err != nil {
		return err
	}
	if _, err := s.send(ctx, browser.ToggleMode{}); err != nil {
		a.Logger.Error("persist preferences",
			"visitor", s.visitor,
			"mode", s.model().Mode.String(),
			"error", err,
		)
		return echo.NewHTTPError(http.StatusInternalServerError, "could not save preferences").SetInternal(err)
	}
	return c.Redirect(http.StatusSeeOther, back)
}

// safeReferer returns the path of ref when it points at this host, and
// "/" otherwise.
func safeReferer(ref, host string) string {
	if ref == "" {
		return "/"
	}
	u, err := url.Parse(ref)
	if err != nil || (u.Host != "" && u.Host != host) {
		return "/"
	}
	p := u.EscapedPath()
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return "/"
	}
	return p
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Catalog.Guides())
}

func (a *App) handleHighlightCSS(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/css; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	return markdown.WriteHighlightCSS(c.Response())
}

func (a *App) handleRobots(c echo.Context) error {
	file := filepath.Join(a.staticDir, "robots.txt")
	if _, err := os.Stat(file); err == nil {
		return c.File(file)
	}
	body := "User-agent: *\nAllow: /\nSitemap: " + BuildURL(a.Config.URL, "sitemap.xml") + "\n"
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		if rerr := a.renderRoute(c, browser.UnknownRoute()); rerr != nil {
			a.Logger.Error("render not found", "error", rerr)
		}
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error", "uri", c.Request().RequestURI, "error", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.siteInfo()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

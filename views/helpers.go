package views

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/guidebook/browser"
	"github.com/eringen/guidebook/guide"
	"github.com/eringen/guidebook/prefs"
)

// buildURL joins path segments onto a base URL.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// GuideHref returns the canonical link of a guide.
func GuideHref(g guide.Guide) string {
	return browser.GuideRoute(g.Slug).String()
}

// ModeClass is the class set on <html> for the display mode.
func ModeClass(m prefs.Mode) string {
	if m == prefs.Dark {
		return "dark"
	}
	return "light"
}

func hiddenClass(v browser.Visibility) string {
	if v.IsVisible() {
		return ""
	}
	return "hidden"
}

// WebsiteJsonLD returns a Schema.org WebSite block.
func WebsiteJsonLD(site SiteInfo) string {
	return jsonLD(map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        site.Name,
		"url":         buildURL(site.URL),
		"description": site.Description,
	})
}

// TechArticleJsonLD returns a Schema.org TechArticle block for a guide.
func TechArticleJsonLD(site SiteInfo, g guide.Guide) string {
	href := buildURL(site.URL, browser.GuideRoute(g.Slug).Path()...)
	return jsonLD(map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "TechArticle",
		"headline": g.MenuTitle,
		"url":      href,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   href,
		},
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  site.Name,
		},
	})
}

func jsonLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// htmlWriter writes markup and remembers the first error.
type htmlWriter struct {
	ctx context.Context
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(parts ...string) {
	for _, s := range parts {
		if h.err != nil {
			return
		}
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) component(c templ.Component) {
	if h.err != nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

func esc(s string) string {
	return templ.EscapeString(s)
}

func attrIf(cond bool, attr string) string {
	if cond {
		return " " + attr
	}
	return ""
}

func joinClass(classes ...string) string {
	return strings.TrimSpace(strings.Join(classes, " "))
}

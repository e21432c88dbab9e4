package guidebook

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/guidebook/browser"
	"github.com/eringen/guidebook/guide"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) renderSitemap(c echo.Context, guides []guide.Guide) error {
	base := a.Config.URL
	lastMod := ""
	if t := a.Catalog.LoadedAt(); !t.IsZero() {
		lastMod = t.UTC().Format("2006-01-02")
	}
	urls := []sitemapURL{
		{Loc: BuildURL(base)},
	}
	for _, g := range guides {
		urls = append(urls, sitemapURL{
			Loc:     BuildURL(base, browser.GuideRoute(g.Slug).Path()...),
			LastMod: lastMod,
		})
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

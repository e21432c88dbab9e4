package guidebook

import (
	"encoding/xml"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"github.com/eringen/guidebook/browser"
	"github.com/eringen/guidebook/guide"
	"github.com/eringen/guidebook/markdown"
)

const feedSummaryLen = 200

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderFeed(c, a.Catalog.Guides())
}

// renderFeed lists the catalog as RSS in catalog order. Guides carry no
// dates of their own; the catalog load time stands in.
func (a *App) renderFeed(c echo.Context, guides []guide.Guide) error {
	base := a.Config.URL
	pubDate := ""
	if t := a.Catalog.LoadedAt(); !t.IsZero() {
		pubDate = t.UTC().Format(time.RFC1123Z)
	}
	items := make([]rssItem, 0, len(guides))
	for _, g := range guides {
		link := BuildURL(base, browser.GuideRoute(g.Slug).Path()...)
		items = append(items, rssItem{
			Title:       g.MenuTitle,
			Link:        link,
			Description: summarize(markdown.StripTags(g.HTML), feedSummaryLen),
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        BuildURL(base),
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(feed)
}

// summarize joins text onto one line and cuts it at max runes on a word
// boundary.
func summarize(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)[:max]
	cut := string(runes)
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}

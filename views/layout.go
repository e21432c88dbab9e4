package views

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/guidebook/browser"
	"github.com/eringen/guidebook/guide"
	"github.com/eringen/guidebook/markdown"
	"github.com/eringen/guidebook/prefs"
)

// Document renders the full HTML document for the model.
func Document(site SiteInfo, m *browser.Model, opts PageOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		title := opts.Title
		if title == "" {
			title = m.Page.Title(m.TitleSuffix)
		}

		h.raw(`<!DOCTYPE html><html lang="en" class="`, ModeClass(m.Mode), `"><head>`)
		h.raw(`<meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.raw(`<title>`)
		h.text(title)
		h.raw(`</title>`)
		if site.Description != "" {
			h.raw(`<meta name="description" content="`, esc(site.Description), `">`)
		}
		h.raw(`<link rel="canonical" href="`, esc(buildURL(site.URL, browser.PathSegments(m.Page.Href())...)), `">`)
		h.raw(`<link rel="stylesheet" href="/public/guidebook.css"><link rel="stylesheet" href="/public/highlight.css">`)
		h.raw(`<link rel="alternate" type="application/rss+xml" title="`, esc(site.Name), `" href="/feed.xml">`)
		h.raw(`<script type="application/ld+json">`)
		if m.Page.Kind == browser.PageGuide {
			h.raw(TechArticleJsonLD(site, m.Page.Guide))
		} else {
			h.raw(WebsiteJsonLD(site))
		}
		h.raw(`</script></head>`)

		h.raw(`<body`)
		if opts.ReplaceURL != "" {
			h.raw(` data-replace-url="`, esc(opts.ReplaceURL), `"`)
		}
		h.raw(` data-path="`, esc(m.Page.Href()), `">`)
		h.raw(`<div id="header">`)
		h.component(Header(site, m, opts))
		h.raw(`</div><main id="main">`)
		h.component(Main(site, m))
		h.raw(`</main>`)
		if !m.InPrerendering {
			h.raw(`<script src="/public/guidebook.js" defer></script>`)
		}
		h.raw(`</body></html>`)
		return h.err
	})
}

// Header renders the navigation chrome: menu, guide list, search and the
// mode switch.
func Header(site SiteInfo, m *browser.Model, opts PageOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		h.raw(`<header class="site-header">`)
		h.raw(`<a class="brand" href="/">`)
		h.text(site.Name)
		h.raw(`</a><span class="version">v`)
		h.text(site.Version)
		h.raw(`<small> `)
		h.text(site.VersionDate)
		h.raw(`</small></span>`)

		h.raw(`<button type="button" class="toggle" data-msg="toggle_guide_list" aria-expanded="`,
			strconv.FormatBool(m.GuideListVisibility.IsVisible()), `">Guides</button>`)
		h.raw(`<button type="button" class="toggle" data-msg="toggle_menu" aria-expanded="`,
			strconv.FormatBool(m.MenuVisibility.IsVisible()), `">Menu</button>`)

		h.raw(`<nav id="menu" class="`, joinClass("menu", hiddenClass(m.MenuVisibility)), `">`)
		h.raw(`<a href="/" data-msg="hide_menu">Home</a>`)
		h.raw(`<form method="post" action="/mode" class="mode-form">`)
		h.raw(`<input type="hidden" name="_csrf" value="`, esc(opts.CSRFToken), `">`)
		h.raw(`<button type="submit" data-msg="toggle_mode">`)
		if m.Mode == prefs.Light {
			h.raw(`Dark mode`)
		} else {
			h.raw(`Light mode`)
		}
		h.raw(`</button></form></nav>`)

		h.raw(`<nav id="guide-list" class="`, joinClass("guide-list", hiddenClass(m.GuideListVisibility)), `"><ul>`)
		for _, g := range m.Guides {
			active := m.Page.Kind == browser.PageGuide && m.Page.Guide.Slug == g.Slug
			h.raw(`<li><a href="`, esc(GuideHref(g)), `" data-msg="hide_guide_list"`, attrIf(active, `aria-current="page"`), `>`)
			h.text(g.MenuTitle)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul></nav>`)

		if !m.InPrerendering {
			h.raw(`<form class="search" method="get" action="`, esc(m.Page.Href()), `" role="search">`)
			h.raw(`<input type="search" name="q" placeholder="Search guides" autocomplete="off" data-msg="search" value="`, esc(m.SearchQuery), `">`)
			h.raw(`</form><div id="search-results">`)
			h.component(SearchResults(m.SearchQuery, m.MatchedGuides))
			h.raw(`</div>`)
		}
		h.raw(`</header>`)
		return h.err
	})
}

// Main renders the page body.
func Main(site SiteInfo, m *browser.Model) templ.Component {
	if m.Page.Kind != browser.PageGuide {
		return NotFound()
	}
	g := m.Page.Guide
	showIntro := m.Page.ShowIntro
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		if showIntro {
			h.raw(`<section class="intro"><h1>`)
			h.text(site.Name)
			h.raw(`</h1>`)
			if site.Description != "" {
				h.raw(`<p>`)
				h.text(site.Description)
				h.raw(`</p>`)
			}
			h.raw(`</section>`)
		}
		h.raw(`<article class="guide" data-slug="`, esc(g.Slug), `">`)
		h.component(markdown.Markdown(g.HTML))
		h.raw(`</article>`)
		return h.err
	})
}

// SearchResults renders the suggestion list. An empty query renders
// nothing; a query without matches says so.
func SearchResults(query string, matched []guide.Guide) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		if query == "" {
			return nil
		}
		if len(matched) == 0 {
			h.raw(`<p class="no-results">No guides match `)
			h.raw(`"`, esc(query), `"</p>`)
			return h.err
		}
		h.raw(`<ul class="results">`)
		for _, g := range matched {
			h.raw(`<li><a href="`, esc(GuideHref(g)), `">`)
			h.text(g.MenuTitle)
			h.raw(`</a></li>`)
		}
		h.raw(`</ul>`)
		return h.err
	})
}

// NotFound renders the body of the 404 page.
func NotFound() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section class="not-found"><h1>404</h1><p>This guide does not exist.</p><a href="/">Back to the first guide</a></section>`)
		return err
	})
}

// ServerError renders a standalone 500 document.
func ServerError(site SiteInfo) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{ctx: ctx, w: w}
		h.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>500 - `)
		h.text(site.Name)
		h.raw(`</title><link rel="stylesheet" href="/public/guidebook.css"></head><body><main id="main"><section class="server-error"><h1>500</h1><p>Something went wrong.</p><a href="/">Home</a></section></main></body></html>`)
		return h.err
	})
}

package guide

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/eringen/guidebook/markdown"
)

// DefaultPattern matches every markdown file below the catalog root.
const DefaultPattern = "**/*.md"

type frontMatter struct {
	Slug      string `yaml:"slug"`
	MenuTitle string `yaml:"menu_title"`
	Order     int    `yaml:"order"`
}

// Load builds the catalog from every file in fsys matching pattern. Guides
// are ordered by their front matter order, then by path.
func Load(fsys fs.FS, pattern string) ([]Guide, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("guide: glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	guides := make([]Guide, 0, len(matches))
	seen := make(map[string]string, len(matches))
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("guide: read %s: %w", name, err)
		}
		g, err := Parse(name, data)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[g.Slug]; ok {
			return nil, fmt.Errorf("%w: %q in %s and %s", ErrDuplicateSlug, g.Slug, prev, name)
		}
		seen[g.Slug] = name
		guides = append(guides, g)
	}
	sort.SliceStable(guides, func(i, j int) bool {
		return guides[i].Order < guides[j].Order
	})
	return guides, nil
}

// Parse builds one guide from a markdown file with optional YAML front
// matter. The slug defaults to the slugified file stem and the menu title
// to the first level-one heading.
func Parse(name string, data []byte) (Guide, error) {
	var fm frontMatter
	body, meta := splitFrontMatter(data)
	if meta != nil {
		if err := yaml.Unmarshal(meta, &fm); err != nil {
			return Guide{}, fmt.Errorf("guide: front matter of %s: %w", name, err)
		}
	}

	stem := strings.TrimSuffix(path.Base(name), path.Ext(name))
	slug := strings.TrimSpace(fm.Slug)
	if slug == "" {
		slug = Slugify(stem)
	}
	if slug == "" || strings.Contains(slug, "/") {
		return Guide{}, fmt.Errorf("%w: %s", ErrEmptySlug, name)
	}

	title := strings.TrimSpace(fm.MenuTitle)
	if title == "" {
		title = firstHeading(body)
	}
	if title == "" {
		title = stem
	}

	html, err := markdown.Render(string(body))
	if err != nil {
		return Guide{}, fmt.Errorf("guide: render %s: %w", name, err)
	}

	return Guide{
		Slug:          slug,
		MenuTitle:     title,
		LowercaseText: strings.ToLower(title + "\n" + markdown.PlainText(string(body))),
		HTML:          html,
		Order:         fm.Order,
		Source:        name,
	}, nil
}

var fence = []byte("---")

func splitFrontMatter(data []byte) (body, meta []byte) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if !bytes.HasPrefix(data, fence) {
		return data, nil
	}
	rest := data[len(fence):]
	nl := bytes.IndexByte(rest, '\n')
	if nl < 0 || len(bytes.TrimSpace(rest[:nl])) != 0 {
		return data, nil
	}
	rest = rest[nl+1:]
	for off := 0; off < len(rest); {
		end := bytes.IndexByte(rest[off:], '\n')
		line := rest[off:]
		next := len(rest)
		if end >= 0 {
			line = rest[off : off+end]
			next = off + end + 1
		}
		if bytes.Equal(bytes.TrimRight(line, "\r "), fence) {
			return rest[next:], rest[:off]
		}
		off = next
	}
	return data, nil
}

func firstHeading(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:])
		}
	}
	return ""
}

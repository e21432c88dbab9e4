// Package guide loads the guide catalog: an ordered, immutable list of
// markdown documents addressed by slug.
package guide

import (
	"errors"
	"strings"
)

var (
	ErrEmptySlug     = errors.New("guide: empty slug")
	ErrDuplicateSlug = errors.New("guide: duplicate slug")
)

// Guide is a single document of the catalog. It is a small comparable value
// and is never mutated after load; two guides are the same guide when their
// slugs are equal.
type Guide struct {
	Slug          string
	MenuTitle     string
	LowercaseText string // searchable text, already lowercased
	HTML          string // sanitized body
	Order         int
	Source        string // path inside the catalog filesystem
}

// Find returns the first guide with the given slug.
func Find(guides []Guide, slug string) (Guide, bool) {
	for _, g := range guides {
		if g.Slug == slug {
			return g, true
		}
	}
	return Guide{}, false
}

// Slugify converts a title or file name to a URL-safe slug.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

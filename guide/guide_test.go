package guide

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrdersByFrontMatterThenPath(t *testing.T) {
	fsys := fstest.MapFS{
		"b-routing.md": {Data: []byte("---\nslug: routing\nmenu_title: Routing\norder: 2\n---\n# Routing\n\nRoutes map **paths** to pages.\n")},
		"a-intro.md":   {Data: []byte("---\norder: 1\n---\n# Introduction\n\nHello World.\n")},
		"nested/zz.md": {Data: []byte("# Appendix\n\nExtra.\n")},
		"notes.txt":    {Data: []byte("ignored")},
	}

	guides, err := Load(fsys, "")
	require.NoError(t, err)
	require.Len(t, guides, 3)

	assert.Equal(t, "zz", guides[0].Slug, "order 0 sorts first")
	assert.Equal(t, "Appendix", guides[0].MenuTitle)
	assert.Equal(t, "a-intro", guides[1].Slug)
	assert.Equal(t, "Introduction", guides[1].MenuTitle)
	assert.Equal(t, "routing", guides[2].Slug)
	assert.Equal(t, "Routing", guides[2].MenuTitle)

	assert.Contains(t, guides[2].LowercaseText, "routes map paths to pages.")
	assert.NotContains(t, guides[2].LowercaseText, "**")
	assert.Contains(t, guides[2].HTML, "<strong>paths</strong>")
	assert.Equal(t, "b-routing.md", guides[2].Source)
}

func TestLoadPattern(t *testing.T) {
	fsys := fstest.MapFS{
		"guides/one.md": {Data: []byte("# One")},
		"drafts/two.md": {Data: []byte("# Two")},
	}
	guides, err := Load(fsys, "guides/*.md")
	require.NoError(t, err)
	require.Len(t, guides, 1)
	assert.Equal(t, "one", guides[0].Slug)
}

func TestLoadDuplicateSlug(t *testing.T) {
	fsys := fstest.MapFS{
		"a.md": {Data: []byte("---\nslug: same\n---\n# A")},
		"b.md": {Data: []byte("---\nslug: same\n---\n# B")},
	}
	_, err := Load(fsys, "")
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestLoadEmpty(t *testing.T) {
	guides, err := Load(fstest.MapFS{}, "")
	require.NoError(t, err)
	assert.Empty(t, guides)
}

func TestParseBadFrontMatter(t *testing.T) {
	_, err := Parse("x.md", []byte("---\nslug: [unclosed\n---\nbody"))
	assert.Error(t, err)
}

func TestParseSlugWithSlash(t *testing.T) {
	_, err := Parse("x.md", []byte("---\nslug: a/b\n---\nbody"))
	assert.ErrorIs(t, err, ErrEmptySlug)
}

func TestParseWithoutHeading(t *testing.T) {
	g, err := Parse("dir/plain-notes.md", []byte("Just text."))
	require.NoError(t, err)
	assert.Equal(t, "plain-notes", g.Slug)
	assert.Equal(t, "plain-notes", g.MenuTitle)
	assert.Equal(t, "plain-notes\njust text.", g.LowercaseText)
}

func TestParseSlugifiesFileStem(t *testing.T) {
	g, err := Parse("docs/Getting Started.md", []byte("# Getting started"))
	require.NoError(t, err)
	assert.Equal(t, "getting-started", g.Slug)

	g, err = Parse("x.md", []byte("---\nslug: Keep_As-Is\n---\nbody"))
	require.NoError(t, err)
	assert.Equal(t, "Keep_As-Is", g.Slug, "front matter slug is taken verbatim")
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"  Routing & Views!  ", "routing-views"},
		{"a--b__c", "a-b-c"},
		{"Ünïcode 2", "n-code-2"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in), tt.in)
	}
}

func TestSplitFrontMatter(t *testing.T) {
	body, meta := splitFrontMatter([]byte("---\nslug: x\n---\n# Body\n"))
	assert.Equal(t, "slug: x\n", string(meta))
	assert.Equal(t, "# Body\n", string(body))

	body, meta = splitFrontMatter([]byte("--- not a fence\n# Body"))
	assert.Nil(t, meta)
	assert.Equal(t, "--- not a fence\n# Body", string(body))

	body, meta = splitFrontMatter([]byte("---\nslug: x\nno closing fence"))
	assert.Nil(t, meta)
	assert.Equal(t, "---\nslug: x\nno closing fence", string(body))
}

func TestFind(t *testing.T) {
	guides := []Guide{{Slug: "a"}, {Slug: "b"}}
	g, ok := Find(guides, "b")
	assert.True(t, ok)
	assert.Equal(t, "b", g.Slug)
	_, ok = Find(guides, "c")
	assert.False(t, ok)
}

func TestWatchReportsChanges(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	go func() {
		done <- Watch(ctx, dir, logger, func() { changed <- struct{}{} })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.md"), []byte("# New"), 0o644))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop")
	}
}

package pathmap

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSegments(t *testing.T) {
	cases := map[string][]string{
		"a/b/c.md":       {"a", "b", "c.md"},
		"/a//b/./c.md":   {"a", "b", "c.md"},
		"../docs/x.md":   {"docs", "x.md"},
		"":               {},
		"/":              {},
		"./":             {},
		"single.md":      {"single.md"},
		"dir.md/page.md": {"dir.md", "page.md"},
	}
	for in, want := range cases {
		got := Segments(in)
		if len(want) == 0 {
			require.Empty(t, got, "input %q", in)
			continue
		}
		require.Equal(t, want, got, "input %q", in)
	}
}

func TestMapDestination(t *testing.T) {
	cases := []struct {
		source    string
		root      string
		skipFirst bool
		want      string
	}{
		{"a/b/c.md", "out", true, filepath.Join("out", "b", "c.html")},
		{"a/b/c.md", "out", false, filepath.Join("out", "a", "b", "c.html")},
		{"docs/index.md", "dist", true, filepath.Join("dist", "index.html")},
		{"./docs/../docs/index.md", "dist", true, filepath.Join("dist", "docs", "index.html")},
		{"readme.md", "dist", true, "dist"},
		{"", "dist", true, "dist"},
		{"notes.md/page.md", "out", false, filepath.Join("out", "notes.md", "page.html")},
		{"a/page.html", "out", true, filepath.Join("out", "page.html")},
		{"a/page.markdown", "out", true, filepath.Join("out", "page.markdown")},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, MapDestination(tc.source, tc.root, tc.skipFirst), "source %q skip=%v", tc.source, tc.skipFirst)
	}
}

func TestMapDestination_NoDoubleMapping(t *testing.T) {
	first := MapDestination("a/b/c.md", "out", false)
	again := MapDestination(first, "", false)
	require.Equal(t, first, again)
}

func TestSwapExtension_OnlyLastSegment(t *testing.T) {
	require.Equal(t, []string{"x.md", "y.html"}, SwapExtension([]string{"x.md", "y.md"}))
	require.Equal(t, []string{"x.md", "y"}, SwapExtension([]string{"x.md", "y"}))
	require.Equal(t, []string{".md"}, SwapExtension([]string{".md"}))
	require.Empty(t, SwapExtension(nil))
}

func TestRewriteLink(t *testing.T) {
	cases := map[string]string{
		"/docs/guide/setup.md":         "/guide/setup.html",
		"/docs/guide/setup.md#install": "/guide/setup.html#install",
		"/docs/guide/setup.md?x=1#top": "/guide/setup.html?x=1#top",
		"/docs/a.md.d/b.md":            "/a.md.d/b.html",
		"/setup.md":                    "/",
		"https://example.com/x.md":     "https://example.com/x.md",
		"../sibling.md":                "../sibling.md",
		"sibling.md":                   "sibling.md",
		"#fragment":                    "#fragment",
		"//cdn.example.com/docs/x.md":  "//cdn.example.com/docs/x.md",
		"/docs/image.png":              "/docs/image.png",
		"/docs/guide/":                 "/docs/guide/",
		"mailto:someone@example.com":   "mailto:someone@example.com",
		"/docs/page.html#section.md":   "/docs/page.html#section.md",
	}
	for in, want := range cases {
		require.Equal(t, want, RewriteLink(in), "link %q", in)
	}
}

func TestRewriteLinkAndDestinationAgree(t *testing.T) {
	link := RewriteLink("/docs/guide/setup.md")
	dest := MapDestination("docs/guide/setup.md", "/", true)
	require.Equal(t, filepath.FromSlash(link), dest)
}

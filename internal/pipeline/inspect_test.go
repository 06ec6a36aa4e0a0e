package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docdoc/internal/markdown"
	"git.home.luguber.info/inful/docdoc/internal/metadata"
)

func TestInspect_ReportsPlanWithoutWriting(t *testing.T) {
	th := workspace(t)
	writeDoc(t, "docs/guide/index.md", "---\ntitle: Hi\nextra: dropped\n---\n[setup](/docs/guide/setup.md) and [ext](https://example.com)\n")

	c, err := New(th)
	require.NoError(t, err)

	override, err := metadata.Parse([]byte("author: CLI\n"))
	require.NoError(t, err)
	opts := defaultOptions()
	opts.Overrides = []*metadata.Map{override}

	ins, err := c.Inspect(context.Background(), opts)
	require.NoError(t, err)

	require.Equal(t, filepath.Join("dist", "guide", "index.html"), ins.Destination)
	require.Equal(t, "test", ins.Theme)
	require.Equal(t, string(markdown.CommonMark), ins.Dialect)
	require.Equal(t, map[string]any{"title": "Hi", "author": "CLI"}, ins.Metadata.ToMap())
	require.Equal(t, []string{"extra"}, ins.Dropped)
	require.Len(t, ins.Links, 2)
	require.Equal(t, "/guide/setup.html", ins.Links[0].Rewritten)
	require.Equal(t, "https://example.com", ins.Links[1].Rewritten)
	require.NoDirExists(t, "dist")

	out, err := yaml.Marshal(ins)
	require.NoError(t, err)
	require.Contains(t, string(out), "metadata:\n    title: Hi\n    author: CLI\n")
}

package document

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/inful/mdfp"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/docdoc/internal/frontmatter"
	"git.home.luguber.info/inful/docdoc/internal/metadata"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_SplitsFrontmatterAndBody(t *testing.T) {
	path := writeFile(t, t.TempDir(), "docs/index.md", "---\ntitle: Hi\ntags: [a, b]\n---\n# Hello\n")

	doc, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, path, doc.Path)
	require.Equal(t, path, doc.Source())
	require.Equal(t, "# Hello\n", doc.Body)
	require.Equal(t, []string{"title", "tags"}, doc.Metadata.Keys())
}

func TestParse_NoFrontmatterYieldsEmptyMetadata(t *testing.T) {
	doc, err := Parse("a.md", []byte("# Just a body\n"))
	require.NoError(t, err)
	require.NotNil(t, doc.Metadata)
	require.Equal(t, 0, doc.Metadata.Len())
	require.Equal(t, "# Just a body\n", doc.Body)
}

func TestParse_UnterminatedFrontmatter(t *testing.T) {
	_, err := Parse("a.md", []byte("---\ntitle: x\n# body\n"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryFrontmatter))
	require.ErrorIs(t, err, frontmatter.ErrMissingClosingDelimiter)

	classified, ok := errors.AsClassified(err)
	require.True(t, ok)
	require.Equal(t, "a.md", classified.Context()["path"])
}

func TestParse_FrontmatterMustBeMapping(t *testing.T) {
	_, err := Parse("a.md", []byte("---\n- a\n- b\n---\nbody\n"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryMetadata))
	require.ErrorIs(t, err, metadata.ErrNotMapping)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.md"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryNotFound))
	require.True(t, stderrors.Is(err, ErrNotFound))
}

func TestLoad_Directory(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryValidation))
	require.True(t, stderrors.Is(err, ErrNotFile))
}

func TestWrite_CreatesParentDirectories(t *testing.T) {
	out := filepath.Join(t.TempDir(), "dist", "guide", "index.html")
	doc := &Document{Path: out, Metadata: metadata.New(), Body: "<p>hi</p>"}

	require.NoError(t, doc.Write())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, "<p>hi</p>", string(data))
}

func TestWrite_FailureIsFilesystemError(t *testing.T) {
	dir := t.TempDir()
	blocker := writeFile(t, dir, "blocker", "x")
	doc := &Document{Path: filepath.Join(blocker, "index.html"), Metadata: metadata.New()}

	err := doc.Write()
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
}

func TestFingerprint_StableAcrossBodyReplacement(t *testing.T) {
	doc, err := Parse("a.md", []byte("---\ntitle: Hi\n---\n# Hello\n"))
	require.NoError(t, err)

	before, err := doc.Fingerprint()
	require.NoError(t, err)
	require.NotEmpty(t, before)

	doc.Body = "<h1>Hello</h1>"
	after, err := doc.Fingerprint()
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestFingerprint_IgnoresExistingFingerprintField(t *testing.T) {
	plain, err := Parse("a.md", []byte("---\ntitle: Hi\n---\nbody\n"))
	require.NoError(t, err)
	stamped, err := Parse("a.md", []byte("---\ntitle: Hi\n"+mdfp.FingerprintField+": abc\n---\nbody\n"))
	require.NoError(t, err)

	a, err := plain.Fingerprint()
	require.NoError(t, err)
	b, err := stamped.Fingerprint()
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestFingerprint_ChangesWithBody(t *testing.T) {
	a, err := Parse("a.md", []byte("one\n"))
	require.NoError(t, err)
	b, err := Parse("a.md", []byte("two\n"))
	require.NoError(t, err)

	fa, _ := a.Fingerprint()
	fb, _ := b.Fingerprint()
	require.NotEqual(t, fa, fb)
}

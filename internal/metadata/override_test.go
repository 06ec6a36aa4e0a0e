package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
)

func TestParseOverride_Inline(t *testing.T) {
	m, err := ParseOverride("{title: Inline, tags: [a]}")
	require.NoError(t, err)
	require.Equal(t, []string{"title", "tags"}, m.Keys())
}

func TestParseOverride_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.yml")
	require.NoError(t, os.WriteFile(path, []byte("author: File\n"), 0o600))

	m, err := ParseOverride("@" + path)
	require.NoError(t, err)
	v, _ := m.Get("author")
	require.Equal(t, "File", v)
}

func TestParseOverride_MissingFileIsFilesystemError(t *testing.T) {
	_, err := ParseOverride("@" + filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseOverride_NotMappingIsMetadataError(t *testing.T) {
	_, err := ParseOverride("- just\n- a list\n")
	require.Error(t, err)
	require.True(t, errors.HasCategory(err, errors.CategoryMetadata))
	require.ErrorIs(t, err, ErrNotMapping)
}

package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type color string

const (
	colorRed  color = "red"
	colorBlue color = "blue"
)

func newColorNormalizer() *Normalizer[color] {
	return NewNormalizer("color", map[string]color{
		"red":  colorRed,
		"RED ": colorRed,
		"blue": colorBlue,
		"navy": colorBlue,
	}, colorRed)
}

func TestNormalize_KnownAndUnknown(t *testing.T) {
	n := newColorNormalizer()

	require.Equal(t, colorBlue, n.Normalize("  Navy "))
	require.Equal(t, colorBlue, n.Normalize("BLUE"))
	require.Equal(t, colorRed, n.Normalize("purple"))
	require.Equal(t, colorRed, n.Normalize(""))
}

func TestParse_EmptyReturnsDefault(t *testing.T) {
	n := newColorNormalizer()

	got, err := n.Parse("   ")
	require.NoError(t, err)
	require.Equal(t, colorRed, got)
}

func TestParse_UnknownListsValidOptions(t *testing.T) {
	n := newColorNormalizer()

	_, err := n.Parse("purple")
	require.Error(t, err)
	require.Equal(t, `invalid color "purple", valid options: blue, navy, red`, err.Error())
}

func TestValidKeys_ReturnsCopy(t *testing.T) {
	n := newColorNormalizer()

	keys := n.ValidKeys()
	keys[0] = "mutated"
	require.Equal(t, []string{"blue", "navy", "red"}, n.ValidKeys())
}

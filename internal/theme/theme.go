// Package theme loads theme descriptors (theme.yml) and copies theme assets.
package theme

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/docdoc/internal/metadata"
)

const (
	// DescriptorFile is the theme descriptor inside a theme directory.
	DescriptorFile = "theme.yml"
	// TemplatesDir holds the theme's page templates.
	TemplatesDir = "templates"
)

// ErrInvalid is wrapped by every theme validation failure.
var ErrInvalid = stderrors.New("theme not valid")

// Theme is a loaded theme. It is read-only after Load and may be shared.
type Theme struct {
	Name string
	Path string
	// Assets are relative to Path unless absolute, in declaration order.
	Assets []string
	// Metadata declares every key documents may override, with defaults.
	Metadata *metadata.Map
}

// descriptor mirrors theme.yml; nodes are kept raw so each key can be
// validated with its own message.
type descriptor struct {
	Name     yaml.Node `yaml:"name"`
	Assets   yaml.Node `yaml:"assets"`
	Metadata yaml.Node `yaml:"metadata"`
}

// Load reads and validates the theme at dir.
func Load(dir string) (*Theme, error) {
	info, err := os.Stat(dir)
	switch {
	case err != nil && stderrors.Is(err, fs.ErrNotExist):
		return nil, invalid(dir, "theme directory does not exist", err)
	case err != nil:
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot stat theme").
			WithContext("path", dir).
			Build()
	case !info.IsDir():
		return nil, invalid(dir, "theme is not a directory", nil)
	}

	descPath := filepath.Join(dir, DescriptorFile)
	// #nosec G304 -- the theme directory is chosen by the user.
	raw, err := os.ReadFile(descPath)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, invalid(dir, "theme is missing "+DescriptorFile, nil)
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read theme descriptor").
			WithContext("path", descPath).
			Build()
	}

	var desc descriptor
	if err := yaml.Unmarshal(raw, &desc); err != nil {
		return nil, invalid(dir, "theme descriptor is not valid YAML", err)
	}

	t := &Theme{Path: dir}

	switch {
	case desc.Name.Kind == 0 || isNull(&desc.Name):
		return nil, invalidKey(dir, "name", "theme name missing")
	case desc.Name.Kind != yaml.ScalarNode || desc.Name.ShortTag() != "!!str":
		return nil, invalidKey(dir, "name", "theme name not valid")
	}
	t.Name = desc.Name.Value

	switch {
	case desc.Assets.Kind == 0 || isNull(&desc.Assets):
		return nil, invalidKey(dir, "assets", "theme assets missing")
	case desc.Assets.Kind != yaml.SequenceNode:
		return nil, invalidKey(dir, "assets", "theme assets not valid")
	}
	for i, item := range desc.Assets.Content {
		if item.Kind != yaml.ScalarNode || item.ShortTag() != "!!str" {
			return nil, invalidKey(dir, fmt.Sprintf("assets[%d]", i), "theme assets not valid")
		}
		t.Assets = append(t.Assets, item.Value)
	}

	switch {
	case desc.Metadata.Kind == 0 || isNull(&desc.Metadata):
		return nil, invalidKey(dir, "metadata", "theme metadata missing")
	case desc.Metadata.Kind != yaml.MappingNode:
		return nil, invalidKey(dir, "metadata", "theme metadata not valid")
	}
	t.Metadata = metadata.New()
	if err := t.Metadata.UnmarshalYAML(&desc.Metadata); err != nil {
		return nil, invalid(dir, "theme metadata not valid", err)
	}

	return t, nil
}

// TemplatesPath returns the directory holding the theme's templates.
func (t *Theme) TemplatesPath() string {
	return filepath.Join(t.Path, TemplatesDir)
}

// AssetPath resolves an asset entry against the theme directory.
func (t *Theme) AssetPath(asset string) string {
	if filepath.IsAbs(asset) {
		return asset
	}
	return filepath.Join(t.Path, asset)
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func invalid(dir, msg string, cause error) error {
	wrapped := ErrInvalid
	if cause != nil {
		wrapped = fmt.Errorf("%w: %w", ErrInvalid, cause)
	}
	return errors.WrapError(wrapped, errors.CategoryTheme, msg).
		WithContext("path", dir).
		Build()
}

func invalidKey(dir, key, msg string) error {
	return errors.WrapError(ErrInvalid, errors.CategoryTheme, msg).
		WithContext("path", dir).
		WithContext("key", key).
		Build()
}

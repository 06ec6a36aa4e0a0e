package metadata

import (
	"os"
	"strings"

	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
)

// ParseOverride parses an override fragment.
//
// A fragment starting with "@" names a YAML file to read; anything else is
// inline YAML. The result must be a mapping.
func ParseOverride(spec string) (*Map, error) {
	source := "inline"
	data := []byte(spec)

	if path, ok := strings.CutPrefix(spec, "@"); ok {
		source = path
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "cannot read metadata file").
				WithContext("path", path).
				Build()
		}
		data = raw
	}

	m, err := Parse(data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryMetadata, "invalid extra metadata").
			WithContext("source", source).
			Build()
	}
	return m, nil
}

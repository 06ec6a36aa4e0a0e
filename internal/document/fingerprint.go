package document

import (
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docdoc/internal/metadata"
)

// Fingerprint returns the mdfp content fingerprint of the source document.
//
// The hash covers the frontmatter as written by the author (without any
// existing fingerprint field) and the Markdown body, so it changes only when
// the source does.
func (d *Document) Fingerprint() (string, error) {
	fm := ""
	if len(d.frontmatter) > 0 {
		parsed, err := metadata.Parse(d.frontmatter)
		if err != nil {
			return "", err
		}
		hashed := metadata.New()
		for _, k := range parsed.Keys() {
			if k == mdfp.FingerprintField {
				continue
			}
			v, _ := parsed.Get(k)
			hashed.Set(k, v)
		}
		if hashed.Len() > 0 {
			out, err := yaml.Marshal(hashed)
			if err != nil {
				return "", err
			}
			fm = strings.TrimSuffix(string(out), "\n")
		}
	}
	return mdfp.CalculateFingerprintFromParts(fm, d.markdown), nil
}

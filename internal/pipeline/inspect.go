package pipeline

import (
	"context"

	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/docdoc/internal/markdown"
	"git.home.luguber.info/inful/docdoc/internal/metadata"
)

// Inspection reports what Convert would do without rendering or writing.
type Inspection struct {
	Source      string          `yaml:"source"`
	Destination string          `yaml:"destination"`
	Dialect     string          `yaml:"dialect"`
	Theme       string          `yaml:"theme"`
	Fingerprint string          `yaml:"fingerprint"`
	Metadata    *metadata.Map   `yaml:"metadata"`
	Dropped     []string        `yaml:"dropped,omitempty"`
	Links       []markdown.Link `yaml:"links"`
}

// Inspect runs the load, overrides, merge and destination stages and lists
// the body's links with their rewritten targets.
func (c *Converter) Inspect(ctx context.Context, opts Options) (*Inspection, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	st := newState(opts, c.theme)
	stages := []StageDef{
		{StageLoad, stageLoad},
		{StageOverrides, stageOverrides},
		{StageMerge, stageMerge},
		{StageDestination, stageDestination},
	}
	if err := RunStages(ctx, st, stages, c.recorder, c.logger); err != nil {
		return nil, err
	}

	links, err := markdown.ExtractLinks([]byte(st.Document.Body), opts.Dialect)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "cannot extract links").
			WithContext("dialect", string(opts.Dialect)).
			Build()
	}

	return &Inspection{
		Source:      opts.Source,
		Destination: st.Document.Path,
		Dialect:     string(opts.Dialect),
		Theme:       c.theme.Name,
		Fingerprint: st.Fingerprint,
		Metadata:    st.Merged,
		Dropped:     metadata.Dropped(c.theme.Metadata, st.Document.Metadata),
		Links:       links,
	}, nil
}

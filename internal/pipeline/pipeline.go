// Package pipeline converts one Markdown document into a themed HTML page.
//
// A conversion runs a fixed sequence of stages (load, overrides, markdown,
// merge, template, destination, write, assets). The first failing stage
// aborts the rest; nothing already written is rolled back.
package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/docdoc/internal/document"
	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/docdoc/internal/logfields"
	"git.home.luguber.info/inful/docdoc/internal/markdown"
	"git.home.luguber.info/inful/docdoc/internal/metadata"
	"git.home.luguber.info/inful/docdoc/internal/metrics"
	"git.home.luguber.info/inful/docdoc/internal/pathmap"
	"git.home.luguber.info/inful/docdoc/internal/templates"
	"git.home.luguber.info/inful/docdoc/internal/theme"
)

// Options describes one conversion.
type Options struct {
	Source     string
	OutputRoot string
	// SkipFirstSegment drops the leading directory of Source when placing the output.
	SkipFirstSegment bool
	Template         string
	Dialect          markdown.Dialect
	// Overrides are applied to the document metadata in order, before the
	// theme allow-list.
	Overrides []*metadata.Map
}

// Result describes a finished conversion.
type Result struct {
	RunID       string
	Source      string
	Destination string
	Assets      []string
	Duration    time.Duration
}

// Converter runs conversions against one theme. It holds no per-document
// state and may be reused.
type Converter struct {
	theme     *theme.Theme
	templates templates.Renderer
	recorder  metrics.Recorder
	logger    *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(c *Converter) {
		if r != nil {
			c.recorder = r
		}
	}
}

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTemplates replaces the pongo2 renderer built from the theme.
func WithTemplates(r templates.Renderer) Option {
	return func(c *Converter) { c.templates = r }
}

// New returns a Converter for th.
func New(th *theme.Theme, opts ...Option) (*Converter, error) {
	if th == nil {
		return nil, errors.ValidationError("theme is required").Build()
	}
	c := &Converter{
		theme:    th,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.templates == nil {
		r, err := templates.NewPongo2Renderer(th.TemplatesPath())
		if err != nil {
			return nil, err
		}
		c.templates = r
	}
	return c, nil
}

// Theme returns the theme the converter renders with.
func (c *Converter) Theme() *theme.Theme { return c.theme }

// Convert runs every stage for opts.
func (c *Converter) Convert(ctx context.Context, opts Options) (*Result, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	log := c.logger.With(logfields.RunID(runID), logfields.Path(opts.Source))
	st := newState(opts, c.theme)

	start := time.Now()
	err := RunStages(ctx, st, c.stages(), c.recorder, log)
	dur := time.Since(start)
	c.recorder.ObserveConversionDuration(string(opts.Dialect), dur)

	if err != nil {
		outcome := metrics.OutcomeFailed
		if ctx.Err() != nil {
			outcome = metrics.OutcomeCanceled
		}
		c.recorder.IncConversionOutcome(outcome)
		return nil, err
	}
	c.recorder.IncConversionOutcome(metrics.OutcomeSuccess)

	log.Info("Converted document",
		logfields.Destination(st.Document.Path),
		logfields.Theme(c.theme.Name),
		logfields.Template(opts.Template),
		logfields.Dialect(string(opts.Dialect)),
		logfields.Assets(len(st.Assets)),
		logfields.DurationMS(float64(dur.Microseconds())/1000))

	return &Result{
		RunID:       runID,
		Source:      opts.Source,
		Destination: st.Document.Path,
		Assets:      st.Assets,
		Duration:    dur,
	}, nil
}

func (c *Converter) stages() []StageDef {
	return []StageDef{
		{StageLoad, stageLoad},
		{StageOverrides, stageOverrides},
		{StageMarkdown, stageMarkdown},
		{StageMerge, stageMerge},
		{StageTemplate, c.stageTemplate},
		{StageDestination, stageDestination},
		{StageWrite, stageWrite},
		{StageAssets, stageAssets},
	}
}

func validate(opts Options) error {
	switch {
	case opts.Source == "":
		return errors.ValidationError("source document is required").Build()
	case opts.OutputRoot == "":
		return errors.ValidationError("output directory is required").Build()
	case opts.Template == "":
		return errors.ValidationError("template name is required").Build()
	}
	return nil
}

func stageLoad(_ context.Context, st *State) error {
	doc, err := document.Load(st.Options.Source)
	if err != nil {
		return err
	}
	fp, err := doc.Fingerprint()
	if err != nil {
		return errors.WrapError(err, errors.CategoryMetadata, "cannot fingerprint document").
			WithContext("path", st.Options.Source).
			Build()
	}
	st.Document = doc
	st.Fingerprint = fp
	return nil
}

func stageOverrides(_ context.Context, st *State) error {
	for _, o := range st.Options.Overrides {
		metadata.Overlay(st.Document.Metadata, o)
	}
	return nil
}

func stageMarkdown(_ context.Context, st *State) error {
	r, err := markdown.NewRenderer(st.Options.Dialect)
	if err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "unsupported dialect").
			WithContext("dialect", string(st.Options.Dialect)).
			Build()
	}
	html, err := r.Render([]byte(st.Document.Body))
	if err != nil {
		return errors.WrapError(err, errors.CategoryRender, "markdown rendering failed").
			WithContext("path", st.Document.Source()).
			Build()
	}
	st.Document.Body = string(html)
	return nil
}

func stageMerge(_ context.Context, st *State) error {
	st.Merged = metadata.Merge(st.Theme.Metadata, st.Document.Metadata)
	return nil
}

func (c *Converter) stageTemplate(_ context.Context, st *State) error {
	page, err := c.templates.Render(st.Options.Template, st.RenderContext())
	if err != nil {
		if errors.IsClassified(err) {
			return err
		}
		return errors.WrapError(err, errors.CategoryRender, "template rendering failed").
			WithContext("template", st.Options.Template).
			Build()
	}
	st.Document.Body = page
	return nil
}

func stageDestination(_ context.Context, st *State) error {
	st.Document.Path = pathmap.MapDestination(st.Options.Source, st.Options.OutputRoot, st.Options.SkipFirstSegment)
	return nil
}

func stageWrite(_ context.Context, st *State) error {
	return st.Document.Write()
}

func stageAssets(_ context.Context, st *State) error {
	copied, err := st.Theme.CopyAssets(filepath.Dir(st.Document.Path))
	st.Assets = copied
	return err
}
